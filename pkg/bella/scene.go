// Package bella builds an in-memory scene graph for the bella renderer and
// writes it out as a .bsa text scene or a .bsz compressed archive.
package bella

import (
	"fmt"
	"strings"
)

// Scene is an ordered collection of named nodes. Two nodes always exist:
// "world", the parenting root for visible geometry, and "settings", the
// render configuration block.
type Scene struct {
	nodes  []*Node
	byName map[string]*Node
}

// NewScene creates a scene holding only the implicit world and settings
// nodes.
func NewScene() *Scene {
	s := &Scene{byName: make(map[string]*Node)}
	s.mustCreate("world", "world")
	s.mustCreate("settings", "settings")
	return s
}

// World returns the scene's root parenting node.
func (s *Scene) World() *Node {
	return s.byName["world"]
}

// Settings returns the scene's render settings node.
func (s *Scene) Settings() *Node {
	return s.byName["settings"]
}

// CreateNode adds a node of a registered type. Names must be unique within
// the scene and non-empty.
func (s *Scene) CreateNode(typ, name string) (*Node, error) {
	if !IsNodeType(typ) {
		return nil, fmt.Errorf("unknown node type %q", typ)
	}
	if name == "" || strings.ContainsAny(name, " \t\n;.=") {
		return nil, fmt.Errorf("invalid node name %q", name)
	}
	if _, exists := s.byName[name]; exists {
		return nil, fmt.Errorf("duplicate node name %q", name)
	}
	n := &Node{Type: typ, Name: name}
	s.nodes = append(s.nodes, n)
	s.byName[name] = n
	return n, nil
}

func (s *Scene) mustCreate(typ, name string) *Node {
	n, err := s.CreateNode(typ, name)
	if err != nil {
		panic(err)
	}
	return n
}

// Find returns the node with the given name, or nil.
func (s *Scene) Find(name string) *Node {
	return s.byName[name]
}

// Len reports the number of nodes, implicit ones included.
func (s *Scene) Len() int {
	return len(s.nodes)
}

// Node is one scene object: a type, a unique name, and attribute
// assignments in set order.
type Node struct {
	Type string
	Name string

	attrs []Attr
	index map[string]int
}

// Attr is one attribute assignment on a node.
type Attr struct {
	Path  string
	Value Value
}

// Set assigns an attribute. Re-setting a path keeps its original position
// and takes the new value.
func (n *Node) Set(path string, v Value) {
	if i, ok := n.index[path]; ok {
		n.attrs[i].Value = v
		return
	}
	if n.index == nil {
		n.index = make(map[string]int)
	}
	n.index[path] = len(n.attrs)
	n.attrs = append(n.attrs, Attr{Path: path, Value: v})
}

// Get returns the value set at path, or nil.
func (n *Node) Get(path string) Value {
	if i, ok := n.index[path]; ok {
		return n.attrs[i].Value
	}
	return nil
}

// Attrs returns the assignments in set order.
func (n *Node) Attrs() []Attr {
	return n.attrs
}

// ParentTo appends n to parent's children list. A node may be parented
// under several nodes; instancing shared geometry relies on that.
func (n *Node) ParentTo(parent *Node) {
	parent.Set("children[*]", appendChild(parent.Get("children[*]"), n))
}

// Children returns the nodes parented under n, in parenting order.
func (n *Node) Children() []*Node {
	if refs, ok := n.Get("children[*]").(ChildList); ok {
		return refs
	}
	return nil
}

func appendChild(existing Value, child *Node) ChildList {
	list, _ := existing.(ChildList)
	return append(list, child)
}
