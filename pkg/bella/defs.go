package bella

import "sort"

// nodeTypes is the set of node definitions the writer understands. The
// renderer has many more; only the ones this converter emits are
// registered, and RegisterNodeType exists for callers that need others.
var nodeTypes = map[string]bool{
	"world":    true,
	"settings": true,

	"beautyPass":  true,
	"camera":      true,
	"sensor":      true,
	"thinLens":    true,
	"xform":       true,
	"box":         true,
	"imageDome":   true,
	"groundPlane": true,
	"sun":         true,

	"quickMaterial": true,
	"orenNayar":     true,
	"dielectric":    true,
}

// RegisterNodeType makes an additional node type creatable.
func RegisterNodeType(name string) {
	nodeTypes[name] = true
}

// IsNodeType reports whether the type is registered.
func IsNodeType(name string) bool {
	return nodeTypes[name]
}

// NodeTypes returns the registered type names, sorted.
func NodeTypes() []string {
	names := make([]string, 0, len(nodeTypes))
	for name := range nodeTypes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
