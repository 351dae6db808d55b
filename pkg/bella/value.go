package bella

import (
	"fmt"
	"strconv"
	"strings"
)

// Value is an attribute value that knows its .bsa text form.
type Value interface {
	bsa() string
}

type Float float64

func (v Float) bsa() string {
	return strconv.FormatFloat(float64(v), 'g', -1, 64) + "f"
}

type Int int64

func (v Int) bsa() string {
	return strconv.FormatInt(int64(v), 10)
}

type Str string

func (v Str) bsa() string {
	return strconv.Quote(string(v))
}

type Bool bool

func (v Bool) bsa() string {
	return strconv.FormatBool(bool(v))
}

// Vec2 is a two-component vector, e.g. a resolution.
type Vec2 struct {
	X, Y float64
}

func (v Vec2) bsa() string {
	return fmt.Sprintf("vec2(%s %s)", ftoa(v.X), ftoa(v.Y))
}

// Rgba is a color with components in 0..1.
type Rgba struct {
	R, G, B, A float64
}

func (v Rgba) bsa() string {
	return fmt.Sprintf("rgba(%s %s %s %s)", ftoa(v.R), ftoa(v.G), ftoa(v.B), ftoa(v.A))
}

// Mat4 is a row-major 4x4 transform.
type Mat4 [16]float64

func (v Mat4) bsa() string {
	parts := make([]string, len(v))
	for i, f := range v {
		parts[i] = ftoa(f)
	}
	return "mat4(" + strings.Join(parts, " ") + ")"
}

// Translation builds the transform placing a node at (x, y, z).
func Translation(x, y, z float64) Mat4 {
	return Mat4{
		1, 0, 0, 0,
		0, 1, 0, 0,
		0, 0, 1, 0,
		x, y, z, 1,
	}
}

// Ref is a connection to another node by name.
type Ref struct {
	Node *Node
}

func (v Ref) bsa() string {
	return v.Node.Name
}

// ChildList is the accumulated children of a node. It never appears as a
// single assignment; the writer expands it to one children[*] line per
// entry.
type ChildList []*Node

func (v ChildList) bsa() string {
	names := make([]string, len(v))
	for i, n := range v {
		names[i] = n.Name
	}
	return strings.Join(names, " ")
}

func ftoa(f float64) string {
	return strconv.FormatFloat(f, 'g', -1, 64)
}
