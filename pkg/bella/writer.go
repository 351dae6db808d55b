package bella

import (
	"fmt"
	"io"
)

// FormatVersion is stamped into the .bsa header line.
const FormatVersion = "20250704"

// Writer serializes a scene as .bsa text. Write methods accumulate errors
// internally; check Err after writing.
type Writer struct {
	w   io.Writer
	err error
}

func NewWriter(w io.Writer) *Writer {
	return &Writer{w: w}
}

// Err returns the first error encountered during writing.
func (w *Writer) Err() error {
	return w.err
}

func (w *Writer) printf(format string, args ...any) {
	if w.err != nil {
		return
	}
	_, w.err = fmt.Fprintf(w.w, format, args...)
}

// WriteScene writes the header and every node in creation order.
func (w *Writer) WriteScene(s *Scene) error {
	w.printf("# bella scene\n# version: %s\n\n", FormatVersion)
	for _, n := range s.nodes {
		w.writeNode(n)
	}
	return w.err
}

// writeNode emits one node block:
//
//	xform voxXform0:
//	  .steps[0].xform = mat4(...);
//	  .children[*] = box1;
func (w *Writer) writeNode(n *Node) {
	w.printf("%s %s:\n", n.Type, n.Name)
	for _, a := range n.Attrs() {
		if list, ok := a.Value.(ChildList); ok {
			for _, child := range list {
				w.printf("  .children[*] = %s;\n", child.Name)
			}
			continue
		}
		w.printf("  .%s = %s;\n", a.Path, a.Value.bsa())
	}
	w.printf("\n")
}
