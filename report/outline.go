// Package report turns a lifecycle tree and a recorded session into text:
// an indented outline that serves as the rendering backend, and a Markdown
// trace of every step.
package report

import (
	"fmt"
	"strings"

	"github.com/delaneyj/hookflow/lifecycle"
)

// Outline renders the tree as one line per node, children indented under
// their parent. Outputs implementing fmt.Stringer are appended to the name.
type Outline struct {
	Indent string
	// IDs appends each node's ID, telling apart nodes with the same name.
	IDs bool
}

func (o Outline) Render(root *lifecycle.Node) (any, error) {
	if root == nil {
		return "", nil
	}
	indent := o.Indent
	if indent == "" {
		indent = "    "
	}
	var sb strings.Builder
	o.write(&sb, root, indent, 0)
	return sb.String(), nil
}

func (o Outline) write(sb *strings.Builder, n *lifecycle.Node, indent string, depth int) {
	sb.WriteString(strings.Repeat(indent, depth))
	sb.WriteString(n.Name())
	if o.IDs {
		fmt.Fprintf(sb, " #%016x", n.ID())
	}
	if s, ok := n.Output().(fmt.Stringer); ok {
		sb.WriteString(" ")
		sb.WriteString(s.String())
	}
	sb.WriteString("\n")
	for _, c := range n.Children() {
		o.write(sb, c, indent, depth+1)
	}
}
