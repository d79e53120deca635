package lifecycle

import (
	"strconv"

	"github.com/cespare/xxhash/v2"
)

// RenderFunc renders one node. The returned value is the node's output,
// opaque to the scheduler.
type RenderFunc func(f *Frame) (any, error)

type Component struct {
	Name   string
	Render RenderFunc
}

type hookKind uint8

const (
	hookState hookKind = iota + 1
	hookEffect
)

// Node is one mounted instance of a component.
type Node struct {
	id    uint64
	key   string
	comp  Component
	props Deps

	// parent is a back-reference only; a node is owned by its parent's children.
	parent   *Node
	children []*Node

	status Status
	// declared is set for children created by the parent's render output,
	// as opposed to MountChild.
	declared     bool
	propsChanged bool

	hooks   []hookKind
	slots   []any
	effects []*effect

	output  any
	renders int
}

func newNode(parent *Node, key string, comp Component, props Deps, declared bool) *Node {
	var parentID uint64
	if parent != nil {
		parentID = parent.id
	}
	// declared and imperative children have separate key namespaces
	ns := "m"
	if declared {
		ns = "d"
	}
	return &Node{
		id:       xxhash.Sum64String(strconv.FormatUint(parentID, 16) + "/" + ns + key + "/" + comp.Name),
		key:      key,
		comp:     comp,
		props:    props,
		parent:   parent,
		status:   Mounting,
		declared: declared,
	}
}

// ID is stable for a component at a given key path; a remount at the same
// position gets the same ID. Events carry it so that sinks can tell apart
// nodes sharing a component name.
func (n *Node) ID() uint64     { return n.id }
func (n *Node) Key() string    { return n.key }
func (n *Node) Name() string   { return n.comp.Name }
func (n *Node) Parent() *Node  { return n.parent }
func (n *Node) Status() Status { return n.status }
func (n *Node) Output() any    { return n.output }

// Renders counts completed renders, the mount included.
func (n *Node) Renders() int { return n.renders }

func (n *Node) Children() []*Node {
	out := make([]*Node, len(n.children))
	copy(out, n.children)
	return out
}

// Child returns the first child mounted under key.
func (n *Node) Child(key string) *Node {
	for _, c := range n.children {
		if c.key == key {
			return c
		}
	}
	return nil
}

func (n *Node) Depth() int {
	d := 0
	for p := n.parent; p != nil; p = p.parent {
		d++
	}
	return d
}

// Slot returns the current value of a state slot.
func (n *Node) Slot(slot int) (any, bool) {
	if slot < 0 || slot >= len(n.slots) {
		return nil, false
	}
	return n.slots[slot], true
}

func (n *Node) Slots() int   { return len(n.slots) }
func (n *Node) Effects() int { return len(n.effects) }

func (n *Node) declaredChild(key string) *Node {
	for _, c := range n.children {
		if c.declared && c.key == key {
			return c
		}
	}
	return nil
}

func (n *Node) imperativeChild(key string) *Node {
	for _, c := range n.children {
		if !c.declared && c.key == key {
			return c
		}
	}
	return nil
}

func (n *Node) removeChild(c *Node) bool {
	for i, cc := range n.children {
		if cc == c {
			n.children = append(n.children[:i], n.children[i+1:]...)
			return true
		}
	}
	return false
}

// walk visits the subtree rooted at n, children before their parent.
func (n *Node) walk(fn func(*Node)) {
	for _, c := range n.children {
		c.walk(fn)
	}
	fn(n)
}
