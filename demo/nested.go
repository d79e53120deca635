package demo

import (
	"strconv"

	"github.com/delaneyj/hookflow/lifecycle"
)

// NestedView toggles the whole generated subtree of a Nested root.
type NestedView struct {
	Shown bool
	set   lifecycle.Setter[bool]
}

func (v NestedView) Toggle(show bool) error { return v.set.Set(show) }

// Nested builds a root that, when shown, mounts depth levels of components
// with fanout children each. Every level carries the same state slot and
// three effects as App and Child, without logging. It is the load used by
// the bench command.
func Nested(depth, fanout int) lifecycle.Component {
	var top lifecycle.Component
	if depth > 0 {
		top = level(1, depth, fanout)
	}
	return lifecycle.Component{Name: "Nested", Render: func(f *lifecycle.Frame) (any, error) {
		shown, setShown := lifecycle.UseState(f, func() (bool, error) { return false, nil })
		if shown && depth > 0 {
			for i := 0; i < fanout; i++ {
				f.Child(strconv.Itoa(i), top)
			}
		}
		return NestedView{Shown: shown, set: setShown}, nil
	}}
}

// NestedSize is the number of level nodes a shown Nested root mounts.
func NestedSize(depth, fanout int) int {
	total, width := 0, 1
	for i := 0; i < depth; i++ {
		width *= fanout
		total += width
	}
	return total
}

func level(i, depth, fanout int) lifecycle.Component {
	var next lifecycle.Component
	if i < depth {
		next = level(i+1, depth, fanout)
	}
	noop := func() (lifecycle.Cleanup, error) {
		return func() error { return nil }, nil
	}
	return lifecycle.Component{Name: "Level" + strconv.Itoa(i), Render: func(f *lifecycle.Frame) (any, error) {
		n, _ := lifecycle.UseState(f, func() (int, error) { return i, nil })
		lifecycle.UseEffect(f, noop, lifecycle.Always)
		lifecycle.UseEffect(f, noop, lifecycle.Once)
		lifecycle.UseEffect(f, noop, lifecycle.On(n))
		if i < depth {
			for c := 0; c < fanout; c++ {
				f.Child(strconv.Itoa(c), next)
			}
		}
		return nil, nil
	}}
}
