// Package demo reproduces the hook flow walkthrough: an App with a checkbox
// that conditionally renders a Child with a counter button. Both components
// log every lifecycle step they go through.
package demo

import (
	"fmt"

	"github.com/delaneyj/hookflow/lifecycle"
)

// Categories mirror the console colours of the walkthrough.
const (
	CategoryRender  = lifecycle.CategoryRender
	CategoryState   = lifecycle.CategoryState
	EffectNoDeps    = lifecycle.Category("effect-no-deps")
	EffectEmptyDeps = lifecycle.Category("effect-empty-deps")
	EffectWithDep   = lifecycle.Category("effect-with-dep")
)

// AppView is the App's rendered output: the checkbox.
type AppView struct {
	ShowChild bool
	set       lifecycle.Setter[bool]
}

// Toggle checks or unchecks the "show child" box.
func (v AppView) Toggle(show bool) error { return v.set.Set(show) }

func (v AppView) String() string {
	box := "[ ]"
	if v.ShowChild {
		box = "[x]"
	}
	return box + " show child"
}

var App = lifecycle.Component{Name: "App", Render: renderApp}

func renderApp(f *lifecycle.Frame) (any, error) {
	f.Log(CategoryRender, "render start")

	showChild, setShowChild := lifecycle.UseState(f, func() (bool, error) {
		f.Log(CategoryState, "useState callback")
		return false, nil
	})

	useLoggedEffects(f, showChild)

	// declaring the child does not render it; that happens after App's render ends
	if showChild {
		f.Child("child", Child)
	}

	f.Log(CategoryRender, "render end")
	return AppView{ShowChild: showChild, set: setShowChild}, nil
}

// ChildView is the Child's rendered output: the counter button.
type ChildView struct {
	Count int
	set   lifecycle.Setter[int]
}

// Click increments the counter.
func (v ChildView) Click() error {
	return v.set.Update(func(prev int) int { return prev + 1 })
}

func (v ChildView) String() string { return fmt.Sprintf("(%d)", v.Count) }

var Child = lifecycle.Component{Name: "Child", Render: renderChild}

func renderChild(f *lifecycle.Frame) (any, error) {
	f.Log(CategoryRender, "render start")

	count, setCount := lifecycle.UseState(f, func() (int, error) {
		f.Log(CategoryState, "useState callback")
		return 0, nil
	})

	useLoggedEffects(f, count)

	f.Log(CategoryRender, "render end")
	return ChildView{Count: count, set: setCount}, nil
}

// useLoggedEffects registers the three effect flavours in walkthrough order.
func useLoggedEffects(f *lifecycle.Frame, dep any) {
	lifecycle.UseEffect(f, logged(f, EffectNoDeps, "useEffect no deps"), lifecycle.Always)
	lifecycle.UseEffect(f, logged(f, EffectEmptyDeps, "useEffect empty deps"), lifecycle.Once)
	lifecycle.UseEffect(f, logged(f, EffectWithDep, "useEffect with dep"), lifecycle.On(dep))
}

func logged(f *lifecycle.Frame, category lifecycle.Category, text string) lifecycle.EffectFunc {
	return func() (lifecycle.Cleanup, error) {
		f.Log(category, text)
		return func() error {
			f.Log(category, text+" cleanup")
			return nil
		}, nil
	}
}

// AppOf returns the App's current view.
func AppOf(s *lifecycle.Scheduler) (AppView, error) {
	root := s.Root()
	if root == nil {
		return AppView{}, lifecycle.ErrNotMounted
	}
	v, ok := root.Output().(AppView)
	if !ok {
		return AppView{}, fmt.Errorf("root %s has not rendered an App", root.Name())
	}
	return v, nil
}

// ChildOf returns the Child's current view if the App shows it.
func ChildOf(s *lifecycle.Scheduler) (ChildView, error) {
	root := s.Root()
	if root == nil {
		return ChildView{}, lifecycle.ErrNotMounted
	}
	n := root.Child("child")
	if n == nil {
		return ChildView{}, fmt.Errorf("%w: %s/child", lifecycle.ErrNoChild, root.Name())
	}
	v, ok := n.Output().(ChildView)
	if !ok {
		return ChildView{}, fmt.Errorf("child %s has not rendered yet", n.Name())
	}
	return v, nil
}
