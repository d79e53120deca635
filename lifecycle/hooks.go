package lifecycle

import "fmt"

// Updater computes a new state value from the current one.
type Updater func(prev any) any

// Setter updates one state slot of a node.
type Setter[T any] struct {
	s    *Scheduler
	node *Node
	slot int
}

func (st Setter[T]) Set(v T) error {
	if st.s == nil {
		return ErrNotMounted
	}
	return st.s.SetState(st.node, st.slot, v)
}

func (st Setter[T]) Update(fn func(prev T) T) error {
	if st.s == nil {
		return ErrNotMounted
	}
	return st.s.SetState(st.node, st.slot, Updater(func(prev any) any {
		p, _ := prev.(T)
		return fn(p)
	}))
}

func (st Setter[T]) Node() *Node { return st.node }
func (st Setter[T]) Slot() int   { return st.slot }

// UseState returns the current value of the next state slot. init runs only
// while the node mounts; later renders read the stored value.
func UseState[T any](f *Frame, init func() (T, error)) (T, Setter[T]) {
	var zero T
	if !f.hook(hookState) {
		return zero, Setter[T]{}
	}
	n := f.node
	slot := f.slot
	f.slot++
	setter := Setter[T]{s: f.s, node: n, slot: slot}

	if f.mounting {
		f.s.trace(n, fmt.Sprintf("state #%d init", slot))
		var v T
		err := protect(func() (err error) {
			v, err = init()
			return err
		})
		if err != nil {
			f.fail(PhaseState, slot, err)
			return zero, setter
		}
		n.slots = append(n.slots, v)
		return v, setter
	}

	raw := n.slots[slot]
	if raw == nil {
		return zero, setter
	}
	v, ok := raw.(T)
	if !ok {
		f.fail(PhaseState, slot, fmt.Errorf("slot holds %T, want %T", raw, zero))
		return zero, setter
	}
	return v, setter
}

// UseEffect registers action to run after the render pass, subject to deps.
func UseEffect(f *Frame, action EffectFunc, deps Deps) {
	if !f.hook(hookEffect) {
		return
	}
	n := f.node
	idx := f.effect
	f.effect++

	if f.mounting {
		n.effects = append(n.effects, &effect{action: action, deps: deps, due: true})
		return
	}
	n.effects[idx].schedule(action, deps)
}
