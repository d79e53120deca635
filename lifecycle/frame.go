package lifecycle

import "fmt"

// Frame is handed to a RenderFunc. Hooks must be called in the same order
// on every render of a node. Log stays usable after the render returns, so
// effects and cleanups may capture the frame.
type Frame struct {
	s        *Scheduler
	node     *Node
	mounting bool

	cursor int
	slot   int
	effect int

	decls []*Node
	keys  map[string]struct{}
	fault error
}

func (f *Frame) Node() *Node    { return f.node }
func (f *Frame) Mounting() bool { return f.mounting }
func (f *Frame) Props() []any   { return f.node.props.Values() }

// Log emits an event attributed to the frame's node.
func (f *Frame) Log(category Category, text string) {
	f.s.emit(f.node, category, text)
}

// Child declares a child component in this render's output. A child kept
// under the same key and component name across renders is preserved along
// with its state; it only re-renders when it is dirty or its props changed.
// Declared children missing from a render are unmounted.
func (f *Frame) Child(key string, c Component, props ...any) *Node {
	if f.fault != nil {
		return nil
	}
	if f.keys == nil {
		f.keys = map[string]struct{}{}
	}
	if _, dup := f.keys[key]; dup {
		f.fail(PhaseRender, -1, fmt.Errorf("%w: %q", ErrDuplicateKey, key))
		return nil
	}
	f.keys[key] = struct{}{}

	next := On(props...)
	if existing := f.node.declaredChild(key); existing != nil && existing.comp.Name == c.Name {
		existing.comp = c
		if existing.props.Changed(next) {
			existing.propsChanged = true
		}
		existing.props = next
		f.decls = append(f.decls, existing)
		return existing
	}

	child := newNode(f.node, key, c, next, true)
	f.decls = append(f.decls, child)
	return child
}

func (f *Frame) fail(phase Phase, index int, err error) {
	if f.fault == nil {
		f.fault = fault(f.node, phase, index, err)
	}
}

// hook advances the hook cursor, checking the kind against the first render.
func (f *Frame) hook(kind hookKind) bool {
	if f.fault != nil {
		return false
	}
	n := f.node
	if f.mounting {
		n.hooks = append(n.hooks, kind)
		f.cursor++
		return true
	}
	if f.cursor >= len(n.hooks) || n.hooks[f.cursor] != kind {
		f.fail(PhaseRender, f.cursor, ErrHookOrder)
		return false
	}
	f.cursor++
	return true
}
