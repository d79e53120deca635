package lifecycle

// EffectFunc runs after the render pass that registered it. The returned
// cleanup, if any, runs before the next invocation and at unmount.
type EffectFunc func() (Cleanup, error)

type Cleanup func() error

type effect struct {
	action  EffectFunc
	deps    Deps
	last    Deps
	cleanup Cleanup
	ran     bool
	due     bool
}

// schedule records the latest registration and decides whether the effect
// is due in the coming flush.
func (e *effect) schedule(action EffectFunc, deps Deps) {
	e.action = action
	e.due = !e.ran || e.last.Changed(deps)
	e.deps = deps
}

func (e *effect) runCleanup() error {
	cleanup := e.cleanup
	e.cleanup = nil
	if cleanup == nil {
		return nil
	}
	return protect(cleanup)
}

func (e *effect) run() error {
	e.due = false
	var cleanup Cleanup
	err := protect(func() (err error) {
		cleanup, err = e.action()
		return err
	})
	if err != nil {
		return err
	}
	e.cleanup = cleanup
	e.last = e.deps
	e.ran = true
	return nil
}
