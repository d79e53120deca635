package lifecycle

import (
	"errors"
	"fmt"
)

var (
	ErrStaleUpdate    = errors.New("state update on an unmounted node")
	ErrHookOrder      = errors.New("hooks called in a different order than the previous render")
	ErrUpdateDepth    = errors.New("maximum update depth exceeded")
	ErrNotMounted     = errors.New("no component mounted")
	ErrAlreadyMounted = errors.New("a root component is already mounted")
	ErrUnknownSlot    = errors.New("unknown state slot")
	ErrDuplicateKey   = errors.New("duplicate child key")
	ErrNoChild        = errors.New("no child with that key")
)

// Phase names the lifecycle step a fault happened in.
type Phase uint8

const (
	PhaseState Phase = iota
	PhaseRender
	PhaseCommit
	PhaseCleanup
	PhaseEffect
)

func (p Phase) String() string {
	switch p {
	case PhaseState:
		return "state"
	case PhaseRender:
		return "render"
	case PhaseCommit:
		return "commit"
	case PhaseCleanup:
		return "cleanup"
	case PhaseEffect:
		return "effect"
	default:
		return "unknown"
	}
}

// LifecycleFault is returned when user code fails during a flush. The flush
// stops at the fault; nothing after it in the same flush runs.
type LifecycleFault struct {
	Node  string
	Phase Phase
	// Index is the state slot or effect position, -1 when not applicable.
	Index int
	Err   error
}

func (f *LifecycleFault) Error() string {
	if f.Index >= 0 {
		return fmt.Sprintf("lifecycle fault in %s (%s #%d): %v", f.Node, f.Phase, f.Index, f.Err)
	}
	return fmt.Sprintf("lifecycle fault in %s (%s): %v", f.Node, f.Phase, f.Err)
}

func (f *LifecycleFault) Unwrap() error { return f.Err }

func fault(n *Node, phase Phase, index int, err error) error {
	var lf *LifecycleFault
	if errors.As(err, &lf) {
		return err
	}
	return &LifecycleFault{Node: n.Name(), Phase: phase, Index: index, Err: err}
}

// protect runs fn and turns a panic into an error.
func protect(fn func() error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			if e, ok := r.(error); ok {
				err = fmt.Errorf("panic: %w", e)
				return
			}
			err = fmt.Errorf("panic: %v", r)
		}
	}()
	return fn()
}
