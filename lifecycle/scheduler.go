package lifecycle

import (
	"fmt"
	"io"
	"log/slog"

	mapset "github.com/deckarep/golang-set/v2"
)

const DefaultMaxPasses = 50

// Renderer is the rendering backend. It is invoked once per pass that
// rendered anything, after the render phase and before effects run.
type Renderer interface {
	Render(root *Node) (any, error)
}

type RendererFunc func(root *Node) (any, error)

func (fn RendererFunc) Render(root *Node) (any, error) { return fn(root) }

type Option func(*Scheduler)

// WithSink adds sinks receiving the event stream.
func WithSink(sinks ...Sink) Option {
	return func(s *Scheduler) {
		s.sinks = append(s.sinks, sinks...)
	}
}

func WithRenderer(r Renderer) Option {
	return func(s *Scheduler) { s.renderer = r }
}

func WithLogger(l *slog.Logger) Option {
	return func(s *Scheduler) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithTrace makes the scheduler emit its own mount, render, state, cleanup,
// effect and unmount events into the sinks.
func WithTrace() Option {
	return func(s *Scheduler) { s.tracing = true }
}

// WithMaxPasses bounds the passes a single Flush may run before it gives up
// with ErrUpdateDepth.
func WithMaxPasses(n int) Option {
	return func(s *Scheduler) {
		if n > 0 {
			s.maxPasses = n
		}
	}
}

// Scheduler owns a component tree and drives its render passes and effect
// flushes.
type Scheduler struct {
	root     *Node
	sinks    []Sink
	renderer Renderer
	logger   *slog.Logger
	tracing  bool

	maxPasses  int
	batchDepth int
	flushing   bool

	dirty   mapset.Set[*Node]
	removed []*Node

	output any
	seq    uint64
	passes int
}

func NewScheduler(opts ...Option) *Scheduler {
	s := &Scheduler{
		logger:    slog.New(slog.NewTextHandler(io.Discard, nil)),
		maxPasses: DefaultMaxPasses,
		dirty:     mapset.NewThreadUnsafeSet[*Node](),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Scheduler) Root() *Node { return s.root }

// Output is the last value produced by the Renderer.
func (s *Scheduler) Output() any { return s.output }

// Passes counts the passes run so far.
func (s *Scheduler) Passes() int { return s.passes }

// Pending reports whether a flush has work to do.
func (s *Scheduler) Pending() bool {
	return s.dirty.Cardinality() > 0 || len(s.removed) > 0
}

// Mount creates the root node. Nothing renders until the next flush.
func (s *Scheduler) Mount(c Component, props ...any) (*Node, error) {
	if s.root != nil {
		return nil, ErrAlreadyMounted
	}
	s.root = newNode(nil, "", c, On(props...), false)
	s.dirty.Add(s.root)
	s.logger.Debug("mount queued", "node", c.Name)
	return s.root, nil
}

// Unmount detaches the root; the next flush runs only its cleanups.
func (s *Scheduler) Unmount() error {
	if s.root == nil {
		return ErrNotMounted
	}
	root := s.root
	s.root = nil
	s.detach(root)
	return nil
}

// MountChild attaches a child outside of the parent's render output. It
// stays mounted across parent renders until UnmountChild.
func (s *Scheduler) MountChild(parent *Node, key string, c Component, props ...any) (*Node, error) {
	if parent == nil {
		return nil, ErrNotMounted
	}
	if !parent.status.Live() {
		return nil, fmt.Errorf("%w: %s", ErrStaleUpdate, parent.Name())
	}
	if parent.imperativeChild(key) != nil {
		return nil, fmt.Errorf("%w: %q", ErrDuplicateKey, key)
	}
	child := newNode(parent, key, c, On(props...), false)
	parent.children = append(parent.children, child)
	s.dirty.Add(child)
	return child, nil
}

// UnmountChild detaches the child MountChild attached under key and
// schedules a cleanup-only flush for its subtree. Children declared by the
// parent's render leave only when a render drops them.
func (s *Scheduler) UnmountChild(parent *Node, key string) error {
	if parent == nil {
		return ErrNotMounted
	}
	if !parent.status.Live() {
		return fmt.Errorf("%w: %s", ErrStaleUpdate, parent.Name())
	}
	child := parent.imperativeChild(key)
	if child == nil {
		return fmt.Errorf("%w: %s/%s", ErrNoChild, parent.Name(), key)
	}
	parent.removeChild(child)
	s.detach(child)
	return nil
}

// SetState stores v, or the result of applying v if it is an Updater, in
// the node's slot and marks the node dirty. Storing a value equal to the
// current one does nothing.
func (s *Scheduler) SetState(n *Node, slot int, v any) error {
	if n == nil {
		return ErrNotMounted
	}
	if !n.status.Live() {
		return fmt.Errorf("%w: %s", ErrStaleUpdate, n.Name())
	}
	if slot < 0 || slot >= len(n.slots) {
		return fmt.Errorf("%w: %s #%d", ErrUnknownSlot, n.Name(), slot)
	}
	prev := n.slots[slot]
	next := v
	if update, ok := v.(Updater); ok {
		err := protect(func() error {
			next = update(prev)
			return nil
		})
		if err != nil {
			return fault(n, PhaseState, slot, err)
		}
	}
	if Same(prev, next) {
		return nil
	}
	n.slots[slot] = next
	s.dirty.Add(n)
	s.logger.Debug("state queued", "node", n.Name(), "slot", slot)
	return nil
}

// Batch runs fn and flushes once the outermost batch returns, so all state
// changes made inside render in a single pass.
func (s *Scheduler) Batch(fn func() error) error {
	s.batchDepth++
	err := fn()
	s.batchDepth--
	if err != nil {
		return err
	}
	if s.batchDepth > 0 {
		return nil
	}
	return s.Flush()
}

// Flush runs passes until no work is left. Effects that set state cause
// further passes.
func (s *Scheduler) Flush() error {
	if s.flushing {
		return nil
	}
	for pass := 0; s.Pending(); pass++ {
		if pass >= s.maxPasses {
			return fmt.Errorf("%w: still pending after %d passes", ErrUpdateDepth, pass)
		}
		if _, err := s.FlushOnce(); err != nil {
			return err
		}
	}
	return nil
}

// FlushOnce runs a single pass: render top-down, commit to the Renderer,
// then cleanups and effect actions bottom-up. It reports whether there
// was anything to do.
func (s *Scheduler) FlushOnce() (bool, error) {
	if s.flushing || !s.Pending() {
		return false, nil
	}
	s.flushing = true
	defer func() { s.flushing = false }()

	s.passes++
	s.logger.Debug("pass start", "pass", s.passes, "dirty", s.dirty.Cardinality(), "removed", len(s.removed))

	rendered := mapset.NewThreadUnsafeSet[*Node]()
	if s.root != nil {
		if err := s.renderTree(s.root, rendered); err != nil {
			return true, err
		}
	}

	removed := s.removed
	if rendered.Cardinality() > 0 || len(removed) > 0 {
		if err := s.commit(); err != nil {
			return true, err
		}
	}
	s.removed = nil
	for _, n := range removed {
		if err := s.unmountTree(n); err != nil {
			return true, err
		}
	}

	order := s.bottomUp(rendered)
	for _, n := range order {
		if !n.status.Live() {
			continue
		}
		for i, e := range n.effects {
			if !e.due || e.cleanup == nil {
				continue
			}
			s.trace(n, fmt.Sprintf("cleanup #%d", i))
			if err := e.runCleanup(); err != nil {
				return true, fault(n, PhaseCleanup, i, err)
			}
		}
	}
	for _, n := range order {
		if !n.status.Live() {
			continue
		}
		for i, e := range n.effects {
			if !e.due {
				continue
			}
			s.trace(n, fmt.Sprintf("effect #%d", i))
			if err := e.run(); err != nil {
				return true, fault(n, PhaseEffect, i, err)
			}
		}
	}

	s.logger.Debug("pass end", "pass", s.passes, "rendered", rendered.Cardinality(), "unmounted", len(removed))
	return true, nil
}

// commit hands the tree to the Renderer. Without a root the output is nil.
func (s *Scheduler) commit() error {
	if s.renderer == nil {
		return nil
	}
	if s.root == nil {
		s.output = nil
		return nil
	}
	var out any
	err := protect(func() (err error) {
		out, err = s.renderer.Render(s.root)
		return err
	})
	if err != nil {
		return &LifecycleFault{Node: rootName(s.root), Phase: PhaseCommit, Index: -1, Err: err}
	}
	s.output = out
	return nil
}

func (s *Scheduler) renderTree(n *Node, rendered mapset.Set[*Node]) error {
	if n.status == Mounting || n.propsChanged || s.dirty.Contains(n) {
		if err := s.render(n); err != nil {
			return err
		}
		rendered.Add(n)
	}
	for _, c := range n.Children() {
		if err := s.renderTree(c, rendered); err != nil {
			return err
		}
	}
	return nil
}

func (s *Scheduler) render(n *Node) error {
	s.dirty.Remove(n)
	n.propsChanged = false
	mounting := n.status == Mounting
	if mounting {
		s.trace(n, "mount")
	} else {
		n.status = Updating
		s.trace(n, "render")
	}

	f := &Frame{s: s, node: n, mounting: mounting}
	var out any
	err := protect(func() (err error) {
		out, err = n.comp.Render(f)
		return err
	})
	switch {
	case f.fault != nil:
		err = f.fault
	case err != nil:
		err = fault(n, PhaseRender, -1, err)
	case !mounting && f.cursor != len(n.hooks):
		err = fault(n, PhaseRender, f.cursor, ErrHookOrder)
	}
	if err != nil {
		if mounting {
			// stays queued so the next flush mounts it again
			n.hooks, n.slots, n.effects = nil, nil, nil
			s.dirty.Add(n)
		}
		return err
	}

	s.reconcile(n, f.decls)
	n.output = out
	n.renders++
	n.status = Rendered
	return nil
}

// reconcile replaces the declared children of n with decls, keeping
// imperatively mounted children after them, and detaches declared children
// the render dropped.
func (s *Scheduler) reconcile(n *Node, decls []*Node) {
	keep := mapset.NewThreadUnsafeSet[*Node](decls...)
	next := make([]*Node, 0, len(decls)+len(n.children))
	next = append(next, decls...)
	for _, c := range n.children {
		switch {
		case keep.Contains(c):
		case c.declared:
			s.detach(c)
		default:
			next = append(next, c)
		}
	}
	n.children = next
}

// detach marks the subtree as unmounting and queues it for cleanup.
func (s *Scheduler) detach(n *Node) {
	n.walk(func(c *Node) {
		c.status = Unmounting
		s.dirty.Remove(c)
	})
	s.removed = append(s.removed, n)
	s.logger.Debug("unmount queued", "node", n.Name())
}

// unmountTree runs every captured cleanup of the subtree, deepest first,
// in registration order within a node.
func (s *Scheduler) unmountTree(n *Node) error {
	for _, c := range n.children {
		if err := s.unmountTree(c); err != nil {
			return err
		}
	}
	for i, e := range n.effects {
		if e.cleanup == nil {
			continue
		}
		s.trace(n, fmt.Sprintf("cleanup #%d", i))
		if err := e.runCleanup(); err != nil {
			return fault(n, PhaseCleanup, i, err)
		}
	}
	s.trace(n, "unmount")
	n.status = Unmounted
	n.parent = nil
	return nil
}

// bottomUp lists the rendered nodes children-first.
func (s *Scheduler) bottomUp(rendered mapset.Set[*Node]) []*Node {
	if s.root == nil || rendered.Cardinality() == 0 {
		return nil
	}
	order := make([]*Node, 0, rendered.Cardinality())
	s.root.walk(func(n *Node) {
		if rendered.Contains(n) {
			order = append(order, n)
		}
	})
	return order
}

func (s *Scheduler) emit(n *Node, category Category, text string) {
	if len(s.sinks) == 0 {
		return
	}
	s.seq++
	e := Event{
		Seq:      s.seq,
		Node:     n.ID(),
		Source:   n.Name(),
		Depth:    n.Depth(),
		Category: category,
		Text:     text,
	}
	for _, sink := range s.sinks {
		sink.Emit(e)
	}
}

func (s *Scheduler) trace(n *Node, text string) {
	if s.tracing {
		s.emit(n, CategoryTrace, text)
	}
}

func rootName(n *Node) string {
	if n == nil {
		return "<root>"
	}
	return n.Name()
}
