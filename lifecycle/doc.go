// Package lifecycle is a small component-tree renderer that models how a
// declarative UI runtime orders render passes and deferred side effects.
//
// Components are plain render functions. While rendering they call hooks on
// the Frame they receive: UseState allocates a state slot whose factory runs
// once per node lifetime, UseEffect registers an action that the Scheduler
// runs after the render pass, and Frame.Child declares a child component.
//
//	s := lifecycle.NewScheduler(lifecycle.WithSink(rec))
//	s.Mount(app)
//	if err := s.Flush(); err != nil {
//		...
//	}
//
// State changes never render inline. They mark the node dirty and the next
// Flush renders all dirty nodes top-down, then runs cleanups and effect
// actions bottom-up.
//
// A Scheduler is not safe for concurrent use.
package lifecycle
