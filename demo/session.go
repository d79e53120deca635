package demo

import (
	"fmt"

	"github.com/delaneyj/hookflow/lifecycle"
)

// StepLog holds the events one step produced.
type StepLog struct {
	Index  int
	Step   Step
	Events []lifecycle.Event
}

// Session plays scripts against a scheduler while recording every event.
type Session struct {
	Scheduler *lifecycle.Scheduler
	Recorder  *lifecycle.Recorder
	Steps     []StepLog
}

func NewSession(opts ...lifecycle.Option) *Session {
	rec := lifecycle.NewRecorder()
	opts = append([]lifecycle.Option{lifecycle.WithSink(rec)}, opts...)
	return &Session{
		Scheduler: lifecycle.NewScheduler(opts...),
		Recorder:  rec,
	}
}

// Play runs every step in order. before, if set, is called ahead of each
// step. Steps played before a failure stay recorded.
func (ss *Session) Play(sc *Script, before func(index int, st Step)) error {
	for i, st := range sc.Steps {
		if before != nil {
			before(i, st)
		}
		mark := ss.Recorder.Len()
		err := st.Apply(ss.Scheduler)
		ss.Steps = append(ss.Steps, StepLog{Index: i, Step: st, Events: ss.Recorder.Since(mark)})
		if err != nil {
			return fmt.Errorf("step %d (%s): %w", i+1, st.Action, err)
		}
	}
	return nil
}
