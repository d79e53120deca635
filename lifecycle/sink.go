package lifecycle

import (
	"context"
	"log/slog"
	"strconv"
)

// Category groups events for filtering and presentation.
type Category string

const (
	CategoryRender Category = "render"
	CategoryState  Category = "state"
	CategoryEffect Category = "effect"
	// CategoryTrace marks events emitted by the scheduler itself.
	CategoryTrace Category = "trace"
)

// Event is one step of the observable lifecycle log.
type Event struct {
	Seq uint64
	// Node is the emitting node's ID. Source alone is ambiguous when a
	// component is mounted more than once.
	Node     uint64
	Source   string
	Depth    int
	Category Category
	Text     string
}

func (e Event) String() string {
	return e.Source + ": " + e.Text
}

type Sink interface {
	Emit(Event)
}

type SinkFunc func(Event)

func (fn SinkFunc) Emit(e Event) { fn(e) }

type tee []Sink

func (t tee) Emit(e Event) {
	for _, s := range t {
		s.Emit(e)
	}
}

// Tee fans every event out to all sinks in order.
func Tee(sinks ...Sink) Sink {
	out := make(tee, 0, len(sinks))
	for _, s := range sinks {
		if s != nil {
			out = append(out, s)
		}
	}
	return out
}

// Recorder keeps the ordered event stream and, per source, the ordered log
// of that source's lines.
type Recorder struct {
	events   []Event
	bySource map[string][]string
	byNode   map[uint64][]string
	sources  []string
}

func NewRecorder() *Recorder {
	return &Recorder{
		bySource: map[string][]string{},
		byNode:   map[uint64][]string{},
	}
}

func (r *Recorder) Emit(e Event) {
	r.events = append(r.events, e)
	if _, ok := r.bySource[e.Source]; !ok {
		r.sources = append(r.sources, e.Source)
	}
	r.bySource[e.Source] = append(r.bySource[e.Source], e.Text)
	r.byNode[e.Node] = append(r.byNode[e.Node], e.Text)
}

func (r *Recorder) Len() int { return len(r.events) }

func (r *Recorder) Events() []Event {
	out := make([]Event, len(r.events))
	copy(out, r.events)
	return out
}

// Since returns the events recorded after the first mark events.
func (r *Recorder) Since(mark int) []Event {
	if mark >= len(r.events) {
		return nil
	}
	if mark < 0 {
		mark = 0
	}
	out := make([]Event, len(r.events)-mark)
	copy(out, r.events[mark:])
	return out
}

// Lines renders the whole stream as "Source: Text" lines.
func (r *Recorder) Lines() []string {
	out := make([]string, len(r.events))
	for i, e := range r.events {
		out[i] = e.String()
	}
	return out
}

// Log returns the ordered texts emitted by source.
func (r *Recorder) Log(source string) []string {
	lines := r.bySource[source]
	out := make([]string, len(lines))
	copy(out, lines)
	return out
}

// NodeLog returns the ordered texts emitted by the node with the given ID.
func (r *Recorder) NodeLog(id uint64) []string {
	lines := r.byNode[id]
	out := make([]string, len(lines))
	copy(out, lines)
	return out
}

// Sources lists event sources in order of first appearance.
func (r *Recorder) Sources() []string {
	out := make([]string, len(r.sources))
	copy(out, r.sources)
	return out
}

func (r *Recorder) Reset() {
	r.events = r.events[:0]
	r.bySource = map[string][]string{}
	r.byNode = map[uint64][]string{}
	r.sources = r.sources[:0]
}

// SlogSink mirrors events to a structured logger.
type SlogSink struct {
	Logger *slog.Logger
	Level  slog.Level
}

func (s SlogSink) Emit(e Event) {
	if s.Logger == nil {
		return
	}
	s.Logger.Log(context.Background(), s.Level, e.Text,
		slog.String("source", e.Source),
		slog.String("node", strconv.FormatUint(e.Node, 16)),
		slog.String("category", string(e.Category)),
		slog.Uint64("seq", e.Seq),
		slog.Int("depth", e.Depth),
	)
}
