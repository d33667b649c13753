// Package trace is the structured observability sink for contract
// checking. Checks emit events keyed by contract, layer, and module
// pair; sinks decide what to do with them. No global logger.
package trace

import (
	"encoding/json"
	"io"
	"sync"
)

// Event kinds.
const (
	KindLayerCheck          = "layer_check"
	KindViolationFound      = "violation_found"
	KindViolationSuppressed = "violation_suppressed"
)

// Event is one step of a contract check.
type Event struct {
	Kind     string   `json:"kind"`
	Contract string   `json:"contract"`
	Package  string   `json:"package"`
	Layer    string   `json:"layer"`
	Importer string   `json:"importer,omitempty"`
	Imported string   `json:"imported,omitempty"`
	Path     []string `json:"path,omitempty"`
}

// Sink receives check events.
type Sink interface {
	Emit(Event)
}

type nopSink struct{}

func (nopSink) Emit(Event) {}

// Nop returns a sink that discards all events.
func Nop() Sink {
	return nopSink{}
}

// WriterSink writes events as JSON lines. Safe for concurrent use.
type WriterSink struct {
	mu  sync.Mutex
	enc *json.Encoder
}

// NewWriterSink creates a JSONL sink over w.
func NewWriterSink(w io.Writer) *WriterSink {
	return &WriterSink{enc: json.NewEncoder(w)}
}

// Emit writes the event as one JSON line. Encoding errors are dropped:
// tracing never fails a check.
func (s *WriterSink) Emit(ev Event) {
	s.mu.Lock()
	defer s.mu.Unlock()
	_ = s.enc.Encode(ev)
}

// Recorder accumulates events in memory. Safe for concurrent use.
type Recorder struct {
	mu     sync.Mutex
	events []Event
}

// Emit appends the event.
func (r *Recorder) Emit(ev Event) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, ev)
}

// Events returns a copy of the accumulated events.
func (r *Recorder) Events() []Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Event(nil), r.events...)
}

// ByKind returns the accumulated events of one kind.
func (r *Recorder) ByKind(kind string) []Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []Event
	for _, ev := range r.events {
		if ev.Kind == kind {
			out = append(out, ev)
		}
	}
	return out
}
