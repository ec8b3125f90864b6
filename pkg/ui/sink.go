// Package ui renders what a profile run does: dependency blocks that fired,
// copies, skipped files, glob expansions and executed commands. Components
// report through the Sink interface; nothing in the core prints directly.
package ui

import (
	"fmt"
	"io"
	"sync"
)

// EventKind identifies what happened
type EventKind string

const (
	EventBlock   EventKind = "block"
	EventCopy    EventKind = "copy"
	EventSkip    EventKind = "skip"
	EventGlob    EventKind = "glob"
	EventExec    EventKind = "exec"
	EventDryRun  EventKind = "dry-run"
	EventFailure EventKind = "failure"
)

// Event is a single observable step of a run. Fields not relevant to Kind
// are left empty.
type Event struct {
	Kind       EventKind `json:"kind"`
	App        string    `json:"app,omitempty"`
	Rule       string    `json:"rule,omitempty"`
	Text       string    `json:"text,omitempty"`
	Source     string    `json:"source,omitempty"`
	Target     string    `json:"target,omitempty"`
	Pattern    string    `json:"pattern,omitempty"`
	Command    string    `json:"command,omitempty"`
	Dir        string    `json:"dir,omitempty"`
	Matched    int       `json:"matched,omitempty"`
	Unresolved int       `json:"unresolved,omitempty"`
	Reason     string    `json:"reason,omitempty"`
}

// Sink receives events and provides the streams executed commands write to.
type Sink interface {
	Emit(e Event)
	Stdout() io.Writer
	Stderr() io.Writer
}

// NewSink creates a sink rendering to out (events and command stdout) and
// errOut (command stderr) in the given format.
func NewSink(format Format, out, errOut io.Writer) (Sink, error) {
	switch Resolve(format, out) {
	case FormatTerminal:
		return newTerminal(out, errOut), nil
	case FormatText:
		return &textSink{out: out, errOut: errOut}, nil
	case FormatJSON:
		return newJSON(out, errOut), nil
	default:
		return nil, fmt.Errorf("unknown format: %v", format)
	}
}

type discard struct{}

func (discard) Emit(Event)        {}
func (discard) Stdout() io.Writer { return io.Discard }
func (discard) Stderr() io.Writer { return io.Discard }

// Discard drops every event and all command output.
var Discard Sink = discard{}

// Recorder keeps every event and command output in memory.
type Recorder struct {
	mu     sync.Mutex
	events []Event
	out    syncBuffer
	errOut syncBuffer
}

// NewRecorder creates an empty Recorder.
func NewRecorder() *Recorder {
	return &Recorder{}
}

func (r *Recorder) Emit(e Event) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, e)
}

func (r *Recorder) Stdout() io.Writer { return &r.out }

func (r *Recorder) Stderr() io.Writer { return &r.errOut }

// Events returns a copy of the recorded events in emission order.
func (r *Recorder) Events() []Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Event(nil), r.events...)
}

// Of returns the recorded events of one kind.
func (r *Recorder) Of(kind EventKind) []Event {
	var out []Event
	for _, e := range r.Events() {
		if e.Kind == kind {
			out = append(out, e)
		}
	}
	return out
}

// Blocks returns the text of every surfaced dependency block.
func (r *Recorder) Blocks() []string {
	var out []string
	for _, e := range r.Of(EventBlock) {
		out = append(out, e.Text)
	}
	return out
}

// Output returns what executed commands wrote to stdout.
func (r *Recorder) Output() string { return r.out.String() }

// ErrorOutput returns what executed commands wrote to stderr.
func (r *Recorder) ErrorOutput() string { return r.errOut.String() }
