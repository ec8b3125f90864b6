package ui

import (
	"encoding/json"
	"io"
)

// jsonSink writes one JSON object per event for machine consumption
type jsonSink struct {
	encoder *json.Encoder
	out     io.Writer
	errOut  io.Writer
}

func newJSON(out, errOut io.Writer) *jsonSink {
	return &jsonSink{encoder: json.NewEncoder(out), out: out, errOut: errOut}
}

// Command stdout goes to errOut so the event stream on out stays parseable.
func (s *jsonSink) Stdout() io.Writer { return s.errOut }

func (s *jsonSink) Stderr() io.Writer { return s.errOut }

func (s *jsonSink) Emit(e Event) {
	_ = s.encoder.Encode(e)
}
