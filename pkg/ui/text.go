package ui

import (
	"fmt"
	"io"
)

// textSink renders plain lines
type textSink struct {
	out    io.Writer
	errOut io.Writer
}

func (s *textSink) Stdout() io.Writer { return s.out }

func (s *textSink) Stderr() io.Writer { return s.errOut }

func (s *textSink) Emit(e Event) {
	_, _ = fmt.Fprintln(s.out, plainLine(e))
}

func plainLine(e Event) string {
	switch e.Kind {
	case EventBlock:
		return fmt.Sprintf("[%s] %s", e.Rule, e.Text)
	case EventCopy:
		return fmt.Sprintf("copy %s -> %s", e.Source, e.Target)
	case EventSkip:
		return fmt.Sprintf("skip %s (%s)", e.Source, e.Reason)
	case EventGlob:
		line := fmt.Sprintf("glob %q in %s: %d matched", e.Pattern, e.Source, e.Matched)
		if e.Unresolved > 0 {
			line += fmt.Sprintf(", %d unresolved", e.Unresolved)
		}
		return line
	case EventExec:
		return fmt.Sprintf("exec %q in %s", e.Command, e.Dir)
	case EventDryRun:
		return fmt.Sprintf("would %s", e.Reason)
	case EventFailure:
		return fmt.Sprintf("failed: %s", e.Reason)
	default:
		return fmt.Sprintf("%s %s", e.Kind, e.Reason)
	}
}
