package parser

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// TraceEntry is one step of a parse failure. Leaf entries carry a Message
// describing what was expected; enclosing entries carry the Rule being
// matched when the failure happened.
type TraceEntry struct {
	Offset  int
	Rule    string
	Message string
}

// ParseError is a failed parse with its rule trace, innermost entry first.
type ParseError struct {
	Input string
	Trace []TraceEntry
}

// Offset is the byte offset of the innermost failure.
func (e *ParseError) Offset() int {
	if len(e.Trace) == 0 {
		return 0
	}
	return e.Trace[0].Offset
}

// Position returns the 1-based line and column of the innermost failure.
func (e *ParseError) Position() (line, column int) {
	return position(e.Input, e.Offset())
}

// Summary is a single line describing the innermost failure.
func (e *ParseError) Summary() string {
	line, col := e.Position()
	msg := "invalid input"
	for _, entry := range e.Trace {
		if entry.Message != "" {
			msg = entry.Message
			break
		}
	}
	return fmt.Sprintf("line %d, column %d: %s", line, col, msg)
}

// Error renders the whole trace, one block per entry, each pointing at the
// offending position in the source line.
func (e *ParseError) Error() string {
	var b strings.Builder
	for i, entry := range e.Trace {
		line, col := position(e.Input, entry.Offset)
		if entry.Rule != "" {
			fmt.Fprintf(&b, "%d: at line %d, column %d, in %s:\n", i, line, col, entry.Rule)
		} else {
			fmt.Fprintf(&b, "%d: at line %d, column %d:\n", i, line, col)
		}
		b.WriteString(lineAt(e.Input, entry.Offset))
		b.WriteByte('\n')
		b.WriteString(strings.Repeat(" ", col-1))
		b.WriteString("^\n")
		if entry.Message != "" {
			b.WriteString(entry.Message)
			b.WriteByte('\n')
		}
		if i < len(e.Trace)-1 {
			b.WriteByte('\n')
		}
	}
	return strings.TrimRight(b.String(), "\n")
}

func position(input string, offset int) (line, column int) {
	if offset > len(input) {
		offset = len(input)
	}
	before := input[:offset]
	line = strings.Count(before, "\n") + 1
	lineStart := strings.LastIndexByte(before, '\n') + 1
	column = utf8.RuneCountInString(before[lineStart:]) + 1
	return line, column
}

func lineAt(input string, offset int) string {
	if offset > len(input) {
		offset = len(input)
	}
	start := strings.LastIndexByte(input[:offset], '\n') + 1
	end := strings.IndexByte(input[offset:], '\n')
	if end < 0 {
		end = len(input)
	} else {
		end += offset
	}
	return strings.TrimRight(input[start:end], "\r")
}
