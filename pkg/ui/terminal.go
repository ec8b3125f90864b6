package ui

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
	"github.com/pterm/pterm"
)

var (
	blockTitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.AdaptiveColor{Light: "#B45309", Dark: "#FBBF24"})

	blockBoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.AdaptiveColor{Light: "#B45309", Dark: "#FBBF24"}).
			Padding(0, 1)
)

// terminalSink renders rich output: pterm-styled trace lines and dependency
// blocks rendered as markdown inside a lipgloss box.
type terminalSink struct {
	out      io.Writer
	errOut   io.Writer
	markdown *glamour.TermRenderer
}

func newTerminal(out, errOut io.Writer) *terminalSink {
	s := &terminalSink{out: out, errOut: errOut}
	if r, err := glamour.NewTermRenderer(glamour.WithAutoStyle(), glamour.WithWordWrap(72)); err == nil {
		s.markdown = r
	}
	return s
}

func (s *terminalSink) Stdout() io.Writer { return s.out }

func (s *terminalSink) Stderr() io.Writer { return s.errOut }

func (s *terminalSink) Emit(e Event) {
	switch e.Kind {
	case EventBlock:
		_, _ = fmt.Fprintln(s.out, s.block(e))
	case EventCopy:
		_, _ = fmt.Fprintf(s.out, "%s %s %s %s\n",
			pterm.FgGreen.Sprint("copy"), e.Source, pterm.FgGray.Sprint("→"), e.Target)
	case EventSkip:
		_, _ = fmt.Fprintf(s.out, "%s %s %s\n",
			pterm.FgGray.Sprint("skip"), e.Source, pterm.FgGray.Sprintf("(%s)", e.Reason))
	case EventGlob:
		line := fmt.Sprintf("%s %s %s", pterm.FgCyan.Sprint("glob"), pterm.Bold.Sprint(e.Pattern), pterm.FgGray.Sprintf("%d matched", e.Matched))
		if e.Unresolved > 0 {
			line += " " + pterm.FgYellow.Sprintf("%d unresolved", e.Unresolved)
		}
		_, _ = fmt.Fprintln(s.out, line)
	case EventExec:
		_, _ = fmt.Fprintf(s.out, "%s %s %s\n",
			pterm.FgMagenta.Sprint("exec"), pterm.Bold.Sprint(e.Command), pterm.FgGray.Sprintf("in %s", e.Dir))
	case EventDryRun:
		_, _ = fmt.Fprintf(s.out, "%s %s\n", pterm.FgYellow.Sprint("would"), e.Reason)
	case EventFailure:
		_, _ = fmt.Fprintf(s.out, "%s %s\n", pterm.FgRed.Sprint("failed"), e.Reason)
	default:
		_, _ = fmt.Fprintln(s.out, plainLine(e))
	}
}

func (s *terminalSink) block(e Event) string {
	body := e.Text
	if s.markdown != nil {
		if rendered, err := s.markdown.Render(e.Text); err == nil {
			body = strings.Trim(rendered, "\n")
		}
	}
	return blockBoxStyle.Render(blockTitleStyle.Render(e.Rule) + "\n" + body)
}
