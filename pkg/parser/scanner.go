package parser

import (
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/arthur-debert/vacuum/pkg/types"
)

const (
	spaceChars  = " \t\r\n"
	escapeChars = `"n\`
	// pathChars are admitted inside literals only with WithPathLiterals.
	pathChars = "._-/*?~[]{},+@=:"
)

// failure is an unsuccessful match. A fatal failure happened after the
// grammar committed to an alternative and must not be backtracked over.
type failure struct {
	fatal bool
	trace []TraceEntry
}

func (f *failure) within(offset int, rule string) *failure {
	f.trace = append(f.trace, TraceEntry{Offset: offset, Rule: rule})
	return f
}

func (f *failure) commit() *failure {
	f.fatal = true
	return f
}

type scanner struct {
	src          string
	pos          int
	pathLiterals bool
}

func (s *scanner) eof() bool {
	return s.pos >= len(s.src)
}

func (s *scanner) peek(c byte) bool {
	return s.pos < len(s.src) && s.src[s.pos] == c
}

func (s *scanner) skipSpace() {
	for s.pos < len(s.src) && strings.IndexByte(spaceChars, s.src[s.pos]) >= 0 {
		s.pos++
	}
}

func (s *scanner) found() string {
	if s.eof() {
		return "end of input"
	}
	r, _ := utf8.DecodeRuneInString(s.src[s.pos:])
	return strconv.QuoteRune(r)
}

func (s *scanner) expected(what string) *failure {
	return &failure{trace: []TraceEntry{{
		Offset:  s.pos,
		Message: fmt.Sprintf("expected %s, found %s", what, s.found()),
	}}}
}

func (s *scanner) char(c byte) *failure {
	if s.peek(c) {
		s.pos++
		return nil
	}
	return s.expected(strconv.QuoteRune(rune(c)))
}

func (s *scanner) keyword(kw string) *failure {
	if strings.HasPrefix(s.src[s.pos:], kw) {
		s.pos += len(kw)
		return nil
	}
	return s.expected(strconv.Quote(kw))
}

func (s *scanner) literalChar(c byte) bool {
	switch {
	case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c >= '0' && c <= '9':
		return true
	case s.pathLiterals:
		return strings.IndexByte(pathChars, c) >= 0
	}
	return false
}

// content matches a non-empty run of literal characters and escapes.
func (s *scanner) content() (string, *failure) {
	start := s.pos
	for !s.eof() {
		c := s.src[s.pos]
		switch {
		case s.literalChar(c):
			s.pos++
		case c == '\\':
			if s.pos+1 < len(s.src) && strings.IndexByte(escapeChars, s.src[s.pos+1]) >= 0 {
				s.pos += 2
				continue
			}
			s.pos++
			return "", s.expected(`one of '"', 'n', '\\' after '\\'`)
		default:
			return s.endContent(start)
		}
	}
	return s.endContent(start)
}

func (s *scanner) endContent(start int) (string, *failure) {
	if s.pos == start {
		what := "a letter, digit or escape sequence"
		if s.pathLiterals {
			what = "a letter, digit, path character or escape sequence"
		}
		return "", s.expected(what)
	}
	return s.src[start:s.pos], nil
}

// stringLit matches '"' content '"'. Everything after the opening quote is
// committed.
func (s *scanner) stringLit() (string, *failure) {
	start := s.pos
	if f := s.char('"'); f != nil {
		return "", f.within(start, "string")
	}
	value, f := s.content()
	if f == nil {
		f = s.char('"')
	}
	if f != nil {
		return "", f.commit().within(start, "string")
	}
	return value, nil
}

// command matches kw ws string, committed once kw matched.
func (s *scanner) command(kw string) (string, *failure) {
	start := s.pos
	if f := s.keyword(kw); f != nil {
		return "", f
	}
	s.skipSpace()
	value, f := s.stringLit()
	if f != nil {
		return "", f.commit().within(start, kw)
	}
	return value, nil
}

var alternatives = []struct {
	keyword string
	build   func(string) types.Action
}{
	{"exec", types.Execute},
	// copy_glob must be tried before its prefix copy.
	{"copy_glob", types.CopyGlob},
	{"copy", types.Copy},
}

func (s *scanner) action() (types.Action, *failure) {
	s.skipSpace()
	start := s.pos
	for _, alt := range alternatives {
		value, f := s.command(alt.keyword)
		if f == nil {
			return alt.build(value), nil
		}
		if f.fatal {
			return types.Action{}, f.within(start, "action")
		}
		s.pos = start
	}
	return types.Action{}, s.expected(`"exec", "copy_glob" or "copy"`).within(start, "action")
}

// block matches "{" action (ws ";" action)* ws "}". An empty block is
// accepted; a trailing separator is not.
func (s *scanner) block() ([]types.Action, *failure) {
	start := s.pos
	if f := s.char('{'); f != nil {
		return nil, f.within(start, "block")
	}

	var actions []types.Action
	var dropped *failure
	mark := s.pos
	first, f := s.action()
	switch {
	case f != nil && f.fatal:
		return nil, f.within(start, "block")
	case f != nil:
		dropped = f
		s.pos = mark
	default:
		actions = append(actions, first)
		for {
			mark = s.pos
			s.skipSpace()
			if s.char(';') != nil {
				s.pos = mark
				break
			}
			next, f := s.action()
			if f != nil {
				if f.fatal {
					return nil, f.within(start, "block")
				}
				dropped = f
				s.pos = mark
				break
			}
			actions = append(actions, next)
		}
	}

	s.skipSpace()
	if f := s.char('}'); f != nil {
		f.commit()
		if dropped != nil {
			f.trace = append(f.trace, dropped.trace...)
		}
		return nil, f.within(start, "block")
	}
	return actions, nil
}

// profile matches ws "app" ws string.
func (s *scanner) profile() (string, *failure) {
	s.skipSpace()
	start := s.pos
	if f := s.keyword("app"); f != nil {
		return "", f.within(start, "profile")
	}
	s.skipSpace()
	name, f := s.stringLit()
	if f != nil {
		return "", f.within(start, "profile")
	}
	return name, nil
}

func (s *scanner) end() *failure {
	s.skipSpace()
	if s.eof() {
		return nil
	}
	return s.expected("end of input")
}
