package parser

import (
	"github.com/arthur-debert/vacuum/pkg/errors"
	"github.com/arthur-debert/vacuum/pkg/logging"
	"github.com/arthur-debert/vacuum/pkg/types"
	"github.com/rs/zerolog"
)

// Option configures a Parser.
type Option func(*Parser)

// WithActions makes Parse return the parsed action block.
func WithActions() Option {
	return func(p *Parser) { p.wireActions = true }
}

// WithPathLiterals admits path and glob characters inside string literals.
func WithPathLiterals() Option {
	return func(p *Parser) { p.pathLiterals = true }
}

// Parser parses profile text. The zero value is not usable; use New.
type Parser struct {
	wireActions  bool
	pathLiterals bool
	logger       zerolog.Logger
}

// New creates a parser with the given options.
func New(opts ...Option) *Parser {
	p := &Parser{logger: logging.GetLogger("parser")}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Parse parses a whole profile. Trailing input is rejected.
func (p *Parser) Parse(text string) (*types.App, error) {
	s := p.scanner(text)

	name, f := s.profile()
	if f != nil {
		return nil, p.fail(text, f)
	}

	var actions []types.Action
	hasBlock := false
	s.skipSpace()
	if s.peek('{') {
		actions, f = s.block()
		if f != nil {
			return nil, p.fail(text, f)
		}
		hasBlock = true
	}
	if f := s.end(); f != nil {
		return nil, p.fail(text, f)
	}

	app := &types.App{Name: name}
	switch {
	case hasBlock && p.wireActions:
		app.Actions = actions
	case hasBlock && len(actions) > 0:
		app.UnwiredActions = len(actions)
		p.logger.Warn().
			Str("app", name).
			Int("actions", len(actions)).
			Msg("Action block parsed but not wired into the profile (grammar.wire_actions is off)")
	}

	p.logger.Debug().
		Str("app", name).
		Int("actions", len(app.Actions)).
		Msg("Profile parsed")
	return app, nil
}

// ParseActions parses a standalone action block.
func (p *Parser) ParseActions(text string) ([]types.Action, error) {
	s := p.scanner(text)
	s.skipSpace()
	actions, f := s.block()
	if f == nil {
		f = s.end()
	}
	if f != nil {
		return nil, p.fail(text, f)
	}
	return actions, nil
}

func (p *Parser) scanner(text string) *scanner {
	return &scanner{src: text, pathLiterals: p.pathLiterals}
}

func (p *Parser) fail(text string, f *failure) error {
	pe := &ParseError{Input: text, Trace: f.trace}
	line, col := pe.Position()
	p.logger.Debug().
		Int("line", line).
		Int("column", col).
		Int("depth", len(pe.Trace)).
		Msg("Parse failed")
	return errors.Wrap(pe, errors.ErrParse, "invalid profile").
		WithDetail("line", line).
		WithDetail("column", col)
}

// Parse parses text with the default grammar.
func Parse(text string) (*types.App, error) {
	return New().Parse(text)
}

// ParseActions parses an action block with the default grammar.
func ParseActions(text string) ([]types.Action, error) {
	return New().ParseActions(text)
}
