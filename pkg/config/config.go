package config

import (
	"github.com/arthur-debert/vacuum/pkg/executor"
	"github.com/arthur-debert/vacuum/pkg/parser"
	"github.com/arthur-debert/vacuum/pkg/paths"
	"github.com/arthur-debert/vacuum/pkg/ui"
)

// Config is the resolved configuration
type Config struct {
	Grammar   Grammar   `koanf:"grammar"`
	Execution Execution `koanf:"execution"`
	Profiles  Profiles  `koanf:"profiles"`
	Output    Output    `koanf:"output"`
}

// Grammar selects the opt-in profile grammar extensions
type Grammar struct {
	WireActions  bool `koanf:"wire_actions"`
	PathLiterals bool `koanf:"path_literals"`
}

// Execution controls how actions run
type Execution struct {
	ContinueOnCommandError bool     `koanf:"continue_on_command_error"`
	Shell                  []string `koanf:"shell"`
}

// Profiles lists extra profile directories
type Profiles struct {
	Dirs []string `koanf:"dirs"`
}

// Output selects the console format
type Output struct {
	Format string `koanf:"format"`
}

// ParserOptions returns the parser options the grammar settings enable.
func (c *Config) ParserOptions() []parser.Option {
	var opts []parser.Option
	if c.Grammar.WireActions {
		opts = append(opts, parser.WithActions())
	}
	if c.Grammar.PathLiterals {
		opts = append(opts, parser.WithPathLiterals())
	}
	return opts
}

// Parser builds a parser with the configured grammar.
func (c *Config) Parser() *parser.Parser {
	return parser.New(c.ParserOptions()...)
}

// ExecutorOptions maps the execution settings onto executor options.
func (c *Config) ExecutorOptions(sink ui.Sink) executor.Options {
	return executor.Options{
		ContinueOnCommandError: c.Execution.ContinueOnCommandError,
		Sink:                   sink,
	}
}

// ProfileDirs returns the configured profile directories, with ~ expanded,
// followed by the default one.
func (c *Config) ProfileDirs() []string {
	dirs := make([]string, 0, len(c.Profiles.Dirs)+1)
	for _, dir := range c.Profiles.Dirs {
		dirs = append(dirs, paths.ExpandHome(dir))
	}
	return append(dirs, paths.DefaultProfileDirs()...)
}

// OutputFormat parses the configured output format.
func (c *Config) OutputFormat() (ui.Format, error) {
	return ui.ParseFormat(c.Output.Format)
}
