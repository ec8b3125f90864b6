// Package profile loads application profiles from disk. Besides the profile
// grammar, profiles can be written as TOML or YAML documents, which also
// carry the dependency table, per-file checks, scopes and working
// directories the grammar has no syntax for.
package profile

import (
	"bytes"
	stderrors "errors"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/arthur-debert/vacuum/pkg/errors"
	"github.com/arthur-debert/vacuum/pkg/logging"
	"github.com/arthur-debert/vacuum/pkg/parser"
	"github.com/arthur-debert/vacuum/pkg/types"
	toml "github.com/pelletier/go-toml/v2"
	"github.com/spf13/afero"
	"gopkg.in/yaml.v3"
)

// Format is the encoding of a profile file
type Format string

const (
	FormatDSL  Format = "dsl"
	FormatTOML Format = "toml"
	FormatYAML Format = "yaml"
)

// Extensions lists the profile file extensions in lookup order.
var Extensions = []string{".vac", ".toml", ".yaml", ".yml"}

// FormatOf picks the format from the file extension. Anything that is not
// TOML or YAML is read with the profile grammar.
func FormatOf(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		return FormatTOML
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatDSL
	}
}

// document is the structured form shared by TOML and YAML profiles.
type document struct {
	Name         string            `toml:"name" yaml:"name"`
	Dependencies map[string]string `toml:"dependencies" yaml:"dependencies"`
	Actions      []actionDoc       `toml:"actions" yaml:"actions"`
}

type actionDoc struct {
	Exec     string     `toml:"exec" yaml:"exec"`
	Copy     string     `toml:"copy" yaml:"copy"`
	CopyGlob string     `toml:"copy_glob" yaml:"copy_glob"`
	Scope    string     `toml:"scope" yaml:"scope"`
	Dir      string     `toml:"dir" yaml:"dir"`
	WorkDir  string     `toml:"workdir" yaml:"workdir"`
	Checks   []checkDoc `toml:"checks" yaml:"checks"`
}

// checkDoc is an exists check unless Contains is set.
type checkDoc struct {
	Rule     string `toml:"rule" yaml:"rule"`
	Contains string `toml:"contains" yaml:"contains"`
}

// Loader reads profiles from a filesystem.
type Loader struct {
	fs     afero.Fs
	parser *parser.Parser
}

// NewLoader creates a Loader. A nil parser uses the default grammar.
func NewLoader(fs afero.Fs, p *parser.Parser) *Loader {
	if fs == nil {
		fs = afero.NewOsFs()
	}
	if p == nil {
		p = parser.New()
	}
	return &Loader{fs: fs, parser: p}
}

// Load reads a profile from the host filesystem.
func Load(path string, p *parser.Parser) (*types.App, error) {
	return NewLoader(nil, p).Load(path)
}

// Find locates a profile on the host filesystem.
func Find(name string, dirs []string) (string, error) {
	return NewLoader(nil, nil).Find(name, dirs)
}

// Load reads and validates the profile at path.
func (l *Loader) Load(path string) (*types.App, error) {
	logger := logging.GetLogger("profile").With().Str("path", path).Logger()

	data, err := afero.ReadFile(l.fs, path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrapf(err, errors.ErrNotFound, "profile %s not found", path)
		}
		return nil, errors.Wrapf(err, errors.ErrIO, "cannot read profile %s", path)
	}

	format := FormatOf(path)
	app, err := l.Decode(format, data)
	if err != nil {
		return nil, withPath(err, path)
	}

	logger.Debug().
		Str("format", string(format)).
		Str("app", app.Name).
		Int("dependencies", len(app.Dependencies)).
		Int("actions", len(app.Actions)).
		Msg("Profile loaded")
	return app, nil
}

// Decode parses data in the given format.
func (l *Loader) Decode(format Format, data []byte) (*types.App, error) {
	switch format {
	case FormatTOML:
		var doc document
		if err := toml.NewDecoder(bytes.NewReader(data)).DisallowUnknownFields().Decode(&doc); err != nil {
			return nil, errors.Wrap(err, errors.ErrProfileInvalid, "invalid TOML profile")
		}
		return doc.app()
	case FormatYAML:
		var doc document
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(&doc); err != nil {
			if stderrors.Is(err, io.EOF) {
				return nil, errors.New(errors.ErrProfileInvalid, "empty YAML profile")
			}
			return nil, errors.Wrap(err, errors.ErrProfileInvalid, "invalid YAML profile")
		}
		return doc.app()
	default:
		app, err := l.parser.Parse(string(data))
		if err != nil {
			return nil, err
		}
		for i, action := range app.Actions {
			if err := action.Valid(); err != nil {
				return nil, invalidAction(err, i)
			}
		}
		return app, nil
	}
}

// Find returns the first profile named name in dirs, trying each extension
// in order within a directory before moving to the next one. A name that
// already points at a file is returned as is.
func (l *Loader) Find(name string, dirs []string) (string, error) {
	if name == "" {
		return "", errors.New(errors.ErrInvalidInput, "profile name is empty")
	}

	if strings.ContainsRune(name, filepath.Separator) || filepath.Ext(name) != "" {
		if l.isFile(name) {
			return name, nil
		}
	}

	for _, dir := range dirs {
		for _, ext := range Extensions {
			candidate := filepath.Join(dir, name+ext)
			if l.isFile(candidate) {
				return candidate, nil
			}
		}
	}

	return "", errors.Newf(errors.ErrNotFound, "profile %q not found", name).
		WithDetail("dirs", dirs)
}

func (l *Loader) isFile(path string) bool {
	info, err := l.fs.Stat(path)
	return err == nil && !info.IsDir()
}

func (d document) app() (*types.App, error) {
	if strings.TrimSpace(d.Name) == "" {
		return nil, errors.New(errors.ErrProfileInvalid, "profile has no name")
	}

	app := &types.App{Name: d.Name}

	rules := make([]string, 0, len(d.Dependencies))
	for rule := range d.Dependencies {
		rules = append(rules, rule)
	}
	sort.Strings(rules)
	for _, rule := range rules {
		app.Dependencies = append(app.Dependencies, types.Dependency{Name: rule, Block: d.Dependencies[rule]})
	}

	for i, doc := range d.Actions {
		action, err := doc.action()
		if err == nil {
			err = action.Valid()
		}
		if err == nil {
			err = checkRules(app, action)
		}
		if err != nil {
			return nil, invalidAction(err, i)
		}
		app.Actions = append(app.Actions, action)
	}
	return app, nil
}

func (a actionDoc) action() (types.Action, error) {
	var action types.Action
	set := 0
	if a.Exec != "" {
		action = types.Execute(a.Exec)
		set++
	}
	if a.Copy != "" {
		action = types.Copy(a.Copy)
		set++
	}
	if a.CopyGlob != "" {
		action = types.CopyGlob(a.CopyGlob)
		set++
	}
	if set != 1 {
		return action, errors.New(errors.ErrProfileInvalid, "exactly one of exec, copy or copy_glob is required")
	}

	action.Scope = types.Scope(a.Scope)
	action.Dir = a.Dir
	action.WorkDir = a.WorkDir
	for _, c := range a.Checks {
		if c.Contains != "" {
			action.Checks = append(action.Checks, types.Contains(c.Contains, c.Rule))
		} else {
			action.Checks = append(action.Checks, types.Exists(c.Rule))
		}
	}
	return action, nil
}

func checkRules(app *types.App, action types.Action) error {
	for _, c := range action.Checks {
		if !app.HasDependency(c.Rule) {
			return errors.Newf(errors.ErrProfileInvalid, "check %s names an unknown rule", c)
		}
	}
	return nil
}

func invalidAction(err error, index int) error {
	return errors.Wrapf(err, errors.ErrProfileInvalid, "action %d is invalid", index+1).
		WithDetail("index", index)
}

func withPath(err error, path string) error {
	var vErr *errors.VacuumError
	if stderrors.As(err, &vErr) {
		return vErr.WithDetail("profile", path)
	}
	return err
}
