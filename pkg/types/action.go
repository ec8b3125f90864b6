package types

import (
	"fmt"
	"path/filepath"
	"strings"
)

// ActionKind tags an Action variant.
type ActionKind string

const (
	ActionExecute  ActionKind = "exec"
	ActionCopy     ActionKind = "copy"
	ActionCopyGlob ActionKind = "copy_glob"
)

// Scope selects the root an action is resolved against before Dir is applied.
type Scope string

const (
	ScopeRoot   Scope = ""
	ScopeHome   Scope = "home"
	ScopeConfig Scope = "config"
)

// Action is one declarative step of a profile. Value holds the command,
// the file name or the glob pattern depending on Kind.
//
// Scope, Dir, WorkDir and Checks are only reachable from the structured
// profile formats; the profile grammar produces bare actions.
type Action struct {
	Kind  ActionKind
	Value string

	Scope Scope
	Dir   string

	// WorkDir overrides the working directory of an exec action,
	// relative to the resolved source directory.
	WorkDir string

	// Checks are evaluated against the source file of a copy action
	// before it is copied.
	Checks []DependencyCheck
}

// Execute builds an action running command.
func Execute(command string) Action {
	return Action{Kind: ActionExecute, Value: command}
}

// Copy builds an action copying a single file.
func Copy(fileName string) Action {
	return Action{Kind: ActionCopy, Value: fileName}
}

// CopyGlob builds an action copying every match of pattern.
func CopyGlob(pattern string) Action {
	return Action{Kind: ActionCopyGlob, Value: pattern}
}

func (a Action) String() string {
	s := fmt.Sprintf("%s %q", a.Kind, a.Value)
	if a.Scope != ScopeRoot {
		s = string(a.Scope) + ":" + s
	}
	if a.Dir != "" {
		s += " in " + a.Dir
	}
	return s
}

// escapes reports whether a relative path is absolute or climbs above the
// directory it is joined to.
func escapes(p string) bool {
	if p == "" {
		return false
	}
	if filepath.IsAbs(p) || strings.HasPrefix(p, "/") || strings.HasPrefix(p, `\`) {
		return true
	}
	clean := filepath.ToSlash(filepath.Clean(filepath.FromSlash(p)))
	return clean == ".." || strings.HasPrefix(clean, "../")
}

// Valid reports whether the action has a known kind, a value and a known
// scope, and whether its paths stay below the directory they resolve in.
func (a Action) Valid() error {
	switch a.Kind {
	case ActionExecute, ActionCopy, ActionCopyGlob:
	default:
		return fmt.Errorf("unknown action kind %q", a.Kind)
	}
	if a.Value == "" {
		return fmt.Errorf("%s action has an empty value", a.Kind)
	}
	switch a.Scope {
	case ScopeRoot, ScopeHome, ScopeConfig:
	default:
		return fmt.Errorf("unknown scope %q", a.Scope)
	}
	if a.Kind != ActionExecute && escapes(a.Value) {
		return fmt.Errorf("%s path %q leaves its directory", a.Kind, a.Value)
	}
	if escapes(a.Dir) {
		return fmt.Errorf("dir %q leaves the root", a.Dir)
	}
	if escapes(a.WorkDir) {
		return fmt.Errorf("workdir %q leaves the action directory", a.WorkDir)
	}
	if a.WorkDir != "" && a.Kind != ActionExecute {
		return fmt.Errorf("workdir is only valid on exec actions")
	}
	if len(a.Checks) > 0 && a.Kind != ActionCopy {
		return fmt.Errorf("dependency checks are only valid on copy actions")
	}
	return nil
}
