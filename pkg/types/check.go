package types

import "fmt"

// CheckKind tags a DependencyCheck variant.
type CheckKind string

const (
	// CheckExists fires when the evaluated file exists.
	CheckExists CheckKind = "exists"
	// CheckContains fires when the evaluated file exists and contains Needle.
	CheckContains CheckKind = "contains"
)

// DependencyCheck is a rule evaluated against a single file. Checks are
// independent of each other; all checks attached to a file are evaluated.
type DependencyCheck struct {
	Kind   CheckKind
	Needle string
	Rule   string
}

// Exists builds a check that fires when the file exists and rule is known.
func Exists(rule string) DependencyCheck {
	return DependencyCheck{Kind: CheckExists, Rule: rule}
}

// Contains builds a check that fires when the file exists, its text
// contains needle and rule is known.
func Contains(needle, rule string) DependencyCheck {
	return DependencyCheck{Kind: CheckContains, Needle: needle, Rule: rule}
}

func (c DependencyCheck) String() string {
	switch c.Kind {
	case CheckContains:
		return fmt.Sprintf("contains(%q, %s)", c.Needle, c.Rule)
	default:
		return fmt.Sprintf("exists(%s)", c.Rule)
	}
}
