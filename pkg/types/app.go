package types

// App is a parsed application profile: a name, an optional dependency
// table and the ordered list of actions to apply.
type App struct {
	Name         string
	Dependencies []Dependency
	Actions      []Action

	// UnwiredActions counts the actions of a parsed block that the grammar
	// validated but did not return.
	UnwiredActions int
}

// Dependency is a named rule with the block text shown when the rule fires.
type Dependency struct {
	Name  string
	Block string
}

// DependencyTable maps rule names to block text. Later duplicates win.
// The returned map is a fresh copy on every call.
func (a *App) DependencyTable() map[string]string {
	table := make(map[string]string, len(a.Dependencies))
	for _, dep := range a.Dependencies {
		table[dep.Name] = dep.Block
	}
	return table
}

// HasDependency reports whether rule is a key of the dependency table.
func (a *App) HasDependency(rule string) bool {
	for _, dep := range a.Dependencies {
		if dep.Name == rule {
			return true
		}
	}
	return false
}
