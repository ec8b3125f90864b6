package commands

// CheckOptions defines the options for the Check command.
type CheckOptions struct {
	Environment
	Profile string
}

// CheckResult summarises a valid profile.
type CheckResult struct {
	ProfilePath  string
	Name         string
	Dependencies []string
	Actions      []string
	// Unwired is set when the grammar validated a non-empty action block
	// but did not return it.
	Unwired bool
}

// Check loads and validates a profile without touching any directory.
func Check(opts CheckOptions) (*CheckResult, error) {
	env, err := opts.withDefaults()
	if err != nil {
		return nil, err
	}

	app, path, err := env.loadProfile(opts.Profile)
	if err != nil {
		return nil, err
	}

	result := &CheckResult{
		ProfilePath: path,
		Name:        app.Name,
		Unwired:     app.UnwiredActions > 0,
	}
	for _, dep := range app.Dependencies {
		result.Dependencies = append(result.Dependencies, dep.Name)
	}
	for _, action := range app.Actions {
		result.Actions = append(result.Actions, action.String())
	}
	return result, nil
}
