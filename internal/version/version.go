package version

import "fmt"

// Build information set by ldflags
var (
	Version = "dev"     // Set by goreleaser: -X github.com/arthur-debert/vacuum/internal/version.Version={{.Version}}
	Commit  = "unknown" // Set by goreleaser: -X github.com/arthur-debert/vacuum/internal/version.Commit={{.Commit}}
	Date    = "unknown" // Set by goreleaser: -X github.com/arthur-debert/vacuum/internal/version.Date={{.Date}}
)

// Info renders the build information on three lines.
func Info() string {
	return fmt.Sprintf("vacuum version %s\n  commit: %s\n  built:  %s\n", Version, Commit, Date)
}
