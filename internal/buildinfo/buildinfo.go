package buildinfo

import "fmt"

// Build metadata, set with -ldflags at release time.
var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)

// String formats the build metadata for the version command.
func String() string {
	return fmt.Sprintf("acad-mcp %s (commit=%s, date=%s)", Version, Commit, Date)
}
