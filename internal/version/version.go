// Package version holds build metadata set with -ldflags, e.g.
// go build -ldflags "-X git.home.luguber.info/inful/mublog/internal/version.Version=v0.3.0".
package version

import "fmt"

// Version is the release of the binary.
var Version = "dev"

// BuildInfo contains additional build metadata.
var (
	BuildTime = "unknown"
	GitCommit = "unknown"
)

// String is the line printed by --version.
func String() string {
	return fmt.Sprintf("mublog %s (commit %s, built %s)", Version, GitCommit, BuildTime)
}
