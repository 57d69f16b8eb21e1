package build

import (
	"context"
	"log/slog"
	"time"

	"git.home.luguber.info/inful/mublog/internal/blog"
	"git.home.luguber.info/inful/mublog/internal/config"
)

// BuildService executes blog builds.
type BuildService interface {
	// Run builds the blog described by req and returns what was written.
	// A failed build still returns a result alongside the error.
	Run(ctx context.Context, req BuildRequest) (*BuildResult, error)
}

// BuildRequest contains the inputs of one build.
type BuildRequest struct {
	// Dir is the blog directory.
	Dir string

	// Config overrides the configuration file in Dir when set.
	Config *config.Config

	// Logger defaults to the service logger.
	Logger *slog.Logger

	// OutputDir replaces Dir/build as the output root when set.
	OutputDir string

	Options BuildOptions
}

// BuildOptions modify a single build.
type BuildOptions struct {
	// IncludeDrafts writes draft posts and pages regardless of configuration.
	IncludeDrafts bool
}

// BuildResult contains the outcome of a build execution.
type BuildResult struct {
	Status  BuildStatus
	BuildID string

	// OutputPath is the directory the build wrote to.
	OutputPath string

	Posts int
	Pages int

	// Outputs lists every file written, in write order.
	Outputs []blog.Output

	Duration  time.Duration
	StartTime time.Time
	EndTime   time.Time
}

// FilesWritten counts outputs of the given kind.
func (r *BuildResult) FilesWritten(kind blog.OutputKind) int {
	n := 0
	for _, o := range r.Outputs {
		if o.Kind == kind {
			n++
		}
	}
	return n
}

// BuildStatus represents the outcome of a build execution.
type BuildStatus string

const (
	BuildStatusSuccess BuildStatus = "success"
	BuildStatusFailed  BuildStatus = "failed"
)

// IsSuccess returns true if the build completed successfully.
func (s BuildStatus) IsSuccess() bool {
	return s == BuildStatusSuccess
}
