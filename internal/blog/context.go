// Package blog holds the per-build state shared by pipeline stages and features.
package blog

import (
	"log/slog"
	"os"

	"github.com/google/uuid"

	"git.home.luguber.info/inful/mublog/internal/config"
	"git.home.luguber.info/inful/mublog/internal/content"
	"git.home.luguber.info/inful/mublog/internal/logfields"
	"git.home.luguber.info/inful/mublog/internal/paths"
)

// BuildContext is the mutable state of one build. A fresh context is created
// for every build and is never shared between concurrent builds.
type BuildContext struct {
	Config   *config.Config
	Paths    paths.Paths
	Registry *content.Registry
	Logger   *slog.Logger
	BuildID  string

	outputs []Output
}

// OutputKind classifies a file written to the build directory.
type OutputKind string

const (
	OutputPost       OutputKind = "post"
	OutputPage       OutputKind = "page"
	OutputStylesheet OutputKind = "stylesheet"
	OutputAsset      OutputKind = "asset"
	OutputMeta       OutputKind = "meta"
)

// Output describes one file written by the build.
type Output struct {
	Kind        OutputKind
	Path        string
	Title       string
	Bytes       int
	Fingerprint string
}

// NewBuildContext creates a context with an empty registry and a new build id.
// A nil logger falls back to slog.Default.
func NewBuildContext(cfg *config.Config, p paths.Paths, logger *slog.Logger) *BuildContext {
	if logger == nil {
		logger = slog.Default()
	}
	id := uuid.NewString()
	return &BuildContext{
		Config:   cfg,
		Paths:    p,
		Registry: content.NewRegistry(),
		Logger:   logger.With(logfields.BuildID(id)),
		BuildID:  id,
	}
}

// IncludeDrafts reports whether draft posts and pages are written.
func (c *BuildContext) IncludeDrafts() bool {
	return c.Config != nil && c.Config.Build.IncludeDrafts
}

// RecordOutput notes a file written to the build directory.
func (c *BuildContext) RecordOutput(o Output) {
	c.outputs = append(c.outputs, o)
}

// Outputs returns every recorded output in write order.
func (c *BuildContext) Outputs() []Output {
	return append([]Output(nil), c.outputs...)
}

// IsBlogDirectory reports whether dir contains a config file and every
// source directory.
func IsBlogDirectory(dir string) bool {
	p := paths.New(dir)
	if info, err := os.Stat(p.ConfigFile); err != nil || info.IsDir() {
		return false
	}
	for _, d := range p.SourceDirs() {
		info, err := os.Stat(d)
		if err != nil || !info.IsDir() {
			return false
		}
	}
	return true
}
