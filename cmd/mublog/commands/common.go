// Package commands implements the mublog command line.
package commands

import (
	"io"
	"log/slog"
	"os"

	"github.com/alecthomas/kong"

	"git.home.luguber.info/inful/mublog/internal/blog"
	"git.home.luguber.info/inful/mublog/internal/build"
	"git.home.luguber.info/inful/mublog/internal/config"
	"git.home.luguber.info/inful/mublog/internal/paths"
)

// Global carries state shared by every command.
type Global struct {
	Logger *slog.Logger
	Out    io.Writer
}

func (g *Global) out() io.Writer {
	if g == nil || g.Out == nil {
		return os.Stdout
	}
	return g.Out
}

func (g *Global) logger() *slog.Logger {
	if g == nil || g.Logger == nil {
		return slog.Default()
	}
	return g.Logger
}

// CLI definition & global flags.
type CLI struct {
	Dir     string           `short:"C" name:"dir" type:"path" default:"." help:"Run as if mublog was started in this directory"`
	Verbose bool             `short:"v" help:"Enable verbose logging"`
	Version kong.VersionFlag `name:"version" help:"Show version and exit"`

	Init   InitCmd   `cmd:"" help:"Create a new blog environment"`
	Build  BuildCmd  `cmd:"" help:"Generate the site into the build directory"`
	Info   InfoCmd   `cmd:"" help:"Show posts, pages and recent builds"`
	New    NewCmd    `cmd:"" help:"Create a new post or page"`
	Serve  ServeCmd  `cmd:"" help:"Preview the blog and rebuild on change"`
	Deploy DeployCmd `cmd:"" help:"Commit the build output to the deploy repository"`
}

// AfterApply runs after flag parsing; setup logging once.
func (c *CLI) AfterApply() error {
	level := slog.LevelInfo
	if c.Verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)
	return nil
}

// blogPaths returns the layout of the blog in root.Dir, failing when the
// directory is not a blog environment.
func blogPaths(root *CLI) (paths.Paths, error) {
	dir := root.Dir
	if dir == "" {
		dir = "."
	}
	if !blog.IsBlogDirectory(dir) {
		return paths.Paths{}, build.ErrNotBlogDirectory.WithContext("path", dir)
	}
	return paths.New(dir), nil
}

// loadConfig reads the blog configuration of p.
func loadConfig(p paths.Paths) (*config.Config, error) {
	cfg, err := config.Load(p.ConfigFile)
	if err != nil {
		return nil, err
	}
	if err := config.Validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}
