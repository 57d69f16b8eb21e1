package commands

import (
	"context"
	"fmt"
	"time"

	"git.home.luguber.info/inful/mublog/internal/blog"
	"git.home.luguber.info/inful/mublog/internal/build"
)

// BuildCmd implements the 'build' command.
type BuildCmd struct {
	Drafts bool `help:"Render draft posts and pages"`
}

func (b *BuildCmd) Run(g *Global, root *CLI) error {
	p, err := blogPaths(root)
	if err != nil {
		return err
	}
	svc := build.NewBuildService().WithLogger(g.logger())
	res, err := svc.Run(context.Background(), build.BuildRequest{
		Dir:     p.Base,
		Logger:  g.logger(),
		Options: build.BuildOptions{IncludeDrafts: b.Drafts},
	})
	if err != nil {
		return err
	}
	_, _ = fmt.Fprintf(g.out(), "Built %d posts and %d pages into %s in %s\n",
		res.FilesWritten(blog.OutputPost), res.FilesWritten(blog.OutputPage), res.OutputPath, res.Duration.Round(time.Millisecond))
	return nil
}
