package commands

import (
	"context"
	"fmt"

	"git.home.luguber.info/inful/mublog/internal/build"
	"git.home.luguber.info/inful/mublog/internal/deploy"
)

// DeployCmd implements the 'deploy' command.
type DeployCmd struct {
	Build bool `help:"Build the site before publishing"`
}

func (d *DeployCmd) Run(g *Global, root *CLI) error {
	p, err := blogPaths(root)
	if err != nil {
		return err
	}
	cfg, err := loadConfig(p)
	if err != nil {
		return err
	}
	ctx := context.Background()

	if d.Build {
		_, err := build.NewBuildService().WithLogger(g.logger()).Run(ctx, build.BuildRequest{
			Dir:    p.Base,
			Config: cfg,
			Logger: g.logger(),
		})
		if err != nil {
			return err
		}
	}

	res, err := deploy.NewPublisher(g.logger()).Publish(ctx, deploy.Request{
		BuildDir: p.Build,
		BaseDir:  p.Base,
		Config:   cfg,
	})
	if err != nil {
		return err
	}
	if res.Changed() {
		_, _ = fmt.Fprintf(g.out(), "Committed %s in %s\n", short(res.Commit), res.Directory)
	} else {
		_, _ = fmt.Fprintln(g.out(), "Build output unchanged")
	}
	if res.Pushed {
		_, _ = fmt.Fprintf(g.out(), "Pushed to %s\n", cfg.Deploy.Remote)
	}
	return nil
}

func short(hash string) string {
	if len(hash) > 8 {
		return hash[:8]
	}
	return hash
}
