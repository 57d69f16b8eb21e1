package commands

import (
	"context"
	"os"

	"git.home.luguber.info/inful/mublog/internal/build"
	"git.home.luguber.info/inful/mublog/internal/history"
	"git.home.luguber.info/inful/mublog/internal/report"
)

// InfoCmd implements the 'info' command.
type InfoCmd struct {
	Builds int `default:"5" help:"Number of recent builds to list when build history is enabled"`
}

func (i *InfoCmd) Run(g *Global, root *CLI) error {
	p, err := blogPaths(root)
	if err != nil {
		return err
	}
	cfg, err := loadConfig(p)
	if err != nil {
		return err
	}
	info, err := report.Load(p)
	if err != nil {
		return err
	}
	info.Title = cfg.General.BlogTitle

	if cfg.Build.History.Enabled && i.Builds > 0 {
		path := build.HistoryPath(cfg, p)
		if _, statErr := os.Stat(path); statErr == nil {
			store, err := history.Open(path)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()
			builds, err := history.RecentBuilds(context.Background(), store, i.Builds)
			if err != nil {
				return err
			}
			info.Builds = append([]history.Summary{}, builds...)
		} else {
			info.Builds = []history.Summary{}
		}
	}
	return report.WriteMarkdown(g.out(), info)
}
