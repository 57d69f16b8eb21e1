package commands

import (
	"fmt"

	"git.home.luguber.info/inful/mublog/internal/config"
	"git.home.luguber.info/inful/mublog/internal/scaffold"
)

// InitCmd implements the 'init' command.
type InitCmd struct {
	Name   string `arg:"" help:"Name of the blog directory to create"`
	Author string `help:"Blog author written to the configuration"`
	Email  string `help:"Author e-mail written to the configuration"`
	Title  string `help:"Blog title written to the configuration"`
}

func (i *InitCmd) Run(g *Global, root *CLI) error {
	cfg := config.Example()
	if i.Author != "" {
		cfg.General.BlogAuthor = i.Author
	}
	if i.Email != "" {
		cfg.General.BlogEmail = i.Email
	}
	if i.Title != "" {
		cfg.General.BlogTitle = i.Title
	}

	p, err := scaffold.Init(root.Dir, i.Name, cfg)
	if err != nil {
		return err
	}
	_, _ = fmt.Fprintf(g.out(), "Initialized blog environment in %s\n", p.Base)
	return nil
}
