package commands

import (
	"fmt"
	"time"

	"git.home.luguber.info/inful/mublog/internal/content"
	ferrors "git.home.luguber.info/inful/mublog/internal/foundation/errors"
	"git.home.luguber.info/inful/mublog/internal/scaffold"
)

// NewCmd groups the 'new' subcommands.
type NewCmd struct {
	Post NewPostCmd `cmd:"" help:"Create a new post"`
	Page NewPageCmd `cmd:"" help:"Create a new page"`
}

// NewPostCmd implements 'new post'.
type NewPostCmd struct {
	Title       string   `short:"t" required:"" help:"Post title"`
	Description string   `short:"d" help:"Short description shown in listings"`
	Date        string   `help:"Publication date (YYYY-MM-DD); defaults to today"`
	Tags        []string `sep:"," help:"Comma separated tags"`
	Draft       bool     `help:"Mark the post as draft"`
}

func (n *NewPostCmd) Run(g *Global, root *CLI) error {
	p, err := blogPaths(root)
	if err != nil {
		return err
	}
	date := time.Now()
	if n.Date != "" {
		date, err = time.Parse(time.DateOnly, n.Date)
		if err != nil {
			return ferrors.ValidationError("invalid date, expected YYYY-MM-DD").
				WithCause(err).
				WithContext("date", n.Date).
				Build()
		}
	}
	post := &content.Post{
		Title:       n.Title,
		Description: n.Description,
		Date:        date,
		Tags:        n.Tags,
		Draft:       n.Draft,
	}
	path, err := scaffold.NewPost(p, post)
	if err != nil {
		return err
	}
	_, _ = fmt.Fprintf(g.out(), "Created post %s\n", path)
	return nil
}

// NewPageCmd implements 'new page'.
type NewPageCmd struct {
	Title string `short:"t" required:"" help:"Page title"`
	Draft bool   `help:"Mark the page as draft"`
	Index bool   `help:"Make this the index page of the blog"`
}

func (n *NewPageCmd) Run(g *Global, root *CLI) error {
	p, err := blogPaths(root)
	if err != nil {
		return err
	}
	path, err := scaffold.NewPage(p, &content.Page{Title: n.Title, Draft: n.Draft, Index: n.Index})
	if err != nil {
		return err
	}
	_, _ = fmt.Fprintf(g.out(), "Created page %s\n", path)
	return nil
}
