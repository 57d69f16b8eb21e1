// Package report renders the blog overview printed by the info command.
package report

import (
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/nao1215/markdown"

	"git.home.luguber.info/inful/mublog/internal/content"
	"git.home.luguber.info/inful/mublog/internal/history"
	"git.home.luguber.info/inful/mublog/internal/paths"
)

// titleWidth is the longest title shown before truncation.
const titleWidth = 30

// Info is the data shown by the info command.
type Info struct {
	Title  string
	Posts  []content.Post
	Pages  []content.Page
	Builds []history.Summary
}

// Load reads the posts and pages of the blog at p.
func Load(p paths.Paths) (*Info, error) {
	reg := content.NewRegistry()
	if err := reg.LoadPosts(p.Posts); err != nil {
		return nil, err
	}
	if err := reg.LoadPages(p.Pages); err != nil {
		return nil, err
	}
	return &Info{Posts: reg.Posts(), Pages: reg.Pages()}, nil
}

// Stats counts finalized and draft entities.
type Stats struct {
	Posts, DraftPosts int
	Pages, DraftPages int
}

// Stats computes the totals of info.
func (info *Info) Stats() Stats {
	var s Stats
	s.Posts = len(info.Posts)
	for _, p := range info.Posts {
		if p.Draft {
			s.DraftPosts++
		}
	}
	s.Pages = len(info.Pages)
	for _, p := range info.Pages {
		if p.Draft {
			s.DraftPages++
		}
	}
	return s
}

// WriteMarkdown renders info as a markdown document to w.
func WriteMarkdown(w io.Writer, info *Info) error {
	md := markdown.NewMarkdown(w)

	title := info.Title
	if title == "" {
		title = "Blog"
	}
	md.H1(title)
	md.PlainText("")

	writePosts(md, info.Posts)
	writePages(md, info.Pages)
	writeStats(md, info.Stats())
	if info.Builds != nil {
		writeBuilds(md, info.Builds)
	}
	return md.Build()
}

func writePosts(md *markdown.Markdown, posts []content.Post) {
	md.H2("Posts")
	md.PlainText("")
	if len(posts) == 0 {
		md.PlainText("No posts yet.")
		md.PlainText("")
		return
	}
	rows := make([][]string, 0, len(posts))
	for _, p := range posts {
		rows = append(rows, []string{truncate(p.Title, titleWidth), p.Date.Format(time.DateOnly), strconv.FormatBool(p.Draft)})
	}
	md.Table(markdown.TableSet{
		Header: []string{"Post Title", "Date", "Draft"},
		Rows:   rows,
	})
	md.PlainText("")
}

func writePages(md *markdown.Markdown, pages []content.Page) {
	md.H2("Pages")
	md.PlainText("")
	if len(pages) == 0 {
		md.PlainText("No pages yet.")
		md.PlainText("")
		return
	}
	rows := make([][]string, 0, len(pages))
	for _, p := range pages {
		rows = append(rows, []string{truncate(p.Title, titleWidth), strconv.FormatBool(p.Draft), strconv.FormatBool(p.Index)})
	}
	md.Table(markdown.TableSet{
		Header: []string{"Page Title", "Draft", "Index"},
		Rows:   rows,
	})
	md.PlainText("")
}

func writeStats(md *markdown.Markdown, s Stats) {
	md.H2("Statistics")
	md.PlainText("")
	md.BulletList(
		fmt.Sprintf("%d Posts (%d Finalized, %d Drafts)", s.Posts, s.Posts-s.DraftPosts, s.DraftPosts),
		fmt.Sprintf("%d Pages (%d Finalized, %d Drafts)", s.Pages, s.Pages-s.DraftPages, s.DraftPages),
	)
	md.PlainText("")
}

func writeBuilds(md *markdown.Markdown, builds []history.Summary) {
	md.H2("Recent Builds")
	md.PlainText("")
	if len(builds) == 0 {
		md.PlainText("No builds recorded.")
		md.PlainText("")
		return
	}
	rows := make([][]string, 0, len(builds))
	for _, b := range builds {
		rows = append(rows, []string{
			b.StartedAt.Format(time.DateTime),
			b.Status,
			b.Duration.Round(time.Millisecond).String(),
			strconv.Itoa(b.Documents),
			b.ErrorStage,
		})
	}
	md.Table(markdown.TableSet{
		Header: []string{"Started", "Status", "Duration", "Documents", "Failed Stage"},
		Rows:   rows,
	})
	md.PlainText("")
}

// truncate shortens s to max runes, ending in "..." when cut.
func truncate(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	if max <= 3 {
		return string(r[:max])
	}
	return string(r[:max-3]) + "..."
}
