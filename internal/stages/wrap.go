package stages

import (
	"fmt"
	"path"
	"strings"

	"git.home.luguber.info/inful/mublog/internal/blog"
	"git.home.luguber.info/inful/mublog/internal/content"
	"git.home.luguber.info/inful/mublog/internal/frontmatter"
	"git.home.luguber.info/inful/mublog/internal/htmldoc"
	"git.home.luguber.info/inful/mublog/internal/pipeline"
)

// URL prefixes of the build tree as served from the site root.
const (
	PostsURLPrefix = "/posts/"
	CSSURLPrefix   = "/css/"
	MetaURLPrefix  = "/meta/"
)

// metaLink is a head link emitted only when the meta file exists.
type metaLink struct {
	file, rel, typ string
}

var metaLinks = []metaLink{
	{"webmanifest.xml", "manifest", ""},
	{"apple-touch-icon.png", "apple-touch-icon", ""},
	{"favicon-32x32.png", "icon", "image/png"},
	{"favicon-16x16.png", "icon", "image/png"},
	{"favicon.ico", "icon", "image/x-icon"},
}

// WrapPosts turns every post's HTML fragment into a complete document.
type WrapPosts struct{ noLifecycle }

func (WrapPosts) ID() pipeline.StageID { return WrapPostsID }

func (WrapPosts) Process(ctx *blog.BuildContext) error {
	g := ctx.Config.General
	for _, p := range ctx.Registry.MutablePosts() {
		description := p.Description
		if description == "" {
			description = g.BlogDescription
		}
		doc := baseDocument(ctx, p.Title, description).
			WithProperty("og:type", "article").
			WithProperty("og:url", siteURL(g.BlogURL, PostsURLPrefix+p.HTMLFilename)).
			WithProperty("og:article:published_time", frontmatter.FormatDate(p.Date)).
			WithProperty("og:article:author", g.BlogAuthor)

		out, err := finishDocument(ctx, doc, p.Content)
		if err != nil {
			return fmt.Errorf("post %q: %w", p.Title, err)
		}
		p.Content = out
	}
	return nil
}

// WrapPages turns every page's HTML fragment into a complete document.
type WrapPages struct{ noLifecycle }

func (WrapPages) ID() pipeline.StageID { return WrapPagesID }

func (WrapPages) Process(ctx *blog.BuildContext) error {
	g := ctx.Config.General
	for _, p := range ctx.Registry.MutablePages() {
		doc := baseDocument(ctx, p.Title, g.BlogDescription).
			WithProperty("og:type", "website").
			WithProperty("og:url", siteURL(g.BlogURL, "/"+p.HTMLFilename))

		out, err := finishDocument(ctx, doc, p.Content)
		if err != nil {
			return fmt.Errorf("page %q: %w", p.Title, err)
		}
		p.Content = out
	}
	return nil
}

func baseDocument(ctx *blog.BuildContext, title, description string) *htmldoc.Document {
	g := ctx.Config.General
	docTitle := title
	if g.BlogTitle != "" && g.BlogTitle != title {
		docTitle = title + " | " + g.BlogTitle
	}
	doc := htmldoc.NewDocument().
		WithTitle(docTitle).
		WithMeta("robots", "index, archive").
		WithMeta("author", g.BlogAuthor).
		WithMeta("description", description).
		WithProperty("og:locale", "en_US").
		WithProperty("og:site_name", g.BlogTitle).
		WithProperty("og:title", title).
		WithProperty("og:description", description)

	for _, s := range ctx.Registry.Stylesheets() {
		doc.WithStylesheet(CSSURLPrefix + s.Filename)
	}
	metaFiles := make(map[string]bool)
	for _, m := range ctx.Registry.MetaFiles() {
		metaFiles[m.Filename] = true
	}
	for _, l := range metaLinks {
		if metaFiles[l.file] {
			doc.WithHeadLink(l.rel, MetaURLPrefix+l.file, l.typ)
		}
	}
	return doc
}

func finishDocument(ctx *blog.BuildContext, doc *htmldoc.Document, body string) (string, error) {
	footer, err := footerHTML(ctx)
	if err != nil {
		return "", err
	}
	return doc.WithMain(body).WithFooter(footer).Render()
}

func footerHTML(ctx *blog.BuildContext) (string, error) {
	g := ctx.Config.General
	notice := strings.TrimSpace(fmt.Sprintf("© %s %s", g.BlogCopyrightYear, g.BlogAuthor))
	return htmldoc.RenderFragment(
		htmldoc.Element("hr", nil),
		htmldoc.Element("div", []htmldoc.Attr{{Key: "class", Val: "footer-elements"}},
			htmldoc.Element("div", []htmldoc.Attr{{Key: "class", Val: "footer-copyright"}},
				htmldoc.Text(notice),
			),
		),
	)
}

// siteURL joins the configured blog URL with an absolute site path. Without a
// blog URL it returns an empty string so the meta tag is omitted.
func siteURL(base, p string) string {
	if base == "" {
		return ""
	}
	return strings.TrimRight(base, "/") + path.Clean("/"+p)
}

// PostURL is the site-relative URL of a post.
func PostURL(p content.Post) string {
	return PostsURLPrefix + p.HTMLFilename
}

// PageURL is the site-relative URL of a page.
func PageURL(p content.Page) string {
	return "/" + p.HTMLFilename
}
