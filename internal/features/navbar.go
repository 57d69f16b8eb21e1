package features

import (
	"golang.org/x/net/html"

	"git.home.luguber.info/inful/mublog/internal/blog"
	"git.home.luguber.info/inful/mublog/internal/config"
	"git.home.luguber.info/inful/mublog/internal/htmldoc"
	"git.home.luguber.info/inful/mublog/internal/pipeline"
	"git.home.luguber.info/inful/mublog/internal/stages"
)

// Navbar prepends a <nav> linking every published page to converted posts
// and pages. The landing page comes first.
type Navbar struct{}

func NewNavbar() *Navbar { return &Navbar{} }

func (*Navbar) Name() string { return config.FeatureNavbar }

func (n *Navbar) Subscribe(r *pipeline.FeatureRegistry) {
	r.Register(stages.ConvertPostsID, pipeline.PostProcess, n)
	r.Register(stages.ConvertPagesID, pipeline.PostProcess, n)
}

func (n *Navbar) Run(ctx *blog.BuildContext, stage pipeline.StageID, point pipeline.Lifecycle) error {
	if point != pipeline.PostProcess {
		return nil
	}
	switch stage {
	case stages.ConvertPostsID:
		nav, err := n.render(ctx)
		if err != nil {
			return err
		}
		for _, p := range ctx.Registry.MutablePosts() {
			p.Content = nav + p.Content
		}
	case stages.ConvertPagesID:
		nav, err := n.render(ctx)
		if err != nil {
			return err
		}
		for _, p := range ctx.Registry.MutablePages() {
			p.Content = nav + p.Content
		}
	}
	return nil
}

func (n *Navbar) render(ctx *blog.BuildContext) (string, error) {
	pages := visiblePages(ctx)
	list := htmldoc.Element("ul", nil)
	for _, p := range pages {
		if p.Index {
			list.AppendChild(navItem(p.Title, stages.PageURL(p)))
		}
	}
	for _, p := range pages {
		if !p.Index {
			list.AppendChild(navItem(p.Title, stages.PageURL(p)))
		}
	}
	return htmldoc.RenderFragment(htmldoc.Element("nav", nil, list))
}

func navItem(title, href string) *html.Node {
	return htmldoc.Element("li", nil, htmldoc.Link(href, title, htmldoc.Attr{Key: "title", Val: title}))
}
