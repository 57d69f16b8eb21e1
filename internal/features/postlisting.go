package features

import (
	"sort"
	"strings"

	"git.home.luguber.info/inful/mublog/internal/blog"
	"git.home.luguber.info/inful/mublog/internal/config"
	ferrors "git.home.luguber.info/inful/mublog/internal/foundation/errors"
	"git.home.luguber.info/inful/mublog/internal/frontmatter"
	"git.home.luguber.info/inful/mublog/internal/htmldoc"
	"git.home.luguber.info/inful/mublog/internal/pipeline"
	"git.home.luguber.info/inful/mublog/internal/stages"
)

// PostListingPlaceholder is replaced with the list of posts.
const PostListingPlaceholder = "{{{POST_LISTING}}}"

// PostListing replaces PostListingPlaceholder in converted pages with a
// newest-first list of published posts.
type PostListing struct {
	// Page restricts the replacement to the page with this title. Empty means
	// every page.
	Page string
}

func NewPostListing(page string) *PostListing {
	return &PostListing{Page: strings.TrimSpace(page)}
}

func (*PostListing) Name() string { return config.FeaturePostListing }

func (f *PostListing) Subscribe(r *pipeline.FeatureRegistry) {
	r.Register(stages.ConvertPagesID, pipeline.PostProcess, f)
}

func (f *PostListing) Run(ctx *blog.BuildContext, stage pipeline.StageID, point pipeline.Lifecycle) error {
	if stage != stages.ConvertPagesID || point != pipeline.PostProcess {
		return nil
	}

	listing, err := f.render(ctx)
	if err != nil {
		return err
	}

	if f.Page != "" {
		page, ok := ctx.Registry.PageByTitle(f.Page)
		if !ok {
			return ferrors.NewError(ferrors.CategoryNotFound, "post listing page not found").
				WithContext("page", f.Page).Build()
		}
		page.Content = strings.ReplaceAll(page.Content, PostListingPlaceholder, listing)
		return nil
	}
	for _, p := range ctx.Registry.MutablePages() {
		p.Content = strings.ReplaceAll(p.Content, PostListingPlaceholder, listing)
	}
	return nil
}

func (f *PostListing) render(ctx *blog.BuildContext) (string, error) {
	posts := visiblePosts(ctx)
	sort.SliceStable(posts, func(i, j int) bool { return posts[i].Date.After(posts[j].Date) })

	list := htmldoc.Element("ul", []htmldoc.Attr{{Key: "class", Val: "post-listing"}})
	for _, p := range posts {
		date := frontmatter.FormatDate(p.Date)
		list.AppendChild(htmldoc.Element("li", []htmldoc.Attr{{Key: "data-date", Val: date}},
			htmldoc.Element("time", []htmldoc.Attr{{Key: "datetime", Val: date}}, htmldoc.Text(date)),
			htmldoc.Text(" "),
			htmldoc.Link(stages.PostURL(p), p.Title),
		))
	}
	return htmldoc.RenderFragment(htmldoc.Element("article", nil, list))
}
