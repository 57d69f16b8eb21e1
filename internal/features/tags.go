package features

import (
	"net/url"
	"sort"
	"strconv"
	"strings"

	"golang.org/x/net/html"

	"git.home.luguber.info/inful/mublog/internal/blog"
	"git.home.luguber.info/inful/mublog/internal/config"
	"git.home.luguber.info/inful/mublog/internal/htmldoc"
	"git.home.luguber.info/inful/mublog/internal/logfields"
	"git.home.luguber.info/inful/mublog/internal/pipeline"
	"git.home.luguber.info/inful/mublog/internal/stages"
)

// TagListingPlaceholder is replaced with every tag and its post count.
const TagListingPlaceholder = "{{{TAG_LISTING}}}"

// DefaultTagsPage is the page tag links point at.
const DefaultTagsPage = "articles.html"

// Tags renders post tags in three places: a tag block appended to each
// converted post, a tag cloud replacing TagListingPlaceholder in pages, and
// og:article:tag meta entries in each wrapped post.
type Tags struct {
	Page string
}

func NewTags(page string) *Tags {
	return &Tags{Page: strings.TrimPrefix(strings.TrimSpace(page), "/")}
}

func (*Tags) Name() string { return config.FeatureTags }

func (t *Tags) Subscribe(r *pipeline.FeatureRegistry) {
	r.Register(stages.ConvertPostsID, pipeline.PostProcess, t)
	r.Register(stages.ConvertPagesID, pipeline.PostProcess, t)
	r.Register(stages.WrapPostsID, pipeline.PostProcess, t)
}

func (t *Tags) Run(ctx *blog.BuildContext, stage pipeline.StageID, point pipeline.Lifecycle) error {
	if point != pipeline.PostProcess {
		return nil
	}
	switch stage {
	case stages.ConvertPostsID:
		return t.appendPostTags(ctx)
	case stages.ConvertPagesID:
		return t.replaceTagListing(ctx)
	case stages.WrapPostsID:
		return t.injectMeta(ctx)
	}
	return nil
}

func (t *Tags) tagURL(tag string) string {
	return "/" + t.Page + "?" + url.Values{"tag": {tag}}.Encode()
}

func (t *Tags) appendPostTags(ctx *blog.BuildContext) error {
	for _, p := range ctx.Registry.MutablePosts() {
		if len(p.Tags) == 0 {
			continue
		}
		block := htmldoc.Element("div", []htmldoc.Attr{{Key: "class", Val: "tags"}})
		for _, tag := range p.Tags {
			block.AppendChild(htmldoc.Link(t.tagURL(tag), tag, htmldoc.Attr{Key: "class", Val: "tag"}))
		}
		out, err := htmldoc.RenderFragment(block)
		if err != nil {
			return err
		}
		p.Content += out
	}
	return nil
}

type tagCount struct {
	tag   string
	count int
}

// countTags orders tags by descending count, then by name.
func countTags(ctx *blog.BuildContext) []tagCount {
	counts := make(map[string]int)
	for _, p := range visiblePosts(ctx) {
		seen := make(map[string]bool)
		for _, tag := range p.Tags {
			if !seen[tag] {
				counts[tag]++
				seen[tag] = true
			}
		}
	}
	out := make([]tagCount, 0, len(counts))
	for tag, n := range counts {
		out = append(out, tagCount{tag: tag, count: n})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].count != out[j].count {
			return out[i].count > out[j].count
		}
		return out[i].tag < out[j].tag
	})
	return out
}

func (t *Tags) replaceTagListing(ctx *blog.BuildContext) error {
	cloud := htmldoc.Element("div", []htmldoc.Attr{{Key: "class", Val: "tags"}})
	for _, tc := range countTags(ctx) {
		cloud.AppendChild(htmldoc.Element("a", []htmldoc.Attr{{Key: "class", Val: "tag"}, {Key: "href", Val: t.tagURL(tc.tag)}},
			htmldoc.Element("span", []htmldoc.Attr{{Key: "class", Val: "tag-text"}}, htmldoc.Text(tc.tag)),
			htmldoc.Element("span", []htmldoc.Attr{{Key: "class", Val: "tag-count"}}, htmldoc.Text(strconv.Itoa(tc.count))),
		))
	}
	out, err := htmldoc.RenderFragment(cloud)
	if err != nil {
		return err
	}
	for _, p := range ctx.Registry.MutablePages() {
		p.Content = strings.ReplaceAll(p.Content, TagListingPlaceholder, out)
	}
	return nil
}

func (t *Tags) injectMeta(ctx *blog.BuildContext) error {
	for _, p := range ctx.Registry.MutablePosts() {
		if len(p.Tags) == 0 {
			continue
		}
		metas := make([]*html.Node, 0, len(p.Tags))
		for _, tag := range p.Tags {
			metas = append(metas, htmldoc.Element("meta", []htmldoc.Attr{
				{Key: "property", Val: "og:article:tag"}, {Key: "content", Val: tag},
			}))
		}
		out, ok, err := htmldoc.InjectHead(p.Content, metas...)
		if err != nil {
			return err
		}
		if !ok {
			ctx.Logger.Warn("Post has no head section, skipping tag meta", logfields.Title(p.Title))
			continue
		}
		p.Content = out
	}
	return nil
}
