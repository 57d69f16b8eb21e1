package features

import (
	"git.home.luguber.info/inful/mublog/internal/blog"
	"git.home.luguber.info/inful/mublog/internal/config"
	"git.home.luguber.info/inful/mublog/internal/content"
	ferrors "git.home.luguber.info/inful/mublog/internal/foundation/errors"
	"git.home.luguber.info/inful/mublog/internal/pipeline"
)

// FromConfig constructs the configured features in list order. Features are
// only constructed here; the pipeline subscribes them via AddFeature.
func FromConfig(list []config.FeatureConfig) ([]pipeline.Feature, error) {
	out := make([]pipeline.Feature, 0, len(list))
	for _, fc := range list {
		switch fc.Name {
		case config.FeatureNavbar:
			out = append(out, NewNavbar())
		case config.FeaturePostListing:
			out = append(out, NewPostListing(fc.Option("page", "")))
		case config.FeatureTags:
			out = append(out, NewTags(fc.Option("page", DefaultTagsPage)))
		default:
			return nil, ferrors.ConfigError("unknown feature").WithContext("feature", fc.Name).Build()
		}
	}
	return out, nil
}

// visiblePosts returns the posts that the build will publish.
func visiblePosts(ctx *blog.BuildContext) []content.Post {
	var out []content.Post
	for _, p := range ctx.Registry.Posts() {
		if !p.Draft || ctx.IncludeDrafts() {
			out = append(out, p)
		}
	}
	return out
}

// visiblePages returns the pages that the build will publish.
func visiblePages(ctx *blog.BuildContext) []content.Page {
	var out []content.Page
	for _, p := range ctx.Registry.Pages() {
		if !p.Draft || ctx.IncludeDrafts() {
			out = append(out, p)
		}
	}
	return out
}
