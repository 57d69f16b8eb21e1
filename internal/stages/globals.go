package stages

import (
	"strings"

	"git.home.luguber.info/inful/mublog/internal/blog"
	"git.home.luguber.info/inful/mublog/internal/pipeline"
)

// Template variables replaced in post and page sources.
const (
	VarAuthorName    = "{{{AUTHOR_NAME}}}"
	VarAuthorEmail   = "{{{AUTHOR_EMAIL}}}"
	VarCopyrightYear = "{{{COPYRIGHT_YEAR}}}"
	VarBlogTitle     = "{{{BLOG_TITLE}}}"
)

// ApplyGlobalVars substitutes blog-wide variables in every post and page.
type ApplyGlobalVars struct{ noLifecycle }

func (ApplyGlobalVars) ID() pipeline.StageID { return ApplyGlobalVarsID }

func (ApplyGlobalVars) Process(ctx *blog.BuildContext) error {
	g := ctx.Config.General
	r := strings.NewReplacer(
		VarAuthorName, g.BlogAuthor,
		VarAuthorEmail, g.BlogEmail,
		VarCopyrightYear, g.BlogCopyrightYear,
		VarBlogTitle, g.BlogTitle,
	)
	for _, p := range ctx.Registry.MutablePosts() {
		p.Content = r.Replace(p.Content)
	}
	for _, p := range ctx.Registry.MutablePages() {
		p.Content = r.Replace(p.Content)
	}
	return nil
}
