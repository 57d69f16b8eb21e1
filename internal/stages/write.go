package stages

import (
	"os"
	"path/filepath"

	"git.home.luguber.info/inful/mublog/internal/blog"
	ferrors "git.home.luguber.info/inful/mublog/internal/foundation/errors"
	"git.home.luguber.info/inful/mublog/internal/logfields"
	"git.home.luguber.info/inful/mublog/internal/pipeline"
)

// writeOutput writes data to dir/rel and records it on the context. rel must
// stay inside dir.
func writeOutput(ctx *blog.BuildContext, dir, rel string, data []byte, out blog.Output) error {
	rel = filepath.FromSlash(rel)
	if !filepath.IsLocal(rel) {
		return ferrors.ValidationError("output path escapes build directory").
			WithContext("path", rel).Build()
	}
	target := filepath.Join(dir, rel)
	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return ferrors.WrapError(err, ferrors.CategoryFileSystem, "failed to create directory").
			WithContext("path", filepath.Dir(target)).Build()
	}
	if err := os.WriteFile(target, data, 0o644); err != nil {
		return ferrors.WrapError(err, ferrors.CategoryFileSystem, "failed to write file").
			WithContext("path", target).Build()
	}
	out.Path = target
	out.Bytes = len(data)
	ctx.RecordOutput(out)
	ctx.Logger.Debug("Wrote file", logfields.Path(target), logfields.Bytes(len(data)))
	return nil
}

// WriteStylesheets copies stylesheets to build/css.
type WriteStylesheets struct{ noLifecycle }

func (WriteStylesheets) ID() pipeline.StageID { return WriteStylesheetsID }

func (WriteStylesheets) Process(ctx *blog.BuildContext) error {
	for _, s := range ctx.Registry.Stylesheets() {
		if err := writeOutput(ctx, ctx.Paths.BuildCSS, s.Filename, s.Content,
			blog.Output{Kind: blog.OutputStylesheet}); err != nil {
			return err
		}
	}
	return nil
}

// WriteAssets copies assets to build/assets.
type WriteAssets struct{ noLifecycle }

func (WriteAssets) ID() pipeline.StageID { return WriteAssetsID }

func (WriteAssets) Process(ctx *blog.BuildContext) error {
	for _, a := range ctx.Registry.Assets() {
		if err := writeOutput(ctx, ctx.Paths.BuildAssets, a.Filename, a.Content,
			blog.Output{Kind: blog.OutputAsset}); err != nil {
			return err
		}
	}
	return nil
}

// WriteMeta copies meta files to build/meta.
type WriteMeta struct{ noLifecycle }

func (WriteMeta) ID() pipeline.StageID { return WriteMetaID }

func (WriteMeta) Process(ctx *blog.BuildContext) error {
	for _, m := range ctx.Registry.MetaFiles() {
		if err := writeOutput(ctx, ctx.Paths.BuildMeta, m.Filename, m.Content,
			blog.Output{Kind: blog.OutputMeta}); err != nil {
			return err
		}
	}
	return nil
}

// WritePages writes pages to the build root. Drafts are skipped unless the
// build includes them.
type WritePages struct{ noLifecycle }

func (WritePages) ID() pipeline.StageID { return WritePagesID }

// Initialize warns when the blog has no landing page.
func (WritePages) Initialize(ctx *blog.BuildContext) error {
	if _, ok := ctx.Registry.IndexPage(); !ok {
		ctx.Logger.Warn("You don't have a landing page")
	}
	return nil
}

func (WritePages) Process(ctx *blog.BuildContext) error {
	written, skipped := 0, 0
	for _, p := range ctx.Registry.Pages() {
		if p.Draft && !ctx.IncludeDrafts() {
			skipped++
			continue
		}
		out := blog.Output{Kind: blog.OutputPage, Title: p.Title, Fingerprint: p.Fingerprint}
		if err := writeOutput(ctx, ctx.Paths.BuildPages, p.HTMLFilename, []byte(p.Content), out); err != nil {
			return err
		}
		written++
	}
	ctx.Logger.Info("Wrote pages", logfields.Count(written), logfields.Skipped(skipped))
	return nil
}

// WritePosts writes posts to build/posts. Drafts are skipped unless the build
// includes them.
type WritePosts struct{ noLifecycle }

func (WritePosts) ID() pipeline.StageID { return WritePostsID }

func (WritePosts) Process(ctx *blog.BuildContext) error {
	written, skipped := 0, 0
	for _, p := range ctx.Registry.Posts() {
		if p.Draft && !ctx.IncludeDrafts() {
			skipped++
			continue
		}
		out := blog.Output{Kind: blog.OutputPost, Title: p.Title, Fingerprint: p.Fingerprint}
		if err := writeOutput(ctx, ctx.Paths.BuildPosts, p.HTMLFilename, []byte(p.Content), out); err != nil {
			return err
		}
		written++
	}
	ctx.Logger.Info("Wrote posts", logfields.Count(written), logfields.Skipped(skipped))
	return nil
}
