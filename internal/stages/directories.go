package stages

import (
	"os"

	"git.home.luguber.info/inful/mublog/internal/blog"
	ferrors "git.home.luguber.info/inful/mublog/internal/foundation/errors"
	"git.home.luguber.info/inful/mublog/internal/logfields"
	"git.home.luguber.info/inful/mublog/internal/pipeline"
)

// CreateBuildDirectories wipes the previous build output and recreates the
// build directory tree.
type CreateBuildDirectories struct{}

func (CreateBuildDirectories) ID() pipeline.StageID { return CreateBuildDirectoriesID }

// Initialize removes an existing build directory.
func (CreateBuildDirectories) Initialize(ctx *blog.BuildContext) error {
	if _, err := os.Stat(ctx.Paths.Build); err != nil {
		return nil
	}
	if err := os.RemoveAll(ctx.Paths.Build); err != nil {
		return ferrors.WrapError(err, ferrors.CategoryFileSystem, "failed to remove existing build environment").
			WithContext("path", ctx.Paths.Build).Build()
	}
	ctx.Logger.Debug("Removed previous build output", logfields.Path(ctx.Paths.Build))
	return nil
}

// Process checks the source directories and creates the output tree.
func (CreateBuildDirectories) Process(ctx *blog.BuildContext) error {
	sources := []struct{ dir, what string }{
		{ctx.Paths.Assets, "assets"},
		{ctx.Paths.CSS, "css"},
		{ctx.Paths.Meta, "meta"},
		{ctx.Paths.Posts, "posts"},
		{ctx.Paths.Pages, "pages"},
	}
	for _, s := range sources {
		if err := requireDir(s.dir, s.what); err != nil {
			return err
		}
	}

	for _, dir := range ctx.Paths.BuildDirs() {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return ferrors.WrapError(err, ferrors.CategoryFileSystem, "failed to create directory").
				WithContext("path", dir).Build()
		}
	}
	return nil
}

func (CreateBuildDirectories) Finalize(*blog.BuildContext) error { return nil }
