package stages

import (
	"git.home.luguber.info/inful/mublog/internal/blog"
	"git.home.luguber.info/inful/mublog/internal/logfields"
	"git.home.luguber.info/inful/mublog/internal/pipeline"
)

// LoadStylesheets registers every .css file from the css directory.
type LoadStylesheets struct{ noLifecycle }

func (LoadStylesheets) ID() pipeline.StageID { return LoadStylesheetsID }

func (LoadStylesheets) Initialize(ctx *blog.BuildContext) error {
	return requireDir(ctx.Paths.CSS, "css")
}

func (LoadStylesheets) Process(ctx *blog.BuildContext) error {
	if err := ctx.Registry.LoadStylesheets(ctx.Paths.CSS); err != nil {
		return err
	}
	ctx.Logger.Info("Loaded stylesheets", logfields.Count(len(ctx.Registry.Stylesheets())))
	return nil
}

// LoadAssets registers every file from the assets directory.
type LoadAssets struct{ noLifecycle }

func (LoadAssets) ID() pipeline.StageID { return LoadAssetsID }

func (LoadAssets) Initialize(ctx *blog.BuildContext) error {
	return requireDir(ctx.Paths.Assets, "assets")
}

func (LoadAssets) Process(ctx *blog.BuildContext) error {
	if err := ctx.Registry.LoadAssets(ctx.Paths.Assets); err != nil {
		return err
	}
	ctx.Logger.Info("Loaded assets", logfields.Count(len(ctx.Registry.Assets())))
	return nil
}

// LoadMeta registers every file from the meta directory (favicons, manifest).
type LoadMeta struct{ noLifecycle }

func (LoadMeta) ID() pipeline.StageID { return LoadMetaID }

func (LoadMeta) Initialize(ctx *blog.BuildContext) error {
	return requireDir(ctx.Paths.Meta, "meta")
}

func (LoadMeta) Process(ctx *blog.BuildContext) error {
	if err := ctx.Registry.LoadMetaFiles(ctx.Paths.Meta); err != nil {
		return err
	}
	ctx.Logger.Info("Loaded meta files", logfields.Count(len(ctx.Registry.MetaFiles())))
	return nil
}

// LoadPosts parses and registers every post.
type LoadPosts struct{ noLifecycle }

func (LoadPosts) ID() pipeline.StageID { return LoadPostsID }

func (LoadPosts) Initialize(ctx *blog.BuildContext) error {
	return requireDir(ctx.Paths.Posts, "posts")
}

func (LoadPosts) Process(ctx *blog.BuildContext) error {
	if err := ctx.Registry.LoadPosts(ctx.Paths.Posts); err != nil {
		return err
	}
	ctx.Logger.Info("Loaded posts", logfields.Count(len(ctx.Registry.Posts())))
	return nil
}

// LoadPages parses and registers every page.
type LoadPages struct{ noLifecycle }

func (LoadPages) ID() pipeline.StageID { return LoadPagesID }

func (LoadPages) Initialize(ctx *blog.BuildContext) error {
	return requireDir(ctx.Paths.Pages, "pages")
}

func (LoadPages) Process(ctx *blog.BuildContext) error {
	if err := ctx.Registry.LoadPages(ctx.Paths.Pages); err != nil {
		return err
	}
	ctx.Logger.Info("Loaded pages", logfields.Count(len(ctx.Registry.Pages())))
	return nil
}
