package stages

import "git.home.luguber.info/inful/mublog/internal/pipeline"

// Stage identities. Features subscribe to these.
const (
	CreateBuildDirectoriesID pipeline.StageID = "create_build_directories"
	LoadStylesheetsID        pipeline.StageID = "load_stylesheets"
	LoadAssetsID             pipeline.StageID = "load_assets"
	LoadMetaID               pipeline.StageID = "load_meta"
	LoadPostsID              pipeline.StageID = "load_posts"
	LoadPagesID              pipeline.StageID = "load_pages"
	ApplyGlobalVarsID        pipeline.StageID = "apply_global_vars"
	ConvertPostsID           pipeline.StageID = "convert_posts"
	ConvertPagesID           pipeline.StageID = "convert_pages"
	WrapPostsID              pipeline.StageID = "wrap_posts"
	WrapPagesID              pipeline.StageID = "wrap_pages"
	WriteStylesheetsID       pipeline.StageID = "write_stylesheets"
	WriteAssetsID            pipeline.StageID = "write_assets"
	WriteMetaID              pipeline.StageID = "write_meta"
	WritePagesID             pipeline.StageID = "write_pages"
	WritePostsID             pipeline.StageID = "write_posts"
)
