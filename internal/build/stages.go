package build

import (
	"git.home.luguber.info/inful/mublog/internal/markdown"
	"git.home.luguber.info/inful/mublog/internal/pipeline"
	"git.home.luguber.info/inful/mublog/internal/stages"
)

// DefaultStages returns the stage list of a full build in execution order.
// A nil converter uses markdown.DefaultOptions.
func DefaultStages(conv *markdown.Converter) []pipeline.Stage {
	if conv == nil {
		conv = markdown.NewConverter(markdown.DefaultOptions())
	}
	return []pipeline.Stage{
		stages.CreateBuildDirectories{},
		stages.LoadStylesheets{},
		stages.LoadAssets{},
		stages.LoadMeta{},
		stages.LoadPosts{},
		stages.LoadPages{},
		stages.ApplyGlobalVars{},
		stages.NewConvertPosts(conv),
		stages.NewConvertPages(conv),
		stages.WrapPosts{},
		stages.WrapPages{},
		stages.WriteStylesheets{},
		stages.WriteAssets{},
		stages.WriteMeta{},
		stages.WritePages{},
		stages.WritePosts{},
	}
}
