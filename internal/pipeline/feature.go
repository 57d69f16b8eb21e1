package pipeline

import (
	"git.home.luguber.info/inful/mublog/internal/blog"
	"git.home.luguber.info/inful/mublog/internal/logfields"
)

// Feature is an optional behavior attached to stage lifecycle points.
//
// Construction is separate from registration: a feature is built with its
// options and then declares the hooks it wants in Subscribe. Run is called
// once per subscribed (stage, lifecycle) pair and dispatches on it.
type Feature interface {
	Name() string
	Subscribe(r *FeatureRegistry)
	Run(ctx *blog.BuildContext, stage StageID, point Lifecycle) error
}

type hookKey struct {
	stage StageID
	point Lifecycle
}

// FeatureRegistry maps (stage, lifecycle) pairs to ordered feature lists.
type FeatureRegistry struct {
	hooks map[hookKey][]Feature
}

// NewFeatureRegistry returns an empty registry.
func NewFeatureRegistry() *FeatureRegistry {
	return &FeatureRegistry{hooks: make(map[hookKey][]Feature)}
}

// Register appends f to the bucket for (stage, point). Registering the same
// feature twice makes it run twice.
func (r *FeatureRegistry) Register(stage StageID, point Lifecycle, f Feature) {
	k := hookKey{stage: stage, point: point}
	r.hooks[k] = append(r.hooks[k], f)
}

// Hooks returns a copy of the bucket for (stage, point).
func (r *FeatureRegistry) Hooks(stage StageID, point Lifecycle) []Feature {
	return append([]Feature(nil), r.hooks[hookKey{stage: stage, point: point}]...)
}

// Len reports the total number of registered hooks.
func (r *FeatureRegistry) Len() int {
	n := 0
	for _, b := range r.hooks {
		n += len(b)
	}
	return n
}

// RunHooks runs the bucket for (stage, point) in order and stops at the first
// failure. An empty bucket is a no-op.
func (r *FeatureRegistry) RunHooks(ctx *blog.BuildContext, stage StageID, point Lifecycle) error {
	for _, f := range r.hooks[hookKey{stage: stage, point: point}] {
		if ctx != nil && ctx.Logger != nil {
			ctx.Logger.Debug("Running feature hook",
				logfields.Feature(f.Name()),
				logfields.Stage(string(stage)),
				logfields.Lifecycle(point.String()))
		}
		if err := f.Run(ctx, stage, point); err != nil {
			return &FeatureError{Feature: f.Name(), Stage: stage, Lifecycle: point, Err: err}
		}
	}
	return nil
}
