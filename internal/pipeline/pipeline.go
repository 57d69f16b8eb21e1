package pipeline

import (
	"log/slog"
	"time"

	"git.home.luguber.info/inful/mublog/internal/blog"
	"git.home.luguber.info/inful/mublog/internal/logfields"
)

type stageEntry struct {
	stage Stage
	id    StageID
}

// Pipeline owns an ordered stage list, a feature registry and the build
// context they operate on.
type Pipeline struct {
	ctx      *blog.BuildContext
	stages   []stageEntry
	features *FeatureRegistry
	observer Observer
	logger   *slog.Logger
}

// Option configures a Pipeline.
type Option func(*Pipeline)

// WithObserver attaches an observer for stage and build callbacks.
func WithObserver(o Observer) Option {
	return func(p *Pipeline) {
		if o != nil {
			p.observer = o
		}
	}
}

// WithLogger overrides the logger taken from the build context.
func WithLogger(l *slog.Logger) Option {
	return func(p *Pipeline) {
		if l != nil {
			p.logger = l
		}
	}
}

// New creates an empty pipeline bound to ctx.
func New(ctx *blog.BuildContext, opts ...Option) *Pipeline {
	p := &Pipeline{
		ctx:      ctx,
		features: NewFeatureRegistry(),
		observer: NoopObserver{},
	}
	if ctx != nil && ctx.Logger != nil {
		p.logger = ctx.Logger
	} else {
		p.logger = slog.Default()
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// AddStage appends s. Stages run in the order they were added; adding the
// same kind twice runs it twice.
func (p *Pipeline) AddStage(s Stage) *Pipeline {
	p.stages = append(p.stages, stageEntry{stage: s, id: s.ID()})
	return p
}

// AddFeature lets f subscribe its hooks.
func (p *Pipeline) AddFeature(f Feature) *Pipeline {
	f.Subscribe(p.features)
	p.logger.Debug("Feature registered", logfields.Feature(f.Name()))
	return p
}

// Stages returns the stage ids in execution order.
func (p *Pipeline) Stages() []StageID {
	ids := make([]StageID, 0, len(p.stages))
	for _, e := range p.stages {
		ids = append(ids, e.id)
	}
	return ids
}

// Features exposes the feature registry.
func (p *Pipeline) Features() *FeatureRegistry { return p.features }

// Context returns the build context the pipeline operates on.
func (p *Pipeline) Context() *blog.BuildContext { return p.ctx }

// Run executes every stage in order and returns the first failure as a
// *StageError. Nothing after the failing phase runs.
func (p *Pipeline) Run() error {
	start := time.Now()
	p.logger.Info("Build started", logfields.Count(len(p.stages)))

	var runErr error
	for _, e := range p.stages {
		if runErr = p.runStage(e); runErr != nil {
			break
		}
	}

	dur := time.Since(start)
	p.observer.OnBuildComplete(dur, runErr)
	if runErr != nil {
		p.logger.Error("Build failed", logfields.Duration(dur), logfields.Error(runErr))
		return runErr
	}
	p.logger.Info("Build completed", logfields.Duration(dur))
	return nil
}

func (p *Pipeline) runStage(e stageEntry) error {
	log := p.logger.With(logfields.Stage(string(e.id)))
	p.observer.OnStageStart(e.id)
	start := time.Now()

	steps := []struct {
		phase Phase
		fn    func() error
	}{
		{PhaseInitialize, func() error { return e.stage.Initialize(p.ctx) }},
		{PhasePreProcess, func() error { return p.features.RunHooks(p.ctx, e.id, PreProcess) }},
		{PhaseProcess, func() error { return e.stage.Process(p.ctx) }},
		{PhasePostProcess, func() error { return p.features.RunHooks(p.ctx, e.id, PostProcess) }},
		{PhaseFinalize, func() error { return e.stage.Finalize(p.ctx) }},
	}

	var stageErr error
	for _, step := range steps {
		log.Debug("Stage phase", logfields.Phase(string(step.phase)))
		if err := step.fn(); err != nil {
			stageErr = &StageError{Stage: e.id, Phase: step.phase, Err: err}
			break
		}
	}

	dur := time.Since(start)
	p.observer.OnStageComplete(e.id, dur, stageErr)
	if stageErr != nil {
		return stageErr
	}
	log.Debug("Stage completed", logfields.Duration(dur))
	return nil
}
