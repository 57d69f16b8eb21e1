package build

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	prom "github.com/prometheus/client_golang/prometheus"

	"git.home.luguber.info/inful/mublog/internal/blog"
	"git.home.luguber.info/inful/mublog/internal/config"
	"git.home.luguber.info/inful/mublog/internal/features"
	"git.home.luguber.info/inful/mublog/internal/history"
	"git.home.luguber.info/inful/mublog/internal/logfields"
	"git.home.luguber.info/inful/mublog/internal/markdown"
	"git.home.luguber.info/inful/mublog/internal/metrics"
	"git.home.luguber.info/inful/mublog/internal/paths"
	"git.home.luguber.info/inful/mublog/internal/pipeline"
)

// HistoryOpener opens the build-history store at path.
type HistoryOpener func(path string) (history.Store, error)

// DefaultBuildService is the standard implementation of BuildService.
type DefaultBuildService struct {
	recorder      metrics.Recorder
	registry      *prom.Registry
	historyStore  history.Store
	historyOpener HistoryOpener
	converter     *markdown.Converter
	logger        *slog.Logger
}

// NewBuildService creates a service that records no metrics and opens the
// SQLite history store when the configuration enables it.
func NewBuildService() *DefaultBuildService {
	return &DefaultBuildService{
		recorder: metrics.NoopRecorder{},
		historyOpener: func(path string) (history.Store, error) {
			return history.Open(path)
		},
		converter: markdown.NewConverter(markdown.DefaultOptions()),
		logger:    slog.Default(),
	}
}

// WithRecorder sets the metrics recorder.
func (s *DefaultBuildService) WithRecorder(r metrics.Recorder) *DefaultBuildService {
	if r == nil {
		r = metrics.NoopRecorder{}
	}
	s.recorder = r
	return s
}

// WithPrometheus records into pr and exports its registry when the
// configuration names a metrics file.
func (s *DefaultBuildService) WithPrometheus(pr *metrics.PrometheusRecorder) *DefaultBuildService {
	s.recorder = pr
	s.registry = pr.Registry()
	return s
}

// WithHistoryStore records every build into store regardless of
// configuration. The caller keeps ownership of store.
func (s *DefaultBuildService) WithHistoryStore(store history.Store) *DefaultBuildService {
	s.historyStore = store
	return s
}

// WithHistoryOpener replaces the opener used for configured history stores.
func (s *DefaultBuildService) WithHistoryOpener(open HistoryOpener) *DefaultBuildService {
	s.historyOpener = open
	return s
}

// WithConverter replaces the markdown converter.
func (s *DefaultBuildService) WithConverter(c *markdown.Converter) *DefaultBuildService {
	s.converter = c
	return s
}

// WithLogger sets the logger used when a request carries none.
func (s *DefaultBuildService) WithLogger(l *slog.Logger) *DefaultBuildService {
	if l != nil {
		s.logger = l
	}
	return s
}

// Run executes the complete build pipeline.
func (s *DefaultBuildService) Run(ctx context.Context, req BuildRequest) (*BuildResult, error) {
	startTime := time.Now()
	result := &BuildResult{StartTime: startTime, Status: BuildStatusFailed}
	finish := func(err error) (*BuildResult, error) {
		result.EndTime = time.Now()
		result.Duration = result.EndTime.Sub(startTime)
		if err == nil {
			result.Status = BuildStatusSuccess
		}
		return result, err
	}

	if req.Dir == "" {
		return finish(ErrNoDirectory)
	}
	if !blog.IsBlogDirectory(req.Dir) {
		return finish(ErrNotBlogDirectory.WithContext("path", req.Dir))
	}
	p := paths.New(req.Dir)
	if req.OutputDir != "" {
		p = p.WithBuild(req.OutputDir)
	}
	result.OutputPath = p.Build

	cfg, err := s.loadConfig(p, req)
	if err != nil {
		return finish(err)
	}

	logger := req.Logger
	if logger == nil {
		logger = s.logger
	}
	bc := blog.NewBuildContext(cfg, p, logger)
	result.BuildID = bc.BuildID

	feats, err := features.FromConfig(cfg.Features)
	if err != nil {
		return finish(fmt.Errorf("configure features: %w", err))
	}

	recorder, registry := s.recorder, s.registry
	if cfg.Build.MetricsFile != "" && registry == nil {
		pr := metrics.NewPrometheusRecorder(nil)
		recorder, registry = pr, pr.Registry()
	}
	observers := pipeline.MultiObserver{metrics.NewObserver(recorder)}

	store, closeStore, err := s.openHistory(cfg, p)
	if err != nil {
		bc.Logger.Warn("Build history disabled", logfields.Error(err))
	}
	if store != nil {
		defer closeStore()
		rec := history.NewRecorder(ctx, store, bc)
		rec.Start()
		observers = append(observers, rec)
	}

	pl := pipeline.New(bc, pipeline.WithObserver(observers), pipeline.WithLogger(bc.Logger))
	for _, st := range DefaultStages(s.converter) {
		pl.AddStage(st)
	}
	for _, f := range feats {
		pl.AddFeature(f)
	}

	runErr := pl.Run()

	result.Posts = len(bc.Registry.Posts())
	result.Pages = len(bc.Registry.Pages())
	result.Outputs = bc.Outputs()
	for _, kind := range []blog.OutputKind{blog.OutputPost, blog.OutputPage, blog.OutputStylesheet, blog.OutputAsset, blog.OutputMeta} {
		recorder.SetDocumentsWritten(string(kind), result.FilesWritten(kind))
	}

	if cfg.Build.MetricsFile != "" {
		metricsPath := resolve(p.Base, cfg.Build.MetricsFile)
		if err := metrics.WriteTextfile(metricsPath, registry); err != nil {
			bc.Logger.Warn("Failed to write metrics file", logfields.Path(metricsPath), logfields.Error(err))
		}
	}

	return finish(runErr)
}

func (s *DefaultBuildService) loadConfig(p paths.Paths, req BuildRequest) (*config.Config, error) {
	cfg := req.Config
	if cfg == nil {
		loaded, err := config.Load(p.ConfigFile)
		if err != nil {
			return nil, fmt.Errorf("load config: %w", err)
		}
		cfg = loaded
	}

	c := *cfg
	if err := config.ApplyDefaults(&c); err != nil {
		return nil, err
	}
	if err := config.Validate(&c); err != nil {
		return nil, err
	}
	if req.Options.IncludeDrafts {
		c.Build.IncludeDrafts = true
	}
	return &c, nil
}

// openHistory returns the store builds are recorded into, or nil when
// history is off. The returned close func is a no-op for injected stores.
func (s *DefaultBuildService) openHistory(cfg *config.Config, p paths.Paths) (history.Store, func(), error) {
	if s.historyStore != nil {
		return s.historyStore, func() {}, nil
	}
	if !cfg.Build.History.Enabled || s.historyOpener == nil {
		return nil, nil, nil
	}
	store, err := s.historyOpener(HistoryPath(cfg, p))
	if err != nil {
		return nil, nil, err
	}
	return store, func() { _ = store.Close() }, nil
}

// HistoryPath resolves the configured history database against the blog
// directory.
func HistoryPath(cfg *config.Config, p paths.Paths) string {
	return resolve(p.Base, cfg.Build.History.Path)
}

func resolve(base, path string) string {
	if filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(base, path)
}
