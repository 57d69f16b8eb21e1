// Package preview serves the generated site over HTTP and rebuilds it
// whenever a source file or the configuration changes.
package preview

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"sync"
	"time"

	"git.home.luguber.info/inful/mublog/internal/build"
	"git.home.luguber.info/inful/mublog/internal/config"
	ferrors "git.home.luguber.info/inful/mublog/internal/foundation/errors"
	"git.home.luguber.info/inful/mublog/internal/logfields"
	"git.home.luguber.info/inful/mublog/internal/metrics"
	"git.home.luguber.info/inful/mublog/internal/paths"
)

const shutdownTimeout = 5 * time.Second

// Option configures a Server.
type Option func(*Server)

// WithLogger sets the logger for the server and its builds.
func WithLogger(l *slog.Logger) Option {
	return func(s *Server) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithBuildService replaces the service used for rebuilds.
func WithBuildService(svc build.BuildService) Option {
	return func(s *Server) { s.service = svc }
}

// WithPrometheus exposes the registry of pr on /metrics and records every
// rebuild into it.
func WithPrometheus(pr *metrics.PrometheusRecorder) Option {
	return func(s *Server) { s.recorder = pr }
}

// WithAddr overrides the listen address derived from serve.port.
func WithAddr(addr string) Option {
	return func(s *Server) { s.addr = addr }
}

// WithIncludeDrafts renders draft posts and pages.
func WithIncludeDrafts(include bool) Option {
	return func(s *Server) { s.buildOpts.IncludeDrafts = include }
}

// Server is a local preview of one blog.
type Server struct {
	paths     paths.Paths
	addr      string
	debounce  time.Duration
	service   build.BuildService
	recorder  *metrics.PrometheusRecorder
	buildOpts build.BuildOptions
	logger    *slog.Logger

	status buildStatus
	mu     sync.Mutex
	// siteMu guards the build directory while a finished build is swapped in.
	siteMu sync.RWMutex
}

// stagingDir receives each rebuild before it replaces the build directory.
// Hidden names are ignored by the watcher.
const (
	stagingDir  = ".build-next"
	previousDir = ".build-prev"
)

// New creates a preview server for the blog at p. cfg supplies the port and
// debounce delay; rebuilds re-read the configuration file every time.
func New(p paths.Paths, cfg *config.Config, opts ...Option) *Server {
	serve := config.ServeConfig{}
	if cfg != nil {
		serve = cfg.Serve
	}
	if serve.Port == 0 {
		serve.Port = 8080
	}
	if serve.Debounce <= 0 {
		serve.Debounce = 300 * time.Millisecond
	}

	s := &Server{
		paths:    p,
		addr:     fmt.Sprintf(":%d", serve.Port),
		debounce: serve.Debounce,
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.service == nil {
		svc := build.NewBuildService().WithLogger(s.logger)
		if s.recorder != nil {
			svc = svc.WithPrometheus(s.recorder)
		}
		s.service = svc
	}
	return s
}

// Addr is the address the server listens on.
func (s *Server) Addr() string { return s.addr }

// Handler serves the build directory, and /metrics when a Prometheus
// recorder is configured. Until one build has succeeded every site request
// answers 503 with the build error.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	if s.recorder != nil {
		mux.Handle("/metrics", metrics.HTTPHandler(s.recorder.Registry()))
	}
	files := http.FileServer(http.Dir(s.paths.Build))
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		hasError, err, good := s.status.getStatus()
		if !good {
			msg := "site not built yet"
			if hasError {
				msg = "build failed: " + err.Error()
			}
			http.Error(w, msg, http.StatusServiceUnavailable)
			return
		}
		if hasError {
			w.Header().Set("X-Mublog-Build-Error", err.Error())
		}
		w.Header().Set("Cache-Control", "no-store")
		s.siteMu.RLock()
		defer s.siteMu.RUnlock()
		files.ServeHTTP(w, r)
	})
	return mux
}

// Rebuild runs one full build into a staging directory and records its
// outcome. Only a successful build replaces the served build directory, so
// a failed rebuild leaves the last good site in place. Concurrent calls are
// serialized.
func (s *Server) Rebuild(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	staging := filepath.Join(s.paths.Base, stagingDir)
	res, err := s.service.Run(ctx, build.BuildRequest{
		Dir:       s.paths.Base,
		Logger:    s.logger,
		Options:   s.buildOpts,
		OutputDir: staging,
	})
	if err == nil {
		err = s.swapIn(staging)
	}
	if err != nil {
		_ = os.RemoveAll(staging)
		s.logger.Warn("Rebuild failed", logfields.Error(err))
		s.status.setError(err)
		return err
	}
	s.logger.Info("Site rebuilt",
		logfields.BuildID(res.BuildID),
		logfields.Count(len(res.Outputs)),
		logfields.Duration(res.Duration))
	s.status.setSuccess()
	return nil
}

// swapIn replaces the build directory with staging.
func (s *Server) swapIn(staging string) error {
	s.siteMu.Lock()
	defer s.siteMu.Unlock()

	previous := filepath.Join(s.paths.Base, previousDir)
	if err := os.RemoveAll(previous); err != nil {
		return ferrors.WrapError(err, ferrors.CategoryFileSystem, "failed to clear previous build").Build()
	}
	if err := os.Rename(s.paths.Build, previous); err != nil && !os.IsNotExist(err) {
		return ferrors.WrapError(err, ferrors.CategoryFileSystem, "failed to move build directory aside").
			WithContext("path", s.paths.Build).Build()
	}
	if err := os.Rename(staging, s.paths.Build); err != nil {
		_ = os.Rename(previous, s.paths.Build)
		return ferrors.WrapError(err, ferrors.CategoryFileSystem, "failed to publish rebuilt site").
			WithContext("path", s.paths.Build).Build()
	}
	_ = os.RemoveAll(previous)
	return nil
}

// Run builds the site, starts the HTTP server and rebuilds on change until
// ctx is cancelled. A failing initial build does not stop the server.
func (s *Server) Run(ctx context.Context) error {
	_ = s.Rebuild(ctx)

	watcher, err := newWatcher(s.paths, s.logger)
	if err != nil {
		return fmt.Errorf("fsnotify: %w", err)
	}
	defer func() { _ = watcher.Close() }()

	httpServer := &http.Server{
		Addr:              s.addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	serveErr := make(chan error, 1)
	go func() {
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
	}()
	s.logger.Info("Preview server listening", slog.String("addr", s.addr), logfields.Path(s.paths.Build))

	deb := newDebouncer(s.debounce)
	defer deb.stop()

	workerCtx, stopWorker := context.WithCancel(ctx)
	defer stopWorker()

	// One buffered slot means changes made during a rebuild queue exactly
	// one more.
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		for {
			select {
			case <-workerCtx.Done():
				return
			case <-deb.C:
				s.logger.Info("Change detected; rebuilding site")
				_ = s.Rebuild(workerCtx)
			}
		}
	}()

	shutdown := func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			s.logger.Warn("HTTP server shutdown error", logfields.Error(err))
		}
		stopWorker()
		wg.Wait()
	}

	for {
		select {
		case <-ctx.Done():
			s.logger.Info("Shutting down preview server")
			shutdown()
			return nil
		case err := <-serveErr:
			shutdown()
			return fmt.Errorf("preview server: %w", err)
		case ev, ok := <-watcher.Events:
			if !ok {
				shutdown()
				return nil
			}
			if handleFileEvent(watcher, s.paths, ev, s.logger) {
				deb.trigger()
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				shutdown()
				return nil
			}
			s.logger.Warn("watcher error", logfields.Error(err))
		}
	}
}
