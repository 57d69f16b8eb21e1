package commands

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"git.home.luguber.info/inful/mublog/internal/metrics"
	"git.home.luguber.info/inful/mublog/internal/preview"
)

// ServeCmd implements the 'serve' command.
type ServeCmd struct {
	Port   int  `short:"p" help:"Port to listen on; overrides serve.port"`
	Drafts bool `help:"Render draft posts and pages"`
}

func (s *ServeCmd) Run(g *Global, root *CLI) error {
	p, err := blogPaths(root)
	if err != nil {
		return err
	}
	cfg, err := loadConfig(p)
	if err != nil {
		return err
	}

	sigctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	opts := []preview.Option{
		preview.WithLogger(g.logger()),
		preview.WithPrometheus(metrics.NewPrometheusRecorder(nil)),
		preview.WithIncludeDrafts(s.Drafts),
	}
	if s.Port > 0 {
		opts = append(opts, preview.WithAddr(fmt.Sprintf(":%d", s.Port)))
	}
	return preview.New(p, cfg, opts...).Run(sigctx)
}
