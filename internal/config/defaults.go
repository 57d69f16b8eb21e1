package config

import "time"

// DefaultHistoryPath is the history database location relative to the blog.
const DefaultHistoryPath = ".mublog/history.db"

// DefaultApplier fills unset values of one configuration domain.
type DefaultApplier interface {
	Domain() string
	ApplyDefaults(cfg *Config) error
}

// GeneralDefaultApplier defaults the blog title to the author's name.
type GeneralDefaultApplier struct{}

func (g *GeneralDefaultApplier) Domain() string { return "general" }

func (g *GeneralDefaultApplier) ApplyDefaults(cfg *Config) error {
	if cfg.General.BlogTitle == "" && cfg.General.BlogAuthor != "" {
		cfg.General.BlogTitle = cfg.General.BlogAuthor
	}
	return nil
}

// BuildDefaultApplier handles build and history settings.
type BuildDefaultApplier struct{}

func (b *BuildDefaultApplier) Domain() string { return "build" }

func (b *BuildDefaultApplier) ApplyDefaults(cfg *Config) error {
	if cfg.Build.History.Path == "" {
		cfg.Build.History.Path = DefaultHistoryPath
	}
	return nil
}

// ServeDefaultApplier handles preview server settings.
type ServeDefaultApplier struct{}

func (s *ServeDefaultApplier) Domain() string { return "serve" }

func (s *ServeDefaultApplier) ApplyDefaults(cfg *Config) error {
	if cfg.Serve.Port == 0 {
		cfg.Serve.Port = 8080
	}
	if cfg.Serve.Debounce == 0 {
		cfg.Serve.Debounce = 300 * time.Millisecond
	}
	return nil
}

// DeployDefaultApplier handles git publishing settings.
type DeployDefaultApplier struct{}

func (d *DeployDefaultApplier) Domain() string { return "deploy" }

func (d *DeployDefaultApplier) ApplyDefaults(cfg *Config) error {
	if cfg.Deploy.Branch == "" {
		cfg.Deploy.Branch = "main"
	}
	if cfg.Deploy.Message == "" {
		cfg.Deploy.Message = "Publish blog"
	}
	if cfg.Deploy.Auth != nil && cfg.Deploy.Auth.Type == "" {
		cfg.Deploy.Auth.Type = AuthTypeNone
	}
	return nil
}

// ApplyDefaults runs every domain applier in order.
func ApplyDefaults(cfg *Config) error {
	appliers := []DefaultApplier{
		&GeneralDefaultApplier{},
		&BuildDefaultApplier{},
		&ServeDefaultApplier{},
		&DeployDefaultApplier{},
	}
	for _, a := range appliers {
		if err := a.ApplyDefaults(cfg); err != nil {
			return err
		}
	}
	return nil
}
