// Package config loads and validates the blog configuration file (mublog.yaml).
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"

	ferrors "git.home.luguber.info/inful/mublog/internal/foundation/errors"
)

// Config is the root of mublog.yaml.
type Config struct {
	General  GeneralConfig   `yaml:"general"`
	Features []FeatureConfig `yaml:"features,omitempty"`
	Build    BuildConfig     `yaml:"build"`
	Serve    ServeConfig     `yaml:"serve"`
	Deploy   DeployConfig    `yaml:"deploy"`
}

// GeneralConfig carries blog-wide metadata used by templates and wrapping.
type GeneralConfig struct {
	BlogAuthor        string `yaml:"blog_author"`
	BlogEmail         string `yaml:"blog_email"`
	BlogCopyrightYear string `yaml:"blog_copyright_year"`
	BlogTitle         string `yaml:"blog_title,omitempty"`
	BlogDescription   string `yaml:"blog_description,omitempty"`
	BlogURL           string `yaml:"blog_url,omitempty"`
}

// FeatureConfig enables one feature. Keys other than name are passed to the
// feature as options, e.g. `{name: postlisting, page: Home}`.
type FeatureConfig struct {
	Name    string            `yaml:"name"`
	Options map[string]string `yaml:",inline"`
}

// Option returns the named option or def when unset.
func (f FeatureConfig) Option(key, def string) string {
	if v, ok := f.Options[key]; ok && v != "" {
		return v
	}
	return def
}

// BuildConfig tunes a single build.
type BuildConfig struct {
	IncludeDrafts bool          `yaml:"include_drafts"`
	MetricsFile   string        `yaml:"metrics_file,omitempty"`
	History       HistoryConfig `yaml:"history"`
}

// HistoryConfig controls the SQLite build history.
type HistoryConfig struct {
	Enabled bool   `yaml:"enabled"`
	Path    string `yaml:"path,omitempty"`
}

// ServeConfig controls the preview server.
type ServeConfig struct {
	Port     int           `yaml:"port"`
	Debounce time.Duration `yaml:"debounce,omitempty"`
}

// DeployConfig controls git publishing of the build output.
type DeployConfig struct {
	Directory string      `yaml:"directory,omitempty"`
	Remote    string      `yaml:"remote,omitempty"`
	Branch    string      `yaml:"branch,omitempty"`
	Message   string      `yaml:"message,omitempty"`
	Auth      *AuthConfig `yaml:"auth,omitempty"`
	Retry     RetryConfig `yaml:"retry,omitempty"`
}

// RetryBackoffMode selects how the delay between push attempts grows.
type RetryBackoffMode string

const (
	RetryBackoffFixed       RetryBackoffMode = "fixed"
	RetryBackoffLinear      RetryBackoffMode = "linear"
	RetryBackoffExponential RetryBackoffMode = "exponential"
)

// RetryConfig controls retries of a failed deploy push. Zero attempts
// disables retrying.
type RetryConfig struct {
	Attempts int              `yaml:"attempts,omitempty"`
	Backoff  RetryBackoffMode `yaml:"backoff,omitempty"`
	Initial  time.Duration    `yaml:"initial,omitempty"`
	Max      time.Duration    `yaml:"max,omitempty"`
}

// Load reads configPath, expands ${VAR} references and applies defaults.
// .env files next to the config are loaded first without overriding the
// process environment.
func Load(configPath string) (*Config, error) {
	if err := loadEnvFiles(configPath); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ferrors.ConfigError("configuration file not found").
				WithContext("path", configPath).Build()
		}
		return nil, ferrors.WrapError(err, ferrors.CategoryConfig, "failed to read config file").Build()
	}

	cfg, err := Parse(os.ExpandEnv(string(data)))
	if err != nil {
		return nil, err
	}
	return cfg, nil
}

// Parse unmarshals already-expanded YAML and applies defaults.
func Parse(data string) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal([]byte(data), &cfg); err != nil {
		return nil, ferrors.WrapError(err, ferrors.CategoryConfig, "failed to unmarshal config").Build()
	}
	if err := ApplyDefaults(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Write marshals cfg to configPath.
func Write(configPath string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	if err := os.WriteFile(configPath, data, 0o644); err != nil {
		return ferrors.WrapError(err, ferrors.CategoryFileSystem, "failed to write config file").Build()
	}
	return nil
}

// Example returns the configuration written by `mublog init`.
func Example() *Config {
	cfg := &Config{
		General: GeneralConfig{
			BlogAuthor:        "Jane Doe",
			BlogEmail:         "jane@example.com",
			BlogCopyrightYear: strconv.Itoa(time.Now().Year()),
			BlogTitle:         "My Blog",
			BlogDescription:   "Thoughts and notes",
		},
		Features: []FeatureConfig{
			{Name: FeatureNavbar},
			{Name: FeaturePostListing},
			{Name: FeatureTags},
		},
	}
	_ = ApplyDefaults(cfg)
	return cfg
}
