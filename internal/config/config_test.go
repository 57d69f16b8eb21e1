package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	ferrors "git.home.luguber.info/inful/mublog/internal/foundation/errors"
)

const sampleConfig = `
general:
  blog_author: Jane Doe
  blog_email: jane@example.com
  blog_copyright_year: "2024"
features:
  - name: navbar
  - name: postlisting
    page: Home
build:
  include_drafts: true
deploy:
  remote: ${MUBLOG_TEST_REMOTE}
  auth:
    type: token
    token: ${MUBLOG_TEST_TOKEN}
`

func TestLoad_MalformedEnvFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "mublog.yaml")
	require.NoError(t, os.WriteFile(path, []byte(sampleConfig), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("BAD-KEY=1\n"), 0o644))

	_, err := Load(path)
	require.Error(t, err)
	assert.True(t, ferrors.HasCategory(err, ferrors.CategoryConfig))
	assert.Contains(t, err.Error(), "failed to load env file")
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "mublog.yaml")
	require.NoError(t, os.WriteFile(path, []byte(sampleConfig), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("MUBLOG_TEST_TOKEN=from-dotenv\nMUBLOG_TEST_REMOTE=from-dotenv\n"), 0o644))
	t.Setenv("MUBLOG_TEST_REMOTE", "https://example.com/blog.git")
	t.Cleanup(func() { _ = os.Unsetenv("MUBLOG_TEST_TOKEN") })

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "Jane Doe", cfg.General.BlogAuthor)
	assert.Equal(t, "Jane Doe", cfg.General.BlogTitle)
	assert.True(t, cfg.Build.IncludeDrafts)
	assert.Equal(t, ".mublog/history.db", cfg.Build.History.Path)
	assert.Equal(t, 8080, cfg.Serve.Port)
	assert.Equal(t, 300*time.Millisecond, cfg.Serve.Debounce)
	assert.Equal(t, "main", cfg.Deploy.Branch)

	// process environment wins over .env
	assert.Equal(t, "https://example.com/blog.git", cfg.Deploy.Remote)
	assert.Equal(t, "from-dotenv", cfg.Deploy.Auth.Token)

	require.Len(t, cfg.Features, 2)
	assert.Equal(t, "navbar", cfg.Features[0].Name)
	assert.Equal(t, "Home", cfg.Features[1].Option("page", ""))
	assert.Equal(t, "fallback", cfg.Features[0].Option("page", "fallback"))

	require.NoError(t, Validate(cfg))
}

func TestLoad_Missing(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "mublog.yaml"))
	require.Error(t, err)
	assert.True(t, ferrors.HasCategory(err, ferrors.CategoryConfig))
}

func TestParse_InvalidYAML(t *testing.T) {
	_, err := Parse("general: [")
	require.Error(t, err)
	assert.True(t, ferrors.HasCategory(err, ferrors.CategoryConfig))
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		cfg := Example()
		return cfg
	}

	tests := []struct {
		name   string
		mutate func(*Config)
		ok     bool
	}{
		{"example", func(*Config) {}, true},
		{"missing author", func(c *Config) { c.General.BlogAuthor = " " }, false},
		{"missing email", func(c *Config) { c.General.BlogEmail = "" }, false},
		{"bad year", func(c *Config) { c.General.BlogCopyrightYear = "soon" }, false},
		{"unknown feature", func(c *Config) { c.Features = append(c.Features, FeatureConfig{Name: "comments"}) }, false},
		{"duplicate feature", func(c *Config) { c.Features = append(c.Features, FeatureConfig{Name: "navbar"}) }, false},
		{"bad port", func(c *Config) { c.Serve.Port = 70000 }, false},
		{"token without token", func(c *Config) { c.Deploy.Auth = &AuthConfig{Type: AuthTypeToken} }, false},
		{"unknown auth", func(c *Config) { c.Deploy.Auth = &AuthConfig{Type: "kerberos"} }, false},
		{"ssh auth", func(c *Config) { c.Deploy.Auth = &AuthConfig{Type: AuthTypeSSH} }, true},
		{"negative retries", func(c *Config) { c.Deploy.Retry.Attempts = -1 }, false},
		{"unknown backoff", func(c *Config) { c.Deploy.Retry.Backoff = "random" }, false},
		{"exponential backoff", func(c *Config) { c.Deploy.Retry = RetryConfig{Attempts: 3, Backoff: RetryBackoffExponential} }, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(cfg)
			err := Validate(cfg)
			if tt.ok {
				require.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.True(t, ferrors.HasCategory(err, ferrors.CategoryConfig))
		})
	}
}

func TestWriteThenLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "mublog.yaml")
	require.NoError(t, Write(path, Example()))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, Example().General, cfg.General)
	assert.Len(t, cfg.Features, 3)
}
