package config

import (
	"slices"
	"strconv"
	"strings"

	ferrors "git.home.luguber.info/inful/mublog/internal/foundation/errors"
)

// Feature names accepted in the features list.
const (
	FeatureNavbar      = "navbar"
	FeaturePostListing = "postlisting"
	FeatureTags        = "tags"
)

// KnownFeatures lists every feature name in canonical order.
var KnownFeatures = []string{FeatureNavbar, FeaturePostListing, FeatureTags}

// Validate checks that cfg is complete enough to build a blog.
func Validate(cfg *Config) error {
	return newConfigurationValidator(cfg).validate()
}

type configurationValidator struct {
	config *Config
}

func newConfigurationValidator(config *Config) *configurationValidator {
	return &configurationValidator{config: config}
}

func (cv *configurationValidator) validate() error {
	validators := []func() error{
		cv.validateGeneral,
		cv.validateFeatures,
		cv.validateServe,
		cv.validateDeploy,
	}
	for _, v := range validators {
		if err := v(); err != nil {
			return err
		}
	}
	return nil
}

func (cv *configurationValidator) validateGeneral() error {
	g := cv.config.General
	required := []struct{ key, value string }{
		{"general.blog_author", g.BlogAuthor},
		{"general.blog_email", g.BlogEmail},
		{"general.blog_copyright_year", g.BlogCopyrightYear},
	}
	for _, r := range required {
		if strings.TrimSpace(r.value) == "" {
			return ferrors.ConfigError("missing required setting").WithContext("key", r.key).Build()
		}
	}
	if _, err := strconv.Atoi(strings.TrimSpace(g.BlogCopyrightYear)); err != nil {
		return ferrors.ConfigError("blog_copyright_year must be a year").
			WithContext("value", g.BlogCopyrightYear).Build()
	}
	return nil
}

func (cv *configurationValidator) validateFeatures() error {
	seen := make(map[string]bool)
	for _, f := range cv.config.Features {
		if !slices.Contains(KnownFeatures, f.Name) {
			return ferrors.ConfigError("unknown feature").WithContext("feature", f.Name).Build()
		}
		if seen[f.Name] {
			return ferrors.ConfigError("feature listed more than once").WithContext("feature", f.Name).Build()
		}
		seen[f.Name] = true
	}
	return nil
}

func (cv *configurationValidator) validateServe() error {
	if p := cv.config.Serve.Port; p < 1 || p > 65535 {
		return ferrors.ConfigError("serve.port out of range").WithContext("port", p).Build()
	}
	return nil
}

func (cv *configurationValidator) validateDeploy() error {
	rc := cv.config.Deploy.Retry
	if rc.Attempts < 0 {
		return ferrors.ConfigError("deploy.retry.attempts cannot be negative").WithContext("attempts", rc.Attempts).Build()
	}
	switch rc.Backoff {
	case "", RetryBackoffFixed, RetryBackoffLinear, RetryBackoffExponential:
	default:
		return ferrors.ConfigError("unsupported deploy.retry.backoff").WithContext("backoff", string(rc.Backoff)).Build()
	}

	auth := cv.config.Deploy.Auth
	if auth == nil {
		return nil
	}
	switch auth.Type {
	case AuthTypeNone, AuthTypeSSH:
	case AuthTypeToken:
		if auth.Token == "" {
			return ferrors.ConfigError("deploy.auth.token required for token auth").Build()
		}
	case AuthTypeBasic:
		if auth.Username == "" || auth.Password == "" {
			return ferrors.ConfigError("deploy.auth.username and password required for basic auth").Build()
		}
	default:
		return ferrors.ConfigError("unsupported deploy.auth.type").WithContext("type", string(auth.Type)).Build()
	}
	return nil
}
