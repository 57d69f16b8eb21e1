// Package deploy publishes the build output by committing it to a git
// repository and optionally pushing it to a remote.
package deploy

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/go-git/go-git/v5"
	gitconfig "github.com/go-git/go-git/v5/config"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/go-git/go-git/v5/plumbing/transport"

	"git.home.luguber.info/inful/mublog/internal/config"
	ferrors "git.home.luguber.info/inful/mublog/internal/foundation/errors"
	"git.home.luguber.info/inful/mublog/internal/logfields"
	"git.home.luguber.info/inful/mublog/internal/retry"
)

// RemoteName is the remote the output is pushed to.
const RemoteName = "origin"

// Request describes one publish.
type Request struct {
	// BuildDir holds the generated site.
	BuildDir string
	// BaseDir resolves a relative deploy directory; usually the blog directory.
	BaseDir string
	Config  *config.Config
}

// Result reports what a publish did.
type Result struct {
	Directory string
	// Commit is empty when nothing changed since the last publish.
	Commit string
	Pushed bool
}

// Changed reports whether a new commit was created.
func (r *Result) Changed() bool { return r.Commit != "" }

// Publisher mirrors the build output into the deploy repository.
type Publisher struct {
	logger *slog.Logger
	now    func() time.Time
}

// NewPublisher creates a publisher; a nil logger uses slog.Default.
func NewPublisher(logger *slog.Logger) *Publisher {
	if logger == nil {
		logger = slog.Default()
	}
	return &Publisher{logger: logger, now: time.Now}
}

// Publish replaces the worktree of the deploy repository with the build
// output, commits any change and pushes when a remote is configured.
func (p *Publisher) Publish(ctx context.Context, req Request) (*Result, error) {
	if req.Config == nil {
		return nil, ferrors.ConfigError("config required").Build()
	}
	dc := req.Config.Deploy
	if dc.Directory == "" {
		return nil, ferrors.ConfigError("deploy.directory is required").Build()
	}
	if info, err := os.Stat(req.BuildDir); err != nil || !info.IsDir() {
		return nil, ferrors.ValidationError("build output not found, run build first").
			WithContext("path", req.BuildDir).
			Build()
	}

	dir := dc.Directory
	if !filepath.IsAbs(dir) {
		dir = filepath.Join(req.BaseDir, dir)
	}
	result := &Result{Directory: dir}

	auth, err := authMethod(dc.Auth)
	if err != nil {
		return result, err
	}

	repo, err := openOrInit(dir, dc.Branch)
	if err != nil {
		return result, err
	}
	if dc.Remote != "" {
		if err := ensureRemote(repo, dc.Remote); err != nil {
			return result, err
		}
	}

	if err := clearWorktree(dir); err != nil {
		return result, ferrors.WrapError(err, ferrors.CategoryFileSystem, "failed to clear deploy directory").Build()
	}
	if err := copyDir(req.BuildDir, dir); err != nil {
		return result, ferrors.WrapError(err, ferrors.CategoryFileSystem, "failed to copy build output").Build()
	}

	hash, err := p.commit(repo, req.Config)
	if err != nil {
		return result, err
	}
	if !hash.IsZero() {
		result.Commit = hash.String()
		p.logger.Info("Committed build output", logfields.Commit(short(result.Commit)), logfields.Path(dir))
	} else {
		p.logger.Info("Build output unchanged", logfields.Path(dir))
	}

	if dc.Remote == "" {
		return result, nil
	}
	head, err := repo.Head()
	if err != nil {
		// Nothing was ever committed.
		return result, nil
	}
	policy := retry.FromConfig(dc.Retry)
	attempt := 0
	err = policy.Do(ctx, retryablePush, func() error {
		attempt++
		if attempt > 1 {
			p.logger.Warn("Retrying push", slog.Int("attempt", attempt), logfields.URL(dc.Remote))
		}
		return push(ctx, repo, head.Name(), dc.Branch, auth)
	})
	if err != nil {
		return result, err
	}
	result.Pushed = true
	p.logger.Info("Pushed build output", logfields.URL(dc.Remote), slog.String("branch", dc.Branch))
	return result, nil
}

func openOrInit(dir, branch string) (*git.Repository, error) {
	repo, err := git.PlainOpen(dir)
	if err == nil {
		return repo, nil
	}
	if !errors.Is(err, git.ErrRepositoryNotExists) {
		return nil, ferrors.GitError("failed to open deploy repository").WithCause(err).WithContext("path", dir).Build()
	}
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return nil, ferrors.WrapError(err, ferrors.CategoryFileSystem, "failed to create deploy directory").Build()
	}
	opts := &git.PlainInitOptions{}
	if branch != "" {
		opts.InitOptions.DefaultBranch = plumbing.NewBranchReferenceName(branch)
	}
	repo, err = git.PlainInitWithOptions(dir, opts)
	if err != nil {
		return nil, ferrors.GitError("failed to initialize deploy repository").WithCause(err).WithContext("path", dir).Build()
	}
	return repo, nil
}

func ensureRemote(repo *git.Repository, url string) error {
	_, err := repo.Remote(RemoteName)
	if err == nil {
		return nil
	}
	if !errors.Is(err, git.ErrRemoteNotFound) {
		return ferrors.GitError("failed to read remote").WithCause(err).Build()
	}
	_, err = repo.CreateRemote(&gitconfig.RemoteConfig{Name: RemoteName, URLs: []string{url}})
	if err != nil {
		return ferrors.GitError("failed to add remote").WithCause(err).WithContext("url", url).Build()
	}
	return nil
}

// commit stages every change and commits it. A zero hash means the worktree
// was already clean.
func (p *Publisher) commit(repo *git.Repository, cfg *config.Config) (plumbing.Hash, error) {
	wt, err := repo.Worktree()
	if err != nil {
		return plumbing.ZeroHash, ferrors.GitError("failed to open worktree").WithCause(err).Build()
	}
	if err := wt.AddWithOptions(&git.AddOptions{All: true}); err != nil {
		return plumbing.ZeroHash, ferrors.GitError("failed to stage build output").WithCause(err).Build()
	}
	status, err := wt.Status()
	if err != nil {
		return plumbing.ZeroHash, ferrors.GitError("failed to read worktree status").WithCause(err).Build()
	}
	if status.IsClean() {
		return plumbing.ZeroHash, nil
	}

	message := cfg.Deploy.Message
	if message == "" {
		message = "Publish blog"
	}
	hash, err := wt.Commit(message, &git.CommitOptions{
		Author: &object.Signature{
			Name:  cfg.General.BlogAuthor,
			Email: cfg.General.BlogEmail,
			When:  p.now(),
		},
	})
	if err != nil {
		return plumbing.ZeroHash, ferrors.GitError("failed to commit build output").WithCause(err).Build()
	}
	return hash, nil
}

func push(ctx context.Context, repo *git.Repository, local plumbing.ReferenceName, branch string, auth transport.AuthMethod) error {
	if branch == "" {
		branch = local.Short()
	}
	spec := gitconfig.RefSpec(fmt.Sprintf("%s:%s", local, plumbing.NewBranchReferenceName(branch)))
	err := repo.PushContext(ctx, &git.PushOptions{
		RemoteName: RemoteName,
		RefSpecs:   []gitconfig.RefSpec{spec},
		Auth:       auth,
	})
	if err != nil && !errors.Is(err, git.NoErrAlreadyUpToDate) {
		return ferrors.GitError("failed to push build output").
			WithCause(err).
			WithContext("branch", branch).
			Build()
	}
	return nil
}

// retryablePush reports whether a failed push may succeed when repeated.
// Authentication and missing-repository failures are permanent.
func retryablePush(err error) bool {
	switch {
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return false
	case errors.Is(err, transport.ErrAuthenticationRequired),
		errors.Is(err, transport.ErrAuthorizationFailed),
		errors.Is(err, transport.ErrRepositoryNotFound),
		errors.Is(err, git.ErrNonFastForwardUpdate):
		return false
	}
	return true
}

func short(hash string) string {
	if len(hash) > 8 {
		return hash[:8]
	}
	return hash
}
