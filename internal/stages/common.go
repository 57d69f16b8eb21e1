package stages

import (
	"os"

	"git.home.luguber.info/inful/mublog/internal/blog"
	ferrors "git.home.luguber.info/inful/mublog/internal/foundation/errors"
)

// noLifecycle provides empty Initialize and Finalize phases.
type noLifecycle struct{}

func (noLifecycle) Initialize(*blog.BuildContext) error { return nil }
func (noLifecycle) Finalize(*blog.BuildContext) error   { return nil }

// requireDir fails when dir is missing or not a directory.
func requireDir(dir, what string) error {
	info, err := os.Stat(dir)
	if err != nil {
		return ferrors.ValidationError(what+" directory could not be found or is inaccessible").
			WithCause(err).WithContext("path", dir).Build()
	}
	if !info.IsDir() {
		return ferrors.ValidationError(what+" path is not a directory").
			WithContext("path", dir).Build()
	}
	return nil
}
