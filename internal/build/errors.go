package build

import ferrors "git.home.luguber.info/inful/mublog/internal/foundation/errors"

// Sentinel errors for requests that cannot start a build.
var (
	ErrNotBlogDirectory = ferrors.ValidationError("The current directory is not a mublog environment").Build()
	ErrNoDirectory      = ferrors.ValidationError("build directory required").Build()
)
