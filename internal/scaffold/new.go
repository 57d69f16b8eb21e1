package scaffold

import (
	"fmt"
	"os"
	"path/filepath"

	"git.home.luguber.info/inful/mublog/internal/content"
	ferrors "git.home.luguber.info/inful/mublog/internal/foundation/errors"
	"git.home.luguber.info/inful/mublog/internal/paths"
)

// NewPost registers post against the blog's existing posts, so the usual
// title and filename rules apply, and writes it to the posts directory.
// Names of files already in the directory are skipped even when their
// titles derive different names. It returns the path of the created file.
func NewPost(p paths.Paths, post *content.Post) (string, error) {
	reg := content.NewRegistry()
	if err := reg.LoadPosts(p.Posts); err != nil {
		return "", err
	}
	if err := claimExisting(reg, p.Posts); err != nil {
		return "", err
	}
	if err := reg.RegisterPost(post); err != nil {
		return "", fmt.Errorf("create post: %w", err)
	}
	return createFile(filepath.Join(p.Posts, post.MDFilename), post.Serialize())
}

// NewPage is NewPost for pages; the index page rules are checked against
// the pages already on disk.
func NewPage(p paths.Paths, page *content.Page) (string, error) {
	reg := content.NewRegistry()
	if err := reg.LoadPages(p.Pages); err != nil {
		return "", err
	}
	if err := claimExisting(reg, p.Pages); err != nil {
		return "", err
	}
	if err := reg.RegisterPage(page); err != nil {
		return "", fmt.Errorf("create page: %w", err)
	}
	return createFile(filepath.Join(p.Pages, page.MDFilename), page.Serialize())
}

// claimExisting reserves the names of the files directly inside dir.
func claimExisting(reg *content.Registry, dir string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return ferrors.WrapError(err, ferrors.CategoryFileSystem, "failed to read directory").
			WithContext("path", dir).
			Build()
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, e.Name())
	}
	reg.Claim(names...)
	return nil
}

// createFile writes data to a file that must not exist yet. A partially
// written file is removed.
func createFile(path, data string) (string, error) {
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		if os.IsExist(err) {
			return "", ferrors.NewError(ferrors.CategoryAlreadyExists, "file already exists").
				WithContext("path", path).
				Build()
		}
		return "", ferrors.WrapError(err, ferrors.CategoryFileSystem, "failed to create file").
			WithContext("path", path).
			Build()
	}
	if _, err := f.WriteString(data); err != nil {
		_ = f.Close()
		_ = os.Remove(path)
		return "", ferrors.WrapError(err, ferrors.CategoryFileSystem, "failed to write file").
			WithContext("path", path).
			Build()
	}
	if err := f.Close(); err != nil {
		_ = os.Remove(path)
		return "", ferrors.WrapError(err, ferrors.CategoryFileSystem, "failed to write file").
			WithContext("path", path).
			Build()
	}
	return path, nil
}
