// Package scaffold creates new blog directories and content files.
package scaffold

import (
	"embed"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"

	"git.home.luguber.info/inful/mublog/internal/blog"
	"git.home.luguber.info/inful/mublog/internal/config"
	ferrors "git.home.luguber.info/inful/mublog/internal/foundation/errors"
	"git.home.luguber.info/inful/mublog/internal/paths"
)

//go:embed all:resources
var resources embed.FS

const resourceRoot = "resources"

// ErrExistingBlog is returned when init runs inside a blog directory.
var ErrExistingBlog = ferrors.ValidationError("Can't initialize blog environment in existing blog environment").Build()

// Init creates the blog directory name below workingDir, fills it with the
// embedded starter content and writes cfg as its configuration file. A nil
// cfg writes config.Example.
func Init(workingDir, name string, cfg *config.Config) (paths.Paths, error) {
	if blog.IsBlogDirectory(workingDir) {
		return paths.Paths{}, ErrExistingBlog
	}
	if name == "" || name == "." || name == ".." || filepath.Base(name) != name {
		return paths.Paths{}, ferrors.ValidationError("invalid blog directory name").
			WithContext("name", name).
			Build()
	}
	if cfg == nil {
		cfg = config.Example()
	}

	p := paths.New(filepath.Join(workingDir, name))
	if err := os.Mkdir(p.Base, 0o750); err != nil {
		if os.IsExist(err) {
			return paths.Paths{}, ferrors.NewError(ferrors.CategoryAlreadyExists, "blog directory already exists").
				WithContext("path", p.Base).
				Build()
		}
		return paths.Paths{}, ferrors.WrapError(err, ferrors.CategoryFileSystem, "failed to create blog directory").Build()
	}

	dirs := []struct {
		resource string
		target   string
	}{
		{"assets", p.Assets},
		{"css", p.CSS},
		{"meta", p.Meta},
		{"posts", p.Posts},
		{"pages", p.Pages},
	}
	for _, d := range dirs {
		if err := os.Mkdir(d.target, 0o750); err != nil {
			return p, ferrors.WrapError(err, ferrors.CategoryFileSystem, "failed to create blog directory").
				WithContext("path", d.target).
				Build()
		}
		if err := writeResources(d.resource, d.target); err != nil {
			return p, fmt.Errorf("write %s resources: %w", d.resource, err)
		}
	}

	if err := config.Write(p.ConfigFile, cfg); err != nil {
		return p, err
	}
	return p, nil
}

// writeResources copies every file of the embedded directory dir into target.
func writeResources(dir, target string) error {
	root := path.Join(resourceRoot, dir)
	entries, err := fs.ReadDir(resources, root)
	if err != nil {
		return fmt.Errorf("locate embedded resource %s: %w", dir, err)
	}
	if len(entries) == 0 {
		return fmt.Errorf("no files found in embedded directory %s", dir)
	}
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		data, err := resources.ReadFile(path.Join(root, e.Name()))
		if err != nil {
			return err
		}
		dst := filepath.Join(target, e.Name())
		if err := os.WriteFile(dst, data, 0o644); err != nil {
			return ferrors.WrapError(err, ferrors.CategoryFileSystem, "failed to write resource").
				WithContext("path", dst).
				Build()
		}
	}
	return nil
}

// Resources lists the embedded starter files as slash separated paths
// relative to the blog directory.
func Resources() ([]string, error) {
	var out []string
	err := fs.WalkDir(resources, resourceRoot, func(p string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return err
		}
		rel, _ := filepath.Rel(resourceRoot, filepath.FromSlash(p))
		out = append(out, filepath.ToSlash(rel))
		return nil
	})
	return out, err
}
