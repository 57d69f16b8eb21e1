package content

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	ferrors "git.home.luguber.info/inful/mublog/internal/foundation/errors"
	"git.home.luguber.info/inful/mublog/internal/paths"
)

// Initialize loads every collection from the blog directory.
func (r *Registry) Initialize(p paths.Paths) error {
	steps := []struct {
		dir  string
		load func(string) error
	}{
		{p.CSS, r.LoadStylesheets},
		{p.Assets, r.LoadAssets},
		{p.Meta, r.LoadMetaFiles},
		{p.Posts, r.LoadPosts},
		{p.Pages, r.LoadPages},
	}
	for _, s := range steps {
		if err := s.load(s.dir); err != nil {
			return err
		}
	}
	return nil
}

// LoadPosts parses and registers every .md file under dir.
func (r *Registry) LoadPosts(dir string) error {
	err := walkFiles(dir, ".md", func(_, _ string, data []byte) error {
		post, err := ParsePost(string(data))
		if err != nil {
			return err
		}
		return r.RegisterPost(post)
	})
	if err != nil {
		return fmt.Errorf("load posts from disk: %w", err)
	}
	return nil
}

// LoadPages parses and registers every .md file under dir.
func (r *Registry) LoadPages(dir string) error {
	err := walkFiles(dir, ".md", func(_, _ string, data []byte) error {
		page, err := ParsePage(string(data))
		if err != nil {
			return err
		}
		return r.RegisterPage(page)
	})
	if err != nil {
		return fmt.Errorf("load pages from disk: %w", err)
	}
	return nil
}

// LoadStylesheets registers every .css file under dir.
func (r *Registry) LoadStylesheets(dir string) error {
	err := walkFiles(dir, ".css", func(_, rel string, data []byte) error {
		return r.RegisterStylesheet(&Stylesheet{Filename: rel, Content: data})
	})
	if err != nil {
		return fmt.Errorf("load stylesheets from disk: %w", err)
	}
	return nil
}

// LoadAssets registers every file under dir.
func (r *Registry) LoadAssets(dir string) error {
	err := walkFiles(dir, "", func(_, rel string, data []byte) error {
		return r.RegisterAsset(&Asset{Filename: rel, Content: data})
	})
	if err != nil {
		return fmt.Errorf("load assets from disk: %w", err)
	}
	return nil
}

// LoadMetaFiles registers every file under dir.
func (r *Registry) LoadMetaFiles(dir string) error {
	err := walkFiles(dir, "", func(_, rel string, data []byte) error {
		return r.RegisterMetaFile(&Asset{Filename: rel, Content: data})
	})
	if err != nil {
		return fmt.Errorf("load meta files from disk: %w", err)
	}
	return nil
}

// walkFiles visits regular files under dir in lexical order. rel is the
// slash-separated path relative to dir. An empty ext matches every file.
func walkFiles(dir, ext string, visit func(path, rel string, data []byte) error) error {
	info, err := os.Stat(dir)
	if err != nil {
		return ferrors.WrapError(err, ferrors.CategoryFileSystem, "stat content directory").
			WithContext("path", dir).Build()
	}
	if !info.IsDir() {
		return ferrors.FileSystemError("content path is not a directory").WithContext("path", dir).Build()
	}

	return filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !d.Type().IsRegular() {
			return nil
		}
		if ext != "" && !strings.EqualFold(filepath.Ext(path), ext) {
			return nil
		}
		rel, err := filepath.Rel(dir, path)
		if err != nil {
			return err
		}
		data, err := os.ReadFile(path)
		if err != nil {
			return ferrors.WrapError(err, ferrors.CategoryFileSystem, "read content file").
				WithContext("path", path).Build()
		}
		if err := visit(path, filepath.ToSlash(rel), data); err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}
		return nil
	})
}
