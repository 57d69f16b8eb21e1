package preview

import (
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/fsnotify/fsnotify"

	"git.home.luguber.info/inful/mublog/internal/logfields"
	"git.home.luguber.info/inful/mublog/internal/paths"
)

// newWatcher watches the blog root and every source directory below it.
// The build directory is never added.
func newWatcher(p paths.Paths, logger *slog.Logger) (*fsnotify.Watcher, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := w.Add(p.Base); err != nil {
		_ = w.Close()
		return nil, err
	}
	for _, dir := range p.SourceDirs() {
		addDirsRecursive(w, dir, logger)
	}
	return w, nil
}

func addDirsRecursive(w *fsnotify.Watcher, root string, logger *slog.Logger) {
	_ = filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if d.IsDir() {
			if err := w.Add(path); err != nil {
				logger.Warn("watch add failed", logfields.Path(path), logfields.Error(err))
			}
		}
		return nil
	})
}

// shouldIgnoreEvent returns true for editor and OS artifacts.
func shouldIgnoreEvent(path string) bool {
	base := filepath.Base(path)

	if strings.HasPrefix(base, ".") {
		return true
	}
	if strings.HasSuffix(base, "~") ||
		strings.HasSuffix(base, ".swp") ||
		strings.HasSuffix(base, ".swx") ||
		strings.HasPrefix(base, "#") && strings.HasSuffix(base, "#") {
		return true
	}
	return base == "Thumbs.db"
}

// isRelevant reports whether a change to path can affect the generated site:
// the config file or anything inside a source directory.
func isRelevant(p paths.Paths, path string) bool {
	if within(p.Build, path) {
		return false
	}
	if filepath.Clean(path) == filepath.Clean(p.ConfigFile) {
		return true
	}
	for _, dir := range p.SourceDirs() {
		if within(dir, path) {
			return true
		}
	}
	return false
}

func within(dir, path string) bool {
	rel, err := filepath.Rel(dir, path)
	if err != nil {
		return false
	}
	return rel == "." || (rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator)))
}

// handleFileEvent filters ev and reports whether it should trigger a rebuild.
// New source directories are added to the watch list.
func handleFileEvent(w *fsnotify.Watcher, p paths.Paths, ev fsnotify.Event, logger *slog.Logger) bool {
	if ev.Op == fsnotify.Chmod || shouldIgnoreEvent(ev.Name) || !isRelevant(p, ev.Name) {
		return false
	}
	if ev.Op.Has(fsnotify.Create) {
		if fi, err := os.Stat(ev.Name); err == nil && fi.IsDir() {
			addDirsRecursive(w, ev.Name, logger)
		}
	}
	logger.Debug("File change detected", logfields.Path(ev.Name), slog.String("op", ev.Op.String()))
	return true
}
