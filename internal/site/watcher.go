package site

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/nfrund/petshop/internal/logging"
)

// DefaultDebounce is how long the watcher waits for a burst of file events to
// settle before rebuilding.
const DefaultDebounce = 200 * time.Millisecond

// Watcher rebuilds the site whenever a file under a directory changes.
// Rebuilds never overlap: they run on the watcher's own goroutine.
type Watcher struct {
	dir      string
	debounce time.Duration
	rebuild  func(ctx context.Context) error
	ignored  []string // absolute paths whose subtrees are never watched
}

// NewWatcher creates a Watcher for dir. A non-positive debounce selects
// DefaultDebounce.
func NewWatcher(dir string, debounce time.Duration, rebuild func(ctx context.Context) error) *Watcher {
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	return &Watcher{dir: dir, debounce: debounce, rebuild: rebuild}
}

// Ignore excludes dirs and everything below them, typically the build output.
func (w *Watcher) Ignore(dirs ...string) *Watcher {
	for _, d := range dirs {
		if abs, err := filepath.Abs(d); err == nil {
			w.ignored = append(w.ignored, abs)
		}
	}
	return w
}

// Run watches until ctx is cancelled. Rebuild failures are logged and do not
// stop the watcher.
func (w *Watcher) Run(ctx context.Context) error {
	logger := logging.FromContext(ctx)

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create file system watcher: %w", err)
	}
	defer watcher.Close()

	if err := w.addTree(watcher, w.dir); err != nil {
		return fmt.Errorf("failed to add directories to watcher: %w", err)
	}
	logger.Info("Watching for changes", "directory", w.dir, "debounce", w.debounce)

	timer := time.NewTimer(w.debounce)
	timer.Stop()
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			logger.Debug("File system watcher context cancelled")
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !relevant(event) || w.isIgnored(event.Name) {
				continue
			}
			if event.Has(fsnotify.Create) {
				if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
					if err := w.addTree(watcher, event.Name); err != nil {
						logger.Error("Failed to watch new directory", "path", event.Name, "error", err)
					}
				}
			}
			logger.Debug("Change detected", "path", event.Name, "op", event.Op.String())
			timer.Reset(w.debounce)

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Error("File system watcher error", "error", err)

		case <-timer.C:
			if err := w.rebuild(ctx); err != nil {
				logger.Error("Rebuild failed", "error", err)
			}
		}
	}
}

// relevant filters out chmod-only events and editor swap files.
func relevant(event fsnotify.Event) bool {
	if event.Op == fsnotify.Chmod {
		return false
	}
	base := filepath.Base(event.Name)
	return !strings.HasPrefix(base, ".") && !strings.HasSuffix(base, "~") && !strings.HasSuffix(base, ".tmp")
}

func (w *Watcher) addTree(watcher *fsnotify.Watcher, root string) error {
	return filepath.Walk(root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if !info.IsDir() {
			return nil
		}
		if w.isIgnored(path) {
			return filepath.SkipDir
		}
		return watcher.Add(path)
	})
}

func (w *Watcher) isIgnored(path string) bool {
	if len(w.ignored) == 0 {
		return false
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return false
	}
	for _, dir := range w.ignored {
		if abs == dir || strings.HasPrefix(abs, dir+string(filepath.Separator)) {
			return true
		}
	}
	return false
}
