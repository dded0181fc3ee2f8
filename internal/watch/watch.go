// Package watch re-runs a handler when files in a submission directory
// change, batching bursts of editor writes into one call.
package watch

import (
	"context"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DefaultDebounce is how long to wait for more changes before calling the
// handler.
const DefaultDebounce = 300 * time.Millisecond

// Options configures Watch.
type Options struct {
	// Debounce is the quiet period before the handler runs.
	Debounce time.Duration
	// IgnoreDirs are directory names never watched, in addition to hidden
	// directories and node_modules.
	IgnoreDirs []string
	// Extensions limits which file changes trigger the handler. Empty means
	// every file.
	Extensions []string
}

// Handler is called with the sorted, de-duplicated paths that changed.
type Handler func(ctx context.Context, changed []string) error

// Watch blocks until ctx is cancelled, calling handler after each debounced
// batch of changes under root. Calls are serial. Handler errors are logged
// and watching continues.
func Watch(ctx context.Context, root string, opts Options, handler Handler) error {
	if opts.Debounce <= 0 {
		opts.Debounce = DefaultDebounce
	}

	if info, err := os.Stat(root); err != nil {
		return fmt.Errorf("watch root: %w", err)
	} else if !info.IsDir() {
		return fmt.Errorf("watch root %s is not a directory", root)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("creating file watcher: %w", err)
	}
	defer watcher.Close() //nolint:errcheck

	if err := addRecursive(watcher, root, opts); err != nil {
		return fmt.Errorf("watching %s: %w", root, err)
	}
	slog.Debug("Watching for changes", "root", root, "debounce", opts.Debounce)

	pending := map[string]struct{}{}
	var timer *time.Timer
	var timerC <-chan time.Time

	for {
		select {
		case <-ctx.Done():
			if timer != nil {
				timer.Stop()
			}
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}

			// If new directory created, add it to watcher
			if event.Has(fsnotify.Create) {
				if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
					if !ignoredDir(filepath.Base(event.Name), opts.IgnoreDirs) {
						_ = addRecursive(watcher, event.Name, opts)
					}
					continue
				}
			}
			if !shouldHandle(event, opts) {
				continue
			}

			pending[event.Name] = struct{}{}
			if timer == nil {
				timer = time.NewTimer(opts.Debounce)
				timerC = timer.C
			} else {
				timer.Reset(opts.Debounce)
			}

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			slog.Warn("File watcher error", "error", err)

		case <-timerC:
			timer, timerC = nil, nil

			changed := make([]string, 0, len(pending))
			for p := range pending {
				changed = append(changed, p)
			}
			clear(pending)
			slices.Sort(changed)

			if err := handler(ctx, changed); err != nil {
				slog.Error("Re-grade failed", "error", err)
			}
		}
	}
}

// addRecursive adds a directory and all subdirectories to the watch list.
func addRecursive(w *fsnotify.Watcher, root string, opts Options) error {
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil // ignore errors, continue walking
		}
		if !d.IsDir() {
			return nil
		}
		if path != root && ignoredDir(d.Name(), opts.IgnoreDirs) {
			return filepath.SkipDir
		}
		return w.Add(path)
	})
}

func ignoredDir(name string, ignore []string) bool {
	if strings.HasPrefix(name, ".") || name == "node_modules" {
		return true
	}
	return slices.Contains(ignore, name)
}

func shouldHandle(event fsnotify.Event, opts Options) bool {
	if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) &&
		!event.Has(fsnotify.Remove) && !event.Has(fsnotify.Rename) {
		return false
	}
	if len(opts.Extensions) == 0 {
		return true
	}
	ext := strings.ToLower(filepath.Ext(event.Name))
	return slices.Contains(opts.Extensions, ext)
}
