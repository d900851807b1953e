// Package watch re-runs a count when files under the scan roots change.
package watch

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/nboyd-dev/tally/internal/langmap"
	"github.com/nboyd-dev/tally/internal/meter"
	"github.com/nboyd-dev/tally/internal/walker"
	"github.com/nboyd-dev/tally/pkg/config"
)

// rootWatch pairs a scan root with its exclusion rules.
type rootWatch struct {
	root string
	exc  *meter.Excluder
}

// Watcher monitors the scan roots and fires a callback after changes settle.
// Rapid bursts of events collapse into one callback per quiet period.
type Watcher struct {
	fs       *fsnotify.Watcher
	watches  []rootWatch
	cfg      *config.Config
	resolver *langmap.Resolver
	debounce time.Duration
	log      *slog.Logger
	callback func()

	mu      sync.Mutex
	dirty   bool
	dirtyAt time.Time
}

// New creates a watcher over the given roots. Directories the count itself
// would exclude, by name or by pattern, are not watched.
func New(roots []string, cfg *config.Config, debounce time.Duration, log *slog.Logger) (*Watcher, error) {
	fs, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if debounce <= 0 {
		debounce = 500 * time.Millisecond
	}
	if log == nil {
		log = slog.Default()
	}

	watches := make([]rootWatch, 0, len(roots))
	for _, root := range roots {
		watches = append(watches, rootWatch{
			root: root,
			exc:  meter.NewExcluder(root, cfg.Exclude),
		})
	}

	return &Watcher{
		fs:       fs,
		watches:  watches,
		cfg:      cfg,
		resolver: langmap.NewBuiltinResolver(),
		debounce: debounce,
		log:      log,
	}, nil
}

// SetCallback sets the function invoked after a change batch settles.
func (w *Watcher) SetCallback(cb func()) {
	w.callback = cb
}

// Start registers the watched directories and blocks processing events until
// the context is canceled.
func (w *Watcher) Start(ctx context.Context) error {
	for _, rw := range w.watches {
		if err := w.addTree(rw); err != nil {
			return err
		}
	}

	go w.flushLoop(ctx)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case event, ok := <-w.fs.Events:
			if !ok {
				return nil
			}
			w.handleEvent(event)

		case err, ok := <-w.fs.Errors:
			if !ok {
				return nil
			}
			w.log.Warn("watch error", "error", err)
		}
	}
}

// Stop closes the underlying filesystem watcher.
func (w *Watcher) Stop() error {
	return w.fs.Close()
}

// WatchedDirs returns the directories currently registered.
func (w *Watcher) WatchedDirs() []string {
	return w.fs.WatchList()
}

// addTree registers the root and every non-excluded directory below it.
func (w *Watcher) addTree(rw rootWatch) error {
	return walker.Walk(rw.root, func(ent walker.Entry) error {
		if !ent.IsDir {
			return nil
		}
		if rw.exc.ExcludedDir(ent.Path, ent.Name) {
			return walker.SkipDir
		}
		return w.fs.Add(ent.Path)
	}, walker.Options{Recurse: w.cfg.Scan.Recurse, Log: w.log})
}

// excludedDir applies the owning root's exclusion rules to a directory
// path seen in an event.
func (w *Watcher) excludedDir(path, name string) bool {
	for _, rw := range w.watches {
		if path == rw.root || strings.HasPrefix(path, rw.root+string(filepath.Separator)) {
			return rw.exc.ExcludedDir(path, name)
		}
	}
	return false
}

func (w *Watcher) handleEvent(event fsnotify.Event) {
	if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Remove|fsnotify.Rename) == 0 {
		return
	}

	// A created directory needs its own watch. Add failures are expected
	// when the path was removed again before we got here.
	if event.Op&fsnotify.Create != 0 {
		if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
			if !w.excludedDir(event.Name, info.Name()) {
				if err := w.fs.Add(event.Name); err != nil {
					w.log.Warn("cannot watch new directory", "path", event.Name, "error", err)
				}
			}
			return
		}
	}

	if _, ok := w.resolver.Resolve(filepath.Base(event.Name)); !ok {
		return
	}

	w.mu.Lock()
	w.dirty = true
	w.dirtyAt = time.Now()
	w.mu.Unlock()
}

// flushLoop fires the callback once per batch, after the debounce period of
// quiet following the last relevant event.
func (w *Watcher) flushLoop(ctx context.Context) {
	ticker := time.NewTicker(50 * time.Millisecond)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			w.mu.Lock()
			ready := w.dirty && time.Since(w.dirtyAt) >= w.debounce
			if ready {
				w.dirty = false
			}
			w.mu.Unlock()

			if ready && w.callback != nil {
				w.callback()
			}
		}
	}
}
