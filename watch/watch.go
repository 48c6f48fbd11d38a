// Package watch reruns a callback when any of a set of input files changes.
package watch

import (
	"context"
	"path/filepath"
	"time"

	"github.com/bep/debounce"
	"github.com/edaniels/golog"
	"github.com/fsnotify/fsnotify"
	"github.com/pkg/errors"
)

// DefaultDebounce is how long a burst of events must be quiet before the
// callback runs.
const DefaultDebounce = 500 * time.Millisecond

// A Watcher watches Paths and calls OnChange once per burst of changes.
// Callbacks never overlap; a callback error is logged and watching goes on.
type Watcher struct {
	Paths    []string
	Debounce time.Duration
	Logger   golog.Logger
	OnChange func(ctx context.Context, changed []string) error
}

// Run blocks until ctx is done. Directories holding the files are watched
// rather than the files themselves so editors that replace files on save
// are still seen.
func (w *Watcher) Run(ctx context.Context) error {
	logger := w.Logger
	if logger == nil {
		logger = golog.Global()
	}
	wait := w.Debounce
	if wait <= 0 {
		wait = DefaultDebounce
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return errors.Wrap(err, "starting file watcher")
	}
	defer fsw.Close()

	targets := map[string]bool{}
	dirs := map[string]bool{}
	for _, p := range w.Paths {
		abs, err := filepath.Abs(p)
		if err != nil {
			return errors.Wrapf(err, "resolving %s", p)
		}
		targets[abs] = true
		dir := filepath.Dir(abs)
		if dirs[dir] {
			continue
		}
		if err := fsw.Add(dir); err != nil {
			return errors.Wrapf(err, "watching %s", dir)
		}
		dirs[dir] = true
	}
	logger.Infow("watching for changes", "paths", w.Paths, "debounce", wait)

	debounced := debounce.New(wait)
	fire := make(chan struct{}, 1)
	trigger := func() {
		select {
		case fire <- struct{}{}:
		default:
		}
	}

	pending := map[string]bool{}
	for {
		select {
		case <-ctx.Done():
			logger.Debug("file watcher stopped")
			return nil
		case ev, ok := <-fsw.Events:
			if !ok {
				return errors.New("file watcher closed")
			}
			if !targets[filepath.Clean(ev.Name)] || ev.Has(fsnotify.Chmod) {
				continue
			}
			logger.Debugw("file changed", "path", ev.Name, "op", ev.Op.String())
			pending[ev.Name] = true
			debounced(trigger)
		case err, ok := <-fsw.Errors:
			if !ok {
				return errors.New("file watcher closed")
			}
			logger.Warnw("file watcher error", "error", err)
		case <-fire:
			changed := make([]string, 0, len(pending))
			for p := range pending {
				changed = append(changed, p)
			}
			pending = map[string]bool{}
			if err := w.OnChange(ctx, changed); err != nil {
				logger.Errorw("regeneration failed", "error", err)
			}
		}
	}
}
