// Package watch plays clips as they appear in the clip directory.
package watch

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/jmylchreest/cliplay/internal/library"
	"github.com/jmylchreest/cliplay/internal/model"
)

// Player plays a single clip, blocking until it finishes.
type Player interface {
	PlayClip(ctx context.Context, clip model.Clip) error
}

// Options configures a Watcher.
type Options struct {
	// Settle is how long a file must go without write events before it is
	// considered complete and played.
	Settle time.Duration
	Logger *slog.Logger
}

// Watcher watches a directory and plays each newly created clip once.
// Clips are played one at a time in path order; events that arrive during
// playback wait in the pending set.
type Watcher struct {
	dir        string
	extensions library.Extensions
	player     Player
	settle     time.Duration
	logger     *slog.Logger

	// Last event time per path not yet played
	pending map[string]time.Time
	// Paths already played; cleared when the file is removed
	played map[string]bool
}

// New creates a watcher for dir.
func New(dir string, extensions library.Extensions, player Player, opts Options) *Watcher {
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	if len(extensions) == 0 {
		extensions = library.NewExtensions(library.DefaultExtensions...)
	}

	return &Watcher{
		dir:        dir,
		extensions: extensions,
		player:     player,
		settle:     opts.Settle,
		logger:     opts.Logger,
		pending:    make(map[string]time.Time),
		played:     make(map[string]bool),
	}
}

// Run watches until ctx is cancelled. Playback errors are logged and
// never stop the watcher.
func (w *Watcher) Run(ctx context.Context) error {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create file watcher: %w", err)
	}
	defer func() { _ = fw.Close() }()

	if err := fw.Add(w.dir); err != nil {
		return fmt.Errorf("failed to watch %s: %w", w.dir, err)
	}

	tick := w.settle / 4
	if tick < 10*time.Millisecond {
		tick = 10 * time.Millisecond
	}
	ticker := time.NewTicker(tick)
	defer ticker.Stop()

	w.logger.Info("watching for new clips", "dir", w.dir, "settle", w.settle)

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-fw.Events:
			if !ok {
				return nil
			}
			w.handleEvent(event, time.Now())

		case err, ok := <-fw.Errors:
			if !ok {
				return nil
			}
			w.logger.Warn("file watcher error", "error", err)

		case now := <-ticker.C:
			for _, path := range w.ready(now) {
				if err := w.player.PlayClip(ctx, model.NewClip(path, time.Time{})); err != nil {
					if ctx.Err() != nil {
						return nil
					}
					w.logger.Warn("failed to play new clip", "path", path, "error", err)
				}
			}
		}
	}
}

// handleEvent updates the pending set for one filesystem event.
func (w *Watcher) handleEvent(event fsnotify.Event, now time.Time) {
	if !w.extensions.Matches(event.Name) {
		return
	}

	switch {
	case event.Has(fsnotify.Remove) || event.Has(fsnotify.Rename):
		delete(w.pending, event.Name)
		delete(w.played, event.Name)

	case event.Has(fsnotify.Create):
		// A recreated file is a new clip even if the name was played before
		delete(w.played, event.Name)
		w.pending[event.Name] = now
		w.logger.Debug("new clip detected", "path", event.Name)

	case event.Has(fsnotify.Write):
		if w.played[event.Name] {
			return
		}
		w.pending[event.Name] = now
	}
}

// ready removes and returns the pending paths that have been quiet for at
// least the settle period, sorted by path.
func (w *Watcher) ready(now time.Time) []string {
	var paths []string
	for path, last := range w.pending {
		if now.Sub(last) >= w.settle {
			paths = append(paths, path)
		}
	}
	slices.Sort(paths)

	for _, path := range paths {
		delete(w.pending, path)
		w.played[path] = true
	}
	return paths
}
