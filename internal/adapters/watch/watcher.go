// Package watch triggers standings reloads when the results file
// changes on disk.
package watch

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/okian/chalk/pkg/logger"
	"github.com/okian/chalk/pkg/metrics"
)

// Default watcher configuration constants.
const (
	defaultDebounce = 500 * time.Millisecond
	defaultTick     = 100 * time.Millisecond
)

// Reloader receives settled file changes.
type Reloader interface {
	// Reload re-ingests the results source and rebuilds standings.
	Reload(ctx context.Context) error
}

// Watcher monitors the results file and calls the Reloader once a
// burst of filesystem events has settled. It watches the file's parent
// directory, filtered to the file name, so editors that replace the
// file via rename keep triggering.
type Watcher struct {
	path     string
	dir      string
	base     string
	reloader Reloader
	fw       *fsnotify.Watcher

	// debounce: the tick loop fires a reload once the newest event for
	// the file is at least debounce old.
	debounce time.Duration
	tick     time.Duration

	mu      sync.Mutex
	pending time.Time // zero when no event is waiting
	running bool

	stopCh chan struct{}
	doneCh chan struct{}

	logger logger.Logger
}

// New creates a watcher for path that notifies reloader.
func New(path string, reloader Reloader, opts ...Option) (*Watcher, error) {
	if path == "" {
		return nil, ErrEmptyPath
	}
	if reloader == nil {
		return nil, ErrNilReloader
	}
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("creating file watcher: %w", err)
	}

	clean := filepath.Clean(path)
	w := &Watcher{
		path:     clean,
		dir:      filepath.Dir(clean),
		base:     filepath.Base(clean),
		reloader: reloader,
		fw:       fw,
		debounce: defaultDebounce,
		tick:     defaultTick,
		stopCh:   make(chan struct{}),
		doneCh:   make(chan struct{}),
		logger:   logger.Get().Named("watch"),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w, nil
}

// Start begins watching. Non-blocking; the event loop runs in its own
// goroutine until Stop or ctx cancellation.
func (w *Watcher) Start(ctx context.Context) error {
	w.mu.Lock()
	if w.running {
		w.mu.Unlock()
		return nil
	}
	w.running = true
	w.mu.Unlock()

	if err := w.fw.Add(w.dir); err != nil {
		return fmt.Errorf("watching %s: %w", w.dir, err)
	}
	w.logger.Info(ctx, "watching results file",
		logger.String("path", w.path),
		logger.Duration("debounce", w.debounce),
	)

	go w.run(ctx)
	return nil
}

// Stop stops the watcher and waits for the event loop to exit.
func (w *Watcher) Stop() {
	w.mu.Lock()
	if !w.running {
		w.mu.Unlock()
		return
	}
	w.running = false
	w.mu.Unlock()

	close(w.stopCh)
	<-w.doneCh

	if err := w.fw.Close(); err != nil {
		w.logger.Error(context.Background(), "closing file watcher", logger.Error(err))
	}
}

// IsWatching reports whether the event loop is running.
func (w *Watcher) IsWatching() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.running
}

func (w *Watcher) run(ctx context.Context) {
	defer close(w.doneCh)

	ticker := time.NewTicker(w.tick)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-w.stopCh:
			return

		case event, ok := <-w.fw.Events:
			if !ok {
				return
			}
			w.handleEvent(ctx, event)

		case err, ok := <-w.fw.Errors:
			if !ok {
				return
			}
			metrics.RecordErrorByComponent("watch", "fsnotify")
			w.logger.Error(ctx, "file watcher error", logger.Error(err))

		case <-ticker.C:
			w.fireSettled(ctx)
		}
	}
}

// handleEvent records a relevant event for debounced processing.
func (w *Watcher) handleEvent(ctx context.Context, event fsnotify.Event) {
	if filepath.Base(event.Name) != w.base {
		return
	}
	if event.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Remove|fsnotify.Rename) == 0 {
		return
	}

	metrics.RecordWatchEvent()
	w.logger.Debug(ctx, "results file event",
		logger.String("op", event.Op.String()),
		logger.String("path", event.Name),
	)

	w.mu.Lock()
	w.pending = time.Now()
	w.mu.Unlock()
}

// fireSettled reloads once the newest event has aged past the
// debounce window.
func (w *Watcher) fireSettled(ctx context.Context) {
	w.mu.Lock()
	if w.pending.IsZero() || time.Since(w.pending) < w.debounce {
		w.mu.Unlock()
		return
	}
	w.pending = time.Time{}
	w.mu.Unlock()

	if err := w.reloader.Reload(ctx); err != nil {
		// The previous standings stay published; nothing to roll back.
		w.logger.Error(ctx, "reload after file change failed", logger.Error(err))
		return
	}
	w.logger.Info(ctx, "standings reloaded after file change", logger.String("path", w.path))
}
