// Package watcher watches the incident store files and triggers an
// index rebuild when they change outside the process, for example when
// rows are appended to the CSV files by hand or by another tool.
package watcher

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/crestline-labs/advisor-cli/internal/logger"
)

// defaultDebounce batches rapid successive writes into one rebuild.
const defaultDebounce = 2 * time.Second

// RebuildFunc is called after store changes settle.
type RebuildFunc func(ctx context.Context) error

// Watcher triggers rebuilds when watched store paths change.
type Watcher struct {
	paths    []string
	debounce time.Duration
	rebuild  RebuildFunc

	fs     *fsnotify.Watcher
	cancel context.CancelFunc
	wg     sync.WaitGroup

	mu      sync.Mutex
	started bool
}

// New creates a watcher for the given store paths. A zero debounce uses
// the default.
func New(paths []string, debounce time.Duration, rebuild RebuildFunc) *Watcher {
	if debounce <= 0 {
		debounce = defaultDebounce
	}
	return &Watcher{
		paths:    paths,
		debounce: debounce,
		rebuild:  rebuild,
	}
}

// Start begins watching. It returns once the watch is established; the
// event loop runs in the background until Stop is called.
func (w *Watcher) Start(ctx context.Context) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.started {
		return nil
	}

	fs, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("creating watcher: %w", err)
	}

	for _, path := range w.paths {
		if err := fs.Add(path); err != nil {
			fs.Close() //nolint:errcheck
			return fmt.Errorf("watching %s: %w", path, err)
		}
	}

	loopCtx, cancel := context.WithCancel(ctx)
	w.fs = fs
	w.cancel = cancel
	w.started = true

	w.wg.Add(1)
	go w.loop(loopCtx)

	logger.Debug("Watching %d store path(s) for changes", len(w.paths))
	return nil
}

// Stop stops watching and waits for the event loop to exit.
func (w *Watcher) Stop() error {
	w.mu.Lock()
	if !w.started {
		w.mu.Unlock()
		return nil
	}
	w.cancel()
	err := w.fs.Close()
	w.started = false
	w.mu.Unlock()

	w.wg.Wait()
	return err
}

// loop consumes filesystem events, debouncing bursts into one rebuild.
func (w *Watcher) loop(ctx context.Context) {
	defer w.wg.Done()

	var timer *time.Timer
	var timerC <-chan time.Time

	for {
		select {
		case <-ctx.Done():
			return

		case event, ok := <-w.fs.Events:
			if !ok {
				return
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}
			logger.Debug("Store changed: %s", event.Name)
			if timer == nil {
				timer = time.NewTimer(w.debounce)
				timerC = timer.C
			} else {
				timer.Reset(w.debounce)
			}

		case err, ok := <-w.fs.Errors:
			if !ok {
				return
			}
			logger.Warn("Watcher error: %v", err)

		case <-timerC:
			timer = nil
			timerC = nil
			if err := w.rebuild(ctx); err != nil {
				logger.Warn("Rebuild after store change failed: %v", err)
				continue
			}
			logger.Debug("Index rebuilt after store change")
		}
	}
}
