// Package watch re-runs a filter pass whenever the watched source file
// changes.
//
// Bursts of writes are debounced into one pass, and a remove/rename is
// treated as log rotation: the watcher waits for the file to reappear and
// then triggers a fresh pass.
package watch

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/logpare/logpare/internal/logger"
)

// DefaultDebounce is the quiet period after the last write before a pass
// runs.
const DefaultDebounce = 250 * time.Millisecond

// rotateTimeout bounds how long a rotated file may take to reappear.
const rotateTimeout = 10 * time.Second

// Options configures a Watcher.
type Options struct {
	// FilePath is the source file to watch.
	FilePath string

	// Debounce overrides DefaultDebounce when positive.
	Debounce time.Duration

	// OnChange runs one filter pass. An error stops the watcher.
	OnChange func() error
}

// Watcher triggers passes from file system events.
type Watcher struct {
	opts    Options
	watcher *fsnotify.Watcher
}

// New creates a Watcher with the given options.
func New(opts Options) *Watcher {
	if opts.Debounce <= 0 {
		opts.Debounce = DefaultDebounce
	}
	return &Watcher{opts: opts}
}

// Run watches until the context is cancelled or a pass fails.
func (w *Watcher) Run(ctx context.Context) error {
	if _, err := os.Stat(w.opts.FilePath); err != nil {
		return fmt.Errorf("cannot watch %s: %w", w.opts.FilePath, err)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("creating watcher: %w", err)
	}
	w.watcher = watcher
	defer watcher.Close()

	if err := watcher.Add(w.opts.FilePath); err != nil {
		return fmt.Errorf("watching %s: %w", w.opts.FilePath, err)
	}

	var timer *time.Timer
	var pending <-chan time.Time

	for {
		select {
		case <-ctx.Done():
			return nil

		case <-pending:
			pending = nil
			if err := w.opts.OnChange(); err != nil {
				return err
			}

		case event, ok := <-watcher.Events:
			if !ok {
				return fmt.Errorf("watcher closed unexpectedly")
			}

			switch {
			case event.Op&(fsnotify.Write|fsnotify.Create) != 0:
				if timer == nil {
					timer = time.NewTimer(w.opts.Debounce)
					pending = timer.C
				} else {
					timer.Reset(w.opts.Debounce)
					pending = timer.C
				}

			case event.Op&(fsnotify.Remove|fsnotify.Rename) != 0:
				if err := w.reattach(ctx); err != nil {
					return err
				}
				if ctx.Err() != nil {
					return nil
				}
				if err := w.opts.OnChange(); err != nil {
					return err
				}
			}

		case err, ok := <-watcher.Errors:
			if !ok {
				return fmt.Errorf("watcher error channel closed")
			}
			return fmt.Errorf("watcher error: %w", err)
		}
	}
}

// reattach waits for a rotated file to reappear and re-adds it to the
// watcher.
func (w *Watcher) reattach(ctx context.Context) error {
	logger.Warn("watched file rotated, waiting for it to reappear",
		"path", w.opts.FilePath)

	timeout := time.After(rotateTimeout)
	ticker := time.NewTicker(100 * time.Millisecond)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-timeout:
			return fmt.Errorf("timeout waiting for %s to reappear", w.opts.FilePath)
		case <-ticker.C:
			if _, err := os.Stat(w.opts.FilePath); err == nil {
				if err := w.watcher.Add(w.opts.FilePath); err != nil {
					return fmt.Errorf("re-watching %s: %w", w.opts.FilePath, err)
				}
				return nil
			}
		}
	}
}
