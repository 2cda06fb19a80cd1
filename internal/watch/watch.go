// Package watch re-runs a callback whenever a file changes.
package watch

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/gaurav-prasanna/briefpipe/internal/logger"
)

// PollInterval is used when fsnotify is unavailable.
var PollInterval = 250 * time.Millisecond

// debounce coalesces the burst of events editors emit on save.
const debounce = 50 * time.Millisecond

// File calls fn each time path is written or recreated, until ctx is done.
// The caller renders the initial state itself; File only reacts to changes.
// An error from fn stops the watch. Watcher errors are logged to log, which
// may be nil. Uses fsnotify with polling fallback.
func File(ctx context.Context, path string, log *logger.Logger, fn func() error) error {
	if _, err := os.Stat(path); err != nil {
		return fmt.Errorf("watching %s: %w", path, err)
	}
	if log == nil {
		log = logger.Discard()
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		log.WatchError(path, fmt.Errorf("falling back to polling: %w", err))
		return poll(ctx, path, fn)
	}
	defer watcher.Close()

	// Watch the directory so atomic renames are seen
	if err := watcher.Add(filepath.Dir(path)); err != nil {
		log.WatchError(path, fmt.Errorf("falling back to polling: %w", err))
		return poll(ctx, path, fn)
	}

	return withWatcher(ctx, path, watcher, log, fn)
}

func withWatcher(ctx context.Context, path string, watcher *fsnotify.Watcher, log *logger.Logger, fn func() error) error {
	baseName := filepath.Base(path)

	var pending <-chan time.Time
	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Base(event.Name) != baseName {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}
			pending = time.After(debounce)

		case <-pending:
			pending = nil
			if err := fn(); err != nil {
				return err
			}

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			// usually recoverable
			log.WatchError(path, err)
		}
	}
}

// poll compares modification time and size on each tick.
func poll(ctx context.Context, path string, fn func() error) error {
	ticker := time.NewTicker(PollInterval)
	defer ticker.Stop()

	last := stamp(path)
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			cur := stamp(path)
			if cur == last || cur == (fileStamp{}) {
				continue
			}
			last = cur
			if err := fn(); err != nil {
				return err
			}
		}
	}
}

type fileStamp struct {
	modTime time.Time
	size    int64
}

func stamp(path string) fileStamp {
	info, err := os.Stat(path)
	if err != nil {
		return fileStamp{}
	}
	return fileStamp{modTime: info.ModTime(), size: info.Size()}
}
