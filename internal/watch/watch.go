// Package watch reports changes to a single file. Editors often replace a
// file instead of writing it in place, so the parent directory is watched
// and events are filtered by name. Bursts of events are coalesced into one
// notification after a quiet period.
package watch

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/go-logr/logr"

	"github.com/oakwood-commons/jsonexplorer/pkg/logger"
)

// DefaultDebounce is the quiet period used when none is given.
const DefaultDebounce = 150 * time.Millisecond

// Watcher watches one file.
type Watcher struct {
	fs       *fsnotify.Watcher
	path     string
	debounce time.Duration
	changes  chan string
	done     chan struct{}
	lgr      logr.Logger
}

// New starts watching path until ctx is cancelled or Close is called.
func New(ctx context.Context, path string, debounce time.Duration) (*Watcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolving %s: %w", path, err)
	}
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("creating watcher: %w", err)
	}
	if err := fsw.Add(filepath.Dir(abs)); err != nil {
		_ = fsw.Close()
		return nil, fmt.Errorf("watching %s: %w", filepath.Dir(abs), err)
	}
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	w := &Watcher{
		fs:       fsw,
		path:     filepath.Clean(abs),
		debounce: debounce,
		changes:  make(chan string, 1),
		done:     make(chan struct{}),
		lgr:      logger.FromContext(ctx).WithName("watch"),
	}
	go w.run(ctx)
	return w, nil
}

// Path returns the absolute path being watched.
func (w *Watcher) Path() string { return w.path }

// Changes delivers the watched path once per burst of modifications. It is
// closed when the watcher stops.
func (w *Watcher) Changes() <-chan string { return w.changes }

// Close stops the watcher.
func (w *Watcher) Close() error {
	err := w.fs.Close()
	<-w.done
	return err
}

func (w *Watcher) run(ctx context.Context) {
	defer close(w.done)
	defer close(w.changes)

	var timer *time.Timer
	var fire <-chan time.Time
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case event, ok := <-w.fs.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != w.path {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			w.lgr.V(1).Info("file event", logger.PathKey, event.Name, "op", event.Op.String())
			if timer != nil {
				timer.Stop()
			}
			timer = time.NewTimer(w.debounce)
			fire = timer.C
		case <-fire:
			fire = nil
			select {
			case w.changes <- w.path:
			default:
				// a notification is already pending
			}
		case err, ok := <-w.fs.Errors:
			if !ok {
				return
			}
			w.lgr.Error(err, "watcher error", logger.PathKey, w.path)
		case <-ctx.Done():
			_ = w.fs.Close()
			return
		}
	}
}
