// Package watch turns filesystem notifications for the tailed file into
// wake-ups for the poll scheduler.
//
// The parent directory is watched rather than the file itself so that a file
// which is deleted and recreated (log rotation) keeps producing events.
// Notifications only shorten the wait until the next poll; the scheduler's
// timer keeps running, so a missed event costs at most one interval.
package watch

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"
	"github.com/sirupsen/logrus"

	"github.com/five82/tailview/internal/logx"
)

const relevantOps = fsnotify.Write | fsnotify.Create | fsnotify.Remove | fsnotify.Rename

// Watcher reports changes to a single file on a coalescing channel.
type Watcher struct {
	fsw  *fsnotify.Watcher
	wake chan struct{}
	log  *logrus.Entry

	mu     sync.Mutex
	target string
	dir    string

	closeOnce sync.Once
}

// New watches the directory containing path. Start must be called to begin
// delivering wake-ups.
func New(path string, log *logrus.Entry) (*Watcher, error) {
	if log == nil {
		log = logx.Discard()
	}
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}
	w := &Watcher{
		fsw:  fsw,
		wake: make(chan struct{}, 1),
		log:  log,
	}
	if err := w.SetPath(path); err != nil {
		_ = fsw.Close()
		return nil, err
	}
	return w, nil
}

// Wake delivers at most one pending notification at a time.
func (w *Watcher) Wake() <-chan struct{} {
	return w.wake
}

// SetPath moves the watch to another file.
func (w *Watcher) SetPath(path string) error {
	target, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("resolve watch path: %w", err)
	}
	dir := filepath.Dir(target)

	w.mu.Lock()
	defer w.mu.Unlock()

	if dir != w.dir {
		if err := w.fsw.Add(dir); err != nil {
			return fmt.Errorf("watch %s: %w", dir, err)
		}
		if w.dir != "" {
			_ = w.fsw.Remove(w.dir)
		}
		w.dir = dir
	}
	w.target = target
	return nil
}

// Start forwards events until ctx is cancelled or Close is called.
func (w *Watcher) Start(ctx context.Context) {
	go func() {
		for {
			select {
			case <-ctx.Done():
				return
			case event, ok := <-w.fsw.Events:
				if !ok {
					return
				}
				if w.matches(event) {
					w.notify()
				}
			case err, ok := <-w.fsw.Errors:
				if !ok {
					return
				}
				w.log.WithError(err).Warn("file watcher error")
			}
		}
	}()
}

func (w *Watcher) matches(event fsnotify.Event) bool {
	if event.Op&relevantOps == 0 {
		return false
	}
	name, err := filepath.Abs(event.Name)
	if err != nil {
		return false
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	return name == w.target
}

func (w *Watcher) notify() {
	select {
	case w.wake <- struct{}{}:
	default:
	}
}

// Close stops watching. It is safe to call more than once.
func (w *Watcher) Close() error {
	var err error
	w.closeOnce.Do(func() {
		err = w.fsw.Close()
	})
	return err
}
