// Package watch reports changes to a graph file on disk.
package watch

import (
	"context"
	"fmt"
	"log"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DefaultDebounce coalesces the burst of events an editor save produces.
const DefaultDebounce = 100 * time.Millisecond

// Watcher sends one value on Changes for each settled burst of writes to a
// single file. The parent directory is watched so atomic rename-on-save
// keeps being observed.
type Watcher struct {
	path     string
	debounce time.Duration
	fw       *fsnotify.Watcher
	changes  chan string
}

// New starts watching path. Call Run to begin delivering events.
func New(path string, debounce time.Duration) (*Watcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("watch %s: %w", path, err)
	}
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("watch %s: %w", path, err)
	}
	if err := fw.Add(filepath.Dir(abs)); err != nil {
		_ = fw.Close()
		return nil, fmt.Errorf("watch %s: %w", path, err)
	}
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	return &Watcher{
		path:     abs,
		debounce: debounce,
		fw:       fw,
		changes:  make(chan string, 1),
	}, nil
}

// Changes delivers the watched path after each settled change. At most one
// notification is buffered; a slow reader sees the latest state once.
func (w *Watcher) Changes() <-chan string {
	return w.changes
}

// Run pumps events until ctx is done or the watcher fails, then closes the
// underlying watcher and the Changes channel.
func (w *Watcher) Run(ctx context.Context) error {
	defer close(w.changes)
	defer w.fw.Close()

	debounce := time.NewTimer(0)
	<-debounce.C
	pending := false

	for {
		select {
		case <-ctx.Done():
			debounce.Stop()
			return nil

		case event, ok := <-w.fw.Events:
			if !ok {
				return nil
			}
			if !w.relevant(event) {
				continue
			}
			pending = true
			debounce.Reset(w.debounce)

		case err, ok := <-w.fw.Errors:
			if !ok {
				return nil
			}
			log.Println("watch:", err)

		case <-debounce.C:
			if !pending {
				continue
			}
			pending = false
			select {
			case w.changes <- w.path:
			default:
			}
		}
	}
}

func (w *Watcher) relevant(e fsnotify.Event) bool {
	if filepath.Clean(e.Name) != w.path {
		return false
	}
	return e.Has(fsnotify.Write) || e.Has(fsnotify.Create) || e.Has(fsnotify.Rename)
}
