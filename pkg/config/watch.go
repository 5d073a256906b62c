package config

import (
	"fmt"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// debounce window for editors that emit bursts of events per save
const watchDebounce = 100 * time.Millisecond

// Watcher reports changes to YAML settings files so a running game can
// reload them. Paths of changed files arrive on Events; watch failures on
// Errors. Both channels close when the watcher is closed.
type Watcher struct {
	watcher *fsnotify.Watcher
	Events  chan string
	Errors  chan error
	closeCh chan struct{}
	once    sync.Once
}

// NewWatcher watches the given files or directories for settings changes.
func NewWatcher(paths ...string) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create watcher: %w", err)
	}
	for _, path := range paths {
		if err := fw.Add(path); err != nil {
			_ = fw.Close()
			return nil, fmt.Errorf("failed to watch %s: %w", path, err)
		}
	}

	w := &Watcher{
		watcher: fw,
		Events:  make(chan string, 16),
		Errors:  make(chan error, 1),
		closeCh: make(chan struct{}),
	}
	go w.run()
	return w, nil
}

// Close stops the watcher. The forwarding goroutine closes Events and Errors
// on its way out, so a reader draining them sees them close shortly after.
// Safe to call twice.
func (w *Watcher) Close() {
	w.once.Do(func() {
		close(w.closeCh)
		_ = w.watcher.Close()
	})
}

// run forwards filtered events until closed. It is the only sender on Events
// and Errors and the only goroutine that closes them.
func (w *Watcher) run() {
	defer close(w.Errors)
	defer close(w.Events)

	last := make(map[string]time.Time)
	for {
		select {
		case <-w.closeCh:
			return
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename|fsnotify.Remove) == 0 {
				continue
			}
			if !isSettingsFile(event.Name) {
				continue
			}
			now := time.Now()
			if prev, seen := last[event.Name]; seen && now.Sub(prev) < watchDebounce {
				continue
			}
			last[event.Name] = now
			select {
			case w.Events <- event.Name:
			case <-w.closeCh:
				return
			}
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			select {
			case w.Errors <- err:
			case <-w.closeCh:
				return
			default:
			}
		}
	}
}

func isSettingsFile(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	return ext == ".yaml" || ext == ".yml"
}
