package prefabs

import (
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DefaultDebounce coalesces the burst of filesystem events editors fire on
// a single save.
const DefaultDebounce = 100 * time.Millisecond

// WatchEvent is one debounced edit to a prefab or behavior script.
type WatchEvent struct {
	Path   string
	Script bool
}

// Watcher reports prefab and script edits so the host can hot-reload specs
// mid-session. Only .yaml/.yml and .tengo files are reported; everything
// else under the watched directories is ignored.
type Watcher struct {
	fs       *fsnotify.Watcher
	debounce time.Duration
	lastSeen map[string]time.Time

	Events  chan WatchEvent
	Errors  chan error
	closeCh chan struct{}
	once    sync.Once
}

// NewWatcher watches dirs for spec and script edits. A debounce of zero
// means DefaultDebounce.
func NewWatcher(debounce time.Duration, dirs ...string) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	for _, dir := range dirs {
		if err := fw.Add(dir); err != nil {
			_ = fw.Close()
			return nil, err
		}
	}

	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	w := &Watcher{
		fs:       fw,
		debounce: debounce,
		lastSeen: make(map[string]time.Time),
		Events:   make(chan WatchEvent, 16),
		Errors:   make(chan error, 1),
		closeCh:  make(chan struct{}),
	}
	go w.run()
	return w, nil
}

func (w *Watcher) Close() error {
	var err error
	w.once.Do(func() {
		close(w.closeCh)
		err = w.fs.Close()
		close(w.Events)
		close(w.Errors)
	})
	return err
}

func (w *Watcher) run() {
	for {
		select {
		case event, ok := <-w.fs.Events:
			if !ok {
				return
			}
			if ev, ok := w.accept(event); ok {
				w.Events <- ev
			}
		case err, ok := <-w.fs.Errors:
			if !ok {
				return
			}
			w.Errors <- err
		case <-w.closeCh:
			return
		}
	}
}

// accept filters one raw fsnotify event down to a reportable edit.
func (w *Watcher) accept(event fsnotify.Event) (WatchEvent, bool) {
	if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename|fsnotify.Remove) == 0 {
		return WatchEvent{}, false
	}
	ext := strings.ToLower(filepath.Ext(event.Name))
	script := ext == ".tengo"
	if !script && ext != ".yaml" && ext != ".yml" {
		return WatchEvent{}, false
	}
	now := time.Now()
	if t, ok := w.lastSeen[event.Name]; ok && now.Sub(t) < w.debounce {
		return WatchEvent{}, false
	}
	w.lastSeen[event.Name] = now
	return WatchEvent{Path: event.Name, Script: script}, true
}
