package prefabs

import (
	"testing"
	"time"

	"github.com/fsnotify/fsnotify"
)

func TestWatcherAcceptFiltersAndDebounces(t *testing.T) {
	w := &Watcher{debounce: DefaultDebounce, lastSeen: map[string]time.Time{}}

	tests := []struct {
		name   string
		event  fsnotify.Event
		want   bool
		script bool
	}{
		{"spec write", fsnotify.Event{Name: "prefabs/enemy.yaml", Op: fsnotify.Write}, true, false},
		{"yml alias", fsnotify.Event{Name: "prefabs/game.yml", Op: fsnotify.Create}, true, false},
		{"script write", fsnotify.Event{Name: "prefabs/scripts/berserker.tengo", Op: fsnotify.Write}, true, true},
		{"chmod ignored", fsnotify.Event{Name: "prefabs/enemy2.yaml", Op: fsnotify.Chmod}, false, false},
		{"other extension", fsnotify.Event{Name: "prefabs/notes.txt", Op: fsnotify.Write}, false, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ev, ok := w.accept(tt.event)
			if ok != tt.want {
				t.Fatalf("accept = %v, want %v", ok, tt.want)
			}
			if ok && ev.Script != tt.script {
				t.Fatalf("Script = %v, want %v", ev.Script, tt.script)
			}
		})
	}
}

func TestWatcherAcceptDropsRapidRepeats(t *testing.T) {
	w := &Watcher{debounce: DefaultDebounce, lastSeen: map[string]time.Time{}}
	event := fsnotify.Event{Name: "prefabs/enemy.yaml", Op: fsnotify.Write}

	if _, ok := w.accept(event); !ok {
		t.Fatalf("first event should pass")
	}
	if _, ok := w.accept(event); ok {
		t.Fatalf("repeat inside the debounce window should be dropped")
	}

	w.lastSeen[event.Name] = time.Now().Add(-2 * DefaultDebounce)
	if _, ok := w.accept(event); !ok {
		t.Fatalf("event after the debounce window should pass")
	}
}
