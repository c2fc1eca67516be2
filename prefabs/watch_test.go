package prefabs

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/fsnotify/fsnotify"
)

func TestRelevant(t *testing.T) {
	cases := []struct {
		name string
		ev   fsnotify.Event
		want bool
	}{
		{"yaml_write", fsnotify.Event{Name: "prefabs/abilities/a.yaml", Op: fsnotify.Write}, true},
		{"yml_create", fsnotify.Event{Name: "prefabs/entities/b.YML", Op: fsnotify.Create}, true},
		{"script_rename", fsnotify.Event{Name: "prefabs/scripts/c.tengo", Op: fsnotify.Rename}, true},
		{"chmod_only", fsnotify.Event{Name: "prefabs/abilities/a.yaml", Op: fsnotify.Chmod}, false},
		{"swap_file", fsnotify.Event{Name: "prefabs/abilities/.a.yaml.swp", Op: fsnotify.Write}, false},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := relevant(c.ev); got != c.want {
				t.Fatalf("relevant(%v) = %v, want %v", c.ev, got, c.want)
			}
		})
	}
}

func TestWatcherReportsWrites(t *testing.T) {
	dir := t.TempDir()
	w, err := NewWatcher(dir)
	if err != nil {
		t.Fatalf("NewWatcher: %v", err)
	}
	defer w.Close()

	path := filepath.Join(dir, "sprint.yaml")
	if err := os.WriteFile(path, []byte("key: sprint\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	select {
	case name := <-w.Events:
		if filepath.Base(name) != "sprint.yaml" {
			t.Fatalf("event for %q", name)
		}
	case err := <-w.Errors:
		t.Fatalf("watch error: %v", err)
	case <-time.After(2 * time.Second):
		t.Fatalf("no event within 2s")
	}

	if err := w.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("second Close: %v", err)
	}
	var nilWatcher *Watcher
	if nilWatcher.Drain() != nil || nilWatcher.Close() != nil {
		t.Fatalf("nil watcher not inert")
	}
}
