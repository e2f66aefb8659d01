package filewatcher

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestFSNotifyWatcher_Creation(t *testing.T) {
	watcher, err := NewFSNotifyWatcher([]string{".csv"})
	if err != nil {
		t.Fatalf("failed to create watcher: %v", err)
	}
	defer watcher.Stop()
}

func TestFSNotifyWatcher_DefaultExtensions(t *testing.T) {
	watcher, _ := NewFSNotifyWatcher(nil)
	defer watcher.Stop()

	if len(watcher.extensions) != 1 || watcher.extensions[0] != ".csv" {
		t.Errorf("expected .csv default, got %v", watcher.extensions)
	}
}

func TestFSNotifyWatcher_EmitsCSVPaths(t *testing.T) {
	dir := t.TempDir()

	watcher, _ := NewFSNotifyWatcher(nil)
	defer watcher.Stop()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	paths, err := watcher.Watch(ctx, dir)
	if err != nil {
		t.Fatalf("watch failed: %v", err)
	}

	want := filepath.Join(dir, "people.csv")
	go func() {
		time.Sleep(100 * time.Millisecond)
		os.WriteFile(want, []byte("name,age\nAlice,30\n"), 0644)
	}()

	select {
	case got := <-paths:
		if got != want {
			t.Errorf("expected %s, got %s", want, got)
		}
	case <-ctx.Done():
		t.Error("timeout waiting for path")
	}
}

func TestFSNotifyWatcher_IgnoresOtherExtensions(t *testing.T) {
	dir := t.TempDir()

	watcher, _ := NewFSNotifyWatcher(nil)
	defer watcher.Stop()

	ctx, cancel := context.WithTimeout(context.Background(), 1*time.Second)
	defer cancel()

	paths, _ := watcher.Watch(ctx, dir)

	os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("hi"), 0644)

	select {
	case p := <-paths:
		t.Errorf("should not emit %s", p)
	case <-time.After(300 * time.Millisecond):
		// Expected - no event
	}
}

func TestFSNotifyWatcher_Stop(t *testing.T) {
	watcher, _ := NewFSNotifyWatcher(nil)
	if err := watcher.Stop(); err != nil {
		t.Errorf("stop failed: %v", err)
	}
}
