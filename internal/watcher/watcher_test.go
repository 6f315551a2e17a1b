package watcher

import (
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"
)

func TestDirWatcherStopIsIdempotent(t *testing.T) {
	t.Parallel()

	dw, err := NewDirWatcher(t.TempDir(), WatcherConfig{})
	if err != nil {
		t.Fatalf("new watcher: %v", err)
	}

	dw.Stop()
	dw.Stop()
}

func TestDirWatcherCreatesMissingDir(t *testing.T) {
	t.Parallel()

	dir := filepath.Join(t.TempDir(), "match_data")
	dw, err := NewDirWatcher(dir, WatcherConfig{})
	if err != nil {
		t.Fatalf("new watcher: %v", err)
	}
	defer dw.Stop()

	if err := dw.Start(); err != nil {
		t.Fatalf("start watcher: %v", err)
	}
	if info, err := os.Stat(dir); err != nil || !info.IsDir() {
		t.Fatalf("stat %s: %v", dir, err)
	}
}

func TestDirWatcherReportsDocumentWrite(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	changed := make(chan struct{}, 1)
	dw, err := NewDirWatcher(dir, WatcherConfig{
		Debounce: 20 * time.Millisecond,
		OnChange: func() {
			select {
			case changed <- struct{}{}:
			default:
			}
		},
	})
	if err != nil {
		t.Fatalf("new watcher: %v", err)
	}
	defer dw.Stop()

	if err := dw.Start(); err != nil {
		t.Fatalf("start watcher: %v", err)
	}

	if err := os.WriteFile(filepath.Join(dir, "20240501_東体育館_A高校.json"), []byte("{}"), 0o600); err != nil {
		t.Fatalf("write document: %v", err)
	}

	select {
	case <-changed:
	case <-time.After(2 * time.Second):
		t.Fatalf("timed out waiting for change notification")
	}
}

func TestDirWatcherDebouncesBurst(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	var calls atomic.Int32
	dw, err := NewDirWatcher(dir, WatcherConfig{
		Debounce: 200 * time.Millisecond,
		OnChange: func() { calls.Add(1) },
	})
	if err != nil {
		t.Fatalf("new watcher: %v", err)
	}
	defer dw.Stop()

	if err := dw.Start(); err != nil {
		t.Fatalf("start watcher: %v", err)
	}

	for i := 0; i < 5; i++ {
		if err := os.WriteFile(filepath.Join(dir, "m.json"), []byte{byte('0' + i)}, 0o600); err != nil {
			t.Fatalf("write %d: %v", i, err)
		}
	}

	time.Sleep(time.Second)
	if got := calls.Load(); got != 1 {
		t.Fatalf("OnChange calls = %d, want 1", got)
	}
}

func TestDirWatcherIgnoresForeignFiles(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	changed := make(chan struct{}, 1)
	dw, err := NewDirWatcher(dir, WatcherConfig{
		Debounce: 20 * time.Millisecond,
		OnChange: func() {
			select {
			case changed <- struct{}{}:
			default:
			}
		},
	})
	if err != nil {
		t.Fatalf("new watcher: %v", err)
	}
	defer dw.Stop()

	if err := dw.Start(); err != nil {
		t.Fatalf("start watcher: %v", err)
	}

	for _, name := range []string{"notes.txt", ".match-1.tmp"} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte("ignore me"), 0o600); err != nil {
			t.Fatalf("write %s: %v", name, err)
		}
	}

	select {
	case <-changed:
		t.Fatalf("unexpected change notification")
	case <-time.After(500 * time.Millisecond):
	}
}

func TestIsMatchDocument(t *testing.T) {
	t.Parallel()

	tests := map[string]bool{
		"/data/20240501_a_b.json": true,
		"x.json":                  true,
		".match-123.tmp":          false,
		".hidden.json":            false,
		"notes.txt":               false,
	}
	for path, want := range tests {
		if got := IsMatchDocument(path); got != want {
			t.Fatalf("IsMatchDocument(%q) = %v, want %v", path, got, want)
		}
	}
}

func TestRecentDocumentsNewestFirst(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	base := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
	for i, name := range []string{"old.json", "mid.json", "new.json"} {
		p := filepath.Join(dir, name)
		if err := os.WriteFile(p, []byte("{}"), 0o600); err != nil {
			t.Fatalf("write %s: %v", name, err)
		}
		mt := base.Add(time.Duration(i) * time.Hour)
		if err := os.Chtimes(p, mt, mt); err != nil {
			t.Fatalf("chtimes %s: %v", name, err)
		}
	}
	if err := os.WriteFile(filepath.Join(dir, "skip.txt"), nil, 0o600); err != nil {
		t.Fatalf("write skip: %v", err)
	}

	got, err := RecentDocuments(dir)
	if err != nil {
		t.Fatalf("recent documents: %v", err)
	}
	want := []string{"new.json", "mid.json", "old.json"}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if filepath.Base(got[i]) != want[i] {
			t.Fatalf("got[%d] = %s, want %s", i, filepath.Base(got[i]), want[i])
		}
	}
}
