// Package watcher reports changes to saved match documents in the storage directory.
package watcher

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

const defaultDebounce = 300 * time.Millisecond

// DirWatcher watches a match storage directory and calls OnChange once per burst
// of document writes, renames or removals.
type DirWatcher struct {
	Dir      string
	watcher  *fsnotify.Watcher
	done     chan struct{}
	stopOnce sync.Once

	mu       sync.Mutex
	timer    *time.Timer
	debounce time.Duration

	onChange func()
	onError  func(err error)
}

type WatcherConfig struct {
	OnChange func()
	OnError  func(err error)
	// Debounce is the quiet period before OnChange fires. Zero means 300ms.
	Debounce time.Duration
}

// NewDirWatcher creates a watcher for dir. Call Start to begin delivering events.
func NewDirWatcher(dir string, cfg WatcherConfig) (*DirWatcher, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create fsnotify watcher: %w", err)
	}
	debounce := cfg.Debounce
	if debounce <= 0 {
		debounce = defaultDebounce
	}
	return &DirWatcher{
		Dir:      dir,
		watcher:  w,
		done:     make(chan struct{}),
		debounce: debounce,
		onChange: cfg.OnChange,
		onError:  cfg.OnError,
	}, nil
}

// Start creates the directory when missing and begins watching it.
func (dw *DirWatcher) Start() error {
	slog.Info("watcher starting", "dir", dw.Dir)
	if err := os.MkdirAll(dw.Dir, 0o755); err != nil {
		return fmt.Errorf("create watch directory %s: %w", dw.Dir, err)
	}
	if err := dw.watcher.Add(dw.Dir); err != nil {
		return fmt.Errorf("watch directory %s: %w", dw.Dir, err)
	}
	go dw.watchLoop()
	return nil
}

// Stop stops the watcher. It is safe to call more than once.
func (dw *DirWatcher) Stop() {
	dw.stopOnce.Do(func() {
		slog.Info("watcher stopped", "dir", dw.Dir)
		close(dw.done)
		_ = dw.watcher.Close()
		dw.mu.Lock()
		if dw.timer != nil {
			dw.timer.Stop()
		}
		dw.mu.Unlock()
	})
}

func (dw *DirWatcher) watchLoop() {
	for {
		select {
		case <-dw.done:
			return
		case event, ok := <-dw.watcher.Events:
			if !ok {
				return
			}
			if !IsMatchDocument(event.Name) {
				continue
			}
			if event.Has(fsnotify.Create) || event.Has(fsnotify.Write) || event.Has(fsnotify.Rename) || event.Has(fsnotify.Remove) {
				slog.Debug("match document changed", "path", event.Name, "op", event.Op.String())
				dw.schedule()
			}
		case err, ok := <-dw.watcher.Errors:
			if !ok {
				return
			}
			if dw.onError != nil {
				dw.onError(err)
			}
		}
	}
}

func (dw *DirWatcher) schedule() {
	dw.mu.Lock()
	defer dw.mu.Unlock()
	if dw.timer != nil {
		dw.timer.Reset(dw.debounce)
		return
	}
	dw.timer = time.AfterFunc(dw.debounce, dw.fire)
}

func (dw *DirWatcher) fire() {
	select {
	case <-dw.done:
		return
	default:
	}
	if dw.onChange != nil {
		dw.onChange()
	}
}

// IsMatchDocument reports whether path names a visible *.json document.
// Temp files written during an atomic save start with a dot and are ignored.
func IsMatchDocument(path string) bool {
	name := filepath.Base(path)
	return strings.HasSuffix(name, ".json") && !strings.HasPrefix(name, ".")
}

// RecentDocuments lists the match documents in dir, most recently modified first.
func RecentDocuments(dir string) ([]string, error) {
	matches, err := filepath.Glob(filepath.Join(dir, "*.json"))
	if err != nil {
		return nil, fmt.Errorf("glob documents: %w", err)
	}
	docs := matches[:0]
	for _, m := range matches {
		if IsMatchDocument(m) {
			docs = append(docs, m)
		}
	}
	sortByModTimeDesc(docs)
	return docs, nil
}

// sortByModTimeDesc sorts paths newest-first with a single os.Stat per file.
func sortByModTimeDesc(paths []string) {
	modTimes := make(map[string]time.Time, len(paths))
	for _, p := range paths {
		if info, err := os.Stat(p); err == nil {
			modTimes[p] = info.ModTime()
		}
	}
	sort.SliceStable(paths, func(i, j int) bool {
		return modTimes[paths[i]].After(modTimes[paths[j]])
	})
}
