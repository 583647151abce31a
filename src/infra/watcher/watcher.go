package watcher

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Watcher monitors a cache directory and emits a debounced event after changes settle.
// The directory and its ancestors up to the cache root are watched too, so the watch
// survives the whole tree being removed and recreated.
type Watcher struct {
	watcher       *fsnotify.Watcher
	dirs          []string
	debounce      time.Duration
	debounceTimer *time.Timer
	debounceMutex sync.Mutex
	lastEvent     fsnotify.Event
	running       bool
	stopChan      chan struct{}
	eventChan     chan<- FileEvent
}

// NewWatcher creates a new file system watcher
func NewWatcher(eventChan chan<- FileEvent, debounce time.Duration) (*Watcher, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	return &Watcher{
		watcher:   watcher,
		debounce:  debounce,
		eventChan: eventChan,
		stopChan:  make(chan struct{}),
	}, nil
}

// Start begins watching dir. root must be dir or one of its ancestors.
func (w *Watcher) Start(ctx context.Context, root, dir string) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}
	w.dirs = chain(filepath.Clean(root), filepath.Clean(dir))
	slog.Info("Starting cache watcher", "path", dir)

	for _, d := range w.dirs {
		if err := w.watcher.Add(d); err != nil {
			return err
		}
	}

	w.running = true
	go w.watchLoop(ctx)
	return nil
}

// Stop stops the file watcher
func (w *Watcher) Stop() {
	if !w.running {
		return
	}

	slog.Debug("Stopping cache watcher")
	w.running = false
	close(w.stopChan)

	w.debounceMutex.Lock()
	if w.debounceTimer != nil {
		w.debounceTimer.Stop()
		w.debounceTimer = nil
	}
	w.debounceMutex.Unlock()

	w.watcher.Close()
}

func (w *Watcher) watchLoop(ctx context.Context) {
	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			w.handleEvent(event)

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			slog.Error("Cache watcher error", "error", err)

		case <-w.stopChan:
			return

		case <-ctx.Done():
			return
		}
	}
}

func (w *Watcher) handleEvent(event fsnotify.Event) {
	if event.Op == fsnotify.Chmod {
		return
	}
	if strings.HasPrefix(filepath.Base(event.Name), ".partial-") {
		return
	}

	// A watched directory that reappears must be watched again, together with any
	// watched directories below it created in the same MkdirAll.
	if event.Op.Has(fsnotify.Create) && w.isWatchedDir(event.Name) {
		w.rewatchFrom(event.Name)
	}

	slog.Debug("Cache change detected", "path", event.Name, "op", event.Op.String())

	w.debounceMutex.Lock()
	defer w.debounceMutex.Unlock()

	w.lastEvent = event
	if w.debounceTimer != nil {
		w.debounceTimer.Stop()
	}
	w.debounceTimer = time.AfterFunc(w.debounce, w.emitDebounceEvent)
}

func (w *Watcher) rewatchFrom(path string) {
	path = filepath.Clean(path)
	for i, d := range w.dirs {
		if d != path {
			continue
		}
		for _, dir := range w.dirs[i:] {
			info, err := os.Stat(dir)
			if err != nil || !info.IsDir() {
				return
			}
			if err := w.watcher.Add(dir); err != nil {
				slog.Warn("Failed to re-watch directory", "path", dir, "error", err)
				return
			}
		}
		return
	}
}

func (w *Watcher) isWatchedDir(path string) bool {
	path = filepath.Clean(path)
	for _, d := range w.dirs {
		if d == path {
			return true
		}
	}
	return false
}

func (w *Watcher) emitDebounceEvent() {
	w.debounceMutex.Lock()
	last := w.lastEvent
	w.debounceMutex.Unlock()

	event := FileEvent{
		Path:      last.Name,
		EventType: eventType(last.Op),
		Timestamp: time.Now(),
	}

	select {
	case w.eventChan <- event:
		slog.Debug("Emitted cache event after debounce", "path", event.Path, "type", event.EventType)
	default:
		slog.Warn("Event channel full, dropping cache event", "path", event.Path)
	}
}

// chain lists root and every directory below it down to dir. If dir is not under root,
// only dir is returned.
func chain(root, dir string) []string {
	rel, err := filepath.Rel(root, dir)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return []string{dir}
	}
	dirs := []string{root}
	if rel == "." {
		return dirs
	}
	current := root
	for _, part := range strings.Split(rel, string(filepath.Separator)) {
		current = filepath.Join(current, part)
		dirs = append(dirs, current)
	}
	return dirs
}
