// Package watch monitors the content directory and triggers debounced
// rebuilds on change.
package watch

import (
	"context"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"git.home.luguber.info/inful/blogbuilder/internal/logfields"
)

// DefaultQuietWindow is the debounce interval between the last observed
// change and the rebuild it triggers.
const DefaultQuietWindow = 500 * time.Millisecond

// RebuildFunc runs one rebuild. Errors are logged, not propagated; the
// watcher keeps running.
type RebuildFunc func(ctx context.Context) error

// Watcher monitors a content tree recursively and coalesces bursts of file
// events into single rebuilds.
type Watcher struct {
	contentDir  string
	rebuild     RebuildFunc
	quietWindow time.Duration

	watcher    *fsnotify.Watcher
	mu         sync.Mutex
	stopChan   chan struct{}
	changeChan chan struct{}
	started    bool
}

// New creates a Watcher over contentDir. quietWindow <= 0 uses the default.
func New(contentDir string, quietWindow time.Duration, rebuild RebuildFunc) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create file watcher: %w", err)
	}
	abs, err := filepath.Abs(contentDir)
	if err != nil {
		_ = fsw.Close()
		return nil, fmt.Errorf("resolve content dir: %w", err)
	}
	if quietWindow <= 0 {
		quietWindow = DefaultQuietWindow
	}
	return &Watcher{
		contentDir:  abs,
		rebuild:     rebuild,
		quietWindow: quietWindow,
		watcher:     fsw,
		stopChan:    make(chan struct{}),
		changeChan:  make(chan struct{}, 1),
	}, nil
}

// Start registers the content tree and launches the watch goroutines.
func (w *Watcher) Start(ctx context.Context) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.started {
		return fmt.Errorf("watcher already started")
	}

	if err := w.addRecursive(w.contentDir); err != nil {
		return err
	}
	w.started = true

	slog.Info("Watching for content changes", logfields.Source(w.contentDir))

	go w.watchLoop(ctx)
	go w.rebuildLoop(ctx)
	return nil
}

// Stop shuts the watcher down. Safe to call once.
func (w *Watcher) Stop() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	close(w.stopChan)
	return w.watcher.Close()
}

// addRecursive watches dir and every subdirectory. fsnotify has no native
// recursion.
func (w *Watcher) addRecursive(dir string) error {
	return filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if err := w.watcher.Add(path); err != nil {
			return fmt.Errorf("watch %s: %w", path, err)
		}
		return nil
	})
}

func (w *Watcher) watchLoop(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case <-w.stopChan:
			return
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			w.handleEvent(event)
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			slog.Error("Content watcher error", logfields.Error(err))
		}
	}
}

func (w *Watcher) handleEvent(event fsnotify.Event) {
	// New directories must be registered before their contents change.
	if event.Op&fsnotify.Create == fsnotify.Create {
		if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
			if err := w.addRecursive(event.Name); err != nil {
				slog.Warn("Failed to watch new directory",
					logfields.Path(event.Name), logfields.Error(err))
			}
			w.trigger()
			return
		}
	}

	if !relevant(event) {
		return
	}
	slog.Debug("Content change detected",
		logfields.Path(event.Name), slog.String("op", event.Op.String()))
	w.trigger()
}

// relevant filters events down to content files and structural changes.
func relevant(event fsnotify.Event) bool {
	if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Remove|fsnotify.Rename) == 0 {
		return false
	}
	ext := strings.ToLower(filepath.Ext(event.Name))
	if ext == ".md" || ext == ".mdx" || ext == ".yml" || ext == ".yaml" {
		return true
	}
	// Removes and renames may target directories, which carry no extension.
	return ext == "" && event.Op&(fsnotify.Remove|fsnotify.Rename) != 0
}

// trigger requests a debounced rebuild; a pending request absorbs the new one.
func (w *Watcher) trigger() {
	select {
	case w.changeChan <- struct{}{}:
	default:
	}
}

func (w *Watcher) rebuildLoop(ctx context.Context) {
	var timer *time.Timer
	for {
		select {
		case <-ctx.Done():
			if timer != nil {
				timer.Stop()
			}
			return
		case <-w.stopChan:
			if timer != nil {
				timer.Stop()
			}
			return
		case <-w.changeChan:
			if timer != nil {
				timer.Stop()
			}
			timer = time.AfterFunc(w.quietWindow, func() {
				if err := w.rebuild(ctx); err != nil {
					slog.Error("Rebuild failed", logfields.Error(err))
				}
			})
		}
	}
}
