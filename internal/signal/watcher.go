// Package signal watches the .conductor/signals directory for operator
// signals. A "stop" file halts new ReAct iterations and waves; running
// external calls finish on their own.
package signal

import (
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Watcher observes stop signals for one project directory.
type Watcher struct {
	signalsDir string

	mu   sync.RWMutex
	stop bool

	watcher *fsnotify.Watcher
	done    chan struct{}
}

// NewWatcher creates a watcher rooted at projectRoot/.conductor/signals.
// A failed fsnotify setup degrades to stat-based polling in ShouldStop.
func NewWatcher(projectRoot string) (*Watcher, error) {
	signalsDir := filepath.Join(projectRoot, ".conductor", "signals")
	if err := os.MkdirAll(signalsDir, 0755); err != nil {
		return nil, err
	}

	w := &Watcher{
		signalsDir: signalsDir,
		done:       make(chan struct{}),
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return w, nil
	}
	if err := fsw.Add(signalsDir); err != nil {
		fsw.Close()
		return w, nil
	}
	w.watcher = fsw
	go w.watch()

	return w, nil
}

func (w *Watcher) watch() {
	for {
		select {
		case <-w.done:
			return
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if filepath.Base(event.Name) == "stop" && (event.Op&fsnotify.Create != 0 || event.Op&fsnotify.Write != 0) {
				w.mu.Lock()
				w.stop = true
				w.mu.Unlock()
			}
		case <-w.watcher.Errors:
			// Ignore errors, keep watching
		}
	}
}

// ShouldStop returns true if a stop signal has been received.
func (w *Watcher) ShouldStop() bool {
	// Also check the file directly in case the watcher missed it
	if _, err := os.Stat(w.stopPath()); err == nil {
		w.mu.Lock()
		w.stop = true
		w.mu.Unlock()
	}

	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.stop
}

// SendStop creates the stop signal file.
func (w *Watcher) SendStop() error {
	return os.WriteFile(w.stopPath(), []byte(time.Now().Format(time.RFC3339)), 0644)
}

// Clear removes the stop signal file and resets the watcher state.
func (w *Watcher) Clear() {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.stop = false
	os.Remove(w.stopPath())
}

func (w *Watcher) stopPath() string {
	return filepath.Join(w.signalsDir, "stop")
}

// Close shuts down the watcher.
func (w *Watcher) Close() {
	close(w.done)
	if w.watcher != nil {
		w.watcher.Close()
	}
}
