package browser

import (
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"quill/internal/log"
)

// Change is a filesystem event observed in the watched directory.
type Change struct {
	Path      string
	Timestamp time.Time
	Op        fsnotify.Op
}

// Watcher monitors the open directory for external changes using
// fsnotify, so frontends can refresh the listing when files appear,
// change, or disappear behind the editor's back.
type Watcher struct {
	changeChan chan Change
	stopChan   chan struct{}
	fsWatcher  *fsnotify.Watcher

	mutex   sync.RWMutex
	running bool
	watched string
}

// NewWatcher creates a stopped watcher with no directory attached.
func NewWatcher() (*Watcher, error) {
	fsWatcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create fsnotify watcher: %w", err)
	}

	return &Watcher{
		changeChan: make(chan Change, 10),
		stopChan:   make(chan struct{}),
		fsWatcher:  fsWatcher,
	}, nil
}

// Watch switches the watcher to dir, dropping the previously watched
// directory if any. The browser watches exactly one directory at a time.
func (w *Watcher) Watch(dir string) error {
	info, err := os.Stat(dir)
	if err != nil {
		return fmt.Errorf("error accessing directory: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("%s is not a directory", dir)
	}

	w.mutex.Lock()
	defer w.mutex.Unlock()

	if w.watched != "" && w.watched != dir {
		if err := w.fsWatcher.Remove(w.watched); err != nil {
			log.LogWithFields(
				log.F("directory", w.watched),
				log.F("error", err),
			).Warn("failed to unwatch previous directory")
		}
	}

	if err := w.fsWatcher.Add(dir); err != nil {
		return fmt.Errorf("failed to watch directory %s: %w", dir, err)
	}
	w.watched = dir

	log.LogWithFields(log.F("directory", dir)).Info("watching directory")
	return nil
}

// Changes returns the channel that delivers filesystem events. It is
// closed after Stop, once the event loop exits.
func (w *Watcher) Changes() <-chan Change {
	return w.changeChan
}

// Start begins delivering events on Changes.
func (w *Watcher) Start() error {
	w.mutex.Lock()
	if w.running {
		w.mutex.Unlock()
		return fmt.Errorf("watcher already running")
	}
	w.running = true
	w.mutex.Unlock()

	go func() {
		// The event loop owns the outgoing channel: it closes it when
		// it exits, so a late event can never hit a closed channel.
		defer close(w.changeChan)
		for {
			select {
			case event, ok := <-w.fsWatcher.Events:
				if !ok {
					return
				}

				change := Change{
					Path:      event.Name,
					Timestamp: time.Now(),
					Op:        event.Op,
				}

				// Non-blocking send so a slow frontend can't wedge the loop.
				select {
				case w.changeChan <- change:
				default:
					log.LogWithFields(log.F("file", event.Name)).Warn("change channel full, dropped event")
				}

			case err, ok := <-w.fsWatcher.Errors:
				if !ok {
					return
				}
				log.LogWithFields(log.F("error", err)).Error("fsnotify watcher error")

			case <-w.stopChan:
				return
			}
		}
	}()

	return nil
}

// Stop halts the watcher. The Changes channel closes once the event
// loop drains and exits.
func (w *Watcher) Stop() {
	w.mutex.Lock()
	defer w.mutex.Unlock()

	if !w.running {
		return
	}

	close(w.stopChan)

	if err := w.fsWatcher.Close(); err != nil {
		log.LogWithFields(log.F("error", err)).Error("error closing fsnotify watcher")
	}

	w.running = false
}

// IsRunning reports whether the event loop is active.
func (w *Watcher) IsRunning() bool {
	w.mutex.RLock()
	defer w.mutex.RUnlock()
	return w.running
}
