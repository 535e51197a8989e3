// Package watcher reloads sources when they change on disk.
package watcher

import (
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// FileWatcher watches files and calls back once per burst of changes
type FileWatcher struct {
	watcher   *fsnotify.Watcher
	log       *zap.Logger
	mu        sync.Mutex
	callbacks map[string]func(string)
	debounce  time.Duration
	timers    map[string]*time.Timer
	done      chan struct{}
	closeOnce sync.Once
}

// NewFileWatcher creates a watcher that waits debounce after the last event
// before calling back. log may be nil.
func NewFileWatcher(debounce time.Duration, log *zap.Logger) (*FileWatcher, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create watcher: %w", err)
	}
	if log == nil {
		log = zap.NewNop()
	}

	return &FileWatcher{
		watcher:   w,
		log:       log,
		callbacks: make(map[string]func(string)),
		debounce:  debounce,
		timers:    make(map[string]*time.Timer),
		done:      make(chan struct{}),
	}, nil
}

// Watch adds files; callback receives the absolute path of the changed file
func (fw *FileWatcher) Watch(files []string, callback func(string)) error {
	fw.mu.Lock()
	defer fw.mu.Unlock()

	for _, file := range files {
		absPath, err := filepath.Abs(file)
		if err != nil {
			return fmt.Errorf("failed to resolve path %s: %w", file, err)
		}

		if err := fw.watcher.Add(absPath); err != nil {
			return fmt.Errorf("failed to watch %s: %w", absPath, err)
		}

		fw.callbacks[absPath] = callback
		fw.log.Debug("watching file", zap.String("path", absPath))
	}

	return nil
}

// Start processes events on a goroutine until Close
func (fw *FileWatcher) Start() {
	go func() {
		for {
			select {
			case event, ok := <-fw.watcher.Events:
				if !ok {
					return
				}
				fw.handleEvent(event)

			case err, ok := <-fw.watcher.Errors:
				if !ok {
					return
				}
				fw.log.Warn("watcher error", zap.Error(err))

			case <-fw.done:
				return
			}
		}
	}()
}

func (fw *FileWatcher) handleEvent(event fsnotify.Event) {
	switch {
	case event.Has(fsnotify.Write), event.Has(fsnotify.Create):
		fw.handleFileChange(event.Name)
	case event.Has(fsnotify.Rename), event.Has(fsnotify.Remove):
		// Editors that save by rename drop the watch; re-add it once the new file exists
		fw.rewatch(event.Name)
	}
}

func (fw *FileWatcher) rewatch(path string) {
	fw.mu.Lock()
	_, known := fw.callbacks[path]
	fw.mu.Unlock()
	if !known {
		return
	}

	time.AfterFunc(fw.debounce, func() {
		if err := fw.watcher.Add(path); err != nil {
			fw.log.Warn("file disappeared", zap.String("path", path), zap.Error(err))
			return
		}
		fw.handleFileChange(path)
	})
}

// handleFileChange restarts the debounce timer for filePath
func (fw *FileWatcher) handleFileChange(filePath string) {
	fw.mu.Lock()
	defer fw.mu.Unlock()

	callback, exists := fw.callbacks[filePath]
	if !exists {
		return
	}

	if timer, exists := fw.timers[filePath]; exists {
		timer.Stop()
	}

	fw.timers[filePath] = time.AfterFunc(fw.debounce, func() {
		select {
		case <-fw.done:
			return
		default:
		}
		fw.log.Debug("file changed", zap.String("path", filePath))
		callback(filePath)
	})
}

// Close stops the watcher and pending callbacks
func (fw *FileWatcher) Close() error {
	var err error
	fw.closeOnce.Do(func() {
		close(fw.done)
		fw.mu.Lock()
		for _, t := range fw.timers {
			t.Stop()
		}
		fw.mu.Unlock()
		err = fw.watcher.Close()
	})
	return err
}
