// Package watch re-scores a resume file whenever it changes on disk.
package watch

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"resumescore/internal/errors"
)

// DefaultDebounce is used when no delay is given.
const DefaultDebounce = 300 * time.Millisecond

// Watcher calls onChange once per burst of writes to a single file.
type Watcher struct {
	file          string
	debounceDelay time.Duration
	onChange      func(context.Context)
	logger        *errors.Logger

	mu            sync.Mutex
	debounceTimer *time.Timer
	lastModTime   time.Time
	lastSize      int64
	fired         chan struct{}
}

// NewWatcher watches file. A zero debounce uses DefaultDebounce.
func NewWatcher(file string, debounce time.Duration, onChange func(context.Context), logger *errors.Logger) *Watcher {
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	if logger == nil {
		logger = errors.Discard()
	}
	return &Watcher{
		file:          filepath.Clean(file),
		debounceDelay: debounce,
		onChange:      onChange,
		logger:        logger,
		fired:         make(chan struct{}, 1),
	}
}

// Run blocks until ctx is cancelled. The parent directory is watched as well
// as the file so editors that save by rename are noticed.
func (w *Watcher) Run(ctx context.Context) error {
	fsWatcher, err := fsnotify.NewWatcher()
	if err != nil {
		return errors.NewIOError(errors.ErrCodeWatchFailed, "failed to create file watcher", err)
	}
	defer func() {
		if err := fsWatcher.Close(); err != nil {
			w.logger.LogError(err, "Failed to close file watcher")
		}
	}()

	dir := filepath.Dir(w.file)
	if err := fsWatcher.Add(dir); err != nil {
		return errors.NewIOError(errors.ErrCodeWatchFailed,
			fmt.Sprintf("failed to watch directory %s", dir), err)
	}
	w.hasChanged()

	w.logger.Info("Resume file watcher started", "file", w.file, "debounce_delay", w.debounceDelay)
	defer w.logger.Info("Resume file watcher stopped", "file", w.file)

	for {
		select {
		case event, ok := <-fsWatcher.Events:
			if !ok {
				return nil
			}
			if w.shouldProcessEvent(event) {
				w.schedule()
			}

		case err, ok := <-fsWatcher.Errors:
			if !ok {
				return nil
			}
			w.logger.LogError(err, "File watcher error")

		case <-w.fired:
			if w.hasChanged() {
				w.logger.Debug("Resume file changed", "file", w.file)
				w.onChange(ctx)
			}

		case <-ctx.Done():
			w.mu.Lock()
			if w.debounceTimer != nil {
				w.debounceTimer.Stop()
			}
			w.mu.Unlock()
			return nil
		}
	}
}

func (w *Watcher) shouldProcessEvent(event fsnotify.Event) bool {
	if filepath.Clean(event.Name) != w.file {
		return false
	}
	return event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) != 0
}

func (w *Watcher) schedule() {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.debounceTimer != nil {
		w.debounceTimer.Stop()
	}
	w.debounceTimer = time.AfterFunc(w.debounceDelay, func() {
		select {
		case w.fired <- struct{}{}:
		default:
		}
	})
}

// hasChanged compares the file's modification time and size with the last
// observation. A missing file is not a change.
func (w *Watcher) hasChanged() bool {
	stat, err := os.Stat(w.file)
	if err != nil {
		return false
	}
	if stat.ModTime().Equal(w.lastModTime) && stat.Size() == w.lastSize {
		return false
	}
	w.lastModTime = stat.ModTime()
	w.lastSize = stat.Size()
	return true
}
