package watch

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// Watcher re-runs a callback when watched report documents change.
// Rapid event bursts for the same path (editors often write a file
// several times per save) collapse into one callback per debounce
// window.
type Watcher struct {
	fsw      *fsnotify.Watcher
	onChange func(path string)
	debounce time.Duration
	logger   *zap.Logger

	mu     sync.Mutex
	timers map[string]*time.Timer
}

// New creates a watcher over the given files or directories.
func New(paths []string, debounce time.Duration, logger *zap.Logger, onChange func(path string)) (*Watcher, error) {
	if debounce <= 0 {
		debounce = 200 * time.Millisecond
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}

	w := &Watcher{
		fsw:      fsw,
		onChange: onChange,
		debounce: debounce,
		logger:   logger,
		timers:   make(map[string]*time.Timer),
	}

	for _, path := range paths {
		// Watch the containing directory for plain files: editors
		// replace files on save, which drops file-level watches.
		target := path
		if info, err := os.Stat(path); err == nil && !info.IsDir() {
			target = filepath.Dir(path)
		}
		if err := fsw.Add(target); err != nil {
			_ = fsw.Close()
			return nil, fmt.Errorf("watch %s: %w", target, err)
		}
		w.logger.Debug("watching", zap.String("path", target))
	}

	return w, nil
}

// Run blocks, dispatching callbacks until the context is cancelled.
func (w *Watcher) Run(ctx context.Context) error {
	defer func() { _ = w.fsw.Close() }()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case event, ok := <-w.fsw.Events:
			if !ok {
				return nil
			}
			if !event.Op.Has(fsnotify.Write) && !event.Op.Has(fsnotify.Create) {
				continue
			}
			if !IsDocument(event.Name) {
				continue
			}
			w.schedule(event.Name)

		case err, ok := <-w.fsw.Errors:
			if !ok {
				return nil
			}
			w.logger.Warn("watch error", zap.Error(err))
		}
	}
}

// schedule arms (or re-arms) the debounce timer for a path.
func (w *Watcher) schedule(path string) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if timer, ok := w.timers[path]; ok {
		timer.Reset(w.debounce)
		return
	}

	w.timers[path] = time.AfterFunc(w.debounce, func() {
		w.mu.Lock()
		delete(w.timers, path)
		w.mu.Unlock()
		w.onChange(path)
	})
}

// IsDocument reports whether a path looks like a report document.
func IsDocument(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".md", ".markdown", ".html", ".htm":
		return true
	default:
		return false
	}
}
