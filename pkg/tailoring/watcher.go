package tailoring

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// WatcherConfig contains configuration for the overlay watcher.
type WatcherConfig struct {
	// Path is the overlay file to watch.
	Path string

	// Debounce is the quiet period before a reload fires after file
	// changes (default: 500ms). Editors that write-then-rename produce
	// several events per save.
	Debounce time.Duration
}

// Watcher watches one overlay file and invokes a reload callback when it
// changes. The parent directory is watched rather than the file itself
// so atomic save-by-rename is still observed.
type Watcher struct {
	watcher  *fsnotify.Watcher
	config   *WatcherConfig
	debounce *Debouncer
	logger   *slog.Logger

	mu      sync.Mutex
	running bool
	stopCh  chan struct{}
	doneCh  chan struct{}
}

// NewWatcher creates an overlay file watcher.
func NewWatcher(config *WatcherConfig, logger *slog.Logger) (*Watcher, error) {
	if config == nil || config.Path == "" {
		return nil, fmt.Errorf("tailoring: watcher requires a path")
	}
	if config.Debounce <= 0 {
		config.Debounce = 500 * time.Millisecond
	}
	if logger == nil {
		logger = slog.Default()
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("tailoring: failed to create fsnotify watcher: %w", err)
	}

	return &Watcher{
		watcher:  fsw,
		config:   config,
		debounce: NewDebouncer(config.Debounce),
		logger:   logger.With("component", "tailoring.watcher"),
		stopCh:   make(chan struct{}),
		doneCh:   make(chan struct{}),
	}, nil
}

// Watch blocks, invoking onReload with the freshly loaded overlay after
// each debounced change, until the context is cancelled or Stop is
// called. Load failures are logged and skipped; the previous overlay
// stays in effect.
func (w *Watcher) Watch(ctx context.Context, onReload func(*Document) error) error {
	w.mu.Lock()
	if w.running {
		w.mu.Unlock()
		return fmt.Errorf("tailoring: watcher already running")
	}
	w.running = true
	w.mu.Unlock()

	defer func() {
		w.mu.Lock()
		w.running = false
		w.mu.Unlock()
		close(w.doneCh)
	}()

	dir := filepath.Dir(w.config.Path)
	if err := w.watcher.Add(dir); err != nil {
		return fmt.Errorf("tailoring: failed to watch %q: %w", dir, err)
	}

	w.logger.Info("overlay watcher started",
		"path", w.config.Path,
		"debounce_ms", w.config.Debounce.Milliseconds(),
	)

	target := filepath.Clean(w.config.Path)
	for {
		select {
		case <-ctx.Done():
			w.logger.Info("overlay watcher stopped (context cancelled)")
			return nil

		case <-w.stopCh:
			w.logger.Info("overlay watcher stopped")
			return nil

		case event, ok := <-w.watcher.Events:
			if !ok {
				return fmt.Errorf("tailoring: watcher events channel closed")
			}
			if filepath.Clean(event.Name) != target {
				continue
			}
			if event.Op&fsnotify.Chmod == fsnotify.Chmod {
				continue
			}

			w.logger.Debug("overlay file event",
				"path", event.Name,
				"op", event.Op.String(),
			)

			w.debounce.Trigger(func() {
				w.reload(onReload)
			})

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return fmt.Errorf("tailoring: watcher errors channel closed")
			}
			w.logger.Error("overlay watcher error", "error", err)
		}
	}
}

func (w *Watcher) reload(onReload func(*Document) error) {
	doc, err := Load(w.config.Path)
	if err != nil {
		w.logger.Error("overlay reload skipped, load failed", "error", err)
		return
	}

	w.logger.Info("overlay reloaded",
		"path", w.config.Path,
		"profiles", len(doc.Profiles),
	)
	if err := onReload(doc); err != nil {
		w.logger.Error("overlay reload callback failed", "error", err)
	}
}

// Stop stops the watcher and waits for the watch loop to exit.
func (w *Watcher) Stop() error {
	w.mu.Lock()
	if !w.running {
		w.mu.Unlock()
		return nil
	}
	w.mu.Unlock()

	close(w.stopCh)
	<-w.doneCh
	w.debounce.Stop()

	if err := w.watcher.Close(); err != nil {
		return fmt.Errorf("tailoring: failed to close watcher: %w", err)
	}
	return nil
}

// Debouncer coalesces rapid events and fires the callback only after a
// quiet period.
type Debouncer struct {
	interval time.Duration
	timer    *time.Timer
	mu       sync.Mutex
	callback func()
	stopCh   chan struct{}
}

// NewDebouncer creates a debouncer with the given quiet interval.
func NewDebouncer(interval time.Duration) *Debouncer {
	return &Debouncer{
		interval: interval,
		stopCh:   make(chan struct{}),
	}
}

// Trigger schedules the callback after the quiet interval, resetting the
// clock if a trigger is already pending.
func (d *Debouncer) Trigger(callback func()) {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.callback = callback
	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = time.AfterFunc(d.interval, func() {
		select {
		case <-d.stopCh:
			return
		default:
		}
		d.mu.Lock()
		cb := d.callback
		d.mu.Unlock()
		if cb != nil {
			cb()
		}
	})
}

// Stop cancels any pending callback.
func (d *Debouncer) Stop() {
	close(d.stopCh)

	d.mu.Lock()
	defer d.mu.Unlock()
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
	d.callback = nil
}
