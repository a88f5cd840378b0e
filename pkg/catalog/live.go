package catalog

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync/atomic"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// LoadFunc produces a fresh catalog.
type LoadFunc func(ctx context.Context) (*Catalog, error)

// DirLoader loads the catalog files under dir and, when overlayPath is set,
// applies the overlay file on top.
func DirLoader(dir, overlayPath string) LoadFunc {
	return func(ctx context.Context) (*Catalog, error) {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		c, err := LoadFS(os.DirFS(dir))
		if err != nil {
			return nil, err
		}
		return withOverlayFile(c, overlayPath)
	}
}

// DefaultLoader loads the embedded catalog plus an optional overlay file.
func DefaultLoader(overlayPath string) LoadFunc {
	return func(context.Context) (*Catalog, error) {
		c, err := Default()
		if err != nil {
			return nil, err
		}
		return withOverlayFile(c, overlayPath)
	}
}

func withOverlayFile(c *Catalog, overlayPath string) (*Catalog, error) {
	if overlayPath == "" {
		return c, nil
	}
	raw, err := os.ReadFile(overlayPath)
	if err != nil {
		return nil, fmt.Errorf("catalog: read overlay %s: %w", overlayPath, err)
	}
	return ApplyOverlay(c, raw)
}

// LiveOption customises a Live catalog.
type LiveOption func(*Live)

// WithLogger sets the logger used for reload reports.
func WithLogger(logger *zap.Logger) LiveOption {
	return func(l *Live) {
		if logger != nil {
			l.logger = logger
		}
	}
}

// WithDebounce sets how long Watch waits for file events to settle before
// reloading.
func WithDebounce(d time.Duration) LiveOption {
	return func(l *Live) {
		if d > 0 {
			l.debounce = d
		}
	}
}

// Live holds the current catalog and swaps it atomically on reload. Readers
// never block.
type Live struct {
	current  atomic.Pointer[Catalog]
	load     LoadFunc
	logger   *zap.Logger
	debounce time.Duration
}

// NewLive loads the initial catalog through load.
func NewLive(ctx context.Context, load LoadFunc, opts ...LiveOption) (*Live, error) {
	if load == nil {
		return nil, errors.New("catalog: live catalog requires a loader")
	}
	l := &Live{
		load:     load,
		logger:   zap.NewNop(),
		debounce: 200 * time.Millisecond,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(l)
		}
	}
	if err := l.Reload(ctx); err != nil {
		return nil, err
	}
	return l, nil
}

// Current returns the active catalog.
func (l *Live) Current() *Catalog {
	return l.current.Load()
}

// Store replaces the active catalog.
func (l *Live) Store(c *Catalog) {
	if c != nil {
		l.current.Store(c)
	}
}

// Reload runs the loader and swaps in the result. On failure the previous
// catalog stays active.
func (l *Live) Reload(ctx context.Context) error {
	c, err := l.load(ctx)
	if err != nil {
		return fmt.Errorf("catalog: reload: %w", err)
	}
	l.Store(c)
	l.logger.Info("catalog loaded", zap.Int("roles", c.Len()), zap.Int("forms", c.Registry().Len()))
	return nil
}

// Watch reloads the catalog whenever a catalog file inside dir changes. It
// blocks until ctx is done. Failed reloads are logged and keep the previous
// catalog.
func (l *Live) Watch(ctx context.Context, dir string) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("catalog: watch: %w", err)
	}
	defer watcher.Close()

	if err := watcher.Add(dir); err != nil {
		return fmt.Errorf("catalog: watch %s: %w", dir, err)
	}
	l.logger.Info("watching catalog", zap.String("dir", dir))

	timer := time.NewTimer(l.debounce)
	if !timer.Stop() {
		<-timer.C
	}
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !isCatalogFile(filepath.Base(event.Name)) {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Remove|fsnotify.Rename) == 0 {
				continue
			}
			timer.Reset(l.debounce)
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			l.logger.Warn("catalog watcher error", zap.Error(err))
		case <-timer.C:
			if err := l.Reload(ctx); err != nil {
				l.logger.Error("catalog reload failed, keeping previous catalog", zap.Error(err))
			}
		}
	}
}
