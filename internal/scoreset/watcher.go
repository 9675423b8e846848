package scoreset

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// DefaultDebounce is how long the watcher waits for writes to settle.
const DefaultDebounce = 250 * time.Millisecond

// Watcher reloads a score file whenever it changes on disk.
type Watcher struct {
	path     string
	debounce time.Duration
	onLoad   func(*File)
	logger   *zap.Logger

	mu       sync.Mutex
	timer    *time.Timer
	last     string
	closed   bool
	inflight sync.WaitGroup
}

// NewWatcher creates a watcher for path. onLoad receives every successfully
// parsed version whose content hash differs from the previous one.
func NewWatcher(path string, debounce time.Duration, onLoad func(*File), logger *zap.Logger) *Watcher {
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Watcher{
		path:     filepath.Clean(path),
		debounce: debounce,
		onLoad:   onLoad,
		logger:   logger.Named("scoreset-watcher"),
	}
}

// Run watches until ctx is cancelled. The parent directory is watched so
// editors that replace the file atomically are still observed.
func (w *Watcher) Run(ctx context.Context) error {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("scoreset.Watcher: %w", err)
	}
	defer fsw.Close()

	dir := filepath.Dir(w.path)
	if err := fsw.Add(dir); err != nil {
		return fmt.Errorf("scoreset.Watcher: watch %s: %w", dir, err)
	}
	w.logger.Info("Watching score file", zap.String("path", w.path), zap.Duration("debounce", w.debounce))

	defer w.stop()
	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-fsw.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(ev.Name) != w.path {
				continue
			}
			if ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			w.schedule()
		case err, ok := <-fsw.Errors:
			if !ok {
				return nil
			}
			w.logger.Warn("Watcher error", zap.Error(err))
		}
	}
}

// SetLastHash records the hash of the version already loaded by the caller.
func (w *Watcher) SetLastHash(hash string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.last = hash
}

func (w *Watcher) schedule() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.timer != nil {
		w.timer.Stop()
	}
	w.timer = time.AfterFunc(w.debounce, w.reload)
}

// stop cancels any pending reload and waits for a running one, so onLoad
// is never called after Run returns.
func (w *Watcher) stop() {
	w.mu.Lock()
	w.closed = true
	if w.timer != nil {
		w.timer.Stop()
		w.timer = nil
	}
	w.mu.Unlock()
	w.inflight.Wait()
}

func (w *Watcher) reload() {
	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		return
	}
	w.inflight.Add(1)
	w.mu.Unlock()
	defer w.inflight.Done()

	f, err := Load(w.path)
	if err != nil {
		w.logger.Warn("Keeping previous scores, reload failed", zap.String("path", w.path), zap.Error(err))
		return
	}

	w.mu.Lock()
	if f.Hash == w.last {
		w.mu.Unlock()
		return
	}
	w.last = f.Hash
	w.mu.Unlock()

	w.logger.Info("Score file reloaded", zap.String("path", w.path), zap.String("hash", f.Hash), zap.Int("entries", len(f.Scores)))
	if w.onLoad != nil {
		w.onLoad(f)
	}
}
