package services

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/claridad-labs/claridad/internal/core/ports/driving"
	"github.com/claridad-labs/claridad/internal/logger"
)

// DefaultSettleDelay is how long a new file must stay quiet before it
// is indexed. PDFs are often written in several bursts; indexing a
// half-copied file would fail extraction.
const DefaultSettleDelay = 2 * time.Second

// InboxWatcher watches a directory and indexes every PDF dropped into
// it. Indexing failures are reported per file and do not stop the
// watch loop.
type InboxWatcher struct {
	indexer driving.IndexerService
	dir     string
	settle  time.Duration

	mu     sync.Mutex
	timers map[string]*time.Timer

	// OnIndexed, if set, is called after each successful indexing run.
	OnIndexed func(report *driving.IndexReport)

	// OnError, if set, is called for each file that failed to index.
	OnError func(path string, err error)
}

// WatcherOption customises the inbox watcher.
type WatcherOption func(*InboxWatcher)

// WithSettleDelay changes how long a file must stay quiet before indexing.
func WithSettleDelay(d time.Duration) WatcherOption {
	return func(w *InboxWatcher) {
		if d > 0 {
			w.settle = d
		}
	}
}

// NewInboxWatcher creates a watcher over dir.
func NewInboxWatcher(indexer driving.IndexerService, dir string, opts ...WatcherOption) *InboxWatcher {
	w := &InboxWatcher{
		indexer: indexer,
		dir:     dir,
		settle:  DefaultSettleDelay,
		timers:  make(map[string]*time.Timer),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Watch blocks, indexing PDFs as they appear, until ctx is cancelled or
// the underlying watcher fails.
func (w *InboxWatcher) Watch(ctx context.Context) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer watcher.Close()

	if err := watcher.Add(w.dir); err != nil {
		return fmt.Errorf("watch %s: %w", w.dir, err)
	}
	logger.Info("Watching %s for PDFs", w.dir)

	for {
		select {
		case <-ctx.Done():
			w.cancelTimers()
			return ctx.Err()

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !event.Op.Has(fsnotify.Create) && !event.Op.Has(fsnotify.Write) {
				continue
			}
			if !strings.EqualFold(filepath.Ext(event.Name), ".pdf") {
				continue
			}
			logger.Debug("Inbox event: %s %s", event.Op, event.Name)
			w.schedule(ctx, event.Name)

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Warn("Watcher error: %v", err)
		}
	}
}

// schedule (re)arms the settle timer for path. Repeated writes push the
// indexing run back until the file goes quiet.
func (w *InboxWatcher) schedule(ctx context.Context, path string) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if t, ok := w.timers[path]; ok {
		t.Stop()
	}
	w.timers[path] = time.AfterFunc(w.settle, func() {
		w.mu.Lock()
		delete(w.timers, path)
		w.mu.Unlock()
		w.indexOne(ctx, path)
	})
}

// indexOne indexes a single settled file and reports the outcome.
func (w *InboxWatcher) indexOne(ctx context.Context, path string) {
	if ctx.Err() != nil {
		return
	}

	report, err := w.indexer.IndexFile(ctx, path, "")
	if err != nil {
		logger.Error("Failed to index %s: %v", path, err)
		if w.OnError != nil {
			w.OnError(path, err)
		}
		return
	}

	logger.Info("Indexed %s as %s (%d chunks)", path, report.Document.ID, report.ChunkCount)
	if w.OnIndexed != nil {
		w.OnIndexed(report)
	}
}

// cancelTimers stops all pending settle timers.
func (w *InboxWatcher) cancelTimers() {
	w.mu.Lock()
	defer w.mu.Unlock()
	for path, t := range w.timers {
		t.Stop()
		delete(w.timers, path)
	}
}
