package discovery

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DiscoverFunc re-runs a container's discovery pass for one manifest
// type and root, returning whatever the caller wants fed to a
// ReloadCallback.
type DiscoverFunc func(ctx context.Context) (any, error)

// ReloadCallback receives the result of a re-run discovery pass. An
// error is observed but never stops the watcher.
type ReloadCallback func(result any, err error)

// WatcherConfig configures a [Watcher].
type WatcherConfig struct {
	// Root is the directory Discover scans; watched for changes.
	Root string

	// Debounce coalesces a burst of filesystem events — typical of an
	// editor's save sequence — into one re-discovery pass. Defaults to
	// 500ms, matching moolen/spectre's IntegrationWatcher.
	Debounce time.Duration
}

// Watcher re-runs a Discover call whenever Root changes, after
// coalescing rapid-fire events with a debounce timer. This is an
// enrichment beyond the discovery pipeline's base algorithm: it never
// touches an already-resolved singleton in the container's instance
// cache, it only produces fresh [kiln.DiscoveryResult] sets for the
// caller to register. Ported from
// moolen/spectre/internal/config/integration_watcher.go.
type Watcher struct {
	cfg      WatcherConfig
	discover DiscoverFunc
	callback ReloadCallback

	mu            sync.Mutex
	debounceTimer *time.Timer
	cancel        context.CancelFunc
	stopped       chan struct{}
}

// NewWatcher creates a Watcher. discover is invoked once immediately by
// Start and again after every debounced filesystem change under
// cfg.Root.
func NewWatcher(cfg WatcherConfig, discover DiscoverFunc, callback ReloadCallback) (*Watcher, error) {
	if cfg.Root == "" {
		return nil, fmt.Errorf("discovery: watcher root must not be empty")
	}
	if discover == nil || callback == nil {
		return nil, fmt.Errorf("discovery: watcher requires both discover and callback")
	}
	if cfg.Debounce == 0 {
		cfg.Debounce = 500 * time.Millisecond
	}
	return &Watcher{cfg: cfg, discover: discover, callback: callback, stopped: make(chan struct{})}, nil
}

// Start runs an initial discovery pass synchronously, then watches
// cfg.Root in the background until ctx is cancelled or Stop is called.
func (w *Watcher) Start(ctx context.Context) error {
	result, err := w.discover(ctx)
	w.callback(result, err)

	watchCtx, cancel := context.WithCancel(ctx)
	w.cancel = cancel
	go w.watchLoop(watchCtx)
	return nil
}

func (w *Watcher) watchLoop(ctx context.Context) {
	defer close(w.stopped)

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		w.callback(nil, fmt.Errorf("discovery: create watcher: %w", err))
		return
	}
	defer fw.Close()

	if err := fw.Add(w.cfg.Root); err != nil {
		w.callback(nil, fmt.Errorf("discovery: watch %s: %w", w.cfg.Root, err))
		return
	}

	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-fw.Events:
			if !ok {
				return
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Remove|fsnotify.Rename) != 0 {
				w.scheduleRediscover(ctx)
			}
		case err, ok := <-fw.Errors:
			if !ok {
				return
			}
			w.callback(nil, err)
		}
	}
}

func (w *Watcher) scheduleRediscover(ctx context.Context) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.debounceTimer != nil {
		w.debounceTimer.Stop()
	}
	w.debounceTimer = time.AfterFunc(w.cfg.Debounce, func() {
		result, err := w.discover(ctx)
		w.callback(result, err)
	})
}

// Stop cancels the watch loop and waits up to 5 seconds for it to exit.
func (w *Watcher) Stop() error {
	if w.cancel != nil {
		w.cancel()
	}
	select {
	case <-w.stopped:
		return nil
	case <-time.After(5 * time.Second):
		return fmt.Errorf("discovery: timed out waiting for watcher to stop")
	}
}
