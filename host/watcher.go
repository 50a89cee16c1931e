package host

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/c360studio/plughost/bundle"
)

const (
	// bundleEventBuffer is the size of the bundle event channel.
	bundleEventBuffer = 64

	// settleDelay is how long to wait after a bundle directory appears
	// before announcing it, so installers can finish writing the manifest.
	settleDelay = 500 * time.Millisecond
)

// BundleWatcher watches the bundle search path and announces newly
// installed bundle URIs. It never mutates a World itself: the host decides
// when to call LoadBundle, keeping load serialization in one place.
type BundleWatcher struct {
	fw     *fsnotify.Watcher
	logger *slog.Logger
	events chan string
}

// NewBundleWatcher watches the given search directories. Directories that
// do not exist are skipped with a debug log.
func NewBundleWatcher(searchPath []string, logger *slog.Logger) (*BundleWatcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if logger == nil {
		logger = slog.Default()
	}
	w := &BundleWatcher{
		fw:     fw,
		logger: logger,
		events: make(chan string, bundleEventBuffer),
	}
	for _, dir := range searchPath {
		if err := fw.Add(dir); err != nil {
			logger.Debug("not watching bundle dir", "dir", dir, "err", err)
		}
	}
	return w, nil
}

// Bundles returns the channel of newly appeared bundle URIs.
func (w *BundleWatcher) Bundles() <-chan string {
	return w.events
}

// Run processes filesystem events until the context is canceled or the
// watcher is closed.
func (w *BundleWatcher) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case ev, ok := <-w.fw.Events:
			if !ok {
				return
			}
			if ev.Op&fsnotify.Create == 0 {
				continue
			}
			w.maybeAnnounce(ev.Name)
		case err, ok := <-w.fw.Errors:
			if !ok {
				return
			}
			w.logger.Warn("bundle watch error", "err", err)
		}
	}
}

// maybeAnnounce checks whether path is a plausible bundle directory and, if
// so, emits its URI after a settle delay.
func (w *BundleWatcher) maybeAnnounce(path string) {
	if !strings.HasSuffix(path, ".lv2") {
		return
	}
	info, err := os.Stat(path)
	if err != nil || !info.IsDir() {
		return
	}
	go func() {
		time.Sleep(settleDelay)
		matches, err := filepath.Glob(filepath.Join(path, "manifest.*"))
		if err != nil || len(matches) == 0 {
			w.logger.Debug("ignoring bundle dir without manifest", "dir", path)
			return
		}
		uri := bundle.FileURI(path) + "/"
		select {
		case w.events <- uri:
			w.logger.Debug("bundle appeared", "bundle", uri)
		default:
			w.logger.Warn("bundle event dropped, channel full", "bundle", uri)
		}
	}()
}

// Close stops the watcher. The Bundles channel is not closed; Run returns
// once the underlying watcher shuts down.
func (w *BundleWatcher) Close() error {
	return w.fw.Close()
}
