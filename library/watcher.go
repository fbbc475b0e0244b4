package library

import (
	"context"
	"path/filepath"
	"strings"
	"sync/atomic"
	"time"

	"github.com/bep/debounce"
	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

const DefaultDebounce = 250 * time.Millisecond

// Watcher keeps a Library in sync with a directory. Bursts of file events
// are coalesced into a single reload; a reload that fails keeps the previous
// catalog.
type Watcher struct {
	dir      string
	current  atomic.Pointer[Library]
	logger   *zap.Logger
	delay    time.Duration
	onReload func(*Library)
}

type WatcherOption func(*Watcher)

func WithDebounce(d time.Duration) WatcherOption {
	return func(w *Watcher) {
		w.delay = d
	}
}

func WithLogger(l *zap.Logger) WatcherOption {
	return func(w *Watcher) {
		w.logger = l
	}
}

// OnReload registers fn to run after each successful reload.
func OnReload(fn func(*Library)) WatcherOption {
	return func(w *Watcher) {
		w.onReload = fn
	}
}

// NewWatcher loads dir once and returns a Watcher serving the result.
func NewWatcher(dir string, opts ...WatcherOption) (*Watcher, error) {
	w := &Watcher{
		dir:    dir,
		logger: zap.NewNop(),
		delay:  DefaultDebounce,
	}
	for _, opt := range opts {
		opt(w)
	}
	l, err := Load(dir)
	if err != nil {
		return nil, err
	}
	w.current.Store(l)
	return w, nil
}

// Current returns the most recently loaded catalog.
func (w *Watcher) Current() *Library {
	return w.current.Load()
}

func (w *Watcher) reload() {
	l, err := Load(w.dir)
	if err != nil {
		w.logger.Warn("library reload failed, keeping previous catalog",
			zap.String("dir", w.dir), zap.Error(err))
		return
	}
	w.current.Store(l)
	w.logger.Info("library reloaded",
		zap.String("dir", w.dir),
		zap.Int("patterns", len(l.Patterns)),
		zap.Int("drills", len(l.Drills)),
		zap.Int("scales", len(l.Scales)))
	if w.onReload != nil {
		w.onReload(l)
	}
}

func relevant(ev fsnotify.Event) bool {
	ext := strings.ToLower(filepath.Ext(ev.Name))
	if ext != ".yaml" && ext != ".yml" {
		return false
	}
	return ev.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Remove|fsnotify.Rename) != 0
}

// Run watches the directory until ctx is done. It returns nil on
// cancellation.
func (w *Watcher) Run(ctx context.Context) error {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer fw.Close()
	if err := fw.Add(w.dir); err != nil {
		return err
	}
	w.logger.Info("watching library", zap.String("dir", w.dir))

	// reloads run on the debounce timer and are skipped once Run returns
	stopped := make(chan struct{})
	debounced := debounce.New(w.delay)
	trigger := func() {
		debounced(func() {
			select {
			case <-stopped:
			default:
				w.reload()
			}
		})
	}

	for {
		select {
		case <-ctx.Done():
			close(stopped)
			return nil
		case ev, ok := <-fw.Events:
			if !ok {
				close(stopped)
				return nil
			}
			if relevant(ev) {
				w.logger.Debug("library change", zap.String("file", ev.Name), zap.String("op", ev.Op.String()))
				trigger()
			}
		case err, ok := <-fw.Errors:
			if !ok {
				close(stopped)
				return nil
			}
			w.logger.Error("library watcher error", zap.Error(err))
		}
	}
}
