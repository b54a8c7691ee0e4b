// Package watcher provides live reload of the settings file.
//
// The watcher monitors the directory holding the settings file, filters
// events down to that file, debounces bursts of writes, and publishes each
// successfully reloaded configuration on a channel. Until that directory
// exists the nearest existing ancestor is watched instead, and the watch
// moves down as the missing directories are created.
package watcher

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/dshills/linestack/internal/config"
)

// DefaultDebounce is the quiet period before a reload.
const DefaultDebounce = 100 * time.Millisecond

// Option configures a Watcher.
type Option func(*Watcher)

// WithDebounce sets the quiet period before a reload.
func WithDebounce(d time.Duration) Option {
	return func(w *Watcher) {
		w.debounce = d
	}
}

// WithLogger sets the logger used for reload failures.
func WithLogger(logger *slog.Logger) Option {
	return func(w *Watcher) {
		w.logger = logger
	}
}

// Watcher reloads the configuration when its file changes.
type Watcher struct {
	mu sync.Mutex

	fsw     *fsnotify.Watcher
	opts    config.Options
	file    string
	dir     string // directory holding file
	watched string // dir or its nearest existing ancestor

	debounce time.Duration
	timer    *time.Timer
	logger   *slog.Logger

	updates chan *config.Config
	errs    chan error

	closed  bool
	closeCh chan struct{}
	wg      sync.WaitGroup
}

// New watches the settings file named by opts.Path. Neither the file nor
// its directory need exist yet.
func New(opts config.Options, options ...Option) (*Watcher, error) {
	if opts.Path == "" {
		opts.Path = config.DefaultPath()
	}
	file, err := filepath.Abs(opts.Path)
	if err != nil {
		return nil, err
	}
	opts.Path = file

	dir := filepath.Dir(file)
	watched, err := nearestDir(dir)
	if err != nil {
		return nil, err
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := fsw.Add(watched); err != nil {
		_ = fsw.Close()
		return nil, err
	}

	w := &Watcher{
		fsw:      fsw,
		opts:     opts,
		file:     file,
		dir:      dir,
		watched:  watched,
		debounce: DefaultDebounce,
		logger:   slog.Default(),
		updates:  make(chan *config.Config, 1),
		errs:     make(chan error, 1),
		closeCh:  make(chan struct{}),
	}
	for _, opt := range options {
		opt(w)
	}
	if watched != dir {
		w.descend()
	}

	w.wg.Add(1)
	go w.processLoop()

	return w, nil
}

// Path returns the watched file.
func (w *Watcher) Path() string {
	return w.file
}

// Watched returns the directory currently being watched.
func (w *Watcher) Watched() string {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.watched
}

// Updates delivers each reloaded configuration. Only the newest pending
// configuration is kept.
func (w *Watcher) Updates() <-chan *config.Config {
	return w.updates
}

// Errors delivers reload failures. Only the newest pending error is kept.
func (w *Watcher) Errors() <-chan error {
	return w.errs
}

// Close stops watching. It is safe to call more than once.
func (w *Watcher) Close() error {
	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		return nil
	}
	w.closed = true
	if w.timer != nil {
		w.timer.Stop()
	}
	close(w.closeCh)
	w.mu.Unlock()

	err := w.fsw.Close()
	w.wg.Wait()
	return err
}

func (w *Watcher) processLoop() {
	defer w.wg.Done()

	for {
		select {
		case <-w.closeCh:
			return

		case ev, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			if ev.Has(fsnotify.Create) && w.Watched() != w.dir {
				w.descend()
			}
			if w.relevant(ev) {
				w.schedule()
			}

		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			w.logger.Warn("config watcher error", "error", err)
			publish(w.errs, err)
		}
	}
}

// descend moves the watch to the deepest existing directory on the way to
// the settings file. A file already present once its directory is reached
// is loaded.
func (w *Watcher) descend() {
	for {
		next, err := nearestDir(w.dir)
		if err != nil || next == w.Watched() {
			break
		}
		if err := w.fsw.Add(next); err != nil {
			w.logger.Warn("config watcher descend failed", "dir", next, "error", err)
			publish(w.errs, err)
			return
		}
		w.mu.Lock()
		prev := w.watched
		w.watched = next
		w.mu.Unlock()
		_ = w.fsw.Remove(prev)
		w.logger.Debug("config watcher moved", "dir", next)
	}

	if w.Watched() != w.dir {
		return
	}
	if _, err := os.Stat(w.file); err == nil {
		w.schedule()
	}
}

// nearestDir returns dir or its closest existing ancestor.
func nearestDir(dir string) (string, error) {
	for {
		fi, err := os.Stat(dir)
		if err == nil {
			if !fi.IsDir() {
				return "", fmt.Errorf("%s is not a directory", dir)
			}
			return dir, nil
		}
		if !os.IsNotExist(err) {
			return "", err
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", err
		}
		dir = parent
	}
}

// relevant reports whether ev touches the watched file.
func (w *Watcher) relevant(ev fsnotify.Event) bool {
	if filepath.Clean(ev.Name) != w.file {
		return false
	}
	return ev.Has(fsnotify.Write) || ev.Has(fsnotify.Create) || ev.Has(fsnotify.Rename)
}

func (w *Watcher) schedule() {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.closed {
		return
	}
	if w.timer != nil {
		w.timer.Stop()
	}
	w.timer = time.AfterFunc(w.debounce, w.reload)
}

func (w *Watcher) reload() {
	w.mu.Lock()
	closed := w.closed
	w.mu.Unlock()
	if closed {
		return
	}

	cfg, err := config.Load(w.opts)
	if err != nil {
		w.logger.Warn("config reload failed", "path", w.file, "error", err)
		publish(w.errs, err)
		return
	}

	w.logger.Info("config reloaded", "path", w.file)
	publish(w.updates, cfg)
}

// publish replaces any pending value on ch with v.
func publish[T any](ch chan T, v T) {
	for {
		select {
		case ch <- v:
			return
		default:
		}
		select {
		case <-ch:
		default:
		}
	}
}
