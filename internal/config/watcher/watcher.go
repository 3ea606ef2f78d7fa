// Package watcher reloads property files when they change on disk.
//
// The watcher subscribes to the file's parent directory so that editors
// which save by rename-and-replace are still observed. Bursts of events
// for the same file are debounced into one callback.
package watcher

import (
	"context"
	"errors"
	"log/slog"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// ErrAlreadyRunning is returned when Start is called twice.
var ErrAlreadyRunning = errors.New("watcher is already running")

// Operation represents the type of file operation.
type Operation int

const (
	// OpWrite indicates the file was modified or created.
	OpWrite Operation = iota

	// OpRemove indicates the file was deleted or renamed away.
	OpRemove
)

// String returns the operation name.
func (op Operation) String() string {
	switch op {
	case OpWrite:
		return "write"
	case OpRemove:
		return "remove"
	default:
		return "unknown"
	}
}

// Event represents a change to a watched file.
type Event struct {
	// Path is the absolute path to the changed file.
	Path string

	// Op is the last operation seen in the debounce window.
	Op Operation

	// Time is when the event was delivered.
	Time time.Time
}

// Handler is called once per debounced change.
type Handler func(event Event)

// Watcher observes a set of files.
type Watcher struct {
	mu       sync.Mutex
	files    map[string]bool
	handler  Handler
	debounce time.Duration
	logger   *slog.Logger

	fsw     *fsnotify.Watcher
	cancel  context.CancelFunc
	wg      sync.WaitGroup
	pending map[string]*time.Timer
}

// Option configures a Watcher.
type Option func(*Watcher)

// WithDebounce sets the debounce window for rapid changes.
func WithDebounce(d time.Duration) Option {
	return func(w *Watcher) {
		if d >= 0 {
			w.debounce = d
		}
	}
}

// WithLogger sets the logger for watch errors.
func WithLogger(l *slog.Logger) Option {
	return func(w *Watcher) {
		if l != nil {
			w.logger = l
		}
	}
}

// New creates a watcher that calls handler for every change.
func New(handler Handler, opts ...Option) *Watcher {
	w := &Watcher{
		files:    make(map[string]bool),
		handler:  handler,
		debounce: 100 * time.Millisecond,
		logger:   slog.New(slog.DiscardHandler),
		pending:  make(map[string]*time.Timer),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Watch adds a file. The file need not exist yet.
func (w *Watcher) Watch(path string) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		return err
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	w.files[abs] = true
	if w.fsw != nil {
		return w.fsw.Add(filepath.Dir(abs))
	}
	return nil
}

// Start begins delivering events until ctx is cancelled or Stop is called.
func (w *Watcher) Start(ctx context.Context) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.fsw != nil {
		return ErrAlreadyRunning
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	for file := range w.files {
		if err := fsw.Add(filepath.Dir(file)); err != nil {
			_ = fsw.Close()
			return err
		}
	}

	ctx, cancel := context.WithCancel(ctx)
	w.fsw = fsw
	w.cancel = cancel

	w.wg.Add(1)
	go w.loop(ctx, fsw)
	return nil
}

// Stop stops the watcher and waits for the event loop to exit.
func (w *Watcher) Stop() {
	w.mu.Lock()
	if w.fsw == nil {
		w.mu.Unlock()
		return
	}
	w.cancel()
	fsw := w.fsw
	w.fsw = nil
	for path, t := range w.pending {
		t.Stop()
		delete(w.pending, path)
	}
	w.mu.Unlock()

	w.wg.Wait()
	_ = fsw.Close()
}

func (w *Watcher) loop(ctx context.Context, fsw *fsnotify.Watcher) {
	defer w.wg.Done()

	for {
		select {
		case <-ctx.Done():
			return
		case ev, ok := <-fsw.Events:
			if !ok {
				return
			}
			w.handle(ev)
		case err, ok := <-fsw.Errors:
			if !ok {
				return
			}
			w.logger.Warn("config watch error", "err", err)
		}
	}
}

func (w *Watcher) handle(ev fsnotify.Event) {
	path, err := filepath.Abs(ev.Name)
	if err != nil {
		return
	}

	var op Operation
	switch {
	case ev.Has(fsnotify.Write), ev.Has(fsnotify.Create):
		op = OpWrite
	case ev.Has(fsnotify.Remove), ev.Has(fsnotify.Rename):
		op = OpRemove
	default:
		return
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	if !w.files[path] || w.fsw == nil {
		return
	}

	if w.debounce == 0 {
		go w.handler(Event{Path: path, Op: op, Time: time.Now()})
		return
	}

	if t, ok := w.pending[path]; ok {
		t.Stop()
	}
	w.pending[path] = time.AfterFunc(w.debounce, func() {
		w.mu.Lock()
		delete(w.pending, path)
		running := w.fsw != nil
		w.mu.Unlock()

		if running {
			w.handler(Event{Path: path, Op: op, Time: time.Now()})
		}
	})
}
