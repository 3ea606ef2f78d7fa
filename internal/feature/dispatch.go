package feature

import (
	"errors"
	"fmt"
	"log/slog"
	"runtime/debug"
	"sync/atomic"

	"github.com/dshills/gridkit/internal/event"
)

// PanicHandler is called after a handler panic has been recovered.
type PanicHandler func(alias string, ev *event.Event, value any, stack []byte)

// Dispatcher walks a chain for each event.
type Dispatcher struct {
	chain        *Chain
	logger       *slog.Logger
	panicHandler PanicHandler

	dispatched atomic.Uint64
	handled    atomic.Uint64
	unhandled  atomic.Uint64
	failed     atomic.Uint64
	panicked   atomic.Uint64
}

// Option configures a Dispatcher.
type Option func(*Dispatcher)

// WithLogger sets the logger for handler faults and malformed chains.
func WithLogger(logger *slog.Logger) Option {
	return func(d *Dispatcher) {
		if logger != nil {
			d.logger = logger
		}
	}
}

// WithPanicHandler sets a callback invoked for every recovered panic.
func WithPanicHandler(h PanicHandler) Option {
	return func(d *Dispatcher) {
		d.panicHandler = h
	}
}

// NewDispatcher creates a dispatcher for chain.
func NewDispatcher(chain *Chain, opts ...Option) *Dispatcher {
	d := &Dispatcher{
		chain:  chain,
		logger: slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Chain returns the chain this dispatcher walks.
func (d *Dispatcher) Chain() *Chain {
	return d.chain
}

// Dispatch offers ev to each feature from head to tail.
//
// The walk stops at the first handler that returns StatusHandled. A
// StatusError result or a panic abandons the event and is returned as a
// *HandlerError; the chain itself is left intact for the next event. If no
// feature claims the event, Dispatch returns nil and nothing happens.
func (d *Dispatcher) Dispatch(g Grid, ev *event.Event) error {
	if ev == nil {
		return ErrNilEvent
	}
	d.dispatched.Add(1)

	kind := ev.Kind()
	var herr *HandlerError
	claimed := false

	err := d.chain.Walk(func(f Feature) bool {
		handle, ok := HandlerFor(f, kind)
		if !ok {
			return true
		}

		result, perr := d.invoke(f.Alias(), handle, g, ev)
		if perr != nil {
			herr = perr
			return false
		}

		switch result.Status {
		case StatusHandled:
			claimed = true
			if result.Message != "" {
				d.logger.Debug("event handled",
					"feature", f.Alias(),
					"kind", kind.String(),
					"message", result.Message,
				)
			}
			return false
		case StatusError:
			cause := result.Error
			if cause == nil {
				cause = errors.New("handler returned error status")
			}
			herr = &HandlerError{Alias: f.Alias(), Kind: kind, Err: cause}
			return false
		default:
			return true
		}
	})

	if err != nil {
		d.failed.Add(1)
		d.logger.Error("feature chain walk aborted",
			"kind", kind.String(),
			"features", d.chain.Len(),
			"error", err,
		)
		return err
	}

	if herr != nil {
		d.failed.Add(1)
		attrs := []any{
			"feature", herr.Alias,
			"kind", kind.String(),
			"event", ev.String(),
			"error", herr.Err,
		}
		if herr.Stack != nil {
			d.panicked.Add(1)
			attrs = append(attrs, "stack", string(herr.Stack))
		}
		d.logger.Error("feature handler failed", attrs...)
		return herr
	}

	if claimed {
		d.handled.Add(1)
	} else {
		d.unhandled.Add(1)
	}
	return nil
}

// invoke runs one handler, converting a panic into a HandlerError.
func (d *Dispatcher) invoke(alias string, handle HandlerFunc, g Grid, ev *event.Event) (result Result, herr *HandlerError) {
	defer func() {
		r := recover()
		if r == nil {
			return
		}
		stack := debug.Stack()
		herr = &HandlerError{
			Alias: alias,
			Kind:  ev.Kind(),
			Err:   fmt.Errorf("%w: %v", ErrHandlerPanic, r),
			Stack: stack,
		}

		if d.panicHandler != nil {
			func() {
				defer func() {
					_ = recover()
				}()
				d.panicHandler(alias, ev, r, stack)
			}()
		}
	}()

	return handle(g, ev), nil
}

// Stats is a snapshot of dispatch counters.
type Stats struct {
	Dispatched uint64
	Handled    uint64
	Unhandled  uint64
	Failed     uint64
	Panicked   uint64
}

// Stats returns the current counters.
func (d *Dispatcher) Stats() Stats {
	return Stats{
		Dispatched: d.dispatched.Load(),
		Handled:    d.handled.Load(),
		Unhandled:  d.unhandled.Load(),
		Failed:     d.failed.Load(),
		Panicked:   d.panicked.Load(),
	}
}

// ResetStats zeroes the counters.
func (d *Dispatcher) ResetStats() {
	d.dispatched.Store(0)
	d.handled.Store(0)
	d.unhandled.Store(0)
	d.failed.Store(0)
	d.panicked.Store(0)
}
