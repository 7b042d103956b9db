package app

import (
	"context"
	"errors"
	"log/slog"
)

// ErrStopped is returned when posting to a loop that has exited.
var ErrStopped = errors.New("event loop stopped")

type envelope struct {
	ev   Event
	done chan struct{}
}

// Loop is the single consumer of events. Every event is handled to
// completion before the next one is received.
type Loop struct {
	events  chan envelope
	handler *Handler
	logger  *slog.Logger
	stopped chan struct{}
}

// NewLoop creates a loop with a queue of the given capacity.
func NewLoop(handler *Handler, capacity int, logger *slog.Logger) *Loop {
	if capacity <= 0 {
		capacity = 16
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Loop{
		events:  make(chan envelope, capacity),
		handler: handler,
		logger:  logger,
		stopped: make(chan struct{}),
	}
}

// Run processes events until ctx is cancelled. Blocks.
func (l *Loop) Run(ctx context.Context) {
	defer close(l.stopped)

	l.logger.Debug("event loop started")
	for {
		select {
		case <-ctx.Done():
			l.logger.Debug("event loop stopped")
			return
		case env := <-l.events:
			l.dispatch(env)
		}
	}
}

// Post enqueues ev without waiting for it to be handled. It is safe to call
// from any goroutine.
func (l *Loop) Post(ev Event) error {
	select {
	case <-l.stopped:
		return ErrStopped
	default:
	}
	select {
	case <-l.stopped:
		return ErrStopped
	case l.events <- envelope{ev: ev}:
		return nil
	}
}

// PostWait enqueues ev and waits until the handler has finished with it.
func (l *Loop) PostWait(ctx context.Context, ev Event) error {
	select {
	case <-l.stopped:
		return ErrStopped
	default:
	}

	env := envelope{ev: ev, done: make(chan struct{})}
	select {
	case <-l.stopped:
		return ErrStopped
	case <-ctx.Done():
		return ctx.Err()
	case l.events <- env:
	}

	select {
	case <-env.done:
		return nil
	case <-l.stopped:
		return ErrStopped
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Stopped is closed once Run has returned.
func (l *Loop) Stopped() <-chan struct{} {
	return l.stopped
}

func (l *Loop) dispatch(env envelope) {
	if env.done != nil {
		defer close(env.done)
	}
	// A panicking capability must not take the loop down with it.
	defer func() {
		if err := recover(); err != nil {
			l.logger.Error("event handler panic recovered", "event", env.ev.Kind.String(), "error", err)
		}
	}()
	l.handler.Handle(env.ev)
}
