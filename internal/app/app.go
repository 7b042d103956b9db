// Package app holds the widget's state, its serial event loop and the timer
// that keeps the clock current.
package app

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/1broseidon/systool/internal/power"
)

// Options configures an App.
type Options struct {
	Capability   power.Capability
	Logger       *slog.Logger
	Clock        Clock
	TickInterval time.Duration
	QueueSize    int
}

// App ties the state, the loop and the ticker together and owns their
// goroutines.
type App struct {
	state    *State
	loop     *Loop
	clock    Clock
	interval time.Duration
	logger   *slog.Logger

	mu      sync.Mutex
	cancel  context.CancelFunc
	ticker  *Ticker
	started bool
}

// New creates an App with state initialised to the current time.
func New(opts Options) *App {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	state := NewState(FormatTime(opts.Clock.now()))
	handler := NewHandler(opts.Capability, state, logger)

	return &App{
		state:    state,
		loop:     NewLoop(handler, opts.QueueSize, logger),
		clock:    opts.Clock,
		interval: opts.TickInterval,
		logger:   logger,
	}
}

// Start launches the event loop and, when withTicker is set, the timer
// producer. Calling Start twice is a no-op.
func (a *App) Start(ctx context.Context, withTicker bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.started {
		return
	}
	a.started = true

	ctx, a.cancel = context.WithCancel(ctx)
	go a.loop.Run(ctx)
	if withTicker {
		a.ticker = StartTicker(ctx, a.interval, a.clock, a.loop.Post)
	}
}

// Close stops the ticker and the loop and waits for both goroutines.
func (a *App) Close() {
	a.mu.Lock()
	defer a.mu.Unlock()
	if !a.started || a.cancel == nil {
		return
	}
	a.cancel()
	if a.ticker != nil {
		a.ticker.Stop()
	}
	<-a.loop.Stopped()
	a.cancel = nil
}

// Post enqueues ev for the loop.
func (a *App) Post(ev Event) error {
	return a.loop.Post(ev)
}

// PostWait enqueues ev and waits until it has been handled.
func (a *App) PostWait(ctx context.Context, ev Event) error {
	return a.loop.PostWait(ctx, ev)
}

// Subscribe registers an observer of the displayed time.
func (a *App) Subscribe(fn Observer) func() {
	return a.state.Subscribe(fn)
}

// DisplayedTime returns the label text as of creation or the last change.
// It may be called from any goroutine, before or after Start.
func (a *App) DisplayedTime() string {
	return a.state.DisplayedTime()
}
