package app

import (
	"context"
	"time"
)

// DefaultTickInterval is the clock refresh period.
const DefaultTickInterval = time.Second

// Ticker is the handle of the timer producer goroutine.
type Ticker struct {
	cancel context.CancelFunc
	done   chan struct{}
}

// StartTicker emits a TimeTick through post every interval until ctx is
// cancelled, Stop is called, or post reports the loop is gone. A
// time.Ticker drives the cadence so scheduling delays do not accumulate.
func StartTicker(ctx context.Context, interval time.Duration, clock Clock, post func(Event) error) *Ticker {
	if interval <= 0 {
		interval = DefaultTickInterval
	}
	ctx, cancel := context.WithCancel(ctx)
	t := &Ticker{
		cancel: cancel,
		done:   make(chan struct{}),
	}

	go func() {
		defer close(t.done)
		tk := time.NewTicker(interval)
		defer tk.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-tk.C:
				if err := post(Tick(clock.now())); err != nil {
					return
				}
			}
		}
	}()

	return t
}

// Stop cancels the producer and waits for it to exit.
func (t *Ticker) Stop() {
	t.cancel()
	<-t.done
}

// Done is closed when the producer goroutine has exited.
func (t *Ticker) Done() <-chan struct{} {
	return t.done
}
