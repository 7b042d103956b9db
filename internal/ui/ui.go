// Package ui renders the widget in the terminal with bubbletea and feeds
// button presses into the app's event loop.
package ui

import (
	"context"
	"errors"
	"fmt"
	"io"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/1broseidon/systool/internal/app"
)

// Options configures the widget window.
type Options struct {
	Title              string
	Width              int // abstract units; one terminal cell is 10 units
	Height             int
	ConfirmDestructive bool
	Theme              *Theme

	// Input and Output default to the process's stdin/stdout.
	Input  io.Reader
	Output io.Writer
}

// Run shows the widget until the user closes it or ctx is cancelled. The
// app must already be started.
func Run(ctx context.Context, a *app.App, opts Options) error {
	if opts.Theme == nil {
		th, err := DefaultTheme()
		if err != nil {
			return err
		}
		opts.Theme = th
	}

	// Subscribe before reading the initial text so no tick falls between the
	// two. The relay holds deliveries until the program exists.
	var p *tea.Program
	ready := make(chan struct{})
	relayCtx, stopRelay := context.WithCancel(ctx)
	defer stopRelay()
	unsubscribe := a.Subscribe(newRelay(relayCtx, func(s string) {
		<-ready
		p.Send(timeMsg(s))
	}))
	defer unsubscribe()

	m := newModel(opts, a.DisplayedTime(), a.Post)

	progOpts := []tea.ProgramOption{
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
		tea.WithContext(ctx),
	}
	if opts.Input != nil {
		progOpts = append(progOpts, tea.WithInput(opts.Input))
	}
	if opts.Output != nil {
		progOpts = append(progOpts, tea.WithOutput(opts.Output))
	}
	p = tea.NewProgram(m, progOpts...)
	close(ready)

	if _, err := p.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return fmt.Errorf("widget: %w", err)
	}
	return nil
}

// newRelay returns an observer that never blocks the event loop: it keeps
// only the latest value and a goroutine forwards it to send.
func newRelay(ctx context.Context, send func(string)) app.Observer {
	latest := make(chan string, 1)

	go func() {
		for {
			select {
			case <-ctx.Done():
				return
			case s := <-latest:
				send(s)
			}
		}
	}()

	return func(s string) {
		for {
			select {
			case latest <- s:
				return
			default:
			}
			// Drop the stale value and retry.
			select {
			case <-latest:
			default:
			}
		}
	}
}
