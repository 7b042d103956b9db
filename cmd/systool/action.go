package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/huh"
	"golang.org/x/term"

	"github.com/1broseidon/systool/internal/app"
	"github.com/1broseidon/systool/internal/config"
	"github.com/1broseidon/systool/internal/logging"
	"github.com/1broseidon/systool/internal/palette"
	"github.com/1broseidon/systool/internal/power"
)

// actionTimeout bounds how long a one-shot command waits for the loop.
const actionTimeout = 30 * time.Second

func runAction(name string, args []string) int {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	path := fs.String("config", "", "Config file path (default: ~/.config/systool/config.yaml)")
	yes := fs.Bool("yes", false, "Skip the confirmation prompt")

	if isHelpArg(args) {
		fmt.Fprintf(os.Stderr, "Usage: systool %s [--config PATH] [--yes]\n", name)
		return 0
	}
	if err := fs.Parse(args); err != nil {
		return 2
	}
	if fs.NArg() > 0 {
		fmt.Fprintf(os.Stderr, "%s takes no arguments\n", name)
		return 2
	}

	op, err := power.ParseOp(name)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 2
	}

	cfg, err := loadConfig(*path)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}

	if needsConfirmation(cfg, op, *yes) {
		if !term.IsTerminal(int(os.Stdin.Fd())) {
			fmt.Fprintf(os.Stderr, "refusing to %s without --yes (confirm_destructive is enabled)\n", op)
			return 2
		}
		ok, err := confirmInTerminal(op)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			return 1
		}
		if !ok {
			return 0
		}
	}

	return performAction(cfg, op)
}

func runPalette(args []string) int {
	fs := flag.NewFlagSet("palette", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	path := fs.String("config", "", "Config file path (default: ~/.config/systool/config.yaml)")
	backendName := fs.String("backend", "", "Launcher to use: auto, rofi, fuzzel, wofi, dmenu (default: palette_backend)")

	if isHelpArg(args) {
		fmt.Fprintln(os.Stderr, "Usage: systool palette [--config PATH] [--backend NAME]")
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "Offer the power actions in rofi, fuzzel, wofi or dmenu.")
		return 0
	}
	if err := fs.Parse(args); err != nil {
		return 2
	}

	cfg, err := loadConfig(*path)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	if *backendName == "" {
		*backendName = cfg.PaletteBackend
	}

	backend, err := palette.NewBackend(*backendName)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}

	op, err := palette.ChooseAction(backend, cfg.Title, app.FormatTime(time.Now()))
	if errors.Is(err, palette.ErrCancelled) {
		return 0
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}

	if needsConfirmation(cfg, op, false) {
		ok, err := palette.Confirm(backend, cfg.Title, confirmQuestion(op))
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			return 1
		}
		if !ok {
			return 0
		}
	}

	return performAction(cfg, op)
}

// performAction posts one request through the event loop and reports its
// outcome as an exit code. Records go to stderr.
func performAction(cfg *config.Config, op power.Op) int {
	logger := logging.New(os.Stderr, cfg.LogLevel)

	capability, err := power.NewBackend(cfg.Backend)
	if err != nil {
		logger.Error("Failed to initialize power backend", "error", err)
		return 1
	}
	defer power.Close(capability)

	ctx, cancel := context.WithTimeout(context.Background(), actionTimeout)
	defer cancel()

	if err := executeAction(ctx, capability, op, logger); err != nil {
		return 1
	}
	return 0
}

// executeAction runs op through a headless app. The capability error, if
// any, has already been logged by the handler and is returned for the exit
// status only.
func executeAction(ctx context.Context, capability power.Capability, op power.Op, logger *slog.Logger) error {
	rec := &outcome{Capability: capability}
	a := app.New(app.Options{Capability: rec, Logger: logger})
	a.Start(ctx, false)
	defer a.Close()

	if err := a.PostWait(ctx, app.Request(op)); err != nil {
		return err
	}
	if !rec.called {
		return fmt.Errorf("%s was not handled", op)
	}
	return rec.err
}

func needsConfirmation(cfg *config.Config, op power.Op, yes bool) bool {
	return cfg.ConfirmDestructive && !yes && app.Request(op).Kind.Destructive()
}

func confirmQuestion(op power.Op) string {
	s := string(op)
	return strings.ToUpper(s[:1]) + s[1:] + " now?"
}

func confirmInTerminal(op power.Op) (bool, error) {
	var ok bool
	err := huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title(confirmQuestion(op)).
				Affirmative("Yes").
				Negative("No").
				Value(&ok),
		),
	).Run()
	if errors.Is(err, huh.ErrUserAborted) {
		return false, nil
	}
	return ok, err
}

// outcome remembers the result of the capability call made on the loop
// goroutine. PostWait orders the write before the read.
type outcome struct {
	power.Capability
	called bool
	err    error
}

func (o *outcome) Shutdown() error  { return o.record(o.Capability.Shutdown()) }
func (o *outcome) Reboot() error    { return o.record(o.Capability.Reboot()) }
func (o *outcome) Logout() error    { return o.record(o.Capability.Logout()) }
func (o *outcome) Hibernate() error { return o.record(o.Capability.Hibernate()) }
func (o *outcome) Sleep() error     { return o.record(o.Capability.Sleep()) }

func (o *outcome) record(err error) error {
	o.called = true
	o.err = err
	return err
}
