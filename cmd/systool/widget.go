package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"golang.org/x/term"

	"github.com/1broseidon/systool/internal/app"
	"github.com/1broseidon/systool/internal/config"
	"github.com/1broseidon/systool/internal/logging"
	"github.com/1broseidon/systool/internal/platform"
	"github.com/1broseidon/systool/internal/power"
	"github.com/1broseidon/systool/internal/runtimepath"
	"github.com/1broseidon/systool/internal/ui"
)

func runWidget(args []string) int {
	fs := flag.NewFlagSet("run", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	path := fs.String("config", "", "Config file path (default: ~/.config/systool/config.yaml)")

	if isHelpArg(args) {
		fmt.Fprintln(os.Stderr, "Usage: systool run [--config PATH]")
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "Show the clock and the power buttons.")
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "Keybindings:")
		fmt.Fprintln(os.Stderr, "  ↑/↓, Tab   Move focus")
		fmt.Fprintln(os.Stderr, "  Enter      Press focused button")
		fmt.Fprintln(os.Stderr, "  1-5        Press button directly")
		fmt.Fprintln(os.Stderr, "  q, Esc     Quit")
		fmt.Fprintln(os.Stderr, "  Ctrl+C     Quit")
		return 0
	}
	if err := fs.Parse(args); err != nil {
		return 2
	}

	if !term.IsTerminal(int(os.Stdin.Fd())) || !term.IsTerminal(int(os.Stdout.Fd())) {
		fmt.Fprintln(os.Stderr, "systool run requires an interactive terminal")
		return 1
	}

	res, cfgPath, err := resolveConfig(*path)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	cfg := res.Config

	lockPath, err := runtimepath.LockPath()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	lock, err := runtimepath.Acquire(lockPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	defer lock.Release()

	// The widget owns the terminal, so records go to the log file.
	logFile, err := logging.OpenFile(logging.FileConfig{
		Path:      cfg.Logging.File,
		MaxSizeMB: cfg.Logging.MaxSizeMB,
		MaxFiles:  cfg.Logging.MaxFiles,
	})
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	defer logFile.Close()
	logger := logging.New(logFile, cfg.LogLevel)

	capability, err := power.NewBackend(cfg.Backend)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize power backend: %v\n", err)
		return 1
	}
	defer power.Close(capability)

	theme, err := ui.DefaultTheme()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load style sheet: %v\n", err)
		return 1
	}

	if cfg.HostWindow.Manage {
		prepareHostWindow(cfg, logger)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a := app.New(app.Options{
		Capability:   capability,
		Logger:       logger,
		TickInterval: cfg.TickInterval.Std(),
	})
	a.Start(ctx, true)
	defer a.Close()

	logger.Info("widget started", "backend", cfg.Backend, "config", configSource(res, cfgPath))
	err = ui.Run(ctx, a, ui.Options{
		Title:              cfg.Title,
		Width:              cfg.Width,
		Height:             cfg.Height,
		ConfirmDestructive: cfg.ConfirmDestructive,
		Theme:              theme,
	})
	if err != nil {
		logger.Error("widget stopped", "error", err)
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	logger.Info("widget closed")
	return 0
}

// prepareHostWindow names and optionally resizes the terminal window. Failure
// is logged and otherwise ignored; the widget works in any terminal.
func prepareHostWindow(cfg *config.Config, logger *slog.Logger) {
	backend, err := platform.Connect()
	if err != nil {
		if errors.Is(err, platform.ErrUnsupported) {
			logger.Debug("host window management unavailable", "error", err)
			return
		}
		logger.Warn("host window management unavailable", "error", err)
		return
	}
	defer backend.Disconnect()

	err = platform.PrepareHost(backend, platform.HostOptions{
		Title:  cfg.Title,
		Width:  cfg.Width,
		Height: cfg.Height,
		Resize: cfg.HostWindow.Resize,
	})
	if err != nil {
		logger.Warn("failed to prepare host window", "error", err)
	}
}
