package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/1broseidon/systool/internal/config"
)

// loadConfig reads path, or the default location when path is empty.
func loadConfig(path string) (*config.Config, error) {
	res, _, err := resolveConfig(path)
	if err != nil {
		return nil, err
	}
	return res.Config, nil
}

// resolveConfig is loadConfig that also returns the path it looked at.
func resolveConfig(path string) (*config.LoadResult, string, error) {
	if path == "" {
		var err error
		if path, err = config.DefaultConfigPath(); err != nil {
			return nil, "", err
		}
	}
	res, err := config.LoadFromPath(path)
	if err != nil {
		return nil, path, err
	}
	return res, path, nil
}

// configSource describes where the effective configuration came from.
func configSource(res *config.LoadResult, path string) string {
	if res.File == "" {
		return path + " (not found, using defaults)"
	}
	return res.File
}

func runConfig(args []string) int {
	if len(args) == 0 || isHelpArg(args) {
		fmt.Fprintln(os.Stderr, "Usage:")
		fmt.Fprintln(os.Stderr, "  systool config validate [--config PATH]")
		fmt.Fprintln(os.Stderr, "  systool config print [--config PATH] [--defaults]")
		return 2
	}

	switch args[0] {
	case "validate":
		fs := flag.NewFlagSet("validate", flag.ContinueOnError)
		fs.SetOutput(os.Stderr)
		path := fs.String("config", "", "Config file path (default: ~/.config/systool/config.yaml)")
		if err := fs.Parse(args[1:]); err != nil {
			return 2
		}

		if _, err := loadConfig(*path); err != nil {
			fmt.Fprintln(os.Stderr, err)
			return 1
		}
		fmt.Println("config: ok")
		return 0

	case "print":
		fs := flag.NewFlagSet("print", flag.ContinueOnError)
		fs.SetOutput(os.Stderr)
		path := fs.String("config", "", "Config file path (default: ~/.config/systool/config.yaml)")
		printDefaults := fs.Bool("defaults", false, "Print built-in defaults (no files)")
		if err := fs.Parse(args[1:]); err != nil {
			return 2
		}

		cfg := config.DefaultConfig()
		if !*printDefaults {
			var err error
			if cfg, err = loadConfig(*path); err != nil {
				fmt.Fprintln(os.Stderr, err)
				return 1
			}
		}
		data, err := config.Marshal(cfg)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			return 1
		}
		fmt.Print(string(data))
		return 0

	default:
		fmt.Fprintf(os.Stderr, "Unknown config command: %s\n", args[0])
		return 2
	}
}
