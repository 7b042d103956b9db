package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func writeConfig(t *testing.T, data string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		t.Fatalf("write: %v", err)
	}
	return path
}

func TestDefaultConfig_Valid(t *testing.T) {
	cfg := DefaultConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("expected defaults to validate, got %v", err)
	}
	if cfg.Title != "System Tool" || cfg.Width != 300 || cfg.Height != 100 {
		t.Fatalf("unexpected window defaults: %q %dx%d", cfg.Title, cfg.Width, cfg.Height)
	}
	if cfg.TickInterval.Std() != time.Second {
		t.Fatalf("expected 1s tick, got %s", cfg.TickInterval.Std())
	}
	if cfg.ConfirmDestructive {
		t.Fatal("confirmation must be off by default")
	}
}

func TestLoadFromPath_MissingFileUsesDefaults(t *testing.T) {
	t.Setenv("XDG_DATA_HOME", "/tmp/data")
	res, err := LoadFromPath(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if res.File != "" {
		t.Fatalf("expected no file, got %q", res.File)
	}
	if res.Config.Logging.File != "/tmp/data/systool/systool.log" {
		t.Fatalf("log file = %q", res.Config.Logging.File)
	}
}

func TestLoadFromPath_EmptyFileUsesDefaults(t *testing.T) {
	path := writeConfig(t, "# empty\n")
	res, err := LoadFromPath(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if res.Config.Backend != "auto" {
		t.Fatalf("expected backend auto, got %q", res.Config.Backend)
	}
	if res.File != path {
		t.Fatalf("File = %q, want %q", res.File, path)
	}
}

func TestLoadFromPath_Overrides(t *testing.T) {
	path := writeConfig(t, strings.Join([]string{
		"title: Power",
		"tick_interval: 500ms",
		"backend: dry-run",
		"confirm_destructive: true",
		"log_level: debug",
		"logging:",
		"  file: /tmp/x.log",
		"  max_files: 5",
		"host_window:",
		"  manage: true",
		"  resize: true",
		"",
	}, "\n"))

	res, err := LoadFromPath(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	cfg := res.Config
	if cfg.Title != "Power" || cfg.Backend != "dry-run" || !cfg.ConfirmDestructive {
		t.Fatalf("overrides not applied: %+v", cfg)
	}
	if cfg.TickInterval.Std() != 500*time.Millisecond {
		t.Fatalf("tick_interval = %s", cfg.TickInterval.Std())
	}
	if cfg.Logging.File != "/tmp/x.log" || cfg.Logging.MaxFiles != 5 || cfg.Logging.MaxSizeMB != DefaultLogMaxSizeMB {
		t.Fatalf("logging = %+v", cfg.Logging)
	}
	if cfg.Width != DefaultWidth {
		t.Fatalf("unset width should keep default, got %d", cfg.Width)
	}
	if !cfg.HostWindow.Manage || !cfg.HostWindow.Resize {
		t.Fatalf("host_window = %+v", cfg.HostWindow)
	}
}

func TestLoadFromPath_Errors(t *testing.T) {
	tests := []struct {
		name string
		data string
		want string
	}{
		{"unknown field", "colour: red\n", "field colour not found"},
		{"bad duration", "tick_interval: soon\n", "invalid duration"},
		{"short interval", "tick_interval: 10ms\n", "tick_interval must be between"},
		{"bad backend", "backend: acpi\n", "invalid backend"},
		{"bad palette", "palette_backend: zenity\n", "invalid palette_backend"},
		{"bad level", "log_level: loud\n", "invalid log_level"},
		{"zero size", "width: 0\n", "width and height must be positive"},
		{"resize without manage", "host_window:\n  resize: true\n", "requires host_window.manage"},
		{"empty title", "title: \"  \"\n", "title must not be empty"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeConfig(t, tt.data)
			_, err := LoadFromPath(path)
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Fatalf("error %q does not contain %q", err, tt.want)
			}
			if !strings.Contains(err.Error(), path) {
				t.Fatalf("error %q should name the file", err)
			}
		})
	}
}

func TestDefaultConfigPath_HonorsXDG(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/tmp/cfg")
	path, err := DefaultConfigPath()
	if err != nil {
		t.Fatalf("DefaultConfigPath: %v", err)
	}
	if path != "/tmp/cfg/systool/config.yaml" {
		t.Fatalf("path = %q", path)
	}
}

func TestMarshal_RoundTripsDuration(t *testing.T) {
	cfg := DefaultConfig()
	cfg.TickInterval = Duration(2 * time.Second)
	out, err := Marshal(cfg)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	if !strings.Contains(string(out), "tick_interval: 2s") {
		t.Fatalf("expected tick_interval: 2s in\n%s", out)
	}

	path := writeConfig(t, string(out))
	res, err := LoadFromPath(path)
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	if res.Config.TickInterval.Std() != 2*time.Second {
		t.Fatalf("tick_interval = %s", res.Config.TickInterval.Std())
	}
}
