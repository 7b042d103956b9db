package config

import (
	"fmt"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	DefaultTitle        = "System Tool"
	DefaultWidth        = 300
	DefaultHeight       = 100
	DefaultTickInterval = time.Second

	DefaultLogMaxSizeMB = 10
	DefaultLogMaxFiles  = 3
)

// Duration is a time.Duration written as a Go duration string in YAML.
type Duration time.Duration

// UnmarshalYAML accepts "1s", "500ms" and similar.
func (d *Duration) UnmarshalYAML(node *yaml.Node) error {
	var s string
	if err := node.Decode(&s); err != nil {
		return fmt.Errorf("line %d: duration must be a string like \"1s\"", node.Line)
	}
	parsed, err := time.ParseDuration(strings.TrimSpace(s))
	if err != nil {
		return fmt.Errorf("line %d: invalid duration %q: %w", node.Line, s, err)
	}
	*d = Duration(parsed)
	return nil
}

// MarshalYAML writes the duration back as a string.
func (d Duration) MarshalYAML() (interface{}, error) {
	return time.Duration(d).String(), nil
}

// Std returns the value as a time.Duration.
func (d Duration) Std() time.Duration {
	return time.Duration(d)
}

// LoggingConfig configures the widget's log file.
type LoggingConfig struct {
	// File is the log file path (default: ~/.local/share/systool/systool.log)
	File string `yaml:"file,omitempty"`
	// MaxSizeMB is the maximum log file size before rotation (default: 10)
	MaxSizeMB int `yaml:"max_size_mb,omitempty"`
	// MaxFiles is the number of rotated files to keep (default: 3)
	MaxFiles int `yaml:"max_files,omitempty"`
}

// HostWindowConfig controls what systool does to the X11 window hosting the
// terminal it runs in.
type HostWindowConfig struct {
	// Manage sets the host window title to Title.
	Manage bool `yaml:"manage"`
	// Resize additionally resizes the host window to Width x Height pixels
	// and centers it on the active monitor.
	Resize bool `yaml:"resize"`
}

// Config holds the application configuration.
type Config struct {
	Title              string           `yaml:"title"`
	// Width and Height are pixels for the host window; the terminal layout
	// uses one cell per 10 units.
	Width              int              `yaml:"width"`
	Height             int              `yaml:"height"`
	TickInterval       Duration         `yaml:"tick_interval"`
	Backend            string           `yaml:"backend"`
	ConfirmDestructive bool             `yaml:"confirm_destructive"`
	PaletteBackend     string           `yaml:"palette_backend"`
	LogLevel           string           `yaml:"log_level"`
	Logging            LoggingConfig    `yaml:"logging,omitempty"`
	HostWindow         HostWindowConfig `yaml:"host_window"`
}

func DefaultConfig() *Config {
	return &Config{
		Title:          DefaultTitle,
		Width:          DefaultWidth,
		Height:         DefaultHeight,
		TickInterval:   Duration(DefaultTickInterval),
		Backend:        "auto",
		PaletteBackend: "auto",
		LogLevel:       "info",
		Logging: LoggingConfig{
			MaxSizeMB: DefaultLogMaxSizeMB,
			MaxFiles:  DefaultLogMaxFiles,
		},
	}
}

var (
	validBackends        = []string{"auto", "logind", "systemctl", "dry-run"}
	validPaletteBackends = []string{"auto", "rofi", "fuzzel", "wofi", "dmenu"}
	validLogLevels       = []string{"debug", "info", "warn", "warning", "error"}
)

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Title) == "" {
		return fmt.Errorf("title must not be empty")
	}
	if c.Width <= 0 || c.Height <= 0 {
		return fmt.Errorf("width and height must be positive (got %dx%d)", c.Width, c.Height)
	}

	interval := c.TickInterval.Std()
	if interval < 100*time.Millisecond || interval > time.Minute {
		return fmt.Errorf("tick_interval must be between 100ms and 1m (got %s)", interval)
	}

	if !oneOf(c.Backend, validBackends) {
		return fmt.Errorf("invalid backend %q (expected: %s)", c.Backend, strings.Join(validBackends, ", "))
	}
	if !oneOf(c.PaletteBackend, validPaletteBackends) {
		return fmt.Errorf("invalid palette_backend %q (expected: %s)", c.PaletteBackend, strings.Join(validPaletteBackends, ", "))
	}
	if !oneOf(strings.ToLower(c.LogLevel), validLogLevels) {
		return fmt.Errorf("invalid log_level %q (expected: debug, info, warn, error)", c.LogLevel)
	}

	if c.Logging.MaxSizeMB < 1 {
		return fmt.Errorf("logging.max_size_mb must be >= 1")
	}
	if c.Logging.MaxFiles < 1 {
		return fmt.Errorf("logging.max_files must be >= 1")
	}

	if c.HostWindow.Resize && !c.HostWindow.Manage {
		return fmt.Errorf("host_window.resize requires host_window.manage")
	}
	return nil
}

func oneOf(v string, allowed []string) bool {
	for _, a := range allowed {
		if v == a {
			return true
		}
	}
	return false
}
