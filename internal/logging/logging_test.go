package logging

import (
	"bytes"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestParseLevel(t *testing.T) {
	cases := map[string]slog.Level{
		"debug":   slog.LevelDebug,
		"INFO":    slog.LevelInfo,
		"warning": slog.LevelWarn,
		"error":   slog.LevelError,
		"bogus":   slog.LevelInfo,
	}
	for in, want := range cases {
		if got := ParseLevel(in); got != want {
			t.Fatalf("ParseLevel(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestNew_FiltersByLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := New(&buf, "warn")
	logger.Info("hidden")
	logger.Error("Failed to sleep: nope")

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Fatalf("info should be filtered: %q", out)
	}
	if !strings.Contains(out, "Failed to sleep: nope") {
		t.Fatalf("expected error line, got %q", out)
	}
}

func TestRotatingFile_Rotates(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "logs", "systool.log")
	rf, err := OpenFile(FileConfig{Path: path, MaxSizeMB: 1, MaxFiles: 2})
	if err != nil {
		t.Fatalf("OpenFile: %v", err)
	}
	defer rf.Close()

	// Shrink the threshold so the test does not write megabytes.
	rf.maxBytes = 10

	for _, line := range []string{"first-line\n", "second-line\n", "third-line\n", "fourth-line\n"} {
		if _, err := rf.Write([]byte(line)); err != nil {
			t.Fatalf("Write: %v", err)
		}
	}

	read := func(p string) string {
		data, err := os.ReadFile(p)
		if err != nil {
			t.Fatalf("read %s: %v", p, err)
		}
		return string(data)
	}
	if got := read(path); got != "fourth-line\n" {
		t.Fatalf("current = %q", got)
	}
	if got := read(path + ".1"); got != "third-line\n" {
		t.Fatalf(".1 = %q", got)
	}
	if got := read(path + ".2"); got != "second-line\n" {
		t.Fatalf(".2 = %q", got)
	}
	if _, err := os.Stat(path + ".3"); !os.IsNotExist(err) {
		t.Fatalf("expected no .3, got %v", err)
	}
}

func TestRotatingFile_WriteAfterClose(t *testing.T) {
	rf, err := OpenFile(FileConfig{Path: filepath.Join(t.TempDir(), "a.log")})
	if err != nil {
		t.Fatalf("OpenFile: %v", err)
	}
	if err := rf.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if _, err := rf.Write([]byte("x")); err == nil {
		t.Fatal("expected error after close")
	}
	if err := rf.Close(); err != nil {
		t.Fatalf("second Close: %v", err)
	}
}
