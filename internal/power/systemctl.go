package power

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"
)

// runFunc executes a command and returns its trimmed stderr on failure.
type runFunc func(name string, args ...string) error

// SystemctlBackend shells out to systemctl and loginctl.
type SystemctlBackend struct {
	run       runFunc
	sessionID string
	user      string
}

var _ Capability = (*SystemctlBackend)(nil)

// NewSystemctlBackend creates a command line backend.
func NewSystemctlBackend() *SystemctlBackend {
	return &SystemctlBackend{
		run:       runCommand,
		sessionID: os.Getenv("XDG_SESSION_ID"),
		user:      os.Getenv("USER"),
	}
}

func (b *SystemctlBackend) Shutdown() error {
	return b.run("systemctl", "poweroff")
}

func (b *SystemctlBackend) Reboot() error {
	return b.run("systemctl", "reboot")
}

func (b *SystemctlBackend) Hibernate() error {
	return b.run("systemctl", "hibernate")
}

func (b *SystemctlBackend) Sleep() error {
	return b.run("systemctl", "suspend")
}

func (b *SystemctlBackend) Logout() error {
	if b.sessionID != "" {
		return b.run("loginctl", "terminate-session", b.sessionID)
	}
	if b.user != "" {
		return b.run("loginctl", "terminate-user", b.user)
	}
	return errors.New("no session: neither XDG_SESSION_ID nor USER is set")
}

func runCommand(name string, args ...string) error {
	cmd := exec.Command(name, args...)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			return errors.New(msg)
		}
		return fmt.Errorf("%s %s: %w", name, strings.Join(args, " "), err)
	}
	return nil
}
