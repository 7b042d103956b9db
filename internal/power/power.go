// Package power exposes the host's power-state transitions behind a small
// capability interface. The default implementation talks to systemd-logind
// over the system D-Bus, [org.freedesktop.login1], and falls back to the
// systemctl/loginctl command line tools.
//
// [org.freedesktop.login1]: https://www.freedesktop.org/software/systemd/man/latest/org.freedesktop.login1.html
package power

import (
	"errors"
	"fmt"
	"os/exec"
	"strings"
)

var (
	// ErrUnavailable is returned when a backend cannot be reached at all.
	ErrUnavailable = errors.New("power backend unavailable")
	// ErrNotSupported is returned when the host reports it cannot perform an operation.
	ErrNotSupported = errors.New("operation not supported")
)

// Op names one of the five power operations.
type Op string

const (
	OpShutdown  Op = "shutdown"
	OpReboot    Op = "reboot"
	OpLogout    Op = "logout"
	OpHibernate Op = "hibernate"
	OpSleep     Op = "sleep"
)

// Ops lists every operation in button order.
func Ops() []Op {
	return []Op{OpShutdown, OpReboot, OpLogout, OpHibernate, OpSleep}
}

// Capability requests power-state transitions from the host.
// Each call is a single attempt; the error describes why it failed.
type Capability interface {
	Shutdown() error
	Reboot() error
	Logout() error
	Hibernate() error
	Sleep() error
}

// Invoke calls the capability method matching op.
func Invoke(c Capability, op Op) error {
	switch op {
	case OpShutdown:
		return c.Shutdown()
	case OpReboot:
		return c.Reboot()
	case OpLogout:
		return c.Logout()
	case OpHibernate:
		return c.Hibernate()
	case OpSleep:
		return c.Sleep()
	default:
		return fmt.Errorf("unknown power operation %q", op)
	}
}

// ParseOp converts a command line word into an Op.
func ParseOp(s string) (Op, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "shutdown", "poweroff":
		return OpShutdown, nil
	case "reboot", "restart":
		return OpReboot, nil
	case "logout":
		return OpLogout, nil
	case "hibernate":
		return OpHibernate, nil
	case "sleep", "suspend":
		return OpSleep, nil
	default:
		return "", fmt.Errorf("unknown power operation %q (expected: shutdown, reboot, logout, hibernate, sleep)", s)
	}
}

// NewBackend creates a capability by name.
//
// Supported names: auto, logind, systemctl, dry-run.
func NewBackend(name string) (Capability, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "auto":
		return AutoDetect()
	case "logind":
		return NewLogindBackend()
	case "systemctl":
		if _, err := exec.LookPath("systemctl"); err != nil {
			return nil, fmt.Errorf("%w: %q not found in PATH", ErrUnavailable, "systemctl")
		}
		return NewSystemctlBackend(), nil
	case "dry-run", "dryrun":
		return NewDryRun(), nil
	default:
		return nil, fmt.Errorf("unknown power backend: %q (expected: auto, logind, systemctl, dry-run)", name)
	}
}

// AutoDetect prefers logind on the system bus and falls back to systemctl.
func AutoDetect() (Capability, error) {
	if b, err := NewLogindBackend(); err == nil {
		return b, nil
	}
	if _, err := exec.LookPath("systemctl"); err == nil {
		return NewSystemctlBackend(), nil
	}
	return nil, fmt.Errorf("%w: no logind on the system bus and no systemctl in PATH", ErrUnavailable)
}

// Close releases backend resources when the capability holds any.
func Close(c Capability) error {
	if closer, ok := c.(interface{ Close() error }); ok {
		return closer.Close()
	}
	return nil
}
