package power

import (
	"fmt"
	"os"

	"github.com/godbus/dbus/v5"
)

const (
	logindDest      = "org.freedesktop.login1"
	logindPath      = dbus.ObjectPath("/org/freedesktop/login1")
	logindManager   = "org.freedesktop.login1.Manager"
	logindSessionIf = "org.freedesktop.login1.Session"
)

// caller is the subset of dbus.BusObject used by the logind backend.
type caller interface {
	Call(method string, flags dbus.Flags, args ...interface{}) *dbus.Call
}

// LogindBackend drives systemd-logind through the system bus.
type LogindBackend struct {
	conn    *dbus.Conn
	manager caller
	object  func(path dbus.ObjectPath) caller

	sessionID string
	pid       uint32
}

var _ Capability = (*LogindBackend)(nil)

// NewLogindBackend connects to the system bus.
func NewLogindBackend() (*LogindBackend, error) {
	conn, err := dbus.ConnectSystemBus()
	if err != nil {
		return nil, fmt.Errorf("%w: connect system bus: %v", ErrUnavailable, err)
	}
	b := &LogindBackend{
		conn:      conn,
		manager:   conn.Object(logindDest, logindPath),
		sessionID: os.Getenv("XDG_SESSION_ID"),
		pid:       uint32(os.Getpid()),
	}
	b.object = func(path dbus.ObjectPath) caller {
		return conn.Object(logindDest, path)
	}

	// Probe the manager so "auto" can fall back when logind is absent.
	if _, err := b.can("CanPowerOff"); err != nil {
		conn.Close()
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return b, nil
}

// Close disconnects from the system bus.
func (b *LogindBackend) Close() error {
	if b == nil || b.conn == nil {
		return nil
	}
	return b.conn.Close()
}

func (b *LogindBackend) Shutdown() error {
	return b.transition("CanPowerOff", "PowerOff")
}

func (b *LogindBackend) Reboot() error {
	return b.transition("CanReboot", "Reboot")
}

func (b *LogindBackend) Hibernate() error {
	return b.transition("CanHibernate", "Hibernate")
}

func (b *LogindBackend) Sleep() error {
	return b.transition("CanSuspend", "Suspend")
}

// Logout terminates the caller's session. XDG_SESSION_ID is used when set;
// otherwise the session is looked up from our PID.
func (b *LogindBackend) Logout() error {
	if b.sessionID != "" {
		return b.manager.Call(logindManager+".TerminateSession", 0, b.sessionID).Err
	}

	var path dbus.ObjectPath
	if err := b.manager.Call(logindManager+".GetSessionByPID", 0, b.pid).Store(&path); err != nil {
		return fmt.Errorf("resolve session: %w", err)
	}
	return b.object(path).Call(logindSessionIf+".Terminate", 0).Err
}

// transition checks the Can* answer before calling method. logind answers
// "yes", "no", "challenge" or "na"; "challenge" is left to polkit.
func (b *LogindBackend) transition(check, method string) error {
	answer, err := b.can(check)
	if err != nil {
		return err
	}
	switch answer {
	case "na":
		return fmt.Errorf("%w (%s=%s)", ErrNotSupported, check, answer)
	case "no":
		return fmt.Errorf("permission denied (%s=%s)", check, answer)
	}

	// interactive=false: never block on a polkit agent prompt.
	return b.manager.Call(logindManager+"."+method, 0, false).Err
}

func (b *LogindBackend) can(check string) (string, error) {
	var answer string
	if err := b.manager.Call(logindManager+"."+check, 0).Store(&answer); err != nil {
		return "", err
	}
	return answer, nil
}
