package power

import (
	"errors"
	"strings"
	"testing"

	"github.com/godbus/dbus/v5"
)

type fakeBus struct {
	answers map[string]string
	errs    map[string]error
	calls   []string
	args    map[string][]interface{}
	session dbus.ObjectPath
}

func newFakeBus() *fakeBus {
	return &fakeBus{
		answers: map[string]string{},
		errs:    map[string]error{},
		args:    map[string][]interface{}{},
	}
}

func (f *fakeBus) Call(method string, _ dbus.Flags, args ...interface{}) *dbus.Call {
	f.calls = append(f.calls, method)
	f.args[method] = args
	if err := f.errs[method]; err != nil {
		return &dbus.Call{Err: err}
	}
	if answer, ok := f.answers[method]; ok {
		return &dbus.Call{Body: []interface{}{answer}}
	}
	if strings.HasSuffix(method, ".GetSessionByPID") {
		return &dbus.Call{Body: []interface{}{f.session}}
	}
	return &dbus.Call{}
}

func newTestLogind(bus *fakeBus) *LogindBackend {
	return &LogindBackend{
		manager: bus,
		object:  func(dbus.ObjectPath) caller { return bus },
		pid:     42,
	}
}

func TestLogindBackend_PowerOffWhenAllowed(t *testing.T) {
	bus := newFakeBus()
	bus.answers[logindManager+".CanPowerOff"] = "yes"
	b := newTestLogind(bus)

	if err := b.Shutdown(); err != nil {
		t.Fatalf("Shutdown: %v", err)
	}
	last := bus.calls[len(bus.calls)-1]
	if last != logindManager+".PowerOff" {
		t.Fatalf("last call = %q, want PowerOff", last)
	}
	if args := bus.args[last]; len(args) != 1 || args[0] != false {
		t.Fatalf("expected interactive=false, got %v", args)
	}
}

func TestLogindBackend_RefusesUnsupported(t *testing.T) {
	bus := newFakeBus()
	bus.answers[logindManager+".CanHibernate"] = "na"
	b := newTestLogind(bus)

	err := b.Hibernate()
	if !errors.Is(err, ErrNotSupported) {
		t.Fatalf("expected ErrNotSupported, got %v", err)
	}
	for _, c := range bus.calls {
		if c == logindManager+".Hibernate" {
			t.Fatal("Hibernate must not be called when CanHibernate=na")
		}
	}
}

func TestLogindBackend_RefusesDenied(t *testing.T) {
	bus := newFakeBus()
	bus.answers[logindManager+".CanSuspend"] = "no"
	b := newTestLogind(bus)

	err := b.Sleep()
	if err == nil || !strings.Contains(err.Error(), "permission denied") {
		t.Fatalf("expected permission denied, got %v", err)
	}
}

func TestLogindBackend_ChallengeIsAttempted(t *testing.T) {
	bus := newFakeBus()
	bus.answers[logindManager+".CanReboot"] = "challenge"
	bus.errs[logindManager+".Reboot"] = errors.New("Interactive authentication required.")
	b := newTestLogind(bus)

	err := b.Reboot()
	if err == nil || err.Error() != "Interactive authentication required." {
		t.Fatalf("expected polkit error, got %v", err)
	}
}

func TestLogindBackend_LogoutBySessionID(t *testing.T) {
	bus := newFakeBus()
	b := newTestLogind(bus)
	b.sessionID = "3"

	if err := b.Logout(); err != nil {
		t.Fatalf("Logout: %v", err)
	}
	args := bus.args[logindManager+".TerminateSession"]
	if len(args) != 1 || args[0] != "3" {
		t.Fatalf("TerminateSession args = %v", args)
	}
}

func TestLogindBackend_LogoutByPID(t *testing.T) {
	bus := newFakeBus()
	bus.session = dbus.ObjectPath("/org/freedesktop/login1/session/_33")
	b := newTestLogind(bus)

	if err := b.Logout(); err != nil {
		t.Fatalf("Logout: %v", err)
	}
	if args := bus.args[logindManager+".GetSessionByPID"]; len(args) != 1 || args[0] != uint32(42) {
		t.Fatalf("GetSessionByPID args = %v", args)
	}
	last := bus.calls[len(bus.calls)-1]
	if last != logindSessionIf+".Terminate" {
		t.Fatalf("last call = %q, want Session.Terminate", last)
	}
}
