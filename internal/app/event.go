package app

import (
	"time"

	"github.com/1broseidon/systool/internal/power"
)

// EventKind identifies what an Event asks the handler to do.
type EventKind int

const (
	RequestShutdown EventKind = iota
	RequestReboot
	RequestLogout
	RequestHibernate
	RequestSleep
	TimeTick
)

func (k EventKind) String() string {
	switch k {
	case RequestShutdown:
		return "RequestShutdown"
	case RequestReboot:
		return "RequestReboot"
	case RequestLogout:
		return "RequestLogout"
	case RequestHibernate:
		return "RequestHibernate"
	case RequestSleep:
		return "RequestSleep"
	case TimeTick:
		return "TimeTick"
	default:
		return "Unknown"
	}
}

// Event is a message for the event loop. At is only meaningful for TimeTick
// and holds the instant the tick was produced.
type Event struct {
	Kind EventKind
	At   time.Time
}

// Tick builds a TimeTick event for instant at.
func Tick(at time.Time) Event {
	return Event{Kind: TimeTick, At: at}
}

// Request builds the request event for a power operation.
func Request(op power.Op) Event {
	for kind, a := range actions {
		if a.op == op {
			return Event{Kind: kind}
		}
	}
	return Event{Kind: EventKind(-1)}
}

// action describes how a request event maps onto the capability.
type action struct {
	op      power.Op
	success string
	failure string
}

var actions = map[EventKind]action{
	RequestShutdown:  {op: power.OpShutdown, success: "Shutting down, bye!", failure: "Failed to shut down"},
	RequestReboot:    {op: power.OpReboot, success: "Rebooting, bye!", failure: "Failed to reboot"},
	RequestLogout:    {op: power.OpLogout, success: "Logging out, bye!", failure: "Failed to logout"},
	RequestHibernate: {op: power.OpHibernate, success: "Hibernating, bye!", failure: "Failed to hibernate"},
	RequestSleep:     {op: power.OpSleep, success: "Sleeping, bye!", failure: "Failed to sleep"},
}

// Destructive reports whether the event ends the user's session outright.
func (k EventKind) Destructive() bool {
	switch k {
	case RequestShutdown, RequestReboot, RequestLogout:
		return true
	}
	return false
}
