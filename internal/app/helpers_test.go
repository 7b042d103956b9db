package app

import (
	"bytes"
	"log/slog"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/1broseidon/systool/internal/power"
)

// stubCapability fails the operations listed in fail and counts calls.
type stubCapability struct {
	fail map[power.Op]error

	mu    sync.Mutex
	calls []power.Op

	inFlight    atomic.Int32
	maxInFlight atomic.Int32
	delay       time.Duration
}

func (s *stubCapability) do(op power.Op) error {
	n := s.inFlight.Add(1)
	defer s.inFlight.Add(-1)
	for {
		cur := s.maxInFlight.Load()
		if n <= cur || s.maxInFlight.CompareAndSwap(cur, n) {
			break
		}
	}
	if s.delay > 0 {
		time.Sleep(s.delay)
	}

	s.mu.Lock()
	s.calls = append(s.calls, op)
	s.mu.Unlock()
	return s.fail[op]
}

func (s *stubCapability) Shutdown() error  { return s.do(power.OpShutdown) }
func (s *stubCapability) Reboot() error    { return s.do(power.OpReboot) }
func (s *stubCapability) Logout() error    { return s.do(power.OpLogout) }
func (s *stubCapability) Hibernate() error { return s.do(power.OpHibernate) }
func (s *stubCapability) Sleep() error     { return s.do(power.OpSleep) }

func (s *stubCapability) Calls() []power.Op {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]power.Op(nil), s.calls...)
}

type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func (b *syncBuffer) Lines() []string {
	s := strings.TrimSpace(b.String())
	if s == "" {
		return nil
	}
	return strings.Split(s, "\n")
}

func newTestLogger() (*slog.Logger, *syncBuffer) {
	buf := &syncBuffer{}
	logger := slog.New(slog.NewTextHandler(buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	return logger, buf
}

// steppingClock starts at base and advances one second per call.
func steppingClock(base time.Time) Clock {
	var n atomic.Int64
	return func() time.Time {
		return base.Add(time.Duration(n.Add(1)-1) * time.Second)
	}
}

var requestKinds = []EventKind{RequestShutdown, RequestReboot, RequestLogout, RequestHibernate, RequestSleep}
