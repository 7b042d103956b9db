package power

import "sync"

// DryRun records requested operations without touching the host.
type DryRun struct {
	mu    sync.Mutex
	calls []Op
}

var _ Capability = (*DryRun)(nil)

// NewDryRun creates an empty recorder.
func NewDryRun() *DryRun {
	return &DryRun{}
}

func (d *DryRun) Shutdown() error  { return d.record(OpShutdown) }
func (d *DryRun) Reboot() error    { return d.record(OpReboot) }
func (d *DryRun) Logout() error    { return d.record(OpLogout) }
func (d *DryRun) Hibernate() error { return d.record(OpHibernate) }
func (d *DryRun) Sleep() error     { return d.record(OpSleep) }

// Calls returns the operations requested so far, oldest first.
func (d *DryRun) Calls() []Op {
	d.mu.Lock()
	defer d.mu.Unlock()
	out := make([]Op, len(d.calls))
	copy(out, d.calls)
	return out
}

func (d *DryRun) record(op Op) error {
	d.mu.Lock()
	d.calls = append(d.calls, op)
	d.mu.Unlock()
	return nil
}
