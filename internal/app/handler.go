package app

import (
	"log/slog"

	"github.com/1broseidon/systool/internal/power"
)

// Handler applies one event at a time. It is not safe for concurrent use;
// the Loop guarantees serial calls.
type Handler struct {
	capability power.Capability
	state      *State
	logger     *slog.Logger
}

// NewHandler creates a handler over the given capability and state.
func NewHandler(capability power.Capability, state *State, logger *slog.Logger) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{
		capability: capability,
		state:      state,
		logger:     logger,
	}
}

// Handle processes ev to completion. Capability failures are logged and
// swallowed.
func (h *Handler) Handle(ev Event) {
	if ev.Kind == TimeTick {
		h.state.setDisplayedTime(FormatTime(ev.At))
		return
	}

	a, ok := actions[ev.Kind]
	if !ok {
		h.logger.Warn("ignoring unknown event", "kind", int(ev.Kind))
		return
	}

	if err := power.Invoke(h.capability, a.op); err != nil {
		h.logger.Error(a.failure+": "+err.Error(), "op", string(a.op))
		return
	}
	h.logger.Info(a.success, "op", string(a.op))
}
