package fsm

import (
	"log"

	"github.com/sarchlab/sigmoid/sim"
)

// PulseLogger is a hook that prints the handshake events of units.
type PulseLogger struct {
	*log.Logger
}

// NewPulseLogger returns a new PulseLogger which writes into the logger.
func NewPulseLogger(logger *log.Logger) *PulseLogger {
	h := new(PulseLogger)
	h.Logger = logger

	return h
}

// Func writes the pulse into the logger.
func (h *PulseLogger) Func(ctx sim.HookCtx) {
	pulse, ok := ctx.Item.(Pulse)
	if !ok {
		return
	}

	switch ctx.Pos {
	case HookPosUnitStart:
		h.Printf("%d, %s, start", pulse.Tick, pulse.Unit)
	case HookPosUnitEnd:
		h.Printf("%d, %s, end, %d", pulse.Tick, pulse.Unit, pulse.Output)
	case HookPosUnitReset:
		h.Printf("%d, %s, reset", pulse.Tick, pulse.Unit)
	}
}
