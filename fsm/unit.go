// Package fsm implements the clocked computation units that evaluate the
// sigmoid function in fixed point.
//
// Every unit is a two-state machine advanced by one Step per clock tick. A
// unit works on a request while its start input is held, pulses end for one
// tick when the result is valid, and keeps the result in its output register
// until the next result or a reset. Composite units own their children and
// step them after reading the outputs the children produced on the previous
// tick.
package fsm

import (
	"fmt"

	"github.com/sarchlab/sigmoid/sim"
	"github.com/sarchlab/sigmoid/tracing"
)

// State is the state of a unit.
type State int

// The states of a unit.
const (
	Counting State = iota
	Result
)

func (s State) String() string {
	switch s {
	case Counting:
		return "Counting"
	case Result:
		return "Result"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// A list of hook positions that units invoke.
var (
	HookPosUnitStart = &sim.HookPos{Name: "UnitStart"}
	HookPosUnitEnd   = &sim.HookPos{Name: "UnitEnd"}
	HookPosUnitReset = &sim.HookPos{Name: "UnitReset"}
)

// A Pulse is the item of a unit hook.
type Pulse struct {
	Unit   string
	Tick   uint64
	Output uint32
}

// Outputs are the signals a unit drives after a step.
type Outputs struct {
	End    bool
	Output uint32
}

// Snapshot captures the registers of a unit.
type Snapshot struct {
	Name        string `json:"name"`
	State       string `json:"state"`
	Counter     uint32 `json:"counter"`
	Accumulator uint32 `json:"accumulator"`
	End         bool   `json:"end"`
	Output      uint32 `json:"output"`
	Tick        uint64 `json:"tick"`
}

// Unit is the part that all computation units have in common.
type Unit interface {
	tracing.NamedHookable
	Snapshot() Snapshot
}

type unit struct {
	*sim.HookableBase

	name    string
	kind    string
	initial uint32

	state   State
	acc     uint32
	counter uint32
	end     bool
	output  uint32
	tick    uint64

	taskID       string
	parentTaskID string
}

func makeUnit(name, kind string, initial uint32) unit {
	if name == "" {
		panic("unit must have a name")
	}

	return unit{
		HookableBase: sim.NewHookableBase(),
		name:         name,
		kind:         kind,
		initial:      initial,
		state:        Counting,
		acc:          initial,
	}
}

// Name returns the name of the unit.
func (u *unit) Name() string {
	return u.name
}

// Snapshot returns the current register values.
func (u *unit) Snapshot() Snapshot {
	return Snapshot{
		Name:        u.name,
		State:       u.state.String(),
		Counter:     u.counter,
		Accumulator: u.acc,
		End:         u.end,
		Output:      u.output,
		Tick:        u.tick,
	}
}

func (u *unit) outputs() Outputs {
	return Outputs{End: u.end, Output: u.output}
}

// reset brings the registers back to their initial values and abandons the
// request in flight.
func (u *unit) reset() {
	if u.taskID != "" {
		tracing.AddTaskStep(u.taskID, u, tracing.StepAborted)
		tracing.EndTask(u.taskID, u)
		u.taskID = ""
	}

	u.state = Counting
	u.acc = u.initial
	u.counter = 0
	u.end = false
	u.output = 0

	u.invoke(HookPosUnitReset)
}

func (u *unit) beginTask(what string, detail interface{}) {
	if u.taskID != "" {
		return
	}

	u.taskID = sim.GetIDGenerator().Generate()
	tracing.StartTask(u.taskID, u.parentTaskID, u, u.kind, what, detail)

	u.invoke(HookPosUnitStart)
}

func (u *unit) enterResult() {
	u.state = Result
	u.counter = 0
}

// publish executes the Result state.
func (u *unit) publish() {
	u.end = true
	u.output = u.acc
	u.acc = u.initial
	u.state = Counting

	if u.taskID != "" {
		tracing.EndTask(u.taskID, u)
		u.taskID = ""
	}

	u.invoke(HookPosUnitEnd)
}

func (u *unit) invoke(pos *sim.HookPos) {
	if u.NumHooks() == 0 {
		return
	}

	u.InvokeHook(sim.HookCtx{
		Domain: u,
		Pos:    pos,
		Item:   Pulse{Unit: u.name, Tick: u.tick, Output: u.output},
	})
}
