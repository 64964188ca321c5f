package fsm

import (
	"fmt"
	"log"
)

// PowerInputs are the inputs of a PowerUnit.
type PowerInputs struct {
	Start    bool
	Base     uint32
	Exponent uint32
}

// PowerUnit computes Base^Exponent with one multiplication per tick. The
// product wraps at 32 bits.
type PowerUnit struct {
	unit
}

// NewPowerUnit creates a PowerUnit.
func NewPowerUnit(name string) *PowerUnit {
	return &PowerUnit{unit: makeUnit(name, "power", 1)}
}

// Step advances the unit by one tick.
func (u *PowerUnit) Step(reset bool, in PowerInputs) Outputs {
	u.tick++

	if reset {
		u.reset()
		return u.outputs()
	}

	u.end = false

	switch u.state {
	case Counting:
		u.count(in)
	case Result:
		u.publish()
	default:
		log.Panicf("%s: invalid state %s", u.name, u.state)
	}

	return u.outputs()
}

func (u *PowerUnit) count(in PowerInputs) {
	if !in.Start {
		return
	}

	u.beginTask(fmt.Sprintf("%d^%d", in.Base, in.Exponent), in)

	if in.Exponent == 0 {
		u.acc = 1
		u.enterResult()

		return
	}

	u.acc *= in.Base
	u.counter++

	if u.counter >= in.Exponent {
		u.enterResult()
	}
}
