package fsm

import (
	"fmt"
	"log"
)

// FactorialInputs are the inputs of a FactorialUnit.
type FactorialInputs struct {
	Start bool
	N     uint32
}

// FactorialUnit computes N! with one multiplication per tick. The first tick
// of a request only initializes the registers, which defines 0! = 1! = 1. The
// product wraps at 32 bits, so results above 12! are truncated.
type FactorialUnit struct {
	unit
}

// NewFactorialUnit creates a FactorialUnit.
func NewFactorialUnit(name string) *FactorialUnit {
	return &FactorialUnit{unit: makeUnit(name, "factorial", 1)}
}

// Step advances the unit by one tick.
func (u *FactorialUnit) Step(reset bool, in FactorialInputs) Outputs {
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

func (u *FactorialUnit) count(in FactorialInputs) {
	if !in.Start {
		return
	}

	u.beginTask(fmt.Sprintf("%d!", in.N), in)

	done := u.counter >= in.N

	if u.counter == 0 {
		u.counter = 1
		u.acc = 1
	} else {
		u.acc *= u.counter
		u.counter++
	}

	if done {
		u.enterResult()
	}
}
