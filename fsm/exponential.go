package fsm

import (
	"fmt"
	"log"

	"github.com/sarchlab/sigmoid/fixedpoint"
)

// DefaultPrecision is the index of the last series term used by default.
const DefaultPrecision = 4

// MaxPrecision is the largest precision whose factorials fit in 32 bits.
const MaxPrecision = 12

// ExpInputs are the inputs of an ExponentialUnit.
type ExpInputs struct {
	Start bool
	X     uint32
}

// ExponentialUnit approximates e^X with the Taylor series sum of X^k/k! for k
// from 0 to the precision. X is an integer and the result is in the unit's
// fixed-point format. One PowerUnit and one FactorialUnit compute the k-th
// term; a term is consumed on the tick both of them pulse end together.
type ExponentialUnit struct {
	unit

	format    fixedpoint.Format
	precision uint32

	power     *PowerUnit
	factorial *FactorialUnit

	powerOut     Outputs
	factorialOut Outputs
}

// NewExponentialUnit creates an ExponentialUnit and its sub-units.
func NewExponentialUnit(
	name string,
	format fixedpoint.Format,
	precision uint32,
) *ExponentialUnit {
	if precision > MaxPrecision {
		log.Panicf("precision %d exceeds %d", precision, MaxPrecision)
	}

	if _, err := fixedpoint.NewFormat(format.Fraction); err != nil {
		log.Panic(err)
	}

	return &ExponentialUnit{
		unit:      makeUnit(name, "exp", format.One()),
		format:    format,
		precision: precision,
		power:     NewPowerUnit(name + ".Power"),
		factorial: NewFactorialUnit(name + ".Factorial"),
	}
}

// Power returns the PowerUnit that computes the numerators.
func (u *ExponentialUnit) Power() *PowerUnit {
	return u.power
}

// Factorial returns the FactorialUnit that computes the denominators.
func (u *ExponentialUnit) Factorial() *FactorialUnit {
	return u.factorial
}

// Precision returns the index of the last series term.
func (u *ExponentialUnit) Precision() uint32 {
	return u.precision
}

// Units returns the unit and its sub-units.
func (u *ExponentialUnit) Units() []Unit {
	return []Unit{u, u.power, u.factorial}
}

// Step advances the unit and its sub-units by one tick.
func (u *ExponentialUnit) Step(reset bool, in ExpInputs) Outputs {
	u.tick++

	if reset {
		u.reset()
		u.powerOut = u.power.Step(true, PowerInputs{})
		u.factorialOut = u.factorial.Step(true, FactorialInputs{})

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

	u.power.parentTaskID = u.taskID
	u.factorial.parentTaskID = u.taskID

	u.powerOut = u.power.Step(false, PowerInputs{
		Start:    in.Start,
		Base:     in.X,
		Exponent: u.counter,
	})
	u.factorialOut = u.factorial.Step(false, FactorialInputs{
		Start: in.Start,
		N:     u.counter,
	})

	return u.outputs()
}

func (u *ExponentialUnit) count(in ExpInputs) {
	if !in.Start {
		return
	}

	u.beginTask(fmt.Sprintf("exp(%d)", in.X), in)

	if !u.powerOut.End || !u.factorialOut.End {
		return
	}

	done := u.counter >= u.precision

	if u.counter == 0 {
		u.counter = 1
		u.acc = u.format.One()
	} else {
		u.acc += u.format.Term(u.powerOut.Output, u.factorialOut.Output)
		u.counter++
	}

	if done {
		u.enterResult()
	}
}
