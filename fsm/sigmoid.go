package fsm

import (
	"fmt"
	"log"

	"github.com/sarchlab/sigmoid/fixedpoint"
)

// Transport carries a data word between a unit and its environment.
type Transport struct {
	Data uint32
}

// SigmoidOutputs are the signals a SigmoidUnit drives after a step.
type SigmoidOutputs struct {
	End bool
	Out Transport
}

// SigmoidUnit computes e^x/(1+e^x), which equals 1/(1+e^-x), in fixed point.
// It has no start input. The unit keeps its ExponentialUnit running on
// whatever x is present, so a caller that needs the result for a given x must
// hold it for a full exponential latency after a reset or a previous result.
type SigmoidUnit struct {
	unit

	format   fixedpoint.Format
	exp      *ExponentialUnit
	expOut   Outputs
	expStart bool
}

// NewSigmoidUnit creates a SigmoidUnit and its sub-units.
func NewSigmoidUnit(
	name string,
	format fixedpoint.Format,
	precision uint32,
) *SigmoidUnit {
	return &SigmoidUnit{
		unit:     makeUnit(name, "sigmoid", 0),
		format:   format,
		exp:      NewExponentialUnit(name+".Exp", format, precision),
		expStart: true,
	}
}

// Exp returns the ExponentialUnit owned by the unit.
func (u *SigmoidUnit) Exp() *ExponentialUnit {
	return u.exp
}

// Format returns the fixed-point format of the output.
func (u *SigmoidUnit) Format() fixedpoint.Format {
	return u.format
}

// Units returns the unit and all the units it owns.
func (u *SigmoidUnit) Units() []Unit {
	return append([]Unit{u}, u.exp.Units()...)
}

// Step advances the unit and its sub-units by one tick.
func (u *SigmoidUnit) Step(reset bool, in Transport) SigmoidOutputs {
	u.tick++

	if reset {
		u.reset()
		u.expStart = true
		u.expOut = u.exp.Step(true, ExpInputs{})

		return u.sigmoidOutputs()
	}

	u.end = false

	switch u.state {
	case Counting:
		u.beginTask(fmt.Sprintf("sigmoid(%d)", in.Data), in)

		if u.expOut.End {
			u.acc = u.format.Ratio(u.expOut.Output)
			u.expStart = false
			u.enterResult()
		}
	case Result:
		u.expStart = true
		u.publish()
	default:
		log.Panicf("%s: invalid state %s", u.name, u.state)
	}

	u.exp.parentTaskID = u.taskID
	u.expOut = u.exp.Step(false, ExpInputs{Start: u.expStart, X: in.Data})

	return u.sigmoidOutputs()
}

func (u *SigmoidUnit) sigmoidOutputs() SigmoidOutputs {
	return SigmoidOutputs{End: u.end, Out: Transport{Data: u.output}}
}
