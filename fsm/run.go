package fsm

import (
	"github.com/pkg/errors"
)

// ErrTickLimit is returned by the stepping helpers when a unit does not pulse
// end within the allowed number of ticks.
var ErrTickLimit = errors.New("tick limit reached")

// RunPower resets the unit and holds the inputs until it pulses end. It
// returns the result and the number of ticks after the reset.
func RunPower(u *PowerUnit, base, exponent uint32, limit int) (uint32, int, error) {
	u.Step(true, PowerInputs{})

	in := PowerInputs{Start: true, Base: base, Exponent: exponent}

	return runUntilEnd(u.name, limit, func() Outputs {
		return u.Step(false, in)
	})
}

// RunFactorial resets the unit and holds n until it pulses end.
func RunFactorial(u *FactorialUnit, n uint32, limit int) (uint32, int, error) {
	u.Step(true, FactorialInputs{})

	in := FactorialInputs{Start: true, N: n}

	return runUntilEnd(u.name, limit, func() Outputs {
		return u.Step(false, in)
	})
}

// RunExponential resets the unit and holds x until it pulses end.
func RunExponential(
	u *ExponentialUnit,
	x uint32,
	limit int,
) (uint32, int, error) {
	u.Step(true, ExpInputs{})

	in := ExpInputs{Start: true, X: x}

	return runUntilEnd(u.name, limit, func() Outputs {
		return u.Step(false, in)
	})
}

// RunSigmoid resets the unit and holds x until it pulses end.
func RunSigmoid(u *SigmoidUnit, x uint32, limit int) (uint32, int, error) {
	u.Step(true, Transport{})

	in := Transport{Data: x}

	return runUntilEnd(u.name, limit, func() Outputs {
		out := u.Step(false, in)
		return Outputs{End: out.End, Output: out.Out.Data}
	})
}

func runUntilEnd(
	name string,
	limit int,
	step func() Outputs,
) (uint32, int, error) {
	for ticks := 1; ticks <= limit; ticks++ {
		out := step()
		if out.End {
			return out.Output, ticks, nil
		}
	}

	return 0, limit, errors.Wrapf(ErrTickLimit, "%s after %d ticks", name, limit)
}
