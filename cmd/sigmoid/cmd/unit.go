package cmd

import (
	"fmt"
	"io"
	"strconv"

	"github.com/pkg/errors"
	"github.com/sarchlab/sigmoid/config"
	"github.com/sarchlab/sigmoid/fsm"
	"github.com/spf13/cobra"
)

var unitCmd = &cobra.Command{
	Use:   "unit (power base exponent | factorial n | exp x | sigmoid x)",
	Short: "Step a single computation unit until it produces a result.",
	Args:  cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runUnit(cfg, args[0], args[1:], cmd.OutOrStdout())
	},
}

func init() {
	rootCmd.AddCommand(unitCmd)
}

func runUnit(c config.Config, kind string, args []string, out io.Writer) error {
	values := make([]uint32, 0, len(args))

	for _, arg := range args {
		v, err := strconv.ParseUint(arg, 10, 32)
		if err != nil {
			return errors.Wrapf(err, "invalid operand %q", arg)
		}

		values = append(values, uint32(v))
	}

	var (
		result uint32
		ticks  int
		err    error
	)

	switch kind {
	case "power":
		if len(values) != 2 {
			return errors.New("power takes a base and an exponent")
		}

		u := fsm.NewPowerUnit("Power")
		attachUnitLoggers([]fsm.Unit{u})
		result, ticks, err = fsm.RunPower(u, values[0], values[1], c.MaxTicks)
	case "factorial":
		if len(values) != 1 {
			return errors.New("factorial takes one operand")
		}

		u := fsm.NewFactorialUnit("Factorial")
		attachUnitLoggers([]fsm.Unit{u})
		result, ticks, err = fsm.RunFactorial(u, values[0], c.MaxTicks)
	case "exp":
		if len(values) != 1 {
			return errors.New("exp takes one operand")
		}

		u := fsm.NewExponentialUnit("Exp", c.Format(), c.Precision)
		attachUnitLoggers(u.Units())
		result, ticks, err = fsm.RunExponential(u, values[0], c.MaxTicks)
	case "sigmoid":
		if len(values) != 1 {
			return errors.New("sigmoid takes one operand")
		}

		u := fsm.NewSigmoidUnit("Sigmoid", c.Format(), c.Precision)
		attachUnitLoggers(u.Units())
		result, ticks, err = fsm.RunSigmoid(u, values[0], c.MaxTicks)
	default:
		return errors.Errorf("unknown unit %q", kind)
	}

	if err != nil {
		return err
	}

	if kind == "exp" || kind == "sigmoid" {
		fmt.Fprintf(out, "%d (%.6f) after %d ticks\n",
			result, c.Format().ToFloat(result), ticks)
	} else {
		fmt.Fprintf(out, "%d after %d ticks\n", result, ticks)
	}

	return nil
}
