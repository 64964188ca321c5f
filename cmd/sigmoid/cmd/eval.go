package cmd

import (
	"fmt"
	"io"
	"log"
	"math"
	"os"
	"strconv"
	"text/tabwriter"

	"github.com/pkg/errors"
	"github.com/sarchlab/sigmoid/accelerator"
	"github.com/sarchlab/sigmoid/config"
	"github.com/sarchlab/sigmoid/fsm"
	"github.com/sarchlab/sigmoid/monitoring"
	"github.com/sarchlab/sigmoid/sim"
	"github.com/sarchlab/sigmoid/simulation"
	"github.com/sarchlab/sigmoid/tracing"
	"github.com/spf13/cobra"
)

var evalCmd = &cobra.Command{
	Use:   "eval x [x...]",
	Short: "Run x values through the clocked sigmoid accelerator.",
	Long: `Run x values through the clocked sigmoid accelerator and compare ` +
		`the results with the exact sigmoid. Each x is a non-negative integer.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		xs, err := parseInputs(args)
		if err != nil {
			return err
		}

		return runEval(cfg, xs, cmd.OutOrStdout())
	},
}

func init() {
	rootCmd.AddCommand(evalCmd)
}

func parseInputs(args []string) ([]uint32, error) {
	xs := make([]uint32, 0, len(args))

	for _, arg := range args {
		x, err := strconv.ParseUint(arg, 10, 32)
		if err != nil {
			return nil, errors.Wrapf(err, "invalid input %q", arg)
		}

		xs = append(xs, uint32(x))
	}

	return xs, nil
}

// progressTracer moves a progress bar as the requests complete.
type progressTracer struct {
	bar *monitoring.ProgressBar
}

func (t progressTracer) StartTask(tracing.Task) {
	t.bar.IncrementInProgress(1)
}

func (t progressTracer) StepTask(tracing.Task) {}

func (t progressTracer) EndTask(tracing.Task) {
	t.bar.MoveInProgressToFinished(1)
}

func runEval(c config.Config, xs []uint32, out io.Writer) error {
	s := buildSimulation(c)
	engine := s.GetEngine()

	if logEvents {
		engine.AcceptHook(sim.NewEventLogger(log.New(os.Stderr, "", 0)))
	}

	builder := accelerator.MakeBuilder().
		WithEngine(engine).
		WithFreq(c.Freq).
		WithFraction(c.Fraction).
		WithPrecision(c.Precision).
		WithMaxCycles(c.MaxTicks)
	if recorder := s.GetDataRecorder(); recorder != nil {
		builder = builder.WithRecorder(recorder)
	}

	comp := builder.Build("Accelerator")
	s.RegisterComponent(comp)
	attachUnitLoggers(comp.Units())

	latency := tracing.NewAverageTimeTracer(engine, tracing.AllTasks)
	tracing.CollectTrace(comp, latency)

	if monitor := s.GetMonitor(); monitor != nil {
		bar := monitor.CreateProgressBar("Requests", uint64(len(xs)))
		tracing.CollectTrace(comp, progressTracer{bar: bar})
	}

	for _, x := range xs {
		comp.Submit(x)
	}

	if err := engine.Run(); err != nil {
		return err
	}

	s.Terminate()

	printResults(out, comp.Unit(), comp.Results())
	fmt.Fprintf(out, "average latency: %.3e s over %d requests\n",
		float64(latency.AverageTime()), latency.TotalCount())

	return nil
}

func buildSimulation(c config.Config) *simulation.Simulation {
	b := simulation.MakeBuilder()

	if c.RecordPath != "" {
		b = b.WithOutputFileName(c.RecordPath)
	}

	if c.MonitorPort != 0 || c.OpenBrowser {
		b = b.WithMonitoring().
			WithMonitorPort(c.MonitorPort).
			WithBrowser(c.OpenBrowser)
	}

	return b.Build()
}

func attachUnitLoggers(units []fsm.Unit) {
	if !logPulses {
		return
	}

	logger := fsm.NewPulseLogger(log.New(os.Stderr, "", 0))
	for _, u := range units {
		u.AcceptHook(logger)
	}
}

func printResults(
	out io.Writer,
	unit *fsm.SigmoidUnit,
	results []accelerator.Result,
) {
	format := unit.Format()

	w := tabwriter.NewWriter(out, 0, 4, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintln(w, "x\traw\tvalue\treference\terror\tcycles\t")

	for _, r := range results {
		if r.TimedOut {
			fmt.Fprintf(w, "%d\t-\t-\t-\t-\t%d\t\n", r.X, r.Cycles)
			continue
		}

		value := format.ToFloat(r.Output)
		reference := 1 / (1 + math.Exp(-float64(r.X)))

		fmt.Fprintf(w, "%d\t%d\t%.6f\t%.6f\t%.6f\t%d\t\n",
			r.X, r.Output, value, reference, value-reference, r.Cycles)
	}

	w.Flush()
}
