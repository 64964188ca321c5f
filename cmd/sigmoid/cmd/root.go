// Package cmd provides the command-line interface of the sigmoid simulator.
package cmd

import (
	"fmt"
	"os"

	"github.com/sarchlab/sigmoid/config"
	"github.com/sarchlab/sigmoid/sim"
	"github.com/spf13/cobra"
)

var (
	cfg config.Config

	envFile         string
	flagFraction    uint
	flagPrecision   uint32
	flagFreqGHz     float64
	flagMaxTicks    int
	flagMonitorPort int
	flagRecordPath  string
	flagOpenBrowser bool
	logEvents       bool
	logPulses       bool
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "sigmoid",
	Short: "Evaluate a fixed-point sigmoid on simulated hardware units.",
	Long: `Evaluate a fixed-point sigmoid on simulated hardware units. ` +
		`Settings come from a dotenv file, SIGMOID_* environment variables, ` +
		`and flags, in increasing priority.`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: loadConfig,
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.StringVar(&envFile, "env", ".env", "dotenv file to load")
	flags.UintVar(&flagFraction, "fraction", 0, "number of fractional bits")
	flags.Uint32Var(&flagPrecision, "precision", 0,
		"index of the last term of the exponential series")
	flags.Float64Var(&flagFreqGHz, "freq", 0, "clock frequency in GHz")
	flags.IntVar(&flagMaxTicks, "max-ticks", 0,
		"number of ticks allowed for one evaluation")
	flags.IntVar(&flagMonitorPort, "monitor-port", 0,
		"serve the monitoring page on this port")
	flags.StringVar(&flagRecordPath, "record", "",
		"record results and traces into <path>.sqlite3")
	flags.BoolVar(&flagOpenBrowser, "open-browser", false,
		"open the monitoring page in a browser")
	flags.BoolVar(&logEvents, "log-events", false,
		"print every simulation event to stderr")
	flags.BoolVar(&logPulses, "log-pulses", false,
		"print the handshake pulses of the units to stderr")
}

func loadConfig(cmd *cobra.Command, _ []string) error {
	loaded, err := config.Load(envFile)
	if err != nil {
		return err
	}

	flags := cmd.Flags()
	if flags.Changed("fraction") {
		loaded.Fraction = flagFraction
	}

	if flags.Changed("precision") {
		loaded.Precision = flagPrecision
	}

	if flags.Changed("freq") {
		loaded.Freq = sim.Freq(flagFreqGHz) * sim.GHz
	}

	if flags.Changed("max-ticks") {
		loaded.MaxTicks = flagMaxTicks
	}

	if flags.Changed("monitor-port") {
		loaded.MonitorPort = flagMonitorPort
	}

	if flags.Changed("record") {
		loaded.RecordPath = flagRecordPath
	}

	if flags.Changed("open-browser") {
		loaded.OpenBrowser = flagOpenBrowser
	}

	if err := loaded.Validate(); err != nil {
		return err
	}

	cfg = loaded

	return nil
}

// Execute adds all child commands to the root command, runs the command, and
// returns the exit code.
func Execute() int {
	err := rootCmd.Execute()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}

	return 0
}
