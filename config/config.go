// Package config loads the settings of the sigmoid simulator from dotenv files
// and environment variables.
package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"github.com/pkg/errors"
	"github.com/sarchlab/sigmoid/fixedpoint"
	"github.com/sarchlab/sigmoid/fsm"
	"github.com/sarchlab/sigmoid/sim"
)

// The environment variables read by Load.
const (
	EnvFraction    = "SIGMOID_FRACTION"
	EnvPrecision   = "SIGMOID_PRECISION"
	EnvFreq        = "SIGMOID_FREQ_GHZ"
	EnvMaxTicks    = "SIGMOID_MAX_TICKS"
	EnvMonitorPort = "SIGMOID_MONITOR_PORT"
	EnvRecordPath  = "SIGMOID_RECORD_PATH"
	EnvOpenBrowser = "SIGMOID_OPEN_BROWSER"
)

// Config holds the settings of a simulation.
type Config struct {
	Fraction    uint
	Precision   uint32
	Freq        sim.Freq
	MaxTicks    int
	MonitorPort int
	RecordPath  string
	OpenBrowser bool
}

// Default returns the default settings.
func Default() Config {
	return Config{
		Fraction:  fixedpoint.DefaultFraction,
		Precision: fsm.DefaultPrecision,
		Freq:      1 * sim.GHz,
		MaxTicks:  100000,
	}
}

// Load reads the given dotenv files, if they exist, and then overrides the
// default settings with the SIGMOID_* environment variables. Variables that
// are already set in the environment take priority over the files.
func Load(envFiles ...string) (Config, error) {
	for _, f := range envFiles {
		if _, err := os.Stat(f); os.IsNotExist(err) {
			continue
		}

		if err := godotenv.Load(f); err != nil {
			return Config{}, errors.Wrapf(err, "loading %s", f)
		}
	}

	c := Default()

	if err := c.readEnv(); err != nil {
		return Config{}, err
	}

	if err := c.Validate(); err != nil {
		return Config{}, err
	}

	return c, nil
}

func (c *Config) readEnv() error {
	if v, ok := os.LookupEnv(EnvFraction); ok {
		n, err := strconv.ParseUint(v, 10, 32)
		if err != nil {
			return errors.Wrap(err, EnvFraction)
		}

		c.Fraction = uint(n)
	}

	if v, ok := os.LookupEnv(EnvPrecision); ok {
		n, err := strconv.ParseUint(v, 10, 32)
		if err != nil {
			return errors.Wrap(err, EnvPrecision)
		}

		c.Precision = uint32(n)
	}

	if v, ok := os.LookupEnv(EnvFreq); ok {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return errors.Wrap(err, EnvFreq)
		}

		c.Freq = sim.Freq(f) * sim.GHz
	}

	if v, ok := os.LookupEnv(EnvMaxTicks); ok {
		n, err := strconv.Atoi(v)
		if err != nil {
			return errors.Wrap(err, EnvMaxTicks)
		}

		c.MaxTicks = n
	}

	if v, ok := os.LookupEnv(EnvMonitorPort); ok {
		n, err := strconv.Atoi(v)
		if err != nil {
			return errors.Wrap(err, EnvMonitorPort)
		}

		c.MonitorPort = n
	}

	if v, ok := os.LookupEnv(EnvRecordPath); ok {
		c.RecordPath = v
	}

	if v, ok := os.LookupEnv(EnvOpenBrowser); ok {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return errors.Wrap(err, EnvOpenBrowser)
		}

		c.OpenBrowser = b
	}

	return nil
}

// Validate checks that the settings can build a simulation.
func (c Config) Validate() error {
	if _, err := fixedpoint.NewFormat(c.Fraction); err != nil {
		return errors.WithStack(err)
	}

	if c.Precision > fsm.MaxPrecision {
		return errors.Errorf("precision must be at most %d, got %d",
			fsm.MaxPrecision, c.Precision)
	}

	if c.Freq <= 0 {
		return errors.Errorf("frequency must be positive, got %g", float64(c.Freq))
	}

	if c.MaxTicks <= 0 {
		return errors.Errorf("max ticks must be positive, got %d", c.MaxTicks)
	}

	if c.MonitorPort < 0 || c.MonitorPort > 65535 {
		return errors.Errorf("invalid monitor port %d", c.MonitorPort)
	}

	return nil
}

// Format returns the fixed-point format selected by the settings.
func (c Config) Format() fixedpoint.Format {
	return fixedpoint.Format{Fraction: c.Fraction}
}
