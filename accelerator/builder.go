package accelerator

import (
	"log"

	"github.com/sarchlab/sigmoid/datarecording"
	"github.com/sarchlab/sigmoid/fixedpoint"
	"github.com/sarchlab/sigmoid/fsm"
	"github.com/sarchlab/sigmoid/sim"
)

// Builder can build accelerator components.
type Builder struct {
	engine    sim.Engine
	freq      sim.Freq
	precision uint32
	fraction  uint
	recorder  datarecording.DataRecorder
	maxCycles int
}

// MakeBuilder returns a builder with default parameters.
func MakeBuilder() Builder {
	return Builder{
		freq:      1 * sim.GHz,
		precision: fsm.DefaultPrecision,
		fraction:  fixedpoint.DefaultFraction,
	}
}

// WithEngine sets the engine that drives the component.
func (b Builder) WithEngine(engine sim.Engine) Builder {
	b.engine = engine
	return b
}

// WithFreq sets the clock frequency.
func (b Builder) WithFreq(freq sim.Freq) Builder {
	b.freq = freq
	return b
}

// WithPrecision sets the index of the last series term of the exponential.
func (b Builder) WithPrecision(precision uint32) Builder {
	b.precision = precision
	return b
}

// WithFraction sets the number of fractional bits.
func (b Builder) WithFraction(fraction uint) Builder {
	b.fraction = fraction
	return b
}

// WithRecorder sets the recorder that stores the results.
func (b Builder) WithRecorder(recorder datarecording.DataRecorder) Builder {
	b.recorder = recorder
	return b
}

// WithMaxCycles limits the cycles spent on one request. Zero means no limit.
func (b Builder) WithMaxCycles(maxCycles int) Builder {
	b.maxCycles = maxCycles
	return b
}

// Build creates a component with the given name.
func (b Builder) Build(name string) *Comp {
	if b.engine == nil {
		log.Panic("engine is not set")
	}

	format, err := fixedpoint.NewFormat(b.fraction)
	if err != nil {
		log.Panic(err)
	}

	c := &Comp{
		maxCycles: b.maxCycles,
		recorder:  b.recorder,
	}
	c.TickingComponent = sim.NewTickingComponent(name, b.engine, b.freq, c)
	c.unit = fsm.NewSigmoidUnit(name+".Sigmoid", format, b.precision)

	if b.recorder != nil {
		b.recorder.CreateTable(ResultTableName, resultEntry{})
	}

	return c
}
