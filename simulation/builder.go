package simulation

import (
	"github.com/rs/xid"
	"github.com/sarchlab/sigmoid/datarecording"
	"github.com/sarchlab/sigmoid/monitoring"
	"github.com/sarchlab/sigmoid/sim"
	"github.com/sarchlab/sigmoid/tracing"
)

// Builder can be used to build a simulation.
type Builder struct {
	monitorOn      bool
	monitorPort    int
	openBrowser    bool
	recordOn       bool
	outputFileName string
}

// MakeBuilder creates a new builder. By default, the simulation is neither
// monitored nor recorded.
func MakeBuilder() Builder {
	return Builder{}
}

// WithMonitoring serves the monitoring page while the simulation runs.
func (b Builder) WithMonitoring() Builder {
	b.monitorOn = true
	return b
}

// WithMonitorPort sets the port number for the monitoring server.
func (b Builder) WithMonitorPort(port int) Builder {
	b.monitorPort = port
	return b
}

// WithBrowser opens the monitoring page in a browser.
func (b Builder) WithBrowser(open bool) Builder {
	b.openBrowser = open
	return b
}

// WithRecording records results and traces into a file named after the
// simulation ID.
func (b Builder) WithRecording() Builder {
	b.recordOn = true
	return b
}

// WithOutputFileName records results and traces into <filename>.sqlite3.
func (b Builder) WithOutputFileName(filename string) Builder {
	b.recordOn = true
	b.outputFileName = filename

	return b
}

func (b Builder) parametersMustBeValid() {
	if !b.monitorOn && b.monitorPort != 0 {
		panic("monitor port cannot be set when monitoring is disabled")
	}

	if !b.monitorOn && b.openBrowser {
		panic("browser cannot be opened when monitoring is disabled")
	}
}

// Build builds the simulation.
func (b Builder) Build() *Simulation {
	b.parametersMustBeValid()

	s := &Simulation{
		id:            xid.New().String(),
		engine:        sim.NewSerialEngine(),
		compNameIndex: make(map[string]int),
	}

	if b.recordOn {
		outputPath := b.outputFileName
		if outputPath == "" {
			outputPath = "sigmoid_sim_" + s.id
		}

		s.dataRecorder = datarecording.New(outputPath)
		s.dbTracer = tracing.NewDBTracer(s.engine, s.dataRecorder)
	}

	if b.monitorOn {
		s.monitor = monitoring.NewMonitor().
			WithPortNumber(b.monitorPort).
			WithBrowser(b.openBrowser)
		s.monitor.RegisterEngine(s.engine)
		s.monitor.StartServer()
	}

	return s
}
