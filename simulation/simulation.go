// Package simulation assembles the services that a simulation run uses: the
// engine, the optional recorder with its tracer, and the optional monitor.
package simulation

import (
	"github.com/sarchlab/sigmoid/datarecording"
	"github.com/sarchlab/sigmoid/fsm"
	"github.com/sarchlab/sigmoid/monitoring"
	"github.com/sarchlab/sigmoid/sim"
	"github.com/sarchlab/sigmoid/tracing"
)

// A Simulation provides the service requires to define a simulation.
type Simulation struct {
	id     string
	engine sim.Engine

	dataRecorder datarecording.DataRecorder
	dbTracer     *tracing.DBTracer
	monitor      *monitoring.Monitor

	components    []sim.Component
	compNameIndex map[string]int
}

// ID returns the ID of the simulation.
func (s *Simulation) ID() string {
	return s.id
}

// GetEngine returns the engine used in the simulation.
func (s *Simulation) GetEngine() sim.Engine {
	return s.engine
}

// GetDataRecorder returns the data recorder, or nil if the simulation is not
// recorded.
func (s *Simulation) GetDataRecorder() datarecording.DataRecorder {
	return s.dataRecorder
}

// GetMonitor returns the monitor, or nil if the simulation is not monitored.
func (s *Simulation) GetMonitor() *monitoring.Monitor {
	return s.monitor
}

// GetDBTracer returns the tracer that records tasks, or nil if the simulation
// is not recorded.
func (s *Simulation) GetDBTracer() *tracing.DBTracer {
	return s.dbTracer
}

// RegisterComponent registers a component with the simulation. The component
// and its computation units are traced and monitored when the simulation
// records or monitors.
func (s *Simulation) RegisterComponent(c sim.Component) {
	compName := c.Name()
	if _, found := s.compNameIndex[compName]; found {
		panic("component " + compName + " already registered")
	}

	s.components = append(s.components, c)
	s.compNameIndex[compName] = len(s.components) - 1

	if s.dbTracer != nil {
		s.traceComponent(c)
	}

	if s.monitor != nil {
		s.monitor.RegisterComponent(c)
	}
}

func (s *Simulation) traceComponent(c sim.Component) {
	if domain, ok := c.(tracing.NamedHookable); ok {
		tracing.CollectTrace(domain, s.dbTracer)
	}

	if owner, ok := c.(monitoring.UnitOwner); ok {
		for _, u := range owner.Units() {
			tracing.CollectTrace(u, s.dbTracer)
		}
	}
}

// GetComponentByName returns the component with the given name.
func (s *Simulation) GetComponentByName(name string) sim.Component {
	index, found := s.compNameIndex[name]
	if !found {
		return nil
	}

	return s.components[index]
}

// Components returns all the registered components.
func (s *Simulation) Components() []sim.Component {
	return append([]sim.Component(nil), s.components...)
}

// Units returns the computation units of all the registered components.
func (s *Simulation) Units() []fsm.Unit {
	var units []fsm.Unit

	for _, c := range s.components {
		if owner, ok := c.(monitoring.UnitOwner); ok {
			units = append(units, owner.Units()...)
		}
	}

	return units
}

// Terminate writes out the records of the simulation.
func (s *Simulation) Terminate() {
	s.engine.Finished()

	if s.dbTracer != nil {
		s.dbTracer.Terminate()
	}

	if s.dataRecorder != nil {
		s.dataRecorder.Close()
	}
}
