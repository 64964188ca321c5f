// Package accelerator provides a clocked component that serves sigmoid
// requests with a SigmoidUnit.
package accelerator

import (
	"fmt"

	"github.com/sarchlab/sigmoid/datarecording"
	"github.com/sarchlab/sigmoid/fsm"
	"github.com/sarchlab/sigmoid/sim"
	"github.com/sarchlab/sigmoid/tracing"
)

// Request asks the accelerator to evaluate the sigmoid of X.
type Request struct {
	ID string
	X  uint32
}

// Result is the outcome of a request.
type Result struct {
	ID        string
	X         uint32
	Output    uint32
	Cycles    int
	TimedOut  bool
	StartTime sim.VTimeInSec
	EndTime   sim.VTimeInSec
}

type resultEntry struct {
	ID        string
	Component string
	X         uint32
	Output    uint32
	Cycles    int
	TimedOut  bool
	StartTime float64
	EndTime   float64
}

// ResultTableName is the table the results are recorded into.
const ResultTableName = "sigmoid_results"

type transaction struct {
	req       Request
	cycles    int
	startTime sim.VTimeInSec
}

// Comp serves requests one at a time. Every request costs one reset cycle
// followed by the cycles the SigmoidUnit takes with X held on its input.
type Comp struct {
	*sim.TickingComponent

	unit      *fsm.SigmoidUnit
	maxCycles int
	recorder  datarecording.DataRecorder

	queue   []Request
	current *transaction
	results []Result
}

// Submit enqueues a request for x and returns the request ID.
func (c *Comp) Submit(x uint32) string {
	req := Request{
		ID: sim.GetIDGenerator().Generate(),
		X:  x,
	}

	c.Lock()
	c.queue = append(c.queue, req)
	c.Unlock()

	c.TickLater()

	return req.ID
}

// Results returns the results in completion order.
func (c *Comp) Results() []Result {
	c.Lock()
	defer c.Unlock()

	return append([]Result(nil), c.results...)
}

// Pending returns the number of requests that are not completed.
func (c *Comp) Pending() int {
	c.Lock()
	defer c.Unlock()

	n := len(c.queue)
	if c.current != nil {
		n++
	}

	return n
}

// Unit returns the SigmoidUnit of the component.
func (c *Comp) Unit() *fsm.SigmoidUnit {
	return c.unit
}

// Units returns all the computation units of the component.
func (c *Comp) Units() []fsm.Unit {
	return c.unit.Units()
}

// Snapshots returns the registers of all the computation units, taken
// between two ticks.
func (c *Comp) Snapshots() []fsm.Snapshot {
	c.Lock()
	defer c.Unlock()

	units := c.unit.Units()
	snapshots := make([]fsm.Snapshot, 0, len(units))

	for _, u := range units {
		snapshots = append(snapshots, u.Snapshot())
	}

	return snapshots
}

// Tick advances the component by one cycle.
func (c *Comp) Tick() bool {
	c.Lock()
	defer c.Unlock()

	if c.current == nil {
		return c.startNext()
	}

	return c.stepUnit()
}

func (c *Comp) startNext() bool {
	if len(c.queue) == 0 {
		return false
	}

	req := c.queue[0]
	c.queue = c.queue[1:]

	c.current = &transaction{
		req:       req,
		startTime: c.CurrentTime(),
	}
	c.unit.Step(true, fsm.Transport{})

	tracing.StartTask(req.ID, "", c, "req_in",
		fmt.Sprintf("sigmoid(%d)", req.X), req)

	return true
}

func (c *Comp) stepUnit() bool {
	trans := c.current
	trans.cycles++

	out := c.unit.Step(false, fsm.Transport{Data: trans.req.X})
	if out.End {
		c.complete(out.Out.Data, false)
		return true
	}

	if c.maxCycles > 0 && trans.cycles >= c.maxCycles {
		c.unit.Step(true, fsm.Transport{})
		tracing.AddTaskStep(trans.req.ID, c, tracing.StepAborted)
		c.complete(0, true)
	}

	return true
}

func (c *Comp) complete(output uint32, timedOut bool) {
	trans := c.current
	c.current = nil

	result := Result{
		ID:        trans.req.ID,
		X:         trans.req.X,
		Output:    output,
		Cycles:    trans.cycles,
		TimedOut:  timedOut,
		StartTime: trans.startTime,
		EndTime:   c.CurrentTime(),
	}
	c.results = append(c.results, result)

	tracing.EndTask(trans.req.ID, c)

	if c.recorder != nil {
		c.recorder.InsertData(ResultTableName, resultEntry{
			ID:        result.ID,
			Component: c.Name(),
			X:         result.X,
			Output:    result.Output,
			Cycles:    result.Cycles,
			TimedOut:  result.TimedOut,
			StartTime: float64(result.StartTime),
			EndTime:   float64(result.EndTime),
		})
	}
}
