package tracing

import (
	"sync"

	"github.com/sarchlab/sigmoid/datarecording"
	"github.com/sarchlab/sigmoid/sim"
	"github.com/tebeka/atexit"
)

// TraceTableName is the table that a DBTracer writes into.
const TraceTableName = "trace"

type taskTableEntry struct {
	ID        string
	ParentID  string
	Kind      string
	What      string
	Location  string
	StartTime float64
	EndTime   float64
	Aborted   bool
}

// DBTracer is a tracer that stores the tasks into a data recorder once they
// end.
type DBTracer struct {
	lock       sync.Mutex
	timeTeller sim.TimeTeller
	backend    datarecording.DataRecorder

	tracingTasks map[string]Task
	aborted      map[string]bool
}

// NewDBTracer creates a new DBTracer. The tracer flushes the recorder at exit.
func NewDBTracer(
	timeTeller sim.TimeTeller,
	dataRecorder datarecording.DataRecorder,
) *DBTracer {
	dataRecorder.CreateTable(TraceTableName, taskTableEntry{})

	t := &DBTracer{
		timeTeller:   timeTeller,
		backend:      dataRecorder,
		tracingTasks: make(map[string]Task),
		aborted:      make(map[string]bool),
	}

	atexit.Register(func() {
		t.Terminate()
	})

	return t
}

// StartTask marks the start of a task.
func (t *DBTracer) StartTask(task Task) {
	t.lock.Lock()
	defer t.lock.Unlock()

	task.StartTime = t.timeTeller.CurrentTime()
	t.tracingTasks[task.ID] = task
}

// StepTask remembers whether the task was aborted.
func (t *DBTracer) StepTask(task Task) {
	if !isAborted(task) {
		return
	}

	t.lock.Lock()
	t.aborted[task.ID] = true
	t.lock.Unlock()
}

// EndTask writes the task into the recorder.
func (t *DBTracer) EndTask(task Task) {
	t.lock.Lock()
	defer t.lock.Unlock()

	original, ok := t.tracingTasks[task.ID]
	if !ok {
		return
	}

	entry := taskTableEntry{
		ID:        original.ID,
		ParentID:  original.ParentID,
		Kind:      original.Kind,
		What:      original.What,
		Location:  original.Where,
		StartTime: float64(original.StartTime),
		EndTime:   float64(t.timeTeller.CurrentTime()),
		Aborted:   t.aborted[task.ID],
	}
	t.backend.InsertData(TraceTableName, entry)

	delete(t.tracingTasks, task.ID)
	delete(t.aborted, task.ID)
}

// Terminate drops the unfinished tasks and flushes the recorder.
func (t *DBTracer) Terminate() {
	t.lock.Lock()
	defer t.lock.Unlock()

	t.tracingTasks = make(map[string]Task)
	t.aborted = make(map[string]bool)
	t.backend.Flush()
}
