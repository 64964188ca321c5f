package tracing

import (
	"sync"
)

// TagCountTracer counts the completed tasks by their What field.
type TagCountTracer struct {
	filter TaskFilter
	lock   sync.Mutex

	inflightTasks map[string]Task
	tagNames      []string
	tagCount      map[string]uint64
	abortCount    uint64
}

// NewTagCountTracer creates a new TagCountTracer
func NewTagCountTracer(filter TaskFilter) *TagCountTracer {
	return &TagCountTracer{
		filter:        filter,
		inflightTasks: make(map[string]Task),
		tagCount:      make(map[string]uint64),
	}
}

// GetTagNames returns all the tag names collected, in first-seen order.
func (t *TagCountTracer) GetTagNames() []string {
	t.lock.Lock()
	defer t.lock.Unlock()

	return append([]string(nil), t.tagNames...)
}

// GetTagCount returns the number of completed tasks with a certain tag.
func (t *TagCountTracer) GetTagCount(tagName string) uint64 {
	t.lock.Lock()
	defer t.lock.Unlock()

	return t.tagCount[tagName]
}

// AbortCount returns the number of tasks discarded before completion.
func (t *TagCountTracer) AbortCount() uint64 {
	t.lock.Lock()
	defer t.lock.Unlock()

	return t.abortCount
}

// StartTask remembers the task so that its tag is known at the end.
func (t *TagCountTracer) StartTask(task Task) {
	if !t.filter(task) {
		return
	}

	t.lock.Lock()
	t.inflightTasks[task.ID] = task
	t.lock.Unlock()
}

// StepTask counts aborted tasks.
func (t *TagCountTracer) StepTask(task Task) {
	if !isAborted(task) {
		return
	}

	t.lock.Lock()
	defer t.lock.Unlock()

	if _, ok := t.inflightTasks[task.ID]; ok {
		delete(t.inflightTasks, task.ID)
		t.abortCount++
	}
}

// EndTask counts the tag of a completed task.
func (t *TagCountTracer) EndTask(task Task) {
	t.lock.Lock()
	defer t.lock.Unlock()

	original, ok := t.inflightTasks[task.ID]
	if !ok {
		return
	}

	delete(t.inflightTasks, task.ID)

	if _, seen := t.tagCount[original.What]; !seen {
		t.tagNames = append(t.tagNames, original.What)
	}

	t.tagCount[original.What]++
}
