package sim

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

type queueTestEvent struct {
	*EventBase
	tag int
}

func newQueueTestEvent(t VTimeInSec, tag int) queueTestEvent {
	return queueTestEvent{EventBase: NewEventBase(t, nil), tag: tag}
}

var _ = Describe("EventQueueImpl", func() {
	var queue *EventQueueImpl

	BeforeEach(func() {
		queue = NewEventQueue()
	})

	It("should pop in time order", func() {
		for i, t := range []VTimeInSec{3, 1, 4, 1.5, 9, 2} {
			queue.Push(newQueueTestEvent(t, i))
		}

		Expect(queue.Len()).To(Equal(6))

		last := VTimeInSec(0)
		for queue.Len() > 0 {
			evt := queue.Pop()
			Expect(evt.Time()).To(BeNumerically(">=", last))
			last = evt.Time()
		}
	})

	It("should keep push order among events of the same time", func() {
		for i := 0; i < 10; i++ {
			queue.Push(newQueueTestEvent(5, i))
		}

		for i := 0; i < 10; i++ {
			Expect(queue.Peek().(queueTestEvent).tag).To(Equal(i))
			Expect(queue.Pop().(queueTestEvent).tag).To(Equal(i))
		}
	})
})
