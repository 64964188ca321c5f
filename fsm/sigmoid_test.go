package fsm

import (
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/sarchlab/sigmoid/fixedpoint"
	"github.com/sarchlab/sigmoid/tracing"
)

type recordingTracer struct {
	started []tracing.Task
	steps   []tracing.Task
	ended   []tracing.Task
}

func (t *recordingTracer) StartTask(task tracing.Task) {
	t.started = append(t.started, task)
}

func (t *recordingTracer) StepTask(task tracing.Task) {
	t.steps = append(t.steps, task)
}

func (t *recordingTracer) EndTask(task tracing.Task) {
	t.ended = append(t.ended, task)
}

func reference(x float64) float64 {
	return 65536 / (1 + math.Exp(-x))
}

var _ = Describe("SigmoidUnit", func() {
	var u *SigmoidUnit

	BeforeEach(func() {
		u = NewSigmoidUnit("Sigmoid", fixedpoint.Q16, DefaultPrecision)
	})

	DescribeTable("approximating the sigmoid",
		func(x, expected uint32) {
			out, ticks, err := RunSigmoid(u, x, 1000)

			Expect(err).ToNot(HaveOccurred())
			Expect(out).To(Equal(expected))
			Expect(ticks).To(Equal(74))
		},
		Entry("x=0", uint32(0), uint32(32768)),
		Entry("x=1", uint32(1), uint32(47863)),
		Entry("x=2", uint32(2), uint32(57343)),
		Entry("x=8", uint32(8), uint32(65316)),
	)

	It("should stay close to the reference values", func() {
		out, _, err := RunSigmoid(u, 2, 1000)
		Expect(err).ToNot(HaveOccurred())
		Expect(float64(out)).To(BeNumerically("~", reference(2), 400))

		out, _, err = RunSigmoid(u, 8, 1000)
		Expect(err).ToNot(HaveOccurred())
		Expect(float64(out)).To(BeNumerically("~", reference(8), 250))
	})

	DescribeTable("latency and value by precision",
		func(precision, x, expected uint32, expectedTicks int) {
			u := NewSigmoidUnit("Sigmoid", fixedpoint.Q16, precision)

			out, ticks, err := RunSigmoid(u, x, 1000)

			Expect(err).ToNot(HaveOccurred())
			Expect(out).To(Equal(expected))
			Expect(ticks).To(Equal(expectedTicks))
		},
		Entry("term 0 only", uint32(0), uint32(8), uint32(32768), 6),
		Entry("two terms", uint32(1), uint32(1), uint32(43690), 12),
		Entry("three terms", uint32(2), uint32(2), uint32(54613), 24),
		Entry("four terms", uint32(3), uint32(8), uint32(65021), 44),
		Entry("six terms", uint32(5), uint32(2), uint32(57608), 116),
	)

	It("should not pulse end before the first exponential result", func() {
		u.Step(true, Transport{})

		for i := 1; i < 74; i++ {
			out := u.Step(false, Transport{Data: 2})
			Expect(out.End).To(BeFalse())
			Expect(u.Snapshot().Output).To(Equal(uint32(0)))
		}

		out := u.Step(false, Transport{Data: 2})
		Expect(out).To(Equal(SigmoidOutputs{
			End: true,
			Out: Transport{Data: 57343},
		}))
	})

	It("should discard the request on reset", func() {
		u.Step(true, Transport{})
		for i := 0; i < 50; i++ {
			u.Step(false, Transport{Data: 8})
		}

		out := u.Step(true, Transport{Data: 8})
		Expect(out.End).To(BeFalse())

		for _, sub := range u.Units() {
			Expect(sub.Snapshot().State).To(Equal("Counting"))
			Expect(sub.Snapshot().Counter).To(Equal(uint32(0)))
		}

		value, ticks, err := RunSigmoid(u, 0, 1000)
		Expect(err).ToNot(HaveOccurred())
		Expect(value).To(Equal(uint32(32768)))
		Expect(ticks).To(Equal(74))
	})

	It("should expose all units", func() {
		names := []string{}
		for _, sub := range u.Units() {
			names = append(names, sub.Name())
		}

		Expect(names).To(Equal([]string{
			"Sigmoid",
			"Sigmoid.Exp",
			"Sigmoid.Exp.Power",
			"Sigmoid.Exp.Factorial",
		}))
	})

	It("should trace requests", func() {
		sigmoidTracer := &recordingTracer{}
		expTracer := &recordingTracer{}
		tracing.CollectTrace(u, sigmoidTracer)
		tracing.CollectTrace(u.Exp(), expTracer)

		_, _, err := RunSigmoid(u, 2, 1000)
		Expect(err).ToNot(HaveOccurred())

		Expect(sigmoidTracer.started).To(HaveLen(1))
		Expect(sigmoidTracer.ended).To(HaveLen(1))
		Expect(sigmoidTracer.started[0].Kind).To(Equal("sigmoid"))
		Expect(sigmoidTracer.started[0].What).To(Equal("sigmoid(2)"))
		Expect(sigmoidTracer.started[0].Where).To(Equal("Sigmoid"))

		Expect(expTracer.started).ToNot(BeEmpty())
		Expect(expTracer.started[0].ParentID).
			To(Equal(sigmoidTracer.started[0].ID))
		Expect(expTracer.ended[0].ID).To(Equal(expTracer.started[0].ID))
	})

	It("should abort traced requests on reset", func() {
		tracer := tracing.NewTagCountTracer(tracing.AllTasks)
		tracing.CollectTrace(u, tracer)

		_, _, err := RunSigmoid(u, 2, 1000)
		Expect(err).ToNot(HaveOccurred())
		for i := 0; i < 10; i++ {
			u.Step(false, Transport{Data: 2})
		}
		u.Step(true, Transport{})

		Expect(tracer.GetTagCount("sigmoid(2)")).To(Equal(uint64(1)))
		Expect(tracer.AbortCount()).To(Equal(uint64(1)))
	})

	It("should panic in an invalid state", func() {
		u.state = State(5)

		Expect(func() { u.Step(false, Transport{}) }).To(Panic())
	})
})
