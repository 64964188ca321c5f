package fsm

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/sarchlab/sigmoid/fixedpoint"
)

var _ = Describe("ExponentialUnit", func() {
	DescribeTable("approximating e^x",
		func(precision, x, expected uint32, expectedTicks int) {
			u := NewExponentialUnit("Exp", fixedpoint.Q16, precision)

			out, ticks, err := RunExponential(u, x, 1000)

			Expect(err).ToNot(HaveOccurred())
			Expect(out).To(Equal(expected))
			Expect(ticks).To(Equal(expectedTicks))
		},
		Entry("x=0", uint32(4), uint32(0), uint32(65536), 72),
		Entry("x=1", uint32(4), uint32(1), uint32(177492), 72),
		Entry("x=2", uint32(4), uint32(2), uint32(458751), 72),
		Entry("x=8", uint32(4), uint32(8), uint32(19464191), 72),
		Entry("term 0 only", uint32(0), uint32(8), uint32(65536), 4),
		Entry("two terms", uint32(1), uint32(2), uint32(196608), 10),
		Entry("three terms", uint32(2), uint32(8), uint32(2686976), 22),
		Entry("four terms", uint32(3), uint32(2), uint32(415061), 42),
		Entry("six terms", uint32(5), uint32(8), uint32(37359888), 114),
	)

	It("should increase with the precision for a positive x", func() {
		var last uint32

		for precision := uint32(0); precision <= 6; precision++ {
			u := NewExponentialUnit("Exp", fixedpoint.Q16, precision)

			out, _, err := RunExponential(u, 2, 10000)

			Expect(err).ToNot(HaveOccurred())
			Expect(out).To(BeNumerically(">", last))
			last = out
		}
	})

	It("should wrap the sum at 32 bits", func() {
		format := fixedpoint.Format{Fraction: 31}

		u := NewExponentialUnit("Exp", format, 1)
		out, ticks, err := RunExponential(u, 1, 1000)
		Expect(err).ToNot(HaveOccurred())
		Expect(out).To(Equal(uint32(0)))
		Expect(ticks).To(Equal(10))

		u = NewExponentialUnit("Exp", format, 4)
		out, ticks, err = RunExponential(u, 1, 1000)
		Expect(err).ToNot(HaveOccurred())
		Expect(out).To(Equal(uint32(1521134250)))
		Expect(ticks).To(Equal(72))
	})

	It("should name its sub-units after itself", func() {
		u := NewExponentialUnit("Exp", fixedpoint.Q16, 4)

		Expect(u.Power().Name()).To(Equal("Exp.Power"))
		Expect(u.Factorial().Name()).To(Equal("Exp.Factorial"))
		Expect(u.Units()).To(HaveLen(3))
	})

	It("should not progress while start is low", func() {
		u := NewExponentialUnit("Exp", fixedpoint.Q16, 4)
		u.Step(true, ExpInputs{})

		for i := 0; i < 200; i++ {
			out := u.Step(false, ExpInputs{X: 2})
			Expect(out.End).To(BeFalse())
		}

		Expect(u.Snapshot().Counter).To(Equal(uint32(0)))
		Expect(u.Power().Snapshot().Counter).To(Equal(uint32(0)))
		Expect(u.Factorial().Snapshot().Counter).To(Equal(uint32(0)))
	})

	It("should reset the whole hierarchy", func() {
		u := NewExponentialUnit("Exp", fixedpoint.Q16, 4)
		u.Step(true, ExpInputs{})
		for i := 0; i < 30; i++ {
			u.Step(false, ExpInputs{Start: true, X: 2})
		}

		u.Step(true, ExpInputs{Start: true, X: 2})

		for _, sub := range u.Units() {
			snapshot := sub.Snapshot()
			Expect(snapshot.State).To(Equal("Counting"))
			Expect(snapshot.Counter).To(Equal(uint32(0)))
			Expect(snapshot.End).To(BeFalse())
			Expect(snapshot.Output).To(Equal(uint32(0)))
		}
		Expect(u.Snapshot().Accumulator).To(Equal(uint32(65536)))

		out, ticks, err := RunExponential(u, 2, 1000)
		Expect(err).ToNot(HaveOccurred())
		Expect(out).To(Equal(uint32(458751)))
		Expect(ticks).To(Equal(72))
	})

	It("should reject a precision whose factorials wrap", func() {
		Expect(func() {
			NewExponentialUnit("Exp", fixedpoint.Q16, MaxPrecision+1)
		}).To(Panic())
	})

	It("should panic in an invalid state", func() {
		u := NewExponentialUnit("Exp", fixedpoint.Q16, 4)
		u.state = State(3)

		Expect(func() {
			u.Step(false, ExpInputs{Start: true})
		}).To(Panic())
	})
})
