package mixing_test

import (
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/nanomix/internal/mixing"
)

var _ = Describe("MixTwoPhase", func() {
	It("is a no-op at zero fraction", func() {
		k, err := mixing.MixTwoPhase(429, 0.253, 0)
		Expect(err).NotTo(HaveOccurred())
		Expect(k).To(Equal(0.253))
	})

	It("returns the continuous phase when both phases match", func() {
		for _, f := range []float64{0, 0.1, 0.5, 0.9, 1} {
			k, err := mixing.MixTwoPhase(3.2, 3.2, f)
			Expect(err).NotTo(HaveOccurred())
			Expect(k).To(BeNumerically("~", 3.2, 1e-12))
		}
	})

	It("enhances a poor conductor with a good one", func() {
		ratio, err := mixing.MaxwellRatio(429, 0.253, 0.04518364)
		Expect(err).NotTo(HaveOccurred())
		Expect(ratio).To(BeNumerically("~", 1.198304, 1e-5))
		Expect(ratio).To(BeNumerically(">", 1))
	})

	It("degrades a good conductor with a poor one", func() {
		k, err := mixing.MixTwoPhase(0.1, 400, 0.2)
		Expect(err).NotTo(HaveOccurred())
		Expect(k).To(BeNumerically("<", 400))
		Expect(k).To(BeNumerically(">", 0))
	})

	It("fails on a zero denominator instead of returning infinity", func() {
		_, err := mixing.MixTwoPhase(4, 1, 1)
		Expect(err).To(MatchError(mixing.ErrArithmetic))
	})

	It("fails past the pole instead of returning a negative conductivity", func() {
		// kd > 4kc puts the pole inside [0,1]
		_, err := mixing.MixTwoPhase(429, 0.253, 0.6)
		Expect(err).To(MatchError(mixing.ErrArithmetic))

		_, err = mixing.MixTwoPhase(429, 0.253, 1)
		Expect(err).To(MatchError(mixing.ErrArithmetic))
	})

	DescribeTable("rejects conductivities that are not positive and finite",
		func(kd, kc float64) {
			k, err := mixing.MixTwoPhase(kd, kc, 0.5)
			Expect(err).To(MatchError(mixing.ErrDomain))
			Expect(k).To(BeZero())
		},
		Entry("negative dispersed", -1.0, 1.0),
		Entry("negative continuous", 5.0, -1.0),
		Entry("zero dispersed", 0.0, 1.0),
		Entry("zero continuous", 5.0, 0.0),
		Entry("infinite dispersed", math.Inf(1), 1.0),
		Entry("NaN continuous", 5.0, math.NaN()),
	)

	It("rejects a negative conductivity even at zero fraction", func() {
		_, err := mixing.MixTwoPhase(-2, 1, 0)
		Expect(err).To(MatchError(mixing.ErrDomain))
	})

	It("stays positive for positive inputs wherever it succeeds", func() {
		for _, kd := range []float64{0.01, 0.253, 8.9538, 429, 5000} {
			for f := 0.0; f <= 1; f += 0.05 {
				k, err := mixing.MixTwoPhase(kd, 0.253, f)
				if err != nil {
					Expect(err).To(MatchError(mixing.ErrArithmetic))
					continue
				}
				Expect(k).To(BeNumerically(">", 0))
			}
		}
	})

	DescribeTable("rejects fractions outside [0,1]",
		func(f float64) {
			_, err := mixing.MixTwoPhase(429, 0.253, f)
			Expect(err).To(MatchError(mixing.ErrDomain))
		},
		Entry("negative", -0.01),
		Entry("above one", 1.01),
		Entry("percent passed by mistake", 4.5),
		Entry("NaN", math.NaN()),
	)
})
