package mixing_test

import (
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/nanomix/internal/mixing"
)

const rhoEG = 1115.0

var _ = Describe("VolumeToWeightFraction", func() {
	It("returns exactly zero at zero loading", func() {
		w, err := mixing.VolumeToWeightFraction(0, 10500, rhoEG)
		Expect(err).NotTo(HaveOccurred())
		Expect(w).To(Equal(0.0))
	})

	It("returns 100 at full loading", func() {
		w, err := mixing.VolumeToWeightFraction(100, 10500, rhoEG)
		Expect(err).NotTo(HaveOccurred())
		Expect(w).To(BeNumerically("~", 100, 1e-12))
	})

	It("converts silver in ethylene glycol at 0.5 %", func() {
		w, err := mixing.VolumeToWeightFraction(0.5, 10500, rhoEG)
		Expect(err).NotTo(HaveOccurred())
		Expect(w).To(BeNumerically("~", 4.518364, 1e-5))

		f, err := mixing.WeightFraction(0.5, 10500, rhoEG)
		Expect(err).NotTo(HaveOccurred())
		Expect(f).To(BeNumerically("~", w/100, 1e-15))
	})

	It("equals the volume fraction when densities match", func() {
		w, err := mixing.VolumeToWeightFraction(37, rhoEG, rhoEG)
		Expect(err).NotTo(HaveOccurred())
		Expect(w).To(BeNumerically("~", 37, 1e-12))
	})

	It("is strictly increasing in the volume fraction for a denser particle", func() {
		prev := -1.0
		for p := 0.5; p < 100; p += 0.5 {
			w, err := mixing.VolumeToWeightFraction(p, 8900, rhoEG)
			Expect(err).NotTo(HaveOccurred())
			Expect(w).To(BeNumerically(">", prev))
			prev = w
		}
	})

	It("is strictly increasing in the density ratio", func() {
		prev := -1.0
		for _, rho := range []float64{500, 1115, 1800, 4250, 8900, 10500} {
			w, err := mixing.VolumeToWeightFraction(1, rho, rhoEG)
			Expect(err).NotTo(HaveOccurred())
			Expect(w).To(BeNumerically(">", prev))
			prev = w
		}
	})

	DescribeTable("stays within [0,100]",
		func(phi, rhoS float64) {
			w, err := mixing.VolumeToWeightFraction(phi, rhoS, rhoEG)
			Expect(err).NotTo(HaveOccurred())
			Expect(w).To(BeNumerically(">=", 0))
			Expect(w).To(BeNumerically("<=", 100))
		},
		Entry("tiny loading, light particle", 0.005, 1.0),
		Entry("tiny loading, heavy particle", 0.005, 1e6),
		Entry("half loading", 50.0, 4250.0),
		Entry("near full loading", 99.999, 1800.0),
		Entry("full loading", 100.0, 8900.0),
	)

	DescribeTable("rejects values outside the domain",
		func(phi, rhoS, rhoF float64) {
			_, err := mixing.VolumeToWeightFraction(phi, rhoS, rhoF)
			Expect(err).To(MatchError(mixing.ErrDomain))
		},
		Entry("negative particle density", 50.0, -1.0, rhoEG),
		Entry("zero particle density", 50.0, 0.0, rhoEG),
		Entry("zero fluid density", 50.0, 10500.0, 0.0),
		Entry("negative fluid density", 50.0, 10500.0, -1115.0),
		Entry("negative fraction", -0.1, 10500.0, rhoEG),
		Entry("fraction above 100", 100.1, 10500.0, rhoEG),
		Entry("NaN fraction", math.NaN(), 10500.0, rhoEG),
		Entry("infinite density", 1.0, math.Inf(1), rhoEG),
	)
})
