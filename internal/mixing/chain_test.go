package mixing_test

import (
	"errors"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/nanomix/internal/mixing"
)

const kEG = 0.253

func tetra() []mixing.Species {
	return []mixing.Species{
		{Name: "Ag", Density: 10500, Conductivity: 429},
		{Name: "TiO2", Density: 4250, Conductivity: 8.9538},
		{Name: "GO", Density: 1800, Conductivity: 5000},
		{Name: "Co", Density: 8900, Conductivity: 100},
	}
}

var _ = Describe("ChainLevel", func() {
	It("leaves every stage at the base conductivity at zero loading", func() {
		res, err := mixing.ChainLevel(0, tetra(), kEG, rhoEG)
		Expect(err).NotTo(HaveOccurred())
		Expect(res.Conductivities).To(Equal([]float64{kEG, kEG, kEG, kEG}))
	})

	It("emits one conductivity per species", func() {
		res, err := mixing.ChainLevel(0.5, tetra(), kEG, rhoEG)
		Expect(err).NotTo(HaveOccurred())
		Expect(res.Level).To(Equal(0.5))
		Expect(res.Conductivities).To(HaveLen(4))
	})

	It("matches calling MixTwoPhase stage by stage", func() {
		const level = 0.5
		k := kEG
		want := make([]float64, 0, 4)
		for _, s := range tetra() {
			f, err := mixing.WeightFraction(level, s.Density, rhoEG)
			Expect(err).NotTo(HaveOccurred())
			k, err = mixing.MixTwoPhase(s.Conductivity, k, f)
			Expect(err).NotTo(HaveOccurred())
			want = append(want, k)
		}

		res, err := mixing.ChainLevel(level, tetra(), kEG, rhoEG)
		Expect(err).NotTo(HaveOccurred())
		Expect(res.Conductivities).To(Equal(want))
	})

	It("reproduces the reference ratios at 0.5 %", func() {
		res, err := mixing.ChainLevel(0.5, tetra(), kEG, rhoEG)
		Expect(err).NotTo(HaveOccurred())

		ratios := res.Ratios(kEG)
		Expect(ratios[0]).To(BeNumerically("~", 1.198304, 1e-5))
		Expect(ratios[1]).To(BeNumerically("~", 1.282688, 1e-5))
		Expect(ratios[2]).To(BeNumerically("~", 1.324642, 1e-5))
		Expect(ratios[3]).To(BeNumerically("~", 1.543659, 1e-5))
		Expect(res.Final()).To(Equal(res.Conductivities[3]))
	})

	It("depends on species order", func() {
		swapped := tetra()
		swapped[0], swapped[1] = swapped[1], swapped[0]

		a, err := mixing.ChainLevel(0.5, tetra(), kEG, rhoEG)
		Expect(err).NotTo(HaveOccurred())
		b, err := mixing.ChainLevel(0.5, swapped, kEG, rhoEG)
		Expect(err).NotTo(HaveOccurred())

		Expect(b.Final()).NotTo(BeNumerically("~", a.Final(), 1e-9))
		Expect(b.Final() / kEG).To(BeNumerically("~", 1.545353, 1e-5))
	})

	It("rejects an empty chain", func() {
		_, err := mixing.ChainLevel(0.5, nil, kEG, rhoEG)
		Expect(err).To(MatchError(mixing.ErrDomain))
	})

	It("rejects non-positive base properties", func() {
		_, err := mixing.ChainLevel(0.5, tetra(), 0, rhoEG)
		Expect(err).To(MatchError(mixing.ErrDomain))
		_, err = mixing.ChainLevel(0.5, tetra(), kEG, -1)
		Expect(err).To(MatchError(mixing.ErrDomain))
	})

	It("rejects an invalid species before mixing any stage", func() {
		chain := tetra()
		chain[2].Density = -1

		_, err := mixing.ChainLevel(0.5, chain, kEG, rhoEG)
		Expect(err).To(MatchError(mixing.ErrDomain))

		var se *mixing.StageError
		Expect(errors.As(err, &se)).To(BeTrue())
		Expect(se.Level).To(Equal(0.5))
		Expect(se.Stage).To(Equal(-1))
	})

	It("reports a level outside [0,100] against the first stage", func() {
		_, err := mixing.ChainLevel(120, tetra(), kEG, rhoEG)
		Expect(err).To(MatchError(mixing.ErrDomain))

		var se *mixing.StageError
		Expect(errors.As(err, &se)).To(BeTrue())
		Expect(se.Stage).To(Equal(0))
		Expect(se.Species).To(Equal("Ag"))
		Expect(se.Error()).To(ContainSubstring("stage 1 (Ag)"))
	})
})

var _ = Describe("Chain", func() {
	levels := []float64{0.005, 0.05, 0.1, 0.5, 1.0}

	It("computes every level independently and in order", func() {
		results, err := mixing.Chain(levels, tetra(), kEG, rhoEG)
		Expect(err).NotTo(HaveOccurred())
		Expect(results).To(HaveLen(len(levels)))

		for i, res := range results {
			Expect(res.Level).To(Equal(levels[i]))
			single, err := mixing.ChainLevel(levels[i], tetra(), kEG, rhoEG)
			Expect(err).NotTo(HaveOccurred())
			Expect(res.Conductivities).To(Equal(single.Conductivities))
		}
	})

	It("enhances conductivity monotonically with loading", func() {
		results, err := mixing.Chain(levels, tetra(), kEG, rhoEG)
		Expect(err).NotTo(HaveOccurred())

		for i := 1; i < len(results); i++ {
			Expect(results[i].Final()).To(BeNumerically(">", results[i-1].Final()))
		}
		Expect(results[4].Final() / kEG).To(BeNumerically("~", 2.32389, 1e-5))
		Expect(results[0].Final() / kEG).To(BeNumerically("~", 1.004497, 1e-5))
	})

	It("aborts on the first failing level", func() {
		_, err := mixing.Chain([]float64{0.1, -1, 0.5}, tetra(), kEG, rhoEG)
		Expect(err).To(MatchError(mixing.ErrDomain))

		var se *mixing.StageError
		Expect(errors.As(err, &se)).To(BeTrue())
		Expect(se.Level).To(Equal(-1.0))
	})

	It("never emits a non-positive conductivity across the full loading range", func() {
		failed := 0
		for level := 0.0; level <= 100; level += 5 {
			res, err := mixing.ChainLevel(level, tetra()[:1], kEG, rhoEG)
			if err != nil {
				Expect(err).To(MatchError(mixing.ErrArithmetic))
				failed++
				continue
			}
			for _, k := range res.Conductivities {
				Expect(k).To(BeNumerically(">", 0))
			}
		}
		Expect(failed).To(BeNumerically(">", 0))
	})

	It("reports the Ag pole as an arithmetic failure of the first stage", func() {
		below, err := mixing.ChainLevel(9.5, tetra()[:1], kEG, rhoEG)
		Expect(err).NotTo(HaveOccurred())
		Expect(below.Final()).To(BeNumerically(">", kEG))

		for _, level := range []float64{10, 50, 100} {
			_, err := mixing.ChainLevel(level, tetra()[:1], kEG, rhoEG)
			Expect(err).To(MatchError(mixing.ErrArithmetic))

			var se *mixing.StageError
			Expect(errors.As(err, &se)).To(BeTrue())
			Expect(se.Stage).To(Equal(0))
			Expect(se.Species).To(Equal("Ag"))
		}
	})

	It("returns an empty sweep for no levels", func() {
		results, err := mixing.Chain(nil, tetra(), kEG, rhoEG)
		Expect(err).NotTo(HaveOccurred())
		Expect(results).To(BeEmpty())
	})
})
