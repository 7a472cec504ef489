package mixing

import "math"

// Species is a dispersed particle material.
type Species struct {
	Name         string
	Density      float64 // kg/m³
	Conductivity float64 // W/mK
}

// BaseFluid is the continuous phase every chain starts from.
type BaseFluid struct {
	Name         string
	Density      float64
	Conductivity float64
}

// StageResult holds the cumulative mixture conductivity after each species
// in the chain has been added, for one loading level.
type StageResult struct {
	Level          float64
	Conductivities []float64
}

// Final returns the conductivity after every species has been added.
func (r StageResult) Final() float64 {
	if len(r.Conductivities) == 0 {
		return 0
	}
	return r.Conductivities[len(r.Conductivities)-1]
}

// Ratios returns each stage's enhancement relative to kBase.
func (r StageResult) Ratios(kBase float64) []float64 {
	out := make([]float64, len(r.Conductivities))
	for i, k := range r.Conductivities {
		out[i] = k / kBase
	}
	return out
}

func positive(v float64) bool {
	return v > 0 && !math.IsInf(v, 0)
}

// ValidateChain checks the inputs shared by every level of a sweep.
func ValidateChain(species []Species, kBase, rhoBase float64) error {
	if len(species) == 0 {
		return domainErr("species chain is empty")
	}
	if !positive(kBase) {
		return domainErr("base conductivity %g must be positive", kBase)
	}
	if !positive(rhoBase) {
		return domainErr("base density %g must be positive", rhoBase)
	}
	for _, s := range species {
		if !positive(s.Conductivity) {
			return domainErr("%s conductivity %g must be positive", s.Name, s.Conductivity)
		}
		if !positive(s.Density) {
			return domainErr("%s density %g must be positive", s.Name, s.Density)
		}
	}
	return nil
}

// ChainLevel folds MixTwoPhase over species at one loading level (percent).
// Each species' fraction comes from the level and the base density rhoBase.
func ChainLevel(level float64, species []Species, kBase, rhoBase float64) (StageResult, error) {
	if err := ValidateChain(species, kBase, rhoBase); err != nil {
		return StageResult{}, &StageError{Level: level, Stage: -1, Wrapped: err}
	}

	res := StageResult{
		Level:          level,
		Conductivities: make([]float64, 0, len(species)),
	}

	k := kBase
	for i, s := range species {
		f, err := WeightFraction(level, s.Density, rhoBase)
		if err != nil {
			return StageResult{}, &StageError{Level: level, Stage: i, Species: s.Name, Wrapped: err}
		}
		k, err = MixTwoPhase(s.Conductivity, k, f)
		if err != nil {
			return StageResult{}, &StageError{Level: level, Stage: i, Species: s.Name, Wrapped: err}
		}
		res.Conductivities = append(res.Conductivities, k)
	}

	return res, nil
}

// Chain runs ChainLevel for every level in order and stops at the first
// failure. Callers that want to skip failing levels call ChainLevel directly.
func Chain(levels []float64, species []Species, kBase, rhoBase float64) ([]StageResult, error) {
	results := make([]StageResult, 0, len(levels))
	for _, level := range levels {
		res, err := ChainLevel(level, species, kBase, rhoBase)
		if err != nil {
			return nil, err
		}
		results = append(results, res)
	}
	return results, nil
}
