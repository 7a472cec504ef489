// Package mixing computes effective thermal conductivity of nanofluids built
// up one particle species at a time.
//
// The package is built in three steps, each on top of the previous one:
//
//   - [VolumeToWeightFraction]: converts a particle volume fraction (percent)
//     into a weight fraction using the particle and base-fluid densities
//   - [MixTwoPhase]: one Maxwell effective-medium step
//   - [ChainLevel] and [Chain]: fold [MixTwoPhase] over an ordered species
//     list, feeding each stage's conductivity in as the next continuous phase
//
// # Example
//
//	base := mixing.BaseFluid{Name: "EG", Density: 1115, Conductivity: 0.253}
//	chain := []mixing.Species{{Name: "Ag", Density: 10500, Conductivity: 429}}
//	res, err := mixing.ChainLevel(0.5, chain, base.Conductivity, base.Density)
//
// # Fractions
//
// Every species' fraction is derived from the requested loading level and
// the original base-fluid density, never from the evolving mixture. The
// weight fraction is passed to the Maxwell step where a volume fraction would
// normally go. Both choices make the result depend on species order.
//
// Everything here is pure and safe for concurrent use.
package mixing
