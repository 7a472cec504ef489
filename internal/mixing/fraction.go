package mixing

import "math"

// VolumeToWeightFraction converts a volume fraction in percent to the weight
// fraction in percent for a particle of density rhoSolid dispersed in a fluid
// of density rhoFluid.
func VolumeToWeightFraction(phiPercent, rhoSolid, rhoFluid float64) (float64, error) {
	if math.IsNaN(phiPercent) || phiPercent < 0 || phiPercent > 100 {
		return 0, domainErr("volume fraction %g%% not in [0,100]", phiPercent)
	}
	if !(rhoSolid > 0) || math.IsInf(rhoSolid, 0) {
		return 0, domainErr("particle density %g must be positive", rhoSolid)
	}
	if !(rhoFluid > 0) || math.IsInf(rhoFluid, 0) {
		return 0, domainErr("fluid density %g must be positive", rhoFluid)
	}

	phi := phiPercent / 100
	solid := rhoSolid * phi
	return solid / (solid + rhoFluid*(1-phi)) * 100, nil
}

// WeightFraction is VolumeToWeightFraction expressed as a decimal in [0,1].
func WeightFraction(phiPercent, rhoSolid, rhoFluid float64) (float64, error) {
	w, err := VolumeToWeightFraction(phiPercent, rhoSolid, rhoFluid)
	if err != nil {
		return 0, err
	}
	return w / 100, nil
}
