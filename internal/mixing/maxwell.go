package mixing

import "math"

// MaxwellRatio returns k_mixture / k_continuous for a dispersed phase of
// conductivity kd at fraction f in a continuous phase of conductivity kc.
func MaxwellRatio(kd, kc, f float64) (float64, error) {
	if math.IsNaN(f) || f < 0 || f > 1 {
		return 0, domainErr("fraction %g not in [0,1]", f)
	}
	if !positive(kd) || !positive(kc) {
		return 0, domainErr("conductivities must be positive and finite (kd=%g, kc=%g)", kd, kc)
	}

	diff := kc - kd
	num := kd + 2*kc - 2*f*diff
	den := kd + 2*kc + 2*f*diff
	// den reaches zero at f = (kd+2kc)/(2(kd-kc)) when kd > 4kc; past the pole
	// the ratio turns negative.
	if den <= 0 {
		return 0, arithErr("maxwell denominator %g not positive (kd=%g, kc=%g, f=%g)", den, kd, kc, f)
	}

	ratio := num / den
	if math.IsNaN(ratio) || math.IsInf(ratio, 0) {
		return 0, arithErr("maxwell ratio not finite (kd=%g, kc=%g, f=%g)", kd, kc, f)
	}
	return ratio, nil
}

// MixTwoPhase applies one Maxwell step and returns the mixture conductivity.
func MixTwoPhase(kDispersed, kContinuous, fraction float64) (float64, error) {
	ratio, err := MaxwellRatio(kDispersed, kContinuous, fraction)
	if err != nil {
		return 0, err
	}

	k := ratio * kContinuous
	if !positive(k) {
		return 0, arithErr("mixture conductivity %g out of range (kc=%g, ratio=%g)", k, kContinuous, ratio)
	}
	return k, nil
}
