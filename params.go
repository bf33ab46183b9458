package normalmap

import "math"

// DefaultStrength is the strength used when none is given.
const DefaultStrength = 0.25

// Params are the user-facing knobs of MakeNormals.
type Params struct {
	// Strength amplifies the gradients. It is divided by 4 internally;
	// zero selects an internal factor of 1.
	Strength float64

	// MinDetail removes detail finer than this many pixels (low-pass).
	// Zero disables it.
	MinDetail float64

	// MaxDetail removes detail coarser than this many pixels (high-pass)
	// and stops the pyramid once its octave exceeds the value.
	// Zero means unbounded.
	MaxDetail float64
}

// DefaultParams returns DefaultStrength with band-pass filtering disabled.
func DefaultParams() Params {
	return Params{Strength: DefaultStrength}
}

// Clamp returns p with every field raised to at least 0. NaN becomes 0.
func (p Params) Clamp() Params {
	return Params{
		Strength:  clampNonNegative(p.Strength),
		MinDetail: clampNonNegative(p.MinDetail),
		MaxDetail: clampNonNegative(p.MaxDetail),
	}
}

func clampNonNegative(v float64) float64 {
	if math.IsNaN(v) || v < 0 {
		return 0
	}
	return v
}

// gradientScale is the factor applied to the Scharr responses.
func (p Params) gradientScale() float64 {
	s := p.Strength / 4
	if !(s > 0) {
		return 1
	}
	return s
}

// pyramidLevels returns the total number of pyramid levels MaxDetail
// allows, or 0 for no limit. The pyramid stops right after the level whose
// count c satisfies 2^c > MaxDetail, and at least two levels are always
// attempted.
func pyramidLevels(maxDetail float64) int {
	if !(maxDetail > 0) || math.IsInf(maxDetail, 1) {
		return 0
	}
	c := 2
	for math.Ldexp(1, c) <= maxDetail {
		c++
	}
	return c
}
