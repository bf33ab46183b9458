package field

// Direction selects the axis a derivative is taken along.
type Direction uint8

const (
	// DirX differentiates along rows (horizontal gradient).
	DirX Direction = iota

	// DirY differentiates along columns (vertical gradient).
	DirY
)

// String returns a string representation of the direction.
func (d Direction) String() string {
	switch d {
	case DirX:
		return "X"
	case DirY:
		return "Y"
	default:
		return "Unknown"
	}
}

// Scharr 3x3 first derivative: a central difference along the derivative
// axis, smoothed with 3-10-3 across it. The smoothing weights make the
// operator closer to rotation invariant than Sobel's 1-2-1.
var (
	scharrDeriv  = []float64{-1, 0, 1}
	scharrSmooth = []float64{3, 10, 3}
)

// Scharr returns the Scharr derivative of f along dir, multiplied by scale.
// Borders are reflect-101.
func Scharr(f *Field, dir Direction, scale float64) *Field {
	var g *Field
	if dir == DirY {
		g = SepFilter(f, scharrSmooth, scharrDeriv)
	} else {
		g = SepFilter(f, scharrDeriv, scharrSmooth)
	}
	if scale == 1 {
		return g
	}
	return Scale(scale, g)
}
