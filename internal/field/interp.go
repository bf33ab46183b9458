package field

import (
	"math"

	"gonum.org/v1/gonum/floats"
)

// InterpolationMode defines how a field is resampled to a new size.
type InterpolationMode uint8

const (
	// InterpNearest selects the closest sample (no interpolation).
	InterpNearest InterpolationMode = iota

	// InterpBilinear performs linear interpolation between 2x2 neighbors.
	InterpBilinear

	// InterpCubic performs cubic convolution over a 4x4 neighborhood.
	InterpCubic

	// InterpArea averages the source samples covered by each destination
	// sample, weighted by overlap. Axes that are enlarged fall back to
	// bilinear.
	InterpArea
)

// cubicA is the free parameter of the cubic convolution kernel.
const cubicA = -0.75

// String returns a string representation of the interpolation mode.
func (m InterpolationMode) String() string {
	switch m {
	case InterpNearest:
		return "Nearest"
	case InterpBilinear:
		return "Bilinear"
	case InterpCubic:
		return "Cubic"
	case InterpArea:
		return "Area"
	default:
		return "Unknown"
	}
}

// taps lists the source samples and weights contributing to one
// destination sample along one axis.
type taps struct {
	idx []int
	w   []float64
}

// Resize resamples f to width x height. Sample centers are aligned
// ((dst+0.5)*scale - 0.5) and borders replicate the edge sample.
func Resize(f *Field, width, height int, mode InterpolationMode) (*Field, error) {
	if width <= 0 || height <= 0 {
		return nil, ErrInvalidDimensions
	}
	sw, sh := f.Bounds()
	if sw == width && sh == height {
		return f.Clone(), nil
	}
	return resample(f, axisTaps(sw, width, mode), axisTaps(sh, height, mode)), nil
}

// axisTaps builds the per-destination taps for one axis.
func axisTaps(src, dst int, mode InterpolationMode) []taps {
	if mode == InterpArea && dst < src {
		return areaTaps(src, dst)
	}

	scale := float64(src) / float64(dst)
	out := make([]taps, dst)
	for i := range out {
		switch mode {
		case InterpNearest:
			j := clampIndex(int(math.Floor(float64(i)*scale)), src)
			out[i] = taps{idx: []int{j}, w: []float64{1}}

		case InterpCubic:
			fx := (float64(i)+0.5)*scale - 0.5
			x0 := int(math.Floor(fx))
			t := fx - float64(x0)
			out[i] = taps{
				idx: []int{
					clampIndex(x0-1, src),
					clampIndex(x0, src),
					clampIndex(x0+1, src),
					clampIndex(x0+2, src),
				},
				w: []float64{
					cubicWeight(t + 1),
					cubicWeight(t),
					cubicWeight(t - 1),
					cubicWeight(t - 2),
				},
			}

		default: // bilinear, and enlarged axes under InterpArea
			fx := (float64(i)+0.5)*scale - 0.5
			x0 := int(math.Floor(fx))
			t := fx - float64(x0)
			out[i] = taps{
				idx: []int{clampIndex(x0, src), clampIndex(x0+1, src)},
				w:   []float64{1 - t, t},
			}
		}
	}
	return out
}

// areaTaps weights each source sample by the fraction of the destination
// sample's footprint it covers.
func areaTaps(src, dst int) []taps {
	scale := float64(src) / float64(dst)
	out := make([]taps, dst)
	for i := range out {
		start := float64(i) * scale
		end := start + scale
		k0 := int(math.Floor(start))
		k1 := min(int(math.Ceil(end)), src)

		var t taps
		for k := k0; k < k1; k++ {
			overlap := math.Min(end, float64(k+1)) - math.Max(start, float64(k))
			if overlap <= 1e-12 {
				continue
			}
			t.idx = append(t.idx, k)
			t.w = append(t.w, overlap/scale)
		}
		out[i] = t
	}
	return out
}

// cubicWeight evaluates the cubic convolution kernel at distance t:
//
//	|t| < 1:      (a+2)|t|³ - (a+3)|t|² + 1
//	1 ≤ |t| < 2:  a|t|³ - 5a|t|² + 8a|t| - 4a
//	|t| ≥ 2:      0
func cubicWeight(t float64) float64 {
	const a = cubicA
	absT := math.Abs(t)
	if absT < 1 {
		return (a+2)*absT*absT*absT - (a+3)*absT*absT + 1
	}
	if absT < 2 {
		return a*absT*absT*absT - 5*a*absT*absT + 8*a*absT - 4*a
	}
	return 0
}

// resample applies separable taps: rows first, then columns.
func resample(f *Field, xt, yt []taps) *Field {
	sh := f.Height()
	dw, dh := len(xt), len(yt)

	tmp := alloc(dw, sh)
	for y := range sh {
		src := f.Row(y)
		dst := tmp.Row(y)
		for x, t := range xt {
			var sum float64
			for k, j := range t.idx {
				sum += t.w[k] * src[j]
			}
			dst[x] = sum
		}
	}

	out := alloc(dw, dh)
	for y, t := range yt {
		dst := out.Row(y)
		for k, j := range t.idx {
			floats.AddScaled(dst, t.w[k], tmp.Row(j))
		}
	}
	return out
}
