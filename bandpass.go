package normalmap

import (
	"fmt"

	"github.com/gogpu/normalmap/internal/field"
)

// DefaultMinFilterSize is the smallest Gaussian sigma, in samples, that
// FastBlur runs directly before halving the field instead.
const DefaultMinFilterSize = 20.0

// Field is a single channel float64 plane, such as a luminance field.
type Field = field.Field

// NewField creates a zeroed field.
func NewField(width, height int) (*Field, error) {
	return field.New(width, height)
}

// FieldFromSlice creates a field from row-major samples. The data is copied.
func FieldFromSlice(width, height int, data []float64) (*Field, error) {
	return field.FromSlice(width, height, data)
}

// BlurConfig configures FastBlur.
type BlurConfig struct {
	// FilterSize is the effective Gaussian sigma in samples of the input.
	FilterSize float64

	// MinFilterSize bounds how small a sigma is reached by halving before
	// a real Gaussian pass runs. Usually DefaultMinFilterSize.
	MinFilterSize float64
}

// FastBlur approximates a Gaussian blur of sigma cfg.FilterSize.
//
// While half the filter size still exceeds cfg.MinFilterSize and both
// dimensions exceed 2, the field is halved with area averaging and the
// filter size with it. The remaining filter size, if positive, is applied
// as a real Gaussian, and the result is resized back with cubic
// interpolation. f is not modified.
func FastBlur(f *Field, cfg BlurConfig) (*Field, error) {
	w, h := f.Bounds()
	size := cfg.FilterSize

	cur := f
	for size/2 > cfg.MinFilterSize && cur.Width() > 2 && cur.Height() > 2 {
		size /= 2
		next, err := field.Downsample(cur)
		if err != nil {
			return nil, fmt.Errorf("fast blur: %w", err)
		}
		cur = next
	}

	if size > 0 {
		cur = field.GaussianBlur(cur, size)
	}

	out, err := field.Resize(cur, w, h, field.InterpCubic)
	if err != nil {
		return nil, fmt.Errorf("fast blur: %w", err)
	}
	return out, nil
}

// bandPass restricts lum to the detail band of p: a low-pass at MinDetail,
// then a high-pass at MaxDetail on the low-passed result. With both
// disabled lum is returned as is.
func bandPass(lum *Field, p Params, minFilterSize float64) (*Field, error) {
	log := Logger()

	if p.MinDetail > 0 {
		low, err := FastBlur(lum, BlurConfig{FilterSize: p.MinDetail, MinFilterSize: minFilterSize})
		if err != nil {
			return nil, err
		}
		log.Debug("normalmap: low-pass", "min_detail", p.MinDetail)
		lum = low
	}

	if p.MaxDetail > 0 {
		coarse, err := FastBlur(lum, BlurConfig{FilterSize: p.MaxDetail, MinFilterSize: minFilterSize})
		if err != nil {
			return nil, err
		}
		log.Debug("normalmap: high-pass", "max_detail", p.MaxDetail)
		lum = field.Sub(lum, coarse)
	}

	return lum, nil
}
