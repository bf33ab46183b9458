package normalmap

import (
	"errors"
	"fmt"

	"github.com/gogpu/normalmap/internal/field"
	intImage "github.com/gogpu/normalmap/internal/image"
	"github.com/gogpu/normalmap/internal/parallel"
)

// Errors returned by MakeNormals.
var (
	// ErrUnsupportedFormat is returned for sample depths other than
	// 8-bit or 16-bit unsigned and 32-bit or 64-bit float.
	ErrUnsupportedFormat = errors.New("normalmap: unsupported format")

	// ErrEmptyImage is returned for a nil or zero-sized source image.
	ErrEmptyImage = errors.New("normalmap: empty image")
)

// storageRange returns the value that maps to 1.0 for depth d.
func storageRange(d Depth) (float64, error) {
	switch d {
	case Depth8U, Depth16U, Depth32F, Depth64F:
		return d.MaxValue(), nil
	default:
		return 0, fmt.Errorf("%w: %s", ErrUnsupportedFormat, d)
	}
}

// MakeNormals computes the normal map of src.
//
// The result has the size and depth of src and three channels holding the
// biased unit normal (R = X, G = Y, B = Z) scaled to the depth's range.
// src is not modified. p should be clamped by the caller, see Params.Clamp.
//
// Returns ErrEmptyImage for an empty src and ErrUnsupportedFormat for a
// depth other than Depth8U, Depth16U, Depth32F or Depth64F.
func MakeNormals(src *Image, p Params, opts ...Option) (*Image, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	lum, err := Luminance(src)
	if err != nil {
		return nil, err
	}

	lum, err = bandPass(lum, p, o.minFilterSize)
	if err != nil {
		return nil, fmt.Errorf("normalmap: band-pass: %w", err)
	}

	var pool *parallel.WorkerPool
	if o.workers != 1 {
		pool = parallel.NewWorkerPool(o.workers)
		defer pool.Close()
	}

	normal, levels, err := composePyramid(lum, p.gradientScale(), p.MaxDetail, pool)
	if err != nil {
		return nil, fmt.Errorf("normalmap: pyramid: %w", err)
	}

	out, err := toStorage(normal.NormalizeBiased(), src.Depth())
	if err != nil {
		return nil, fmt.Errorf("normalmap: %w", err)
	}

	Logger().Debug("normalmap: done",
		"width", out.Width(), "height", out.Height(),
		"depth", out.Depth().String(), "levels", levels, "workers", pool.Workers())
	return out, nil
}

// Luminance returns the gray conversion of src divided by the maximum
// value of its depth, so samples are nominally in [0, 1]. Single channel
// images are taken as gray already.
func Luminance(src *Image) (*Field, error) {
	if src.IsEmpty() {
		return nil, ErrEmptyImage
	}
	maxValue, err := storageRange(src.Depth())
	if err != nil {
		return nil, err
	}

	gray := src.Luma()
	w, h := gray.Bounds()
	raw, err := field.FromSlice(w, h, gray.Data())
	if err != nil {
		return nil, fmt.Errorf("normalmap: luminance: %w", err)
	}
	lum := field.Apply(raw, func(v float64) float64 { return v / maxValue })

	Logger().Debug("normalmap: luminance",
		"width", w, "height", h, "min", lum.Min(), "max", lum.Max())
	return lum, nil
}

// toStorage scales a biased normal field by the maximum value of depth and
// quantizes it into a new 3-channel image.
func toStorage(v *field.VectorField, depth Depth) (*Image, error) {
	maxValue, err := storageRange(depth)
	if err != nil {
		return nil, err
	}

	w, h := v.Width(), v.Height()
	data := make([]float64, 0, w*h*3)
	for y := range h {
		xs, ys, zs := v.X.Row(y), v.Y.Row(y), v.Z.Row(y)
		for i := range xs {
			data = append(data, xs[i]*maxValue, ys[i]*maxValue, zs[i]*maxValue)
		}
	}
	return intImage.FromSamples(data, w, h, 3, depth)
}
