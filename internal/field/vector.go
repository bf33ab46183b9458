package field

import "math"

// VectorField is a per-sample 3-vector stored as three planes.
//
// X holds the horizontal slope, Y the vertical slope and Z the
// height-facing component. Depending on context the components are in the
// signed range [-1, 1] or the biased storage range [0, 1]; Bias and Unbias
// convert between the two.
type VectorField struct {
	X, Y, Z *Field
}

// NewVectorField assembles a vector field from three planes of equal size.
func NewVectorField(x, y, z *Field) (*VectorField, error) {
	if !SameSize(x, y) || !SameSize(x, z) {
		return nil, ErrSizeMismatch
	}
	return &VectorField{X: x, Y: y, Z: z}, nil
}

// Width returns the number of samples per row.
func (v *VectorField) Width() int {
	return v.X.Width()
}

// Height returns the number of rows.
func (v *VectorField) Height() int {
	return v.X.Height()
}

// At returns the vector at (x, y).
func (v *VectorField) At(x, y int) (float64, float64, float64) {
	return v.X.At(x, y), v.Y.At(x, y), v.Z.At(x, y)
}

// Normalize3 rescales the per-sample vector (x, y, z) to unit length and
// returns the three new planes.
//
// A zero-length vector has no direction; it is replaced by the up vector
// (0, 0, 1).
func Normalize3(x, y, z *Field) (nx, ny, nz *Field) {
	w, h := x.Bounds()
	nx, ny, nz = alloc(w, h), alloc(w, h), alloc(w, h)
	for row := range h {
		xs, ys, zs := x.Row(row), y.Row(row), z.Row(row)
		ox, oy, oz := nx.Row(row), ny.Row(row), nz.Row(row)
		for i := range xs {
			scale := math.Sqrt(zs[i]*zs[i] + ys[i]*ys[i] + xs[i]*xs[i])
			if scale == 0 {
				ox[i], oy[i], oz[i] = 0, 0, 1
				continue
			}
			ox[i] = xs[i] / scale
			oy[i] = ys[i] / scale
			oz[i] = zs[i] / scale
		}
	}
	return nx, ny, nz
}

// Normalize returns v scaled to unit length per sample. v must be in the
// signed range.
func (v *VectorField) Normalize() *VectorField {
	x, y, z := Normalize3(v.X, v.Y, v.Z)
	return &VectorField{X: x, Y: y, Z: z}
}

// Bias maps signed [-1, 1] components to [0, 1]: (v + 1) / 2.
func (v *VectorField) Bias() *VectorField {
	return v.apply(func(c float64) float64 { return (c + 1) / 2 })
}

// Unbias maps biased [0, 1] components to [-1, 1]: v*2 - 1.
func (v *VectorField) Unbias() *VectorField {
	return v.apply(func(c float64) float64 { return c*2 - 1 })
}

// NormalizeBiased normalizes a field held in the biased range and returns
// the result in the biased range.
func (v *VectorField) NormalizeBiased() *VectorField {
	return v.Unbias().Normalize().Bias()
}

// Add returns v + w componentwise.
func (v *VectorField) Add(w *VectorField) *VectorField {
	return &VectorField{X: Add(v.X, w.X), Y: Add(v.Y, w.Y), Z: Add(v.Z, w.Z)}
}

// Scale returns s * v componentwise.
func (v *VectorField) Scale(s float64) *VectorField {
	return &VectorField{X: Scale(s, v.X), Y: Scale(s, v.Y), Z: Scale(s, v.Z)}
}

// Resize resamples each component to width x height.
func (v *VectorField) Resize(width, height int, mode InterpolationMode) (*VectorField, error) {
	x, err := Resize(v.X, width, height, mode)
	if err != nil {
		return nil, err
	}
	y, err := Resize(v.Y, width, height, mode)
	if err != nil {
		return nil, err
	}
	z, err := Resize(v.Z, width, height, mode)
	if err != nil {
		return nil, err
	}
	return &VectorField{X: x, Y: y, Z: z}, nil
}

func (v *VectorField) apply(fn func(float64) float64) *VectorField {
	return &VectorField{X: Apply(v.X, fn), Y: Apply(v.Y, fn), Z: Apply(v.Z, fn)}
}
