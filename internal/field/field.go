// Package field provides single channel floating point planes and the
// numeric primitives the normal map pipeline is built from: elementwise
// arithmetic, separable filtering, Scharr gradients, Gaussian blur,
// area and cubic resampling, and 3-vector fields.
//
// A Field is backed by a gonum *mat.Dense with one matrix row per image row.
// Every operation returns a new Field; inputs are never modified.
package field

import (
	"errors"

	"gonum.org/v1/gonum/mat"
)

// Common errors for field operations.
var (
	// ErrInvalidDimensions is returned when width or height is non-positive.
	ErrInvalidDimensions = errors.New("field: invalid dimensions")

	// ErrSizeMismatch is returned when operands have different sizes.
	ErrSizeMismatch = errors.New("field: size mismatch")

	// ErrDataTooSmall is returned when provided data is smaller than required.
	ErrDataTooSmall = errors.New("field: data too small")
)

// Field is a width x height plane of float64 samples.
type Field struct {
	m *mat.Dense
}

// alloc returns a zeroed field. Callers guarantee positive dimensions.
func alloc(width, height int) *Field {
	return &Field{m: mat.NewDense(height, width, nil)}
}

// wrap adopts a dense matrix produced by a gonum operation.
func wrap(m *mat.Dense) *Field {
	return &Field{m: m}
}

// New creates a zeroed field.
func New(width, height int) (*Field, error) {
	if width <= 0 || height <= 0 {
		return nil, ErrInvalidDimensions
	}
	return alloc(width, height), nil
}

// Filled creates a field with every sample set to v.
func Filled(width, height int, v float64) (*Field, error) {
	f, err := New(width, height)
	if err != nil {
		return nil, err
	}
	for y := range height {
		row := f.Row(y)
		for x := range row {
			row[x] = v
		}
	}
	return f, nil
}

// FromSlice creates a field from row-major samples. The data is copied.
func FromSlice(width, height int, data []float64) (*Field, error) {
	if width <= 0 || height <= 0 {
		return nil, ErrInvalidDimensions
	}
	if len(data) < width*height {
		return nil, ErrDataTooSmall
	}
	buf := make([]float64, width*height)
	copy(buf, data)
	return wrap(mat.NewDense(height, width, buf)), nil
}

// Width returns the number of samples per row.
func (f *Field) Width() int {
	_, c := f.m.Dims()
	return c
}

// Height returns the number of rows.
func (f *Field) Height() int {
	r, _ := f.m.Dims()
	return r
}

// Bounds returns the field dimensions as (width, height).
func (f *Field) Bounds() (int, int) {
	r, c := f.m.Dims()
	return c, r
}

// At returns the sample at (x, y). It panics if the coordinates are
// outside the field, like mat.Dense.At.
func (f *Field) At(x, y int) float64 {
	return f.m.At(y, x)
}

// Set stores v at (x, y). It panics if the coordinates are outside the field.
func (f *Field) Set(x, y int, v float64) {
	f.m.Set(y, x, v)
}

// Row returns a mutable view of row y.
func (f *Field) Row(y int) []float64 {
	return f.m.RawRowView(y)
}

// Values returns a row-major copy of all samples.
func (f *Field) Values() []float64 {
	w, h := f.Bounds()
	out := make([]float64, 0, w*h)
	for y := range h {
		out = append(out, f.Row(y)...)
	}
	return out
}

// Dense returns the backing matrix. Mutating it mutates the field.
func (f *Field) Dense() *mat.Dense {
	return f.m
}

// Clone returns a deep copy of f.
func (f *Field) Clone() *Field {
	return wrap(mat.DenseCopyOf(f.m))
}

// SameSize reports whether a and b have equal dimensions.
func SameSize(a, b *Field) bool {
	aw, ah := a.Bounds()
	bw, bh := b.Bounds()
	return aw == bw && ah == bh
}

// Min returns the smallest sample.
func (f *Field) Min() float64 {
	return mat.Min(f.m)
}

// Max returns the largest sample.
func (f *Field) Max() float64 {
	return mat.Max(f.m)
}
