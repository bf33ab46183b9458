package field

import (
	"math"

	"gonum.org/v1/gonum/mat"
)

// The binary operations below panic with mat.ErrShape when the operand
// sizes differ, matching gonum/mat.

// Add returns a + b.
func Add(a, b *Field) *Field {
	var d mat.Dense
	d.Add(a.m, b.m)
	return wrap(&d)
}

// Sub returns a - b.
func Sub(a, b *Field) *Field {
	var d mat.Dense
	d.Sub(a.m, b.m)
	return wrap(&d)
}

// MulElem returns the elementwise product a * b.
func MulElem(a, b *Field) *Field {
	var d mat.Dense
	d.MulElem(a.m, b.m)
	return wrap(&d)
}

// Scale returns s * a.
func Scale(s float64, a *Field) *Field {
	var d mat.Dense
	d.Scale(s, a.m)
	return wrap(&d)
}

// AddConst returns a + c.
func AddConst(c float64, a *Field) *Field {
	return Apply(a, func(v float64) float64 { return v + c })
}

// Sqrt returns the elementwise square root of a.
func Sqrt(a *Field) *Field {
	return Apply(a, math.Sqrt)
}

// Apply returns fn applied to every sample of a.
func Apply(a *Field, fn func(float64) float64) *Field {
	var d mat.Dense
	d.Apply(func(_, _ int, v float64) float64 { return fn(v) }, a.m)
	return wrap(&d)
}

// Hypot returns sqrt(a² + b²) per sample.
func Hypot(a, b *Field) *Field {
	return Sqrt(Add(MulElem(a, a), MulElem(b, b)))
}
