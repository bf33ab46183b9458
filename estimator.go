package normalmap

import "github.com/gogpu/normalmap/internal/field"

// estimateNormals derives a single-scale normal field from lum.
//
// The slopes are the negated Scharr gradients times strength, so brighter
// means raised. The height component is 1 - |slope|, which lets steep
// slopes tip past horizontal. The vector is normalized and returned in the
// biased [0, 1] range, at the resolution of lum.
func estimateNormals(lum *field.Field, strength float64) *field.VectorField {
	gx := field.Scharr(lum, field.DirX, -strength)
	gy := field.Scharr(lum, field.DirY, -strength)
	gz := field.Apply(field.Hypot(gx, gy), func(m float64) float64 { return 1 - m })

	x, y, z := field.Normalize3(gx, gy, gz)
	return (&field.VectorField{X: x, Y: y, Z: z}).Bias()
}
