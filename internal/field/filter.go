package field

import "gonum.org/v1/gonum/floats"

// reflect101 maps an out-of-range index into [0, n) by mirroring about the
// edge samples without repeating them: ... 2 1 | 0 1 2 ... n-1 | n-2 n-3 ...
func reflect101(i, n int) int {
	if n == 1 {
		return 0
	}
	for i < 0 || i >= n {
		if i < 0 {
			i = -i
		}
		if i >= n {
			i = 2*(n-1) - i
		}
	}
	return i
}

// clampIndex maps an out-of-range index onto the nearest edge sample.
func clampIndex(i, n int) int {
	if i < 0 {
		return 0
	}
	if i >= n {
		return n - 1
	}
	return i
}

// SepFilter correlates f with the separable kernel kx (along rows) and ky
// (along columns). Both kernels must have odd length and are anchored at
// their centre. Borders are reflect-101.
func SepFilter(f *Field, kx, ky []float64) *Field {
	w, h := f.Bounds()
	rx := len(kx) / 2
	ry := len(ky) / 2

	// Horizontal pass.
	tmp := alloc(w, h)
	ext := make([]float64, w+2*rx)
	for y := range h {
		src := f.Row(y)
		for i := range ext {
			ext[i] = src[reflect101(i-rx, w)]
		}
		dst := tmp.Row(y)
		for x := range w {
			var sum float64
			for k, kv := range kx {
				sum += kv * ext[x+k]
			}
			dst[x] = sum
		}
	}

	// Vertical pass, accumulating whole rows.
	out := alloc(w, h)
	for y := range h {
		dst := out.Row(y)
		for k, kv := range ky {
			if kv == 0 {
				continue
			}
			floats.AddScaled(dst, kv, tmp.Row(reflect101(y+k-ry, h)))
		}
	}
	return out
}
