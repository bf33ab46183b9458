package field

import "math"

// GaussianKernelSize returns the kernel length used for sigma:
// round(8*sigma + 1), forced odd, so the kernel spans ±4 sigma.
func GaussianKernelSize(sigma float64) int {
	return int(math.RoundToEven(sigma*4*2+1)) | 1
}

// GaussianKernel returns a normalized 1D Gaussian of the given odd size.
func GaussianKernel(size int, sigma float64) []float64 {
	k := make([]float64, size)
	c := float64(size-1) / 2
	scale := -0.5 / (sigma * sigma)

	var sum float64
	for i := range k {
		d := float64(i) - c
		k[i] = math.Exp(scale * d * d)
		sum += k[i]
	}
	for i := range k {
		k[i] /= sum
	}
	return k
}

// GaussianBlur returns f blurred with an isotropic Gaussian of standard
// deviation sigma (in samples). A non-positive or NaN sigma returns a copy.
func GaussianBlur(f *Field, sigma float64) *Field {
	if !(sigma > 0) {
		return f.Clone()
	}
	w, h := f.Bounds()
	sx, sy := axisSigma(sigma, w), axisSigma(sigma, h)
	kx := GaussianKernel(GaussianKernelSize(sx), sx)
	ky := kx
	if sy != sx {
		ky = GaussianKernel(GaussianKernelSize(sy), sy)
	}
	return SepFilter(f, kx, ky)
}

// axisSigma caps sigma at four reflect-101 periods of an axis of length n.
// Past that width the blur of the periodic extension is the axis mean to
// well below float64 precision, so larger kernels only cost time.
func axisSigma(sigma float64, n int) float64 {
	period := max(2*n-2, 1)
	return min(sigma, 4*float64(period))
}
