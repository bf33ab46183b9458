package normalmap

import "math"

// Option configures a MakeNormals call.
//
// Example:
//
//	// Sequential, default band-pass granularity
//	normal, err := normalmap.MakeNormals(src, p)
//
//	// Pyramid levels on four goroutines
//	normal, err := normalmap.MakeNormals(src, p, normalmap.WithWorkers(4))
type Option func(*options)

// options holds optional configuration for a MakeNormals call.
type options struct {
	workers       int
	minFilterSize float64
}

// defaultOptions returns the default options: sequential execution and
// DefaultMinFilterSize.
func defaultOptions() options {
	return options{
		workers:       1,
		minFilterSize: DefaultMinFilterSize,
	}
}

// WithWorkers sets how many goroutines estimate pyramid levels.
// 1 runs on the caller's goroutine; 0 or negative uses GOMAXPROCS.
// The result does not depend on the worker count.
func WithWorkers(n int) Option {
	return func(o *options) {
		o.workers = n
	}
}

// WithMinFilterSize sets the smallest Gaussian sigma FastBlur runs before
// it prefers halving the image instead. Smaller values blur more
// accurately and more slowly. Negative and NaN values are ignored.
func WithMinFilterSize(v float64) Option {
	return func(o *options) {
		if v >= 0 && !math.IsInf(v, 1) {
			o.minFilterSize = v
		}
	}
}
