package normalmap

import (
	"math"
	"testing"
)

func TestDefaultOptions(t *testing.T) {
	o := defaultOptions()
	if o.workers != 1 {
		t.Errorf("workers = %d, want 1", o.workers)
	}
	if o.minFilterSize != DefaultMinFilterSize {
		t.Errorf("minFilterSize = %v, want %v", o.minFilterSize, DefaultMinFilterSize)
	}
}

func TestWithWorkers(t *testing.T) {
	for _, n := range []int{4, 1, 0, -1} {
		o := defaultOptions()
		WithWorkers(n)(&o)
		if o.workers != n {
			t.Errorf("WithWorkers(%d): workers = %d", n, o.workers)
		}
	}
}

func TestWithMinFilterSize(t *testing.T) {
	tests := []struct {
		name string
		v    float64
		want float64
	}{
		{"custom", 5, 5},
		{"zero", 0, 0},
		{"negative ignored", -1, DefaultMinFilterSize},
		{"NaN ignored", math.NaN(), DefaultMinFilterSize},
		{"infinity ignored", math.Inf(1), DefaultMinFilterSize},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			o := defaultOptions()
			WithMinFilterSize(tt.v)(&o)
			if o.minFilterSize != tt.want {
				t.Errorf("minFilterSize = %v, want %v", o.minFilterSize, tt.want)
			}
		})
	}
}

func TestMakeNormals_WithMinFilterSize(t *testing.T) {
	src := noiseImage(t, 48, 40, Depth8U, 21)
	p := Params{Strength: 1, MaxDetail: 24}

	// 24/2 does not exceed 20, so the default runs a single Gaussian.
	exact, err := MakeNormals(src, p)
	if err != nil {
		t.Fatalf("MakeNormals() error = %v", err)
	}
	halved, err := MakeNormals(src, p, WithMinFilterSize(2))
	if err != nil {
		t.Fatalf("MakeNormals(WithMinFilterSize(2)) error = %v", err)
	}
	if halved.Width() != exact.Width() || halved.Height() != exact.Height() {
		t.Fatalf("size mismatch: %dx%d vs %dx%d",
			halved.Width(), halved.Height(), exact.Width(), exact.Height())
	}

	same := true
	for i, v := range exact.Data() {
		if halved.Data()[i] != v {
			same = false
			break
		}
	}
	if same {
		t.Error("WithMinFilterSize(2) should change the band-pass approximation")
	}
}
