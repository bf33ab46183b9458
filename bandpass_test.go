package normalmap

import (
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"gonum.org/v1/gonum/stat"

	"github.com/gogpu/normalmap/internal/field"
)

func noiseField(t *testing.T, w, h int, seed uint64) *Field {
	t.Helper()
	lum, err := Luminance(noiseImage(t, w, h, Depth64F, seed))
	if err != nil {
		t.Fatalf("Luminance() error = %v", err)
	}
	return lum
}

func TestFastBlur_ZeroFilterCopies(t *testing.T) {
	f := noiseField(t, 10, 8, 1)

	got, err := FastBlur(f, BlurConfig{MinFilterSize: DefaultMinFilterSize})
	if err != nil {
		t.Fatalf("FastBlur() error = %v", err)
	}
	if diff := cmp.Diff(f.Values(), got.Values()); diff != "" {
		t.Errorf("FastBlur(0) mismatch (-want +got):\n%s", diff)
	}
	got.Set(0, 0, -1)
	if f.At(0, 0) == -1 {
		t.Error("FastBlur() must not alias its input")
	}
}

func TestFastBlur_SmallFilterIsGaussian(t *testing.T) {
	f := noiseField(t, 30, 20, 2)

	got, err := FastBlur(f, BlurConfig{FilterSize: 3, MinFilterSize: DefaultMinFilterSize})
	if err != nil {
		t.Fatalf("FastBlur() error = %v", err)
	}
	want := field.GaussianBlur(f, 3)
	if diff := cmp.Diff(want.Values(), got.Values()); diff != "" {
		t.Errorf("FastBlur(3) should be a plain Gaussian (-want +got):\n%s", diff)
	}
}

func TestFastBlur_LargeFilterHalves(t *testing.T) {
	f := noiseField(t, 64, 64, 3)

	got, err := FastBlur(f, BlurConfig{FilterSize: 100, MinFilterSize: DefaultMinFilterSize})
	if err != nil {
		t.Fatalf("FastBlur() error = %v", err)
	}
	if got.Width() != 64 || got.Height() != 64 {
		t.Fatalf("FastBlur() = %dx%d, want 64x64", got.Width(), got.Height())
	}

	// Two halvings leave sigma 25 on a 16x16 field.
	small, _ := field.Downsample(f)
	small, _ = field.Downsample(small)
	want, _ := field.Resize(field.GaussianBlur(small, 25), 64, 64, field.InterpCubic)
	if diff := cmp.Diff(want.Values(), got.Values()); diff != "" {
		t.Errorf("FastBlur(100) mismatch (-want +got):\n%s", diff)
	}

	if in, out := stat.Variance(f.Values(), nil), stat.Variance(got.Values(), nil); out >= in/100 {
		t.Errorf("variance %v -> %v, want a strong reduction", in, out)
	}
}

func TestFastBlur_ConstantPreserved(t *testing.T) {
	f, _ := field.Filled(50, 21, 0.37)

	for _, size := range []float64{0.5, 5, 45, 400} {
		got, err := FastBlur(f, BlurConfig{FilterSize: size, MinFilterSize: DefaultMinFilterSize})
		if err != nil {
			t.Fatalf("FastBlur(%v) error = %v", size, err)
		}
		for _, v := range got.Values() {
			if math.Abs(v-0.37) > 1e-9 {
				t.Fatalf("FastBlur(%v) sample = %v, want 0.37", size, v)
			}
		}
	}
}

func TestFastBlur_TinyFieldHugeFilter(t *testing.T) {
	f, _ := FieldFromSlice(2, 2, []float64{0, 1, 1, 0})

	got, err := FastBlur(f, BlurConfig{FilterSize: 1e12, MinFilterSize: DefaultMinFilterSize})
	if err != nil {
		t.Fatalf("FastBlur() error = %v", err)
	}
	want := []float64{0.5, 0.5, 0.5, 0.5}
	if diff := cmp.Diff(want, got.Values(), cmpopts.EquateApprox(0, 1e-3)); diff != "" {
		t.Errorf("FastBlur() mismatch (-want +got):\n%s", diff)
	}
}

func TestBandPass(t *testing.T) {
	lum := noiseField(t, 40, 30, 4)
	blur := func(f *Field, size float64) *Field {
		out, err := FastBlur(f, BlurConfig{FilterSize: size, MinFilterSize: DefaultMinFilterSize})
		if err != nil {
			t.Fatalf("FastBlur() error = %v", err)
		}
		return out
	}

	low := blur(lum, 2)
	tests := []struct {
		name string
		p    Params
		want *Field
	}{
		{"disabled", Params{}, lum},
		{"low-pass", Params{MinDetail: 2}, low},
		{"high-pass", Params{MaxDetail: 9}, field.Sub(lum, blur(lum, 9))},
		{"low then high", Params{MinDetail: 2, MaxDetail: 9}, field.Sub(low, blur(low, 9))},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := bandPass(lum, tt.p, DefaultMinFilterSize)
			if err != nil {
				t.Fatalf("bandPass() error = %v", err)
			}
			if diff := cmp.Diff(tt.want.Values(), got.Values()); diff != "" {
				t.Errorf("bandPass(%+v) mismatch (-want +got):\n%s", tt.p, diff)
			}
		})
	}
}

func TestBandPass_HighPassRemovesConstant(t *testing.T) {
	f, _ := field.Filled(33, 17, 0.8)

	got, err := bandPass(f, Params{MaxDetail: 60}, DefaultMinFilterSize)
	if err != nil {
		t.Fatalf("bandPass() error = %v", err)
	}
	for _, v := range got.Values() {
		if math.Abs(v) > 1e-9 {
			t.Fatalf("high-passed constant sample = %v, want 0", v)
		}
	}
}
