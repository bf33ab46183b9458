package report

import (
	"errors"
	stdimage "image"
	_ "image/png"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"github.com/gogpu/normalmap/internal/image"
)

// normalImage stores signed unit normals at 64F in the biased range.
func normalImage(t *testing.T, w, h int, fn func(x, y int) (float64, float64, float64)) *image.ImageBuf {
	t.Helper()
	img, err := image.NewImageBuf(w, h, 3, image.Depth64F)
	if err != nil {
		t.Fatalf("NewImageBuf() error = %v", err)
	}
	for y := range h {
		for x := range w {
			a, b, c := fn(x, y)
			if err := img.SetPixel(x, y, (a+1)/2, (b+1)/2, (c+1)/2); err != nil {
				t.Fatalf("SetPixel() error = %v", err)
			}
		}
	}
	return img
}

func up(_, _ int) (float64, float64, float64) { return 0, 0, 1 }

func TestTilts(t *testing.T) {
	s, c := math.Sin(math.Pi/6), math.Cos(math.Pi/6)
	img := normalImage(t, 3, 1, func(x, _ int) (float64, float64, float64) {
		switch x {
		case 0:
			return 0, 0, 1
		case 1:
			return s, 0, c
		}
		return 0, -1, 0
	})

	got, err := Tilts(img)
	if err != nil {
		t.Fatalf("Tilts() error = %v", err)
	}
	want := []float64{0, 30, 90}
	if diff := cmp.Diff(want, got, cmpopts.EquateApprox(0, 1e-9)); diff != "" {
		t.Errorf("Tilts() mismatch (-want +got):\n%s", diff)
	}
}

func TestTilts_8BitUp(t *testing.T) {
	img, _ := image.NewImageBuf(2, 2, 3, image.Depth8U)
	img.Fill(128, 128, 255)

	got, err := Tilts(img)
	if err != nil {
		t.Fatalf("Tilts() error = %v", err)
	}
	for _, v := range got {
		if v >= FlatTilt {
			t.Errorf("tilt of a stored up vector = %v, want below %v", v, FlatTilt)
		}
	}
}

func TestSummarize(t *testing.T) {
	// Left half flat, right half tilted 45° towards -X.
	h := math.Sqrt(0.5)
	img := normalImage(t, 4, 2, func(x, _ int) (float64, float64, float64) {
		if x < 2 {
			return up(x, 0)
		}
		return -h, 0, h
	})

	got, err := Summarize(img)
	if err != nil {
		t.Fatalf("Summarize() error = %v", err)
	}
	want := Summary{
		Width:        4,
		Height:       2,
		MeanTilt:     22.5,
		StdDevTilt:   math.Sqrt(8 * 22.5 * 22.5 / 7),
		MaxTilt:      45,
		MeanX:        -h / 2,
		MeanY:        0,
		FlatFraction: 0.5,
	}
	if diff := cmp.Diff(want, got, cmpopts.EquateApprox(0, 1e-9)); diff != "" {
		t.Errorf("Summarize() mismatch (-want +got):\n%s", diff)
	}
	if s := got.String(); !strings.Contains(s, "4x2") || !strings.Contains(s, "50.0% flat") {
		t.Errorf("String() = %q", s)
	}
}

func TestSummarize_SinglePixel(t *testing.T) {
	got, err := Summarize(normalImage(t, 1, 1, up))
	if err != nil {
		t.Fatalf("Summarize() error = %v", err)
	}
	if got.StdDevTilt != 0 || got.FlatFraction != 1 {
		t.Errorf("Summarize() = %+v, want zero spread and all flat", got)
	}
}

func TestSummarize_Errors(t *testing.T) {
	if _, err := Summarize(nil); !errors.Is(err, ErrEmptyMap) {
		t.Errorf("Summarize(nil) error = %v, want ErrEmptyMap", err)
	}
	gray, _ := image.NewImageBuf(2, 2, 1, image.Depth8U)
	if _, err := Summarize(gray); !errors.Is(err, ErrNotNormalMap) {
		t.Errorf("Summarize(gray) error = %v, want ErrNotNormalMap", err)
	}
}

func TestSaveHistogram(t *testing.T) {
	tests := []struct {
		name string
		img  func(t *testing.T) *image.ImageBuf
		bins int
	}{
		{"varied", func(t *testing.T) *image.ImageBuf {
			return normalImage(t, 16, 16, func(x, y int) (float64, float64, float64) {
				a := float64(x+y) / 40
				return math.Sin(a), 0, math.Cos(a)
			})
		}, 0},
		{"flat", func(t *testing.T) *image.ImageBuf { return normalImage(t, 4, 4, up) }, 10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "hist.png")
			if err := SaveHistogram(tt.img(t), tt.bins, path); err != nil {
				t.Fatalf("SaveHistogram() error = %v", err)
			}

			f, err := os.Open(path)
			if err != nil {
				t.Fatalf("Open() error = %v", err)
			}
			defer f.Close()
			cfg, format, err := stdimage.DecodeConfig(f)
			if err != nil {
				t.Fatalf("DecodeConfig() error = %v", err)
			}
			if format != "png" || cfg.Width == 0 || cfg.Height == 0 {
				t.Errorf("histogram = %s %dx%d, want a non-empty png", format, cfg.Width, cfg.Height)
			}
		})
	}
}

func TestSaveHistogram_Empty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "hist.png")
	if err := SaveHistogram(nil, 0, path); !errors.Is(err, ErrEmptyMap) {
		t.Errorf("SaveHistogram(nil) error = %v, want ErrEmptyMap", err)
	}
}
