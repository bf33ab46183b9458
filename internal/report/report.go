// Package report summarizes normal maps: how far their normals tilt away
// from straight up, as statistics and as a histogram plot.
package report

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/gogpu/normalmap/internal/image"
)

// Errors returned by this package.
var (
	// ErrEmptyMap is returned for a nil or zero-sized normal map.
	ErrEmptyMap = errors.New("report: empty normal map")

	// ErrNotNormalMap is returned for images without three color channels.
	ErrNotNormalMap = errors.New("report: not a 3-channel normal map")
)

// FlatTilt is the tilt, in degrees, below which a pixel counts as flat.
// It absorbs the 8-bit rounding of an up-facing normal.
const FlatTilt = 1.0

// DefaultBins is the histogram bin count used when none is given.
const DefaultBins = 45

// Summary describes the tilt distribution of a normal map.
type Summary struct {
	Width, Height int

	// Tilt angles from +Z, in degrees.
	MeanTilt   float64
	StdDevTilt float64
	MaxTilt    float64

	// Mean signed slope components.
	MeanX, MeanY float64

	// FlatFraction is the share of pixels tilted less than FlatTilt.
	FlatFraction float64
}

// String formats s on one line.
func (s Summary) String() string {
	return fmt.Sprintf("%dx%d tilt mean %.2f° sd %.2f° max %.2f°, slope (%.3f, %.3f), %.1f%% flat",
		s.Width, s.Height, s.MeanTilt, s.StdDevTilt, s.MaxTilt, s.MeanX, s.MeanY, s.FlatFraction*100)
}

// decode returns the signed unit normal of pixel p stored at depth maxValue.
// Rounding in storage is undone by renormalizing; a zero vector is up.
func decode(p []float64, maxValue float64) (float64, float64, float64) {
	x := p[0]/maxValue*2 - 1
	y := p[1]/maxValue*2 - 1
	z := p[2]/maxValue*2 - 1
	l := math.Sqrt(x*x + y*y + z*z)
	if l == 0 {
		return 0, 0, 1
	}
	return x / l, y / l, z / l
}

// Tilts returns the per-pixel angle between the normal and +Z, in degrees,
// in row-major order.
func Tilts(img *image.ImageBuf) ([]float64, error) {
	_, _, tilts, err := components(img)
	return tilts, err
}

func components(img *image.ImageBuf) (xs, ys, tilts []float64, err error) {
	if img.IsEmpty() {
		return nil, nil, nil, ErrEmptyMap
	}
	if img.Channels() < 3 {
		return nil, nil, nil, fmt.Errorf("%w: %d channels", ErrNotNormalMap, img.Channels())
	}

	maxValue := img.Depth().MaxValue()
	w, h := img.Bounds()
	xs = make([]float64, 0, w*h)
	ys = make([]float64, 0, w*h)
	tilts = make([]float64, 0, w*h)
	for y := range h {
		for x := range w {
			nx, ny, nz := decode(img.Pixel(x, y), maxValue)
			xs = append(xs, nx)
			ys = append(ys, ny)
			tilts = append(tilts, math.Acos(max(-1, min(1, nz)))*180/math.Pi)
		}
	}
	return xs, ys, tilts, nil
}

// Summarize computes the tilt statistics of a normal map.
func Summarize(img *image.ImageBuf) (Summary, error) {
	xs, ys, tilts, err := components(img)
	if err != nil {
		return Summary{}, err
	}

	mean, sd := stat.MeanStdDev(tilts, nil)
	if len(tilts) == 1 {
		sd = 0
	}

	flat := 0
	for _, t := range tilts {
		if t < FlatTilt {
			flat++
		}
	}

	w, h := img.Bounds()
	return Summary{
		Width:        w,
		Height:       h,
		MeanTilt:     mean,
		StdDevTilt:   sd,
		MaxTilt:      floats.Max(tilts),
		MeanX:        stat.Mean(xs, nil),
		MeanY:        stat.Mean(ys, nil),
		FlatFraction: float64(flat) / float64(len(tilts)),
	}, nil
}

// SaveHistogram plots the tilt histogram of img to path. The file format
// follows the extension (png, svg, pdf, ...). bins <= 0 selects DefaultBins.
func SaveHistogram(img *image.ImageBuf, bins int, path string) error {
	tilts, err := Tilts(img)
	if err != nil {
		return err
	}
	if bins <= 0 {
		bins = DefaultBins
	}

	p := plot.New()
	p.Title.Text = fmt.Sprintf("Normal tilt (%dx%d)", img.Width(), img.Height())
	p.X.Label.Text = "tilt from +Z (degrees)"
	p.Y.Label.Text = "pixels"

	hist, err := plotter.NewHist(plotter.Values(tilts), bins)
	if err != nil {
		return fmt.Errorf("report: histogram: %w", err)
	}
	p.Add(hist)

	if err := p.Save(6*vg.Inch, 4*vg.Inch, path); err != nil {
		return fmt.Errorf("report: save %s: %w", path, err)
	}
	return nil
}
