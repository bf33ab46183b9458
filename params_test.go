package normalmap

import (
	"math"
	"testing"
)

func TestDefaultParams(t *testing.T) {
	p := DefaultParams()
	if p.Strength != 0.25 || p.MinDetail != 0 || p.MaxDetail != 0 {
		t.Errorf("DefaultParams() = %+v, want strength 0.25 and no band-pass", p)
	}
}

func TestParamsClamp(t *testing.T) {
	tests := []struct {
		name string
		in   Params
		want Params
	}{
		{"unchanged", Params{1, 2, 3}, Params{1, 2, 3}},
		{"negatives", Params{-1, -0.5, -100}, Params{0, 0, 0}},
		{"NaN", Params{math.NaN(), 4, math.NaN()}, Params{0, 4, 0}},
		{"mixed", Params{0.3, -2, 40}, Params{0.3, 0, 40}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.in.Clamp(); got != tt.want {
				t.Errorf("Clamp() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestParamsGradientScale(t *testing.T) {
	tests := []struct {
		strength float64
		want     float64
	}{
		{0, 1},
		{-2, 1},
		{math.NaN(), 1},
		{1, 0.25},
		{4, 1},
		{10, 2.5},
	}

	for _, tt := range tests {
		if got := (Params{Strength: tt.strength}).gradientScale(); got != tt.want {
			t.Errorf("gradientScale(%v) = %v, want %v", tt.strength, got, tt.want)
		}
	}
}
