// Package image provides the typed color buffer and codec layer for normalmap.
//
// Samples are held as float64 but every write is quantized to the buffer's
// Depth, so a buffer always holds exactly the values its storage type can
// represent.
package image

import "math"

// Depth represents the numeric storage type of one channel sample.
type Depth uint8

const (
	// Depth8U is an unsigned 8-bit integer channel (0..255).
	Depth8U Depth = iota

	// Depth8S is a signed 8-bit integer channel (-128..127).
	Depth8S

	// Depth16U is an unsigned 16-bit integer channel (0..65535).
	Depth16U

	// Depth16S is a signed 16-bit integer channel (-32768..32767).
	Depth16S

	// Depth32S is a signed 32-bit integer channel.
	Depth32S

	// Depth32F is a 32-bit floating point channel, nominal range [0, 1].
	Depth32F

	// Depth64F is a 64-bit floating point channel, nominal range [0, 1].
	Depth64F

	// depthCount is the number of depths (for internal use).
	depthCount
)

// DepthInfo contains metadata about a sample depth.
type DepthInfo struct {
	// BitsPerChannel is the number of bits per channel sample.
	BitsPerChannel int

	// IsFloat indicates a floating point representation.
	IsFloat bool

	// IsSigned indicates that negative values are representable.
	IsSigned bool

	// MinValue is the smallest representable value. Zero for floats,
	// which are not saturated.
	MinValue float64

	// MaxValue is the largest representable value for integer depths and
	// the nominal full-scale value (1.0) for floating point depths.
	MaxValue float64
}

// depthInfoTable contains metadata for each depth.
var depthInfoTable = [depthCount]DepthInfo{
	Depth8U:  {BitsPerChannel: 8, MinValue: 0, MaxValue: math.MaxUint8},
	Depth8S:  {BitsPerChannel: 8, IsSigned: true, MinValue: math.MinInt8, MaxValue: math.MaxInt8},
	Depth16U: {BitsPerChannel: 16, MinValue: 0, MaxValue: math.MaxUint16},
	Depth16S: {BitsPerChannel: 16, IsSigned: true, MinValue: math.MinInt16, MaxValue: math.MaxInt16},
	Depth32S: {BitsPerChannel: 32, IsSigned: true, MinValue: math.MinInt32, MaxValue: math.MaxInt32},
	Depth32F: {BitsPerChannel: 32, IsFloat: true, IsSigned: true, MaxValue: 1},
	Depth64F: {BitsPerChannel: 64, IsFloat: true, IsSigned: true, MaxValue: 1},
}

// Info returns the DepthInfo for this depth.
func (d Depth) Info() DepthInfo {
	if d >= depthCount {
		return DepthInfo{}
	}
	return depthInfoTable[d]
}

// IsValid returns true if the depth is a known depth.
func (d Depth) IsValid() bool {
	return d < depthCount
}

// IsFloat returns true for floating point depths.
func (d Depth) IsFloat() bool {
	return d.Info().IsFloat
}

// MaxValue returns the full-scale value of the depth.
func (d Depth) MaxValue() float64 {
	return d.Info().MaxValue
}

// BitsPerChannel returns the number of bits per channel sample.
func (d Depth) BitsPerChannel() int {
	return d.Info().BitsPerChannel
}

// Quantize converts v to the nearest value representable in this depth.
// Integer depths round half to even and saturate; Depth32F rounds to
// float32 precision; Depth64F returns v unchanged.
func (d Depth) Quantize(v float64) float64 {
	switch d {
	case Depth64F:
		return v
	case Depth32F:
		return float64(float32(v))
	}
	info := d.Info()
	if math.IsNaN(v) {
		return 0
	}
	v = math.RoundToEven(v)
	if v < info.MinValue {
		return info.MinValue
	}
	if v > info.MaxValue {
		return info.MaxValue
	}
	return v
}

// String returns a string representation of the depth.
func (d Depth) String() string {
	switch d {
	case Depth8U:
		return "8U"
	case Depth8S:
		return "8S"
	case Depth16U:
		return "16U"
	case Depth16S:
		return "16S"
	case Depth32S:
		return "32S"
	case Depth32F:
		return "32F"
	case Depth64F:
		return "64F"
	default:
		return "Unknown"
	}
}
