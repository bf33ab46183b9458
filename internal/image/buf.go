package image

import "errors"

// Common errors for image operations.
var (
	// ErrInvalidDimensions is returned when width or height is non-positive.
	ErrInvalidDimensions = errors.New("image: invalid dimensions")

	// ErrInvalidDepth is returned when the depth is not recognized.
	ErrInvalidDepth = errors.New("image: invalid depth")

	// ErrInvalidChannels is returned for channel counts other than 1, 3 or 4.
	ErrInvalidChannels = errors.New("image: invalid channel count")

	// ErrDataTooSmall is returned when provided data is smaller than required.
	ErrDataTooSmall = errors.New("image: data buffer too small")

	// ErrOutOfBounds is returned when pixel coordinates are outside image bounds.
	ErrOutOfBounds = errors.New("image: coordinates out of bounds")
)

// ImageBuf is an interleaved multi-channel image whose samples are
// constrained to the values representable by its Depth.
//
// Channel order for 3 and 4 channel buffers is R, G, B(, A).
//
// Thread safety: ImageBuf is safe for concurrent read access. Write
// operations require external synchronization.
type ImageBuf struct {
	data     []float64
	width    int
	height   int
	channels int
	depth    Depth
}

func validate(width, height, channels int, depth Depth) error {
	if width <= 0 || height <= 0 {
		return ErrInvalidDimensions
	}
	if !depth.IsValid() {
		return ErrInvalidDepth
	}
	switch channels {
	case 1, 3, 4:
		return nil
	default:
		return ErrInvalidChannels
	}
}

// NewImageBuf creates a zeroed image buffer.
func NewImageBuf(width, height, channels int, depth Depth) (*ImageBuf, error) {
	if err := validate(width, height, channels, depth); err != nil {
		return nil, err
	}
	return &ImageBuf{
		data:     make([]float64, width*height*channels),
		width:    width,
		height:   height,
		channels: channels,
		depth:    depth,
	}, nil
}

// FromSamples creates an ImageBuf from interleaved samples. The data is
// copied and quantized to depth.
func FromSamples(data []float64, width, height, channels int, depth Depth) (*ImageBuf, error) {
	if err := validate(width, height, channels, depth); err != nil {
		return nil, err
	}
	n := width * height * channels
	if len(data) < n {
		return nil, ErrDataTooSmall
	}
	b := &ImageBuf{
		data:     make([]float64, n),
		width:    width,
		height:   height,
		channels: channels,
		depth:    depth,
	}
	for i, v := range data[:n] {
		b.data[i] = depth.Quantize(v)
	}
	return b, nil
}

// Clone creates a deep copy of the image buffer.
func (b *ImageBuf) Clone() *ImageBuf {
	data := make([]float64, len(b.data))
	copy(data, b.data)
	return &ImageBuf{
		data:     data,
		width:    b.width,
		height:   b.height,
		channels: b.channels,
		depth:    b.depth,
	}
}

// Width returns the image width in pixels.
func (b *ImageBuf) Width() int {
	return b.width
}

// Height returns the image height in pixels.
func (b *ImageBuf) Height() int {
	return b.height
}

// Channels returns the number of interleaved channels.
func (b *ImageBuf) Channels() int {
	return b.channels
}

// Depth returns the sample depth.
func (b *ImageBuf) Depth() Depth {
	return b.depth
}

// Bounds returns the image dimensions as (width, height).
func (b *ImageBuf) Bounds() (int, int) {
	return b.width, b.height
}

// IsEmpty returns true if the image has zero dimensions.
func (b *ImageBuf) IsEmpty() bool {
	return b == nil || b.width == 0 || b.height == 0
}

// Data returns the interleaved samples. Writes through the returned slice
// bypass quantization.
func (b *ImageBuf) Data() []float64 {
	return b.data
}

// Row returns the interleaved samples of row y, or nil if y is out of bounds.
func (b *ImageBuf) Row(y int) []float64 {
	if y < 0 || y >= b.height {
		return nil
	}
	start := y * b.width * b.channels
	return b.data[start : start+b.width*b.channels]
}

func (b *ImageBuf) offset(x, y int) int {
	if x < 0 || x >= b.width || y < 0 || y >= b.height {
		return -1
	}
	return (y*b.width + x) * b.channels
}

// At returns channel c of pixel (x, y). Returns 0 outside the image.
func (b *ImageBuf) At(x, y, c int) float64 {
	off := b.offset(x, y)
	if off < 0 || c < 0 || c >= b.channels {
		return 0
	}
	return b.data[off+c]
}

// Pixel returns the channel samples of pixel (x, y), or nil if out of bounds.
func (b *ImageBuf) Pixel(x, y int) []float64 {
	off := b.offset(x, y)
	if off < 0 {
		return nil
	}
	return b.data[off : off+b.channels]
}

// Set stores v, quantized to the buffer depth, in channel c of pixel (x, y).
func (b *ImageBuf) Set(x, y, c int, v float64) error {
	off := b.offset(x, y)
	if off < 0 || c < 0 || c >= b.channels {
		return ErrOutOfBounds
	}
	b.data[off+c] = b.depth.Quantize(v)
	return nil
}

// SetPixel stores up to Channels() values in pixel (x, y).
func (b *ImageBuf) SetPixel(x, y int, vals ...float64) error {
	off := b.offset(x, y)
	if off < 0 {
		return ErrOutOfBounds
	}
	for c := 0; c < b.channels && c < len(vals); c++ {
		b.data[off+c] = b.depth.Quantize(vals[c])
	}
	return nil
}

// Fill sets every pixel to vals.
func (b *ImageBuf) Fill(vals ...float64) {
	for y := range b.height {
		for x := range b.width {
			_ = b.SetPixel(x, y, vals...)
		}
	}
}

// Luma returns a single channel image of the same depth holding the
// luminance of b. Single channel images are copied as is.
//
// Integer depths use the fixed-point weights 4899/9617/1868 (>>14) of the
// ITU-R BT.601 0.299/0.587/0.114 mix, rounding to nearest; floating point
// depths use the weights directly.
func (b *ImageBuf) Luma() *ImageBuf {
	out := &ImageBuf{
		data:     make([]float64, b.width*b.height),
		width:    b.width,
		height:   b.height,
		channels: 1,
		depth:    b.depth,
	}
	if b.channels == 1 {
		copy(out.data, b.data)
		return out
	}

	const (
		shift = 14
		wr    = 4899
		wg    = 9617
		wb    = 1868
		half  = 1 << (shift - 1)
	)
	for i := range out.data {
		p := b.data[i*b.channels : i*b.channels+3]
		if b.depth.IsFloat() {
			out.data[i] = b.depth.Quantize(0.299*p[0] + 0.587*p[1] + 0.114*p[2])
			continue
		}
		sum := int64(p[0])*wr + int64(p[1])*wg + int64(p[2])*wb + half
		out.data[i] = b.depth.Quantize(float64(sum >> shift))
	}
	return out
}
