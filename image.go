package normalmap

import (
	"io"

	intImage "github.com/gogpu/normalmap/internal/image"
)

// Image is a public alias for the internal image buffer: interleaved
// 1, 3 or 4 channel samples of a fixed Depth.
type Image = intImage.ImageBuf

// Depth is the numeric storage type of an Image's samples.
type Depth = intImage.Depth

// Sample depths. MakeNormals accepts Depth8U, Depth16U, Depth32F and Depth64F.
const (
	// Depth8U is 8-bit unsigned, range [0, 255].
	Depth8U = intImage.Depth8U

	// Depth8S is 8-bit signed.
	Depth8S = intImage.Depth8S

	// Depth16U is 16-bit unsigned, range [0, 65535].
	Depth16U = intImage.Depth16U

	// Depth16S is 16-bit signed.
	Depth16S = intImage.Depth16S

	// Depth32S is 32-bit signed.
	Depth32S = intImage.Depth32S

	// Depth32F is 32-bit float, nominal range [0, 1].
	Depth32F = intImage.Depth32F

	// Depth64F is 64-bit float, nominal range [0, 1].
	Depth64F = intImage.Depth64F
)

// NewImage creates a zeroed image.
func NewImage(width, height, channels int, depth Depth) (*Image, error) {
	return intImage.NewImageBuf(width, height, channels, depth)
}

// ImageFromSamples creates an image from interleaved row-major samples.
// Samples are copied and quantized to depth.
func ImageFromSamples(data []float64, width, height, channels int, depth Depth) (*Image, error) {
	return intImage.FromSamples(data, width, height, channels, depth)
}

// LoadImage reads an image file. PNG, JPEG, GIF, TIFF, BMP and WebP are
// recognized by content. 16-bit sources load as Depth16U, everything
// else as Depth8U.
func LoadImage(path string) (*Image, error) {
	return intImage.LoadImage(path)
}

// DecodeImage decodes an image from r. See LoadImage for formats.
func DecodeImage(r io.Reader) (*Image, error) {
	return intImage.Decode(r)
}
