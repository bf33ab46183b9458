package image

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/color"
	_ "image/gif"
	"image/jpeg"
	"image/png"
	"io"
	"math"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/image/bmp"
	xdraw "golang.org/x/image/draw"
	"golang.org/x/image/tiff"

	// Registered for Decode only.
	_ "golang.org/x/image/webp"
)

// I/O errors.
var (
	// ErrUnsupportedFormat is returned when the file format is not supported.
	ErrUnsupportedFormat = errors.New("image: unsupported format")

	// ErrEmptyData is returned when image data is empty.
	ErrEmptyData = errors.New("image: empty data")
)

// jpegQuality is used for every JPEG written by this package.
const jpegQuality = 95

// LoadImage loads an image from the given file path, auto-detecting the
// format. PNG, JPEG, TIFF, BMP and WebP are recognized.
func LoadImage(path string) (*ImageBuf, error) {
	f, err := os.Open(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("image: open file: %w", err)
	}
	defer func() { _ = f.Close() }()

	return Decode(f)
}

// LoadImageFromBytes loads an image from a byte slice, auto-detecting the format.
func LoadImageFromBytes(data []byte) (*ImageBuf, error) {
	if len(data) == 0 {
		return nil, ErrEmptyData
	}
	return Decode(bytes.NewReader(data))
}

// Decode decodes an image from the given reader, auto-detecting the format.
func Decode(r io.Reader) (*ImageBuf, error) {
	img, _, err := image.Decode(r)
	if err != nil {
		return nil, fmt.Errorf("image: decode: %w", err)
	}
	return FromStdImage(img), nil
}

// SaveImage writes b to path, choosing the encoder from the extension.
func (b *ImageBuf) SaveImage(path string) error {
	f, err := os.Create(filepath.Clean(path))
	if err != nil {
		return fmt.Errorf("image: create file: %w", err)
	}

	if err := b.Encode(f, filepath.Ext(path)); err != nil {
		_ = f.Close()
		return err
	}

	return f.Close()
}

// Encode writes b to w in the format named by ext (".png", ".jpg", ".jpeg",
// ".tif", ".tiff" or ".bmp", case insensitive, the dot is optional).
//
// 16-bit and floating point buffers keep 16 bits of precision in PNG and
// TIFF; JPEG and BMP are 8-bit only.
func (b *ImageBuf) Encode(w io.Writer, ext string) error {
	img := b.ToStdImage()

	var err error
	switch strings.TrimPrefix(strings.ToLower(ext), ".") {
	case "png":
		err = png.Encode(w, img)
	case "jpg", "jpeg":
		err = jpeg.Encode(w, img, &jpeg.Options{Quality: jpegQuality})
	case "tif", "tiff":
		err = tiff.Encode(w, img, &tiff.Options{Compression: tiff.Deflate, Predictor: true})
	case "bmp":
		err = bmp.Encode(w, to8Bit(img))
	default:
		return fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)
	}
	if err != nil {
		return fmt.Errorf("image: encode %s: %w", ext, err)
	}
	return nil
}

// is16Bit reports whether img carries more than 8 bits per channel.
func is16Bit(img image.Image) bool {
	switch img.ColorModel() {
	case color.RGBA64Model, color.NRGBA64Model, color.Gray16Model:
		return true
	}
	return false
}

// FromStdImage creates an ImageBuf from a standard library image.Image.
//
// Grayscale images become single channel buffers; everything else becomes
// a 3 channel RGB buffer with alpha dropped. 16-bit sources keep Depth16U,
// all others are Depth8U.
func FromStdImage(img image.Image) *ImageBuf {
	bounds := img.Bounds()
	width := bounds.Dx()
	height := bounds.Dy()

	switch src := img.(type) {
	case *image.Gray:
		buf, _ := NewImageBuf(width, height, 1, Depth8U)
		for y := range height {
			row := src.Pix[y*src.Stride : y*src.Stride+width]
			dst := buf.Row(y)
			for x, v := range row {
				dst[x] = float64(v)
			}
		}
		return buf

	case *image.Gray16:
		buf, _ := NewImageBuf(width, height, 1, Depth16U)
		for y := range height {
			dst := buf.Row(y)
			for x := range width {
				off := y*src.Stride + x*2
				dst[x] = float64(uint16(src.Pix[off])<<8 | uint16(src.Pix[off+1]))
			}
		}
		return buf
	}

	if is16Bit(img) {
		nrgba := image.NewNRGBA64(image.Rect(0, 0, width, height))
		xdraw.Draw(nrgba, nrgba.Bounds(), img, bounds.Min, xdraw.Src)

		buf, _ := NewImageBuf(width, height, 3, Depth16U)
		for y := range height {
			dst := buf.Row(y)
			for x := range width {
				c := nrgba.NRGBA64At(x, y)
				dst[x*3] = float64(c.R)
				dst[x*3+1] = float64(c.G)
				dst[x*3+2] = float64(c.B)
			}
		}
		return buf
	}

	nrgba, ok := img.(*image.NRGBA)
	if !ok || bounds.Min != (image.Point{}) {
		nrgba = image.NewNRGBA(image.Rect(0, 0, width, height))
		xdraw.Draw(nrgba, nrgba.Bounds(), img, bounds.Min, xdraw.Src)
	}

	buf, _ := NewImageBuf(width, height, 3, Depth8U)
	for y := range height {
		src := nrgba.Pix[y*nrgba.Stride:]
		dst := buf.Row(y)
		for x := range width {
			dst[x*3] = float64(src[x*4])
			dst[x*3+1] = float64(src[x*4+1])
			dst[x*3+2] = float64(src[x*4+2])
		}
	}
	return buf
}

// to16 maps a sample of b onto the 16-bit range.
func (b *ImageBuf) to16(v float64) uint16 {
	switch {
	case b.depth.IsFloat():
		v *= math.MaxUint16
	case b.depth.BitsPerChannel() <= 8:
		v *= 257
	case b.depth == Depth32S:
		v /= 1 << 15
	}
	return uint16(math.Max(0, math.Min(math.MaxUint16, math.Round(v))))
}

// ToStdImage converts the ImageBuf to a standard library image.Image.
//
// 8-bit buffers produce *image.Gray or *image.NRGBA; every other depth
// produces *image.Gray16 or *image.NRGBA64. Negative samples clamp to 0.
func (b *ImageBuf) ToStdImage() image.Image {
	rect := image.Rect(0, 0, b.width, b.height)
	eightBit := b.depth == Depth8U || b.depth == Depth8S

	if b.channels == 1 {
		if eightBit {
			gray := image.NewGray(rect)
			for y := range b.height {
				for x, v := range b.Row(y) {
					gray.Pix[y*gray.Stride+x] = uint8(math.Max(0, v))
				}
			}
			return gray
		}
		gray16 := image.NewGray16(rect)
		for y := range b.height {
			for x, v := range b.Row(y) {
				gray16.SetGray16(x, y, color.Gray16{Y: b.to16(v)})
			}
		}
		return gray16
	}

	if eightBit {
		nrgba := image.NewNRGBA(rect)
		for y := range b.height {
			for x := range b.width {
				p := b.Pixel(x, y)
				off := y*nrgba.Stride + x*4
				nrgba.Pix[off] = uint8(math.Max(0, p[0]))
				nrgba.Pix[off+1] = uint8(math.Max(0, p[1]))
				nrgba.Pix[off+2] = uint8(math.Max(0, p[2]))
				nrgba.Pix[off+3] = 255
				if b.channels == 4 {
					nrgba.Pix[off+3] = uint8(math.Max(0, p[3]))
				}
			}
		}
		return nrgba
	}

	nrgba64 := image.NewNRGBA64(rect)
	for y := range b.height {
		for x := range b.width {
			p := b.Pixel(x, y)
			c := color.NRGBA64{R: b.to16(p[0]), G: b.to16(p[1]), B: b.to16(p[2]), A: math.MaxUint16}
			if b.channels == 4 {
				c.A = b.to16(p[3])
			}
			nrgba64.SetNRGBA64(x, y, c)
		}
	}
	return nrgba64
}

// to8Bit narrows 16-bit images for encoders that only write 8 bits.
func to8Bit(img image.Image) image.Image {
	if !is16Bit(img) {
		return img
	}
	dst := image.NewNRGBA(img.Bounds())
	xdraw.Draw(dst, dst.Bounds(), img, img.Bounds().Min, xdraw.Src)
	return dst
}

// EncodeToBytes encodes the image to PNG format and returns the bytes.
func (b *ImageBuf) EncodeToBytes() ([]byte, error) {
	var buf bytes.Buffer
	if err := b.Encode(&buf, "png"); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
