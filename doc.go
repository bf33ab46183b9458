// Package normalmap turns a photograph into a tangent-space normal map.
//
// # Overview
//
// A normal map stores a unit surface normal per pixel, biased from [-1, 1]
// into the image's storage range so it can be saved as an ordinary color
// image. normalmap estimates the normals from the luminance of a single
// photo: brightness slopes are read as surface slopes.
//
// # Quick Start
//
//	import "github.com/gogpu/normalmap"
//
//	src, err := normalmap.LoadImage("brick.png")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	normal, err := normalmap.MakeNormals(src, normalmap.DefaultParams())
//	if err != nil {
//	    log.Fatal(err)
//	}
//	_ = normal.SaveImage("brick_normal.png")
//
// # Pipeline
//
// MakeNormals runs a fixed sequence of stages, each producing new values:
//   - Luminance: gray conversion divided by the depth's maximum value.
//   - Band-pass: an optional low-pass (MinDetail) followed by an optional
//     high-pass (MaxDetail), both built on [FastBlur].
//   - Pyramid: Scharr gradient normals estimated at every octave of the
//     luminance, upsampled with cubic interpolation and averaged.
//   - Storage: renormalized, biased and quantized back to the source depth.
//
// The output channels are R = horizontal slope, G = vertical slope and
// B = the height-facing component.
//
// # Supported Formats
//
// Images with 8-bit or 16-bit unsigned, or 32-bit or 64-bit float samples
// are accepted. Any other depth yields [ErrUnsupportedFormat].
//
// # Concurrency
//
// MakeNormals is stateless and safe to call from multiple goroutines.
// [WithWorkers] spreads pyramid levels over a per-call worker pool; the
// result is identical to the sequential one.
package normalmap

// Version information
const (
	// Version is the current version of the library
	Version = "0.1.0"

	// VersionMajor is the major version
	VersionMajor = 0

	// VersionMinor is the minor version
	VersionMinor = 1

	// VersionPatch is the patch version
	VersionPatch = 0
)
