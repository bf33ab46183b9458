package main

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/gogpu/normalmap"
	"github.com/gogpu/normalmap/internal/config"
	"github.com/gogpu/normalmap/internal/report"
)

// job names the files of one conversion.
type job struct {
	in        string
	out       string
	histogram string // empty for none
}

// encodable lists the extensions SaveImage writes.
var encodable = map[string]bool{
	".png": true, ".jpg": true, ".jpeg": true, ".tif": true, ".tiff": true, ".bmp": true,
}

// outputPath inserts suffix before the extension of in. A non-empty format
// replaces the extension; inputs whose extension cannot be written get .png.
func outputPath(in, suffix, format string) string {
	ext := filepath.Ext(in)
	base := strings.TrimSuffix(in, ext)

	switch {
	case format != "":
		ext = "." + format
	case !encodable[strings.ToLower(ext)]:
		ext = ".png"
	}
	return base + suffix + ext
}

// processImage converts one image and returns the summary of its normal map.
func processImage(j job, cfg config.Config) (report.Summary, error) {
	src, err := normalmap.LoadImage(j.in)
	if err != nil {
		return report.Summary{}, err
	}

	normal, err := normalmap.MakeNormals(src, params(cfg),
		normalmap.WithWorkers(cfg.Workers),
		normalmap.WithMinFilterSize(cfg.MinFilterSize))
	if err != nil {
		return report.Summary{}, err
	}

	if err := normal.SaveImage(j.out); err != nil {
		return report.Summary{}, fmt.Errorf("save %s: %w", j.out, err)
	}

	sum, err := report.Summarize(normal)
	if err != nil {
		return report.Summary{}, err
	}
	if j.histogram != "" {
		if err := report.SaveHistogram(normal, 0, j.histogram); err != nil {
			return report.Summary{}, err
		}
	}
	return sum, nil
}
