// Package config loads makenormals settings.
//
// Settings are layered, later layers winning:
//
//  1. Built-in defaults (Default).
//  2. A YAML preset file.
//  3. A .env file.
//  4. NORMALMAP_* environment variables.
//
// Command-line flags are applied on top by the caller.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Errors returned by this package.
var (
	// ErrInvalidParam is returned for negative, NaN or infinite values and
	// other out-of-range settings.
	ErrInvalidParam = errors.New("config: invalid parameter")

	// ErrUnknownFormat is returned for an output format without an encoder.
	ErrUnknownFormat = errors.New("config: unknown output format")
)

// EnvPrefix prefixes every environment variable read by ApplyEnv.
const EnvPrefix = "NORMALMAP_"

// DefaultSuffix is inserted before the extension of an input path to name
// its normal map.
const DefaultSuffix = "_normal"

// Config holds every makenormals setting.
type Config struct {
	Strength      float64 `yaml:"strength"`
	MinDetail     float64 `yaml:"min_detail"`
	MaxDetail     float64 `yaml:"max_detail"`
	Workers       int     `yaml:"workers"`
	MinFilterSize float64 `yaml:"min_filter_size"`

	// Suffix is inserted before the input extension to form the output path.
	Suffix string `yaml:"suffix"`

	// Format overrides the output extension (png, jpg, tif, bmp).
	// Empty keeps the input's extension.
	Format string `yaml:"format"`
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		Strength:      0.25,
		Workers:       1,
		MinFilterSize: 20,
		Suffix:        DefaultSuffix,
	}
}

// Load builds a Config from the defaults, the YAML preset at presetPath
// and the .env file at envPath, then the process environment. Empty paths
// are skipped, and a missing .env file is not an error.
func Load(presetPath, envPath string) (Config, error) {
	cfg := Default()

	if presetPath != "" {
		if err := cfg.LoadFile(presetPath); err != nil {
			return Config{}, err
		}
	}

	dotenv := map[string]string{}
	if envPath != "" {
		m, err := godotenv.Read(envPath)
		switch {
		case err == nil:
			dotenv = m
		case !errors.Is(err, os.ErrNotExist):
			return Config{}, fmt.Errorf("config: read %s: %w", envPath, err)
		}
	}

	lookup := func(key string) (string, bool) {
		if v, ok := os.LookupEnv(key); ok {
			return v, true
		}
		v, ok := dotenv[key]
		return v, ok
	}
	if err := cfg.ApplyEnv(lookup); err != nil {
		return Config{}, err
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// LoadFile merges the YAML preset at path into c. Keys absent from the file
// keep their current values; unknown keys are an error.
func (c *Config) LoadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}
	if err := c.parseYAML(data); err != nil {
		return fmt.Errorf("config: %s: %w", path, err)
	}
	return nil
}

func (c *Config) parseYAML(data []byte) error {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil
	}
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(c); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}

// ApplyEnv overrides c with NORMALMAP_* variables found by lookup.
// Pass os.LookupEnv to read the process environment.
func (c *Config) ApplyEnv(lookup func(string) (string, bool)) error {
	floats := []struct {
		key string
		dst *float64
	}{
		{"STRENGTH", &c.Strength},
		{"MIN_DETAIL", &c.MinDetail},
		{"MAX_DETAIL", &c.MaxDetail},
		{"MIN_FILTER_SIZE", &c.MinFilterSize},
	}
	for _, f := range floats {
		v, ok := lookup(EnvPrefix + f.key)
		if !ok || strings.TrimSpace(v) == "" {
			continue
		}
		parsed, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil {
			return fmt.Errorf("%w: %s%s=%q", ErrInvalidParam, EnvPrefix, f.key, v)
		}
		*f.dst = parsed
	}

	if v, ok := lookup(EnvPrefix + "WORKERS"); ok && strings.TrimSpace(v) != "" {
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return fmt.Errorf("%w: %sWORKERS=%q", ErrInvalidParam, EnvPrefix, v)
		}
		c.Workers = n
	}
	if v, ok := lookup(EnvPrefix + "SUFFIX"); ok && v != "" {
		c.Suffix = v
	}
	if v, ok := lookup(EnvPrefix + "FORMAT"); ok {
		c.Format = v
	}
	return nil
}

// Validate reports the first setting out of range.
func (c Config) Validate() error {
	values := []struct {
		name string
		v    float64
	}{
		{"strength", c.Strength},
		{"min_detail", c.MinDetail},
		{"max_detail", c.MaxDetail},
		{"min_filter_size", c.MinFilterSize},
	}
	for _, p := range values {
		if math.IsNaN(p.v) || math.IsInf(p.v, 0) || p.v < 0 {
			return fmt.Errorf("%w: %s = %v", ErrInvalidParam, p.name, p.v)
		}
	}
	if c.Workers < 0 {
		return fmt.Errorf("%w: workers = %d", ErrInvalidParam, c.Workers)
	}
	if c.Suffix == "" && c.Format == "" {
		return fmt.Errorf("%w: empty suffix would overwrite the input", ErrInvalidParam)
	}
	if _, err := NormalizeFormat(c.Format); err != nil {
		return err
	}
	return nil
}

// NormalizeFormat lower-cases f and strips a leading dot. It accepts the
// formats the image encoder writes, and the empty string.
func NormalizeFormat(f string) (string, error) {
	f = strings.ToLower(strings.TrimPrefix(strings.TrimSpace(f), "."))
	switch f {
	case "", "png", "jpg", "jpeg", "tif", "tiff", "bmp":
		return f, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownFormat, f)
	}
}
