package config

import (
	"errors"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("WriteFile(%s) error = %v", name, err)
	}
	return path
}

func mapLookup(m map[string]string) func(string) (string, bool) {
	return func(k string) (string, bool) {
		v, ok := m[k]
		return v, ok
	}
}

func TestDefault(t *testing.T) {
	cfg := Default()
	want := Config{Strength: 0.25, Workers: 1, MinFilterSize: 20, Suffix: "_normal"}
	if diff := cmp.Diff(want, cfg); diff != "" {
		t.Errorf("Default() mismatch (-want +got):\n%s", diff)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("Default().Validate() = %v", err)
	}
}

func TestLoadFile(t *testing.T) {
	path := writeFile(t, "preset.yaml", `
strength: 2
max_detail: 64
format: tif
`)

	cfg := Default()
	if err := cfg.LoadFile(path); err != nil {
		t.Fatalf("LoadFile() error = %v", err)
	}
	want := Default()
	want.Strength = 2
	want.MaxDetail = 64
	want.Format = "tif"
	if diff := cmp.Diff(want, cfg); diff != "" {
		t.Errorf("LoadFile() mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadFile_Errors(t *testing.T) {
	t.Run("unknown key", func(t *testing.T) {
		path := writeFile(t, "bad.yaml", "strenght: 1\n")
		cfg := Default()
		if err := cfg.LoadFile(path); err == nil {
			t.Error("LoadFile() with a misspelled key should fail")
		}
	})

	t.Run("missing file", func(t *testing.T) {
		cfg := Default()
		err := cfg.LoadFile(filepath.Join(t.TempDir(), "none.yaml"))
		if !errors.Is(err, os.ErrNotExist) {
			t.Errorf("LoadFile() error = %v, want os.ErrNotExist", err)
		}
	})

	t.Run("empty file keeps defaults", func(t *testing.T) {
		path := writeFile(t, "empty.yaml", "\n")
		cfg := Default()
		if err := cfg.LoadFile(path); err != nil {
			t.Fatalf("LoadFile() error = %v", err)
		}
		if diff := cmp.Diff(Default(), cfg); diff != "" {
			t.Errorf("empty preset changed config (-want +got):\n%s", diff)
		}
	})
}

func TestApplyEnv(t *testing.T) {
	cfg := Default()
	err := cfg.ApplyEnv(mapLookup(map[string]string{
		"NORMALMAP_STRENGTH":        "1.5",
		"NORMALMAP_MIN_DETAIL":      " 2 ",
		"NORMALMAP_MAX_DETAIL":      "",
		"NORMALMAP_WORKERS":         "4",
		"NORMALMAP_MIN_FILTER_SIZE": "8",
		"NORMALMAP_SUFFIX":          "_n",
		"NORMALMAP_FORMAT":          "png",
		"STRENGTH":                  "99",
	}))
	if err != nil {
		t.Fatalf("ApplyEnv() error = %v", err)
	}

	want := Config{Strength: 1.5, MinDetail: 2, Workers: 4, MinFilterSize: 8, Suffix: "_n", Format: "png"}
	if diff := cmp.Diff(want, cfg); diff != "" {
		t.Errorf("ApplyEnv() mismatch (-want +got):\n%s", diff)
	}
}

func TestApplyEnv_InvalidNumber(t *testing.T) {
	for _, env := range []map[string]string{
		{"NORMALMAP_STRENGTH": "strong"},
		{"NORMALMAP_WORKERS": "1.5"},
	} {
		cfg := Default()
		if err := cfg.ApplyEnv(mapLookup(env)); !errors.Is(err, ErrInvalidParam) {
			t.Errorf("ApplyEnv(%v) error = %v, want ErrInvalidParam", env, err)
		}
	}
}

func TestLoad_Layering(t *testing.T) {
	preset := writeFile(t, "preset.yaml", "strength: 2\nmin_detail: 3\nmax_detail: 40\n")
	dotenv := writeFile(t, ".env", "NORMALMAP_MIN_DETAIL=5\nNORMALMAP_MAX_DETAIL=50\n")
	t.Setenv("NORMALMAP_MAX_DETAIL", "60")

	cfg, err := Load(preset, dotenv)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Strength != 2 {
		t.Errorf("Strength = %v, want 2 from the preset", cfg.Strength)
	}
	if cfg.MinDetail != 5 {
		t.Errorf("MinDetail = %v, want 5 from .env", cfg.MinDetail)
	}
	if cfg.MaxDetail != 60 {
		t.Errorf("MaxDetail = %v, want 60 from the environment", cfg.MaxDetail)
	}
}

func TestLoad_MissingEnvFile(t *testing.T) {
	cfg, err := Load("", filepath.Join(t.TempDir(), ".env"))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Suffix != DefaultSuffix {
		t.Errorf("Suffix = %q, want %q", cfg.Suffix, DefaultSuffix)
	}
}

func TestLoad_InvalidPreset(t *testing.T) {
	preset := writeFile(t, "preset.yaml", "strength: -1\n")
	if _, err := Load(preset, ""); !errors.Is(err, ErrInvalidParam) {
		t.Errorf("Load() error = %v, want ErrInvalidParam", err)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr error
	}{
		{"defaults", func(*Config) {}, nil},
		{"zero values", func(c *Config) { c.Strength, c.MinFilterSize, c.Workers = 0, 0, 0 }, nil},
		{"negative strength", func(c *Config) { c.Strength = -0.1 }, ErrInvalidParam},
		{"NaN min detail", func(c *Config) { c.MinDetail = math.NaN() }, ErrInvalidParam},
		{"infinite max detail", func(c *Config) { c.MaxDetail = math.Inf(1) }, ErrInvalidParam},
		{"negative workers", func(c *Config) { c.Workers = -2 }, ErrInvalidParam},
		{"empty suffix", func(c *Config) { c.Suffix = "" }, ErrInvalidParam},
		{"empty suffix with format", func(c *Config) { c.Suffix, c.Format = "", "png" }, nil},
		{"unknown format", func(c *Config) { c.Format = "exr" }, ErrUnknownFormat},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.wantErr == nil && err != nil {
				t.Errorf("Validate() = %v, want nil", err)
			}
			if tt.wantErr != nil && !errors.Is(err, tt.wantErr) {
				t.Errorf("Validate() = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestNormalizeFormat(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"", ""},
		{"PNG", "png"},
		{".tif", "tif"},
		{" jpeg ", "jpeg"},
	}
	for _, tt := range tests {
		got, err := NormalizeFormat(tt.in)
		if err != nil || got != tt.want {
			t.Errorf("NormalizeFormat(%q) = %q, %v; want %q", tt.in, got, err, tt.want)
		}
	}
	if _, err := NormalizeFormat("gif"); !errors.Is(err, ErrUnknownFormat) {
		t.Errorf("NormalizeFormat(gif) error = %v, want ErrUnknownFormat", err)
	}
}
