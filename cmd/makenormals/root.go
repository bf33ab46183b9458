package main

import (
	"fmt"
	"io"
	"log/slog"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/gogpu/normalmap"
	"github.com/gogpu/normalmap/internal/config"
)

// flagValues holds the values bound to command-line flags.
type flagValues struct {
	configPath string
	envFile    string
	verbose    bool

	strength      float64
	minDetail     float64
	maxDetail     float64
	workers       int
	minFilterSize float64
	suffix        string
	format        string

	// Single image only.
	output    string
	histogram string

	// Batch only.
	jobs int
}

var positionalNames = []string{"strength", "min detail", "max detail"}

func newRootCmd(stdout, stderr io.Writer) *cobra.Command {
	return buildRootCmd(stdout, stderr, &flagValues{})
}

// buildRootCmd binds the flags of the command tree to fv.
func buildRootCmd(stdout, stderr io.Writer, fv *flagValues) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "makenormals IMAGE [STRENGTH [MIN_DETAIL [MAX_DETAIL]]]",
		Short: "Create a tangent-space normal map from a photograph",
		Long: `makenormals estimates surface normals from the luminance of a photo and
writes them as a normal map image (R = X, G = Y, B = Z).

STRENGTH scales the slopes (default 0.25). MIN_DETAIL removes detail finer
than that many pixels; MAX_DETAIL removes detail coarser than that. Zero
disables either bound. Negative values are treated as zero.

Settings are read from a YAML preset (--config), a .env file and
NORMALMAP_* environment variables; positional values and flags win.`,
		Args:          cobra.RangeArgs(1, 4),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(*cobra.Command, []string) {
			setupLogger(stderr, fv.verbose)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := resolveConfig(cmd, fv, args[1:])
			if err != nil {
				return err
			}

			out := fv.output
			if out == "" {
				out = outputPath(args[0], cfg.Suffix, cfg.Format)
			}

			p := newPrinter(stdout)
			sum, err := processImage(job{in: args[0], out: out, histogram: fv.histogram}, cfg)
			if err != nil {
				p.failure(args[0], err)
				return err
			}
			p.success(args[0], out, sum)
			return nil
		},
	}
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)

	pf := cmd.PersistentFlags()
	pf.StringVarP(&fv.configPath, "config", "c", "", "YAML preset file")
	pf.StringVar(&fv.envFile, "env-file", ".env", "dotenv file with NORMALMAP_* overrides")
	pf.BoolVarP(&fv.verbose, "verbose", "v", false, "log pipeline diagnostics")
	pf.Float64VarP(&fv.strength, "strength", "s", normalmap.DefaultStrength, "slope strength")
	pf.Float64Var(&fv.minDetail, "min-detail", 0, "remove detail finer than this many pixels")
	pf.Float64Var(&fv.maxDetail, "max-detail", 0, "remove detail coarser than this many pixels")
	pf.IntVarP(&fv.workers, "workers", "w", 1, "goroutines per image for pyramid levels (0 = all CPUs)")
	pf.Float64Var(&fv.minFilterSize, "min-filter-size", normalmap.DefaultMinFilterSize, "smallest blur run without halving")
	pf.StringVar(&fv.suffix, "suffix", config.DefaultSuffix, "inserted before the extension of output files")
	pf.StringVarP(&fv.format, "format", "f", "", "output format (png, jpg, tif, bmp); default keeps the input's")

	f := cmd.Flags()
	f.StringVarP(&fv.output, "output", "o", "", "output path (default IMAGE with the suffix)")
	f.StringVar(&fv.histogram, "histogram", "", "also plot the tilt histogram to this file")

	cmd.AddCommand(newBatchCmd(stdout, fv))
	return cmd
}

// setupLogger routes library diagnostics to stderr.
func setupLogger(stderr io.Writer, verbose bool) {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	normalmap.SetLogger(slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level})))
}

// resolveConfig layers positional values and changed flags over the
// preset, .env and environment settings. Command-line values are clamped
// to zero like the original positional interface; file and environment
// values must already be valid.
func resolveConfig(cmd *cobra.Command, fv *flagValues, positional []string) (config.Config, error) {
	cfg, err := config.Load(fv.configPath, fv.envFile)
	if err != nil {
		return config.Config{}, err
	}

	dst := []*float64{&cfg.Strength, &cfg.MinDetail, &cfg.MaxDetail}
	for i, arg := range positional {
		v, err := strconv.ParseFloat(arg, 64)
		if err != nil {
			return config.Config{}, fmt.Errorf("%s %q: %w", positionalNames[i], arg, config.ErrInvalidParam)
		}
		*dst[i] = v
	}

	flags := cmd.Flags()
	if flags.Changed("strength") {
		cfg.Strength = fv.strength
	}
	if flags.Changed("min-detail") {
		cfg.MinDetail = fv.minDetail
	}
	if flags.Changed("max-detail") {
		cfg.MaxDetail = fv.maxDetail
	}
	if flags.Changed("workers") {
		cfg.Workers = fv.workers
	}
	if flags.Changed("min-filter-size") {
		cfg.MinFilterSize = fv.minFilterSize
	}
	if flags.Changed("suffix") {
		cfg.Suffix = fv.suffix
	}
	if flags.Changed("format") {
		cfg.Format = fv.format
	}

	p := params(cfg).Clamp()
	cfg.Strength, cfg.MinDetail, cfg.MaxDetail = p.Strength, p.MinDetail, p.MaxDetail

	if err := cfg.Validate(); err != nil {
		return config.Config{}, err
	}
	cfg.Format, _ = config.NormalizeFormat(cfg.Format)
	return cfg, nil
}

func params(cfg config.Config) normalmap.Params {
	return normalmap.Params{
		Strength:  cfg.Strength,
		MinDetail: cfg.MinDetail,
		MaxDetail: cfg.MaxDetail,
	}
}
