package main

import (
	"fmt"
	"io"
	"path/filepath"
	"runtime"
	"sync/atomic"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

func newBatchCmd(stdout io.Writer, fv *flagValues) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "batch FILES...",
		Short: "Convert many images concurrently",
		Long: `batch converts every FILE with the shared settings, writing each normal
map next to its input. A failing file does not stop the others; the command
fails if any file failed.`,
		Args:          cobra.MinimumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := resolveConfig(cmd, fv, nil)
			if err != nil {
				return err
			}

			jobs := fv.jobs
			if jobs <= 0 {
				jobs = runtime.GOMAXPROCS(0)
			}

			p := newPrinter(stdout)
			var failed atomic.Int64

			planned, rejected := planJobs(args, cfg.Suffix, cfg.Format)
			for _, r := range rejected {
				failed.Add(1)
				p.failure(r.in, r.err)
			}

			g, ctx := errgroup.WithContext(cmd.Context())
			g.SetLimit(jobs)
			for _, j := range planned {
				g.Go(func() error {
					if err := ctx.Err(); err != nil {
						return err
					}
					sum, err := processImage(j, cfg)
					if err != nil {
						failed.Add(1)
						p.failure(j.in, err)
						return nil
					}
					p.success(j.in, j.out, sum)
					return nil
				})
			}
			if err := g.Wait(); err != nil {
				return err
			}

			total := len(planned) + len(rejected)
			n := int(failed.Load())
			p.totals(total-n, n)
			if n > 0 {
				return fmt.Errorf("%d of %d images failed", n, total)
			}
			return nil
		},
	}

	cmd.Flags().IntVarP(&fv.jobs, "jobs", "j", runtime.GOMAXPROCS(0), "images converted at once")
	return cmd
}

// rejectedInput is an input left out of a batch.
type rejectedInput struct {
	in  string
	err error
}

// planJobs keeps the first occurrence of each input path. A later input that
// maps to an output already claimed by another input is rejected, so no two
// jobs write the same file.
func planJobs(args []string, suffix, format string) ([]job, []rejectedInput) {
	var (
		jobs     []job
		rejected []rejectedInput
		seen     = make(map[string]bool, len(args))
		owner    = make(map[string]string, len(args))
	)
	for _, in := range args {
		key := filepath.Clean(in)
		if seen[key] {
			continue
		}
		seen[key] = true

		out := outputPath(in, suffix, format)
		outKey := filepath.Clean(out)
		if prev, ok := owner[outKey]; ok {
			rejected = append(rejected, rejectedInput{in, fmt.Errorf("output %s is already written from %s", out, prev)})
			continue
		}
		owner[outKey] = in
		jobs = append(jobs, job{in: in, out: out})
	}
	return jobs, rejected
}
