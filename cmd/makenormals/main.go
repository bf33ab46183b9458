// Command makenormals writes the normal map of a photograph next to it.
//
// Usage:
//
//	makenormals IMAGE [STRENGTH [MIN_DETAIL [MAX_DETAIL]]] [flags]
//	makenormals batch FILES... [flags]
//
// The output is named after the input with "_normal" inserted before the
// extension and keeps the input's storage depth.
package main

import (
	"io"
	"os"

	"github.com/fatih/color"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

// run executes the command line and returns the process exit code.
func run(args []string, stdout, stderr io.Writer) int {
	cmd := newRootCmd(stdout, stderr)
	cmd.SetArgs(args)
	if err := cmd.Execute(); err != nil {
		color.New(color.FgRed).Fprintf(stderr, "error: %v\n", err)
		return 1
	}
	return 0
}
