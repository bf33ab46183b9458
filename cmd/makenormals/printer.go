package main

import (
	"fmt"
	"io"
	"sync"

	"github.com/fatih/color"

	"github.com/gogpu/normalmap/internal/report"
)

// printer writes colored status lines. It is safe for concurrent use.
type printer struct {
	mu   sync.Mutex
	w    io.Writer
	ok   *color.Color
	fail *color.Color
	dim  *color.Color
}

func newPrinter(w io.Writer) *printer {
	return &printer{
		w:    w,
		ok:   color.New(color.FgGreen),
		fail: color.New(color.FgRed),
		dim:  color.New(color.FgHiBlack),
	}
}

func (p *printer) success(in, out string, sum report.Summary) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.ok.Fprintf(p.w, "✓ %s -> %s", in, out)
	p.dim.Fprintf(p.w, " (%s)", sum)
	fmt.Fprintln(p.w)
}

func (p *printer) failure(in string, err error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.fail.Fprintf(p.w, "✗ %s", in)
	p.dim.Fprintf(p.w, " - %v", err)
	fmt.Fprintln(p.w)
}

func (p *printer) totals(done, failed int) {
	p.mu.Lock()
	defer p.mu.Unlock()

	c := p.ok
	if failed > 0 {
		c = p.fail
	}
	c.Fprintf(p.w, "%d converted, %d failed", done, failed)
	fmt.Fprintln(p.w)
}
