package printer

import (
	"fmt"
	"io"

	"github.com/MBII-Galactic-Conquest/mbregistry/internal/cmd/output"
	"github.com/MBII-Galactic-Conquest/mbregistry/internal/registry"
)

var _ output.Printer[registry.Violation] = (*ViolationPrinter)(nil)

// ViolationPrinter renders validation findings one per line, the format a
// reviewer reads in CI logs.
type ViolationPrinter struct {
	headerFunc output.WriteFunc[registry.Violation]
	footerFunc output.WriteFunc[registry.Violation]
}

func (p *ViolationPrinter) Header(w io.Writer, count int) {
	if p.headerFunc != nil {
		p.headerFunc(w, count)
	}
}

func (p *ViolationPrinter) SetHeader(fn output.WriteFunc[registry.Violation]) {
	p.headerFunc = fn
}

func (p *ViolationPrinter) Item(w io.Writer, elem registry.Violation) error {
	_, _ = fmt.Fprintln(w, elem.String())
	return nil
}

func (p *ViolationPrinter) Footer(w io.Writer, count int) {
	if p.footerFunc != nil {
		p.footerFunc(w, count)
	}
}

func (p *ViolationPrinter) SetFooter(fn output.WriteFunc[registry.Violation]) {
	p.footerFunc = fn
}
