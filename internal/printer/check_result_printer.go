package printer

import (
	"fmt"
	"io"

	"github.com/MBII-Galactic-Conquest/mbregistry/internal/cmd/output"
	"github.com/MBII-Galactic-Conquest/mbregistry/internal/github"
)

var _ output.Printer[github.CheckResult] = (*CheckResultPrinter)(nil)

// CheckResultPrinter renders per-entry liveness results for the check command.
type CheckResultPrinter struct {
	headerFunc output.WriteFunc[github.CheckResult]
	footerFunc output.WriteFunc[github.CheckResult]
}

func (p *CheckResultPrinter) Header(w io.Writer, count int) {
	if p.headerFunc != nil {
		p.headerFunc(w, count)
		return
	}

	if count == 0 {
		_, _ = fmt.Fprintln(w, "No entries to check")
	}
}

func (p *CheckResultPrinter) SetHeader(fn output.WriteFunc[github.CheckResult]) {
	p.headerFunc = fn
}

func (p *CheckResultPrinter) Item(w io.Writer, elem github.CheckResult) error {
	switch {
	case elem.Error != "":
		_, _ = fmt.Fprintf(w, "✗ [%d] %s: %s\n", elem.Index, elem.Name, elem.Error)
	case !elem.Exists:
		_, _ = fmt.Fprintf(w, "✗ [%d] %s: repository not found\n", elem.Index, elem.Name)
	case elem.LatestTag != "":
		_, _ = fmt.Fprintf(w, "✓ [%d] %s (latest release: %s)\n", elem.Index, elem.Name, elem.LatestTag)
	default:
		_, _ = fmt.Fprintf(w, "✓ [%d] %s\n", elem.Index, elem.Name)
	}
	return nil
}

func (p *CheckResultPrinter) Footer(w io.Writer, count int) {
	if p.footerFunc != nil {
		p.footerFunc(w, count)
	}
}

func (p *CheckResultPrinter) SetFooter(fn output.WriteFunc[github.CheckResult]) {
	p.footerFunc = fn
}
