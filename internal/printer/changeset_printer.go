package printer

import (
	"fmt"
	"io"

	"github.com/MBII-Galactic-Conquest/mbregistry/internal/cmd/output"
	"github.com/MBII-Galactic-Conquest/mbregistry/internal/registry"
)

var _ output.Printer[registry.ChangeSet] = (*ChangeSetPrinter)(nil)

// ChangeSetPrinter renders the difference between two registry snapshots.
type ChangeSetPrinter struct {
	headerFunc output.WriteFunc[registry.ChangeSet]
	footerFunc output.WriteFunc[registry.ChangeSet]
}

func (p *ChangeSetPrinter) Header(w io.Writer, count int) {
	if p.headerFunc != nil {
		p.headerFunc(w, count)
	}
}

func (p *ChangeSetPrinter) SetHeader(fn output.WriteFunc[registry.ChangeSet]) {
	p.headerFunc = fn
}

func (p *ChangeSetPrinter) Item(w io.Writer, elem registry.ChangeSet) error {
	if elem.Additive() && len(elem.Added) == 0 {
		_, _ = fmt.Fprintln(w, "No changes")
		return nil
	}

	for _, e := range elem.Added {
		_, _ = fmt.Fprintf(w, "+ %s (%s)\n", e.Name, e.CustomName)
	}
	for _, m := range elem.Modified {
		_, _ = fmt.Fprintf(w, "~ %s\n", m.Old.Name)
	}
	for _, e := range elem.Removed {
		_, _ = fmt.Fprintf(w, "- %s (%s)\n", e.Name, e.CustomName)
	}

	return nil
}

func (p *ChangeSetPrinter) Footer(w io.Writer, count int) {
	if p.footerFunc != nil {
		p.footerFunc(w, count)
	}
}

func (p *ChangeSetPrinter) SetFooter(fn output.WriteFunc[registry.ChangeSet]) {
	p.footerFunc = fn
}
