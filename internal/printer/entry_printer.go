package printer

import (
	"fmt"
	"io"

	"github.com/MBII-Galactic-Conquest/mbregistry/internal/cmd/output"
	"github.com/MBII-Galactic-Conquest/mbregistry/internal/registry"
)

var _ output.Printer[registry.Entry] = (*EntryPrinter)(nil)

// EntryPrinter renders registry entries for the list command.
type EntryPrinter struct {
	headerFunc output.WriteFunc[registry.Entry]
	footerFunc output.WriteFunc[registry.Entry]
}

func (p *EntryPrinter) Header(w io.Writer, count int) {
	if p.headerFunc != nil {
		p.headerFunc(w, count)
		return
	}

	if count == 0 {
		_, _ = fmt.Fprintln(w, "No entries found")
		return
	}
	_, _ = fmt.Fprintf(w, "Registry entries (%d):\n", count)
}

func (p *EntryPrinter) SetHeader(fn output.WriteFunc[registry.Entry]) {
	p.headerFunc = fn
}

func (p *EntryPrinter) Item(w io.Writer, elem registry.Entry) error {
	_, _ = fmt.Fprintf(w, "  %s (%s)\n", elem.CustomName, elem.Name)
	if elem.Description != "" {
		_, _ = fmt.Fprintf(w, "    %s\n", elem.Description)
	}
	_, _ = fmt.Fprintf(w, "    %s\n", elem.URL)
	return nil
}

func (p *EntryPrinter) Footer(w io.Writer, count int) {
	if p.footerFunc != nil {
		p.footerFunc(w, count)
	}
}

func (p *EntryPrinter) SetFooter(fn output.WriteFunc[registry.Entry]) {
	p.footerFunc = fn
}
