package main

import (
	"fmt"
	"io"
	"sync"
	"text/tabwriter"

	"github.com/fwojciec/pricex"
)

// iconSymbols maps result icon tokens to terminal glyphs.
var iconSymbols = map[string]string{
	pricex.IconSuccess: "✓",
	pricex.IconError:   "✗",
	pricex.IconNoPrice: "!",
}

// writeResults prints one aligned row per result followed by the summary.
func writeResults(w io.Writer, results []*pricex.Result) {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	for _, v := range pricex.RenderResults(results) {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", iconSymbols[v.Icon], v.Price, v.StatusText, v.URL)
		if v.Error != "" {
			fmt.Fprintf(tw, "\t\t\t%s\n", v.Error)
		}
	}
	_ = tw.Flush()

	successful, failed := pricex.Summarize(results).SummaryLines()
	fmt.Fprintf(w, "%s, %s\n", successful, failed)
}

// progressLine formats a progress update for a single terminal line.
func progressLine(p pricex.Progress) string {
	switch {
	case p.Simulated:
		return fmt.Sprintf("[%3.0f%%] Processing %d of %d URLs...", p.Percent(), p.Current, p.Total)
	case p.Current > 0:
		line := fmt.Sprintf("[%3.0f%%] %d of %d processed", p.Percent(), p.Current, p.Total)
		if p.URL != "" {
			line += "  " + pricex.TruncateURL(p.URL, 40)
		}
		return line
	case p.SessionID != "":
		return fmt.Sprintf("Session %s started, waiting for progress...", p.SessionID)
	default:
		return ""
	}
}

// progressPrinter redraws progress in place on w.
type progressPrinter struct {
	mu      sync.Mutex
	w       io.Writer
	printed bool
}

func (p *progressPrinter) Update(progress pricex.Progress) {
	line := progressLine(progress)
	if line == "" {
		return
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	fmt.Fprintf(p.w, "\r%-80s", line)
	p.printed = true
}

// Clear erases the progress line if one was drawn.
func (p *progressPrinter) Clear() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.printed {
		fmt.Fprintf(p.w, "\r%80s\r", "")
		p.printed = false
	}
}
