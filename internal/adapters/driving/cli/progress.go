package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/dustin/go-humanize"
	"golang.org/x/term"
)

// isTerminal reports whether w is an interactive terminal.
var isTerminal = func(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// downloadProgress draws a single-line progress bar on a terminal and
// stays silent otherwise.
type downloadProgress struct {
	w       io.Writer
	bar     progress.Model
	enabled bool
	drawn   bool
	lastPct int
}

func newDownloadProgress(w io.Writer) *downloadProgress {
	theme := ui.Theme()
	return &downloadProgress{
		w: w,
		bar: progress.New(
			progress.WithGradient(string(theme.Primary), string(theme.Secondary)),
			progress.WithWidth(40),
		),
		enabled: isTerminal(w),
		lastPct: -1,
	}
}

// Update redraws the bar. Redraws are limited to whole-percent changes;
// without a known total only the byte count is shown.
func (p *downloadProgress) Update(written, total int64) {
	if !p.enabled {
		return
	}

	if total <= 0 {
		fmt.Fprintf(p.w, "\r%s downloaded", humanize.Bytes(uint64(written)))
		p.drawn = true
		return
	}

	pct := int(written * 100 / total)
	if pct == p.lastPct {
		return
	}
	p.lastPct = pct

	fmt.Fprintf(p.w, "\r%s %s / %s",
		p.bar.ViewAs(float64(written)/float64(total)),
		humanize.Bytes(uint64(written)),
		humanize.Bytes(uint64(total)))
	p.drawn = true
}

// Done terminates the progress line.
func (p *downloadProgress) Done() {
	if p.drawn {
		fmt.Fprintln(p.w)
		p.drawn = false
	}
}
