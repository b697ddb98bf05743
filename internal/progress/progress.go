// Package progress renders a live-updating percentage on one line,
// overwriting itself as a pass advances. It stays silent when the
// destination is not a terminal so redirected output is never polluted.
package progress

import (
	"fmt"
	"io"
	"math"
	"os"

	"golang.org/x/term"
)

// Meter writes a single \r-overwritten progress line.
type Meter struct {
	w       io.Writer
	enabled bool
	last    int
	active  bool
}

// New creates a meter writing to w. Output is enabled only when w is a
// terminal.
func New(w io.Writer) *Meter {
	return &Meter{w: w, enabled: isTerminal(w), last: -1}
}

// NewForced creates a meter that always writes, regardless of TTY
// detection. Tests use this.
func NewForced(w io.Writer) *Meter {
	return &Meter{w: w, enabled: true, last: -1}
}

func isTerminal(w io.Writer) bool {
	if f, ok := w.(*os.File); ok {
		return term.IsTerminal(int(f.Fd()))
	}
	return false
}

// Update redraws the progress line when the rounded percentage changed.
func (m *Meter) Update(consumed, total int64) {
	if !m.enabled || total <= 0 {
		return
	}

	pct := int(math.Round(float64(consumed) / float64(total) * 100))
	if pct == m.last {
		return
	}
	m.last = pct
	m.active = true
	fmt.Fprintf(m.w, "\r%3d%%", pct)
}

// Done ends the progress line so subsequent output starts on a fresh one.
func (m *Meter) Done() {
	if !m.enabled || !m.active {
		return
	}
	m.active = false
	fmt.Fprint(m.w, "\r    \r")
}
