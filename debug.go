package mural

import (
	"fmt"
	"os"
)

// frameStats holds per-frame counters. Only reported when Options.Debug is
// set.
type frameStats struct {
	updated  int  // emitters whose position/velocity advanced
	inactive int  // emitters below the activity threshold
	rejected int  // projections rejected (non-finite / out of bounds)
	painted  int  // emitters that produced stroke ops
	cleared  bool // periodic full clear fired this frame
}

// debugLog prints frame counters to stderr.
func (p *Painter) debugLog() {
	_, _ = fmt.Fprintf(os.Stderr,
		"[mural] frame %d | updated: %d | inactive: %d | rejected: %d | painted: %d | cleared: %v\n",
		p.frame, p.stats.updated, p.stats.inactive, p.stats.rejected, p.stats.painted, p.stats.cleared)
}

// Stats returns the most recent frame's counters for external dashboards.
func (p *Painter) Stats() (updated, inactive, rejected, painted int) {
	return p.stats.updated, p.stats.inactive, p.stats.rejected, p.stats.painted
}
