package strand

import (
	"fmt"
	"io"
	"os"
	"time"
)

// debugOutput receives diagnostics. Replaced in tests.
var debugOutput io.Writer = os.Stderr

// debugStats holds per-frame timing and link-redraw metrics.
// Only populated when Diagram.debug is true (linkRedraws always counts).
type debugStats struct {
	updateTime  time.Duration
	drawTime    time.Duration
	shapeCount  int
	linkCount   int
	linkRedraws int
}

// SetDebugMode enables or disables debug mode. When enabled, dropped links,
// degenerate nodes and per-frame timing stats are logged to stderr.
func (d *Diagram) SetDebugMode(enabled bool) {
	d.debug = enabled
}

// debugf writes one diagnostic line when debug mode is on.
func (d *Diagram) debugf(format string, args ...any) {
	if !d.debug {
		return
	}
	_, _ = fmt.Fprintf(debugOutput, "[strand] "+format+"\n", args...)
}

// debugLog prints timing and redraw stats for the last frame.
func (d *Diagram) debugLog() {
	if !d.debug {
		return
	}
	st := d.stats
	_, _ = fmt.Fprintf(debugOutput,
		"[strand] update: %v | draw: %v | shapes: %d | links: %d | link redraws: %d\n",
		st.updateTime, st.drawTime, st.shapeCount, st.linkCount, st.linkRedraws)
	d.stats.linkRedraws = 0
}
