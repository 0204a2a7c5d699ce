package carousel

import (
	"fmt"
	"os"
	"time"
)

// debugStats holds per-frame timing and state. Only populated when the
// stage is in debug mode.
type debugStats struct {
	drawTime   time.Duration
	drawnCards int
	tiltLoops  int
	state      State
}

// debugLog prints per-frame stats to stderr.
func (s *Stage) debugLog(stats debugStats) {
	if !s.debug {
		return
	}
	_, _ = fmt.Fprintf(os.Stderr,
		"[carousel] frame %d | draw: %v | cards: %d | tilt loops: %d\n",
		s.frame, stats.drawTime, stats.drawnCards, stats.tiltLoops)
	_, _ = fmt.Fprintf(os.Stderr,
		"[carousel] active: %d | offset: %.3f | dragging: %v\n",
		stats.state.ActiveIndex, stats.state.DragOffsetPercent, stats.state.IsDragging)
}

// logf writes a diagnostic line to stderr.
func logf(format string, args ...any) {
	_, _ = fmt.Fprintf(os.Stderr, "[carousel] "+format+"\n", args...)
}
