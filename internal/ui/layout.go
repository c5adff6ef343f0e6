package ui

import "time"

// Terminal width thresholds for responsive layouts.
const (
	// LayoutCompactWidth is the threshold below which the header drops
	// secondary counters.
	LayoutCompactWidth = 100

	// LayoutWideWidth is the width from which the object list narrows to
	// 30% of the screen.
	LayoutWideWidth = 160
)

// Log pane limits.
const (
	// LogTailLines is the number of log lines read per refresh.
	LogTailLines = 500
)

// DefaultUIInterval is the default UI refresh interval.
const DefaultUIInterval = time.Second
