package ui

import "fmt"

// ANSI256 color codes.
const (
	colorAccent   = 74  // blue, run identifiers
	colorMuted    = 245 // medium gray, secondary detail
	colorComplete = 71  // green
	colorFail     = 167 // red
)

var noColor bool

// RenderAccent returns s in the accent (blue) color.
func RenderAccent(s string) string {
	if noColor {
		return s
	}
	return fmt.Sprintf("\x1b[38;5;%dm%s\x1b[0m", colorAccent, s)
}

// RenderMuted returns s in the muted (gray) color.
func RenderMuted(s string) string {
	if noColor {
		return s
	}
	return fmt.Sprintf("\x1b[38;5;%dm%s\x1b[0m", colorMuted, s)
}

// RenderEventType returns an event type colored by outcome: green for
// COMPLETE, red for FAIL/ABORT, default otherwise.
func RenderEventType(t string) string {
	if noColor {
		return t
	}
	switch t {
	case "COMPLETE":
		return fmt.Sprintf("\x1b[38;5;%dm%s\x1b[0m", colorComplete, t)
	case "FAIL", "ABORT":
		return fmt.Sprintf("\x1b[38;5;%dm%s\x1b[0m", colorFail, t)
	}
	return t
}

// ForceNoColor disables color output globally.
func ForceNoColor() {
	noColor = true
}
