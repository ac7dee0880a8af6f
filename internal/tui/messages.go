package tui

import "time"

// Message types for Bubble Tea update loop.

// frameMsg drives the progress driver and the dial spring.
type frameMsg time.Time

// timerFiredMsg carries a scheduler callback onto the update goroutine.
type timerFiredMsg struct{ fn func() }

// statusMsg is a transient line shown in the footer, e.g. a settings save error.
type statusMsg struct {
	text  string
	isErr bool
}

// startScanMsg starts a scan as if the user pressed the scan key.
type startScanMsg struct{}
