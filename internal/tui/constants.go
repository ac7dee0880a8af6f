package tui

import "time"

// Package-level constants to avoid magic numbers and improve readability.
const (
	channelBufferSize = 64
	framesPerSecond   = 60
	frameInterval     = time.Second / framesPerSecond

	// dial spring tuning; lower frequency is a slower swing.
	springFrequency = 7.0
	springDamping   = 0.6

	// dialSettleDegrees is how close the dial must be to rest before frames stop.
	dialSettleDegrees = 0.05

	// dialRadius is measured in rows; columns are doubled to keep the ring round.
	dialRadius    = 5
	dialCellRatio = 2
	dialWidth     = dialRadius*dialCellRatio*2 + 14
	dialHeight    = dialRadius*2 + 1

	// dragCellPixels converts a cell of mouse travel into the pixel units the
	// gesture sensitivity is tuned for.
	dragCellPixels = 8

	priceCountDuration = time.Second
	shockwaveDuration  = 400 * time.Millisecond

	metricBarWidth    = 20
	rightViewportMax  = 72
	historyListHeight = 10
)

// Settings page steps and bounds.
const (
	sensitivityStep = 0.1
	sensitivityMin  = 0.1
	sensitivityMax  = 3.0

	scanDurationStep = 500 * time.Millisecond
	scanDurationMin  = 500 * time.Millisecond
	scanDurationMax  = 10 * time.Second

	wheelDebounceStep = 50 * time.Millisecond
	wheelDebounceMax  = time.Second

	wheelStepStep = 5.0
	wheelStepMin  = 5.0
	wheelStepMax  = 90.0
)
