// Package ui provides the terminal user interface for studydesk.
// This file defines message types for the Bubble Tea event loop. The timer
// countdown and the completion flash are driven entirely by these messages,
// so pane behavior stays testable without real time passing.
package ui

import "time"

// =============================================================================
// Timer Messages
// =============================================================================

// pomodoroTickMsg advances the countdown by one second. It carries the
// engine epoch it was scheduled under; a message from an older epoch is
// stale and must be dropped, which keeps exactly one tick chain alive.
type pomodoroTickMsg struct {
	epoch int
}

// flashClearMsg ends the transient completion flash.
type flashClearMsg struct{}

// =============================================================================
// Player Messages
// =============================================================================

// streamOpenedMsg reports the result of opening a stream URL in the browser.
type streamOpenedMsg struct {
	name string
	err  error
}

// =============================================================================
// App Messages
// =============================================================================

// clockTickMsg refreshes the title bar clock and expires status messages.
type clockTickMsg time.Time
