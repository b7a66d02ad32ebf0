// Package ui provides the terminal user interface for studydesk.
// This file contains tea.Cmd factories. Side effects (the countdown clock,
// the flash timer, shelling out to the browser) run through commands to keep
// the event loop responsive. Each command returns a corresponding message
// type defined in messages.go.
package ui

import (
	"fmt"
	"os/exec"
	"runtime"
	"time"

	"studydesk/internal/player"

	tea "github.com/charmbracelet/bubbletea"
)

// =============================================================================
// Timer Commands
// =============================================================================

// pomodoroTickCmd schedules the next countdown second under the given epoch.
func pomodoroTickCmd(epoch int) tea.Cmd {
	return tea.Tick(time.Second, func(time.Time) tea.Msg {
		return pomodoroTickMsg{epoch: epoch}
	})
}

// clearFlashCmd schedules the end of the completion flash.
func clearFlashCmd(after time.Duration) tea.Cmd {
	return tea.Tick(after, func(time.Time) tea.Msg {
		return flashClearMsg{}
	})
}

// =============================================================================
// Player Commands
// =============================================================================

// openStreamCmd opens the stream URL in the system browser, best-effort.
func openStreamCmd(s player.Stream) tea.Cmd {
	return func() tea.Msg {
		return streamOpenedMsg{name: s.Name, err: openURL(s.URL)}
	}
}

// openURL launches the platform's URL opener.
func openURL(url string) error {
	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "darwin":
		cmd = exec.Command("open", url)
	case "windows":
		cmd = exec.Command("rundll32", "url.dll,FileProtocolHandler", url)
	default:
		if _, err := exec.LookPath("xdg-open"); err != nil {
			return fmt.Errorf("no browser opener available: %w", err)
		}
		cmd = exec.Command("xdg-open", url)
	}
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("open %s: %w", url, err)
	}
	// Detach; the opener's exit status is not our problem.
	go func() { _ = cmd.Wait() }()
	return nil
}

// =============================================================================
// App Commands
// =============================================================================

// clockTickCmd schedules the next title-bar clock refresh.
func clockTickCmd() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return clockTickMsg(t)
	})
}
