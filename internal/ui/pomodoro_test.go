package ui

import (
	"strings"
	"testing"

	"studydesk/internal/pomodoro"

	tea "github.com/charmbracelet/bubbletea"
)

func createTestPomodoroPane(t *testing.T) *PomodoroPane {
	t.Helper()
	engine := pomodoro.NewEngine(createTestStore(t))
	pane := NewPomodoroPane(engine, createTestStyles())
	pane.SetSize(40, 20)
	pane.SetFocused(true)
	return pane
}

// TestPomodoroPane_SpaceStartsAndPauses verifies the start/pause toggle.
func TestPomodoroPane_SpaceStartsAndPauses(t *testing.T) {
	setupTest(t)
	pane := createTestPomodoroPane(t)

	cmd := pane.Update(tea.KeyMsg{Type: tea.KeySpace})
	if pane.engine.State() != pomodoro.StateRunning {
		t.Fatalf("State = %v, want running", pane.engine.State())
	}
	if cmd == nil {
		t.Fatal("Expected start to arm the tick chain")
	}

	cmd = pane.Update(tea.KeyMsg{Type: tea.KeySpace})
	if pane.engine.State() != pomodoro.StatePaused {
		t.Fatalf("State = %v, want paused", pane.engine.State())
	}
	if cmd != nil {
		t.Error("Pause must not schedule another tick")
	}
}

// TestPomodoroPane_ResetReturnsToIdle verifies r resets the countdown.
func TestPomodoroPane_ResetReturnsToIdle(t *testing.T) {
	setupTest(t)
	pane := createTestPomodoroPane(t)

	pane.Update(tea.KeyMsg{Type: tea.KeySpace})
	pane.Update(pomodoroTickMsg{epoch: pane.engine.Epoch()})
	pane.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("r")})

	if pane.engine.State() != pomodoro.StateIdle {
		t.Errorf("State = %v, want idle", pane.engine.State())
	}
	if pane.engine.Remaining() != 25*60 {
		t.Errorf("Remaining = %d, want full focus duration", pane.engine.Remaining())
	}
}

// TestPomodoroPane_BreakKeyStartsBreak verifies b starts a break countdown.
func TestPomodoroPane_BreakKeyStartsBreak(t *testing.T) {
	setupTest(t)
	pane := createTestPomodoroPane(t)

	cmd := pane.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("b")})
	if pane.engine.State() != pomodoro.StateBreak {
		t.Fatalf("State = %v, want break", pane.engine.State())
	}
	if pane.engine.Remaining() != 5*60 {
		t.Errorf("Remaining = %d, want full break duration", pane.engine.Remaining())
	}
	if cmd == nil {
		t.Error("Expected the break to arm the tick chain")
	}
}

// TestPomodoroPane_StaleTickDropped verifies a tick from a disarmed chain is
// ignored and does not reschedule.
func TestPomodoroPane_StaleTickDropped(t *testing.T) {
	setupTest(t)
	pane := createTestPomodoroPane(t)

	pane.Update(tea.KeyMsg{Type: tea.KeySpace})
	stale := pane.engine.Epoch()
	pane.Update(tea.KeyMsg{Type: tea.KeySpace}) // pause bumps the epoch
	before := pane.engine.Remaining()

	cmd := pane.Update(pomodoroTickMsg{epoch: stale})
	if cmd != nil {
		t.Error("Stale tick must not reschedule")
	}
	if pane.engine.Remaining() != before {
		t.Error("Stale tick must not count down")
	}
}

// TestPomodoroPane_LiveTickChains verifies a current-epoch tick counts down
// and schedules the next tick.
func TestPomodoroPane_LiveTickChains(t *testing.T) {
	setupTest(t)
	pane := createTestPomodoroPane(t)

	pane.Update(tea.KeyMsg{Type: tea.KeySpace})
	before := pane.engine.Remaining()

	cmd := pane.Update(pomodoroTickMsg{epoch: pane.engine.Epoch()})
	if pane.engine.Remaining() != before-1 {
		t.Errorf("Remaining = %d, want %d", pane.engine.Remaining(), before-1)
	}
	if cmd == nil {
		t.Error("Live tick must schedule the next tick")
	}
}

// TestPomodoroPane_CompletionFlashLifecycle verifies the flash is set on
// completion and cleared by the flash-clear message.
func TestPomodoroPane_CompletionFlashLifecycle(t *testing.T) {
	setupTest(t)
	pane := createTestPomodoroPane(t)

	// Shorten the session so completion is reachable.
	pane.engine.UpdateConfig(pomodoro.ConfigPatch{FocusDuration: intPtr(1)})
	pane.Update(tea.KeyMsg{Type: tea.KeySpace})

	for i := 0; i < 60; i++ {
		pane.Update(pomodoroTickMsg{epoch: pane.engine.Epoch()})
	}

	if !pane.engine.JustCompleted() {
		t.Fatal("Expected the completion flash after the last tick")
	}
	if !strings.Contains(pane.View(), "Session complete!") {
		t.Error("Expected the flash banner in the view")
	}

	pane.Update(flashClearMsg{})
	if pane.engine.JustCompleted() {
		t.Error("Expected the flash to clear")
	}
	if strings.Contains(pane.View(), "Session complete!") {
		t.Error("Expected the banner gone after the clear")
	}
}

// TestPomodoroPane_AdjustDurations verifies the +/- and {/} adjustments.
func TestPomodoroPane_AdjustDurations(t *testing.T) {
	setupTest(t)
	pane := createTestPomodoroPane(t)

	pane.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("+")})
	if got := pane.engine.Config().FocusDuration; got != 30 {
		t.Errorf("FocusDuration = %d, want 30", got)
	}

	pane.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("}")})
	if got := pane.engine.Config().BreakDuration; got != 6 {
		t.Errorf("BreakDuration = %d, want 6", got)
	}

	// Lower bound clamps to one minute.
	for i := 0; i < 10; i++ {
		pane.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("{")})
	}
	if got := pane.engine.Config().BreakDuration; got != 1 {
		t.Errorf("BreakDuration = %d, want clamp at 1", got)
	}
}

// TestPomodoroPane_Toggles verifies the sound and auto-break switches.
func TestPomodoroPane_Toggles(t *testing.T) {
	setupTest(t)
	pane := createTestPomodoroPane(t)

	pane.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("s")})
	if pane.engine.Config().SoundEnabled {
		t.Error("Expected sound toggled off")
	}

	pane.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("B")})
	if !pane.engine.Config().AutoStartBreak {
		t.Error("Expected auto-break toggled on")
	}
}

// TestPomodoroPane_IgnoresKeysWhenUnfocused verifies keys are dropped while
// another pane holds focus, but ticks still land.
func TestPomodoroPane_IgnoresKeysWhenUnfocused(t *testing.T) {
	setupTest(t)
	pane := createTestPomodoroPane(t)
	pane.SetFocused(false)

	pane.Update(tea.KeyMsg{Type: tea.KeySpace})
	if pane.engine.State() != pomodoro.StateIdle {
		t.Error("Unfocused pane must ignore keys")
	}

	pane.engine.Start()
	before := pane.engine.Remaining()
	pane.Update(pomodoroTickMsg{epoch: pane.engine.Epoch()})
	if pane.engine.Remaining() != before-1 {
		t.Error("Ticks must land regardless of focus")
	}
}

// TestPomodoroPane_ViewStates verifies the state line for each phase.
func TestPomodoroPane_ViewStates(t *testing.T) {
	setupTest(t)
	pane := createTestPomodoroPane(t)

	if view := pane.View(); !strings.Contains(view, "Ready") || !strings.Contains(view, "25:00") {
		t.Error("Idle view should show Ready and the full countdown")
	}

	pane.engine.Start()
	if !strings.Contains(pane.View(), "Focusing") {
		t.Error("Running view should show Focusing")
	}

	pane.engine.Pause()
	if !strings.Contains(pane.View(), "Paused") {
		t.Error("Paused view should show Paused")
	}

	pane.engine.StartBreak()
	if !strings.Contains(pane.View(), "On a break") {
		t.Error("Break view should show On a break")
	}
}

// TestPomodoroPane_ViewShowsSettings verifies the settings summary renders.
func TestPomodoroPane_ViewShowsSettings(t *testing.T) {
	setupTest(t)
	pane := createTestPomodoroPane(t)

	view := pane.View()
	for _, want := range []string{"Focus:", "25m", "Break:", "5m", "Sound:", "on", "Auto-break:", "off"} {
		if !strings.Contains(view, want) {
			t.Errorf("Expected %q in the settings summary", want)
		}
	}
}
