// Package ui provides the terminal user interface for studydesk.
// This file contains tests for the main App model, including layout behavior.
package ui

import (
	"os"
	"strings"
	"testing"
	"time"

	"studydesk/internal/config"
	"studydesk/internal/player"
	"studydesk/internal/pomodoro"
	"studydesk/internal/storage"
	"studydesk/internal/tasks"
	"studydesk/internal/theme"

	tea "github.com/charmbracelet/bubbletea"
)

// TestApp_LayoutModeTransitions verifies layout mode changes based on width.
func TestApp_LayoutModeTransitions(t *testing.T) {
	setupTest(t)
	app := createTestApp(t)

	tests := []struct {
		name         string
		width        int
		expectedMode LayoutMode
	}{
		{"Very narrow (40)", 40, LayoutNarrow},
		{"Narrow (60)", 60, LayoutNarrow},
		{"At threshold (79)", 79, LayoutNarrow},
		{"At threshold (80)", 80, LayoutWide},
		{"Wide (100)", 100, LayoutWide},
		{"Very wide (200)", 200, LayoutWide},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			app.Update(tea.WindowSizeMsg{Width: tc.width, Height: 30})

			if app.layoutMode != tc.expectedMode {
				t.Errorf("Width %d: expected layout mode %v, got %v",
					tc.width, tc.expectedMode, app.layoutMode)
			}
		})
	}
}

// TestApp_NarrowLayoutShowsOnlyActivePane verifies only the focused pane is
// shown in narrow mode, with a tab bar.
func TestApp_NarrowLayoutShowsOnlyActivePane(t *testing.T) {
	setupTest(t)
	app := createTestApp(t)

	app.Update(tea.WindowSizeMsg{Width: 60, Height: 30})

	if app.activePane != PaneTasks {
		t.Error("Expected default active pane to be Tasks")
	}

	view := app.View()

	if !strings.Contains(view, "[Tasks]") {
		t.Error("Expected to see [Tasks] tab highlighted in narrow mode")
	}
	if !strings.Contains(view, "Focus") {
		t.Error("Expected to see Focus tab in narrow mode")
	}
	if !strings.Contains(view, "Lofi") {
		t.Error("Expected to see Lofi tab in narrow mode")
	}
	if strings.Contains(view, "🎧 LOFI") {
		t.Error("Player pane should not render while Tasks is active in narrow mode")
	}
}

// TestApp_WideLayoutShowsAllPanes verifies all three panes render side by side.
func TestApp_WideLayoutShowsAllPanes(t *testing.T) {
	setupTest(t)
	app := createTestApp(t)

	app.Update(tea.WindowSizeMsg{Width: 140, Height: 40})
	view := app.View()

	for _, want := range []string{"TASKS", "FOCUS", "LOFI"} {
		if !strings.Contains(view, want) {
			t.Errorf("Expected wide layout to contain %q pane title", want)
		}
	}
	if strings.Contains(view, "[Tasks]") {
		t.Error("Tab bar should not render in wide mode")
	}
}

// TestApp_TabSwitchesPanes verifies tab cycles focus through the panes.
func TestApp_TabSwitchesPanes(t *testing.T) {
	setupTest(t)
	app := createTestApp(t)

	sequence := []PaneID{PaneTimer, PanePlayer, PaneTasks}
	for _, want := range sequence {
		app.Update(tea.KeyMsg{Type: tea.KeyTab})
		if app.activePane != want {
			t.Fatalf("After tab: activePane = %v, want %v", app.activePane, want)
		}
	}

	if !app.taskPane.IsFocused() {
		t.Error("Task pane should be focused after a full cycle")
	}
	if app.pomodoroPane.IsFocused() || app.playerPane.IsFocused() {
		t.Error("Only one pane should hold focus at a time")
	}
}

// TestApp_NumberKeysJumpToPane verifies 1/2/3 jump directly to a pane.
func TestApp_NumberKeysJumpToPane(t *testing.T) {
	setupTest(t)
	app := createTestApp(t)

	tests := []struct {
		key  string
		want PaneID
	}{
		{"3", PanePlayer},
		{"1", PaneTasks},
		{"2", PaneTimer},
	}
	for _, tc := range tests {
		app.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(tc.key)})
		if app.activePane != tc.want {
			t.Errorf("Key %q: activePane = %v, want %v", tc.key, app.activePane, tc.want)
		}
	}
}

// TestApp_HelpOverlayToggles verifies ? opens and closes the help overlay.
func TestApp_HelpOverlayToggles(t *testing.T) {
	setupTest(t)
	app := createTestApp(t)
	app.Update(tea.WindowSizeMsg{Width: 100, Height: 40})

	app.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("?")})
	if !app.showHelp {
		t.Fatal("Expected help overlay to open on ?")
	}
	if !strings.Contains(app.View(), "Keyboard Shortcuts") {
		t.Error("Help overlay should render the shortcuts list")
	}

	app.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if app.showHelp {
		t.Error("Expected help overlay to close on esc")
	}
}

// TestApp_QuitSetsQuitting verifies q quits and renders the goodbye screen.
func TestApp_QuitSetsQuitting(t *testing.T) {
	setupTest(t)
	app := createTestApp(t)

	_, cmd := app.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	if !app.quitting {
		t.Fatal("Expected q to set quitting")
	}
	if cmd == nil {
		t.Fatal("Expected q to return a quit command")
	}
	if !strings.Contains(app.View(), "Good session!") {
		t.Error("Expected goodbye screen after quit")
	}
}

// TestApp_WelcomeShowsOnFirstRun verifies the onboarding overlay appears for
// an empty store and any key dismisses it.
func TestApp_WelcomeShowsOnFirstRun(t *testing.T) {
	setupTest(t)
	kv := createTestStore(t)
	manager := tasks.NewManager(kv)
	engine := pomodoro.NewEngine(kv)
	pl := player.New(kv)
	cfg := &AppConfig{
		Keys:                  &config.KeysConfig{},
		ConfirmDeletions:      true,
		ShowOnboarding:        true,
		NarrowLayoutThreshold: 80,
	}
	app := NewApp(kv, manager, engine, pl, theme.Default(), cfg)
	app.Update(tea.WindowSizeMsg{Width: 100, Height: 40})

	if !app.showWelcome {
		t.Fatal("Expected welcome screen on first run")
	}
	if !strings.Contains(app.View(), "Welcome to studydesk") {
		t.Error("Expected welcome text in the view")
	}

	app.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("x")})
	if app.showWelcome {
		t.Error("Expected any key to dismiss the welcome screen")
	}
}

// TestApp_WelcomeSkippedWithExistingTasks verifies onboarding is skipped once
// the store has data.
func TestApp_WelcomeSkippedWithExistingTasks(t *testing.T) {
	setupTest(t)
	kv := createTestStore(t)
	manager := tasks.NewManager(kv)
	if _, err := manager.AddTask("Read chapter 3", ""); err != nil {
		t.Fatalf("AddTask() error = %v", err)
	}
	engine := pomodoro.NewEngine(kv)
	pl := player.New(kv)
	cfg := &AppConfig{
		Keys:                  &config.KeysConfig{},
		ShowOnboarding:        true,
		NarrowLayoutThreshold: 80,
	}
	app := NewApp(kv, manager, engine, pl, theme.Default(), cfg)

	if app.showWelcome {
		t.Error("Expected no welcome screen when tasks already exist")
	}
}

// TestApp_ConfirmDeleteFlow verifies delete asks for confirmation and that y
// applies while n cancels.
func TestApp_ConfirmDeleteFlow(t *testing.T) {
	setupTest(t)
	app := createTestApp(t)
	app.Update(tea.WindowSizeMsg{Width: 100, Height: 40})

	if _, err := app.manager.AddTask("Review flashcards", ""); err != nil {
		t.Fatalf("AddTask() error = %v", err)
	}
	app.taskPane.refresh()

	// x opens the confirmation overlay
	app.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("x")})
	if app.confirmDel == nil {
		t.Fatal("Expected confirmation overlay after x")
	}
	if !strings.Contains(app.View(), "Delete task?") {
		t.Error("Expected delete prompt in the view")
	}

	// n cancels, task survives
	app.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("n")})
	if app.confirmDel != nil {
		t.Fatal("Expected n to dismiss the overlay")
	}
	if len(app.manager.Tasks()) != 1 {
		t.Fatal("Expected the task to survive a canceled delete")
	}

	// y confirms, task is gone
	app.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("x")})
	app.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("y")})
	if len(app.manager.Tasks()) != 0 {
		t.Error("Expected the task to be deleted after confirmation")
	}
}

// TestApp_DeleteWithoutConfirmation verifies deletions apply immediately when
// confirmations are disabled.
func TestApp_DeleteWithoutConfirmation(t *testing.T) {
	setupTest(t)
	app := createTestApp(t)
	app.config.ConfirmDeletions = false

	if _, err := app.manager.AddTask("Skim lecture notes", ""); err != nil {
		t.Fatalf("AddTask() error = %v", err)
	}
	app.taskPane.refresh()

	app.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("x")})
	if app.confirmDel != nil {
		t.Error("Expected no confirmation overlay")
	}
	if len(app.manager.Tasks()) != 0 {
		t.Error("Expected immediate deletion with confirmations off")
	}
}

// TestApp_DeleteGroupRequiresGroupFilter verifies X without an active group
// filter only sets a status hint.
func TestApp_DeleteGroupRequiresGroupFilter(t *testing.T) {
	setupTest(t)
	app := createTestApp(t)

	app.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("X")})

	if app.confirmDel != nil {
		t.Error("Expected no confirmation overlay without a group filter")
	}
	if app.status == "" {
		t.Error("Expected a status hint about filtering by a group")
	}
}

// TestApp_DeleteGroupProtectsDefault verifies the default group cannot be
// deleted even when filtered.
func TestApp_DeleteGroupProtectsDefault(t *testing.T) {
	setupTest(t)
	app := createTestApp(t)

	app.manager.SetFilter(tasks.Filter(tasks.DefaultGroupID))
	app.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("X")})

	if app.confirmDel != nil {
		t.Error("Expected no confirmation overlay for the default group")
	}
	if _, ok := app.manager.GroupByID(tasks.DefaultGroupID); !ok {
		t.Error("Default group must survive")
	}
}

// TestApp_TimerMessagesRouteRegardlessOfFocus verifies tick messages reach
// the timer while another pane is focused.
func TestApp_TimerMessagesRouteRegardlessOfFocus(t *testing.T) {
	setupTest(t)
	app := createTestApp(t)

	engine := app.pomodoroPane.Engine()
	engine.Start()
	before := engine.Remaining()

	// Tasks pane holds focus; the tick must still count down.
	if app.activePane != PaneTasks {
		t.Fatal("Expected tasks pane focused")
	}
	app.Update(pomodoroTickMsg{epoch: engine.Epoch()})

	if engine.Remaining() != before-1 {
		t.Errorf("Remaining = %d, want %d", engine.Remaining(), before-1)
	}
}

// TestApp_CycleThemePersistsAndRestyles verifies ctrl+t advances the theme,
// saves it, and updates the shared styles in place.
func TestApp_CycleThemePersistsAndRestyles(t *testing.T) {
	setupTest(t)
	app := createTestApp(t)

	first := app.theme.ID
	app.Update(tea.KeyMsg{Type: tea.KeyCtrlT})

	if app.theme.ID == first {
		t.Fatal("Expected ctrl+t to advance the theme")
	}
	if got := theme.Load(app.kv); got.ID != app.theme.ID {
		t.Errorf("Persisted theme = %q, want %q", got.ID, app.theme.ID)
	}

	// The panes share the styles pointer, so the swap restyles them too.
	want := NewStyles(app.theme)
	if app.styles.ColorPrimary != want.ColorPrimary {
		t.Error("Expected shared styles to carry the new theme's palette")
	}
	if app.taskPane.styles != app.styles {
		t.Error("Task pane must share the app styles pointer")
	}
}

// TestApp_StreamOpenedSetsStatus verifies browser-open results surface in the
// status bar.
func TestApp_StreamOpenedSetsStatus(t *testing.T) {
	setupTest(t)
	app := createTestApp(t)

	app.Update(streamOpenedMsg{name: "Lofi Girl"})
	if !strings.Contains(app.status, "Lofi Girl") {
		t.Errorf("status = %q, want mention of the stream", app.status)
	}
	if app.statusErr {
		t.Error("Successful open should not be an error status")
	}
}

// TestApp_StatusExpiresOnClockTick verifies stale status messages clear.
func TestApp_StatusExpiresOnClockTick(t *testing.T) {
	setupTest(t)
	app := createTestApp(t)

	app.SetStatus("saved", false)
	app.statusUntil = time.Now().Add(-time.Second)

	app.Update(clockTickMsg(time.Now()))
	if app.status != "" {
		t.Errorf("status = %q, want cleared", app.status)
	}
}

// TestApp_TitleBarShowsTimerState verifies a running countdown appears in the
// title bar.
func TestApp_TitleBarShowsTimerState(t *testing.T) {
	setupTest(t)
	app := createTestApp(t)
	app.Update(tea.WindowSizeMsg{Width: 120, Height: 40})

	app.pomodoroPane.Engine().Start()
	bar := app.renderTitleBar()

	if !strings.Contains(bar, "25:00") {
		t.Errorf("Expected the countdown in the title bar, got %q", bar)
	}
	if !strings.Contains(bar, "studydesk") {
		t.Error("Expected the app name in the title bar")
	}
}

// TestApp_HelpBarReflectsInputMode verifies the help bar switches to input
// hints while typing.
func TestApp_HelpBarReflectsInputMode(t *testing.T) {
	setupTest(t)
	app := createTestApp(t)

	app.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("a")})
	if !app.taskPane.IsEditing() {
		t.Fatal("Expected task pane in input mode after a")
	}

	bar := app.renderHelpBar()
	if !strings.Contains(bar, "save") || !strings.Contains(bar, "cancel") {
		t.Errorf("Expected input-mode hints, got %q", bar)
	}
}

// TestApp_GlobalKeysIgnoredWhileEditing verifies q does not quit while text
// input is collecting.
func TestApp_GlobalKeysIgnoredWhileEditing(t *testing.T) {
	setupTest(t)
	app := createTestApp(t)

	app.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("a")})
	app.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})

	if app.quitting {
		t.Error("q while typing must not quit")
	}
	if got := app.taskPane.input.Value(); got != "q" {
		t.Errorf("input value = %q, want the typed rune", got)
	}
}

// TestApp_StorageWarningsSurfaceAsStatus verifies manager persistence
// warnings land in the status bar.
func TestApp_StorageWarningsSurfaceAsStatus(t *testing.T) {
	setupTest(t)
	dir := t.TempDir()
	kv, err := storage.New(dir, storage.WithLogger(func(string, ...any) {}))
	if err != nil {
		t.Fatalf("storage.New() error = %v", err)
	}
	manager := tasks.NewManager(kv)
	cfg := &AppConfig{Keys: &config.KeysConfig{}, NarrowLayoutThreshold: 80}
	app := NewApp(kv, manager, pomodoro.NewEngine(kv), player.New(kv), theme.Default(), cfg)

	// Nuke the data dir so the next write fails.
	if err := os.RemoveAll(dir); err != nil {
		t.Fatalf("RemoveAll() error = %v", err)
	}
	if _, err := manager.AddTask("Unsaveable", ""); err != nil {
		t.Fatalf("AddTask() error = %v", err)
	}

	if !app.statusErr {
		t.Error("Expected the persistence warning to render as an error status")
	}
	if !strings.Contains(app.status, "couldn't save") {
		t.Errorf("status = %q, want the save warning", app.status)
	}
}
