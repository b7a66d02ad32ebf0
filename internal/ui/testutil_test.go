package ui

import (
	"testing"

	"studydesk/internal/config"
	"studydesk/internal/player"
	"studydesk/internal/pomodoro"
	"studydesk/internal/storage"
	"studydesk/internal/tasks"
	"studydesk/internal/theme"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// setupTest prepares the test environment for deterministic rendering.
// It disables colors to ensure consistent output across environments.
func setupTest(t *testing.T) {
	t.Helper()
	// Use ASCII profile to disable all color codes in output
	lipgloss.SetColorProfile(termenv.Ascii)
}

// createTestStore creates a Store backed by a temporary directory.
func createTestStore(t *testing.T) *storage.Store {
	t.Helper()
	s, err := storage.New(t.TempDir(), storage.WithLogger(func(string, ...any) {}))
	if err != nil {
		t.Fatalf("storage.New() error = %v", err)
	}
	return s
}

// createTestStyles creates a default Styles instance for testing.
func createTestStyles() *Styles {
	return NewStyles(theme.Default())
}

// createTestManager creates a task manager backed by a temporary store.
func createTestManager(t *testing.T) *tasks.Manager {
	t.Helper()
	return tasks.NewManager(createTestStore(t))
}

func intPtr(v int) *int { return &v }

// createTestApp wires up a complete app with onboarding disabled so views
// render the panes directly.
func createTestApp(t *testing.T) *App {
	t.Helper()
	kv := createTestStore(t)
	manager := tasks.NewManager(kv)
	engine := pomodoro.NewEngine(kv)
	pl := player.New(kv)
	cfg := &AppConfig{
		Keys:                  &config.KeysConfig{},
		ConfirmDeletions:      true,
		ShowOnboarding:        false,
		NarrowLayoutThreshold: 80,
	}
	return NewApp(kv, manager, engine, pl, theme.Default(), cfg)
}
