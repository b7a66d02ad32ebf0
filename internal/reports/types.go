// Package reports builds study snapshots from persisted data.
// A snapshot aggregates the task list, group progress, and the current
// timer and player settings into an exportable report.
package reports

import (
	"time"

	"studydesk/internal/tasks"
)

// Report contains an aggregated snapshot of the study desk.
type Report struct {
	GeneratedAt time.Time       `json:"generated_at"`
	Tasks       TaskSummary     `json:"tasks"`
	Groups      []GroupSummary  `json:"groups"`
	Pomodoro    PomodoroSummary `json:"pomodoro"`
	Player      PlayerSummary   `json:"player"`
	Theme       string          `json:"theme"`
}

// TaskSummary contains task statistics across all groups.
type TaskSummary struct {
	Completed      []tasks.Task `json:"completed"`
	Pending        []tasks.Task `json:"pending"`
	CompletedCount int          `json:"completed_count"`
	PendingCount   int          `json:"pending_count"`
	CompletionRate float64      `json:"completion_rate"`
}

// GroupSummary represents progress within a single group.
type GroupSummary struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Color     string `json:"color"`
	Completed int    `json:"completed"`
	Total     int    `json:"total"`
}

// PomodoroSummary reflects the configured focus timer.
type PomodoroSummary struct {
	FocusMinutes   int  `json:"focus_minutes"`
	BreakMinutes   int  `json:"break_minutes"`
	SoundEnabled   bool `json:"sound_enabled"`
	AutoStartBreak bool `json:"auto_start_break"`
}

// PlayerSummary reflects the lofi player state.
type PlayerSummary struct {
	Stream string `json:"stream"`
	Volume int    `json:"volume"`
}
