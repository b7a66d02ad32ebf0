// Package reports builds study snapshots from persisted data.
package reports

import (
	"time"

	"studydesk/internal/player"
	"studydesk/internal/pomodoro"
	"studydesk/internal/storage"
	"studydesk/internal/tasks"
	"studydesk/internal/theme"
)

// Generator creates reports from the persistence gateway.
type Generator struct {
	kv *storage.Store
}

// NewGenerator creates a new report generator.
func NewGenerator(kv *storage.Store) *Generator {
	return &Generator{kv: kv}
}

// Generate builds a snapshot of the current study desk state. The gateway
// is best-effort, so missing data degrades to empty sections rather than
// an error.
func (g *Generator) Generate() *Report {
	manager := tasks.NewManager(g.kv)
	engine := pomodoro.NewEngine(g.kv)
	pl := player.New(g.kv)
	th := theme.Load(g.kv)

	return &Report{
		GeneratedAt: time.Now(),
		Tasks:       summarizeTasks(manager.Tasks()),
		Groups:      summarizeGroups(manager.Tasks(), manager.Groups()),
		Pomodoro: PomodoroSummary{
			FocusMinutes:   engine.Config().FocusDuration,
			BreakMinutes:   engine.Config().BreakDuration,
			SoundEnabled:   engine.Config().SoundEnabled,
			AutoStartBreak: engine.Config().AutoStartBreak,
		},
		Player: PlayerSummary{
			Stream: pl.Current().Name,
			Volume: pl.Volume(),
		},
		Theme: th.Name,
	}
}

// summarizeTasks splits tasks into completed and pending with counts.
func summarizeTasks(all []tasks.Task) TaskSummary {
	var completed, pending []tasks.Task
	for _, task := range all {
		if task.Completed {
			completed = append(completed, task)
		} else {
			pending = append(pending, task)
		}
	}

	rate := 0.0
	if len(all) > 0 {
		rate = float64(len(completed)) / float64(len(all)) * 100
	}

	return TaskSummary{
		Completed:      completed,
		Pending:        pending,
		CompletedCount: len(completed),
		PendingCount:   len(pending),
		CompletionRate: rate,
	}
}

// summarizeGroups computes per-group progress in catalog order. Ungrouped
// tasks are reported under a synthetic entry at the end when present.
func summarizeGroups(all []tasks.Task, groups []tasks.Group) []GroupSummary {
	summaries := make([]GroupSummary, 0, len(groups)+1)
	for _, group := range groups {
		summary := GroupSummary{ID: group.ID, Name: group.Name, Color: group.Color}
		for _, task := range all {
			if task.GroupID != group.ID {
				continue
			}
			summary.Total++
			if task.Completed {
				summary.Completed++
			}
		}
		summaries = append(summaries, summary)
	}

	ungrouped := GroupSummary{Name: "Ungrouped"}
	for _, task := range all {
		if task.GroupID != "" {
			continue
		}
		ungrouped.Total++
		if task.Completed {
			ungrouped.Completed++
		}
	}
	if ungrouped.Total > 0 {
		summaries = append(summaries, ungrouped)
	}

	return summaries
}
