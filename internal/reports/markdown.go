// Package reports builds study snapshots from persisted data.
// This file renders a report as human-readable Markdown.
package reports

import (
	"fmt"
	"strings"
)

// FormatMarkdown formats a report as a Markdown document.
func FormatMarkdown(report *Report) string {
	var b strings.Builder

	b.WriteString("# studydesk report\n\n")
	b.WriteString(fmt.Sprintf("Generated: %s\n\n", report.GeneratedAt.Format("2006-01-02 15:04")))

	// Tasks overview
	b.WriteString("## Tasks\n\n")
	total := report.Tasks.CompletedCount + report.Tasks.PendingCount
	if total == 0 {
		b.WriteString("No tasks yet.\n\n")
	} else {
		b.WriteString(fmt.Sprintf("%d/%d complete (%.0f%%)\n\n",
			report.Tasks.CompletedCount, total, report.Tasks.CompletionRate))

		for _, group := range report.Groups {
			if group.Total == 0 {
				continue
			}
			b.WriteString(fmt.Sprintf("### %s (%d/%d)\n\n", group.Name, group.Completed, group.Total))
			// The synthetic ungrouped summary has an empty id, which
			// matches ungrouped tasks directly.
			for _, task := range report.Tasks.Pending {
				if task.GroupID == group.ID {
					b.WriteString(fmt.Sprintf("- [ ] %s\n", task.Title))
				}
			}
			for _, task := range report.Tasks.Completed {
				if task.GroupID == group.ID {
					b.WriteString(fmt.Sprintf("- [x] %s\n", task.Title))
				}
			}
			b.WriteString("\n")
		}
	}

	// Timer settings
	b.WriteString("## Focus timer\n\n")
	b.WriteString(fmt.Sprintf("- Focus: %d min\n", report.Pomodoro.FocusMinutes))
	b.WriteString(fmt.Sprintf("- Break: %d min\n", report.Pomodoro.BreakMinutes))
	b.WriteString(fmt.Sprintf("- Sound: %s\n", yesNo(report.Pomodoro.SoundEnabled)))
	b.WriteString(fmt.Sprintf("- Auto-start break: %s\n\n", yesNo(report.Pomodoro.AutoStartBreak)))

	// Player and theme
	b.WriteString("## Ambience\n\n")
	b.WriteString(fmt.Sprintf("- Stream: %s\n", report.Player.Stream))
	b.WriteString(fmt.Sprintf("- Volume: %d\n", report.Player.Volume))
	b.WriteString(fmt.Sprintf("- Theme: %s\n", report.Theme))

	return b.String()
}

func yesNo(v bool) string {
	if v {
		return "yes"
	}
	return "no"
}
