// Package importer provides import functionality for migrating tasks into
// studydesk from other tools: Markdown checklists and Todoist CSV exports.
package importer

import (
	"fmt"
	"io"
	"strings"

	"studydesk/internal/tasks"
)

// ImportResult contains statistics about an import operation.
type ImportResult struct {
	Imported int      // Number of successfully imported tasks
	Skipped  int      // Number of skipped items (notes, non-task rows)
	Errors   []string // Error messages for failed imports
}

// PreviewTask represents a task preview before import.
type PreviewTask struct {
	Title string
	Group string // Group name; empty means ungrouped
	Done  bool
}

// Importer defines the interface for import implementations.
type Importer interface {
	// Import reads tasks from the reader and adds them through the manager.
	Import(reader io.Reader, manager *tasks.Manager) (*ImportResult, error)

	// Preview reads tasks from the reader without importing.
	Preview(reader io.Reader) ([]PreviewTask, error)

	// Name returns the importer name (e.g., "markdown", "todoist").
	Name() string
}

// GetImporter returns the appropriate importer for the given format.
func GetImporter(format string) Importer {
	switch format {
	case "markdown", "md":
		return &MarkdownImporter{}
	case "todoist":
		return &TodoistImporter{}
	default:
		return nil
	}
}

// SupportedFormats returns the list of supported import formats.
func SupportedFormats() []string {
	return []string{"markdown", "todoist"}
}

// groupColors is the rotation imported groups draw their colors from.
var groupColors = []string{
	"#6366f1", "#f97316", "#22c55e", "#e11d48", "#a855f7",
	"#0ea5e9", "#eab308", "#14b8a6",
}

// addPreviewTasks writes a batch of previews through the manager, creating
// groups by name as needed.
func addPreviewTasks(manager *tasks.Manager, previews []PreviewTask) *ImportResult {
	result := &ImportResult{}

	// Existing groups by lowercase name
	groupIDs := make(map[string]string)
	for _, g := range manager.Groups() {
		groupIDs[strings.ToLower(g.Name)] = g.ID
	}

	for _, preview := range previews {
		groupID := ""
		if preview.Group != "" {
			key := strings.ToLower(preview.Group)
			id, ok := groupIDs[key]
			if !ok {
				color := groupColors[len(groupIDs)%len(groupColors)]
				group, err := manager.AddGroup(preview.Group, color)
				if err != nil {
					result.Errors = append(result.Errors, fmt.Sprintf("%s: %v", preview.Group, err))
					continue
				}
				id = group.ID
				groupIDs[key] = id
			}
			groupID = id
		}

		task, err := manager.AddTask(preview.Title, groupID)
		if err != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("%s: %v", preview.Title, err))
			continue
		}
		if preview.Done {
			if err := manager.ToggleTask(task.ID); err != nil {
				result.Errors = append(result.Errors, fmt.Sprintf("%s: %v", preview.Title, err))
			}
		}
		result.Imported++
	}

	return result
}
