// Package importer provides import functionality for studydesk.
// This file implements Markdown checklist import.
package importer

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"studydesk/internal/tasks"
)

// MarkdownImporter handles importing from Markdown checklists. Headings
// become groups; `- [ ]` and `- [x]` items become tasks.
type MarkdownImporter struct{}

// Name returns the importer name.
func (m *MarkdownImporter) Name() string {
	return "markdown"
}

// Import reads a checklist and adds its tasks through the manager.
func (m *MarkdownImporter) Import(reader io.Reader, manager *tasks.Manager) (*ImportResult, error) {
	previews, skipped, err := m.parse(reader)
	if err != nil {
		return nil, err
	}

	result := addPreviewTasks(manager, previews)
	result.Skipped = skipped
	return result, nil
}

// Preview returns the tasks that would be imported.
func (m *MarkdownImporter) Preview(reader io.Reader) ([]PreviewTask, error) {
	previews, _, err := m.parse(reader)
	return previews, err
}

// parse walks the document line by line. The most recent heading names the
// group for the checklist items below it; list items without a checkbox
// count as skipped.
func (m *MarkdownImporter) parse(reader io.Reader) ([]PreviewTask, int, error) {
	scanner := bufio.NewScanner(reader)

	var previews []PreviewTask
	skipped := 0
	group := ""

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())

		if heading := strings.TrimLeft(line, "#"); heading != line {
			group = strings.TrimSpace(heading)
			continue
		}

		marker := line
		if strings.HasPrefix(marker, "- ") || strings.HasPrefix(marker, "* ") {
			marker = strings.TrimSpace(marker[2:])
		} else {
			continue
		}

		var done bool
		switch {
		case strings.HasPrefix(marker, "[ ]"):
			done = false
		case strings.HasPrefix(marker, "[x]"), strings.HasPrefix(marker, "[X]"):
			done = true
		default:
			// A plain list item is a note, not a task.
			skipped++
			continue
		}

		title := strings.TrimSpace(marker[3:])
		if title == "" {
			skipped++
			continue
		}

		previews = append(previews, PreviewTask{
			Title: title,
			Group: group,
			Done:  done,
		})
	}

	if err := scanner.Err(); err != nil {
		return nil, 0, fmt.Errorf("failed to read checklist: %w", err)
	}
	return previews, skipped, nil
}
