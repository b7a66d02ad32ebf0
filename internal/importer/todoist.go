// Package importer provides import functionality for studydesk.
// This file implements Todoist CSV import.
package importer

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"studydesk/internal/tasks"
)

// TodoistImporter handles importing from Todoist CSV exports.
type TodoistImporter struct{}

// Name returns the importer name.
func (t *TodoistImporter) Name() string {
	return "todoist"
}

// Import reads tasks from Todoist CSV and adds them through the manager.
func (t *TodoistImporter) Import(reader io.Reader, manager *tasks.Manager) (*ImportResult, error) {
	previews, skipped, err := t.parse(reader)
	if err != nil {
		return nil, err
	}

	result := addPreviewTasks(manager, previews)
	result.Skipped = skipped
	return result, nil
}

// Preview returns the tasks that would be imported.
func (t *TodoistImporter) Preview(reader io.Reader) ([]PreviewTask, error) {
	previews, _, err := t.parse(reader)
	return previews, err
}

// parse reads the Todoist CSV format. Rows whose TYPE is not "task"
// (section markers, notes) count as skipped.
func (t *TodoistImporter) parse(reader io.Reader) ([]PreviewTask, int, error) {
	csvReader := csv.NewReader(reader)
	csvReader.FieldsPerRecord = -1
	csvReader.LazyQuotes = true
	csvReader.TrimLeadingSpace = true
	csvReader.ReuseRecord = true

	header, err := csvReader.Read()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to read CSV header: %w", err)
	}

	colIndex := make(map[string]int)
	for i, col := range header {
		if i == 0 {
			col = strings.TrimPrefix(col, "\ufeff") // UTF-8 BOM (common in some exports)
		}
		colIndex[strings.ToUpper(strings.TrimSpace(col))] = i
	}

	for _, col := range []string{"TYPE", "CONTENT"} {
		if _, ok := colIndex[col]; !ok {
			return nil, 0, fmt.Errorf("missing required column: %s", col)
		}
	}

	var previews []PreviewTask
	skipped := 0

	for {
		record, err := csvReader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, 0, fmt.Errorf("failed to read CSV row: %w", err)
		}
		if len(record) == 0 {
			continue
		}

		typeIdx := colIndex["TYPE"]
		if typeIdx >= len(record) || strings.ToLower(record[typeIdx]) != "task" {
			skipped++
			continue
		}

		preview := PreviewTask{}

		if idx, ok := colIndex["CONTENT"]; ok && idx < len(record) {
			preview.Title = strings.TrimSpace(record[idx])
		}
		if preview.Title == "" {
			skipped++
			continue
		}

		if idx, ok := colIndex["PROJECT"]; ok && idx < len(record) {
			preview.Group = strings.TrimSpace(record[idx])
		}

		previews = append(previews, preview)
	}

	return previews, skipped, nil
}
