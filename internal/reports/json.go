// Package reports builds study snapshots from persisted data.
package reports

import (
	"encoding/json"
)

// FormatJSON formats a report as indented JSON.
func FormatJSON(report *Report) ([]byte, error) {
	return json.MarshalIndent(report, "", "  ")
}
