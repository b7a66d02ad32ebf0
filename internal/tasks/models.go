package tasks

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"time"
)

// Task is a single to-do item. GroupID is empty for ungrouped tasks and
// omitted from the stored JSON.
type Task struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Completed bool      `json:"completed"`
	GroupID   string    `json:"groupId,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	Order     int       `json:"order"`
}

// Group is a named, colored bucket of tasks.
type Group struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Color string `json:"color"`
}

// DefaultGroupID identifies the built-in group that always exists and can
// never be deleted.
const DefaultGroupID = "default"

// DefaultGroup returns the built-in group seeded on first run.
func DefaultGroup() Group {
	return Group{ID: DefaultGroupID, Name: "General", Color: "#6366f1"}
}

// Filter selects which tasks GetFilteredTasks returns. Beyond the three
// built-in values, any group ID is a valid filter.
type Filter string

const (
	FilterAll       Filter = "all"
	FilterActive    Filter = "active"
	FilterCompleted Filter = "completed"
)

// TaskPatch carries partial task updates; nil fields are left unchanged.
// Setting GroupID to a pointer to "" ungroups the task.
type TaskPatch struct {
	Title     *string
	Completed *bool
	GroupID   *string
	Order     *int
}

// GroupPatch carries partial group updates; nil fields are left unchanged.
type GroupPatch struct {
	Name  *string
	Color *string
}

func newID(prefix string) (string, error) {
	var b [8]byte
	if _, err := rand.Read(b[:]); err != nil {
		return "", fmt.Errorf("generate id: %w", err)
	}
	return fmt.Sprintf("%s_%d_%s", prefix, time.Now().UnixMilli(), hex.EncodeToString(b[:])), nil
}
