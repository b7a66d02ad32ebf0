// Package tasks manages the task and group collections. All state lives in
// memory; every mutation writes through to the key-value store. Storage
// failures never block an operation — they surface through an optional warn
// callback so the UI can show a soft warning while the session keeps working.
package tasks

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"studydesk/internal/storage"
)

// Storage keys for the two collections.
const (
	tasksKey  = "tasks"
	groupsKey = "groups"
)

// Manager holds the task and group collections. It is not safe for
// concurrent use; all calls happen on the UI event loop.
type Manager struct {
	kv     *storage.Store
	tasks  []Task
	groups []Group
	filter Filter
	onWarn func(msg string)
}

// NewManager loads both collections from the store and seeds the default
// group when no groups exist. kv may be nil in tests; the manager then
// operates purely in memory.
func NewManager(kv *storage.Store) *Manager {
	m := &Manager{kv: kv, filter: FilterAll}

	if kv != nil {
		if loaded, ok := storage.Get[[]Task](kv, tasksKey); ok {
			m.tasks = loaded
		}
		if loaded, ok := storage.Get[[]Group](kv, groupsKey); ok {
			m.groups = loaded
		}
	}

	if len(m.groups) == 0 {
		m.groups = []Group{DefaultGroup()}
		m.persistGroups()
	}

	return m
}

// SetOnWarn registers a callback invoked when a write-through fails.
func (m *Manager) SetOnWarn(fn func(msg string)) {
	m.onWarn = fn
}

func (m *Manager) warn(msg string) {
	if m.onWarn != nil {
		m.onWarn(msg)
	}
}

func (m *Manager) persistTasks() {
	if m.kv == nil {
		return
	}
	if !storage.Set(m.kv, tasksKey, m.tasks) {
		m.warn("couldn't save tasks; changes are kept for this session only")
	}
}

func (m *Manager) persistGroups() {
	if m.kv == nil {
		return
	}
	if !storage.Set(m.kv, groupsKey, m.groups) {
		m.warn("couldn't save groups; changes are kept for this session only")
	}
}

// Tasks returns a copy of all tasks in storage order.
func (m *Manager) Tasks() []Task {
	out := make([]Task, len(m.tasks))
	copy(out, m.tasks)
	return out
}

// Groups returns a copy of all groups.
func (m *Manager) Groups() []Group {
	out := make([]Group, len(m.groups))
	copy(out, m.groups)
	return out
}

// AddTask appends a new task. Its order is the task count at creation time,
// so after deletions a new task can land between surviving orders. The title
// is trimmed here; rejecting an empty result is the caller's job. groupID may
// be empty for an ungrouped task.
func (m *Manager) AddTask(title, groupID string) (Task, error) {
	id, err := newID("task")
	if err != nil {
		return Task{}, err
	}

	task := Task{
		ID:        id,
		Title:     strings.TrimSpace(title),
		GroupID:   groupID,
		CreatedAt: time.Now(),
		Order:     len(m.tasks),
	}
	m.tasks = append(m.tasks, task)
	m.persistTasks()
	return task, nil
}

// UpdateTask applies a patch to the task with the given id.
func (m *Manager) UpdateTask(id string, patch TaskPatch) error {
	for i := range m.tasks {
		if m.tasks[i].ID != id {
			continue
		}
		if patch.Title != nil {
			m.tasks[i].Title = *patch.Title
		}
		if patch.Completed != nil {
			m.tasks[i].Completed = *patch.Completed
		}
		if patch.GroupID != nil {
			m.tasks[i].GroupID = *patch.GroupID
		}
		if patch.Order != nil {
			m.tasks[i].Order = *patch.Order
		}
		m.persistTasks()
		return nil
	}
	return fmt.Errorf("task %s not found", id)
}

// ToggleTask flips the completion state of the task with the given id.
func (m *Manager) ToggleTask(id string) error {
	for i := range m.tasks {
		if m.tasks[i].ID == id {
			m.tasks[i].Completed = !m.tasks[i].Completed
			m.persistTasks()
			return nil
		}
	}
	return fmt.Errorf("task %s not found", id)
}

// DeleteTask removes the task with the given id.
func (m *Manager) DeleteTask(id string) error {
	for i := range m.tasks {
		if m.tasks[i].ID == id {
			m.tasks = append(m.tasks[:i], m.tasks[i+1:]...)
			m.persistTasks()
			return nil
		}
	}
	return fmt.Errorf("task %s not found", id)
}

// AddGroup creates a new group. The name is trimmed here; rejecting an empty
// result is the caller's job. color is a hex string like "#6366f1".
func (m *Manager) AddGroup(name, color string) (Group, error) {
	id, err := newID("group")
	if err != nil {
		return Group{}, err
	}

	group := Group{ID: id, Name: strings.TrimSpace(name), Color: color}
	m.groups = append(m.groups, group)
	m.persistGroups()
	return group, nil
}

// UpdateGroup applies a patch to the group with the given id.
func (m *Manager) UpdateGroup(id string, patch GroupPatch) error {
	for i := range m.groups {
		if m.groups[i].ID != id {
			continue
		}
		if patch.Name != nil {
			m.groups[i].Name = *patch.Name
		}
		if patch.Color != nil {
			m.groups[i].Color = *patch.Color
		}
		m.persistGroups()
		return nil
	}
	return fmt.Errorf("group %s not found", id)
}

// DeleteGroup removes a group and ungroups every task that referenced it.
// Deleting the default group, or an unknown id, is a no-op.
func (m *Manager) DeleteGroup(id string) {
	if id == DefaultGroupID {
		return
	}

	idx := -1
	for i := range m.groups {
		if m.groups[i].ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return
	}

	m.groups = append(m.groups[:idx], m.groups[idx+1:]...)
	for i := range m.tasks {
		if m.tasks[i].GroupID == id {
			m.tasks[i].GroupID = ""
		}
	}
	if m.filter == Filter(id) {
		m.filter = FilterAll
	}

	m.persistGroups()
	m.persistTasks()
}

// GroupByID looks up a group by id.
func (m *Manager) GroupByID(id string) (Group, bool) {
	for _, g := range m.groups {
		if g.ID == id {
			return g, true
		}
	}
	return Group{}, false
}

// SetFilter sets the active task filter.
func (m *Manager) SetFilter(f Filter) {
	m.filter = f
}

// Filter returns the active task filter.
func (m *Manager) Filter() Filter {
	return m.filter
}

// GetFilteredTasks returns the tasks matching the active filter, sorted by
// order ascending with creation time breaking ties. A filter naming an
// unknown group matches nothing.
func (m *Manager) GetFilteredTasks() []Task {
	var out []Task
	for _, t := range m.tasks {
		switch m.filter {
		case FilterAll:
			out = append(out, t)
		case FilterActive:
			if !t.Completed {
				out = append(out, t)
			}
		case FilterCompleted:
			if t.Completed {
				out = append(out, t)
			}
		default:
			if t.GroupID == string(m.filter) {
				out = append(out, t)
			}
		}
	}

	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Order != out[j].Order {
			return out[i].Order < out[j].Order
		}
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out
}
