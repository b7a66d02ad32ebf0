package tasks

import (
	"os"
	"strings"
	"testing"
	"time"

	"studydesk/internal/storage"
)

func newTestStore(t *testing.T) *storage.Store {
	t.Helper()
	s, err := storage.New(t.TempDir(), storage.WithLogger(func(string, ...any) {}))
	if err != nil {
		t.Fatalf("storage.New() error = %v", err)
	}
	return s
}

func strPtr(v string) *string { return &v }
func boolPtr(v bool) *bool    { return &v }
func intPtr(v int) *int       { return &v }

func TestNewManagerSeedsDefaultGroup(t *testing.T) {
	kv := newTestStore(t)
	m := NewManager(kv)

	groups := m.Groups()
	if len(groups) != 1 {
		t.Fatalf("got %d groups, want 1", len(groups))
	}
	want := DefaultGroup()
	if groups[0] != want {
		t.Errorf("seeded group = %+v, want %+v", groups[0], want)
	}

	// The seed must be persisted, not just in memory.
	saved, ok := storage.Get[[]Group](kv, groupsKey)
	if !ok || len(saved) != 1 || saved[0].ID != DefaultGroupID {
		t.Errorf("seeded group not persisted: %v %v", saved, ok)
	}
}

func TestNewManagerKeepsExistingGroups(t *testing.T) {
	kv := newTestStore(t)
	storage.Set(kv, groupsKey, []Group{{ID: "g1", Name: "Work", Color: "#ff0000"}})

	m := NewManager(kv)

	groups := m.Groups()
	if len(groups) != 1 || groups[0].ID != "g1" {
		t.Errorf("groups = %+v, want the stored group only", groups)
	}
}

func TestAddTaskPersistsAndOrders(t *testing.T) {
	kv := newTestStore(t)
	m := NewManager(kv)

	first, err := m.AddTask("read chapter 3", "")
	if err != nil {
		t.Fatalf("AddTask() error = %v", err)
	}
	second, err := m.AddTask("review notes", DefaultGroupID)
	if err != nil {
		t.Fatalf("AddTask() error = %v", err)
	}

	if first.Order != 0 || second.Order != 1 {
		t.Errorf("orders = %d, %d, want 0, 1", first.Order, second.Order)
	}
	if !strings.HasPrefix(first.ID, "task_") {
		t.Errorf("task ID = %q, want task_ prefix", first.ID)
	}
	if second.GroupID != DefaultGroupID {
		t.Errorf("GroupID = %q, want %q", second.GroupID, DefaultGroupID)
	}

	reloaded := NewManager(kv)
	if got := len(reloaded.Tasks()); got != 2 {
		t.Errorf("reloaded %d tasks, want 2", got)
	}
}

func TestAddTaskOrderIsTaskCount(t *testing.T) {
	m := NewManager(nil)
	m.tasks = []Task{{ID: "a", Order: 0}, {ID: "b", Order: 7}}

	task, err := m.AddTask("next", "")
	if err != nil {
		t.Fatalf("AddTask() error = %v", err)
	}
	if task.Order != 2 {
		t.Errorf("Order = %d, want the task count at creation (2)", task.Order)
	}
}

func TestAddTaskAndGroupTrimWhitespace(t *testing.T) {
	m := NewManager(nil)

	task, err := m.AddTask("  read chapter 3\t", "")
	if err != nil {
		t.Fatalf("AddTask() error = %v", err)
	}
	if task.Title != "read chapter 3" {
		t.Errorf("Title = %q, want trimmed", task.Title)
	}

	group, err := m.AddGroup(" Exam prep ", "#6366f1")
	if err != nil {
		t.Fatalf("AddGroup() error = %v", err)
	}
	if group.Name != "Exam prep" {
		t.Errorf("Name = %q, want trimmed", group.Name)
	}
}

func TestUpdateTask(t *testing.T) {
	m := NewManager(newTestStore(t))
	task, _ := m.AddTask("draft essay", "")

	err := m.UpdateTask(task.ID, TaskPatch{
		Title:   strPtr("draft essay outline"),
		GroupID: strPtr(DefaultGroupID),
	})
	if err != nil {
		t.Fatalf("UpdateTask() error = %v", err)
	}

	got := m.Tasks()[0]
	if got.Title != "draft essay outline" {
		t.Errorf("Title = %q", got.Title)
	}
	if got.GroupID != DefaultGroupID {
		t.Errorf("GroupID = %q", got.GroupID)
	}
	if got.Completed {
		t.Error("Completed changed by an unrelated patch")
	}

	if err := m.UpdateTask("missing", TaskPatch{Title: strPtr("x")}); err == nil {
		t.Error("UpdateTask() on unknown id returned nil error")
	}
}

func TestUpdateTaskUngroups(t *testing.T) {
	m := NewManager(newTestStore(t))
	task, _ := m.AddTask("solo task", DefaultGroupID)

	if err := m.UpdateTask(task.ID, TaskPatch{GroupID: strPtr("")}); err != nil {
		t.Fatalf("UpdateTask() error = %v", err)
	}
	if got := m.Tasks()[0].GroupID; got != "" {
		t.Errorf("GroupID = %q, want empty", got)
	}
}

func TestToggleTask(t *testing.T) {
	m := NewManager(newTestStore(t))
	task, _ := m.AddTask("flashcards", "")

	if err := m.ToggleTask(task.ID); err != nil {
		t.Fatalf("ToggleTask() error = %v", err)
	}
	if !m.Tasks()[0].Completed {
		t.Error("task not completed after toggle")
	}

	if err := m.ToggleTask(task.ID); err != nil {
		t.Fatalf("ToggleTask() error = %v", err)
	}
	if m.Tasks()[0].Completed {
		t.Error("task still completed after second toggle")
	}

	if err := m.ToggleTask("missing"); err == nil {
		t.Error("ToggleTask() on unknown id returned nil error")
	}
}

func TestDeleteTask(t *testing.T) {
	kv := newTestStore(t)
	m := NewManager(kv)
	keep, _ := m.AddTask("keep", "")
	gone, _ := m.AddTask("gone", "")

	if err := m.DeleteTask(gone.ID); err != nil {
		t.Fatalf("DeleteTask() error = %v", err)
	}

	got := m.Tasks()
	if len(got) != 1 || got[0].ID != keep.ID {
		t.Errorf("tasks = %+v, want only %q", got, keep.ID)
	}

	if err := m.DeleteTask("missing"); err == nil {
		t.Error("DeleteTask() on unknown id returned nil error")
	}
}

func TestAddGroup(t *testing.T) {
	kv := newTestStore(t)
	m := NewManager(kv)

	group, err := m.AddGroup("Deep Work", "#a855f7")
	if err != nil {
		t.Fatalf("AddGroup() error = %v", err)
	}
	if !strings.HasPrefix(group.ID, "group_") {
		t.Errorf("group ID = %q, want group_ prefix", group.ID)
	}

	reloaded := NewManager(kv)
	if got := len(reloaded.Groups()); got != 2 {
		t.Errorf("reloaded %d groups, want 2", got)
	}
	if g, ok := reloaded.GroupByID(group.ID); !ok || g.Name != "Deep Work" {
		t.Errorf("GroupByID() = %+v, %v", g, ok)
	}
}

func TestUpdateGroup(t *testing.T) {
	m := NewManager(newTestStore(t))
	group, _ := m.AddGroup("Reading", "#f97316")

	if err := m.UpdateGroup(group.ID, GroupPatch{Color: strPtr("#22c55e")}); err != nil {
		t.Fatalf("UpdateGroup() error = %v", err)
	}
	g, _ := m.GroupByID(group.ID)
	if g.Color != "#22c55e" {
		t.Errorf("Color = %q", g.Color)
	}
	if g.Name != "Reading" {
		t.Errorf("Name = %q changed by an unrelated patch", g.Name)
	}

	if err := m.UpdateGroup("missing", GroupPatch{Name: strPtr("x")}); err == nil {
		t.Error("UpdateGroup() on unknown id returned nil error")
	}
}

func TestDeleteGroupUngroupsTasks(t *testing.T) {
	kv := newTestStore(t)
	m := NewManager(kv)
	group, _ := m.AddGroup("Exam Prep", "#ef4444")
	inGroup, _ := m.AddTask("past papers", group.ID)
	outside, _ := m.AddTask("laundry", "")

	m.DeleteGroup(group.ID)

	if _, ok := m.GroupByID(group.ID); ok {
		t.Error("group still present after delete")
	}
	for _, task := range m.Tasks() {
		if task.ID == inGroup.ID && task.GroupID != "" {
			t.Errorf("task %q still references deleted group", task.Title)
		}
		if task.ID == outside.ID && task.GroupID != "" {
			t.Errorf("unrelated task %q gained a group", task.Title)
		}
	}

	// Both collections must be written through.
	reloaded := NewManager(kv)
	if _, ok := reloaded.GroupByID(group.ID); ok {
		t.Error("deleted group came back after reload")
	}
	for _, task := range reloaded.Tasks() {
		if task.GroupID == group.ID {
			t.Error("reloaded task still references deleted group")
		}
	}
}

func TestDeleteGroupDefaultIsNoop(t *testing.T) {
	m := NewManager(newTestStore(t))
	m.DeleteGroup(DefaultGroupID)

	if _, ok := m.GroupByID(DefaultGroupID); !ok {
		t.Error("default group was deleted")
	}
}

func TestDeleteGroupResetsMatchingFilter(t *testing.T) {
	m := NewManager(newTestStore(t))
	group, _ := m.AddGroup("Temp", "#000000")
	m.SetFilter(Filter(group.ID))

	m.DeleteGroup(group.ID)

	if m.Filter() != FilterAll {
		t.Errorf("Filter() = %q after deleting its group, want all", m.Filter())
	}
}

func TestGetFilteredTasks(t *testing.T) {
	m := NewManager(newTestStore(t))
	group, _ := m.AddGroup("Math", "#3b82f6")
	a, _ := m.AddTask("algebra", group.ID)
	b, _ := m.AddTask("biology", "")
	m.ToggleTask(b.ID)

	tests := []struct {
		name   string
		filter Filter
		want   []string
	}{
		{"all", FilterAll, []string{a.ID, b.ID}},
		{"active", FilterActive, []string{a.ID}},
		{"completed", FilterCompleted, []string{b.ID}},
		{"group", Filter(group.ID), []string{a.ID}},
		{"unknown group", Filter("nope"), nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m.SetFilter(tt.filter)
			got := m.GetFilteredTasks()
			if len(got) != len(tt.want) {
				t.Fatalf("got %d tasks, want %d", len(got), len(tt.want))
			}
			for i, task := range got {
				if task.ID != tt.want[i] {
					t.Errorf("task[%d] = %q, want %q", i, task.ID, tt.want[i])
				}
			}
		})
	}
}

func TestGetFilteredTasksSortsByOrderThenCreatedAt(t *testing.T) {
	m := NewManager(nil)
	base := time.Date(2026, 8, 1, 9, 0, 0, 0, time.UTC)
	m.tasks = []Task{
		{ID: "late", Order: 2, CreatedAt: base},
		{ID: "tie-new", Order: 1, CreatedAt: base.Add(time.Minute)},
		{ID: "tie-old", Order: 1, CreatedAt: base},
		{ID: "first", Order: 0, CreatedAt: base},
	}

	got := m.GetFilteredTasks()
	want := []string{"first", "tie-old", "tie-new", "late"}
	for i, task := range got {
		if task.ID != want[i] {
			t.Errorf("task[%d] = %q, want %q", i, task.ID, want[i])
		}
	}
}

func TestWarnOnPersistFailure(t *testing.T) {
	dir := t.TempDir()
	kv, err := storage.New(dir, storage.WithLogger(func(string, ...any) {}))
	if err != nil {
		t.Fatalf("storage.New() error = %v", err)
	}
	m := NewManager(kv)

	var warnings []string
	m.SetOnWarn(func(msg string) { warnings = append(warnings, msg) })

	// Make every subsequent write fail.
	if err := os.RemoveAll(dir); err != nil {
		t.Fatalf("RemoveAll() error = %v", err)
	}

	task, err := m.AddTask("doomed", "")
	if err != nil {
		t.Fatalf("AddTask() error = %v", err)
	}
	if len(warnings) != 1 {
		t.Fatalf("got %d warnings, want 1", len(warnings))
	}

	// The in-memory collection keeps working despite the failure.
	if got := m.Tasks(); len(got) != 1 || got[0].ID != task.ID {
		t.Errorf("tasks = %+v after failed persist", got)
	}
}
