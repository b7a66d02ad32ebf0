package reports

import (
	"encoding/json"
	"strings"
	"testing"

	"studydesk/internal/pomodoro"
	"studydesk/internal/storage"
	"studydesk/internal/tasks"
)

func newTestStore(t *testing.T) *storage.Store {
	t.Helper()
	s, err := storage.New(t.TempDir(), storage.WithLogger(func(string, ...any) {}))
	if err != nil {
		t.Fatalf("storage.New() error = %v", err)
	}
	return s
}

func seedTasks(t *testing.T, kv *storage.Store) {
	t.Helper()
	manager := tasks.NewManager(kv)
	group, err := manager.AddGroup("Math", "#f97316")
	if err != nil {
		t.Fatalf("AddGroup() error = %v", err)
	}
	done, err := manager.AddTask("Integrals worksheet", group.ID)
	if err != nil {
		t.Fatalf("AddTask() error = %v", err)
	}
	if err := manager.ToggleTask(done.ID); err != nil {
		t.Fatalf("ToggleTask() error = %v", err)
	}
	if _, err := manager.AddTask("Review limits", group.ID); err != nil {
		t.Fatalf("AddTask() error = %v", err)
	}
	if _, err := manager.AddTask("Water the plants", ""); err != nil {
		t.Fatalf("AddTask() error = %v", err)
	}
}

func TestGenerate_EmptyStore(t *testing.T) {
	kv := newTestStore(t)
	report := NewGenerator(kv).Generate()

	if report.Tasks.CompletedCount != 0 || report.Tasks.PendingCount != 0 {
		t.Errorf("Tasks = %d/%d, want empty", report.Tasks.CompletedCount, report.Tasks.PendingCount)
	}
	if report.Pomodoro.FocusMinutes != 25 || report.Pomodoro.BreakMinutes != 5 {
		t.Errorf("Pomodoro = %+v, want defaults", report.Pomodoro)
	}
	if report.Player.Stream == "" {
		t.Error("Expected the default stream name")
	}
	if report.Theme == "" {
		t.Error("Expected the default theme name")
	}
}

func TestGenerate_TaskAndGroupSummaries(t *testing.T) {
	kv := newTestStore(t)
	seedTasks(t, kv)

	report := NewGenerator(kv).Generate()

	if report.Tasks.CompletedCount != 1 || report.Tasks.PendingCount != 2 {
		t.Fatalf("Tasks = %d done / %d pending, want 1/2",
			report.Tasks.CompletedCount, report.Tasks.PendingCount)
	}
	if got := report.Tasks.CompletionRate; got < 33 || got > 34 {
		t.Errorf("CompletionRate = %.2f, want ~33.3", got)
	}

	// default group, Math, and the synthetic Ungrouped entry
	if len(report.Groups) != 3 {
		t.Fatalf("Groups = %d, want 3", len(report.Groups))
	}

	var math, ungrouped *GroupSummary
	for i := range report.Groups {
		switch report.Groups[i].Name {
		case "Math":
			math = &report.Groups[i]
		case "Ungrouped":
			ungrouped = &report.Groups[i]
		}
	}
	if math == nil || math.Completed != 1 || math.Total != 2 {
		t.Errorf("Math summary = %+v, want 1/2", math)
	}
	if ungrouped == nil || ungrouped.Total != 1 {
		t.Errorf("Ungrouped summary = %+v, want total 1", ungrouped)
	}
}

func TestGenerate_ReflectsPomodoroConfig(t *testing.T) {
	kv := newTestStore(t)
	storage.Set(kv, pomodoro.ConfigKey, pomodoro.Config{
		FocusDuration:  50,
		BreakDuration:  10,
		SoundEnabled:   false,
		AutoStartBreak: true,
	})

	report := NewGenerator(kv).Generate()

	want := PomodoroSummary{FocusMinutes: 50, BreakMinutes: 10, AutoStartBreak: true}
	if report.Pomodoro != want {
		t.Errorf("Pomodoro = %+v, want %+v", report.Pomodoro, want)
	}
}

func TestFormatMarkdown(t *testing.T) {
	kv := newTestStore(t)
	seedTasks(t, kv)

	md := FormatMarkdown(NewGenerator(kv).Generate())

	for _, want := range []string{
		"# studydesk report",
		"## Tasks",
		"1/3 complete",
		"### Math (1/2)",
		"- [x] Integrals worksheet",
		"- [ ] Review limits",
		"### Ungrouped (0/1)",
		"- [ ] Water the plants",
		"## Focus timer",
		"- Focus: 25 min",
		"## Ambience",
	} {
		if !strings.Contains(md, want) {
			t.Errorf("Markdown missing %q", want)
		}
	}
}

func TestFormatMarkdown_EmptyTasks(t *testing.T) {
	kv := newTestStore(t)
	md := FormatMarkdown(NewGenerator(kv).Generate())

	if !strings.Contains(md, "No tasks yet.") {
		t.Error("Expected the empty-tasks note")
	}
}

func TestFormatJSON(t *testing.T) {
	kv := newTestStore(t)
	seedTasks(t, kv)

	data, err := FormatJSON(NewGenerator(kv).Generate())
	if err != nil {
		t.Fatalf("FormatJSON() error = %v", err)
	}

	var decoded Report
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	if decoded.Tasks.CompletedCount != 1 {
		t.Errorf("CompletedCount = %d, want 1", decoded.Tasks.CompletedCount)
	}
	if decoded.Theme == "" {
		t.Error("Expected the theme name in the JSON report")
	}
}
