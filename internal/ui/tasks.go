// Package ui provides the terminal user interface for studydesk.
package ui

import (
	"fmt"
	"strings"

	"studydesk/internal/config"
	"studydesk/internal/tasks"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
)

// inputMode identifies what the task pane's text input is collecting.
type inputMode int

const (
	inputNone inputMode = iota
	inputAddTask
	inputEditTask
	inputAddGroup
)

// groupColors is the rotation new groups draw their color from.
var groupColors = []string{
	"#6366f1", "#f97316", "#22c55e", "#e11d48", "#a855f7",
	"#0ea5e9", "#eab308", "#14b8a6",
}

// TaskPane handles the task list display and interactions.
type TaskPane struct {
	manager *tasks.Manager
	visible []tasks.Task
	cursor  int
	focused bool
	width   int
	height  int
	mode    inputMode
	editID  string
	input   textinput.Model
	styles  *Styles

	// Key bindings
	keys      TaskKeyMap
	inputKeys InputKeyMap
}

// NewTaskPane creates a new task pane.
func NewTaskPane(manager *tasks.Manager, styles *Styles) *TaskPane {
	return NewTaskPaneWithKeys(manager, styles, &config.KeysConfig{})
}

// NewTaskPaneWithKeys creates a new task pane with custom key bindings.
func NewTaskPaneWithKeys(manager *tasks.Manager, styles *Styles, keyCfg *config.KeysConfig) *TaskPane {
	if keyCfg == nil {
		keyCfg = &config.KeysConfig{}
	}
	ti := textinput.New()
	ti.Placeholder = "What needs to be done?"
	ti.CharLimit = 100
	ti.Width = 40

	p := &TaskPane{
		manager:   manager,
		focused:   true,
		input:     ti,
		styles:    styles,
		keys:      NewTaskKeyMap(keyCfg),
		inputKeys: NewInputKeyMap(keyCfg),
	}
	p.refresh()
	return p
}

// refresh re-reads the visible slice from the manager and clamps the cursor.
func (p *TaskPane) refresh() {
	p.visible = p.manager.GetFilteredTasks()
	if p.cursor >= len(p.visible) {
		p.cursor = max(0, len(p.visible)-1)
	}
}

// SetSize sets the pane dimensions.
func (p *TaskPane) SetSize(width, height int) {
	p.width = width
	p.height = height
	p.input.Width = max(10, width-4)
}

// SetFocused sets whether this pane is focused.
func (p *TaskPane) SetFocused(focused bool) {
	p.focused = focused
}

// IsFocused returns whether this pane is focused.
func (p *TaskPane) IsFocused() bool {
	return p.focused
}

// IsEditing returns whether the pane is collecting text input.
func (p *TaskPane) IsEditing() bool {
	return p.mode != inputNone
}

// SelectedTask returns the task under the cursor.
func (p *TaskPane) SelectedTask() (tasks.Task, bool) {
	if len(p.visible) == 0 || p.cursor < 0 || p.cursor >= len(p.visible) {
		return tasks.Task{}, false
	}
	return p.visible[p.cursor], true
}

// FilteredGroup returns the group the active filter names, if any.
func (p *TaskPane) FilteredGroup() (tasks.Group, bool) {
	return p.manager.GroupByID(string(p.manager.Filter()))
}

// DeleteSelected removes the task under the cursor.
func (p *TaskPane) DeleteSelected() {
	if task, ok := p.SelectedTask(); ok {
		_ = p.manager.DeleteTask(task.ID)
		p.refresh()
	}
}

// DeleteFilteredGroup removes the group the active filter names.
func (p *TaskPane) DeleteFilteredGroup() {
	if group, ok := p.FilteredGroup(); ok {
		p.manager.DeleteGroup(group.ID)
		p.refresh()
	}
}

// Update handles messages for the task pane.
func (p *TaskPane) Update(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd

	// Input mode handles keys through the text input.
	if p.mode != inputNone {
		if keyMsg, ok := msg.(tea.KeyMsg); ok {
			switch {
			case key.Matches(keyMsg, p.inputKeys.Confirm):
				p.commitInput()
				return nil
			case key.Matches(keyMsg, p.inputKeys.Cancel):
				p.resetInput()
				return nil
			}
		}
		p.input, cmd = p.input.Update(msg)
		return cmd
	}

	if !p.focused {
		return nil
	}

	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return nil
	}

	switch {
	case key.Matches(keyMsg, p.keys.Down):
		if len(p.visible) > 0 {
			p.cursor = min(p.cursor+1, len(p.visible)-1)
		}

	case key.Matches(keyMsg, p.keys.Up):
		if len(p.visible) > 0 {
			p.cursor = max(p.cursor-1, 0)
		}

	case key.Matches(keyMsg, p.keys.Top):
		p.cursor = 0

	case key.Matches(keyMsg, p.keys.Bottom):
		if len(p.visible) > 0 {
			p.cursor = len(p.visible) - 1
		}

	case key.Matches(keyMsg, p.keys.Add):
		p.mode = inputAddTask
		p.input.Placeholder = "What needs to be done?"
		p.input.Focus()
		return textinput.Blink

	case key.Matches(keyMsg, p.keys.Edit):
		if task, ok := p.SelectedTask(); ok {
			p.mode = inputEditTask
			p.editID = task.ID
			p.input.Placeholder = ""
			p.input.SetValue(task.Title)
			p.input.CursorEnd()
			p.input.Focus()
			return textinput.Blink
		}

	case key.Matches(keyMsg, p.keys.AddGroup):
		p.mode = inputAddGroup
		p.input.Placeholder = "Group name"
		p.input.Focus()
		return textinput.Blink

	case key.Matches(keyMsg, p.keys.Toggle):
		if task, ok := p.SelectedTask(); ok {
			_ = p.manager.ToggleTask(task.ID)
			p.refresh()
		}

	case key.Matches(keyMsg, p.keys.CycleFilter):
		p.cycleFilter()

	case key.Matches(keyMsg, p.keys.MoveToGroup):
		p.moveSelectedToNextGroup()
	}

	return nil
}

// commitInput applies the pending text input for the current mode.
func (p *TaskPane) commitInput() {
	text := strings.TrimSpace(p.input.Value())
	mode := p.mode
	editID := p.editID
	p.resetInput()

	if text == "" {
		return
	}

	switch mode {
	case inputAddTask:
		// New tasks land in the filtered group when one is active.
		groupID := ""
		if group, ok := p.FilteredGroup(); ok {
			groupID = group.ID
		}
		_, _ = p.manager.AddTask(text, groupID)

	case inputEditTask:
		_ = p.manager.UpdateTask(editID, tasks.TaskPatch{Title: &text})

	case inputAddGroup:
		_, _ = p.manager.AddGroup(text, nextGroupColor(p.manager.Groups()))
	}

	p.refresh()
}

func (p *TaskPane) resetInput() {
	p.mode = inputNone
	p.editID = ""
	p.input.Reset()
}

// nextGroupColor picks the first rotation color no existing group uses,
// wrapping by count when all are taken.
func nextGroupColor(groups []tasks.Group) string {
	used := make(map[string]bool, len(groups))
	for _, g := range groups {
		used[g.Color] = true
	}
	for _, c := range groupColors {
		if !used[c] {
			return c
		}
	}
	return groupColors[len(groups)%len(groupColors)]
}

// cycleFilter steps all → active → completed → each group → all.
func (p *TaskPane) cycleFilter() {
	groups := p.manager.Groups()
	current := p.manager.Filter()

	var next tasks.Filter
	switch current {
	case tasks.FilterAll:
		next = tasks.FilterActive
	case tasks.FilterActive:
		next = tasks.FilterCompleted
	case tasks.FilterCompleted:
		if len(groups) > 0 {
			next = tasks.Filter(groups[0].ID)
		} else {
			next = tasks.FilterAll
		}
	default:
		next = tasks.FilterAll
		for i, g := range groups {
			if tasks.Filter(g.ID) == current && i+1 < len(groups) {
				next = tasks.Filter(groups[i+1].ID)
				break
			}
		}
	}

	p.manager.SetFilter(next)
	p.cursor = 0
	p.refresh()
}

// moveSelectedToNextGroup cycles the selected task's group:
// ungrouped → first group → ... → last group → ungrouped.
func (p *TaskPane) moveSelectedToNextGroup() {
	task, ok := p.SelectedTask()
	if !ok {
		return
	}
	groups := p.manager.Groups()
	if len(groups) == 0 {
		return
	}

	next := ""
	if task.GroupID == "" {
		next = groups[0].ID
	} else {
		for i, g := range groups {
			if g.ID == task.GroupID && i+1 < len(groups) {
				next = groups[i+1].ID
				break
			}
		}
	}

	_ = p.manager.UpdateTask(task.ID, tasks.TaskPatch{GroupID: &next})
	p.refresh()
}

// filterLabel names the active filter for display.
func (p *TaskPane) filterLabel() string {
	switch f := p.manager.Filter(); f {
	case tasks.FilterAll:
		return "all"
	case tasks.FilterActive:
		return "active"
	case tasks.FilterCompleted:
		return "completed"
	default:
		if group, ok := p.manager.GroupByID(string(f)); ok {
			return group.Name
		}
		return string(f)
	}
}

// View renders the task pane.
func (p *TaskPane) View() string {
	var b strings.Builder

	// Title with active filter
	title := p.styles.PaneTitleStyle.Render("✅ TASKS")
	filter := p.styles.FilterStyle.Render("⧩ " + p.filterLabel())
	b.WriteString(title + "  " + filter)
	b.WriteString("\n")

	// Separator
	sepWidth := p.width - 4
	if sepWidth < 10 {
		sepWidth = 30
	}
	b.WriteString(lipgloss.NewStyle().Foreground(p.styles.ColorMuted).Render(strings.Repeat("─", sepWidth)))
	b.WriteString("\n")

	if len(p.visible) == 0 && p.mode == inputNone {
		b.WriteString(lipgloss.NewStyle().Foreground(p.styles.ColorTextMuted).Italic(true).Render("  No tasks here. Press 'a' to add one."))
		b.WriteString("\n")
	} else {
		// Calculate how many tasks we can show
		maxTasks := p.height - 6 // Account for title, separator, input, stats
		if maxTasks < 3 {
			maxTasks = 5
		}

		startIdx := 0
		if p.cursor >= maxTasks {
			startIdx = p.cursor - maxTasks + 1
		}

		doneCount := 0

		for i, task := range p.visible {
			if task.Completed {
				doneCount++
			}

			if i < startIdx || i >= startIdx+maxTasks {
				continue
			}

			// Group color marker (1 char)
			dot := " "
			if group, ok := p.manager.GroupByID(task.GroupID); ok {
				dot = p.styles.GroupDot(group.Color)
			}

			// Checkbox
			var checkbox string
			if task.Completed {
				checkbox = p.styles.TaskCheckboxDone
			} else {
				checkbox = p.styles.TaskCheckboxPending
			}

			// Layout: [space][dot][checkbox][space][title]
			availableTextWidth := p.width - 4 - 6
			if availableTextWidth < 5 {
				availableTextWidth = 5
			}
			titleText := runewidth.Truncate(task.Title, availableTextWidth, "..")

			var line string
			if i == p.cursor && p.focused && p.mode == inputNone {
				line = p.styles.TaskSelectedStyle.Render(fmt.Sprintf(" %s%s %s ", dot, checkbox, titleText))
			} else {
				var styledTitle string
				if task.Completed {
					styledTitle = p.styles.TaskDoneStyle.Render(titleText)
				} else {
					styledTitle = p.styles.TaskPendingStyle.Render(titleText)
				}
				line = fmt.Sprintf(" %s%s %s", dot, checkbox, styledTitle)
			}

			b.WriteString(line)
			b.WriteString("\n")
		}

		// Stats
		b.WriteString("\n")
		stats := p.styles.StatLabelStyle.Render(fmt.Sprintf("%d/%d complete", doneCount, len(p.visible)))
		b.WriteString("  " + stats)
		b.WriteString("\n")
	}

	// Input field when collecting text
	if p.mode != inputNone {
		b.WriteString("\n")
		prompt := p.styles.InputPromptStyle.Render(p.inputPrompt())
		b.WriteString(prompt + p.input.View())
		b.WriteString("\n")
	}

	// Apply pane style
	content := b.String()
	style := p.styles.PaneStyle
	if p.focused {
		style = p.styles.PaneFocusedStyle
	}

	return style.Width(p.width).Height(p.height).Render(content)
}

func (p *TaskPane) inputPrompt() string {
	switch p.mode {
	case inputEditTask:
		return "✎ "
	case inputAddGroup:
		return "◆ "
	default:
		return "+ "
	}
}

// Stats returns completed and total counts for the visible tasks.
func (p *TaskPane) Stats() (done, total int) {
	for _, task := range p.visible {
		if task.Completed {
			done++
		}
	}
	return done, len(p.visible)
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
