// Package ui provides the terminal user interface for studydesk.
// This file holds the root App model: pane coordination, layout, overlays,
// and the message routing between Bubble Tea and the panes.
package ui

import (
	"fmt"
	"strings"
	"time"

	"studydesk/internal/config"
	"studydesk/internal/player"
	"studydesk/internal/pomodoro"
	"studydesk/internal/storage"
	"studydesk/internal/tasks"
	"studydesk/internal/theme"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// PaneID names the three panes.
type PaneID int

const (
	PaneTasks PaneID = iota
	PaneTimer
	PanePlayer
)

// LayoutMode selects the pane arrangement for the terminal width.
type LayoutMode int

const (
	// LayoutWide places the three panes side by side.
	LayoutWide LayoutMode = iota
	// LayoutNarrow stacks down to the focused pane plus a tab bar.
	LayoutNarrow
)

// AppConfig carries the user settings the App itself acts on.
type AppConfig struct {
	Keys                  *config.KeysConfig
	ConfirmDeletions      bool
	ShowOnboarding        bool
	NarrowLayoutThreshold int
}

// App is the root Bubble Tea model.
type App struct {
	kv           *storage.Store
	manager      *tasks.Manager
	styles       *Styles
	config       *AppConfig
	theme        theme.Theme
	taskPane     *TaskPane
	pomodoroPane *PomodoroPane
	playerPane   *PlayerPane
	helpOverlay  *HelpOverlay
	confirmDel   *confirmDeleteState
	activePane   PaneID
	layoutMode   LayoutMode
	showHelp     bool
	showWelcome  bool
	width        int
	height       int
	status       string
	statusErr    bool
	statusUntil  time.Time
	quitting     bool

	keys     GlobalKeyMap
	helpKeys HelpKeyMap
}

type confirmDeleteState struct {
	title string
	body  string
	apply func()
}

// NewApp creates a new application from the already-loaded components.
func NewApp(kv *storage.Store, manager *tasks.Manager, engine *pomodoro.Engine, pl *player.Player, th theme.Theme, cfg *AppConfig) *App {
	if cfg == nil {
		cfg = &AppConfig{
			Keys:                  &config.KeysConfig{},
			ConfirmDeletions:      true,
			ShowOnboarding:        true,
			NarrowLayoutThreshold: 90,
		}
	}
	if cfg.Keys == nil {
		cfg.Keys = &config.KeysConfig{}
	}

	styles := NewStyles(th)

	taskPane := NewTaskPaneWithKeys(manager, styles, cfg.Keys)
	pomodoroPane := NewPomodoroPaneWithKeys(engine, styles, cfg.Keys)
	playerPane := NewPlayerPaneWithKeys(pl, styles, cfg.Keys)
	helpOverlay := NewHelpOverlay(styles)

	app := &App{
		kv:           kv,
		manager:      manager,
		styles:       styles,
		config:       cfg,
		theme:        th,
		taskPane:     taskPane,
		pomodoroPane: pomodoroPane,
		playerPane:   playerPane,
		helpOverlay:  helpOverlay,
		activePane:   PaneTasks,
		showWelcome:  cfg.ShowOnboarding && isFirstRun(manager),
		keys:         NewGlobalKeyMap(cfg.Keys),
		helpKeys:     DefaultHelpKeyMap(),
	}

	// Storage failures surface as soft warnings, never as crashes.
	manager.SetOnWarn(func(msg string) {
		app.SetStatus(msg, true)
	})

	taskPane.SetFocused(true)
	pomodoroPane.SetFocused(false)
	playerPane.SetFocused(false)

	return app
}

// isFirstRun checks if this appears to be the first time running the app:
// no tasks and nothing but the seeded default group.
func isFirstRun(manager *tasks.Manager) bool {
	if len(manager.Tasks()) > 0 {
		return false
	}
	groups := manager.Groups()
	return len(groups) == 1 && groups[0].ID == tasks.DefaultGroupID
}

// Init starts the title-bar clock. The countdown chain is armed when the
// timer starts.
func (a *App) Init() tea.Cmd {
	return clockTickCmd()
}

// Update routes every incoming message.
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	// Timer and player messages go to their panes regardless of focus, so
	// the countdown keeps running while the user works elsewhere.
	switch msg := msg.(type) {
	case pomodoroTickMsg, flashClearMsg:
		cmd := a.pomodoroPane.Update(msg)
		return a, cmd

	case streamOpenedMsg:
		if msg.err != nil {
			a.SetStatus("Open stream: "+msg.err.Error(), true)
		} else {
			a.SetStatus("Opened "+msg.name+" in browser", false)
		}
		return a, nil
	}

	switch msg := msg.(type) {
	case tea.KeyMsg:
		if a.showWelcome {
			a.showWelcome = false
			return a, nil
		}

		if a.confirmDel != nil {
			switch msg.String() {
			case "y", "Y", "enter":
				a.confirmDel.apply()
				a.confirmDel = nil
				return a, nil
			case "n", "N", "esc":
				a.confirmDel = nil
				a.SetStatus("Canceled", false)
				return a, nil
			default:
				return a, nil
			}
		}

		// The help overlay swallows everything until closed
		if a.showHelp {
			if key.Matches(msg, a.helpKeys.Close) {
				a.showHelp = false
				return a, nil
			}
			return a, nil
		}

		// Check if the task pane is collecting text input
		inInputMode := a.taskPane.IsEditing()

		if !inInputMode {
			// Deletions go through a confirmation overlay when enabled.
			if a.activePane == PaneTasks {
				if cmd, handled := a.handleTaskDeletion(msg); handled {
					return a, cmd
				}
			}

			switch {
			case key.Matches(msg, a.keys.Quit):
				a.quitting = true
				return a, tea.Quit

			case key.Matches(msg, a.keys.Help):
				a.showHelp = true
				return a, nil

			case key.Matches(msg, a.keys.NextPane):
				a.switchPane()
				return a, nil

			case key.Matches(msg, a.keys.Pane1):
				a.setActivePane(PaneTasks)
				return a, nil

			case key.Matches(msg, a.keys.Pane2):
				a.setActivePane(PaneTimer)
				return a, nil

			case key.Matches(msg, a.keys.Pane3):
				a.setActivePane(PanePlayer)
				return a, nil

			case key.Matches(msg, a.keys.CycleTheme):
				a.cycleTheme()
				return a, nil
			}
		}

	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.updateLayout()
		return a, nil

	case clockTickMsg:
		if a.status != "" && !a.statusUntil.IsZero() && time.Now().After(a.statusUntil) {
			a.status = ""
			a.statusErr = false
			a.statusUntil = time.Time{}
		}
		return a, clockTickCmd()
	}

	// Whatever remains belongs to the focused pane
	if !a.showHelp {
		var cmd tea.Cmd
		switch a.activePane {
		case PaneTasks:
			cmd = a.taskPane.Update(msg)
		case PaneTimer:
			cmd = a.pomodoroPane.Update(msg)
		case PanePlayer:
			cmd = a.playerPane.Update(msg)
		}
		if cmd != nil {
			cmds = append(cmds, cmd)
		}
	}

	return a, tea.Batch(cmds...)
}

// handleTaskDeletion intercepts delete keys on the task pane so deletions
// can be confirmed. Returns handled=false when the key is something else.
func (a *App) handleTaskDeletion(msg tea.KeyMsg) (tea.Cmd, bool) {
	switch {
	case key.Matches(msg, a.taskPane.keys.Delete):
		task, ok := a.taskPane.SelectedTask()
		if !ok {
			a.SetStatus("No task selected", true)
			return nil, true
		}
		if !a.config.ConfirmDeletions {
			a.taskPane.DeleteSelected()
			return nil, true
		}
		a.confirmDel = &confirmDeleteState{
			title: "Delete task?",
			body:  truncateText(task.Title, 60),
			apply: a.taskPane.DeleteSelected,
		}
		return nil, true

	case key.Matches(msg, a.taskPane.keys.DeleteGroup):
		group, ok := a.taskPane.FilteredGroup()
		if !ok {
			a.SetStatus("Filter by a group first (press f)", true)
			return nil, true
		}
		if group.ID == tasks.DefaultGroupID {
			a.SetStatus("The General group can't be deleted", true)
			return nil, true
		}
		if !a.config.ConfirmDeletions {
			a.taskPane.DeleteFilteredGroup()
			return nil, true
		}
		a.confirmDel = &confirmDeleteState{
			title: "Delete group?",
			body:  truncateText(group.Name, 60) + " (its tasks keep living ungrouped)",
			apply: a.taskPane.DeleteFilteredGroup,
		}
		return nil, true
	}

	return nil, false
}

// cycleTheme switches to the next theme, persists it, and restyles every
// pane in place.
func (a *App) cycleTheme() {
	a.theme = theme.Next(a.theme.ID)
	theme.Save(a.kv, a.theme.ID)

	// Panes share the styles pointer; swapping its contents restyles all.
	*a.styles = *NewStyles(a.theme)
	a.SetStatus("Theme: "+a.theme.Name, false)
}

// switchPane advances focus to the next pane in order.
func (a *App) switchPane() {
	switch a.activePane {
	case PaneTasks:
		a.setActivePane(PaneTimer)
	case PaneTimer:
		a.setActivePane(PanePlayer)
	case PanePlayer:
		a.setActivePane(PaneTasks)
	}
}

// setActivePane moves focus so exactly one pane renders as active.
func (a *App) setActivePane(pane PaneID) {
	a.activePane = pane

	a.taskPane.SetFocused(pane == PaneTasks)
	a.pomodoroPane.SetFocused(pane == PaneTimer)
	a.playerPane.SetFocused(pane == PanePlayer)
}

// updateLayout recomputes pane sizes after a resize.
func (a *App) updateLayout() {
	// Title bar takes 2 lines, help bar 1
	contentHeight := a.height - 4
	if contentHeight < 10 {
		contentHeight = 10
	}

	a.helpOverlay.SetSize(a.width, a.height)

	totalWidth := a.width - 4

	threshold := a.config.NarrowLayoutThreshold
	if threshold <= 0 {
		threshold = 90
	}

	if a.width < threshold {
		a.layoutMode = LayoutNarrow

		// The tab bar costs one line
		narrowHeight := contentHeight - 1
		if narrowHeight < 8 {
			narrowHeight = 8
		}

		// All panes get the full width; only the focused one is drawn
		paneWidth := totalWidth
		if paneWidth < 20 {
			paneWidth = 20
		}

		a.taskPane.SetSize(paneWidth, narrowHeight)
		a.pomodoroPane.SetSize(paneWidth, narrowHeight)
		a.playerPane.SetSize(paneWidth, narrowHeight)
	} else {
		a.layoutMode = LayoutWide

		var tasksWidth, timerWidth, playerWidth int
		if totalWidth < 120 {
			tasksWidth = (totalWidth * 36) / 100
			timerWidth = (totalWidth * 32) / 100
			playerWidth = totalWidth - tasksWidth - timerWidth - 2
		} else {
			// On big terminals, cap each column instead of stretching
			tasksWidth = min((totalWidth*38)/100, 54)
			timerWidth = min((totalWidth*32)/100, 44)
			playerWidth = min(totalWidth-tasksWidth-timerWidth-2, 44)
		}

		a.taskPane.SetSize(tasksWidth, contentHeight)
		a.pomodoroPane.SetSize(timerWidth, contentHeight)
		a.playerPane.SetSize(playerWidth, contentHeight)
	}
}

// View renders the whole screen: overlays first, then the normal layout.
func (a *App) View() string {
	if a.quitting {
		return a.renderGoodbye()
	}
	if a.showWelcome {
		return a.renderWelcome()
	}
	if a.confirmDel != nil {
		return a.renderConfirmDelete()
	}
	if a.showHelp {
		return a.helpOverlay.View()
	}

	var b strings.Builder
	b.WriteString(a.renderTitleBar())
	b.WriteString("\n")

	switch a.layoutMode {
	case LayoutNarrow:
		b.WriteString(a.renderNarrowContent())
	default:
		b.WriteString(a.renderWideContent())
	}
	b.WriteString("\n")
	b.WriteString(a.renderHelpBar())

	return b.String()
}

func (a *App) renderWelcome() string {
	overlayWidth := 60
	if a.width > 0 {
		overlayWidth = min(60, max(20, a.width-4))
	}

	overlayStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(a.styles.ColorPrimary).
		Padding(1, 2).
		Width(overlayWidth)

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(a.styles.ColorPrimary).
		MarginBottom(1)

	bodyStyle := lipgloss.NewStyle().
		Foreground(a.styles.ColorText)

	mutedStyle := lipgloss.NewStyle().
		Foreground(a.styles.ColorTextMuted).
		Italic(true)

	var b strings.Builder
	b.WriteString(titleStyle.Render("Welcome to studydesk"))
	b.WriteString("\n\n")
	b.WriteString(bodyStyle.Render("Tab switches panes. ? opens help.\n"))
	b.WriteString(bodyStyle.Render("Add your first task with 'a',\n"))
	b.WriteString(bodyStyle.Render("then start a focus session with space.\n"))
	b.WriteString("\n")
	b.WriteString(mutedStyle.Render("Press any key to continue"))

	content := overlayStyle.Render(b.String())
	return lipgloss.Place(a.width, a.height, lipgloss.Center, lipgloss.Center, content)
}

func (a *App) renderConfirmDelete() string {
	overlayWidth := 60
	if a.width > 0 {
		overlayWidth = min(60, max(20, a.width-4))
	}

	overlayStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(a.styles.ColorDanger).
		Padding(1, 2).
		Width(overlayWidth)

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(a.styles.ColorDanger).
		MarginBottom(1)

	bodyStyle := lipgloss.NewStyle().
		Foreground(a.styles.ColorText)

	hintStyle := lipgloss.NewStyle().
		Foreground(a.styles.ColorTextMuted)

	var b strings.Builder
	b.WriteString(titleStyle.Render(a.confirmDel.title))
	b.WriteString("\n\n")
	b.WriteString(bodyStyle.Render(a.confirmDel.body))
	b.WriteString("\n\n")
	b.WriteString(hintStyle.Render("[y/enter] delete    [n/esc] cancel"))

	content := overlayStyle.Render(b.String())
	return lipgloss.Place(a.width, a.height, lipgloss.Center, lipgloss.Center, content)
}

func (a *App) renderWideContent() string {
	return lipgloss.JoinHorizontal(lipgloss.Top,
		a.taskPane.View(), " ", a.pomodoroPane.View(), " ", a.playerPane.View())
}

// renderNarrowContent draws the tab bar and the focused pane below it.
func (a *App) renderNarrowContent() string {
	var b strings.Builder
	b.WriteString(a.renderPaneTabs())
	b.WriteString("\n")

	switch a.activePane {
	case PaneTasks:
		b.WriteString(a.taskPane.View())
	case PaneTimer:
		b.WriteString(a.pomodoroPane.View())
	case PanePlayer:
		b.WriteString(a.playerPane.View())
	}

	return b.String()
}

// renderPaneTabs draws the centered tab bar; the active pane's label is
// bracketed, the others muted.
func (a *App) renderPaneTabs() string {
	tabs := []struct {
		id    PaneID
		label string
	}{
		{PaneTasks, "Tasks"},
		{PaneTimer, "Focus"},
		{PanePlayer, "Lofi"},
	}

	activeTabStyle := lipgloss.NewStyle().
		Foreground(a.styles.ColorPrimary).
		Bold(true)
	inactiveTabStyle := lipgloss.NewStyle().
		Foreground(a.styles.ColorTextMuted)

	var parts []string
	for _, tab := range tabs {
		if tab.id == a.activePane {
			parts = append(parts, activeTabStyle.Render("["+tab.label+"]"))
		} else {
			parts = append(parts, inactiveTabStyle.Render(" "+tab.label+" "))
		}
	}

	tabBar := strings.Join(parts, "  ")
	padding := (a.width - lipgloss.Width(tabBar)) / 2
	if padding > 0 {
		tabBar = strings.Repeat(" ", padding) + tabBar
	}
	return tabBar
}

// renderGoodbye shows a short exit message with session summary.
func (a *App) renderGoodbye() string {
	tasksDone, tasksTotal := a.taskPane.Stats()

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString("  Good session!\n")
	b.WriteString("\n")

	if tasksTotal > 0 {
		pct := (tasksDone * 100) / tasksTotal
		b.WriteString(fmt.Sprintf("     Tasks: %d/%d (%d%%)\n", tasksDone, tasksTotal, pct))
		b.WriteString("\n")
	}

	return b.String()
}

// renderTitleBar draws app name, task stats, a live timer indicator, and
// the clock across the top line.
func (a *App) renderTitleBar() string {
	title := a.styles.TitleStyle.Render(" studydesk ")

	tasksDone, tasksTotal := a.taskPane.Stats()
	var stats string
	if tasksTotal > 0 {
		stats = a.styles.StatLabelStyle.Render(fmt.Sprintf("Tasks: %d/%d", tasksDone, tasksTotal))
	}

	var timerStatus string
	engine := a.pomodoroPane.Engine()
	switch engine.State() {
	case pomodoro.StateRunning:
		timerStatus = a.styles.TimerRunningStyle.Render("▶ " + pomodoro.FormatTime(engine.Remaining()))
	case pomodoro.StateBreak:
		timerStatus = a.styles.TimerBreakStyle.Render("☕ " + pomodoro.FormatTime(engine.Remaining()))
	case pomodoro.StatePaused:
		timerStatus = a.styles.TimerPausedStyle.Render("⏸ " + pomodoro.FormatTime(engine.Remaining()))
	}

	date := a.styles.DateStyle.Render(time.Now().Format("Mon Jan 2 · 15:04"))

	used := lipgloss.Width(title) + lipgloss.Width(stats) +
		lipgloss.Width(timerStatus) + lipgloss.Width(date)
	spacerWidth := a.width - used - 6
	if spacerWidth < 2 {
		spacerWidth = 2
	}

	var parts []string
	parts = append(parts, title)
	if stats != "" {
		parts = append(parts, "  "+stats)
	}
	parts = append(parts, strings.Repeat(" ", spacerWidth/2))
	if timerStatus != "" {
		parts = append(parts, timerStatus)
	}
	parts = append(parts, strings.Repeat(" ", spacerWidth-spacerWidth/2), date)

	return strings.Join(parts, "")
}

// renderHelpBar shows the status message when one is active, otherwise
// key hints for the current mode and pane.
func (a *App) renderHelpBar() string {
	if a.status != "" {
		if a.statusErr {
			return a.styles.ErrorStyle.Render(a.status)
		}
		return a.styles.StatusStyle.Render(a.status)
	}

	if a.taskPane.IsEditing() {
		return a.styles.RenderHelp(
			"enter", "save",
			"esc", "cancel",
		)
	}

	switch a.activePane {
	case PaneTasks:
		return a.styles.RenderHelp(
			"a", "add",
			"d", "done",
			"x", "del",
			"f", "filter",
			"tab", "pane",
			"?", "help",
		)
	case PaneTimer:
		if a.pomodoroPane.Engine().Counting() {
			return a.styles.RenderHelp(
				"space", "pause",
				"r", "reset",
				"tab", "pane",
				"?", "help",
			)
		}
		return a.styles.RenderHelp(
			"space", "start",
			"b", "break",
			"+/-", "length",
			"tab", "pane",
			"?", "help",
		)
	case PanePlayer:
		return a.styles.RenderHelp(
			"enter", "select",
			"p", "play",
			"o", "open",
			"+/-", "vol",
			"tab", "pane",
			"?", "help",
		)
	}

	return ""
}

// truncateText shortens text for overlay bodies.
func truncateText(s string, limit int) string {
	if len(s) <= limit {
		return s
	}
	return s[:limit-1] + "…"
}

// SetStatus puts a transient message in the help bar; errors linger a
// little longer.
func (a *App) SetStatus(msg string, isErr bool) {
	a.status = msg
	a.statusErr = isErr
	ttl := 5 * time.Second
	if isErr {
		ttl = 8 * time.Second
	}
	a.statusUntil = time.Now().Add(ttl)
}

// Run starts the Bubble Tea program with the given components.
func Run(kv *storage.Store, manager *tasks.Manager, engine *pomodoro.Engine, pl *player.Player, th theme.Theme, cfg *AppConfig) error {
	app := NewApp(kv, manager, engine, pl, th, cfg)
	p := tea.NewProgram(app, tea.WithAltScreen())
	_, err := p.Run()
	return err
}
