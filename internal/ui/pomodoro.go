// Package ui provides the terminal user interface for studydesk.
package ui

import (
	"fmt"
	"strings"

	"studydesk/internal/config"
	"studydesk/internal/pomodoro"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// focusStepMinutes is the increment for focus duration adjustments.
const focusStepMinutes = 5

// PomodoroPane handles the focus timer display and interactions.
type PomodoroPane struct {
	engine  *pomodoro.Engine
	focused bool
	width   int
	height  int
	styles  *Styles

	// Key bindings
	keys PomodoroKeyMap
}

// NewPomodoroPane creates a new pomodoro pane.
func NewPomodoroPane(engine *pomodoro.Engine, styles *Styles) *PomodoroPane {
	return NewPomodoroPaneWithKeys(engine, styles, &config.KeysConfig{})
}

// NewPomodoroPaneWithKeys creates a new pomodoro pane with custom key bindings.
func NewPomodoroPaneWithKeys(engine *pomodoro.Engine, styles *Styles, keyCfg *config.KeysConfig) *PomodoroPane {
	if keyCfg == nil {
		keyCfg = &config.KeysConfig{}
	}
	return &PomodoroPane{
		engine: engine,
		styles: styles,
		keys:   NewPomodoroKeyMap(keyCfg),
	}
}

// SetSize sets the pane dimensions.
func (p *PomodoroPane) SetSize(width, height int) {
	p.width = width
	p.height = height
}

// SetFocused sets whether this pane is focused.
func (p *PomodoroPane) SetFocused(focused bool) {
	p.focused = focused
}

// IsFocused returns whether this pane is focused.
func (p *PomodoroPane) IsFocused() bool {
	return p.focused
}

// Engine exposes the underlying timer engine for the title bar.
func (p *PomodoroPane) Engine() *pomodoro.Engine {
	return p.engine
}

// startCountdown arms the tick chain for the engine's current epoch.
func (p *PomodoroPane) startCountdown() tea.Cmd {
	return pomodoroTickCmd(p.engine.Epoch())
}

// Update handles messages for the pomodoro pane. Tick messages are routed
// here regardless of focus.
func (p *PomodoroPane) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case pomodoroTickMsg:
		// A tick scheduled before a pause/reset/start carries a stale
		// epoch; dropping it disarms the old chain.
		if msg.epoch != p.engine.Epoch() {
			return nil
		}

		flashed := p.engine.JustCompleted()
		p.engine.Tick()

		var cmds []tea.Cmd
		if p.engine.JustCompleted() && !flashed {
			cmds = append(cmds, clearFlashCmd(pomodoro.FlashDuration))
		}
		if p.engine.Counting() {
			cmds = append(cmds, p.startCountdown())
		}
		return tea.Batch(cmds...)

	case flashClearMsg:
		p.engine.ClearJustCompleted()
		return nil
	}

	if !p.focused {
		return nil
	}

	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return nil
	}

	switch {
	case key.Matches(keyMsg, p.keys.StartPause):
		if p.engine.Counting() {
			p.engine.Pause()
			return nil
		}
		p.engine.Start()
		return p.startCountdown()

	case key.Matches(keyMsg, p.keys.Reset):
		p.engine.Reset()
		return nil

	case key.Matches(keyMsg, p.keys.Break):
		p.engine.StartBreak()
		return p.startCountdown()

	case key.Matches(keyMsg, p.keys.FocusUp):
		return p.adjustFocus(focusStepMinutes)

	case key.Matches(keyMsg, p.keys.FocusDown):
		return p.adjustFocus(-focusStepMinutes)

	case key.Matches(keyMsg, p.keys.BreakUp):
		return p.adjustBreak(1)

	case key.Matches(keyMsg, p.keys.BreakDown):
		return p.adjustBreak(-1)

	case key.Matches(keyMsg, p.keys.ToggleSound):
		enabled := !p.engine.Config().SoundEnabled
		p.engine.UpdateConfig(pomodoro.ConfigPatch{SoundEnabled: &enabled})
		return nil

	case key.Matches(keyMsg, p.keys.ToggleAutoBrk):
		enabled := !p.engine.Config().AutoStartBreak
		p.engine.UpdateConfig(pomodoro.ConfigPatch{AutoStartBreak: &enabled})
		return nil
	}

	return nil
}

func (p *PomodoroPane) adjustFocus(delta int) tea.Cmd {
	minutes := p.engine.Config().FocusDuration + delta
	p.engine.UpdateConfig(pomodoro.ConfigPatch{FocusDuration: &minutes})
	return nil
}

func (p *PomodoroPane) adjustBreak(delta int) tea.Cmd {
	minutes := p.engine.Config().BreakDuration + delta
	p.engine.UpdateConfig(pomodoro.ConfigPatch{BreakDuration: &minutes})
	return nil
}

// View renders the pomodoro pane.
func (p *PomodoroPane) View() string {
	var b strings.Builder

	// Title
	title := p.styles.PaneTitleStyle.Render("🍅 FOCUS")
	b.WriteString(title)
	b.WriteString("\n")

	// Separator
	sepWidth := p.width - 4
	if sepWidth < 10 {
		sepWidth = 30
	}
	b.WriteString(p.styles.StatLabelStyle.Render(strings.Repeat("─", sepWidth)))
	b.WriteString("\n\n")

	// State line
	b.WriteString("  " + p.renderState())
	b.WriteString("\n\n")

	// Remaining time, big
	clock := pomodoro.FormatTime(p.engine.Remaining())
	b.WriteString("    " + p.clockStyle().Render(clock))
	b.WriteString("\n\n")

	// Progress bar
	b.WriteString("  " + p.renderProgress(sepWidth-2))
	b.WriteString("\n\n")

	// Settings summary
	cfg := p.engine.Config()
	b.WriteString("  " + p.styles.StatLabelStyle.Render("Focus: ") +
		p.styles.StatValueStyle.Render(fmt.Sprintf("%dm", cfg.FocusDuration)) +
		p.styles.StatLabelStyle.Render("  Break: ") +
		p.styles.StatValueStyle.Render(fmt.Sprintf("%dm", cfg.BreakDuration)))
	b.WriteString("\n")
	b.WriteString("  " + p.styles.StatLabelStyle.Render("Sound: ") +
		p.styles.StatValueStyle.Render(onOff(cfg.SoundEnabled)) +
		p.styles.StatLabelStyle.Render("  Auto-break: ") +
		p.styles.StatValueStyle.Render(onOff(cfg.AutoStartBreak)))
	b.WriteString("\n")

	// Completion flash
	if p.engine.JustCompleted() {
		b.WriteString("\n")
		b.WriteString("  " + p.styles.TimerFlashStyle.Render("Session complete!"))
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

// renderState renders the state indicator line.
func (p *PomodoroPane) renderState() string {
	switch p.engine.State() {
	case pomodoro.StateRunning:
		return p.styles.TimerRunningStyle.Render("▶ Focusing")
	case pomodoro.StatePaused:
		return p.styles.TimerPausedStyle.Render("⏸ Paused")
	case pomodoro.StateBreak:
		return p.styles.TimerBreakStyle.Render("☕ On a break")
	default:
		return p.styles.TimerIdleStyle.Render("■ Ready")
	}
}

// clockStyle picks the style for the countdown based on the state.
func (p *PomodoroPane) clockStyle() lipgloss.Style {
	switch p.engine.State() {
	case pomodoro.StateRunning:
		return p.styles.TimerRunningStyle
	case pomodoro.StatePaused:
		return p.styles.TimerPausedStyle
	case pomodoro.StateBreak:
		return p.styles.TimerBreakStyle
	default:
		return p.styles.StatValueStyle
	}
}

// renderProgress renders a fixed-width progress bar for the current phase.
func (p *PomodoroPane) renderProgress(width int) string {
	if width < 10 {
		width = 10
	}
	filled := int(p.engine.Progress() / 100 * float64(width))
	if filled > width {
		filled = width
	}
	if filled < 0 {
		filled = 0
	}
	return p.styles.ProgressFilledStyle.Render(strings.Repeat("█", filled)) +
		p.styles.ProgressEmptyStyle.Render(strings.Repeat("░", width-filled))
}

func onOff(v bool) string {
	if v {
		return "on"
	}
	return "off"
}
