package ui

import (
	"studydesk/internal/theme"

	"github.com/charmbracelet/lipgloss"
)

// Styles holds all application styles, initialized from the active theme.
type Styles struct {
	// Colors
	ColorPrimary   lipgloss.Color
	ColorAccent    lipgloss.Color
	ColorMuted     lipgloss.Color
	ColorDanger    lipgloss.Color
	ColorWarning   lipgloss.Color
	ColorSuccess   lipgloss.Color
	ColorBg        lipgloss.Color
	ColorBgLight   lipgloss.Color
	ColorText      lipgloss.Color
	ColorTextMuted lipgloss.Color

	// Component styles
	TitleStyle       lipgloss.Style
	DateStyle        lipgloss.Style
	PaneStyle        lipgloss.Style
	PaneFocusedStyle lipgloss.Style
	PaneTitleStyle   lipgloss.Style

	TaskDoneStyle       lipgloss.Style
	TaskPendingStyle    lipgloss.Style
	TaskSelectedStyle   lipgloss.Style
	TaskCheckboxDone    string
	TaskCheckboxPending string

	FilterStyle lipgloss.Style

	TimerRunningStyle lipgloss.Style
	TimerPausedStyle  lipgloss.Style
	TimerIdleStyle    lipgloss.Style
	TimerBreakStyle   lipgloss.Style
	TimerFlashStyle   lipgloss.Style

	ProgressFilledStyle lipgloss.Style
	ProgressEmptyStyle  lipgloss.Style

	PlayerActiveStyle   lipgloss.Style
	PlayerSelectedStyle lipgloss.Style
	PlayerStoppedStyle  lipgloss.Style

	HelpStyle    lipgloss.Style
	HelpKeyStyle lipgloss.Style

	StatusStyle lipgloss.Style
	ErrorStyle  lipgloss.Style

	InputPromptStyle lipgloss.Style
	InputTextStyle   lipgloss.Style

	StatLabelStyle lipgloss.Style
	StatValueStyle lipgloss.Style
}

// NewStyles creates a Styles instance from the given theme.
func NewStyles(th theme.Theme) *Styles {
	s := &Styles{}

	p := th.Palette
	s.ColorPrimary = lipgloss.Color(p.Primary)
	s.ColorAccent = lipgloss.Color(p.Accent)
	s.ColorMuted = lipgloss.Color(p.Muted)
	s.ColorDanger = lipgloss.Color(p.Danger)
	s.ColorWarning = lipgloss.Color(p.Warning)
	s.ColorSuccess = lipgloss.Color(p.Success)
	s.ColorBg = lipgloss.Color(p.Bg)
	s.ColorBgLight = lipgloss.Color(p.BgLight)
	s.ColorText = lipgloss.Color(p.Text)
	s.ColorTextMuted = lipgloss.Color(p.TextMuted)

	s.initComponentStyles()

	return s
}

// initComponentStyles initializes all component styles based on the color palette.
func (s *Styles) initComponentStyles() {
	// Title bar
	s.TitleStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(s.ColorText).
		Background(s.ColorPrimary).
		Padding(0, 1)

	// Date in title bar
	s.DateStyle = lipgloss.NewStyle().
		Foreground(s.ColorTextMuted)

	// Pane styles
	s.PaneStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(s.ColorMuted).
		Padding(0, 1)

	s.PaneFocusedStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(s.ColorPrimary).
		Padding(0, 1)

	s.PaneTitleStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(s.ColorPrimary).
		MarginBottom(1)

	// Task styles
	s.TaskDoneStyle = lipgloss.NewStyle().
		Foreground(s.ColorTextMuted).
		Strikethrough(true)

	s.TaskPendingStyle = lipgloss.NewStyle().
		Foreground(s.ColorText)

	s.TaskSelectedStyle = lipgloss.NewStyle().
		Background(s.ColorBgLight).
		Foreground(s.ColorText).
		Bold(true)

	s.TaskCheckboxDone = lipgloss.NewStyle().Foreground(s.ColorSuccess).Render("[✓]")
	s.TaskCheckboxPending = lipgloss.NewStyle().Foreground(s.ColorMuted).Render("[ ]")

	// Active filter indicator
	s.FilterStyle = lipgloss.NewStyle().
		Foreground(s.ColorAccent).
		Bold(true)

	// Timer styles
	s.TimerRunningStyle = lipgloss.NewStyle().
		Foreground(s.ColorSuccess).
		Bold(true)

	s.TimerPausedStyle = lipgloss.NewStyle().
		Foreground(s.ColorWarning).
		Bold(true)

	s.TimerIdleStyle = lipgloss.NewStyle().
		Foreground(s.ColorMuted)

	s.TimerBreakStyle = lipgloss.NewStyle().
		Foreground(s.ColorAccent).
		Bold(true)

	s.TimerFlashStyle = lipgloss.NewStyle().
		Foreground(s.ColorBg).
		Background(s.ColorSuccess).
		Bold(true).
		Padding(0, 1)

	// Progress bar
	s.ProgressFilledStyle = lipgloss.NewStyle().Foreground(s.ColorPrimary)
	s.ProgressEmptyStyle = lipgloss.NewStyle().Foreground(s.ColorBgLight)

	// Player styles
	s.PlayerActiveStyle = lipgloss.NewStyle().
		Foreground(s.ColorSuccess).
		Bold(true)

	s.PlayerSelectedStyle = lipgloss.NewStyle().
		Background(s.ColorBgLight).
		Foreground(s.ColorText).
		Bold(true)

	s.PlayerStoppedStyle = lipgloss.NewStyle().
		Foreground(s.ColorMuted)

	// Help bar
	s.HelpStyle = lipgloss.NewStyle().
		Foreground(s.ColorTextMuted)

	s.HelpKeyStyle = lipgloss.NewStyle().
		Foreground(s.ColorAccent).
		Bold(true)

	// Status messages
	s.StatusStyle = lipgloss.NewStyle().
		Foreground(s.ColorSuccess).
		Italic(true)

	s.ErrorStyle = lipgloss.NewStyle().
		Foreground(s.ColorDanger).
		Bold(true)

	// Input
	s.InputPromptStyle = lipgloss.NewStyle().
		Foreground(s.ColorPrimary).
		Bold(true)

	s.InputTextStyle = lipgloss.NewStyle().
		Foreground(s.ColorText)

	// Summary stats
	s.StatLabelStyle = lipgloss.NewStyle().
		Foreground(s.ColorTextMuted)

	s.StatValueStyle = lipgloss.NewStyle().
		Foreground(s.ColorText).
		Bold(true)
}

// GroupDot renders a group color marker in the group's own color.
func (s *Styles) GroupDot(hex string) string {
	if hex == "" {
		return " "
	}
	return lipgloss.NewStyle().Foreground(lipgloss.Color(hex)).Render("●")
}

// RenderHelp renders help text with key bindings using the given styles.
func (s *Styles) RenderHelp(keys ...string) string {
	var result string
	for i := 0; i < len(keys); i += 2 {
		if i > 0 {
			result += "  "
		}
		key := keys[i]
		desc := keys[i+1]
		result += s.HelpKeyStyle.Render("["+key+"]") + " " + s.HelpStyle.Render(desc)
	}
	return result
}
