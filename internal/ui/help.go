package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// helpSection is one block of the shortcut listing.
type helpSection struct {
	title   string
	entries [][2]string // key, description
}

// helpSections is the full shortcut listing shown by the overlay.
var helpSections = []helpSection{
	{"Global", [][2]string{
		{"Tab", "Switch pane"},
		{"1 / 2 / 3", "Jump to pane"},
		{"Ctrl+T", "Cycle theme"},
		{"?", "Toggle help"},
		{"q", "Quit"},
	}},
	{"Tasks", [][2]string{
		{"a", "Add task"},
		{"e", "Edit task"},
		{"d / Space", "Toggle done"},
		{"x", "Delete task"},
		{"f", "Cycle filter"},
		{"m", "Move to next group"},
		{"A / X", "Add / delete group"},
		{"j / k", "Navigate up/down"},
	}},
	{"Focus Timer", [][2]string{
		{"Space", "Start / pause"},
		{"r", "Reset"},
		{"b", "Start break"},
		{"+ / -", "Focus length ±5m"},
		{"{ / }", "Break length ±1m"},
		{"s / B", "Toggle sound / auto-break"},
	}},
	{"Lofi Player", [][2]string{
		{"Enter", "Select stream"},
		{"p", "Play / pause"},
		{"o", "Open in browser"},
		{"+ / -", "Volume up/down"},
	}},
	{"Input Mode", [][2]string{
		{"Enter", "Save"},
		{"Esc", "Cancel"},
	}},
}

// HelpOverlay renders the keyboard shortcut screen.
type HelpOverlay struct {
	width  int
	height int
	styles *Styles
}

func NewHelpOverlay(styles *Styles) *HelpOverlay {
	return &HelpOverlay{styles: styles}
}

// SetSize sets the overlay dimensions
func (h *HelpOverlay) SetSize(width, height int) {
	h.width = width
	h.height = height
}

// View renders the overlay centered in the terminal.
func (h *HelpOverlay) View() string {
	overlayWidth := 62
	if h.width > 0 {
		overlayWidth = min(62, max(20, h.width-4))
	}

	overlayStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(h.styles.ColorPrimary).
		Padding(1, 2).
		Width(overlayWidth)

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(h.styles.ColorPrimary).
		MarginBottom(1)

	sectionStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(h.styles.ColorAccent).
		MarginTop(1)

	keyStyle := lipgloss.NewStyle().
		Foreground(h.styles.ColorWarning).
		Width(12)

	descStyle := lipgloss.NewStyle().
		Foreground(h.styles.ColorText)

	mutedStyle := lipgloss.NewStyle().
		Foreground(h.styles.ColorTextMuted).
		Italic(true)

	var b strings.Builder
	b.WriteString(titleStyle.Render("📖 studydesk - Keyboard Shortcuts"))
	b.WriteString("\n")

	for _, section := range helpSections {
		b.WriteString("\n")
		b.WriteString(sectionStyle.Render(section.title))
		b.WriteString("\n")
		for _, e := range section.entries {
			b.WriteString(keyStyle.Render(e[0]) + descStyle.Render(e[1]) + "\n")
		}
	}

	b.WriteString("\n")
	b.WriteString(mutedStyle.Render("Press ? or Esc to close"))

	return RenderCentered(overlayStyle.Render(b.String()), h.width, h.height)
}

// RenderCentered centers content in the terminal
func RenderCentered(content string, width, height int) string {
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, content)
}
