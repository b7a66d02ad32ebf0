// Package ui provides the terminal user interface for studydesk.
package ui

import (
	"fmt"
	"strings"

	"studydesk/internal/config"
	"studydesk/internal/player"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/mattn/go-runewidth"
)

// volumeStep is the increment for volume adjustments.
const volumeStep = 5

// PlayerPane handles the lofi stream picker display and interactions.
type PlayerPane struct {
	player  *player.Player
	cursor  int
	focused bool
	width   int
	height  int
	styles  *Styles

	// Key bindings
	keys PlayerKeyMap
}

// NewPlayerPane creates a new player pane.
func NewPlayerPane(pl *player.Player, styles *Styles) *PlayerPane {
	return NewPlayerPaneWithKeys(pl, styles, &config.KeysConfig{})
}

// NewPlayerPaneWithKeys creates a new player pane with custom key bindings.
func NewPlayerPaneWithKeys(pl *player.Player, styles *Styles, keyCfg *config.KeysConfig) *PlayerPane {
	if keyCfg == nil {
		keyCfg = &config.KeysConfig{}
	}
	return &PlayerPane{
		player: pl,
		cursor: pl.CurrentIndex(),
		styles: styles,
		keys:   NewPlayerKeyMap(keyCfg),
	}
}

// SetSize sets the pane dimensions.
func (p *PlayerPane) SetSize(width, height int) {
	p.width = width
	p.height = height
}

// SetFocused sets whether this pane is focused.
func (p *PlayerPane) SetFocused(focused bool) {
	p.focused = focused
}

// IsFocused returns whether this pane is focused.
func (p *PlayerPane) IsFocused() bool {
	return p.focused
}

// Update handles messages for the player pane.
func (p *PlayerPane) Update(msg tea.Msg) tea.Cmd {
	if !p.focused {
		return nil
	}

	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return nil
	}

	streams := p.player.Streams()

	switch {
	case key.Matches(keyMsg, p.keys.Down):
		p.cursor = min(p.cursor+1, len(streams)-1)

	case key.Matches(keyMsg, p.keys.Up):
		p.cursor = max(p.cursor-1, 0)

	case key.Matches(keyMsg, p.keys.Select):
		p.player.Select(p.cursor)

	case key.Matches(keyMsg, p.keys.PlayPause):
		p.player.TogglePlay()

	case key.Matches(keyMsg, p.keys.Open):
		return openStreamCmd(p.player.Current())

	case key.Matches(keyMsg, p.keys.VolumeUp):
		p.player.AdjustVolume(volumeStep)

	case key.Matches(keyMsg, p.keys.VolumeDown):
		p.player.AdjustVolume(-volumeStep)
	}

	return nil
}

// View renders the player pane.
func (p *PlayerPane) View() string {
	var b strings.Builder

	// Title
	title := p.styles.PaneTitleStyle.Render("🎧 LOFI")
	b.WriteString(title)
	b.WriteString("\n")

	// Separator
	sepWidth := p.width - 4
	if sepWidth < 10 {
		sepWidth = 30
	}
	b.WriteString(p.styles.StatLabelStyle.Render(strings.Repeat("─", sepWidth)))
	b.WriteString("\n\n")

	// Play state
	if p.player.Playing() {
		b.WriteString("  " + p.styles.PlayerActiveStyle.Render("▶ "+p.player.Current().Name))
	} else {
		b.WriteString("  " + p.styles.PlayerStoppedStyle.Render("■ Paused"))
	}
	b.WriteString("\n\n")

	// Stream list
	current := p.player.CurrentIndex()
	for i, s := range p.player.Streams() {
		marker := "  "
		if i == current {
			marker = "♪ "
		}

		nameWidth := p.width - 4 - 4
		if nameWidth < 5 {
			nameWidth = 5
		}
		name := runewidth.Truncate(s.Name, nameWidth, "..")

		var line string
		switch {
		case i == p.cursor && p.focused:
			line = p.styles.PlayerSelectedStyle.Render(" " + marker + name + " ")
		case i == current:
			line = " " + p.styles.PlayerActiveStyle.Render(marker+name)
		default:
			line = " " + marker + p.styles.TaskPendingStyle.Render(name)
		}
		b.WriteString(line)
		b.WriteString("\n")
	}

	// Volume bar
	b.WriteString("\n")
	b.WriteString("  " + p.styles.StatLabelStyle.Render("Vol ") + p.renderVolume(sepWidth-8) +
		p.styles.StatValueStyle.Render(fmt.Sprintf(" %d", p.player.Volume())))
	b.WriteString("\n")

	// Apply pane style
	content := b.String()
	style := p.styles.PaneStyle
	if p.focused {
		style = p.styles.PaneFocusedStyle
	}

	return style.Width(p.width).Height(p.height).Render(content)
}

// renderVolume renders the volume as a fixed-width bar.
func (p *PlayerPane) renderVolume(width int) string {
	if width < 5 {
		width = 5
	}
	filled := p.player.Volume() * width / 100
	if filled > width {
		filled = width
	}
	return p.styles.ProgressFilledStyle.Render(strings.Repeat("█", filled)) +
		p.styles.ProgressEmptyStyle.Render(strings.Repeat("░", width-filled))
}
