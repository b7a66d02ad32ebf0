// Package ui provides the terminal user interface for studydesk.
// This file defines key bindings using the Bubble Tea key package for
// type-safe key matching, help text generation, and customization.
package ui

import (
	"strings"

	"studydesk/internal/config"

	"github.com/charmbracelet/bubbles/key"
)

// parseKeys splits a comma-separated string into individual keys.
// If the input is empty, returns the default keys.
func parseKeys(customKeys string, defaultKeys ...string) []string {
	if customKeys == "" {
		return defaultKeys
	}
	keys := strings.Split(customKeys, ",")
	result := make([]string, 0, len(keys))
	for _, k := range keys {
		trimmed := strings.TrimSpace(k)
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}

// binding builds one key.Binding from a config override (comma-separated)
// with fall-back defaults and a fixed help entry.
func binding(custom string, defaults []string, helpKey, helpDesc string) key.Binding {
	return key.NewBinding(
		key.WithKeys(parseKeys(custom, defaults...)...),
		key.WithHelp(helpKey, helpDesc),
	)
}

func orEmpty(cfg *config.KeysConfig) *config.KeysConfig {
	if cfg == nil {
		return &config.KeysConfig{}
	}
	return cfg
}

// GlobalKeyMap defines keys available throughout the application.
type GlobalKeyMap struct {
	Quit       key.Binding
	Help       key.Binding
	NextPane   key.Binding
	Pane1      key.Binding
	Pane2      key.Binding
	Pane3      key.Binding
	CycleTheme key.Binding
}

// DefaultGlobalKeyMap returns the default global key bindings.
func DefaultGlobalKeyMap() GlobalKeyMap {
	return NewGlobalKeyMap(&config.KeysConfig{})
}

// NewGlobalKeyMap creates global key bindings from config.
func NewGlobalKeyMap(cfg *config.KeysConfig) GlobalKeyMap {
	cfg = orEmpty(cfg)
	return GlobalKeyMap{
		Quit:       binding(cfg.Quit, []string{"q", "ctrl+c"}, "q", "quit"),
		Help:       binding(cfg.Help, []string{"?"}, "?", "help"),
		NextPane:   binding(cfg.NextPane, []string{"tab"}, "tab", "next pane"),
		Pane1:      binding(cfg.Pane1, []string{"1"}, "1", "tasks"),
		Pane2:      binding(cfg.Pane2, []string{"2"}, "2", "timer"),
		Pane3:      binding(cfg.Pane3, []string{"3"}, "3", "player"),
		CycleTheme: binding(cfg.CycleTheme, []string{"ctrl+t"}, "ctrl+t", "theme"),
	}
}

// NavigationKeyMap defines keys for list navigation, shared by the
// list-based panes.
type NavigationKeyMap struct {
	Up     key.Binding
	Down   key.Binding
	Top    key.Binding
	Bottom key.Binding
}

// DefaultNavigationKeyMap returns the default navigation key bindings.
func DefaultNavigationKeyMap() NavigationKeyMap {
	return NewNavigationKeyMap(&config.KeysConfig{})
}

// NewNavigationKeyMap creates navigation key bindings from config.
func NewNavigationKeyMap(cfg *config.KeysConfig) NavigationKeyMap {
	cfg = orEmpty(cfg)
	return NavigationKeyMap{
		Up:     binding(cfg.Up, []string{"k", "up"}, "k/↑", "up"),
		Down:   binding(cfg.Down, []string{"j", "down"}, "j/↓", "down"),
		Top:    binding(cfg.Top, []string{"g"}, "g", "top"),
		Bottom: binding(cfg.Bottom, []string{"G"}, "G", "bottom"),
	}
}

// InputKeyMap defines keys for text input mode.
type InputKeyMap struct {
	Confirm key.Binding
	Cancel  key.Binding
}

// DefaultInputKeyMap returns the default input key bindings.
func DefaultInputKeyMap() InputKeyMap {
	return NewInputKeyMap(&config.KeysConfig{})
}

// NewInputKeyMap creates input key bindings from config.
func NewInputKeyMap(cfg *config.KeysConfig) InputKeyMap {
	cfg = orEmpty(cfg)
	return InputKeyMap{
		Confirm: binding(cfg.Confirm, []string{"enter"}, "enter", "confirm"),
		Cancel:  binding(cfg.Cancel, []string{"esc"}, "esc", "cancel"),
	}
}

// TaskKeyMap defines keys for the task pane.
type TaskKeyMap struct {
	Add         key.Binding
	Edit        key.Binding
	Toggle      key.Binding
	Delete      key.Binding
	CycleFilter key.Binding
	AddGroup    key.Binding
	DeleteGroup key.Binding
	MoveToGroup key.Binding
	NavigationKeyMap
}

// DefaultTaskKeyMap returns the default task pane key bindings.
func DefaultTaskKeyMap() TaskKeyMap {
	return NewTaskKeyMap(&config.KeysConfig{})
}

// NewTaskKeyMap creates task key bindings from config.
func NewTaskKeyMap(cfg *config.KeysConfig) TaskKeyMap {
	cfg = orEmpty(cfg)
	return TaskKeyMap{
		Add:              binding(cfg.AddTask, []string{"a"}, "a", "add task"),
		Edit:             binding(cfg.EditTask, []string{"e"}, "e", "edit"),
		Toggle:           binding(cfg.ToggleTask, []string{"d", "enter", " "}, "d/space", "toggle done"),
		Delete:           binding(cfg.DeleteTask, []string{"x"}, "x", "delete"),
		CycleFilter:      binding(cfg.CycleFilter, []string{"f"}, "f", "filter"),
		AddGroup:         binding(cfg.AddGroup, []string{"A"}, "A", "add group"),
		DeleteGroup:      binding(cfg.DeleteGroup, []string{"X"}, "X", "delete group"),
		MoveToGroup:      binding(cfg.MoveToGroup, []string{"m"}, "m", "move to group"),
		NavigationKeyMap: NewNavigationKeyMap(cfg),
	}
}

// ShortHelp returns the short help for the task pane (implements help.KeyMap).
func (k TaskKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Add, k.Toggle, k.Delete, k.CycleFilter, k.Down}
}

// FullHelp returns the full help for the task pane (implements help.KeyMap).
func (k TaskKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Add, k.Edit, k.Toggle, k.Delete},
		{k.CycleFilter, k.AddGroup, k.DeleteGroup, k.MoveToGroup},
		{k.Up, k.Down, k.Top, k.Bottom},
	}
}

// PomodoroKeyMap defines keys for the pomodoro pane.
type PomodoroKeyMap struct {
	StartPause    key.Binding
	Reset         key.Binding
	Break         key.Binding
	FocusUp       key.Binding
	FocusDown     key.Binding
	BreakUp       key.Binding
	BreakDown     key.Binding
	ToggleSound   key.Binding
	ToggleAutoBrk key.Binding
}

// DefaultPomodoroKeyMap returns the default pomodoro pane key bindings.
func DefaultPomodoroKeyMap() PomodoroKeyMap {
	return NewPomodoroKeyMap(&config.KeysConfig{})
}

// NewPomodoroKeyMap creates pomodoro key bindings from config.
func NewPomodoroKeyMap(cfg *config.KeysConfig) PomodoroKeyMap {
	cfg = orEmpty(cfg)
	return PomodoroKeyMap{
		StartPause:    binding(cfg.StartPause, []string{" ", "enter"}, "space", "start/pause"),
		Reset:         binding(cfg.ResetTimer, []string{"r"}, "r", "reset"),
		Break:         binding(cfg.StartBreak, []string{"b"}, "b", "break"),
		FocusUp:       binding(cfg.FocusUp, []string{"+", "="}, "+", "focus +5m"),
		FocusDown:     binding(cfg.FocusDown, []string{"-", "_"}, "-", "focus -5m"),
		BreakUp:       binding(cfg.BreakUp, []string{"}"}, "}", "break +1m"),
		BreakDown:     binding(cfg.BreakDown, []string{"{"}, "{", "break -1m"),
		ToggleSound:   binding(cfg.ToggleSound, []string{"s"}, "s", "sound"),
		ToggleAutoBrk: binding(cfg.ToggleAutoBrk, []string{"B"}, "B", "auto-break"),
	}
}

// ShortHelp returns the short help for the pomodoro pane (implements help.KeyMap).
func (k PomodoroKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.StartPause, k.Reset, k.Break}
}

// FullHelp returns the full help for the pomodoro pane (implements help.KeyMap).
func (k PomodoroKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.StartPause, k.Reset, k.Break},
		{k.FocusUp, k.FocusDown, k.BreakUp, k.BreakDown},
		{k.ToggleSound, k.ToggleAutoBrk},
	}
}

// PlayerKeyMap defines keys for the player pane.
type PlayerKeyMap struct {
	Select     key.Binding
	PlayPause  key.Binding
	Open       key.Binding
	VolumeUp   key.Binding
	VolumeDown key.Binding
	NavigationKeyMap
}

// DefaultPlayerKeyMap returns the default player pane key bindings.
func DefaultPlayerKeyMap() PlayerKeyMap {
	return NewPlayerKeyMap(&config.KeysConfig{})
}

// NewPlayerKeyMap creates player key bindings from config.
func NewPlayerKeyMap(cfg *config.KeysConfig) PlayerKeyMap {
	cfg = orEmpty(cfg)
	return PlayerKeyMap{
		Select:           binding(cfg.SelectStream, []string{"enter"}, "enter", "select stream"),
		PlayPause:        binding(cfg.PlayPause, []string{"p", " "}, "p", "play/pause"),
		Open:             binding(cfg.OpenStream, []string{"o"}, "o", "open in browser"),
		VolumeUp:         binding(cfg.VolumeUp, []string{"+", "="}, "+", "volume up"),
		VolumeDown:       binding(cfg.VolumeDown, []string{"-", "_"}, "-", "volume down"),
		NavigationKeyMap: NewNavigationKeyMap(cfg),
	}
}

// ShortHelp returns the short help for the player pane (implements help.KeyMap).
func (k PlayerKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Select, k.PlayPause, k.Open}
}

// FullHelp returns the full help for the player pane (implements help.KeyMap).
func (k PlayerKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Select, k.PlayPause, k.Open},
		{k.VolumeUp, k.VolumeDown},
		{k.Up, k.Down},
	}
}

// HelpKeyMap defines keys for the help overlay.
type HelpKeyMap struct {
	Close key.Binding
}

// DefaultHelpKeyMap returns the default help overlay key bindings.
func DefaultHelpKeyMap() HelpKeyMap {
	return HelpKeyMap{
		Close: key.NewBinding(
			key.WithKeys("?", "esc", "q", "enter", " "),
			key.WithHelp("any key", "close"),
		),
	}
}
