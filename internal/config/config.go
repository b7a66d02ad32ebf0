// Package config handles configuration loading and defaults for studydesk.
// Configuration is loaded from XDG-compliant paths (typically ~/.config/studydesk/config.yaml).
package config

import (
	"os"
	"path/filepath"
	"strings"

	"studydesk/internal/fsutil"

	"gopkg.in/yaml.v3"
)

// Config is the user-facing application configuration.
type Config struct {
	// DataDir overrides where data files live (default ~/.studydesk)
	DataDir string `yaml:"data_dir,omitempty"`

	Keys          KeysConfig         `yaml:"keys,omitempty"`
	UX            UXConfig           `yaml:"ux,omitempty"`
	Notifications NotificationConfig `yaml:"notifications,omitempty"`
}

// NotificationConfig toggles desktop notifications.
type NotificationConfig struct {
	Enabled bool `yaml:"enabled,omitempty"`
}

// KeysConfig overrides keyboard shortcuts. Each field takes a
// comma-separated binding list, e.g. "q,ctrl+c" or "j,down"; an empty
// field keeps the built-in default.
type KeysConfig struct {
	// Global keys
	Quit       string `yaml:"quit,omitempty"`        // default: "q,ctrl+c"
	Help       string `yaml:"help,omitempty"`        // default: "?"
	NextPane   string `yaml:"next_pane,omitempty"`   // default: "tab"
	Pane1      string `yaml:"pane_1,omitempty"`      // default: "1"
	Pane2      string `yaml:"pane_2,omitempty"`      // default: "2"
	Pane3      string `yaml:"pane_3,omitempty"`      // default: "3"
	CycleTheme string `yaml:"cycle_theme,omitempty"` // default: "ctrl+t"

	// Navigation keys
	Up     string `yaml:"up,omitempty"`     // default: "k,up"
	Down   string `yaml:"down,omitempty"`   // default: "j,down"
	Top    string `yaml:"top,omitempty"`    // default: "g"
	Bottom string `yaml:"bottom,omitempty"` // default: "G"

	// Task keys
	AddTask     string `yaml:"add_task,omitempty"`     // default: "a"
	EditTask    string `yaml:"edit_task,omitempty"`    // default: "e"
	ToggleTask  string `yaml:"toggle_task,omitempty"`  // default: "d,enter,space"
	DeleteTask  string `yaml:"delete_task,omitempty"`  // default: "x"
	CycleFilter string `yaml:"cycle_filter,omitempty"` // default: "f"
	AddGroup    string `yaml:"add_group,omitempty"`    // default: "A"
	DeleteGroup string `yaml:"delete_group,omitempty"` // default: "X"
	MoveToGroup string `yaml:"move_to_group,omitempty"` // default: "m"

	// Timer keys
	StartPause     string `yaml:"start_pause,omitempty"`      // default: "space,enter"
	ResetTimer     string `yaml:"reset_timer,omitempty"`      // default: "r"
	StartBreak     string `yaml:"start_break,omitempty"`      // default: "b"
	FocusUp        string `yaml:"focus_up,omitempty"`         // default: "+,="
	FocusDown      string `yaml:"focus_down,omitempty"`       // default: "-,_"
	BreakUp        string `yaml:"break_up,omitempty"`         // default: "}"
	BreakDown      string `yaml:"break_down,omitempty"`       // default: "{"
	ToggleSound    string `yaml:"toggle_sound,omitempty"`     // default: "s"
	ToggleAutoBrk  string `yaml:"toggle_auto_break,omitempty"` // default: "B"

	// Player keys
	SelectStream string `yaml:"select_stream,omitempty"` // default: "enter"
	PlayPause    string `yaml:"play_pause,omitempty"`    // default: "p"
	OpenStream   string `yaml:"open_stream,omitempty"`   // default: "o"
	VolumeUp     string `yaml:"volume_up,omitempty"`     // default: "+,="
	VolumeDown   string `yaml:"volume_down,omitempty"`   // default: "-,_"

	// Input keys
	Confirm string `yaml:"confirm,omitempty"` // default: "enter"
	Cancel  string `yaml:"cancel,omitempty"`  // default: "esc"
}

// UXConfig tunes interface behavior.
type UXConfig struct {
	// ConfirmDeletions asks before deleting tasks or groups
	ConfirmDeletions bool `yaml:"confirm_deletions,omitempty"` // default: true

	// ShowOnboarding shows the welcome screen on first run
	ShowOnboarding bool `yaml:"show_onboarding,omitempty"` // default: true

	// NarrowLayoutThreshold is the width below which panes stack
	NarrowLayoutThreshold int `yaml:"narrow_layout_threshold,omitempty"` // default: 90
}

// Default returns the built-in configuration. Key fields stay empty: an
// empty binding string means "use the hardcoded default".
func Default() *Config {
	return &Config{
		DataDir: defaultDataDir(),
		UX: UXConfig{
			ConfirmDeletions:      true,
			ShowOnboarding:        true,
			NarrowLayoutThreshold: 90,
		},
		Notifications: NotificationConfig{Enabled: true},
	}
}

func defaultDataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".studydesk"
	}
	return filepath.Join(home, ".studydesk")
}

// configPath locates the config file, honoring XDG_CONFIG_HOME and
// falling back to ~/.config/studydesk/config.yaml.
func configPath() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "studydesk", "config.yaml")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "studydesk", "config.yaml")
}

// Load merges the user's config file over the defaults. A missing file
// is not an error: the defaults are returned as-is.
func Load() (*Config, error) {
	cfg := Default()

	path := configPath()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return nil, err
	}

	var userCfg Config
	if err := yaml.Unmarshal(data, &userCfg); err != nil {
		return nil, err
	}

	var doc yaml.Node
	_ = yaml.Unmarshal(data, &doc) // best-effort; fall back to conservative merge if this fails

	// Merge user config with defaults (presence-aware for booleans)
	cfg.mergeFromYAML(&userCfg, &doc)

	return cfg, nil
}

// mergeNonEmpty applies non-empty values from other to c.
// It intentionally does not touch booleans (those require presence-aware merging).
func (c *Config) mergeNonEmpty(other *Config) {
	if other.DataDir != "" {
		c.DataDir = other.DataDir
	}

	dst, src := c.Keys.bindings(), other.Keys.bindings()
	for i := range src {
		if *src[i] != "" {
			*dst[i] = *src[i]
		}
	}

	// UX ints (presence-aware in mergeFromYAML)
	if other.UX.NarrowLayoutThreshold > 0 {
		c.UX.NarrowLayoutThreshold = other.UX.NarrowLayoutThreshold
	}
}

// bindings enumerates every key binding field, in a fixed order, so the
// merge does not need to name them one by one.
func (k *KeysConfig) bindings() []*string {
	return []*string{
		&k.Quit, &k.Help, &k.NextPane, &k.Pane1, &k.Pane2, &k.Pane3, &k.CycleTheme,
		&k.Up, &k.Down, &k.Top, &k.Bottom,
		&k.AddTask, &k.EditTask, &k.ToggleTask, &k.DeleteTask, &k.CycleFilter,
		&k.AddGroup, &k.DeleteGroup, &k.MoveToGroup,
		&k.StartPause, &k.ResetTimer, &k.StartBreak,
		&k.FocusUp, &k.FocusDown, &k.BreakUp, &k.BreakDown,
		&k.ToggleSound, &k.ToggleAutoBrk,
		&k.SelectStream, &k.PlayPause, &k.OpenStream, &k.VolumeUp, &k.VolumeDown,
		&k.Confirm, &k.Cancel,
	}
}

func (c *Config) mergeFromYAML(other *Config, doc *yaml.Node) {
	// Fall back to conservative behavior if we can't inspect presence.
	if doc == nil || len(doc.Content) == 0 {
		// Avoid clobbering defaults with zero-values: only apply non-empty strings and non-zero ints.
		c.mergeNonEmpty(other)
		return
	}

	// First apply all non-empty string-ish merges.
	c.mergeNonEmpty(other)

	// Now re-apply booleans only when present in YAML.
	if yamlHasPath(doc, "ux", "confirm_deletions") {
		c.UX.ConfirmDeletions = other.UX.ConfirmDeletions
	}
	if yamlHasPath(doc, "ux", "show_onboarding") {
		c.UX.ShowOnboarding = other.UX.ShowOnboarding
	}
	if yamlHasPath(doc, "ux", "narrow_layout_threshold") && other.UX.NarrowLayoutThreshold > 0 {
		c.UX.NarrowLayoutThreshold = other.UX.NarrowLayoutThreshold
	}

	if yamlHasPath(doc, "notifications", "enabled") {
		c.Notifications.Enabled = other.Notifications.Enabled
	}
}

func yamlHasPath(doc *yaml.Node, path ...string) bool {
	if doc == nil || len(path) == 0 {
		return false
	}

	// Document -> root mapping.
	n := doc
	if n.Kind == yaml.DocumentNode && len(n.Content) > 0 {
		n = n.Content[0]
	}
	for _, key := range path {
		if n == nil || n.Kind != yaml.MappingNode {
			return false
		}
		var next *yaml.Node
		for i := 0; i+1 < len(n.Content); i += 2 {
			k := n.Content[i]
			v := n.Content[i+1]
			if k.Kind == yaml.ScalarNode && k.Value == key {
				next = v
				break
			}
		}
		if next == nil {
			return false
		}
		n = next
	}
	return true
}

// Save writes the configuration to disk.
func (c *Config) Save() error {
	path := configPath()
	if path == "" {
		return nil
	}

	// Create config directory if it doesn't exist
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return err
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}

	return fsutil.WriteFileAtomic(path, data, 0600)
}

// GetDataDir returns the resolved data directory, expanding a leading ~.
func (c *Config) GetDataDir() string {
	if c.DataDir == "" {
		return defaultDataDir()
	}
	return expandHome(c.DataDir)
}

func expandHome(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") && !strings.HasPrefix(path, `~\`) {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	rest := strings.TrimLeft(strings.TrimPrefix(path, "~"), `/\`)
	return filepath.Join(home, rest)
}
