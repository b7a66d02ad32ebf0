// Package theme defines the curated color themes and their persistence.
// Each theme carries a terminal palette; the UI builds its lipgloss styles
// from whichever theme is active.
package theme

import (
	"studydesk/internal/storage"
)

// Key is the persistence key for the selected theme id.
const Key = "theme"

// DefaultID is the theme used when nothing is saved or the saved id is
// unknown.
const DefaultID = "lofi-cozy"

// Palette holds the hex colors a theme contributes to the UI styles.
type Palette struct {
	Primary   string
	Accent    string
	Muted     string
	Danger    string
	Warning   string
	Success   string
	Bg        string
	BgLight   string
	Text      string
	TextMuted string
}

// Theme is one entry in the fixed catalog.
type Theme struct {
	ID          string
	Name        string
	Description string
	Palette     Palette
}

// Catalog returns the built-in themes in cycling order.
func Catalog() []Theme {
	return []Theme{
		{
			ID:          "lofi-cozy",
			Name:        "Lofi Cozy",
			Description: "Warm browns and muted purples",
			Palette: Palette{
				Primary:   "#D97757",
				Accent:    "#9B8CDB",
				Muted:     "#6B6258",
				Danger:    "#EF4444",
				Warning:   "#F59E0B",
				Success:   "#10B981",
				Bg:        "#201A16",
				BgLight:   "#332B24",
				Text:      "#F2EDE9",
				TextMuted: "#A69B8F",
			},
		},
		{
			ID:          "minimal-light",
			Name:        "Minimal Light",
			Description: "Clean whites and subtle grays",
			Palette: Palette{
				Primary:   "#1A1A1A",
				Accent:    "#3B82F6",
				Muted:     "#8A8A8A",
				Danger:    "#DC2626",
				Warning:   "#D97706",
				Success:   "#059669",
				Bg:        "#FFFFFF",
				BgLight:   "#F5F5F5",
				Text:      "#252525",
				TextMuted: "#737373",
			},
		},
		{
			ID:          "midnight-study",
			Name:        "Midnight Study",
			Description: "Deep navy with teal accents",
			Palette: Palette{
				Primary:   "#4FB8D8",
				Accent:    "#38BDF8",
				Muted:     "#475569",
				Danger:    "#F87171",
				Warning:   "#FBBF24",
				Success:   "#34D399",
				Bg:        "#0F1625",
				BgLight:   "#1E2A40",
				Text:      "#E2E8F0",
				TextMuted: "#94A3B8",
			},
		},
		{
			ID:          "sakura",
			Name:        "Sakura",
			Description: "Soft pinks and cream tones",
			Palette: Palette{
				Primary:   "#C25E8C",
				Accent:    "#E8A0BF",
				Muted:     "#B08A99",
				Danger:    "#DC2626",
				Warning:   "#D97706",
				Success:   "#059669",
				Bg:        "#FDF6F8",
				BgLight:   "#F9E8EF",
				Text:      "#4A2533",
				TextMuted: "#8C6475",
			},
		},
		{
			ID:          "forest-focus",
			Name:        "Forest Focus",
			Description: "Earthy greens and wood tones",
			Palette: Palette{
				Primary:   "#4C9A5F",
				Accent:    "#86B97C",
				Muted:     "#4E5F53",
				Danger:    "#F87171",
				Warning:   "#FBBF24",
				Success:   "#34D399",
				Bg:        "#16211A",
				BgLight:   "#27362C",
				Text:      "#E8EEE9",
				TextMuted: "#8FA295",
			},
		},
	}
}

// Default returns the default theme.
func Default() Theme {
	t, _ := ByID(DefaultID)
	return t
}

// ByID looks up a theme in the catalog.
func ByID(id string) (Theme, bool) {
	for _, t := range Catalog() {
		if t.ID == id {
			return t, true
		}
	}
	return Theme{}, false
}

// Next returns the theme after the given id in catalog order, wrapping
// around. Unknown ids yield the default theme.
func Next(id string) Theme {
	catalog := Catalog()
	for i, t := range catalog {
		if t.ID == id {
			return catalog[(i+1)%len(catalog)]
		}
	}
	return Default()
}

// Load returns the persisted theme, falling back to the default when
// nothing is saved or the saved id no longer exists. kv may be nil.
func Load(kv *storage.Store) Theme {
	if kv != nil {
		if id, ok := storage.Get[string](kv, Key); ok {
			if t, found := ByID(id); found {
				return t
			}
		}
	}
	return Default()
}

// Save persists the theme selection, best-effort.
func Save(kv *storage.Store, id string) {
	if kv != nil {
		storage.Set(kv, Key, id)
	}
}
