// Package player holds the lofi stream picker state: a fixed catalog of
// streams, a persisted volume, and a persisted stream selection. The app
// does not decode audio; the selected stream opens in the system browser.
package player

import (
	"studydesk/internal/storage"
)

// Storage keys for the player state.
const (
	volumeKey = "player-volume"
	streamKey = "player-stream"
)

// DefaultVolume is used when no volume has been saved.
const DefaultVolume = 50

// Stream is one entry in the fixed catalog.
type Stream struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	URL  string `json:"url"`
}

// Catalog returns the built-in streams, in display order. The first entry is
// the default selection.
func Catalog() []Stream {
	return []Stream{
		{ID: "lofi-girl", Name: "Lofi Girl", URL: "https://www.youtube.com/watch?v=jfKfPfyJRdk"},
		{ID: "chillhop", Name: "Chillhop Music", URL: "https://www.youtube.com/watch?v=5yx6BWlEVcY"},
		{ID: "jazz-hop", Name: "The Jazz Hop Café", URL: "https://www.youtube.com/watch?v=e3L1PIY1pN8"},
		{ID: "college-music", Name: "College Music", URL: "https://www.youtube.com/watch?v=MCkTebktHVc"},
	}
}

// Player is the stream picker state. It is not safe for concurrent use; all
// calls happen on the UI event loop.
type Player struct {
	kv      *storage.Store
	streams []Stream
	current int
	volume  int
	playing bool
}

// New loads the persisted volume and stream selection. Unknown saved stream
// ids fall back to the first catalog entry; out-of-range volumes are
// clamped. kv may be nil in tests.
func New(kv *storage.Store) *Player {
	p := &Player{
		kv:      kv,
		streams: Catalog(),
		volume:  DefaultVolume,
	}

	if kv != nil {
		if v, ok := storage.Get[int](kv, volumeKey); ok {
			p.volume = clampVolume(v)
		}
		if id, ok := storage.Get[string](kv, streamKey); ok {
			for i, s := range p.streams {
				if s.ID == id {
					p.current = i
					break
				}
			}
		}
	}

	return p
}

func clampVolume(v int) int {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}

// Streams returns the catalog.
func (p *Player) Streams() []Stream {
	return p.streams
}

// Current returns the selected stream.
func (p *Player) Current() Stream {
	return p.streams[p.current]
}

// CurrentIndex returns the catalog index of the selected stream.
func (p *Player) CurrentIndex() int {
	return p.current
}

// Select persists the stream at the given catalog index as the selection.
// Out-of-range indexes are ignored.
func (p *Player) Select(i int) {
	if i < 0 || i >= len(p.streams) {
		return
	}
	p.current = i
	if p.kv != nil {
		storage.Set(p.kv, streamKey, p.streams[i].ID)
	}
}

// Volume returns the current volume, 0-100.
func (p *Player) Volume() int {
	return p.volume
}

// SetVolume clamps the value to 0-100 and persists it.
func (p *Player) SetVolume(v int) {
	p.volume = clampVolume(v)
	if p.kv != nil {
		storage.Set(p.kv, volumeKey, p.volume)
	}
}

// AdjustVolume changes the volume by delta, clamped to 0-100.
func (p *Player) AdjustVolume(delta int) {
	p.SetVolume(p.volume + delta)
}

// Playing reports whether the player is marked as playing. This is session
// state only; it is not persisted.
func (p *Player) Playing() bool {
	return p.playing
}

// TogglePlay flips the playing flag and returns the new value.
func (p *Player) TogglePlay() bool {
	p.playing = !p.playing
	return p.playing
}
