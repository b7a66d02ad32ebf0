// Package pomodoro implements the focus/break countdown state machine.
//
// The engine owns all timer state and transitions; the UI drives it with a
// one-second tick and reads state back for rendering. Completion side
// effects (sound, desktop notification, the transient completion flash) are
// delegated to capabilities injected at construction, so the state machine
// behaves identically whether or not they are available.
package pomodoro

import (
	"fmt"
	"time"

	"studydesk/internal/storage"
)

// State identifies the timer phase.
type State string

const (
	StateIdle    State = "idle"
	StateRunning State = "running"
	StatePaused  State = "paused"
	StateBreak   State = "break"
)

// ConfigKey is the persistence key for the timer configuration.
const ConfigKey = "pomodoro-config"

// FlashDuration is how long the "just completed" flash stays set before the
// presentation layer clears it.
const FlashDuration = 600 * time.Millisecond

// Config holds the persisted timer settings. Durations are minutes.
type Config struct {
	FocusDuration  int  `json:"focusDuration"`
	BreakDuration  int  `json:"breakDuration"`
	SoundEnabled   bool `json:"soundEnabled"`
	AutoStartBreak bool `json:"autoStartBreak"`
}

// DefaultConfig returns the out-of-the-box timer settings.
func DefaultConfig() Config {
	return Config{
		FocusDuration:  25,
		BreakDuration:  5,
		SoundEnabled:   true,
		AutoStartBreak: false,
	}
}

// valid reports whether a persisted config is usable.
func (c Config) valid() bool {
	return c.FocusDuration > 0 && c.BreakDuration > 0
}

// ConfigPatch carries partial configuration updates; nil fields are left
// unchanged.
type ConfigPatch struct {
	FocusDuration  *int
	BreakDuration  *int
	SoundEnabled   *bool
	AutoStartBreak *bool
}

// Notifier is the slice of notify.Notifier the engine needs.
type Notifier interface {
	Send(title, message string) error
	SendWithSound(title, message string) error
	IsSupported() bool
}

// Chimer emits the completion sound.
type Chimer interface {
	Chime()
}

// Engine is the Pomodoro timer state machine. It is not safe for concurrent
// use; all calls happen on the UI event loop.
type Engine struct {
	kv       *storage.Store
	notifier Notifier
	chimer   Chimer

	cfg       Config
	state     State
	remaining int // seconds
	flash     bool

	// canNotify caches the notification capability, probed once at
	// construction. Absence silently suppresses notifications.
	canNotify bool

	// epoch guards the tick chain: it is bumped on every transition that
	// arms or disarms the countdown, so a tick scheduled before the
	// transition is recognized as stale and dropped.
	epoch int
}

// Option configures an Engine.
type Option func(*Engine)

// WithNotifier attaches a desktop notifier for completion notifications.
func WithNotifier(n Notifier) Option {
	return func(e *Engine) { e.notifier = n }
}

// WithChimer attaches a sound source for the completion cue.
func WithChimer(c Chimer) Option {
	return func(e *Engine) { e.chimer = c }
}

// NewEngine creates an idle engine, loading persisted configuration from the
// store (defaults when absent or unusable). kv may be nil in tests.
func NewEngine(kv *storage.Store, opts ...Option) *Engine {
	cfg := DefaultConfig()
	if kv != nil {
		if saved, ok := storage.Get[Config](kv, ConfigKey); ok && saved.valid() {
			cfg = saved
		}
	}

	e := &Engine{
		kv:        kv,
		cfg:       cfg,
		state:     StateIdle,
		remaining: cfg.FocusDuration * 60,
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.notifier != nil {
		e.canNotify = e.notifier.IsSupported()
	}
	return e
}

// State returns the current phase.
func (e *Engine) State() State {
	return e.state
}

// Remaining returns the seconds left in the current phase.
func (e *Engine) Remaining() int {
	return e.remaining
}

// Config returns the current configuration.
func (e *Engine) Config() Config {
	return e.cfg
}

// JustCompleted reports whether a session finished within the last flash
// window. The presentation layer clears it via ClearJustCompleted.
func (e *Engine) JustCompleted() bool {
	return e.flash
}

// ClearJustCompleted resets the completion flash.
func (e *Engine) ClearJustCompleted() {
	e.flash = false
}

// Counting reports whether the countdown is live (running or break).
func (e *Engine) Counting() bool {
	return e.state == StateRunning || e.state == StateBreak
}

// Epoch returns the current tick-chain generation. Tick messages created
// under an older epoch must be discarded.
func (e *Engine) Epoch() int {
	return e.epoch
}

// Start begins a focus session from idle, or resumes from paused with the
// remaining time untouched. In any other state it is a no-op.
func (e *Engine) Start() {
	switch e.state {
	case StateIdle:
		e.state = StateRunning
		e.remaining = e.cfg.FocusDuration * 60
		e.epoch++
	case StatePaused:
		e.state = StateRunning
		e.epoch++
	}
}

// Pause halts the countdown. A no-op unless running or in a break.
func (e *Engine) Pause() {
	if !e.Counting() {
		return
	}
	e.state = StatePaused
	e.epoch++
}

// Reset returns to idle with a full focus duration, from any state.
func (e *Engine) Reset() {
	e.state = StateIdle
	e.remaining = e.cfg.FocusDuration * 60
	e.epoch++
}

// StartBreak begins a break session from any state.
func (e *Engine) StartBreak() {
	e.state = StateBreak
	e.remaining = e.cfg.BreakDuration * 60
	e.epoch++
}

// Tick advances the countdown by one second. Outside running/break it does
// nothing. When the countdown reaches zero the completion side effects fire
// exactly once and the next phase is entered before the next tick.
func (e *Engine) Tick() {
	if !e.Counting() {
		return
	}
	if e.remaining > 1 {
		e.remaining--
		return
	}
	e.remaining = 0
	e.complete()
}

// complete runs the completion policy: sound, notification, flash, and the
// transition out of the finished phase.
func (e *Engine) complete() {
	wasBreak := e.state == StateBreak

	if e.cfg.SoundEnabled && e.chimer != nil {
		e.chimer.Chime()
	}

	if e.canNotify {
		title, body := completionMessage(wasBreak)
		if e.cfg.SoundEnabled {
			_ = e.notifier.SendWithSound(title, body)
		} else {
			_ = e.notifier.Send(title, body)
		}
	}

	e.flash = true

	switch {
	case !wasBreak && e.cfg.AutoStartBreak:
		e.state = StateBreak
		e.remaining = e.cfg.BreakDuration * 60
		e.epoch++
	case wasBreak:
		e.state = StateIdle
		e.remaining = e.cfg.BreakDuration * 60
		e.epoch++
	default:
		e.state = StateIdle
		e.remaining = e.cfg.FocusDuration * 60
		e.epoch++
	}
}

// completionMessage picks the notification text for the phase that ended.
func completionMessage(wasBreak bool) (title, body string) {
	if wasBreak {
		return "Break time is over!", "Ready to focus again?"
	}
	return "Focus session complete!", "Time for a break. Great work!"
}

// UpdateConfig merges the patch into the configuration, persists the result,
// and — only while idle — resets the remaining time to the new focus
// duration. Non-positive durations are clamped to one minute; validation of
// sensible values beyond that is the caller's job.
func (e *Engine) UpdateConfig(patch ConfigPatch) {
	if patch.FocusDuration != nil {
		e.cfg.FocusDuration = clampMinutes(*patch.FocusDuration)
	}
	if patch.BreakDuration != nil {
		e.cfg.BreakDuration = clampMinutes(*patch.BreakDuration)
	}
	if patch.SoundEnabled != nil {
		e.cfg.SoundEnabled = *patch.SoundEnabled
	}
	if patch.AutoStartBreak != nil {
		e.cfg.AutoStartBreak = *patch.AutoStartBreak
	}

	if e.kv != nil {
		// Best-effort: a failed write leaves the in-memory config live.
		storage.Set(e.kv, ConfigKey, e.cfg)
	}

	if e.state == StateIdle {
		e.remaining = e.cfg.FocusDuration * 60
	}
}

func clampMinutes(m int) int {
	if m < 1 {
		return 1
	}
	return m
}

// FormatTime renders seconds as zero-padded MM:SS.
func FormatTime(seconds int) string {
	if seconds < 0 {
		seconds = 0
	}
	return fmt.Sprintf("%02d:%02d", seconds/60, seconds%60)
}

// Progress returns how far the current phase has advanced, as a percentage
// in [0,100]. During a break the phase total is the break duration; in every
// other state it is the focus duration.
func (e *Engine) Progress() float64 {
	total := e.cfg.FocusDuration * 60
	if e.state == StateBreak {
		total = e.cfg.BreakDuration * 60
	}
	if total <= 0 {
		return 0
	}
	pct := float64(total-e.remaining) / float64(total) * 100
	if pct < 0 {
		return 0
	}
	if pct > 100 {
		return 100
	}
	return pct
}
