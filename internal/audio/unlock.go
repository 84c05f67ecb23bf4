package audio

import (
	"log/slog"
	"time"
)

// Player is the part of a track the unlocker drives.
type Player interface {
	Play() error
	Paused() bool
	SetMuted(bool)
	SetVolume(float64)
}

// State is the unlock progress of the background audio.
type State int

const (
	// Locked: nothing has played yet, or every attempt failed.
	Locked State = iota
	// Unlocking: playback started on its own, muted at first and unmuted
	// after a short delay. No user gesture yet.
	Unlocking
	// Unlocked: the user pressed a key or button; sound is fully on.
	Unlocked
)

func (s State) String() string {
	switch s {
	case Locked:
		return "locked"
	case Unlocking:
		return "unlocking"
	case Unlocked:
		return "unlocked"
	}
	return "unknown"
}

// Button is what the sound toggle shows.
type Button struct {
	Pressed bool // sound is audible
	Label   string
}

// Unlocker walks the background track through Locked, Unlocking and
// Unlocked. All methods run on the game loop.
type Unlocker struct {
	player Player
	volume float64
	delay  time.Duration
	log    *slog.Logger

	state     State
	autoMuted bool // muted while playback is not unlocked
	userMuted bool // muted from the sound button
	unmuteAt  time.Time
	pending   bool
}

// NewUnlocker returns a Locked unlocker. volume is applied on unlock; delay is
// how long an autoplayed track stays muted.
func NewUnlocker(p Player, volume float64, delay time.Duration, log *slog.Logger) *Unlocker {
	if log == nil {
		log = slog.Default()
	}
	return &Unlocker{player: p, volume: volume, delay: delay, log: log}
}

// Attempt tries to start playback. Until unlocked it plays muted and
// schedules an unmute; a failure is logged and leaves the state as is.
func (u *Unlocker) Attempt(now time.Time) {
	if u.state != Unlocked {
		u.autoMuted = true
		u.applyMute()
	}
	if err := u.player.Play(); err != nil {
		u.log.Warn("background audio did not start", "state", u.state, "error", err)
		return
	}
	if u.state != Unlocked {
		u.setState(Unlocking)
		u.unmuteAt = now.Add(u.delay)
		u.pending = true
	}
}

// Tick lifts the autoplay mute once its delay has passed.
func (u *Unlocker) Tick(now time.Time) {
	if !u.pending || now.Before(u.unmuteAt) {
		return
	}
	u.pending = false
	if u.state == Unlocking {
		u.autoMuted = false
		u.applyMute()
	}
}

// Unlock handles the first user gesture. Later calls do nothing and report
// false.
func (u *Unlocker) Unlock() bool {
	if u.state == Unlocked {
		return false
	}
	u.setState(Unlocked)
	u.pending = false
	u.autoMuted = false
	u.applyMute()
	u.player.SetVolume(u.volume)
	if u.player.Paused() {
		if err := u.player.Play(); err != nil {
			u.log.Warn("background audio did not start after unlock", "error", err)
		}
	}
	return true
}

// VisibilityChanged retries playback when the window becomes visible again
// and the track is not playing.
func (u *Unlocker) VisibilityChanged(visible bool, now time.Time) {
	if visible && u.player.Paused() {
		u.Attempt(now)
	}
}

// Toggle is the sound button. Pressing it also counts as the unlocking
// gesture. The result is the opposite of what the button showed, so a click
// on "Sound off" always turns sound on.
func (u *Unlocker) Toggle() {
	audible := !u.muted()
	u.Unlock()
	u.userMuted = audible
	u.applyMute()
}

// Button reports the toggle's pressed state and label.
func (u *Unlocker) Button() Button {
	if u.muted() {
		return Button{Pressed: false, Label: "Sound off"}
	}
	return Button{Pressed: true, Label: "Sound on"}
}

func (u *Unlocker) State() State { return u.state }

func (u *Unlocker) muted() bool { return u.autoMuted || u.userMuted }

func (u *Unlocker) applyMute() { u.player.SetMuted(u.muted()) }

func (u *Unlocker) setState(s State) {
	if s != u.state {
		u.log.Debug("audio state", "from", u.state, "to", s)
	}
	u.state = s
}
