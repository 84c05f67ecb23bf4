// Package audio plays the looping background track and tracks whether the
// user has unlocked sound yet.
package audio

import (
	"math"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/faiface/beep"
	"github.com/faiface/beep/effects"
	"github.com/faiface/beep/flac"
	"github.com/faiface/beep/mp3"
	"github.com/faiface/beep/speaker"
	"github.com/faiface/beep/wav"
	"github.com/pkg/errors"
)

const levelWindow = 2048

// speakerRate is the sample rate the speaker was initialised with; zero until
// the first track plays.
var speakerRate beep.SampleRate

// Track is a decoded file looping forever behind pause and volume controls.
// Its methods are called from the game loop while the speaker goroutine
// streams it, so every control change holds the speaker lock.
type Track struct {
	path     string
	file     *os.File
	streamer beep.StreamSeekCloser
	format   beep.Format
	tap      *levelTap
	ctrl     *beep.Ctrl
	volume   *effects.Volume
	started  bool
}

// Open decodes path by extension. The track starts paused.
func Open(path string, ringSize int) (*Track, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "open track")
	}

	var (
		streamer beep.StreamSeekCloser
		format   beep.Format
	)
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".wav":
		streamer, format, err = wav.Decode(f)
	case ".mp3":
		streamer, format, err = mp3.Decode(f)
	case ".flac":
		streamer, format, err = flac.Decode(f)
	default:
		_ = f.Close()
		return nil, errors.Errorf("unsupported file type: %q", ext)
	}
	if err != nil {
		_ = f.Close()
		return nil, errors.Wrapf(err, "decode %s", path)
	}

	// Chain: file -> loop -> tap -> ctrl -> volume
	tap := newLevelTap(beep.Loop(-1, streamer), ringSize)
	ctrl := &beep.Ctrl{Streamer: tap, Paused: true}
	volume := &effects.Volume{Streamer: ctrl, Base: 2}

	return &Track{
		path:     path,
		file:     f,
		streamer: streamer,
		format:   format,
		tap:      tap,
		ctrl:     ctrl,
		volume:   volume,
	}, nil
}

// Play unpauses the track, handing it to the speaker on first use.
func (t *Track) Play() error {
	if !t.started {
		if err := t.attach(); err != nil {
			return err
		}
		t.started = true
	}
	speaker.Lock()
	t.ctrl.Paused = false
	speaker.Unlock()
	return nil
}

func (t *Track) attach() error {
	bufferSize := t.format.SampleRate.N(time.Second / 20)
	switch {
	case speakerRate == 0:
		if err := speaker.Init(t.format.SampleRate, bufferSize); err != nil {
			return errors.Wrap(err, "init speaker")
		}
		speakerRate = t.format.SampleRate
	case speakerRate != t.format.SampleRate:
		// Re-init when sample rate changes
		speaker.Clear()
		if err := speaker.Init(t.format.SampleRate, bufferSize); err != nil {
			return errors.Wrap(err, "reinit speaker")
		}
		speakerRate = t.format.SampleRate
	}
	speaker.Play(t.volume)
	return nil
}

// Pause stops playback without losing the position.
func (t *Track) Pause() {
	speaker.Lock()
	t.ctrl.Paused = true
	speaker.Unlock()
}

func (t *Track) Paused() bool {
	speaker.Lock()
	defer speaker.Unlock()
	return t.ctrl.Paused
}

func (t *Track) SetMuted(muted bool) {
	speaker.Lock()
	t.volume.Silent = muted
	speaker.Unlock()
}

// SetVolume sets a linear volume in [0, 1]. Zero is silent.
func (t *Track) SetVolume(v float64) {
	speaker.Lock()
	defer speaker.Unlock()
	if v <= 0 {
		// Silent is owned by SetMuted, so use a very low gain instead.
		t.volume.Volume = -16
		return
	}
	t.volume.Volume = math.Log2(math.Min(v, 1))
}

// Level is the RMS loudness of what was played most recently.
func (t *Track) Level() float64 {
	return t.tap.level(levelWindow)
}

func (t *Track) Path() string { return t.path }

// Close stops the track and releases the file.
func (t *Track) Close() error {
	if t.started {
		speaker.Clear()
	}
	err := t.streamer.Close()
	// decoders close the file too; this only matters when they did not
	_ = t.file.Close()
	return errors.Wrap(err, "close track")
}
