// Package game adapts window input to the backdrop modules and draws them
// with ebiten.
package game

import (
	"log/slog"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/iburimskiy/hero-backdrop/internal/audio"
	"github.com/iburimskiy/hero-backdrop/internal/config"
	"github.com/iburimskiy/hero-backdrop/internal/field"
	"github.com/iburimskiy/hero-backdrop/internal/tilt"
)

const (
	// Sound button dimensions, measured from the bottom-right corner
	buttonWidth  = 120
	buttonHeight = 40
	buttonMargin = 20

	meterBars = 5
)

// Game is the ebiten.Game running the backdrop.
type Game struct {
	cfg     *config.Config
	log     *slog.Logger
	palette palette

	loop   *field.Loop
	card   *tilt.Card
	track  *audio.Track
	unlock *audio.Unlocker

	// viewport in logical pixels; outside* is what Layout last saw
	width, height            float64
	scale                    float64
	outsideW, outsideH       int
	lastCursorX, lastCursorY int

	// input edge detection
	focused       bool
	started       bool
	buttonHovered bool
	buttonPressed bool

	now   func() time.Time
	white *ebiten.Image
}

// NewGame builds the backdrop. track may be nil when no background audio is
// configured.
func NewGame(cfg *config.Config, track *audio.Track, log *slog.Logger) *Game {
	if log == nil {
		log = slog.Default()
	}
	g := &Game{
		cfg:     cfg,
		log:     log,
		palette: newPalette(cfg),
		loop:    field.NewLoop(field.Mount(cfg, nil)),
		card:    tilt.NewCard(tilt.Rect{Width: cfg.Card.Width, Height: cfg.Card.Height}, cfg.Card.Dampening),
		track:   track,
		scale:   1,
		focused: true,
		now:     time.Now,
		white:   ebiten.NewImage(3, 3),
	}
	g.white.Fill(colorWhite)
	if track != nil {
		g.unlock = audio.NewUnlocker(track, cfg.Audio.Volume, cfg.Audio.UnmuteDelay, log)
	}
	if g.loop.Field() == nil {
		log.Info("reduced motion preferred, particle field not mounted")
	}
	return g
}

func (g *Game) Update() error {
	now := g.now()

	if !g.started {
		g.started = true
		if g.unlock != nil {
			g.unlock.Attempt(now)
		}
	}

	g.applyResize()

	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) || inpututil.IsKeyJustPressed(ebiten.KeyQ) {
		return ebiten.Termination
	}

	g.updateFocus(now)
	g.updatePointer()
	g.updateAudio(now)

	g.card.Frame()
	g.loop.Tick()
	return nil
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	g.outsideW, g.outsideH = outsideWidth, outsideHeight
	s := g.deviceScale()
	return int(float64(outsideWidth) * s), int(float64(outsideHeight) * s)
}

func (g *Game) deviceScale() float64 {
	s := 1.0
	if m := ebiten.Monitor(); m != nil {
		s = m.DeviceScaleFactor()
	}
	if s <= 0 {
		s = 1
	}
	return min(s, g.cfg.Window.MaxDeviceScale)
}

// applyResize rebuilds the field and recentres the card after the window
// changed size. The first Layout counts as a resize.
func (g *Game) applyResize() {
	w, h := float64(g.outsideW), float64(g.outsideH)
	s := g.deviceScale()
	if w == 0 || h == 0 || (w == g.width && h == g.height && s == g.scale) {
		return
	}
	g.width, g.height, g.scale = w, h, s

	g.loop.Resize(w, h, s)
	g.card.Rect = tilt.Centered(w, h, g.cfg.Card.Width, g.cfg.Card.Height)

	count := 0
	if f := g.loop.Field(); f != nil {
		count = len(f.Particles())
	}
	g.log.Debug("resized", "width", w, "height", h, "scale", s, "particles", count)
}

// updateFocus treats window focus as page visibility.
func (g *Game) updateFocus(now time.Time) {
	focused := ebiten.IsFocused()
	if focused == g.focused {
		return
	}
	g.focused = focused
	if !focused {
		g.leave()
	}
	if g.unlock != nil {
		g.unlock.VisibilityChanged(focused, now)
	}
}

// cursor returns the pointer in logical pixels and whether it is inside the
// window.
func (g *Game) cursor() (float64, float64, bool) {
	cx, cy := ebiten.CursorPosition()
	x, y := float64(cx)/g.scale, float64(cy)/g.scale
	inside := g.focused && x >= 0 && y >= 0 && x < g.width && y < g.height
	return x, y, inside
}

func (g *Game) updatePointer() {
	cx, cy := ebiten.CursorPosition()
	moved := cx != g.lastCursorX || cy != g.lastCursorY
	g.lastCursorX, g.lastCursorY = cx, cy

	x, y, inside := g.cursor()
	if !inside {
		g.leave()
		return
	}
	if !moved {
		return
	}
	if f := g.loop.Field(); f != nil {
		f.MovePointer(x, y)
	}
	g.card.Pointer(x, y)
}

func (g *Game) leave() {
	if f := g.loop.Field(); f != nil {
		f.ReleasePointer()
	}
	g.card.Leave()
}

func (g *Game) buttonRect() tilt.Rect {
	return tilt.Rect{
		X:      g.width - buttonWidth - buttonMargin,
		Y:      g.height - buttonHeight - buttonMargin,
		Width:  buttonWidth,
		Height: buttonHeight,
	}
}

func (g *Game) updateAudio(now time.Time) {
	if g.unlock == nil {
		return
	}
	x, y, _ := g.cursor()
	g.buttonHovered = g.buttonRect().Contains(x, y)

	route := routeAudioInput(audioInput{
		pressed:  inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft),
		released: inpututil.IsMouseButtonJustReleased(ebiten.MouseButtonLeft),
		hovered:  g.buttonHovered,
		anyKey:   len(inpututil.AppendJustPressedKeys(nil)) > 0,
		muteKey:  inpututil.IsKeyJustPressed(ebiten.KeyM),
	}, g.buttonPressed)
	g.buttonPressed = route.armed

	switch {
	case route.toggle:
		g.unlock.Toggle()
		g.log.Info("sound toggled", "label", g.unlock.Button().Label)
	case route.unlock && g.unlock.Unlock():
		g.log.Info("background audio unlocked", "track", g.track.Path())
	}

	g.unlock.Tick(now)
}
