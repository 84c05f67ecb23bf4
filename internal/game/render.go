package game

import (
	"image"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/iburimskiy/hero-backdrop/internal/field"
	"github.com/iburimskiy/hero-backdrop/internal/tilt"
)

const (
	// Particle look
	particleRadius  = 2.2  // times Particle.Size
	coreAlpha       = 0.18 // plus Energy * coreEnergyAlpha
	coreEnergyAlpha = 0.22
	glowLayers      = 4
)

func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(g.palette.background)

	if f := g.loop.Field(); f != nil && g.loop.Running() {
		g.drawParticles(screen, f)
		g.drawConnections(screen, f)
	}

	g.drawCard(screen)
	g.drawSoundButton(screen)
}

// drawParticles paints each particle as a core with a soft glow. The glow is
// a few widening translucent rings, standing in for a canvas shadow blur.
func (g *Game) drawParticles(screen *ebiten.Image, f *field.Field) {
	cfg := f.Config()
	s := f.Surface().Scale
	for _, p := range f.Particles() {
		x, y := float32(p.X*s), float32(p.Y*s)
		r := p.Size * particleRadius

		blur := cfg.GlowBlur * p.Energy
		for i := glowLayers; i > 0; i-- {
			t := float64(i) / glowLayers
			fade := 1 - float64(i-1)/glowLayers
			glow := withAlpha(g.palette.particle, cfg.GlowAlpha*p.Energy*fade/glowLayers)
			vector.DrawFilledCircle(screen, x, y, float32((r+blur*t)*s), glow, true)
		}

		core := withAlpha(g.palette.particle, coreAlpha+p.Energy*coreEnergyAlpha)
		vector.DrawFilledCircle(screen, x, y, float32(r*s), core, true)
	}
}

func (g *Game) drawConnections(screen *ebiten.Image, f *field.Field) {
	cfg := f.Config()
	s := f.Surface().Scale
	width := float32(cfg.LineWidth * s)
	f.Connections(func(a, b *field.Particle, alpha float64) {
		clr := withAlpha(g.palette.particle, alpha*cfg.LineAlpha)
		vector.StrokeLine(screen, float32(a.X*s), float32(a.Y*s), float32(b.X*s), float32(b.Y*s), width, clr, true)
	})
}

// drawCard fills the tilted card as a projected quad and outlines it.
func (g *Game) drawCard(screen *ebiten.Image) {
	corners := g.card.Corners(g.cfg.Card.Perspective)

	var path vector.Path
	for i, c := range corners {
		x, y := float32(c.X*g.scale), float32(c.Y*g.scale)
		if i == 0 {
			path.MoveTo(x, y)
		} else {
			path.LineTo(x, y)
		}
	}
	path.Close()

	fill := g.palette.card
	if g.card.Hovered() {
		fill = mix(g.palette.card, g.palette.border, 0.15)
	}
	r, gr, b := fill.R, fill.G, fill.B
	vs, is := path.AppendVerticesAndIndicesForFilling(nil, nil)
	for i := range vs {
		vs[i].SrcX, vs[i].SrcY = 1, 1
		vs[i].ColorR = float32(r)
		vs[i].ColorG = float32(gr)
		vs[i].ColorB = float32(b)
		vs[i].ColorA = 0.92
	}
	src := g.white.SubImage(image.Rect(1, 1, 2, 2)).(*ebiten.Image)
	screen.DrawTriangles(vs, is, src, &ebiten.DrawTrianglesOptions{AntiAlias: true})

	border := withAlpha(g.palette.border, 0.8)
	for i := range corners {
		a, c := corners[i], corners[(i+1)%len(corners)]
		vector.StrokeLine(screen,
			float32(a.X*g.scale), float32(a.Y*g.scale),
			float32(c.X*g.scale), float32(c.Y*g.scale),
			float32(1.5*g.scale), border, true)
	}

	// current transform, top-left inside the card
	ebitenutil.DebugPrintAt(screen, g.card.Rotation().Transform(),
		int((g.card.Rect.X+12)*g.scale), int((g.card.Rect.Y+12)*g.scale))
}

func (g *Game) drawSoundButton(screen *ebiten.Image) {
	if g.unlock == nil {
		return
	}
	rect := g.buttonRect()
	s := g.scale
	x, y := float32(rect.X*s), float32(rect.Y*s)
	w, h := float32(rect.Width*s), float32(rect.Height*s)

	state := g.unlock.Button()
	base := g.palette.card
	switch {
	case g.buttonPressed:
		base = mix(g.palette.card, g.palette.border, 0.5)
	case g.buttonHovered:
		base = mix(g.palette.card, g.palette.border, 0.3)
	}
	vector.DrawFilledRect(screen, x, y, w, h, withAlpha(base, 0.95), false)

	borderAlpha := 0.4
	if state.Pressed {
		borderAlpha = 1
	}
	vector.StrokeRect(screen, x, y, w, h, float32(2*s), withAlpha(g.palette.border, borderAlpha), false)

	// level meter on the right edge of the button
	level := 0.0
	if state.Pressed {
		level = clamp01(g.track.Level() * 3)
	}
	barW := float32(4 * s)
	maxH := h - float32(12*s)
	for i := 0; i < meterBars; i++ {
		t := float64(i+1) / meterBars
		bh := float32(2 * s)
		if level > float64(i)/meterBars {
			bh = maxH * float32(t)
		}
		bx := x + w - float32(10*s) - float32(meterBars-i)*(barW+float32(2*s))
		vector.DrawFilledRect(screen, bx, y+h-float32(6*s)-bh, barW, bh, withAlpha(g.palette.particle, 0.9), false)
	}

	lx, ly := buttonLabelAt(rect, s)
	ebitenutil.DebugPrintAt(screen, state.Label, lx, ly)
}

// buttonLabelAt is where the label text starts, in screen pixels: inset from
// the left edge and vertically centred on the 16px debug font line.
func buttonLabelAt(rect tilt.Rect, s float64) (int, int) {
	return int((rect.X + 10) * s), int((rect.Y + rect.Height/2 - 8) * s)
}
