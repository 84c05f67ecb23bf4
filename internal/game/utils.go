package game

import (
	"image/color"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/iburimskiy/hero-backdrop/internal/config"
)

var colorWhite = color.White

// palette holds the configured colors, parsed once.
type palette struct {
	background colorful.Color
	particle   colorful.Color
	card       colorful.Color
	border     colorful.Color
}

// newPalette parses the configured colors. Config validation already rejected
// malformed hex strings.
func newPalette(cfg *config.Config) palette {
	return palette{
		background: colorful.MustParseHex(cfg.Window.Background),
		particle:   colorful.MustParseHex(cfg.Field.Color),
		card:       colorful.MustParseHex(cfg.Card.Color),
		border:     colorful.MustParseHex(cfg.Card.Border),
	}
}

// withAlpha returns c with the given opacity, clamped to [0, 1].
func withAlpha(c colorful.Color, a float64) color.NRGBA {
	r, g, b := c.RGB255()
	return color.NRGBA{R: r, G: g, B: b, A: uint8(clamp01(a) * 255)}
}

// mix blends a towards b by t in Lab space, for hover and pressed shades.
func mix(a, b colorful.Color, t float64) colorful.Color {
	return a.BlendLab(b, clamp01(t)).Clamped()
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
