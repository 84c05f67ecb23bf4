// Package tilt computes the pointer-driven 3D tilt of the hero card.
package tilt

import (
	"fmt"
	"math"
)

// Rect is the card's bounding box in logical pixels.
type Rect struct {
	X, Y, Width, Height float64
}

// Contains reports whether (x, y) lies inside r.
func (r Rect) Contains(x, y float64) bool {
	return x >= r.X && x < r.X+r.Width && y >= r.Y && y < r.Y+r.Height
}

// Centered returns a w×h rect centred in a viewW×viewH view.
func Centered(viewW, viewH, w, h float64) Rect {
	return Rect{X: (viewW - w) / 2, Y: (viewH - h) / 2, Width: w, Height: h}
}

// Rotation is a tilt in degrees.
type Rotation struct {
	X, Y float64
}

// Transform renders r the way it is written into the card's style.
func (r Rotation) Transform() string {
	return fmt.Sprintf("rotateX(%gdeg) rotateY(%gdeg)", r.X, r.Y)
}

// Angles returns the tilt for a pointer at (px, py) over rect. The card leans
// towards the pointer: dampening/2 degrees at each edge, none at the centre.
func Angles(rect Rect, px, py, dampening float64) Rotation {
	ox := (px - rect.X) / rect.Width
	oy := (py - rect.Y) / rect.Height
	return Rotation{
		X: (0.5 - oy) * dampening,
		Y: (ox - 0.5) * dampening,
	}
}

// Card holds the applied rotation and at most one pending update. A newer
// update replaces the pending one, so only the latest pointer position of a
// frame is applied.
type Card struct {
	Rect      Rect
	Dampening float64

	current Rotation
	pending *Rotation
	hovered bool
}

// NewCard returns an untilted card.
func NewCard(rect Rect, dampening float64) *Card {
	return &Card{Rect: rect, Dampening: dampening}
}

// Pointer feeds a pointer position. Entering or moving over the card tilts
// it; leaving resets it.
func (c *Card) Pointer(x, y float64) {
	inside := c.Rect.Contains(x, y)
	switch {
	case inside:
		c.schedule(Angles(c.Rect, x, y, c.Dampening))
	case c.hovered:
		c.schedule(Rotation{})
	}
	c.hovered = inside
}

// Leave resets the tilt, e.g. when the pointer leaves the window.
func (c *Card) Leave() {
	if c.hovered {
		c.schedule(Rotation{})
	}
	c.hovered = false
}

func (c *Card) schedule(r Rotation) {
	c.pending = &r
}

// Frame applies the pending rotation, if any. It reports whether the card
// changed.
func (c *Card) Frame() bool {
	if c.pending == nil {
		return false
	}
	c.current = *c.pending
	c.pending = nil
	return true
}

func (c *Card) Rotation() Rotation { return c.current }
func (c *Card) Hovered() bool { return c.hovered }

// Point is a projected corner in logical pixels.
type Point struct {
	X, Y float64
}

// Corners returns the card corners after rotating around the card centre and
// projecting with a viewer at the given distance. Order is top-left,
// top-right, bottom-right, bottom-left.
func (c *Card) Corners(perspective float64) [4]Point {
	cx := c.Rect.X + c.Rect.Width/2
	cy := c.Rect.Y + c.Rect.Height/2
	hw, hh := c.Rect.Width/2, c.Rect.Height/2

	ax := c.current.X * math.Pi / 180
	ay := c.current.Y * math.Pi / 180
	sx, cxr := math.Sincos(ax)
	sy, cyr := math.Sincos(ay)

	local := [4][2]float64{{-hw, -hh}, {hw, -hh}, {hw, hh}, {-hw, hh}}
	var out [4]Point
	for i, v := range local {
		x, y := v[0], v[1]
		// rotateX: positive tilts the top edge away from the viewer
		y1 := y * cxr
		z1 := -y * sx
		// rotateY: positive turns the right edge away from the viewer
		x2 := x*cyr - z1*sy
		z2 := x*sy + z1*cyr
		k := perspective / (perspective + z2)
		out[i] = Point{X: cx + x2*k, Y: cy + y1*k}
	}
	return out
}
