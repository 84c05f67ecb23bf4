package tilt

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAngles(t *testing.T) {
	rect := Rect{X: 100, Y: 50, Width: 200, Height: 100}

	tests := []struct {
		name   string
		px, py float64
		want   Rotation
	}{
		{"centre", 200, 100, Rotation{0, 0}},
		{"top left", 100, 50, Rotation{X: 9, Y: -9}},
		{"bottom right", 300, 150, Rotation{X: -9, Y: 9}},
		{"right middle", 300, 100, Rotation{X: 0, Y: 9}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Angles(rect, tt.px, tt.py, 18)
			assert.InDelta(t, tt.want.X, got.X, 1e-9)
			assert.InDelta(t, tt.want.Y, got.Y, 1e-9)
		})
	}
}

func TestTransform(t *testing.T) {
	assert.Equal(t, "rotateX(0deg) rotateY(0deg)", Rotation{}.Transform())
	assert.Equal(t, "rotateX(4.5deg) rotateY(-9deg)", Rotation{X: 4.5, Y: -9}.Transform())
}

func TestCentered(t *testing.T) {
	r := Centered(1280, 720, 420, 260)
	assert.Equal(t, Rect{X: 430, Y: 230, Width: 420, Height: 260}, r)
	assert.True(t, r.Contains(640, 360))
	assert.False(t, r.Contains(10, 10))
}

func TestCardAppliesLatestPendingOnFrame(t *testing.T) {
	c := NewCard(Rect{Width: 100, Height: 100}, 18)

	c.Pointer(0, 0)
	c.Pointer(75, 50)
	assert.Equal(t, Rotation{}, c.Rotation(), "nothing applied before the frame")
	assert.True(t, c.Hovered())

	assert.True(t, c.Frame())
	assert.InDelta(t, 0, c.Rotation().X, 1e-9)
	assert.InDelta(t, 4.5, c.Rotation().Y, 1e-9)
	assert.False(t, c.Frame(), "no pending update")
}

func TestCardResetsOnLeave(t *testing.T) {
	c := NewCard(Rect{Width: 100, Height: 100}, 18)

	c.Pointer(10, 10)
	c.Frame()
	assert.NotEqual(t, Rotation{}, c.Rotation())

	c.Pointer(500, 500)
	assert.False(t, c.Hovered())
	assert.True(t, c.Frame())
	assert.Equal(t, Rotation{}, c.Rotation())

	// moving around outside does not schedule anything
	c.Pointer(600, 600)
	assert.False(t, c.Frame())

	c.Pointer(50, 10)
	c.Leave()
	assert.True(t, c.Frame())
	assert.Equal(t, Rotation{}, c.Rotation())
}

func TestCornersPerspective(t *testing.T) {
	c := NewCard(Rect{X: 0, Y: 0, Width: 200, Height: 100}, 18)

	flat := c.Corners(900)
	assert.InDelta(t, 0, flat[0].X, 1e-9)
	assert.InDelta(t, 200, flat[2].X, 1e-9)
	assert.InDelta(t, 100, flat[2].Y, 1e-9)

	// pointer near the top: the top edge recedes and gets narrower
	c.Pointer(100, 0)
	c.Frame()
	pts := c.Corners(900)
	top := pts[1].X - pts[0].X
	bottom := pts[2].X - pts[3].X
	assert.Less(t, top, bottom)

	// pointer at the right edge: the right side recedes and gets shorter
	c.Pointer(199, 50)
	c.Frame()
	pts = c.Corners(900)
	left := pts[3].Y - pts[0].Y
	right := pts[2].Y - pts[1].Y
	assert.Less(t, right, left)
}
