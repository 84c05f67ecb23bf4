package field

import (
	"math"
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iburimskiy/hero-backdrop/internal/config"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	cfg, err := config.Default()
	require.NoError(t, err)
	return cfg
}

func newTestField(t *testing.T) *Field {
	t.Helper()
	cfg := testConfig(t)
	return New(cfg.Field, cfg.Window.MaxDeviceScale, rand.New(rand.NewPCG(1, 2)))
}

func TestTargetCount(t *testing.T) {
	cfg := testConfig(t).Field

	tests := []struct {
		w, h float64
		want int
	}{
		{0, 0, 80},
		{100, 100, 81},      // 80 + 0.8
		{1280, 720, 154},    // 80 + 73.728
		{1920, 1080, 246},   // 80 + 165.888
		{2560, 1440, 260},   // capped
		{10000, 10000, 260}, // capped
	}
	for _, tt := range tests {
		want := min(cfg.MaxParticles, int(math.Round(float64(cfg.BaselineParticles)+tt.w*tt.h*cfg.DensityFactor)))
		assert.Equal(t, want, tt.want)
		assert.Equal(t, tt.want, TargetCount(cfg, tt.w, tt.h), "%gx%g", tt.w, tt.h)
	}
}

func TestResize(t *testing.T) {
	f := newTestField(t)

	f.Resize(1280, 720, 3)
	s := f.Surface()
	assert.Equal(t, 2.0, s.Scale, "device scale is capped")
	assert.Equal(t, 2560, s.PixelWidth)
	assert.Equal(t, 1440, s.PixelHeight)
	assert.Len(t, f.Particles(), TargetCount(f.Config(), 1280, 720))

	for _, p := range f.Particles() {
		assert.GreaterOrEqual(t, p.X, 0.0)
		assert.Less(t, p.X, 1280.0)
		assert.GreaterOrEqual(t, p.Y, 0.0)
		assert.Less(t, p.Y, 720.0)
		assert.GreaterOrEqual(t, p.Size, f.Config().MinSize)
		assert.Less(t, p.Size, f.Config().MaxSize)
		assert.GreaterOrEqual(t, p.Energy, 0.35)
		assert.Less(t, p.Energy, 1.0)
	}

	f.Resize(400, 300, 0)
	assert.Equal(t, 1.0, f.Surface().Scale, "missing ratio falls back to 1")
	assert.Len(t, f.Particles(), TargetCount(f.Config(), 400, 300))
}

func TestResetPlacesAtEdge(t *testing.T) {
	f := newTestField(t)
	f.Resize(800, 600, 1)
	w := f.Surface().Width
	off := f.Config().SpawnOffset

	escapes := []Particle{
		{X: -41, Y: 10},
		{X: w + 41, Y: 10},
		{X: 10, Y: -100},
		{X: 10, Y: 700},
	}
	for i := 0; i < 200; i++ {
		for _, start := range escapes {
			p := start
			f.update(&p)
			assert.True(t, p.X == -off || p.X == w+off, "x=%g", p.X)
			assert.GreaterOrEqual(t, p.X, -off)
			assert.LessOrEqual(t, p.X, w+off)
			assert.GreaterOrEqual(t, p.Y, 0.0)
			assert.Less(t, p.Y, f.Surface().Height)
		}
	}
}

func TestInsideMarginIsKept(t *testing.T) {
	f := newTestField(t)
	f.Resize(800, 600, 1)

	p := Particle{X: -39, Y: 300, VX: 0, VY: 0, Size: 1, Energy: 0.5}
	f.update(&p)
	assert.Equal(t, -39.0, p.X)
}

func TestConnectionAlpha(t *testing.T) {
	const limit = 180.0

	assert.Equal(t, 1.0, ConnectionAlpha(0, limit))
	assert.Equal(t, 0.0, ConnectionAlpha(limit, limit))
	assert.Equal(t, 0.0, ConnectionAlpha(limit+1, limit))

	prev := ConnectionAlpha(0, limit)
	for d := 1.0; d <= limit; d++ {
		a := ConnectionAlpha(d, limit)
		assert.Less(t, a, prev, "d=%g", d)
		prev = a
	}
}

func TestConnectionsOnlyNearPairs(t *testing.T) {
	f := newTestField(t)
	f.Resize(1000, 1000, 1)
	f.particles = []Particle{
		{X: 0, Y: 0},
		{X: 90, Y: 0},
		{X: 500, Y: 500},
	}

	var pairs int
	f.Connections(func(a, b *Particle, alpha float64) {
		pairs++
		assert.InDelta(t, 0.5, alpha, 1e-9)
	})
	assert.Equal(t, 1, pairs)
}

func TestPointerPush(t *testing.T) {
	const influence, strength = 160.0, 0.02

	ax, ay := PointerPush(influence, 0, influence, strength)
	assert.Zero(t, ax)
	assert.Zero(t, ay)

	ax, ay = PointerPush(0, 0, influence, strength)
	assert.Zero(t, ax, "coincident pointer has no direction")
	assert.Zero(t, ay)

	prev := 0.0
	for d := influence - 1; d > 0; d -= 5 {
		ax, ay := PointerPush(d, 0, influence, strength)
		assert.Zero(t, ay)
		mag := math.Hypot(ax, ay)
		assert.Greater(t, mag, prev, "d=%g", d)
		prev = mag
	}
}

func TestStepPushesAwayFromPointer(t *testing.T) {
	f := newTestField(t)
	f.Resize(800, 600, 1)
	f.particles = []Particle{{X: 400, Y: 300}, {X: 100, Y: 100}}

	f.MovePointer(450, 300)
	f.Step()
	assert.Less(t, f.particles[0].VX, 0.0, "pushed left, away from the pointer")
	assert.Zero(t, f.particles[1].VX, "outside influence")

	f.ReleasePointer()
	assert.False(t, f.Pointer().Active)
	vx := f.particles[0].VX
	f.Step()
	assert.Equal(t, vx, f.particles[0].VX)
}

func TestReducedMotionNeverMounts(t *testing.T) {
	cfg := testConfig(t)
	cfg.Motion.Reduced = true

	f := Mount(cfg, nil)
	assert.Nil(t, f)

	loop := NewLoop(f)
	loop.Start()
	loop.Resize(800, 600, 1)
	assert.False(t, loop.Running())
	assert.False(t, loop.Tick())
	assert.Zero(t, loop.Frames())
}

func TestLoop(t *testing.T) {
	cfg := testConfig(t)
	f := Mount(cfg, rand.New(rand.NewPCG(3, 4)))
	require.NotNil(t, f)

	loop := NewLoop(f)
	assert.False(t, loop.Tick(), "not started")

	loop.Resize(800, 600, 1)
	assert.True(t, loop.Running())
	assert.True(t, loop.Tick())
	assert.True(t, loop.Tick())
	assert.Equal(t, uint64(2), loop.Frames())

	loop.Resize(400, 300, 1)
	assert.True(t, loop.Tick())
	assert.Equal(t, uint64(3), loop.Frames(), "resize restarts a single loop")

	loop.Cancel()
	assert.False(t, loop.Tick())
}
