// Package field simulates the hero particle field: drifting points joined by
// faint lines when close and pushed away by the pointer.
package field

import (
	"math"
	"math/rand/v2"

	"github.com/iburimskiy/hero-backdrop/internal/config"
)

// Surface is the drawing area the field lives on.
type Surface struct {
	Width, Height           float64 // logical pixels
	Scale                   float64 // device pixel ratio after capping
	PixelWidth, PixelHeight int
}

// Pointer is the last known cursor position.
type Pointer struct {
	X, Y   float64
	Active bool
}

// Field owns the particles and the pointer state read by every step.
type Field struct {
	cfg       config.FieldConfig
	maxScale  float64
	rng       *rand.Rand
	surface   Surface
	pointer   Pointer
	particles []Particle
}

// New returns an empty field. It has no particles until the first Resize.
// A nil rng falls back to an unseeded source.
func New(cfg config.FieldConfig, maxScale float64, rng *rand.Rand) *Field {
	if rng == nil {
		rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	if maxScale < 1 {
		maxScale = 1
	}
	return &Field{cfg: cfg, maxScale: maxScale, rng: rng}
}

// Mount creates the field for cfg, or returns nil when reduced motion is
// preferred. Nothing is drawn or stepped for a nil field.
func Mount(cfg *config.Config, rng *rand.Rand) *Field {
	if cfg.Motion.Reduced {
		return nil
	}
	return New(cfg.Field, cfg.Window.MaxDeviceScale, rng)
}

// TargetCount is the particle count for a view of the given logical size.
func TargetCount(cfg config.FieldConfig, width, height float64) int {
	n := int(math.Round(float64(cfg.BaselineParticles) + width*height*cfg.DensityFactor))
	return min(cfg.MaxParticles, n)
}

// ConnectionAlpha is the line opacity factor for two particles at distance d.
// It falls linearly from 1 at d=0 to exactly 0 at maxDistance.
func ConnectionAlpha(d, maxDistance float64) float64 {
	if d >= maxDistance {
		return 0
	}
	return 1 - d/maxDistance
}

// PointerPush returns the velocity change towards (dx, dy), the offset from
// a particle to the pointer. It is zero outside the influence radius and grows
// as the particle gets closer. Callers subtract it to push particles away.
func PointerPush(dx, dy, influence, strength float64) (float64, float64) {
	d := math.Hypot(dx, dy)
	if d >= influence || d == 0 {
		return 0, 0
	}
	s := (influence - d) / influence
	return dx / d * s * strength, dy / d * s * strength
}

// Resize sets the surface from the logical viewport size and device pixel
// ratio, then regenerates the particle set for the new area.
func (f *Field) Resize(width, height, dpr float64) {
	if dpr <= 0 {
		dpr = 1
	}
	dpr = math.Min(dpr, f.maxScale)
	f.surface = Surface{
		Width:       width,
		Height:      height,
		Scale:       dpr,
		PixelWidth:  int(width * dpr),
		PixelHeight: int(height * dpr),
	}

	n := TargetCount(f.cfg, width, height)
	f.particles = make([]Particle, max(n, 0))
	for i := range f.particles {
		f.reset(&f.particles[i], true)
	}
}

// Step advances every particle by one frame.
func (f *Field) Step() {
	for i := range f.particles {
		f.update(&f.particles[i])
	}
}

// Connections calls fn for every unordered pair closer than the connection
// distance, with the pair's opacity factor.
func (f *Field) Connections(fn func(a, b *Particle, alpha float64)) {
	limit := f.cfg.ConnectDistance
	limitSq := limit * limit
	for i := range f.particles {
		a := &f.particles[i]
		for j := i + 1; j < len(f.particles); j++ {
			b := &f.particles[j]
			dx, dy := a.X-b.X, a.Y-b.Y
			dsq := dx*dx + dy*dy
			if dsq < limitSq {
				fn(a, b, ConnectionAlpha(math.Sqrt(dsq), limit))
			}
		}
	}
}

// MovePointer records a pointer move and activates the push.
func (f *Field) MovePointer(x, y float64) {
	f.pointer = Pointer{X: x, Y: y, Active: true}
}

// ReleasePointer deactivates the push, keeping the last position.
func (f *Field) ReleasePointer() {
	f.pointer.Active = false
}

func (f *Field) Pointer() Pointer { return f.pointer }
func (f *Field) Surface() Surface { return f.surface }
func (f *Field) Particles() []Particle { return f.particles }
func (f *Field) Config() config.FieldConfig { return f.cfg }
