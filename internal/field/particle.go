package field

// Particle is a single drifting point of the field.
type Particle struct {
	X, Y   float64
	VX, VY float64
	Size   float64
	Energy float64 // 0.35..1, drives opacity and glow
}

// reset redraws every field of p. Initial resets scatter particles across the
// view; later ones spawn just past the left or right edge.
func (f *Field) reset(p *Particle, initial bool) {
	w, h := f.surface.Width, f.surface.Height
	switch {
	case initial:
		p.X = f.rng.Float64() * w
	case f.rng.Float64() < 0.5:
		p.X = -f.cfg.SpawnOffset
	default:
		p.X = w + f.cfg.SpawnOffset
	}
	p.Y = f.rng.Float64() * h
	p.VX = (f.rng.Float64() - 0.5) * f.cfg.MaxVelocity * (f.rng.Float64()*2 + 0.6)
	p.VY = (f.rng.Float64() - 0.5) * f.cfg.MaxVelocity * (f.rng.Float64()*2 + 0.6)
	p.Size = f.cfg.MinSize + f.rng.Float64()*(f.cfg.MaxSize-f.cfg.MinSize)
	p.Energy = 0.35 + f.rng.Float64()*0.65
}

// outside reports whether p drifted past the view plus the bounds margin.
func (f *Field) outside(p *Particle) bool {
	m := f.cfg.BoundsMargin
	return p.X < -m || p.X > f.surface.Width+m || p.Y < -m || p.Y > f.surface.Height+m
}

// update integrates p one frame and applies the pointer push.
func (f *Field) update(p *Particle) {
	p.X += p.VX
	p.Y += p.VY

	if f.pointer.Active {
		ax, ay := PointerPush(f.pointer.X-p.X, f.pointer.Y-p.Y, f.cfg.PointerInfluence, f.cfg.PointerStrength)
		p.VX -= ax
		p.VY -= ay
	}

	if f.outside(p) {
		f.reset(p, false)
	}
}
