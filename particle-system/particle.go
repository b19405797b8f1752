package particle

import (
	"math"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// Particle defines the kinematic state of a single particle.
type Particle struct {
	origin   Vec
	position Vec
	velocity Vec
}

// NewParticle spawns a new particle at pos moving by vel every tick.
func NewParticle(pos, vel Vec) Particle {
	return Particle{origin: pos, position: pos, velocity: vel}
}

// Origin returns the position the particle was spawned at.
func (p Particle) Origin() Vec {
	return p.origin
}

// Position returns the current particle position.
func (p Particle) Position() Vec {
	return p.position
}

// Velocity returns the per tick displacement.
func (p Particle) Velocity() Vec {
	return p.velocity
}

// Advance moves the particle by one velocity step.
func (p *Particle) Advance() {
	p.position = p.position.Add(p.velocity)
}

// Color returns the display color of the particle. Particles start yellow
// and turn red as their squared distance from the origin approaches
// (viewportWidth/2)^2.
func (p Particle) Color(viewportWidth float64) Color {
	d := p.position.Dist2(p.origin)
	maxD := (viewportWidth / 2) * (viewportWidth / 2)

	var t float64
	switch {
	case maxD > 0:
		t = math.Max(0, math.Min(d/maxD, 1))
	case d > 0:
		t = 1
	}
	return Color{R: 1, G: 1 - t, B: 0, A: 1}
}

// Color is a straight alpha RGBA color with channels in [0, 1].
type Color struct {
	R, G, B, A float64
}

// Hex returns the color as a #rrggbb string, alpha ignored.
func (c Color) Hex() string {
	return colorful.Color{R: c.R, G: c.G, B: c.B}.Clamped().Hex()
}

// RGB255 returns the color channels scaled to [0, 255].
func (c Color) RGB255() (r, g, b uint8) {
	return colorful.Color{R: c.R, G: c.G, B: c.B}.Clamped().RGB255()
}
