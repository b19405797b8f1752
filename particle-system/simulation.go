package particle

import (
	"errors"
	"fmt"
	"math/rand"
	"time"
)

// ErrInvalidConfig is returned when a simulation is built from an unusable Config.
var ErrInvalidConfig = errors.New("invalid particle config")

// Config holds the tunables of the frame policy.
type Config struct {
	Width         float64 // viewport width, also drives the color falloff
	Height        float64
	Origin        Vec
	Capacity      int
	SpawnEvery    uint64 // spawn one particle every SpawnEvery frames
	ExplosionOdds int    // each particle explodes with probability 1/ExplosionOdds per frame
	Fanout        int    // particles created by an explosion
	Speed         float64
	Size          float64 // side of the square marker drawn per particle
}

// DefaultConfig returns the reference tuning: a 640x360 viewport holding
// up to 1000 particles.
func DefaultConfig() Config {
	return Config{
		Width:         640,
		Height:        360,
		Capacity:      1000,
		SpawnEvery:    5,
		ExplosionOdds: 10000,
		Fanout:        36,
		Speed:         1,
		Size:          3,
	}
}

// Validate checks the config for values the frame policy cannot run with.
func (c Config) Validate() error {
	switch {
	case c.Width <= 0 || c.Height <= 0:
		return fmt.Errorf("%w: viewport %vx%v", ErrInvalidConfig, c.Width, c.Height)
	case c.Capacity < 0:
		return fmt.Errorf("%w: capacity %d", ErrInvalidConfig, c.Capacity)
	case c.SpawnEvery == 0:
		return fmt.Errorf("%w: spawn cadence must be positive", ErrInvalidConfig)
	case c.ExplosionOdds < 1:
		return fmt.Errorf("%w: explosion odds %d", ErrInvalidConfig, c.ExplosionOdds)
	case c.Fanout < 0:
		return fmt.Errorf("%w: fanout %d", ErrInvalidConfig, c.Fanout)
	case c.Size <= 0:
		return fmt.Errorf("%w: particle size %v", ErrInvalidConfig, c.Size)
	}
	return nil
}

// Viewport returns the visible world rectangle.
func (c Config) Viewport() Rect {
	return NewRect(c.Width, c.Height)
}

// Rand is the random source consumed by a simulation. *rand.Rand satisfies it.
type Rand interface {
	Intn(n int) int
}

// NewRand returns a seeded random source. A zero seed is replaced by the
// current time.
func NewRand(seed int64) *rand.Rand {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return rand.New(rand.NewSource(seed))
}

// Bounds decides whether a point is still visible.
type Bounds interface {
	Contains(p Vec) bool
}

// Stats summarizes what happened during one tick.
type Stats struct {
	Frame      uint64
	Skipped    bool
	Spawned    int
	Dropped    int // particles rejected by a full system
	Removed    int // particles that left the viewport
	Explosions int
	Live       int
}

// Simulation applies the spawn, advance and explode policy to a System.
type Simulation struct {
	cfg Config
	sys *System
	rng Rand
}

// NewSimulation builds a simulation with an empty system.
func NewSimulation(cfg Config, rng Rand) (*Simulation, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if rng == nil {
		return nil, fmt.Errorf("%w: nil random source", ErrInvalidConfig)
	}
	return &Simulation{
		cfg: cfg,
		sys: NewSystem(cfg.Origin, cfg.Capacity),
		rng: rng,
	}, nil
}

// Config returns the simulation tunables.
func (s *Simulation) Config() Config {
	return s.cfg
}

// System returns the particle system driven by s.
func (s *Simulation) System() *System {
	return s.sys
}

// Tick runs one frame: spawn on cadence, advance every particle, then
// resolve removals and explosions. A nil bounds means no viewport is
// available and the whole tick is skipped.
func (s *Simulation) Tick(frame uint64, bounds Bounds) Stats {
	st := Stats{Frame: frame}
	if bounds == nil {
		st.Skipped = true
		st.Live = s.sys.Len()
		return st
	}

	if frame%s.cfg.SpawnEvery == 0 {
		deg := float64(s.rng.Intn(360))
		s.add(NewParticle(s.sys.Origin(), FromAngle(deg, s.cfg.Speed)), &st)
	}

	s.sys.Advance()
	s.resolve(bounds, &st)

	st.Live = s.sys.Len()
	return st
}

// resolve scans the system from the last index down. Removing index i only
// shifts entries above i, and bursts are appended past the end, so every
// index still to be visited stays valid. Burst particles are first
// considered on the next tick.
func (s *Simulation) resolve(bounds Bounds, st *Stats) {
	for i := s.sys.Len() - 1; i >= 0; i-- {
		pos := s.sys.particles[i].Position()
		if !bounds.Contains(pos) {
			s.sys.RemoveAt(i)
			st.Removed++
			continue
		}
		if s.rng.Intn(s.cfg.ExplosionOdds) != 0 {
			continue
		}
		s.explode(pos, st)
		s.sys.RemoveAt(i)
		st.Explosions++
	}
}

func (s *Simulation) explode(at Vec, st *Stats) {
	for k := 0; k < s.cfg.Fanout; k++ {
		deg := float64(k) * 360 / float64(s.cfg.Fanout)
		s.add(NewParticle(at, FromAngle(deg, s.cfg.Speed)), st)
	}
}

func (s *Simulation) add(p Particle, st *Stats) {
	if s.sys.Add(p) {
		st.Spawned++
		return
	}
	st.Dropped++
}

// Sprite is a particle ready to be drawn.
type Sprite struct {
	Pos   Vec
	Color Color
}

// Frame is the render output of one tick.
type Frame struct {
	Number   uint64
	Viewport Rect
	Size     float64
	Sprites  []Sprite
}

// Frame collects the live particles in insertion order together with
// their display colors.
func (s *Simulation) Frame(n uint64) Frame {
	f := Frame{
		Number:   n,
		Viewport: s.cfg.Viewport(),
		Size:     s.cfg.Size,
		Sprites:  make([]Sprite, 0, s.sys.Len()),
	}
	s.sys.Each(func(_ int, p Particle) {
		f.Sprites = append(f.Sprites, Sprite{Pos: p.Position(), Color: p.Color(s.cfg.Width)})
	})
	return f
}
