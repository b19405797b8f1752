package particle

import "fmt"

// IndexError is the panic value raised when a particle index is out of range.
type IndexError struct {
	Index int
	Len   int
}

func (e *IndexError) Error() string {
	return fmt.Sprintf("particle index %d out of range [0:%d]", e.Index, e.Len)
}

// System owns a bounded, ordered collection of particles.
type System struct {
	origin    Vec
	capacity  int
	particles []Particle
}

// NewSystem allocates an empty system holding at most capacity particles.
func NewSystem(origin Vec, capacity int) *System {
	if capacity < 0 {
		capacity = 0
	}
	return &System{
		origin:    origin,
		capacity:  capacity,
		particles: make([]Particle, 0, capacity),
	}
}

// Origin returns the location new particles are normally spawned from.
func (s *System) Origin() Vec {
	return s.origin
}

// Len returns the number of live particles.
func (s *System) Len() int {
	return len(s.particles)
}

// Cap returns the maximum number of particles.
func (s *System) Cap() int {
	return s.capacity
}

// Add appends p. A full system drops p and reports false.
func (s *System) Add(p Particle) bool {
	if len(s.particles) >= s.capacity {
		return false
	}
	s.particles = append(s.particles, p)
	return true
}

// Advance moves every particle by one step.
func (s *System) Advance() {
	for i := range s.particles {
		s.particles[i].Advance()
	}
}

// At returns a copy of the particle stored at index i.
func (s *System) At(i int) Particle {
	s.check(i)
	return s.particles[i]
}

// RemoveAt deletes the particle at index i, shifting the following
// particles down by one.
func (s *System) RemoveAt(i int) {
	s.check(i)
	copy(s.particles[i:], s.particles[i+1:])
	s.particles[len(s.particles)-1] = Particle{}
	s.particles = s.particles[:len(s.particles)-1]
}

// Each calls fn for every particle in insertion order. fn receives a copy
// and cannot modify the system.
func (s *System) Each(fn func(i int, p Particle)) {
	for i, p := range s.particles {
		fn(i, p)
	}
}

// Snapshot returns a copy of the live particles.
func (s *System) Snapshot() []Particle {
	out := make([]Particle, len(s.particles))
	copy(out, s.particles)
	return out
}

func (s *System) check(i int) {
	if i < 0 || i >= len(s.particles) {
		panic(&IndexError{Index: i, Len: len(s.particles)})
	}
}
