package particle

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func positions(s *System) []Vec {
	var out []Vec
	s.Each(func(_ int, p Particle) {
		out = append(out, p.Position())
	})
	return out
}

func TestSystemAddDropsWhenFull(t *testing.T) {
	s := NewSystem(Vec{}, 2)

	require.True(t, s.Add(NewParticle(Vec{1, 0}, Vec{})))
	require.True(t, s.Add(NewParticle(Vec{2, 0}, Vec{})))
	assert.False(t, s.Add(NewParticle(Vec{3, 0}, Vec{})))

	assert.Equal(t, 2, s.Len())
	assert.Equal(t, []Vec{{1, 0}, {2, 0}}, positions(s))
}

func TestSystemZeroCapacity(t *testing.T) {
	s := NewSystem(Vec{}, 0)
	assert.False(t, s.Add(NewParticle(Vec{}, Vec{})))
	assert.Equal(t, 0, s.Len())
}

func TestSystemAdvance(t *testing.T) {
	s := NewSystem(Vec{}, 4)
	s.Add(NewParticle(Vec{}, Vec{1, 0}))
	s.Add(NewParticle(Vec{5, 5}, Vec{0, -2}))

	s.Advance()
	s.Advance()

	assert.Equal(t, []Vec{{2, 0}, {5, 1}}, positions(s))
}

func TestSystemRemoveAtKeepsOrder(t *testing.T) {
	s := NewSystem(Vec{}, 5)
	for i := 0; i < 5; i++ {
		s.Add(NewParticle(Vec{float64(i), 0}, Vec{}))
	}

	s.RemoveAt(1)
	assert.Equal(t, []Vec{{0, 0}, {2, 0}, {3, 0}, {4, 0}}, positions(s))

	s.RemoveAt(3)
	assert.Equal(t, []Vec{{0, 0}, {2, 0}, {3, 0}}, positions(s))

	s.RemoveAt(0)
	assert.Equal(t, []Vec{{2, 0}, {3, 0}}, positions(s))
}

func TestSystemIndexPanics(t *testing.T) {
	s := NewSystem(Vec{}, 2)
	s.Add(NewParticle(Vec{}, Vec{}))

	for _, i := range []int{-1, 1, 5} {
		func() {
			defer func() {
				r := recover()
				require.NotNil(t, r, "index %d", i)
				err, ok := r.(*IndexError)
				require.True(t, ok)
				assert.Equal(t, i, err.Index)
				assert.Equal(t, 1, err.Len)
			}()
			s.RemoveAt(i)
		}()
		assert.Panics(t, func() { s.At(i) })
	}
	assert.Equal(t, 1, s.Len())
}

func TestSystemSnapshotIsCopy(t *testing.T) {
	s := NewSystem(Vec{}, 1)
	s.Add(NewParticle(Vec{}, Vec{1, 1}))

	snap := s.Snapshot()
	snap[0].Advance()

	p := s.At(0)
	assert.Equal(t, Vec{}, p.Position())
}

func TestSystemOperations(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		capacity := rapid.IntRange(0, 20).Draw(t, "capacity")
		s := NewSystem(Vec{}, capacity)
		var model []float64
		next := 0.0

		t.Repeat(map[string]func(*rapid.T){
			"add": func(t *rapid.T) {
				before := s.Snapshot()
				added := s.Add(NewParticle(Vec{next, 0}, Vec{}))
				if added {
					model = append(model, next)
				} else if len(before) != s.Len() {
					t.Fatalf("rejected add changed length")
				}
				next++
			},
			"remove": func(t *rapid.T) {
				if s.Len() == 0 {
					t.Skip("empty")
				}
				i := rapid.IntRange(0, s.Len()-1).Draw(t, "i")
				n := s.Len()
				s.RemoveAt(i)
				model = append(model[:i], model[i+1:]...)
				if s.Len() != n-1 {
					t.Fatalf("len %d after removing from %d", s.Len(), n)
				}
			},
			"": func(t *rapid.T) {
				if s.Len() > s.Cap() {
					t.Fatalf("len %d exceeds cap %d", s.Len(), s.Cap())
				}
				if s.Len() != len(model) {
					t.Fatalf("len %d, model %d", s.Len(), len(model))
				}
				s.Each(func(i int, p Particle) {
					if p.Position().X != model[i] {
						t.Fatalf("index %d holds %v, want %v", i, p.Position().X, model[i])
					}
				})
			},
		})
	})
}
