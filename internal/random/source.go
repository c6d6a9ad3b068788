// Package random provides the uniform random source used by every game roll.
package random

import (
	"math/rand/v2"
	"sync"
)

// Source is a uniform random source
type Source interface {
	// Float64 returns a value in [0, 1)
	Float64() float64
	// IntN returns a value in [0, n)
	IntN(n int) int
}

// lockedSource wraps a math/rand generator for use from timer callbacks
type lockedSource struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// New returns a source seeded from the runtime's entropy
func New() Source {
	return &lockedSource{
		rng: rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64())),
	}
}

func (s *lockedSource) Float64() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rng.Float64()
}

func (s *lockedSource) IntN(n int) int {
	if n <= 0 {
		return 0
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rng.IntN(n)
}

// Sequence replays a fixed list of floats. IntN maps the next float onto [0, n).
// When the list is exhausted the last value repeats.
type Sequence struct {
	mu     sync.Mutex
	values []float64
	next   int
}

// NewSequence creates a scripted source
func NewSequence(values ...float64) *Sequence {
	return &Sequence{values: values}
}

func (s *Sequence) pop() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.values) == 0 {
		return 0
	}
	if s.next >= len(s.values) {
		return s.values[len(s.values)-1]
	}
	v := s.values[s.next]
	s.next++
	return v
}

// Float64 returns the next scripted value
func (s *Sequence) Float64() float64 {
	return s.pop()
}

// IntN scales the next scripted value onto [0, n)
func (s *Sequence) IntN(n int) int {
	if n <= 0 {
		return 0
	}
	i := int(s.pop() * float64(n))
	if i >= n {
		i = n - 1
	}
	if i < 0 {
		i = 0
	}
	return i
}
