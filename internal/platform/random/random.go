// Package random provides the pseudo random byte source of the interpreter.
package random

import (
	"math/rand/v2"
	"sync"
	"time"
)

// Source is a seedable pseudo random byte source.
type Source struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// New returns a source that produces a reproducible sequence for the seed.
func New(seed uint64) *Source {
	return &Source{
		rng: rand.New(rand.NewPCG(seed, seed^0x9E3779B97F4A7C15)),
	}
}

// NewTimeSeeded returns a source seeded with the current time.
func NewTimeSeeded() *Source {
	return New(uint64(time.Now().UnixNano()))
}

// RandomByte returns the next random byte.
func (s *Source) RandomByte() uint8 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return uint8(s.rng.UintN(256))
}
