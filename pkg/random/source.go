package random

import (
	"math/rand/v2"
	"sync"
	"time"
)

// Source supplies the pseudo-random fill-in values used when an upstream
// listing omits numeric fields. It is injected rather than ambient so tests
// can pin the output.
type Source interface {
	// Float64 returns a value in [0,1).
	Float64() float64
	// IntN returns a value in [0,n). n must be positive.
	IntN(n int) int
}

type lockedSource struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// New returns a time-seeded source for production use.
func New() Source {
	return NewSeeded(time.Now().UnixNano())
}

// NewSeeded returns a deterministic source for the given seed.
func NewSeeded(seed int64) Source {
	return &lockedSource{rng: rand.New(rand.NewPCG(uint64(seed), uint64(seed)))}
}

func (s *lockedSource) Float64() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rng.Float64()
}

func (s *lockedSource) IntN(n int) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rng.IntN(n)
}

// FloatBetween returns a value in [min,max) drawn from src.
func FloatBetween(src Source, min, max float64) float64 {
	if max <= min {
		return min
	}
	return min + src.Float64()*(max-min)
}

// IntBetween returns a value in [min,max] drawn from src.
func IntBetween(src Source, min, max int) int {
	if max <= min {
		return min
	}
	return min + src.IntN(max-min+1)
}
