package forecast

import (
	"math/rand/v2"
	"sync"
)

// Source draws uniform integers. Intn returns a value in the closed range [min, max].
type Source interface {
	Intn(min, max int) int
}

type globalSource struct{}

// NewSource returns a goroutine-safe Source backed by the runtime-seeded global generator.
func NewSource() Source {
	return globalSource{}
}

func (globalSource) Intn(min, max int) int {
	return min + rand.IntN(max-min+1)
}

type seededSource struct {
	mu  sync.Mutex
	rnd *rand.Rand
}

// NewSeededSource returns a goroutine-safe Source whose sequence is fixed by seed.
func NewSeededSource(seed uint64) Source {
	return &seededSource{rnd: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))}
}

func (s *seededSource) Intn(min, max int) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return min + s.rnd.IntN(max-min+1)
}
