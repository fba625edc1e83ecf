package dice

import (
	"math/rand"
	"sync"
)

// randomRoller implements Roller with math/rand
type randomRoller struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// NewRandomRoller creates a roller backed by the package generator
func NewRandomRoller() Roller {
	return &randomRoller{}
}

// NewSeededRoller creates a roller with its own deterministic generator
func NewSeededRoller(seed int64) Roller {
	return &randomRoller{rng: rand.New(rand.NewSource(seed))}
}

// Roll implements Roller.Roll
func (r *randomRoller) Roll(count, sides, bonus int) (*RollResult, error) {
	if r.rng == nil {
		return Roll(count, sides, bonus)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	return rollWith(r.rng, count, sides, bonus)
}
