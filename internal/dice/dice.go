package dice

import (
	"errors"
	"math/rand"
	"sync"
)

// RollResult records every die of a roll
type RollResult struct {
	Total    int
	Rolls    []int
	Bonus    int
	Count    int
	Sides    int
	RawTotal int
}

var (
	globalMu  sync.Mutex
	globalRng = rand.New(rand.NewSource(rand.Int63()))
)

// Roll rolls count dice of size sides and adds bonus
func Roll(count, sides, bonus int) (*RollResult, error) {
	globalMu.Lock()
	defer globalMu.Unlock()
	return rollWith(globalRng, count, sides, bonus)
}

func rollWith(rng *rand.Rand, count, sides, bonus int) (*RollResult, error) {
	if count < 1 {
		return nil, errors.New("invalid dice count")
	}

	if sides < 1 {
		return nil, errors.New("invalid dice size")
	}

	total := 0
	out := make([]int, count)
	for i := 0; i < count; i++ {
		roll := rng.Intn(sides) + 1
		total += roll
		out[i] = roll
	}

	return &RollResult{
		Total:    total + bonus,
		Rolls:    out,
		Bonus:    bonus,
		Count:    count,
		Sides:    sides,
		RawTotal: total,
	}, nil
}
