package dice

import "fmt"

//go:generate mockgen -destination=mock/mock_oracle.go -package=mockdice -source=oracle.go

// Oracle is the random source the rules draw from
type Oracle interface {
	// UniformInt returns an integer in [lo, hi], both ends included
	UniformInt(lo, hi int) (int, error)
	// Chance returns true with probability percent/100
	Chance(percent int) (bool, error)
}

type rollerOracle struct {
	roller Roller
}

// NewOracle builds an Oracle on top of a dice roller.
// UniformInt(lo, hi) is a single die of hi-lo+1 sides shifted by lo-1.
func NewOracle(roller Roller) Oracle {
	if roller == nil {
		panic("roller is required")
	}
	return &rollerOracle{roller: roller}
}

func (o *rollerOracle) UniformInt(lo, hi int) (int, error) {
	if hi < lo {
		return 0, fmt.Errorf("invalid range [%d, %d]", lo, hi)
	}

	result, err := o.roller.Roll(1, hi-lo+1, lo-1)
	if err != nil {
		return 0, fmt.Errorf("failed to roll [%d, %d]: %w", lo, hi, err)
	}

	return result.Total, nil
}

// Chance rolls a d100 and succeeds when the roll is at most percent
func (o *rollerOracle) Chance(percent int) (bool, error) {
	if percent <= 0 {
		return false, nil
	}
	if percent >= 100 {
		return true, nil
	}

	result, err := o.roller.Roll(1, 100, 0)
	if err != nil {
		return false, fmt.Errorf("failed to roll chance: %w", err)
	}

	return result.Total <= percent, nil
}
