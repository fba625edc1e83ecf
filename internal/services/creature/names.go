package creature

import (
	"fmt"

	"github.com/KirkDiggler/arena-bot/internal/dice"
)

const (
	// favouredPrefix is used for the first creature and a third of the rest
	favouredPrefix = "Python"

	suffixMin = 100
	suffixMax = 999
)

var otherPrefixes = [...]string{"Lieju", "Raiden", "Rinnees"}

// RollName draws a creature name like "Raiden#412". The prefix roll is
// skipped while the team has no kills.
func RollName(oracle dice.Oracle, kills int) (string, error) {
	prefix := favouredPrefix
	if kills > 0 {
		favoured, err := oracle.UniformInt(0, 2)
		if err != nil {
			return "", err
		}
		if favoured != 0 {
			pick, err := oracle.UniformInt(0, len(otherPrefixes)-1)
			if err != nil {
				return "", err
			}
			prefix = otherPrefixes[pick]
		}
	}

	suffix, err := oracle.UniformInt(suffixMin, suffixMax)
	if err != nil {
		return "", err
	}

	return fmt.Sprintf("%s#%d", prefix, suffix), nil
}
