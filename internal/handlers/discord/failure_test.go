package discord

import (
	"errors"
	"testing"

	dnderr "github.com/KirkDiggler/arena-bot/internal/errors"
	"github.com/stretchr/testify/assert"
)

func TestFailureMessage(t *testing.T) {
	busy := dnderr.Wrapf(dnderr.Conflictf("game %s is busy", "g1"), "%s failed", "combat.attack")
	assert.Equal(t, "The arena is busy, try again in a moment", failureMessage(busy))

	assert.Equal(t, "Something went wrong in the arena", failureMessage(dnderr.Internal("disk gone")))
	assert.Equal(t, "Something went wrong in the arena", failureMessage(errors.New("boom")))
}
