package dice_test

import (
	"testing"

	"github.com/KirkDiggler/arena-bot/internal/dice"
	mockdice "github.com/KirkDiggler/arena-bot/internal/dice/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMockRoller_Roll(t *testing.T) {
	tests := []struct {
		name       string
		setupRolls []int
		count      int
		sides      int
		bonus      int
		wantTotal  int
		wantRolls  []int
		wantErr    bool
	}{
		{
			name:       "single d10 roll",
			setupRolls: []int{7},
			count:      1,
			sides:      10,
			wantTotal:  7,
			wantRolls:  []int{7},
		},
		{
			name:       "2d6+3",
			setupRolls: []int{4, 5},
			count:      2,
			sides:      6,
			bonus:      3,
			wantTotal:  12,
			wantRolls:  []int{4, 5},
		},
		{
			name:       "not enough rolls",
			setupRolls: []int{1},
			count:      2,
			sides:      6,
			wantErr:    true,
		},
		{
			name:       "scripted face larger than die",
			setupRolls: []int{7},
			count:      1,
			sides:      6,
			wantErr:    true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			roller := mockdice.NewManualMockRoller()
			roller.SetRolls(tt.setupRolls)

			result, err := roller.Roll(tt.count, tt.sides, tt.bonus)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.wantTotal, result.Total)
			assert.Equal(t, tt.wantRolls, result.Rolls)
			assert.Equal(t, 0, roller.Remaining())
		})
	}
}

func TestRandomRoller_StaysInRange(t *testing.T) {
	roller := dice.NewRandomRoller()

	for i := 0; i < 200; i++ {
		result, err := roller.Roll(2, 6, 1)
		require.NoError(t, err)
		assert.GreaterOrEqual(t, result.Total, 3)
		assert.LessOrEqual(t, result.Total, 13)
		assert.Len(t, result.Rolls, 2)
	}
}

func TestSeededRoller_IsDeterministic(t *testing.T) {
	a := dice.NewSeededRoller(42)
	b := dice.NewSeededRoller(42)

	for i := 0; i < 20; i++ {
		ra, err := a.Roll(1, 100, 0)
		require.NoError(t, err)
		rb, err := b.Roll(1, 100, 0)
		require.NoError(t, err)
		assert.Equal(t, ra.Total, rb.Total)
	}
}

func TestRoll_RejectsBadDice(t *testing.T) {
	_, err := dice.Roll(0, 6, 0)
	assert.Error(t, err)

	_, err = dice.Roll(1, 0, 0)
	assert.Error(t, err)
}
