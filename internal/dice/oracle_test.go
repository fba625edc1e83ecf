package dice_test

import (
	"testing"

	"github.com/KirkDiggler/arena-bot/internal/dice"
	mockdice "github.com/KirkDiggler/arena-bot/internal/dice/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOracle_UniformIntShiftsDie(t *testing.T) {
	roller := mockdice.NewManualMockRoller()
	oracle := dice.NewOracle(roller)

	// [100, 999] is a d900 shifted by 99
	roller.SetRolls([]int{1, 900, 458})
	for _, want := range []int{100, 999, 557} {
		got, err := oracle.UniformInt(100, 999)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}

	// [0, 2] is a d3 shifted by -1
	roller.SetRolls([]int{1, 3})
	got, err := oracle.UniformInt(0, 2)
	require.NoError(t, err)
	assert.Equal(t, 0, got)
	got, err = oracle.UniformInt(0, 2)
	require.NoError(t, err)
	assert.Equal(t, 2, got)
}

func TestOracle_UniformIntSinglePoint(t *testing.T) {
	roller := mockdice.NewManualMockRoller()
	roller.SetRolls([]int{1})

	got, err := dice.NewOracle(roller).UniformInt(7, 7)
	require.NoError(t, err)
	assert.Equal(t, 7, got)
}

func TestOracle_UniformIntRejectsEmptyRange(t *testing.T) {
	_, err := dice.NewOracle(mockdice.NewManualMockRoller()).UniformInt(5, 4)
	assert.Error(t, err)
}

func TestOracle_Chance(t *testing.T) {
	tests := []struct {
		name    string
		percent int
		rolls   []int
		want    bool
	}{
		{name: "roll at threshold succeeds", percent: 25, rolls: []int{25}, want: true},
		{name: "roll above threshold fails", percent: 25, rolls: []int{26}, want: false},
		{name: "lowest roll always succeeds", percent: 1, rolls: []int{1}, want: true},
		{name: "zero never rolls", percent: 0, want: false},
		{name: "hundred never rolls", percent: 100, want: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			roller := mockdice.NewManualMockRoller()
			roller.SetRolls(tt.rolls)

			got, err := dice.NewOracle(roller).Chance(tt.percent)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, 0, roller.Remaining())
		})
	}
}

func TestOracle_PropagatesRollerErrors(t *testing.T) {
	oracle := dice.NewOracle(mockdice.NewManualMockRoller())

	_, err := oracle.UniformInt(1, 10)
	assert.Error(t, err)
	_, err = oracle.Chance(50)
	assert.Error(t, err)
}

func TestOracle_RandomChanceIsRoughlyFair(t *testing.T) {
	oracle := dice.NewOracle(dice.NewSeededRoller(7))

	hits := 0
	const trials = 4000
	for i := 0; i < trials; i++ {
		ok, err := oracle.Chance(25)
		require.NoError(t, err)
		if ok {
			hits++
		}
	}
	assert.InDelta(t, 0.25, float64(hits)/trials, 0.05)
}
