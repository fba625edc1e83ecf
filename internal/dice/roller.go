package dice

// Roller rolls dice. Implementations are injected so tests can script rolls.
type Roller interface {
	// Roll rolls count dice with the given sides and adds a bonus
	Roll(count, sides, bonus int) (*RollResult, error)
}
