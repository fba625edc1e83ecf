package entities

// Character is a member of the team. A character with zero life is dead
// but keeps its record so a necromancer can raise it.
type Character struct {
	Name     string  `json:"name"`
	Variety  Variety `json:"variety"`
	Reach    Reach   `json:"reach"`
	Strength int     `json:"strength"`
	Life     int     `json:"life"`
}

// IsAlive reports whether the character can still act
func (c *Character) IsAlive() bool {
	return c.Life > 0
}

// Clone returns a copy safe to hand to callers
func (c *Character) Clone() *Character {
	if c == nil {
		return nil
	}
	clone := *c
	return &clone
}
