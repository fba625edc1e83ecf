package entities

// Creature is a spawned opponent. Creatures are removed from the game as
// soon as their life drops to zero.
type Creature struct {
	Name     string `json:"name"`
	Reach    Reach  `json:"reach"`
	Strength int    `json:"strength"`
	Life     int    `json:"life"`
}

func (c *Creature) IsAlive() bool {
	return c.Life > 0
}

func (c *Creature) Clone() *Creature {
	if c == nil {
		return nil
	}
	clone := *c
	return &clone
}
