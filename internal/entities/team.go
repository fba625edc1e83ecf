package entities

// Team is the aggregate shared by every character of a game
type Team struct {
	Currency  int `json:"currency"`
	KillCount int `json:"kill_count"`
}

// Field names a mutable numeric attribute of a character or creature.
// Variety and reach are fixed at creation and have no Field.
type Field int

const (
	FieldUnknown Field = iota
	FieldStrength
	FieldLife
)

func (f Field) String() string {
	switch f {
	case FieldStrength:
		return "strength"
	case FieldLife:
		return "life"
	default:
		return "unknown"
	}
}

func (f Field) IsValid() bool {
	return f == FieldStrength || f == FieldLife
}
