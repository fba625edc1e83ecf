package entities

import (
	"fmt"
	"strings"
)

// Variety is the fixed kind of a character, chosen at creation
type Variety int

const (
	VarietyUnknown Variety = iota
	VarietyDwarf
	VarietyElf
	VarietyHealer
	VarietyWizard
	VarietyNecromancer
)

var varietyNames = map[Variety]string{
	VarietyDwarf:       "dwarf",
	VarietyElf:         "elf",
	VarietyHealer:      "healer",
	VarietyWizard:      "wizard",
	VarietyNecromancer: "necromancer",
}

// Varieties lists the playable varieties in display order
func Varieties() []Variety {
	return []Variety{VarietyDwarf, VarietyElf, VarietyHealer, VarietyWizard, VarietyNecromancer}
}

func (v Variety) String() string {
	if name, ok := varietyNames[v]; ok {
		return name
	}
	return "unknown"
}

// IsValid reports whether v is one of the playable varieties
func (v Variety) IsValid() bool {
	_, ok := varietyNames[v]
	return ok
}

// ParseVariety converts user input such as "Wizard" into a Variety.
// Unrecognized input returns VarietyUnknown and an error.
func ParseVariety(s string) (Variety, error) {
	needle := strings.ToLower(strings.TrimSpace(s))
	for v, name := range varietyNames {
		if name == needle {
			return v, nil
		}
	}
	return VarietyUnknown, fmt.Errorf("unknown variety %q", s)
}

// MarshalText stores the variety by name
func (v Variety) MarshalText() ([]byte, error) {
	if !v.IsValid() {
		return nil, fmt.Errorf("cannot marshal variety %d", int(v))
	}
	return []byte(v.String()), nil
}

// UnmarshalText restores a variety stored by name
func (v *Variety) UnmarshalText(text []byte) error {
	parsed, err := ParseVariety(string(text))
	if err != nil {
		return err
	}
	*v = parsed
	return nil
}
