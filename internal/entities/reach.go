package entities

import (
	"fmt"
	"strings"
)

// Reach is how far a combatant can strike
type Reach int

const (
	ReachUnknown Reach = iota
	ReachShort
	ReachLong
)

func (r Reach) String() string {
	switch r {
	case ReachShort:
		return "short"
	case ReachLong:
		return "long"
	default:
		return "unknown"
	}
}

// IsValid reports whether r is short or long
func (r Reach) IsValid() bool {
	return r == ReachShort || r == ReachLong
}

// ParseReach converts "short" or "long" into a Reach
func ParseReach(s string) (Reach, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "short":
		return ReachShort, nil
	case "long":
		return ReachLong, nil
	default:
		return ReachUnknown, fmt.Errorf("unknown reach %q", s)
	}
}

func (r Reach) MarshalText() ([]byte, error) {
	if !r.IsValid() {
		return nil, fmt.Errorf("cannot marshal reach %d", int(r))
	}
	return []byte(r.String()), nil
}

func (r *Reach) UnmarshalText(text []byte) error {
	parsed, err := ParseReach(string(text))
	if err != nil {
		return err
	}
	*r = parsed
	return nil
}
