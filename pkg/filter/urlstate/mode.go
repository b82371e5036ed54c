package urlstate

import "fmt"

// Mode selects which query parameters carry the filter list.
type Mode int

const (
	// ModeSimple uses the flat search, status, priority and label parameters.
	ModeSimple Mode = iota
	// ModeAdvanced uses one JSON encoded filters parameter.
	ModeAdvanced
)

func (m Mode) String() string {
	switch m {
	case ModeSimple:
		return "simple"
	case ModeAdvanced:
		return "advanced"
	}
	return fmt.Sprintf("Mode(%d)", int(m))
}

// ParseMode maps "simple" and "advanced" to their mode.
func ParseMode(s string) (Mode, error) {
	switch s {
	case "simple":
		return ModeSimple, nil
	case "advanced":
		return ModeAdvanced, nil
	}
	return ModeSimple, fmt.Errorf("unknown filter mode %q", s)
}
