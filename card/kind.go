package card

import (
	"strings"

	"emperror.dev/errors"
)

// Kind selects the title, subtext template and file name prefix of a card.
type Kind int

const (
	Welcome Kind = iota
	Goodbye
)

func (k Kind) String() string {
	switch k {
	case Welcome:
		return "welcome"
	case Goodbye:
		return "goodbye"
	default:
		return "unknown"
	}
}

// Title is the large heading drawn on the card.
func (k Kind) Title() string {
	return strings.ToUpper(k.String())
}

// ParseKind parses "welcome" or "goodbye", case-insensitively.
func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "welcome":
		return Welcome, nil
	case "goodbye":
		return Goodbye, nil
	}
	return 0, errors.Errorf("unknown card kind %q", s)
}
