package notation

import (
	"errors"
	"fmt"
	"strings"

	"chessrules/engine"
)

var ErrInvalidMove = errors.New("invalid move text")

// ParseMove reads coordinate notation: "e2e4", "e2-e4" or "e7e8q".
// The result is a proposal; engine.IsLegalMove fills in special-move data.
func ParseMove(s string) (engine.Movement, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	s = strings.ReplaceAll(s, "-", "")
	if len(s) != 4 && len(s) != 5 {
		return engine.Movement{}, fmt.Errorf("%w: %q", ErrInvalidMove, s)
	}
	start, err := engine.ParsePosition(s[0:2])
	if err != nil {
		return engine.Movement{}, fmt.Errorf("%w: %v", ErrInvalidMove, err)
	}
	end, err := engine.ParsePosition(s[2:4])
	if err != nil {
		return engine.Movement{}, fmt.Errorf("%w: %v", ErrInvalidMove, err)
	}
	m := engine.NewMovement(start, end)
	if len(s) == 5 {
		p, ok := engine.ParseLetter(s[4])
		if !ok || p.Kind == engine.King || p.Kind == engine.Pawn {
			return engine.Movement{}, fmt.Errorf("%w: promotion %q", ErrInvalidMove, s[4:])
		}
		m.Special = engine.Promotion
		m.Promotion = p.Kind
	}
	return m, nil
}

func FormatMove(m engine.Movement) string { return m.String() }
