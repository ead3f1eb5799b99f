// Package engine implements the chess rules core: board, pieces, move
// generation, legality and terminal-state detection.
package engine

import (
	"fmt"
	"strings"

	"golang.org/x/exp/constraints"
)

// Position is a (file, rank) pair, both counted from 1.
type Position struct {
	File int
	Rank int
}

// InvalidPosition is returned by lookups that find nothing.
var InvalidPosition = Position{}

// NewPosition returns the position or ErrInvalidPosition when either coordinate is outside [1,8].
func NewPosition(file, rank int) (Position, error) {
	p := Position{File: file, Rank: rank}
	if !p.IsValid() {
		return InvalidPosition, fmt.Errorf("%w: file %d rank %d", ErrInvalidPosition, file, rank)
	}
	return p, nil
}

// MustPosition parses algebraic notation and panics on bad input. Meant for fixtures.
func MustPosition(s string) Position {
	p, err := ParsePosition(s)
	if err != nil {
		panic(err)
	}
	return p
}

// ParsePosition reads algebraic notation such as "e4".
func ParsePosition(s string) (Position, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if len(s) != 2 {
		return InvalidPosition, fmt.Errorf("%w: %q", ErrInvalidPosition, s)
	}
	file := int(s[0]-'a') + 1
	rank := int(s[1]-'1') + 1
	if s[0] < 'a' || s[1] < '1' {
		return InvalidPosition, fmt.Errorf("%w: %q", ErrInvalidPosition, s)
	}
	return NewPosition(file, rank)
}

func (p Position) IsValid() bool {
	return inRange(p.File) && inRange(p.Rank)
}

// Offset returns the position shifted by (df, dr). The result may be invalid.
func (p Position) Offset(df, dr int) Position {
	return Position{File: p.File + df, Rank: p.Rank + dr}
}

// Less orders positions rank-major, a1 first.
func (p Position) Less(o Position) bool {
	if p.Rank != o.Rank {
		return p.Rank < o.Rank
	}
	return p.File < o.File
}

func (p Position) String() string {
	if !p.IsValid() {
		return "-"
	}
	return string([]byte{byte('a' + p.File - 1), byte('1' + p.Rank - 1)})
}

func (p Position) index() (int, int) { return p.File - 1, p.Rank - 1 }

func inRange(v int) bool { return v >= 1 && v <= 8 }

func abs[T constraints.Signed](v T) T {
	if v < 0 {
		return -v
	}
	return v
}

func sign[T constraints.Signed](v T) T {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	default:
		return 0
	}
}
