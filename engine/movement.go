package engine

import (
	"fmt"
	"sort"
)

type Special uint8

const (
	Ordinary Special = iota
	Castling
	EnPassant
	Promotion
)

func (s Special) String() string {
	switch s {
	case Castling:
		return "castling"
	case EnPassant:
		return "en passant"
	case Promotion:
		return "promotion"
	default:
		return "ordinary"
	}
}

// Movement is a start/end pair plus the data a special move needs for its extra mutation.
type Movement struct {
	Start   Position
	End     Position
	Special Special

	// Castling
	RookStart Position
	RookEnd   Position
	// EnPassant: the square of the pawn being taken, behind End.
	Captured Position
	// Promotion: the kind that replaces the pawn.
	Promotion Kind
}

// NewMovement builds an ordinary move.
func NewMovement(start, end Position) Movement {
	return Movement{Start: start, End: end}
}

func (m Movement) Key() MoveKey {
	return MoveKey{Start: m.Start, End: m.End, Promotion: m.Promotion}
}

func (m Movement) String() string {
	s := m.Start.String() + m.End.String()
	if m.Special == Promotion {
		s += string(Letter(NewPiece(m.Promotion, Black)))
	}
	return s
}

// apply performs the extra mutation of a special move. The moving piece already sits on End.
func (m Movement) apply(b *Board) error {
	switch m.Special {
	case Castling:
		rook, err := b.At(m.RookStart)
		if err != nil {
			return err
		}
		if rook.Kind != Rook {
			return fmt.Errorf("%w: no rook on %s to castle with", ErrIllegalState, m.RookStart)
		}
		if err := b.Remove(m.RookStart); err != nil {
			return err
		}
		return b.Set(m.RookEnd, rook)
	case EnPassant:
		return b.Remove(m.Captured)
	case Promotion:
		pawn, err := b.At(m.End)
		if err != nil {
			return err
		}
		return b.Set(m.End, NewPiece(m.Promotion, pawn.Owner))
	}
	return nil
}

// MoveKey identifies a candidate. Promotion is NoKind for everything but promotions.
type MoveKey struct {
	Start     Position
	End       Position
	Promotion Kind
}

type MoveSet map[MoveKey]Movement

func (ms MoveSet) add(m Movement) { ms[m.Key()] = m }

// Has reports whether any candidate goes from start to end.
func (ms MoveSet) Has(start, end Position) bool {
	_, ok := ms.Lookup(start, end, NoKind)
	return ok
}

// Lookup finds the candidate for (start, end). A promoting move asked for with NoKind resolves to the queen.
func (ms MoveSet) Lookup(start, end Position, promotion Kind) (Movement, bool) {
	if m, ok := ms[MoveKey{Start: start, End: end, Promotion: promotion}]; ok {
		return m, true
	}
	if promotion == NoKind {
		m, ok := ms[MoveKey{Start: start, End: end, Promotion: Queen}]
		return m, ok
	}
	return Movement{}, false
}

// Ends returns the distinct destination squares.
func (ms MoveSet) Ends() []Position {
	seen := make(map[Position]bool, len(ms))
	out := make([]Position, 0, len(ms))
	for k := range ms {
		if !seen[k.End] {
			seen[k.End] = true
			out = append(out, k.End)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Less(out[j]) })
	return out
}

// Sorted returns the moves in a deterministic order.
func (ms MoveSet) Sorted() []Movement {
	out := make([]Movement, 0, len(ms))
	for _, m := range ms {
		out = append(out, m)
	}
	sort.Slice(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if a.Start != b.Start {
			return a.Start.Less(b.Start)
		}
		if a.End != b.End {
			return a.End.Less(b.End)
		}
		return a.Promotion < b.Promotion
	})
	return out
}
