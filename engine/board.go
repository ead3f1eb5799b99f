package engine

import (
	"fmt"
	"strings"
)

// Placement puts one piece on one square.
type Placement struct {
	Position Position
	Piece    Piece
}

// Board is the 8x8 piece matrix plus a lazily filled king-square cache.
// The zero value is not usable; construct with NewBoard, NewBoardFrom, StandardBoard or Clone.
type Board struct {
	squares [8][8]Piece
	// kings holds InvalidPosition while a side's king square is unknown.
	kings [2]Position
}

func NewBoard() *Board {
	return &Board{kings: [2]Position{InvalidPosition, InvalidPosition}}
}

// NewBoardFrom builds a board from placements. Two pieces on one square is an error.
func NewBoardFrom(placements []Placement) (*Board, error) {
	b := NewBoard()
	for _, pl := range placements {
		cur, err := b.At(pl.Position)
		if err != nil {
			return nil, err
		}
		if !cur.IsNone() {
			return nil, fmt.Errorf("%w: %s placed twice", ErrIllegalState, pl.Position)
		}
		if err := b.Set(pl.Position, pl.Piece); err != nil {
			return nil, err
		}
	}
	return b, nil
}

var backRankOrder = [8]Kind{Rook, Knight, Bishop, Queen, King, Bishop, Knight, Rook}

// StandardPlacements is the usual starting arrangement.
func StandardPlacements() []Placement {
	out := make([]Placement, 0, 32)
	for _, side := range []Side{White, Black} {
		for file, kind := range backRankOrder {
			out = append(out, Placement{Position{file + 1, side.backRank()}, NewPiece(kind, side)})
		}
		for file := 1; file <= 8; file++ {
			out = append(out, Placement{Position{file, side.pawnRank()}, NewPiece(Pawn, side)})
		}
	}
	return out
}

func StandardBoard() *Board {
	b, err := NewBoardFrom(StandardPlacements())
	if err != nil {
		panic(err) // fixed table, cannot fail
	}
	return b
}

// Clone returns an independent copy.
func (b *Board) Clone() *Board {
	c := *b
	return &c
}

func (b *Board) At(pos Position) (Piece, error) {
	if !pos.IsValid() {
		return NoPiece, fmt.Errorf("%w: %d,%d", ErrOutOfRange, pos.File, pos.Rank)
	}
	f, r := pos.index()
	return b.squares[f][r], nil
}

func (b *Board) AtCoords(file, rank int) (Piece, error) {
	return b.At(Position{File: file, Rank: rank})
}

// Set writes a piece. Setting NoPiece empties the square.
func (b *Board) Set(pos Position, p Piece) error {
	if !pos.IsValid() {
		return fmt.Errorf("%w: %d,%d", ErrOutOfRange, pos.File, pos.Rank)
	}
	if !p.IsNone() && p.Owner == None {
		return fmt.Errorf("%w: %s has no owner", ErrIllegalState, p.Kind)
	}
	b.put(pos, p)
	return nil
}

func (b *Board) SetCoords(file, rank int, p Piece) error {
	return b.Set(Position{File: file, Rank: rank}, p)
}

func (b *Board) Remove(pos Position) error { return b.Set(pos, NoPiece) }

// put writes a square and keeps the king cache consistent. pos must be valid.
func (b *Board) put(pos Position, p Piece) {
	f, r := pos.index()
	old := b.squares[f][r]
	if old.Kind == King && b.kings[old.Owner.index()] == pos {
		b.kings[old.Owner.index()] = InvalidPosition
	}
	b.squares[f][r] = p
	if p.Kind == King {
		b.kings[p.Owner.index()] = pos
	}
}

// MovePiece relocates the piece on m.Start to m.End and applies any special side effect.
// No legality checks happen here.
func (b *Board) MovePiece(m Movement) error {
	if !m.Start.IsValid() || !m.End.IsValid() {
		return fmt.Errorf("%w: move %s-%s", ErrOutOfRange, m.Start, m.End)
	}
	p, _ := b.At(m.Start)
	if p.IsNone() {
		return fmt.Errorf("%w: no piece on %s", ErrIllegalState, m.Start)
	}
	b.put(m.Start, NoPiece)
	b.put(m.End, p)
	return m.apply(b)
}

func (b *Board) IsOccupiedAt(pos Position) bool {
	p, err := b.At(pos)
	return err == nil && !p.IsNone()
}

func (b *Board) IsOccupiedBySideAt(pos Position, side Side) bool {
	p, err := b.At(pos)
	return err == nil && !p.IsNone() && p.Owner == side
}

// IsSquareAttacked reports whether any piece of by could capture on sq.
// Castling never counts and pawns attack their diagonals whether or not they are occupied.
func (b *Board) IsSquareAttacked(sq Position, by Side) bool {
	if !sq.IsValid() {
		return false
	}
	for f := 0; f < 8; f++ {
		for r := 0; r < 8; r++ {
			p := b.squares[f][r]
			if p.IsNone() || p.Owner != by {
				continue
			}
			from := Position{File: f + 1, Rank: r + 1}
			if p.Kind == Pawn {
				if sq.Rank == from.Rank+by.forward() && abs(sq.File-from.File) == 1 {
					return true
				}
				continue
			}
			for k := range p.candidates(b, NeutralConditions(by), from, false) {
				if k.End == sq {
					return true
				}
			}
		}
	}
	return false
}

// IsPlayerInCheck is false when the side has no king.
func (b *Board) IsPlayerInCheck(side Side) bool {
	k := b.KingSquare(side)
	if !k.IsValid() {
		return false
	}
	return b.IsSquareAttacked(k, side.Opponent())
}

// KingSquare returns the cached king square, scanning the board when the cache is empty.
func (b *Board) KingSquare(side Side) Position {
	if side != White && side != Black {
		return InvalidPosition
	}
	i := side.index()
	if b.kings[i].IsValid() {
		return b.kings[i]
	}
	for r := 0; r < 8; r++ {
		for f := 0; f < 8; f++ {
			p := b.squares[f][r]
			if p.Kind == King && p.Owner == side {
				b.kings[i] = Position{File: f + 1, Rank: r + 1}
				return b.kings[i]
			}
		}
	}
	return InvalidPosition
}

// Clear empties the board and forgets both kings.
func (b *Board) Clear() {
	b.squares = [8][8]Piece{}
	b.kings = [2]Position{InvalidPosition, InvalidPosition}
}

// Placements lists every piece, a1 first, rank by rank.
func (b *Board) Placements() []Placement {
	out := make([]Placement, 0, 32)
	for r := 0; r < 8; r++ {
		for f := 0; f < 8; f++ {
			if p := b.squares[f][r]; !p.IsNone() {
				out = append(out, Placement{Position{f + 1, r + 1}, p})
			}
		}
	}
	return out
}

// Equal compares piece placement only.
func (b *Board) Equal(o *Board) bool {
	return b.squares == o.squares
}

func (b *Board) String() string {
	var sb strings.Builder
	for r := 7; r >= 0; r-- {
		sb.WriteByte(byte('1' + r))
		sb.WriteByte(' ')
		for f := 0; f < 8; f++ {
			sb.WriteByte(Letter(b.squares[f][r]))
		}
		sb.WriteByte('\n')
	}
	sb.WriteString("  abcdefgh\n")
	return sb.String()
}
