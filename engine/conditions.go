package engine

import (
	"fmt"
	"strings"
)

type CastlingRights uint8

const (
	CastlingNone          CastlingRights = 0
	CastlingWhiteKingside CastlingRights = 1 << iota
	CastlingWhiteQueenside
	CastlingBlackKingside
	CastlingBlackQueenside
	CastlingAll = CastlingWhiteKingside | CastlingWhiteQueenside | CastlingBlackKingside | CastlingBlackQueenside
)

// CastlingRight returns the single right for a side castling towards the king or queen side.
func CastlingRight(side Side, kingside bool) CastlingRights {
	switch {
	case side == White && kingside:
		return CastlingWhiteKingside
	case side == White:
		return CastlingWhiteQueenside
	case side == Black && kingside:
		return CastlingBlackKingside
	case side == Black:
		return CastlingBlackQueenside
	default:
		return CastlingNone
	}
}

func (cr CastlingRights) Has(right CastlingRights) bool { return cr&right != 0 }

func (cr CastlingRights) HasSide(side Side, kingside bool) bool {
	return cr.Has(CastlingRight(side, kingside))
}

func (cr CastlingRights) Without(right CastlingRights) CastlingRights { return cr &^ right }

func (cr CastlingRights) String() string {
	var b strings.Builder
	if cr.Has(CastlingWhiteKingside) {
		b.WriteByte('K')
	}
	if cr.Has(CastlingWhiteQueenside) {
		b.WriteByte('Q')
	}
	if cr.Has(CastlingBlackKingside) {
		b.WriteByte('k')
	}
	if cr.Has(CastlingBlackQueenside) {
		b.WriteByte('q')
	}
	if b.Len() == 0 {
		return "-"
	}
	return b.String()
}

func ParseCastlingRights(s string) (CastlingRights, error) {
	s = strings.TrimSpace(s)
	if s == "" || s == "-" {
		return CastlingNone, nil
	}
	var rights CastlingRights
	for _, r := range s {
		switch r {
		case 'K':
			rights |= CastlingWhiteKingside
		case 'Q':
			rights |= CastlingWhiteQueenside
		case 'k':
			rights |= CastlingBlackKingside
		case 'q':
			rights |= CastlingBlackQueenside
		default:
			return CastlingNone, fmt.Errorf("invalid castling flag %q", string(r))
		}
	}
	return rights, nil
}

// GameConditions carries the legality inputs that are not visible on the board itself.
type GameConditions struct {
	ToMove    Side
	Castling  CastlingRights
	EnPassant Position // InvalidPosition when there is no target
}

// NeutralConditions has no castling rights and no en-passant target.
func NeutralConditions(toMove Side) GameConditions {
	return GameConditions{ToMove: toMove, EnPassant: InvalidPosition}
}

func StandardConditions() GameConditions {
	return GameConditions{ToMove: White, Castling: CastlingAll, EnPassant: InvalidPosition}
}

// Next derives the conditions after m is played. b must be the board before the move.
func (c GameConditions) Next(b *Board, m Movement) GameConditions {
	next := GameConditions{
		ToMove:    c.ToMove.Opponent(),
		Castling:  c.Castling,
		EnPassant: InvalidPosition,
	}
	if next.ToMove == None {
		next.ToMove = White
	}

	mover, err := b.At(m.Start)
	if err != nil || mover.IsNone() {
		return next
	}

	switch mover.Kind {
	case King:
		next.Castling = next.Castling.
			Without(CastlingRight(mover.Owner, true)).
			Without(CastlingRight(mover.Owner, false))
	case Rook:
		next.Castling = next.Castling.Without(rookRight(m.Start))
	case Pawn:
		if abs(m.End.Rank-m.Start.Rank) == 2 {
			next.EnPassant = Position{File: m.Start.File, Rank: m.Start.Rank + mover.Owner.forward()}
		}
	}
	// A rook taken on its home square takes the right with it.
	next.Castling = next.Castling.Without(rookRight(m.End))
	return next
}

func rookRight(p Position) CastlingRights {
	switch p {
	case Position{File: 8, Rank: 1}:
		return CastlingWhiteKingside
	case Position{File: 1, Rank: 1}:
		return CastlingWhiteQueenside
	case Position{File: 8, Rank: 8}:
		return CastlingBlackKingside
	case Position{File: 1, Rank: 8}:
		return CastlingBlackQueenside
	default:
		return CastlingNone
	}
}
