package engine

import "fmt"

type Side uint8

const (
	None Side = iota
	White
	Black
)

func (s Side) Opponent() Side {
	switch s {
	case White:
		return Black
	case Black:
		return White
	default:
		return None
	}
}

func (s Side) String() string {
	switch s {
	case White:
		return "white"
	case Black:
		return "black"
	default:
		return "none"
	}
}

// ParseSide accepts "white"/"w" and "black"/"b".
func ParseSide(s string) (Side, bool) {
	switch s {
	case "white", "White", "w", "W":
		return White, true
	case "black", "Black", "b", "B":
		return Black, true
	default:
		return None, false
	}
}

// forward is the rank step of this side's pawns.
func (s Side) forward() int {
	if s == Black {
		return -1
	}
	return 1
}

func (s Side) backRank() int {
	if s == Black {
		return 8
	}
	return 1
}

func (s Side) pawnRank() int {
	if s == Black {
		return 7
	}
	return 2
}

func (s Side) promotionRank() int {
	if s == Black {
		return 1
	}
	return 8
}

func (s Side) index() int {
	if s == Black {
		return 1
	}
	return 0
}

type Kind uint8

const (
	NoKind Kind = iota
	Pawn
	Knight
	Bishop
	Rook
	Queen
	King
)

// PromotionKinds lists what a pawn may become, strongest first.
var PromotionKinds = []Kind{Queen, Rook, Bishop, Knight}

func (k Kind) String() string {
	switch k {
	case Pawn:
		return "pawn"
	case Knight:
		return "knight"
	case Bishop:
		return "bishop"
	case Rook:
		return "rook"
	case Queen:
		return "queen"
	case King:
		return "king"
	case NoKind:
		return "none"
	default:
		return fmt.Sprintf("kind(%d)", uint8(k))
	}
}

// Piece is a kind owned by a side. The zero value is NoPiece, the empty-square placeholder.
type Piece struct {
	Kind  Kind
	Owner Side
}

var NoPiece = Piece{}

func NewPiece(kind Kind, owner Side) Piece { return Piece{Kind: kind, Owner: owner} }

func (p Piece) IsNone() bool { return p.Kind == NoKind }

func (p Piece) String() string {
	if p.IsNone() {
		return "none"
	}
	return p.Owner.String() + " " + p.Kind.String()
}

// CandidateMoves returns every pseudo-legal move the piece could make from the given square.
func (p Piece) CandidateMoves(b *Board, cond GameConditions, from Position) MoveSet {
	return p.candidates(b, cond, from, true)
}

func (p Piece) candidates(b *Board, cond GameConditions, from Position, castling bool) MoveSet {
	moves := make(MoveSet)
	switch p.Kind {
	case Pawn:
		pawnMoves(b, cond, p.Owner, from, moves)
	case Knight:
		stepMoves(b, p.Owner, from, knightSteps, moves)
	case Bishop:
		rayMoves(b, p.Owner, from, diagonals, moves)
	case Rook:
		rayMoves(b, p.Owner, from, orthogonals, moves)
	case Queen:
		rayMoves(b, p.Owner, from, diagonals, moves)
		rayMoves(b, p.Owner, from, orthogonals, moves)
	case King:
		stepMoves(b, p.Owner, from, kingSteps, moves)
		if castling {
			castlingMoves(b, cond, p.Owner, from, moves)
		}
	}
	return moves
}
