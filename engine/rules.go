package engine

// MoveObeysRules reports whether side may move the piece on m.Start to m.End according to that
// piece's candidate moves. It does not check whether the mover's own king is left attacked.
func MoveObeysRules(b *Board, cond GameConditions, m *Movement, side Side) bool {
	if m == nil || m.Start == m.End {
		return false
	}
	p, err := b.At(m.Start)
	if err != nil || p.IsNone() || p.Owner != side {
		return false
	}
	return p.CandidateMoves(b, cond, m.Start).Has(m.Start, m.End)
}

// ValidMoves returns the fully legal moves of the piece on from: candidates that obey the rules
// and do not leave the mover's king attacked once played on a copy of the board.
func ValidMoves(b *Board, cond GameConditions, from Position) MoveSet {
	out := make(MoveSet)
	p, err := b.At(from)
	if err != nil || p.IsNone() {
		return out
	}
	for k, m := range p.CandidateMoves(b, cond, from) {
		m := m
		if !MoveObeysRules(b, cond, &m, p.Owner) || exposesKing(b, m, p.Owner) {
			continue
		}
		out[k] = m
	}
	return out
}

// IsLegalMove resolves a proposal to the full candidate move, including special-move data,
// and reports whether it is legal for side. A promotion left as NoKind becomes a queen.
func IsLegalMove(b *Board, cond GameConditions, proposal Movement, side Side) (Movement, bool) {
	if !MoveObeysRules(b, cond, &proposal, side) {
		return Movement{}, false
	}
	p, _ := b.At(proposal.Start)
	m, ok := p.CandidateMoves(b, cond, proposal.Start).Lookup(proposal.Start, proposal.End, proposal.Promotion)
	if !ok || exposesKing(b, m, side) {
		return Movement{}, false
	}
	return m, true
}

// AllValidMoves collects the legal moves of every piece owned by side.
func AllValidMoves(b *Board, cond GameConditions, side Side) MoveSet {
	out := make(MoveSet)
	for _, pl := range b.Placements() {
		if pl.Piece.Owner != side {
			continue
		}
		for k, m := range ValidMoves(b, cond, pl.Position) {
			out[k] = m
		}
	}
	return out
}

// HasLegalMoves stops at the first piece of side that has a valid move.
func HasLegalMoves(b *Board, cond GameConditions, side Side) bool {
	for _, pl := range b.Placements() {
		if pl.Piece.Owner == side && len(ValidMoves(b, cond, pl.Position)) > 0 {
			return true
		}
	}
	return false
}

func IsPlayerCheckmated(b *Board, side Side) bool {
	return b.IsPlayerInCheck(side) && !HasLegalMoves(b, NeutralConditions(side), side)
}

func IsPlayerStalemated(b *Board, side Side) bool {
	return !b.IsPlayerInCheck(side) && !HasLegalMoves(b, NeutralConditions(side), side)
}

func exposesKing(b *Board, m Movement, side Side) bool {
	scratch := b.Clone()
	if err := scratch.MovePiece(m); err != nil {
		return true
	}
	return scratch.IsPlayerInCheck(side)
}

type Status uint8

const (
	Ongoing Status = iota
	Check
	Checkmate
	Stalemate
)

func (s Status) String() string {
	switch s {
	case Check:
		return "check"
	case Checkmate:
		return "checkmate"
	case Stalemate:
		return "stalemate"
	default:
		return "ongoing"
	}
}

func (s Status) MarshalText() ([]byte, error) { return []byte(s.String()), nil }

// Over reports whether the game cannot continue.
func (s Status) Over() bool { return s == Checkmate || s == Stalemate }

// Evaluate classifies the position for the side to move, honouring castling and en passant.
func Evaluate(b *Board, cond GameConditions) Status {
	side := cond.ToMove
	inCheck := b.IsPlayerInCheck(side)
	canMove := HasLegalMoves(b, cond, side)
	switch {
	case canMove && inCheck:
		return Check
	case canMove:
		return Ongoing
	case inCheck:
		return Checkmate
	default:
		return Stalemate
	}
}
