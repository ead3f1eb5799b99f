package engine

type offset struct{ df, dr int }

var (
	knightSteps = []offset{{1, 2}, {2, 1}, {2, -1}, {1, -2}, {-1, -2}, {-2, -1}, {-2, 1}, {-1, 2}}
	kingSteps   = []offset{{0, 1}, {1, 1}, {1, 0}, {1, -1}, {0, -1}, {-1, -1}, {-1, 0}, {-1, 1}}
	diagonals   = []offset{{1, 1}, {1, -1}, {-1, -1}, {-1, 1}}
	orthogonals = []offset{{0, 1}, {1, 0}, {0, -1}, {-1, 0}}
)

func pawnMoves(b *Board, cond GameConditions, side Side, from Position, moves MoveSet) {
	fwd := side.forward()
	if one := from.Offset(0, fwd); one.IsValid() && !b.IsOccupiedAt(one) {
		addPawnMove(moves, side, from, one)
		if two := from.Offset(0, 2*fwd); from.Rank == side.pawnRank() && !b.IsOccupiedAt(two) {
			moves.add(NewMovement(from, two))
		}
	}
	for _, df := range [...]int{-1, 1} {
		to := from.Offset(df, fwd)
		if !to.IsValid() {
			continue
		}
		if b.IsOccupiedBySideAt(to, side.Opponent()) {
			addPawnMove(moves, side, from, to)
			continue
		}
		if !cond.EnPassant.IsValid() || to != cond.EnPassant || b.IsOccupiedAt(to) {
			continue
		}
		victim := Position{File: to.File, Rank: from.Rank}
		if p, _ := b.At(victim); p.Kind == Pawn && p.Owner == side.Opponent() {
			moves.add(Movement{Start: from, End: to, Special: EnPassant, Captured: victim})
		}
	}
}

func addPawnMove(moves MoveSet, side Side, from, to Position) {
	if to.Rank != side.promotionRank() {
		moves.add(NewMovement(from, to))
		return
	}
	for _, k := range PromotionKinds {
		moves.add(Movement{Start: from, End: to, Special: Promotion, Promotion: k})
	}
}

func stepMoves(b *Board, side Side, from Position, steps []offset, moves MoveSet) {
	for _, s := range steps {
		to := from.Offset(s.df, s.dr)
		if to.IsValid() && !b.IsOccupiedBySideAt(to, side) {
			moves.add(NewMovement(from, to))
		}
	}
}

// rayMoves walks each direction to the first occupied square, which is kept only if it holds an enemy.
func rayMoves(b *Board, side Side, from Position, dirs []offset, moves MoveSet) {
	for _, d := range dirs {
		for to := from.Offset(d.df, d.dr); to.IsValid(); to = to.Offset(d.df, d.dr) {
			p, _ := b.At(to)
			if p.IsNone() {
				moves.add(NewMovement(from, to))
				continue
			}
			if p.Owner != side {
				moves.add(NewMovement(from, to))
			}
			break
		}
	}
}

// castlingMoves adds castling when the right is held, the rook is home, the squares between are
// empty and none of the king's start, transit or landing squares is attacked.
func castlingMoves(b *Board, cond GameConditions, side Side, from Position, moves MoveSet) {
	home := Position{File: 5, Rank: side.backRank()}
	if from != home {
		return
	}
	for _, kingside := range [...]bool{true, false} {
		if !cond.Castling.HasSide(side, kingside) {
			continue
		}
		rookFile := 1
		if kingside {
			rookFile = 8
		}
		rookStart := Position{File: rookFile, Rank: home.Rank}
		if p, _ := b.At(rookStart); p != NewPiece(Rook, side) {
			continue
		}
		dir := sign(rookFile - home.File)
		empty := true
		for f := home.File + dir; f != rookFile; f += dir {
			if b.IsOccupiedAt(Position{File: f, Rank: home.Rank}) {
				empty = false
				break
			}
		}
		if !empty {
			continue
		}
		safe := true
		for i := 0; i <= 2; i++ {
			if b.IsSquareAttacked(home.Offset(i*dir, 0), side.Opponent()) {
				safe = false
				break
			}
		}
		if !safe {
			continue
		}
		moves.add(Movement{
			Start:     home,
			End:       home.Offset(2*dir, 0),
			Special:   Castling,
			RookStart: rookStart,
			RookEnd:   home.Offset(dir, 0),
		})
	}
}
