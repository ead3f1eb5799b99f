// Package notation converts engine positions and moves to and from text.
// FEN goes through github.com/notnil/chess so both sides agree on the format.
package notation

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/notnil/chess"

	"chessrules/engine"
)

const StartFEN = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"

var ErrInvalidFEN = errors.New("invalid FEN")

// Setup is everything a FEN string describes.
type Setup struct {
	Board      *engine.Board
	Conditions engine.GameConditions
	Halfmove   int
	Fullmove   int
}

// Standard is the usual starting setup.
func Standard() Setup {
	return Setup{Board: engine.StandardBoard(), Conditions: engine.StandardConditions(), Fullmove: 1}
}

func ParseFEN(fen string) (Setup, error) {
	fen = strings.TrimSpace(fen)
	opt, err := chess.FEN(fen)
	if err != nil {
		return Setup{}, fmt.Errorf("%w: %v", ErrInvalidFEN, err)
	}
	pos := chess.NewGame(opt).Position()

	placements := make([]engine.Placement, 0, 32)
	for sq, pc := range pos.Board().SquareMap() {
		p, ok := fromChessPiece(pc)
		if !ok {
			continue
		}
		placements = append(placements, engine.Placement{Position: fromChessSquare(sq), Piece: p})
	}
	b, err := engine.NewBoardFrom(placements)
	if err != nil {
		return Setup{}, fmt.Errorf("%w: %v", ErrInvalidFEN, err)
	}

	cond := engine.GameConditions{ToMove: fromChessColor(pos.Turn()), EnPassant: engine.InvalidPosition}
	rights := pos.CastleRights()
	for _, side := range []engine.Side{engine.White, engine.Black} {
		if rights.CanCastle(toChessColor(side), chess.KingSide) {
			cond.Castling |= engine.CastlingRight(side, true)
		}
		if rights.CanCastle(toChessColor(side), chess.QueenSide) {
			cond.Castling |= engine.CastlingRight(side, false)
		}
	}
	if ep := pos.EnPassantSquare(); ep != chess.NoSquare {
		cond.EnPassant = fromChessSquare(ep)
	}

	s := Setup{Board: b, Conditions: cond, Fullmove: 1}
	fields := strings.Fields(fen)
	if len(fields) >= 6 {
		if s.Halfmove, err = strconv.Atoi(fields[4]); err != nil {
			return Setup{}, fmt.Errorf("%w: halfmove clock %q", ErrInvalidFEN, fields[4])
		}
		if s.Fullmove, err = strconv.Atoi(fields[5]); err != nil {
			return Setup{}, fmt.Errorf("%w: fullmove number %q", ErrInvalidFEN, fields[5])
		}
	}
	return s, nil
}

func FormatFEN(s Setup) (string, error) {
	if s.Board == nil {
		return "", fmt.Errorf("%w: no board", ErrInvalidFEN)
	}
	squares := make(map[chess.Square]chess.Piece, 32)
	for _, pl := range s.Board.Placements() {
		squares[toChessSquare(pl.Position)] = toChessPiece(pl.Piece)
	}
	turn := "w"
	if s.Conditions.ToMove == engine.Black {
		turn = "b"
	}
	fullmove := s.Fullmove
	if fullmove < 1 {
		fullmove = 1
	}
	fen := fmt.Sprintf("%s %s %s %s %d %d",
		chess.NewBoard(squares).String(),
		turn,
		s.Conditions.Castling,
		s.Conditions.EnPassant,
		s.Halfmove,
		fullmove,
	)
	if _, err := chess.FEN(fen); err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidFEN, err)
	}
	return fen, nil
}

func fromChessSquare(sq chess.Square) engine.Position {
	return engine.Position{File: int(sq.File()) + 1, Rank: int(sq.Rank()) + 1}
}

func toChessSquare(p engine.Position) chess.Square {
	return chess.NewSquare(chess.File(p.File-1), chess.Rank(p.Rank-1))
}

func fromChessColor(c chess.Color) engine.Side {
	switch c {
	case chess.White:
		return engine.White
	case chess.Black:
		return engine.Black
	default:
		return engine.None
	}
}

func toChessColor(s engine.Side) chess.Color {
	switch s {
	case engine.White:
		return chess.White
	case engine.Black:
		return chess.Black
	default:
		return chess.NoColor
	}
}

func fromChessPiece(pc chess.Piece) (engine.Piece, bool) {
	var k engine.Kind
	switch pc.Type() {
	case chess.King:
		k = engine.King
	case chess.Queen:
		k = engine.Queen
	case chess.Rook:
		k = engine.Rook
	case chess.Bishop:
		k = engine.Bishop
	case chess.Knight:
		k = engine.Knight
	case chess.Pawn:
		k = engine.Pawn
	default:
		return engine.NoPiece, false
	}
	return engine.NewPiece(k, fromChessColor(pc.Color())), true
}

func toChessPiece(p engine.Piece) chess.Piece {
	return chess.NewPiece(toChessKind(p.Kind), toChessColor(p.Owner))
}

func toChessKind(k engine.Kind) chess.PieceType {
	switch k {
	case engine.King:
		return chess.King
	case engine.Queen:
		return chess.Queen
	case engine.Rook:
		return chess.Rook
	case engine.Bishop:
		return chess.Bishop
	case engine.Knight:
		return chess.Knight
	case engine.Pawn:
		return chess.Pawn
	default:
		return chess.NoPieceType
	}
}
