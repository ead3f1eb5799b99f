package session

import (
	"encoding/json"

	"chessrules/engine"
	"chessrules/notation"
)

type PieceState struct {
	Square string `json:"square"`
	Side   string `json:"side"`
	Kind   string `json:"kind"`
	Letter string `json:"letter"`
}

// State is what a front end or a peer needs to redraw the game.
type State struct {
	FEN     string        `json:"fen"`
	ToMove  string        `json:"to_move"`
	Status  engine.Status `json:"status"`
	Pieces  []PieceState  `json:"pieces"`
	Moves   []string      `json:"moves"`
	History []Record      `json:"history,omitempty"`
}

func (g *Game) Snapshot() State {
	g.mu.Lock()
	defer g.mu.Unlock()

	st := State{
		ToMove: g.cur.Conditions.ToMove.String(),
		Status: engine.Evaluate(g.cur.Board, g.cur.Conditions),
	}
	fen, err := notation.FormatFEN(g.cur)
	if err != nil {
		g.logger.Printf("snapshot: %v", err)
	}
	st.FEN = fen

	for _, pl := range g.cur.Board.Placements() {
		st.Pieces = append(st.Pieces, PieceState{
			Square: pl.Position.String(),
			Side:   pl.Piece.Owner.String(),
			Kind:   pl.Piece.Kind.String(),
			Letter: string(engine.Letter(pl.Piece)),
		})
	}
	for _, m := range engine.AllValidMoves(g.cur.Board, g.cur.Conditions, g.cur.Conditions.ToMove).Sorted() {
		st.Moves = append(st.Moves, notation.FormatMove(m))
	}
	for _, s := range g.past {
		st.History = append(st.History, s.record)
	}
	return st
}

func (s State) JSON() ([]byte, error) { return json.Marshal(s) }
