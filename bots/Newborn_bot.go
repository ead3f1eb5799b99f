package bots

import (
	"chessrules/engine"
	"chessrules/session"
)

// NewbornBot always plays the first legal move in board order.
type NewbornBot struct{}

func NewNewbornBot() *NewbornBot {
	return &NewbornBot{}
}

func (b *NewbornBot) BestMove(game *session.Game) (engine.Movement, bool) {
	moves := game.Moves()
	if len(moves) > 0 {
		return moves[0], true
	}
	return engine.Movement{}, false
}

func (b *NewbornBot) Name() string {
	return "Newborn"
}
