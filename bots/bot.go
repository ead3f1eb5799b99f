// bot.go
package bots

import (
	"chessrules/engine"
	"chessrules/session"
)

// ChessBot интерфейс для всех ботов.
// BestMove returns false when the side to move has nothing legal to play.
type ChessBot interface {
	BestMove(game *session.Game) (engine.Movement, bool)
	Name() string
}

// Play asks bot for a move and commits it for the side to move.
func Play(bot ChessBot, game *session.Game) (engine.Movement, error) {
	side := game.ToMove()
	m, ok := bot.BestMove(game)
	if !ok {
		return engine.Movement{}, session.ErrGameOver
	}
	return game.Play(side, m.Start, m.End, m.Promotion)
}

// Roster lists the built-in bots in the order front ends cycle through them.
func Roster(seed int64) []ChessBot {
	return []ChessBot{NewNewbornBot(), NewRandomBot(seed)}
}

// ByName finds a bot in the roster; an unknown name falls back to the first one.
func ByName(roster []ChessBot, name string) ChessBot {
	for _, b := range roster {
		if b.Name() == name {
			return b
		}
	}
	return roster[0]
}

// Next is the bot after current in roster, wrapping around.
func Next(roster []ChessBot, current ChessBot) ChessBot {
	for i, b := range roster {
		if b == current {
			return roster[(i+1)%len(roster)]
		}
	}
	return roster[0]
}
