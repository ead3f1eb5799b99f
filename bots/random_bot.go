package bots

import (
	"math/rand"
	"sync"

	"chessrules/engine"
	"chessrules/session"
)

type RandomBot struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// NewRandomBot picks uniformly among legal moves. The same seed replays the same choices.
func NewRandomBot(seed int64) *RandomBot {
	return &RandomBot{rng: rand.New(rand.NewSource(seed))}
}

func (b *RandomBot) BestMove(game *session.Game) (engine.Movement, bool) {
	moves := game.Moves()
	if len(moves) == 0 {
		return engine.Movement{}, false
	}
	b.mu.Lock()
	i := b.rng.Intn(len(moves))
	b.mu.Unlock()
	return moves[i], true
}

func (b *RandomBot) Name() string {
	return "Random Bot"
}
