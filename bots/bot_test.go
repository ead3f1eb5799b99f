package bots

import (
	"errors"
	"io"
	"log"
	"testing"

	"chessrules/engine"
	"chessrules/notation"
	"chessrules/session"
)

func newGame(t *testing.T, fen string) *session.Game {
	t.Helper()
	opts := []session.Option{session.WithLogger(log.New(io.Discard, "", 0))}
	if fen != "" {
		s, err := notation.ParseFEN(fen)
		if err != nil {
			t.Fatalf("parse: %v", err)
		}
		opts = append(opts, session.WithPosition(s))
	}
	return session.New(opts...)
}

func TestNewbornIsDeterministic(t *testing.T) {
	g := newGame(t, "")
	m, ok := NewNewbornBot().BestMove(g)
	if !ok {
		t.Fatalf("no move from the start position")
	}
	// b1 is the first square holding a white piece with a legal move.
	if m.Start != engine.MustPosition("b1") || m.End != engine.MustPosition("a3") {
		t.Fatalf("newborn chose %s", m)
	}
}

func TestRandomBotSameSeed(t *testing.T) {
	a, b := newGame(t, ""), newGame(t, "")
	ba, bb := NewRandomBot(42), NewRandomBot(42)
	for i := 0; i < 30; i++ {
		if a.Status().Over() {
			break
		}
		ma, err := Play(ba, a)
		if err != nil {
			t.Fatalf("ply %d: %v", i, err)
		}
		mb, err := Play(bb, b)
		if err != nil {
			t.Fatalf("ply %d: %v", i, err)
		}
		if ma != mb {
			t.Fatalf("ply %d: %s vs %s", i, ma, mb)
		}
	}
	if a.FEN() != b.FEN() {
		t.Fatalf("games diverged")
	}
}

func TestBotsStopWhenMated(t *testing.T) {
	g := newGame(t, "k7/1Q6/1K6/8/8/8/8/8 b - - 0 1")
	for _, bot := range Roster(1) {
		if _, ok := bot.BestMove(g); ok {
			t.Fatalf("%s moved in a mated position", bot.Name())
		}
		if _, err := Play(bot, g); !errors.Is(err, session.ErrGameOver) {
			t.Fatalf("%s: expected ErrGameOver, got %v", bot.Name(), err)
		}
	}
}

func TestRosterCycle(t *testing.T) {
	roster := Roster(1)
	first := ByName(roster, "Newborn")
	if first != roster[0] {
		t.Fatalf("ByName returned %s", first.Name())
	}
	if ByName(roster, "nobody") != roster[0] {
		t.Fatalf("unknown name should fall back to the first bot")
	}
	second := Next(roster, first)
	if second.Name() != "Random Bot" || Next(roster, second) != first {
		t.Fatalf("cycle broken")
	}
}
