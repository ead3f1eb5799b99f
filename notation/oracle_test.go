package notation

import (
	"math/rand"
	"sort"
	"testing"

	"github.com/notnil/chess"

	"chessrules/engine"
)

// oracleMoves lists the legal moves notnil/chess finds in the same position.
func oracleMoves(t *testing.T, fen string) ([]string, chess.Method) {
	t.Helper()
	opt, err := chess.FEN(fen)
	if err != nil {
		t.Fatalf("oracle rejected %q: %v", fen, err)
	}
	g := chess.NewGame(opt)
	pos := g.Position()
	out := make([]string, 0, 40)
	for _, m := range g.ValidMoves() {
		out = append(out, chess.UCINotation{}.Encode(pos, m))
	}
	sort.Strings(out)
	return out, pos.Status()
}

func engineMoves(s Setup) []string {
	moves := engine.AllValidMoves(s.Board, s.Conditions, s.Conditions.ToMove)
	out := make([]string, 0, len(moves))
	for _, m := range moves {
		out = append(out, FormatMove(m))
	}
	sort.Strings(out)
	return out
}

func equalStrings(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestLegalMovesMatchOracleOnFixtures(t *testing.T) {
	fixtures := []string{
		StartFEN,
		"r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1",
		"8/2p5/3p4/KP5r/1R3p1k/8/4P1P1/8 w - - 0 1",
		"r3k2r/Pppp1ppp/1b3nbN/nP6/BBP1P3/q4N2/Pp1P2PP/R2Q1RK1 w kq - 0 1",
		"rnbq1k1r/pp1Pbppp/2p5/8/2B5/8/PPP1NnPP/RNBQK2R w KQ - 1 8",
		"rnbqkb1r/ppp1pppp/5n2/3pP3/8/8/PPPP1PPP/RNBQKBNR w KQkq d6 0 3",
		"k7/2Q5/1K6/8/8/8/8/8 b - - 0 1",
	}
	for _, fen := range fixtures {
		s, err := ParseFEN(fen)
		if err != nil {
			t.Fatalf("parse %q: %v", fen, err)
		}
		want, _ := oracleMoves(t, fen)
		if got := engineMoves(s); !equalStrings(got, want) {
			t.Fatalf("%s\n got %v\nwant %v", fen, got, want)
		}
	}
}

func TestRandomPlayoutsMatchOracle(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	for game := 0; game < 12; game++ {
		s := Standard()
		for ply := 0; ply < 120; ply++ {
			fen, err := FormatFEN(s)
			if err != nil {
				t.Fatalf("game %d ply %d: format: %v", game, ply, err)
			}
			want, method := oracleMoves(t, fen)
			got := engineMoves(s)
			if !equalStrings(got, want) {
				t.Fatalf("game %d ply %d %s\n got %v\nwant %v", game, ply, fen, got, want)
			}

			status := engine.Evaluate(s.Board, s.Conditions)
			if len(got) == 0 {
				if status == engine.Checkmate && method != chess.Checkmate {
					t.Fatalf("%s: engine says checkmate, oracle says %v", fen, method)
				}
				if status == engine.Stalemate && method != chess.Stalemate {
					t.Fatalf("%s: engine says stalemate, oracle says %v", fen, method)
				}
				break
			}
			if status.Over() {
				t.Fatalf("%s: %s with %d legal moves", fen, status, len(got))
			}

			moves := engine.AllValidMoves(s.Board, s.Conditions, s.Conditions.ToMove).Sorted()
			m := moves[rng.Intn(len(moves))]
			next := s.Conditions.Next(s.Board, m)
			if err := s.Board.MovePiece(m); err != nil {
				t.Fatalf("%s: play %s: %v", fen, m, err)
			}
			s.Conditions = next
			if next.ToMove == engine.White {
				s.Fullmove++
			}
		}
	}
}
