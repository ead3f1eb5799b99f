package notation

import (
	"errors"
	"testing"

	"chessrules/engine"
)

func TestParseStartFEN(t *testing.T) {
	s, err := ParseFEN(StartFEN)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if !s.Board.Equal(engine.StandardBoard()) {
		t.Fatalf("board mismatch:\n%s", s.Board)
	}
	if s.Conditions != engine.StandardConditions() {
		t.Fatalf("conditions mismatch: %+v", s.Conditions)
	}
	if s.Halfmove != 0 || s.Fullmove != 1 {
		t.Fatalf("counters %d/%d", s.Halfmove, s.Fullmove)
	}
	if got := s.Board.KingSquare(engine.Black); got != engine.MustPosition("e8") {
		t.Fatalf("black king at %s", got)
	}
}

func TestFormatStandard(t *testing.T) {
	got, err := FormatFEN(Standard())
	if err != nil {
		t.Fatalf("format: %v", err)
	}
	if got != StartFEN {
		t.Fatalf("got %q", got)
	}
}

func TestFENRoundTrip(t *testing.T) {
	tests := []string{
		"rnbqkb1r/ppp1pppp/5n2/3pP3/8/8/PPPP1PPP/RNBQKBNR w KQkq d6 0 3",
		"r3k2r/8/8/8/8/8/8/R3K2R b Kq - 4 20",
		"k7/2Q5/1K6/8/8/8/8/8 b - - 0 1",
		"4k3/8/8/7Q/8/B7/8/3RK3 b - - 12 40",
	}
	for _, fen := range tests {
		s, err := ParseFEN(fen)
		if err != nil {
			t.Fatalf("parse %q: %v", fen, err)
		}
		got, err := FormatFEN(s)
		if err != nil {
			t.Fatalf("format %q: %v", fen, err)
		}
		if got != fen {
			t.Fatalf("round trip:\n got %q\nwant %q", got, fen)
		}
	}
}

func TestParseFENConditions(t *testing.T) {
	s, err := ParseFEN("rnbqkb1r/ppp1pppp/5n2/3pP3/8/8/PPPP1PPP/RNBQKBNR w Kq d6 0 3")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if s.Conditions.EnPassant != engine.MustPosition("d6") {
		t.Fatalf("en passant %s", s.Conditions.EnPassant)
	}
	want := engine.CastlingWhiteKingside | engine.CastlingBlackQueenside
	if s.Conditions.Castling != want {
		t.Fatalf("castling %s, want %s", s.Conditions.Castling, want)
	}
	if _, ok := engine.IsLegalMove(s.Board, s.Conditions, engine.NewMovement(engine.MustPosition("e5"), engine.MustPosition("d6")), engine.White); !ok {
		t.Fatalf("en-passant capture from FEN not legal")
	}
}

func TestParseFENErrors(t *testing.T) {
	for _, fen := range []string{"", "not a fen", "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP w KQkq - 0 1"} {
		if _, err := ParseFEN(fen); !errors.Is(err, ErrInvalidFEN) {
			t.Fatalf("ParseFEN(%q): expected ErrInvalidFEN, got %v", fen, err)
		}
	}
	if _, err := FormatFEN(Setup{}); !errors.Is(err, ErrInvalidFEN) {
		t.Fatalf("FormatFEN without board: %v", err)
	}
}

func TestParseMove(t *testing.T) {
	tests := []struct {
		in    string
		want  string
		promo engine.Kind
		ok    bool
	}{
		{"e2e4", "e2e4", engine.NoKind, true},
		{"E2-E4", "e2e4", engine.NoKind, true},
		{"e7e8q", "e7e8q", engine.Queen, true},
		{"a2a1n", "a2a1n", engine.Knight, true},
		{"e7e8k", "", engine.NoKind, false},
		{"e7e8x", "", engine.NoKind, false},
		{"e9e4", "", engine.NoKind, false},
		{"e2", "", engine.NoKind, false},
	}
	for _, tt := range tests {
		m, err := ParseMove(tt.in)
		if (err == nil) != tt.ok {
			t.Fatalf("ParseMove(%q) error = %v", tt.in, err)
		}
		if err != nil {
			if !errors.Is(err, ErrInvalidMove) {
				t.Fatalf("ParseMove(%q): expected ErrInvalidMove, got %v", tt.in, err)
			}
			continue
		}
		if got := FormatMove(m); got != tt.want || m.Promotion != tt.promo {
			t.Fatalf("ParseMove(%q) = %s promo %s", tt.in, got, m.Promotion)
		}
	}
}
