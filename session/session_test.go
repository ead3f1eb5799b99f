package session

import (
	"encoding/json"
	"errors"
	"io"
	"log"
	"testing"

	"chessrules/engine"
	"chessrules/notation"
)

type recorder struct {
	sent  []Record
	fail  error
	moved []Record
	peers []string
	gone  []string
}

func (r *recorder) Send(rec Record) error {
	r.sent = append(r.sent, rec)
	return r.fail
}

func (r *recorder) Connected(peer string)               { r.peers = append(r.peers, peer) }
func (r *recorder) Disconnected(peer string, err error) { r.gone = append(r.gone, peer) }
func (r *recorder) Moved(rec Record)                    { r.moved = append(r.moved, rec) }

func quiet() Option { return WithLogger(log.New(io.Discard, "", 0)) }

func play(t *testing.T, g *Game, side engine.Side, text string) engine.Movement {
	t.Helper()
	m, err := notation.ParseMove(text)
	if err != nil {
		t.Fatalf("parse %s: %v", text, err)
	}
	out, err := g.Play(side, m.Start, m.End, m.Promotion)
	if err != nil {
		t.Fatalf("play %s: %v", text, err)
	}
	return out
}

func TestFoolsMate(t *testing.T) {
	g := New(quiet())
	play(t, g, engine.White, "f2f3")
	play(t, g, engine.Black, "e7e5")
	play(t, g, engine.White, "g2g4")
	if g.Status() != engine.Ongoing {
		t.Fatalf("status before mate: %s", g.Status())
	}
	play(t, g, engine.Black, "d8h4")

	if g.Status() != engine.Checkmate {
		t.Fatalf("expected checkmate, got %s", g.Status())
	}
	if len(g.Moves()) != 0 {
		t.Fatalf("mated side still has moves")
	}
	_, err := g.Play(engine.White, engine.MustPosition("e2"), engine.MustPosition("e3"), engine.NoKind)
	if !errors.Is(err, ErrGameOver) {
		t.Fatalf("expected ErrGameOver, got %v", err)
	}
}

func TestPlayRejects(t *testing.T) {
	g := New(quiet())
	_, err := g.Play(engine.Black, engine.MustPosition("e7"), engine.MustPosition("e5"), engine.NoKind)
	if !errors.Is(err, ErrNotYourTurn) {
		t.Fatalf("expected ErrNotYourTurn, got %v", err)
	}
	_, err = g.Play(engine.White, engine.MustPosition("e2"), engine.MustPosition("e5"), engine.NoKind)
	if !errors.Is(err, ErrIllegalMove) {
		t.Fatalf("expected ErrIllegalMove, got %v", err)
	}
	if len(g.History()) != 0 || g.ToMove() != engine.White {
		t.Fatalf("rejected moves changed the game")
	}
}

func TestUndoRedo(t *testing.T) {
	g := New(quiet())
	if err := g.Undo(); !errors.Is(err, ErrNothingToUndo) {
		t.Fatalf("expected ErrNothingToUndo, got %v", err)
	}
	start := g.FEN()
	play(t, g, engine.White, "e2e4")
	afterE4 := g.FEN()
	play(t, g, engine.Black, "c7c5")

	if err := g.Undo(); err != nil {
		t.Fatalf("undo: %v", err)
	}
	if g.FEN() != afterE4 || g.ToMove() != engine.Black {
		t.Fatalf("undo left %s", g.FEN())
	}
	if err := g.Undo(); err != nil {
		t.Fatalf("undo: %v", err)
	}
	if g.FEN() != start {
		t.Fatalf("second undo left %s", g.FEN())
	}

	if err := g.Redo(); err != nil {
		t.Fatalf("redo: %v", err)
	}
	if g.FEN() != afterE4 || len(g.History()) != 1 {
		t.Fatalf("redo left %s", g.FEN())
	}

	// A new move drops the redo stack.
	play(t, g, engine.Black, "e7e5")
	if err := g.Redo(); !errors.Is(err, ErrNothingToRedo) {
		t.Fatalf("expected ErrNothingToRedo, got %v", err)
	}
}

func TestConditionsFollowMoves(t *testing.T) {
	g := New(quiet())
	play(t, g, engine.White, "e2e4")
	if got := g.Conditions().EnPassant; got != engine.MustPosition("e3") {
		t.Fatalf("en passant target %s", got)
	}
	play(t, g, engine.Black, "g8f6")
	play(t, g, engine.White, "e1e2")
	c := g.Conditions()
	if c.Castling.HasSide(engine.White, true) || c.Castling.HasSide(engine.White, false) {
		t.Fatalf("white kept castling rights after a king move: %s", c.Castling)
	}
	if !c.Castling.HasSide(engine.Black, true) {
		t.Fatalf("black lost castling rights: %s", c.Castling)
	}
	if got := g.FEN(); got != "rnbqkb1r/pppppppp/5n2/8/4P3/8/PPPPKPPP/RNBQ1BNR b kq - 2 2" {
		t.Fatalf("fen %s", got)
	}
}

func TestPromotionThroughSession(t *testing.T) {
	s, err := notation.ParseFEN("8/P6k/8/8/8/8/8/K7 w - - 0 1")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	g := New(WithPosition(s), quiet())
	m := play(t, g, engine.White, "a7a8")
	if m.Special != engine.Promotion || m.Promotion != engine.Queen {
		t.Fatalf("expected queen promotion, got %+v", m)
	}
	if err := g.Undo(); err != nil {
		t.Fatalf("undo: %v", err)
	}
	m = play(t, g, engine.White, "a7a8n")
	if m.Promotion != engine.Knight {
		t.Fatalf("expected knight, got %s", m.Promotion)
	}
	p, _ := g.Board().At(engine.MustPosition("a8"))
	if p != engine.NewPiece(engine.Knight, engine.White) {
		t.Fatalf("a8 holds %v", p)
	}
	// The caller's setup is not shared with the game.
	if q, _ := s.Board.At(engine.MustPosition("a7")); q.Kind != engine.Pawn {
		t.Fatalf("WithPosition did not copy the board")
	}
}

func TestTransportAndObserver(t *testing.T) {
	rec := &recorder{fail: errors.New("link down")}
	g := New(WithTransport(rec), WithObserver(rec), quiet())
	play(t, g, engine.White, "d2d4")

	if len(rec.sent) != 1 || rec.sent[0].Move != "d2d4" || rec.sent[0].Ply != 1 || rec.sent[0].Side != "white" {
		t.Fatalf("sent %+v", rec.sent)
	}
	if len(rec.moved) != 1 || rec.moved[0] != rec.sent[0] {
		t.Fatalf("observer saw %+v", rec.moved)
	}

	g.PeerConnected("peer-1")
	g.PeerDisconnected("peer-1", io.EOF)
	if len(rec.peers) != 1 || len(rec.gone) != 1 {
		t.Fatalf("peer events %v %v", rec.peers, rec.gone)
	}
}

func TestApplyRemote(t *testing.T) {
	host := New(quiet())
	rec := &recorder{}
	guest := New(WithTransport(rec), WithObserver(rec), quiet())

	play(t, host, engine.White, "e2e4")
	r := host.History()[0]
	if err := guest.ApplyRemote(r); err != nil {
		t.Fatalf("apply: %v", err)
	}
	if guest.FEN() != host.FEN() {
		t.Fatalf("peers diverged: %s vs %s", guest.FEN(), host.FEN())
	}
	if len(rec.sent) != 0 || len(rec.moved) != 1 {
		t.Fatalf("remote move echoed: sent %d moved %d", len(rec.sent), len(rec.moved))
	}

	if err := guest.ApplyRemote(r); !errors.Is(err, ErrOutOfSync) {
		t.Fatalf("replayed ply: %v", err)
	}
	bad := Record{Ply: 2, Side: "black", Move: "e7e5", FEN: "8/8/8/8/8/8/8/8 w - - 0 1"}
	if err := guest.ApplyRemote(bad); !errors.Is(err, ErrOutOfSync) {
		t.Fatalf("mismatched fen: %v", err)
	}
	if len(guest.History()) != 1 {
		t.Fatalf("rejected remote move was kept")
	}
	if err := guest.ApplyRemote(Record{Side: "black", Move: "e7e4"}); !errors.Is(err, ErrIllegalMove) {
		t.Fatalf("illegal remote move: %v", err)
	}
	if err := guest.ApplyRemote(Record{Side: "white", Move: "d2d4"}); !errors.Is(err, ErrNotYourTurn) {
		t.Fatalf("wrong side: %v", err)
	}
	if err := guest.ApplyRemote(Record{Side: "black", Move: "e7e5"}); err != nil {
		t.Fatalf("apply without ply: %v", err)
	}
}

func TestSnapshot(t *testing.T) {
	g := New(quiet())
	play(t, g, engine.White, "g1f3")
	st := g.Snapshot()
	if st.ToMove != "black" || st.Status != engine.Ongoing {
		t.Fatalf("snapshot header %+v", st)
	}
	if len(st.Pieces) != 32 || len(st.Moves) != 20 || len(st.History) != 1 {
		t.Fatalf("pieces %d moves %d history %d", len(st.Pieces), len(st.Moves), len(st.History))
	}

	data, err := st.JSON()
	if err != nil {
		t.Fatalf("json: %v", err)
	}
	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if raw["status"] != "ongoing" || raw["fen"] != st.FEN {
		t.Fatalf("encoded %s", data)
	}
}
