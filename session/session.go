// Package session keeps one game in turn order on top of the rules engine.
// It owns the board, derives the conditions after every move and keeps undo/redo history.
package session

import (
	"fmt"
	"log"
	"sync"

	"chessrules/engine"
	"chessrules/notation"
)

type step struct {
	setup  notation.Setup
	record Record
}

type Game struct {
	mu        sync.Mutex
	cur       notation.Setup
	past      []step
	future    []step
	transport Transport
	observers []Observer
	logger    *log.Logger
}

type Option func(*Game)

// WithPosition starts from s instead of the standard position.
func WithPosition(s notation.Setup) Option {
	return func(g *Game) {
		if s.Board == nil {
			return
		}
		s.Board = s.Board.Clone()
		if s.Fullmove < 1 {
			s.Fullmove = 1
		}
		g.cur = s
	}
}

func WithTransport(t Transport) Option {
	return func(g *Game) { g.transport = t }
}

func WithObserver(o Observer) Option {
	return func(g *Game) { g.observers = append(g.observers, o) }
}

func WithLogger(l *log.Logger) Option {
	return func(g *Game) { g.logger = l }
}

func New(opts ...Option) *Game {
	g := &Game{
		cur:    notation.Standard(),
		logger: log.Default(),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Play commits a move for side. promotion may be engine.NoKind, in which case a promoting pawn becomes a queen.
func (g *Game) Play(side engine.Side, start, end engine.Position, promotion engine.Kind) (engine.Movement, error) {
	g.mu.Lock()
	m, r, err := g.commit(side, start, end, promotion)
	transport := g.transport
	g.mu.Unlock()
	if err != nil {
		return engine.Movement{}, err
	}

	if transport != nil {
		if err := transport.Send(r); err != nil {
			g.logger.Printf("send %s: %v", r.Move, err)
		}
	}
	g.notify(r)
	return m, nil
}

// ApplyRemote commits a move that arrived from the other peer. It is not sent back.
func (g *Game) ApplyRemote(r Record) error {
	side, ok := engine.ParseSide(r.Side)
	if !ok {
		return fmt.Errorf("%w: side %q", ErrIllegalMove, r.Side)
	}
	proposal, err := notation.ParseMove(r.Move)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrIllegalMove, err)
	}

	g.mu.Lock()
	if r.Ply != 0 && r.Ply != len(g.past)+1 {
		ply := len(g.past)
		g.mu.Unlock()
		return fmt.Errorf("%w: got ply %d after %d", ErrOutOfSync, r.Ply, ply)
	}
	before, future := g.cur, g.future
	_, local, err := g.commit(side, proposal.Start, proposal.End, proposal.Promotion)
	if err == nil && r.FEN != "" && r.FEN != local.FEN {
		g.cur, g.future = before, future
		g.past = g.past[:len(g.past)-1]
		err = fmt.Errorf("%w: peer has %q, we have %q", ErrOutOfSync, r.FEN, local.FEN)
	}
	g.mu.Unlock()
	if err != nil {
		g.logger.Printf("remote move %s rejected: %v", r.Move, err)
		return err
	}

	g.notify(local)
	return nil
}

// commit must be called with g.mu held.
func (g *Game) commit(side engine.Side, start, end engine.Position, promotion engine.Kind) (engine.Movement, Record, error) {
	if engine.Evaluate(g.cur.Board, g.cur.Conditions).Over() {
		return engine.Movement{}, Record{}, ErrGameOver
	}
	if side != g.cur.Conditions.ToMove {
		return engine.Movement{}, Record{}, fmt.Errorf("%w: %s to move", ErrNotYourTurn, g.cur.Conditions.ToMove)
	}
	proposal := engine.NewMovement(start, end)
	proposal.Promotion = promotion
	m, ok := engine.IsLegalMove(g.cur.Board, g.cur.Conditions, proposal, side)
	if !ok {
		return engine.Movement{}, Record{}, fmt.Errorf("%w: %s", ErrIllegalMove, proposal)
	}

	next, err := advance(g.cur, m)
	if err != nil {
		return engine.Movement{}, Record{}, err
	}
	fen, err := notation.FormatFEN(next)
	if err != nil {
		return engine.Movement{}, Record{}, err
	}

	r := Record{Ply: len(g.past) + 1, Side: side.String(), Move: notation.FormatMove(m), FEN: fen}
	g.past = append(g.past, step{setup: g.cur, record: r})
	g.future = nil
	g.cur = next
	return m, r, nil
}

// advance plays m on a copy of s and updates conditions and counters.
func advance(s notation.Setup, m engine.Movement) (notation.Setup, error) {
	mover, err := s.Board.At(m.Start)
	if err != nil {
		return notation.Setup{}, err
	}
	capture := s.Board.IsOccupiedAt(m.End) || m.Special == engine.EnPassant

	next := notation.Setup{
		Board:      s.Board.Clone(),
		Conditions: s.Conditions.Next(s.Board, m),
		Halfmove:   s.Halfmove + 1,
		Fullmove:   s.Fullmove,
	}
	if err := next.Board.MovePiece(m); err != nil {
		return notation.Setup{}, err
	}
	if capture || mover.Kind == engine.Pawn {
		next.Halfmove = 0
	}
	if mover.Owner == engine.Black {
		next.Fullmove++
	}
	return next, nil
}

func (g *Game) notify(r Record) {
	for _, o := range g.observers {
		o.Moved(r)
	}
}

func (g *Game) Undo() error {
	g.mu.Lock()
	defer g.mu.Unlock()
	if len(g.past) == 0 {
		return ErrNothingToUndo
	}
	last := g.past[len(g.past)-1]
	g.past = g.past[:len(g.past)-1]
	g.future = append(g.future, step{setup: g.cur, record: last.record})
	g.cur = last.setup
	return nil
}

func (g *Game) Redo() error {
	g.mu.Lock()
	defer g.mu.Unlock()
	if len(g.future) == 0 {
		return ErrNothingToRedo
	}
	last := g.future[len(g.future)-1]
	g.future = g.future[:len(g.future)-1]
	g.past = append(g.past, step{setup: g.cur, record: last.record})
	g.cur = last.setup
	return nil
}

func (g *Game) Status() engine.Status {
	g.mu.Lock()
	defer g.mu.Unlock()
	return engine.Evaluate(g.cur.Board, g.cur.Conditions)
}

func (g *Game) ToMove() engine.Side {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.cur.Conditions.ToMove
}

// Board returns a copy; changing it does not affect the game.
func (g *Game) Board() *engine.Board {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.cur.Board.Clone()
}

func (g *Game) Conditions() engine.GameConditions {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.cur.Conditions
}

// LegalMoves lists the moves of the piece on from, if it belongs to the side to move.
func (g *Game) LegalMoves(from engine.Position) engine.MoveSet {
	g.mu.Lock()
	defer g.mu.Unlock()
	p, err := g.cur.Board.At(from)
	if err != nil || p.Owner != g.cur.Conditions.ToMove {
		return engine.MoveSet{}
	}
	return engine.ValidMoves(g.cur.Board, g.cur.Conditions, from)
}

// Moves lists every legal move of the side to move in a stable order.
func (g *Game) Moves() []engine.Movement {
	g.mu.Lock()
	defer g.mu.Unlock()
	return engine.AllValidMoves(g.cur.Board, g.cur.Conditions, g.cur.Conditions.ToMove).Sorted()
}

// History returns the moves from the start up to the current position.
func (g *Game) History() []Record {
	g.mu.Lock()
	defer g.mu.Unlock()
	out := make([]Record, len(g.past))
	for i, s := range g.past {
		out[i] = s.record
	}
	return out
}

func (g *Game) FEN() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	fen, err := notation.FormatFEN(g.cur)
	if err != nil {
		g.logger.Printf("format position: %v", err)
	}
	return fen
}
