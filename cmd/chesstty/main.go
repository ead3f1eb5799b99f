// Command chesstty plays against a bot in the terminal.
package main

import (
	"fmt"
	"io"
	"log"
	"os"

	"github.com/gdamore/tcell/v2"

	"chessrules/bots"
	"chessrules/config"
	"chessrules/engine"
	"chessrules/layout"
	"chessrules/session"
)

var (
	lightSquare = tcell.StyleDefault.Background(tcell.NewRGBColor(240, 217, 181))
	darkSquare  = tcell.StyleDefault.Background(tcell.NewRGBColor(181, 136, 99))
	cursorStyle = tcell.StyleDefault.Background(tcell.NewRGBColor(110, 150, 200))
	targetStyle = tcell.StyleDefault.Background(tcell.NewRGBColor(120, 180, 110))
	textStyle   = tcell.StyleDefault
)

// GameState держит всё, что нужно для одной партии в терминале
type GameState struct {
	S        tcell.Screen
	Game     *session.Game
	Geom     layout.Geometry
	Player   engine.Side
	Roster   []bots.ChessBot
	Bot      bots.ChessBot
	Cursor   engine.Position
	Selected engine.Position
	Targets  engine.MoveSet
	Message  string
}

func main() {
	opts, err := config.Load(os.Args[0], os.Args[1:])
	if err != nil {
		log.Fatal(err)
	}
	setup, err := opts.Setup()
	if err != nil {
		log.Fatalf("start position: %v", err)
	}

	s, err := tcell.NewScreen()
	if err != nil {
		log.Fatalf("screen: %v", err)
	}
	if err := s.Init(); err != nil {
		log.Fatalf("screen: %v", err)
	}
	defer s.Fini()
	s.EnableMouse()

	roster := bots.Roster(opts.Seed)
	st := &GameState{
		S: s,
		// Терминал занят доской, логи не выводим
		Game:     session.New(session.WithPosition(setup), session.WithLogger(log.New(io.Discard, "", 0))),
		Geom:     layout.Geometry{OffsetX: 3, OffsetY: 1, SquareWidth: 3, SquareHeight: 1, Flipped: opts.Flip != (opts.Player == engine.Black)},
		Player:   opts.Player,
		Roster:   roster,
		Bot:      bots.ByName(roster, opts.Bot),
		Cursor:   engine.MustPosition("e2"),
		Selected: engine.InvalidPosition,
	}
	st.run()
}

func (st *GameState) run() {
	for {
		st.botTurn()
		st.draw()

		switch ev := st.S.PollEvent().(type) {
		case *tcell.EventResize:
			st.S.Sync()
		case *tcell.EventKey:
			if !st.key(ev) {
				return
			}
		case *tcell.EventMouse:
			if ev.Buttons()&tcell.Button1 != 0 {
				if pos, ok := st.Geom.SquareAt(ev.Position()); ok {
					st.Cursor = pos
					st.activate()
				}
			}
		}
	}
}

// key returns false when the player quits.
func (st *GameState) key(ev *tcell.EventKey) bool {
	df, dr := 0, 0
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return false
	case tcell.KeyUp:
		dr = 1
	case tcell.KeyDown:
		dr = -1
	case tcell.KeyLeft:
		df = -1
	case tcell.KeyRight:
		df = 1
	case tcell.KeyEnter:
		st.activate()
	case tcell.KeyRune:
		switch ev.Rune() {
		case 'q':
			return false
		case ' ':
			st.activate()
		case 'u':
			st.undo()
		case 'b':
			st.Bot = bots.Next(st.Roster, st.Bot)
			st.Message = "bot: " + st.Bot.Name()
		}
	}
	if st.Geom.Flipped {
		df, dr = -df, -dr
	}
	if next := st.Cursor.Offset(df, dr); next.IsValid() {
		st.Cursor = next
	}
	return true
}

// activate выбирает фигуру под курсором или делает ход выбранной фигурой.
func (st *GameState) activate() {
	if st.Game.Status().Over() || st.Game.ToMove() != st.Player {
		return
	}
	if st.Selected.IsValid() {
		if m, ok := st.Targets.Lookup(st.Selected, st.Cursor, engine.NoKind); ok {
			if _, err := st.Game.Play(st.Player, m.Start, m.End, m.Promotion); err != nil {
				st.Message = err.Error()
			} else {
				st.Message = "you played " + m.String()
			}
			st.Selected, st.Targets = engine.InvalidPosition, nil
			return
		}
	}
	moves := st.Game.LegalMoves(st.Cursor)
	if len(moves) == 0 {
		st.Selected, st.Targets = engine.InvalidPosition, nil
		return
	}
	st.Selected, st.Targets = st.Cursor, moves
}

func (st *GameState) botTurn() {
	if st.Game.Status().Over() || st.Game.ToMove() == st.Player {
		return
	}
	m, err := bots.Play(st.Bot, st.Game)
	if err != nil {
		st.Message = "bot: " + err.Error()
		return
	}
	st.Message = fmt.Sprintf("%s played %s", st.Bot.Name(), m)
}

func (st *GameState) undo() {
	st.Selected, st.Targets = engine.InvalidPosition, nil
	if err := st.Game.Undo(); err != nil {
		st.Message = err.Error()
		return
	}
	if st.Game.ToMove() != st.Player {
		if err := st.Game.Undo(); err != nil {
			_ = st.Game.Redo()
		}
	}
	st.Message = "undone"
}

func (st *GameState) draw() {
	st.S.Clear()
	board := st.Game.Board()
	targets := make(map[engine.Position]bool)
	for _, end := range st.Targets.Ends() {
		targets[end] = true
	}

	for file := 1; file <= 8; file++ {
		for rank := 1; rank <= 8; rank++ {
			pos := engine.Position{File: file, Rank: rank}
			style := darkSquare
			switch {
			case pos == st.Cursor:
				style = cursorStyle
			case targets[pos]:
				style = targetStyle
			case layout.Light(pos):
				style = lightSquare
			}
			p, _ := board.At(pos)
			if pos == st.Selected {
				style = style.Bold(true).Reverse(true)
			}
			fg := tcell.ColorWhite
			if p.Owner == engine.Black {
				fg = tcell.ColorBlack
			}
			x, y := st.Geom.Origin(pos)
			st.S.SetContent(x, y, ' ', nil, style)
			glyph := ' '
			if !p.IsNone() {
				glyph = engine.Glyph(engine.NewPiece(p.Kind, engine.Black))
			}
			st.S.SetContent(x+1, y, glyph, nil, style.Foreground(fg))
			st.S.SetContent(x+2, y, ' ', nil, style)
		}
	}

	// Подписи вертикалей и горизонталей
	for i := 1; i <= 8; i++ {
		x, _ := st.Geom.Origin(engine.Position{File: i, Rank: 1})
		_, y := st.Geom.Origin(engine.Position{File: 1, Rank: i})
		st.S.SetContent(x+1, st.Geom.OffsetY+st.Geom.Height(), rune('a'+i-1), nil, textStyle)
		st.S.SetContent(st.Geom.OffsetX-2, y, rune('0'+i), nil, textStyle)
	}

	row := st.Geom.OffsetY + st.Geom.Height() + 2
	status := st.Game.Status()
	st.print(0, row, fmt.Sprintf("%s to move, %s", st.Game.ToMove(), status))
	st.print(0, row+1, "bot: "+st.Bot.Name())
	st.print(0, row+2, st.Message)
	st.print(0, row+4, "arrows/mouse: select  enter/space: move  u: undo  b: bot  q: quit")
	st.S.Show()
}

func (st *GameState) print(x, y int, s string) {
	for _, r := range s {
		st.S.SetContent(x, y, r, nil, textStyle)
		x++
	}
}
