package main

import (
	"fmt"
	"image/color"
	"log"
	"os"
	"sync"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"chessrules/bots"
	"chessrules/config"
	"chessrules/engine"
	"chessrules/layout"
	"chessrules/notation"
	"chessrules/session"
)

// Место под строку статуса сверху
const statusHeight = 80

var (
	screenWidth  int
	screenHeight int
)

var (
	lightSquare = color.RGBA{240, 217, 181, 255}
	darkSquare  = color.RGBA{181, 136, 99, 255}
	targetMark  = color.RGBA{90, 160, 90, 160}
)

type Game struct {
	opts      config.Options
	setup     notation.Setup
	chessGame *session.Game
	pieces    map[engine.Piece]*ebiten.Image
	geom      layout.Geometry

	selected     engine.Position
	dragging     *engine.Piece
	targets      engine.MoveSet
	dragX, dragY int

	playerColor engine.Side
	gameStarted bool

	roster      []bots.ChessBot
	currentBot  bots.ChessBot
	botThinking bool
	botMutex    sync.Mutex
}

func NewGame(opts config.Options, setup notation.Setup) *Game {
	screenWidth, screenHeight = opts.Width, opts.Height
	if screenWidth == 0 || screenHeight == 0 {
		// Получаем размеры экрана
		screenWidth, screenHeight = ebiten.ScreenSizeInFullscreen()
	}

	roster := bots.Roster(opts.Seed)
	g := &Game{
		opts:       opts,
		setup:      setup,
		pieces:     make(map[engine.Piece]*ebiten.Image),
		geom:       layout.Fit(screenWidth, screenHeight, statusHeight),
		roster:     roster,
		currentBot: bots.ByName(roster, opts.Bot),
	}
	g.loadPieceImages()
	return g
}

// loadPieceImages рисует фигуры: кружок цвета стороны и буква фигуры.
func (g *Game) loadPieceImages() {
	size := g.geom.SquareWidth
	for _, side := range []engine.Side{engine.White, engine.Black} {
		for _, kind := range []engine.Kind{engine.King, engine.Queen, engine.Rook, engine.Bishop, engine.Knight, engine.Pawn} {
			p := engine.NewPiece(kind, side)

			fill, ink := color.RGBA{250, 250, 250, 255}, color.RGBA{20, 20, 20, 255}
			if side == engine.Black {
				fill, ink = ink, fill
			}
			img := ebiten.NewImage(size, size)
			r := float32(size) * 0.4
			vector.DrawFilledCircle(img, float32(size)/2, float32(size)/2, r, fill, true)
			vector.StrokeCircle(img, float32(size)/2, float32(size)/2, r, 2, color.RGBA{60, 60, 60, 255}, true)

			// Буква отладочным шрифтом (6x16), масштабируем под клетку
			letter := ebiten.NewImage(6, 16)
			ebitenutil.DebugPrint(letter, string(engine.Letter(engine.NewPiece(kind, engine.White))))
			scale := float64(size) / 32
			op := &ebiten.DrawImageOptions{}
			op.GeoM.Scale(scale, scale)
			op.GeoM.Translate(float64(size)/2-3*scale, float64(size)/2-8*scale)
			op.ColorScale.ScaleWithColor(ink)
			img.DrawImage(letter, op)

			g.pieces[p] = img
		}
	}
}

func (g *Game) Update() error {
	if !g.gameStarted {
		if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
			x, y := ebiten.CursorPosition()
			btnWidth := 200
			btnHeight := 60
			btnY := screenHeight/2 + 100

			if y > btnY && y < btnY+btnHeight {
				if x > screenWidth/2-btnWidth-20 && x < screenWidth/2-20 {
					g.startGame(engine.White)
				} else if x > screenWidth/2+20 && x < screenWidth/2+20+btnWidth {
					g.startGame(engine.Black)
				}
			}
		}
		return nil
	}

	if inpututil.IsKeyJustPressed(ebiten.KeyB) {
		g.botMutex.Lock()
		g.currentBot = bots.Next(g.roster, g.currentBot)
		log.Printf("bot: %s", g.currentBot.Name())
		g.botMutex.Unlock()
	}

	g.botMutex.Lock()
	thinking := g.botThinking
	g.botMutex.Unlock()
	if thinking {
		return nil
	}

	if inpututil.IsKeyJustPressed(ebiten.KeyU) {
		g.undo()
		return nil
	}

	if g.chessGame.Status().Over() {
		return nil
	}

	// Ход бота
	if g.chessGame.ToMove() != g.playerColor {
		g.botMutex.Lock()
		g.botThinking = true
		g.botMutex.Unlock()
		go func() {
			time.Sleep(300 * time.Millisecond) // Небольшая задержка
			g.makeBotMove()
		}()
		return nil
	}

	// Обработка хода игрока
	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		x, y := ebiten.CursorPosition()
		if sq, ok := g.geom.SquareAt(x, y); ok {
			board := g.chessGame.Board()
			piece, _ := board.At(sq)
			if !piece.IsNone() && piece.Owner == g.playerColor {
				g.selected = sq
				g.dragging = &piece
				g.targets = g.chessGame.LegalMoves(sq)
			}
		}
	}
	if g.dragging != nil {
		g.dragX, g.dragY = ebiten.CursorPosition()
	}

	if inpututil.IsMouseButtonJustReleased(ebiten.MouseButtonLeft) && g.dragging != nil {
		x, y := ebiten.CursorPosition()
		if target, ok := g.geom.SquareAt(x, y); ok {
			if m, ok := g.targets.Lookup(g.selected, target, engine.NoKind); ok {
				if _, err := g.chessGame.Play(g.playerColor, m.Start, m.End, m.Promotion); err != nil {
					log.Printf("move %s: %v", m, err)
				}
			}
		}
		g.selected = engine.InvalidPosition
		g.dragging = nil
		g.targets = nil
	}

	return nil
}

func (g *Game) startGame(side engine.Side) {
	g.playerColor = side
	g.geom.Flipped = g.opts.Flip != (side == engine.Black)
	g.chessGame = session.New(session.WithPosition(g.setup))
	g.gameStarted = true
	log.Printf("new game: human plays %s against %s", side, g.currentBot.Name())
}

// undo снимает ход бота и ход игрока, чтобы снова был ход игрока.
func (g *Game) undo() {
	if err := g.chessGame.Undo(); err != nil {
		log.Printf("undo: %v", err)
		return
	}
	if g.chessGame.ToMove() != g.playerColor {
		if err := g.chessGame.Undo(); err != nil {
			// Бот ходил первым: возвращаем его ход
			_ = g.chessGame.Redo()
		}
	}
}

func (g *Game) makeBotMove() {
	g.botMutex.Lock()
	defer g.botMutex.Unlock()

	if g.currentBot != nil && g.chessGame.ToMove() != g.playerColor {
		if _, err := bots.Play(g.currentBot, g.chessGame); err != nil {
			log.Printf("Bot move error: %v", err)
		}
	}
	g.botThinking = false
}

func (g *Game) Draw(screen *ebiten.Image) {
	if !g.gameStarted {
		// Экран выбора цвета
		ebitenutil.DebugPrintAt(screen, "Chess rules engine", screenWidth/2-55, screenHeight/2-50)
		ebitenutil.DebugPrintAt(screen, "Choose your side:", screenWidth/2-50, screenHeight/2)

		// Кнопка "Белые"
		whiteBtn := ebiten.NewImage(200, 60)
		whiteBtn.Fill(color.RGBA{200, 200, 200, 255})
		ebitenutil.DebugPrintAt(whiteBtn, "Play white", 70, 20)
		op := &ebiten.DrawImageOptions{}
		op.GeoM.Translate(float64(screenWidth/2-200-20), float64(screenHeight/2+100))
		screen.DrawImage(whiteBtn, op)

		// Кнопка "Черные"
		blackBtn := ebiten.NewImage(200, 60)
		blackBtn.Fill(color.RGBA{50, 50, 50, 255})
		ebitenutil.DebugPrintAt(blackBtn, "Play black", 70, 20)
		op = &ebiten.DrawImageOptions{}
		op.GeoM.Translate(float64(screenWidth/2+20), float64(screenHeight/2+100))
		screen.DrawImage(blackBtn, op)
		return
	}

	size := float32(g.geom.SquareWidth)

	// Рисуем доску
	for file := 1; file <= 8; file++ {
		for rank := 1; rank <= 8; rank++ {
			pos := engine.Position{File: file, Rank: rank}
			clr := darkSquare
			if layout.Light(pos) {
				clr = lightSquare
			}
			x, y := g.geom.Origin(pos)
			vector.DrawFilledRect(screen, float32(x), float32(y), size, size, clr, false)
		}
	}

	// Подсветка допустимых ходов
	for _, end := range g.targets.Ends() {
		x, y := g.geom.Origin(end)
		vector.DrawFilledCircle(screen, float32(x)+size/2, float32(y)+size/2, size/6, targetMark, true)
	}

	// Рисуем фигуры
	board := g.chessGame.Board()
	for _, pl := range board.Placements() {
		if g.dragging != nil && pl.Position == g.selected {
			continue
		}
		if img := g.pieces[pl.Piece]; img != nil {
			x, y := g.geom.Origin(pl.Position)
			op := &ebiten.DrawImageOptions{}
			op.GeoM.Translate(float64(x), float64(y))
			screen.DrawImage(img, op)
		}
	}

	// Рисуем перетаскиваемую фигуру
	if g.dragging != nil {
		if img := g.pieces[*g.dragging]; img != nil {
			op := &ebiten.DrawImageOptions{}
			op.GeoM.Translate(
				float64(g.dragX)-float64(size)/2,
				float64(g.dragY)-float64(size)/2,
			)
			screen.DrawImage(img, op)
		}
	}

	g.botMutex.Lock()
	thinking := g.botThinking
	botName := g.currentBot.Name()
	g.botMutex.Unlock()

	// Статус игры
	status := g.chessGame.Status()
	text := "Your move"
	switch {
	case status.Over():
		text = fmt.Sprintf("Result: %s, %s to move", status, g.chessGame.ToMove())
	case thinking:
		text = "Bot is thinking..."
	case g.chessGame.ToMove() != g.playerColor:
		text = "Bot to move"
	case status == engine.Check:
		text = "Your move (check)"
	}
	ebitenutil.DebugPrintAt(screen, text, 20, 20)
	ebitenutil.DebugPrintAt(screen, "Bot: "+botName+"  [B] switch  [U] undo", 20, screenHeight-40)
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return screenWidth, screenHeight
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

	game := NewGame(opts, setup)
	ebiten.SetWindowSize(screenWidth, screenHeight)
	ebiten.SetWindowTitle("Chess rules engine")
	ebiten.SetWindowResizable(true)
	if err := ebiten.RunGame(game); err != nil {
		log.Fatal(err)
	}
}
