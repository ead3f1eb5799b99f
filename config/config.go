// Package config reads front-end options from flags, falling back to CHESSRULES_* environment variables.
package config

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"chessrules/engine"
	"chessrules/notation"
)

const envPrefix = "CHESSRULES_"

var ErrInvalidOption = errors.New("invalid option")

type Options struct {
	FEN    string
	Player engine.Side
	Bot    string
	Seed   int64 // 0 picks a seed from the clock
	Width  int   // 0 fits the screen
	Height int
	Flip   bool
}

// Load parses args (without the program name). Flags win over the environment.
func Load(name string, args []string) (Options, error) {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	fen := fs.String("fen", getenv("FEN", notation.StartFEN), "starting position in FEN")
	player := fs.String("player", getenv("PLAYER", "white"), "side the human plays: white or black")
	bot := fs.String("bot", getenv("BOT", "Newborn"), "bot that answers the human")
	seed := fs.Int64("seed", getenvInt("SEED", 0), "random bot seed (0 = from clock)")
	width := fs.Int("width", int(getenvInt("WIDTH", 0)), "window width in pixels (0 = fit screen)")
	height := fs.Int("height", int(getenvInt("HEIGHT", 0)), "window height in pixels (0 = fit screen)")
	flip := fs.Bool("flip", getenb("FLIP", false), "draw the board from black's side")
	if err := fs.Parse(args); err != nil {
		return Options{}, fmt.Errorf("%w: %v", ErrInvalidOption, err)
	}

	side, ok := engine.ParseSide(strings.TrimSpace(*player))
	if !ok {
		return Options{}, fmt.Errorf("%w: player %q", ErrInvalidOption, *player)
	}
	if *width < 0 || *height < 0 {
		return Options{}, fmt.Errorf("%w: size %dx%d", ErrInvalidOption, *width, *height)
	}
	o := Options{
		FEN:    *fen,
		Player: side,
		Bot:    *bot,
		Seed:   *seed,
		Width:  *width,
		Height: *height,
		Flip:   *flip,
	}
	if o.Seed == 0 {
		o.Seed = time.Now().UnixNano()
	}
	return o, nil
}

// Setup parses the configured starting position.
func (o Options) Setup() (notation.Setup, error) {
	return notation.ParseFEN(o.FEN)
}

func getenv(key, def string) string {
	if v := os.Getenv(envPrefix + key); v != "" {
		return v
	}
	return def
}

func getenb(key string, def bool) bool {
	if v := os.Getenv(envPrefix + key); v != "" {
		switch strings.ToLower(strings.TrimSpace(v)) {
		case "1", "true", "t", "yes", "y", "on":
			return true
		case "0", "false", "f", "no", "n", "off":
			return false
		}
	}
	return def
}

func getenvInt(key string, def int64) int64 {
	if v := os.Getenv(envPrefix + key); v != "" {
		if n, err := strconv.ParseInt(strings.TrimSpace(v), 10, 64); err == nil {
			return n
		}
	}
	return def
}
