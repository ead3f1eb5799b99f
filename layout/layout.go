// Package layout maps screen coordinates to board squares and back.
// Both front ends use it: pixels for the window, character cells for the terminal.
package layout

import "chessrules/engine"

type Geometry struct {
	OffsetX, OffsetY int
	SquareWidth      int
	SquareHeight     int
	Flipped          bool // black at the bottom
}

// Fit centres the largest square board in width x height, keeping reserved rows free for status text.
func Fit(width, height, reserved int) Geometry {
	size := (height - reserved) / 8
	if width/8 < size {
		size = width / 8
	}
	if size < 1 {
		size = 1
	}
	board := size * 8
	return Geometry{
		OffsetX:      (width - board) / 2,
		OffsetY:      (height - board) / 2,
		SquareWidth:  size,
		SquareHeight: size,
	}
}

func (g Geometry) Width() int  { return g.SquareWidth * 8 }
func (g Geometry) Height() int { return g.SquareHeight * 8 }

// SquareAt returns the square under (x, y), or false when the point is off the board.
func (g Geometry) SquareAt(x, y int) (engine.Position, bool) {
	x -= g.OffsetX
	y -= g.OffsetY
	if g.SquareWidth <= 0 || g.SquareHeight <= 0 || x < 0 || y < 0 || x >= g.Width() || y >= g.Height() {
		return engine.InvalidPosition, false
	}
	col, row := x/g.SquareWidth, y/g.SquareHeight
	if g.Flipped {
		return engine.Position{File: 8 - col, Rank: row + 1}, true
	}
	return engine.Position{File: col + 1, Rank: 8 - row}, true
}

// Origin is the top-left corner of pos on screen.
func (g Geometry) Origin(pos engine.Position) (x, y int) {
	col, row := pos.File-1, 8-pos.Rank
	if g.Flipped {
		col, row = 8-pos.File, pos.Rank-1
	}
	return g.OffsetX + col*g.SquareWidth, g.OffsetY + row*g.SquareHeight
}

// Light reports whether pos is a light square.
func Light(pos engine.Position) bool {
	return (pos.File+pos.Rank)%2 == 1
}
