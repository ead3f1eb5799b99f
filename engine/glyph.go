package engine

// Glyph returns the Unicode chess symbol of a piece, or '·' for NoPiece.
func Glyph(p Piece) rune {
	switch p.Owner {
	case White:
		switch p.Kind {
		case King:
			return '♔'
		case Queen:
			return '♕'
		case Rook:
			return '♖'
		case Bishop:
			return '♗'
		case Knight:
			return '♘'
		case Pawn:
			return '♙'
		}
	case Black:
		switch p.Kind {
		case King:
			return '♚'
		case Queen:
			return '♛'
		case Rook:
			return '♜'
		case Bishop:
			return '♝'
		case Knight:
			return '♞'
		case Pawn:
			return '♟'
		}
	}
	return '·'
}

// Letter returns the FEN letter of a piece: upper case for White, '.' for NoPiece.
func Letter(p Piece) byte {
	var c byte
	switch p.Kind {
	case King:
		c = 'k'
	case Queen:
		c = 'q'
	case Rook:
		c = 'r'
	case Bishop:
		c = 'b'
	case Knight:
		c = 'n'
	case Pawn:
		c = 'p'
	default:
		return '.'
	}
	switch p.Owner {
	case White:
		return c - 'a' + 'A'
	case Black:
		return c
	default:
		return '.'
	}
}

// ParseLetter is the inverse of Letter.
func ParseLetter(c byte) (Piece, bool) {
	owner := Black
	if c >= 'A' && c <= 'Z' {
		owner = White
		c = c - 'A' + 'a'
	}
	var k Kind
	switch c {
	case 'k':
		k = King
	case 'q':
		k = Queen
	case 'r':
		k = Rook
	case 'b':
		k = Bishop
	case 'n':
		k = Knight
	case 'p':
		k = Pawn
	default:
		return NoPiece, false
	}
	return NewPiece(k, owner), true
}
