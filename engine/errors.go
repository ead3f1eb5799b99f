package engine

import "errors"

var (
	ErrInvalidPosition = errors.New("invalid position")
	ErrOutOfRange      = errors.New("coordinate out of range")
	ErrIllegalState    = errors.New("illegal board state")
)
