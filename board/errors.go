package board

import "errors"

var (
	ErrInvalidFEN       = errors.New("invalid fen")
	ErrInvalidMove      = errors.New("invalid move")
	ErrIllegalMove      = errors.New("illegal move")
	ErrInvalidPromotion = errors.New("invalid promotion")
	ErrGameOver         = errors.New("game is over")
)
