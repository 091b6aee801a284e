package model

import "errors"

var (
	ErrInvalidMove = errors.New("invalid move")
	ErrGameOver    = errors.New("game is over")

	// ErrKingNotFound means the board is corrupt: every position the engine
	// produces holds exactly one king per color.
	ErrKingNotFound = errors.New("king not found")
)

// Reasons an attempted move is rejected. All of them wrap ErrInvalidMove.
var (
	ErrOutOfBounds = invalidMove("out of bounds")
	ErrNoPiece     = invalidMove("no piece at from square")
	ErrNotYourTurn = invalidMove("not your turn")
	ErrIllegalMove = invalidMove("not legal")
)

type moveError struct {
	reason string
}

func invalidMove(reason string) error {
	return &moveError{reason: reason}
}

func (e *moveError) Error() string {
	return "invalid move, " + e.reason
}

func (e *moveError) Unwrap() error {
	return ErrInvalidMove
}
