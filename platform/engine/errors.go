package engine

import "errors"

var (
	// ErrNoDiceLeft rejects a roll before any state is touched. The caller
	// shows a notice; nothing is consumed.
	ErrNoDiceLeft = errors.New("no dice left")

	ErrInvalidDice = errors.New("dice value must be between 1 and 6")
)
