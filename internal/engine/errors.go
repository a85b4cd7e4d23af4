package engine

import "errors"

// Engine operation errors. All are local, recoverable conditions: a
// rejected operation is a no-op on the game state.
var (
	// ErrInvalidPhase rejects an operation that is illegal in the current
	// phase, including any mutation attempt after the game has finished.
	ErrInvalidPhase = errors.New("operation not legal in current phase")

	// ErrTurnViolation rejects a play by a player whose seat is not on move.
	ErrTurnViolation = errors.New("not player's turn")

	// ErrInvalidIndex rejects a card index outside the player's hand.
	ErrInvalidIndex = errors.New("card index out of range")

	// ErrSuitViolation rejects an off-suit play while the player still
	// holds a card of the lead suit.
	ErrSuitViolation = errors.New("must follow lead suit")

	// ErrPlayerNotFound rejects an operation naming an unknown player id.
	ErrPlayerNotFound = errors.New("player not found")
)
