package ws

import (
	"errors"

	"github.com/hokmlab/hokm/internal/engine"
	"github.com/hokmlab/hokm/internal/room"
)

var errUnknownMessage = errors.New("unknown message type")

// errorCode maps an operation error to its wire code. Unmapped errors
// fall through to BAD_REQUEST; every mapped error is recoverable and the
// connection stays open.
func errorCode(err error) string {
	switch {
	case errors.Is(err, room.ErrRoomNotFound):
		return "ROOM_NOT_FOUND"
	case errors.Is(err, room.ErrRoomFull):
		return "ROOM_FULL"
	case errors.Is(err, room.ErrGameAlreadyStarted):
		return "GAME_ALREADY_STARTED"
	case errors.Is(err, room.ErrPlayerNotFound), errors.Is(err, engine.ErrPlayerNotFound):
		return "PLAYER_NOT_FOUND"
	case errors.Is(err, engine.ErrInvalidPhase):
		return "INVALID_PHASE"
	case errors.Is(err, engine.ErrTurnViolation):
		return "TURN_VIOLATION"
	case errors.Is(err, engine.ErrInvalidIndex):
		return "INVALID_INDEX"
	case errors.Is(err, engine.ErrSuitViolation):
		return "SUIT_VIOLATION"
	case errors.Is(err, errUnknownMessage):
		return "UNKNOWN_MESSAGE"
	}
	return "BAD_REQUEST"
}

