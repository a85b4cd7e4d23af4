package room

import "errors"

// Lobby operation errors. Like the engine's, all are recoverable and a
// rejected operation mutates nothing.
var (
	ErrRoomNotFound       = errors.New("room not found")
	ErrRoomFull           = errors.New("room is full")
	ErrGameAlreadyStarted = errors.New("game already started")
	ErrPlayerNotFound     = errors.New("player not found in room")
)
