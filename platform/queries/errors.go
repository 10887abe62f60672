package queries

import "errors"

// Validation failures
var (
	ErrAlreadyInRoom = errors.New("already in an active room")
	ErrInvalidRoomId = errors.New("invalid room id")
	ErrWrongPassword = errors.New("wrong password")
	ErrRoomFull      = errors.New("room is full")
)

// Not-found failures
var (
	ErrRoomNotFound = errors.New("room not found")
	ErrUserNotFound = errors.New("user not found")
)

// ErrRoomExists is the internal room-code collision signal. CreateRoom
// retries on it; it is never surfaced to callers.
var ErrRoomExists = errors.New("room id already taken")

// ErrCodeSpaceExhausted surfaces after the collision retry bound is hit.
var ErrCodeSpaceExhausted = errors.New("could not allocate a room code")
