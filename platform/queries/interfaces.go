package queries

import "github.com/waterwise-app/play-backend/app/models"

// RoomRepo is the transactional store behind the room coordinator. Every
// method is individually atomic; sequences of calls are not, which is the
// coordinator's documented consistency boundary.
type RoomRepo interface {
	GetRoom(roomId string) (models.Room, error)
	CurrentRoomId(userId string) (string, error)
	MemberCount(roomId string) (int, error)
	ListMembers(roomId string) ([]models.Member, error)

	// CreateRoom atomically creates the room if absent, inserts the host
	// member and sets the host's pointer. Returns ErrRoomExists on collision.
	CreateRoom(room models.Room, hostId string, nowMs int64) error

	// JoinRoom atomically verifies the room and password, inserts the member
	// if not already present (incrementing the count with it) and sets the
	// user's pointer. Idempotent for an existing member.
	JoinRoom(roomId, userId, password string, nowMs int64) error

	// TouchPointer refreshes the user's current-room pointer only.
	TouchPointer(userId, roomId string) error

	// LeaveRoom atomically deletes the membership, decrements the count
	// (floored at zero) and clears the pointer if it referenced this room.
	// If the room is already gone it only repairs the stale pointer.
	LeaveRoom(roomId, userId string) error

	// StartGame atomically flips the room to PLAYING, writes the shared game
	// record and refreshes every member's pointer.
	StartGame(roomId string, nowMs int64) error

	// DeleteRoomCascade removes the members, the shared game record and the
	// room itself. Used by the empty-room sweep.
	DeleteRoomCascade(roomId string) error
}

// StateCleaner removes the per-player game-state records of a room when the
// room itself is torn down.
type StateCleaner interface {
	DeleteRoomStates(roomId string) error
}
