package queries

import (
	"time"

	"github.com/waterwise-app/play-backend/app/models"
	"github.com/waterwise-app/play-backend/pkg"
	"github.com/waterwise-app/play-backend/platform/logging"
)

const (
	RoomCodeLength = 6

	// MaxRoomMembers is advisory only: the pre-check in JoinRoom is not part
	// of the join transaction, so concurrent joins can overshoot it. Kept
	// that way deliberately rather than silently changing behavior.
	MaxRoomMembers = 5

	// maxCodeAttempts bounds the collision retry in CreateRoom. The code
	// space is 31^6, so hitting this in practice means the store is lying.
	maxCodeAttempts = 32
)

// RoomService composes the per-operation atomic RoomRepo calls into the room
// lifecycle. Cross-operation sequences (leave old room, then join new) are
// intentionally not atomic as a whole.
type RoomService struct {
	repo    RoomRepo
	states  StateCleaner
	genCode func(n int) string
	now     func() time.Time
}

func NewRoomService(repo RoomRepo, states StateCleaner) *RoomService {
	return &RoomService{
		repo:    repo,
		states:  states,
		genCode: pkg.RandString,
		now:     time.Now,
	}
}

func (s *RoomService) nowMs() int64 {
	return s.now().UnixMilli()
}

// CreateRoom allocates a fresh room code and creates the room with the host
// as its first member. Fails if the host is already in a room.
func (s *RoomService) CreateRoom(hostId, password string) (string, error) {
	cur, err := s.repo.CurrentRoomId(hostId)
	if err != nil {
		return "", err
	}
	if cur != "" {
		return "", ErrAlreadyInRoom
	}

	for i := 0; i < maxCodeAttempts; i++ {
		code := s.genCode(RoomCodeLength)
		room := models.Room{
			Id:          code,
			Password:    password,
			Status:      models.RoomStatusIdle,
			MemberCount: 1,
			CreatedAt:   s.nowMs(),
		}
		err := s.repo.CreateRoom(room, hostId, s.nowMs())
		if err == ErrRoomExists {
			logging.Log.WithField("room", code).Debug("room code collision, retrying")
			continue
		}
		if err != nil {
			return "", err
		}
		return code, nil
	}
	return "", ErrCodeSpaceExhausted
}

// JoinRoom puts the user into the room. Re-joining the current room is an
// idempotent pointer refresh; being in a different room triggers a full
// leave of that room first.
func (s *RoomService) JoinRoom(userId, roomId, password string) error {
	if roomId == "" {
		return ErrInvalidRoomId
	}

	cur, err := s.repo.CurrentRoomId(userId)
	if err != nil {
		return err
	}
	if cur == roomId {
		return s.repo.TouchPointer(userId, roomId)
	}
	if cur != "" {
		if err := s.LeaveRoom(userId, cur); err != nil {
			return err
		}
	}

	// Advisory capacity pre-check. Not transactional with the join below.
	n, err := s.repo.MemberCount(roomId)
	if err == nil && n >= MaxRoomMembers {
		return ErrRoomFull
	}

	return s.repo.JoinRoom(roomId, userId, password, s.nowMs())
}

// LeaveRoom removes the user's membership and then sweeps the room away if
// it ended up empty.
func (s *RoomService) LeaveRoom(userId, roomId string) error {
	if roomId == "" {
		return ErrInvalidRoomId
	}
	if err := s.repo.LeaveRoom(roomId, userId); err != nil {
		return err
	}
	s.cleanupRoomIfEmpty(roomId)
	return nil
}

// cleanupRoomIfEmpty re-checks membership after a leave committed and, if
// the room is genuinely empty, deletes member records, per-player game state
// and the room. Best-effort: a join landing in the window re-creates nothing
// worse than a lost room, and failures only leave garbage for the next sweep.
func (s *RoomService) cleanupRoomIfEmpty(roomId string) {
	n, err := s.repo.MemberCount(roomId)
	if err != nil || n > 0 {
		return
	}
	if _, err := s.repo.GetRoom(roomId); err != nil {
		return
	}
	if s.states != nil {
		if err := s.states.DeleteRoomStates(roomId); err != nil {
			logging.Log.WithField("room", roomId).WithError(err).Warn("failed deleting game states")
		}
	}
	if err := s.repo.DeleteRoomCascade(roomId); err != nil {
		logging.Log.WithField("room", roomId).WithError(err).Warn("failed deleting empty room")
	}
}

// StartGame flips the room to PLAYING and stamps the shared game record.
// One-way: rooms never return to IDLE, they get deleted.
func (s *RoomService) StartGame(roomId string) error {
	if roomId == "" {
		return ErrInvalidRoomId
	}
	return s.repo.StartGame(roomId, s.nowMs())
}

// FetchCurrentRoomId returns the user's active room, "" when none.
func (s *RoomService) FetchCurrentRoomId(userId string) (string, error) {
	return s.repo.CurrentRoomId(userId)
}

// LeaveActiveRoomIfAny is the convenience composition callers run before
// creating or joining a new room.
func (s *RoomService) LeaveActiveRoomIfAny(userId string) error {
	cur, err := s.repo.CurrentRoomId(userId)
	if err != nil {
		return err
	}
	if cur == "" {
		return nil
	}
	return s.LeaveRoom(userId, cur)
}

// Room returns the room record for display.
func (s *RoomService) Room(roomId string) (models.Room, error) {
	return s.repo.GetRoom(roomId)
}

// Members lists the room's membership for display.
func (s *RoomService) Members(roomId string) ([]models.Member, error) {
	return s.repo.ListMembers(roomId)
}
