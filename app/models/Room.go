package models

const (
	RoomStatusIdle    = "IDLE"
	RoomStatusPlaying = "PLAYING"
)

type Room struct {
	Id          string
	Password    string // shared cleartext secret, compared as-is
	Status      string // IDLE | PLAYING, one-way transition
	MemberCount int    `pg:",use_zero"`
	CreatedAt   int64  // epoch millis
}

type Member struct {
	Room_id  string `pg:",pk"`
	User_id  string `pg:",pk"`
	JoinedAt int64
}

// RoomGame is the shared per-room record written when the host starts the game.
type RoomGame struct {
	Room_id   string `pg:",pk"`
	StartedAt int64
	TurnIndex int `pg:",use_zero"`
}

type RoomCreateDto struct {
	Password string `json:"password"`
}

type RoomJoinDto struct {
	RoomId   string `json:"room_id"`
	Password string `json:"password"`
}
