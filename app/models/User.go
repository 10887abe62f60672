package models

type User struct {
	Id           string
	Email        string
	Password     string // bcrypt hash
	ActiveRoomId string // current-room pointer, "" when not in a room
	RoomId       string // legacy duplicate of ActiveRoomId, kept in sync
}

type UserDto struct {
	Email string `json:"email"`
	Pass  string `json:"pass"`
}
