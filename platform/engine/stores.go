package engine

import "github.com/waterwise-app/play-backend/app/models"

// PlayerStore persists one player's game state, partitioned by room.
type PlayerStore interface {
	Load(roomId, userId string) (state models.PlayerState, found bool, err error)
	Save(roomId, userId string, state models.PlayerState) error
}

// DrinkLog is the window-sum view of the hydration log. The engine never
// reads individual entries.
type DrinkLog interface {
	SumVolume(userId string, fromMs, toMs int64) (float64, error)
}

// GrantMarker is the durable per (room, user) last-granted-date marker for
// the daily dice grant. Dates are local-time "2006-01-02" strings.
type GrantMarker interface {
	LastGrantDate(roomId, userId string) (string, error)
	SetGrantDate(roomId, userId, date string) error
}
