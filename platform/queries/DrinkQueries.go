package queries

import (
	"github.com/go-pg/pg/v10"
	uuid "github.com/satori/go.uuid"

	"github.com/waterwise-app/play-backend/app/models"
)

// PgDrinkLog is the hydration log view the engine consumes, plus the write
// path the logging endpoint uses.
type PgDrinkLog struct {
	db *pg.DB
}

func NewPgDrinkLog(db *pg.DB) *PgDrinkLog {
	return &PgDrinkLog{db: db}
}

// SumVolume returns the total volume logged in [fromMs, toMs).
func (l *PgDrinkLog) SumVolume(userId string, fromMs, toMs int64) (float64, error) {
	var total float64
	_, err := l.db.QueryOne(pg.Scan(&total),
		"SELECT coalesce(sum(volume_ml), 0) FROM drink_entries WHERE user_id = ? AND time_ms >= ? AND time_ms < ?",
		userId, fromMs, toMs)
	return total, err
}

func (l *PgDrinkLog) AddEntry(userId string, volumeMl float64, timeMs int64) (models.DrinkEntry, error) {
	entry := models.DrinkEntry{
		Id:       uuid.NewV4().String(),
		User_id:  userId,
		TimeMs:   timeMs,
		VolumeMl: volumeMl,
	}
	_, err := l.db.Model(&entry).Insert()
	return entry, err
}
