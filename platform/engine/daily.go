package engine

import (
	"time"

	"github.com/waterwise-app/play-backend/app/models"
)

// MlPerDie is how much logged water earns one die.
const MlPerDie = 250

const dateLayout = "2006-01-02"

// ComputeDailyDice computes the day's dice grant from yesterday's logged
// volume. Idempotent per (room, user, local calendar day) via the durable
// marker, which is stamped even when the grant is zero. It never mutates
// PlayerState; the caller applies the grant through GrantDice.
func (e *Engine) ComputeDailyDice(roomId, userId string, now time.Time) (models.DailyDiceResult, error) {
	today := now.Format(dateLayout)

	last, err := e.marker.LastGrantDate(roomId, userId)
	if err != nil {
		return models.DailyDiceResult{}, err
	}
	if last == today {
		return models.DailyDiceResult{IsFirstTimeToday: false}, nil
	}

	startOfToday := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	startOfYesterday := startOfToday.AddDate(0, 0, -1)

	volume, err := e.drinks.SumVolume(userId, startOfYesterday.UnixMilli(), startOfToday.UnixMilli())
	if err != nil {
		return models.DailyDiceResult{}, err
	}

	if err := e.marker.SetGrantDate(roomId, userId, today); err != nil {
		return models.DailyDiceResult{}, err
	}

	return models.DailyDiceResult{
		IsFirstTimeToday:  true,
		DiceToAdd:         int(volume) / MlPerDie,
		YesterdayVolumeMl: volume,
	}, nil
}
