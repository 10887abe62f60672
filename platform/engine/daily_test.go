package engine

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeDrinkLog struct {
	volume float64
	fromMs int64
	toMs   int64
	calls  int
}

func (f *fakeDrinkLog) SumVolume(userId string, fromMs, toMs int64) (float64, error) {
	f.calls++
	f.fromMs = fromMs
	f.toMs = toMs
	return f.volume, nil
}

type fakeMarker struct {
	dates map[string]string
}

func newFakeMarker() *fakeMarker { return &fakeMarker{dates: map[string]string{}} }

func (f *fakeMarker) LastGrantDate(roomId, userId string) (string, error) {
	return f.dates[roomId+"."+userId], nil
}

func (f *fakeMarker) SetGrantDate(roomId, userId, date string) error {
	f.dates[roomId+"."+userId] = date
	return nil
}

func dailyEngine(volume float64) (*Engine, *fakeDrinkLog, *fakeMarker) {
	drinks := &fakeDrinkLog{volume: volume}
	marker := newFakeMarker()
	eng := NewEngine(testCatalogs(), newFakeStore(), drinks, marker, &scriptRand{})
	return eng, drinks, marker
}

func TestDailyDiceFirstCall(t *testing.T) {
	eng, drinks, marker := dailyEngine(1999)
	now := time.Date(2026, 9, 1, 10, 30, 0, 0, time.Local)

	res, err := eng.ComputeDailyDice("r", "u", now)
	require.NoError(t, err)
	assert.True(t, res.IsFirstTimeToday)
	assert.Equal(t, 7, res.DiceToAdd, "1999 ml / 250 floors to 7")
	assert.Equal(t, 1999.0, res.YesterdayVolumeMl)
	assert.Equal(t, "2026-09-01", marker.dates["r.u"])

	// Window is [yesterday 00:00, today 00:00) local.
	wantFrom := time.Date(2026, 8, 31, 0, 0, 0, 0, time.Local).UnixMilli()
	wantTo := time.Date(2026, 9, 1, 0, 0, 0, 0, time.Local).UnixMilli()
	assert.Equal(t, wantFrom, drinks.fromMs)
	assert.Equal(t, wantTo, drinks.toMs)
}

func TestDailyDiceIdempotentPerDay(t *testing.T) {
	eng, drinks, _ := dailyEngine(1000)
	now := time.Date(2026, 9, 1, 8, 0, 0, 0, time.Local)

	first, err := eng.ComputeDailyDice("r", "u", now)
	require.NoError(t, err)
	assert.True(t, first.IsFirstTimeToday)
	assert.Equal(t, 4, first.DiceToAdd)

	second, err := eng.ComputeDailyDice("r", "u", now.Add(5*time.Hour))
	require.NoError(t, err)
	assert.False(t, second.IsFirstTimeToday)
	assert.Equal(t, 0, second.DiceToAdd)
	assert.Equal(t, 1, drinks.calls, "volume must not be re-queried")
}

func TestDailyDiceStampsMarkerOnZeroGrant(t *testing.T) {
	eng, _, marker := dailyEngine(120)
	now := time.Date(2026, 9, 1, 8, 0, 0, 0, time.Local)

	res, err := eng.ComputeDailyDice("r", "u", now)
	require.NoError(t, err)
	assert.True(t, res.IsFirstTimeToday)
	assert.Equal(t, 0, res.DiceToAdd)
	assert.Equal(t, "2026-09-01", marker.dates["r.u"], "marker stamped even when nothing is granted")
}

func TestDailyDiceGrantsAgainNextDay(t *testing.T) {
	eng, _, _ := dailyEngine(500)

	day1 := time.Date(2026, 9, 1, 8, 0, 0, 0, time.Local)
	res, err := eng.ComputeDailyDice("r", "u", day1)
	require.NoError(t, err)
	assert.True(t, res.IsFirstTimeToday)

	day2 := day1.AddDate(0, 0, 1)
	res, err = eng.ComputeDailyDice("r", "u", day2)
	require.NoError(t, err)
	assert.True(t, res.IsFirstTimeToday)
	assert.Equal(t, 2, res.DiceToAdd)
}

func TestDailyDiceIsScopedPerRoom(t *testing.T) {
	eng, _, _ := dailyEngine(750)
	now := time.Date(2026, 9, 1, 8, 0, 0, 0, time.Local)

	res, err := eng.ComputeDailyDice("roomA", "u", now)
	require.NoError(t, err)
	assert.True(t, res.IsFirstTimeToday)

	res, err = eng.ComputeDailyDice("roomB", "u", now)
	require.NoError(t, err)
	assert.True(t, res.IsFirstTimeToday, "marker is keyed by (room, user)")
}
