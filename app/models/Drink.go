package models

// DrinkEntry is one logged water intake. The mini-game only ever reads
// sum(volume_ml) over a time window; the hydration UI owns everything else.
type DrinkEntry struct {
	Id       string
	User_id  string
	TimeMs   int64 // epoch millis
	VolumeMl float64
}

type DrinkLogDto struct {
	VolumeMl float64 `json:"volume_ml"`
	TimeMs   int64   `json:"time_ms"` // optional, defaults to now
}
