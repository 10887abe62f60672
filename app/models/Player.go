package models

// PlayerState is one player's persisted economy within a room. Assignments and
// Events are regenerated wholesale at every epoch reset; Properties survives
// reassignment (ownership of a property not currently on the board is inert).
type PlayerState struct {
	Coins       int
	Position    int
	DiceLeft    int
	Properties  []string       // owned property ids, acquisition order
	Assignments map[string]int // property id -> board position, current epoch
	Events      []int          // template index per board position, current epoch
}

func (s PlayerState) Owns(propertyId string) bool {
	for _, id := range s.Properties {
		if id == propertyId {
			return true
		}
	}
	return false
}

type TurnResult struct {
	DiceValue   int    `json:"dice_value"`
	NewPosition int    `json:"new_position"`
	Description string `json:"description"`
	CoinDelta   int    `json:"coin_delta"`
	IsGameOver  bool   `json:"is_game_over"`
}

type DailyDiceResult struct {
	IsFirstTimeToday  bool    `json:"is_first_time_today"`
	DiceToAdd         int     `json:"dice_to_add"`
	YesterdayVolumeMl float64 `json:"yesterday_volume_ml"`
}
