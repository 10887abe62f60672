package queries

import (
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/gomodule/redigo/redis"

	"github.com/waterwise-app/play-backend/app/models"
	"github.com/waterwise-app/play-backend/platform/cache"
)

// RedisPlayerStore keeps per-player game state in redis hashes, keyed
// "room.user" with a "room.players" set tracking which keys exist so room
// teardown can sweep them. It also holds the daily dice-grant marker under
// "dice.room.user".
type RedisPlayerStore struct {
	pool *redis.Pool
}

func NewRedisPlayerStore(pool *redis.Pool) *RedisPlayerStore {
	return &RedisPlayerStore{pool: pool}
}

func stateKey(roomId, userId string) string {
	return fmt.Sprintf("%s.%s", roomId, userId)
}

func playersKey(roomId string) string {
	return fmt.Sprintf("%s.players", roomId)
}

func markerKey(roomId, userId string) string {
	return fmt.Sprintf("dice.%s.%s", roomId, userId)
}

func (s *RedisPlayerStore) Load(roomId, userId string) (models.PlayerState, bool, error) {
	conn := s.pool.Get()
	defer conn.Close()

	fields, err := cache.HGETALL(stateKey(roomId, userId), conn)
	if err != nil {
		return models.PlayerState{}, false, err
	}
	if len(fields) == 0 {
		return models.PlayerState{}, false, nil
	}

	var state models.PlayerState
	state.Coins, _ = strconv.Atoi(fields["coins"])
	state.Position, _ = strconv.Atoi(fields["pos"])
	state.DiceLeft, _ = strconv.Atoi(fields["dice"])
	if raw := fields["props"]; raw != "" {
		if err := json.Unmarshal([]byte(raw), &state.Properties); err != nil {
			return models.PlayerState{}, false, err
		}
	}
	if raw := fields["assigns"]; raw != "" {
		if err := json.Unmarshal([]byte(raw), &state.Assignments); err != nil {
			return models.PlayerState{}, false, err
		}
	}
	if raw := fields["events"]; raw != "" {
		if err := json.Unmarshal([]byte(raw), &state.Events); err != nil {
			return models.PlayerState{}, false, err
		}
	}
	return state, true, nil
}

func (s *RedisPlayerStore) Save(roomId, userId string, state models.PlayerState) error {
	conn := s.pool.Get()
	defer conn.Close()

	props, err := json.Marshal(state.Properties)
	if err != nil {
		return err
	}
	assigns, err := json.Marshal(state.Assignments)
	if err != nil {
		return err
	}
	events, err := json.Marshal(state.Events)
	if err != nil {
		return err
	}

	key := stateKey(roomId, userId)
	for field, value := range map[string]interface{}{
		"coins":   state.Coins,
		"pos":     state.Position,
		"dice":    state.DiceLeft,
		"props":   string(props),
		"assigns": string(assigns),
		"events":  string(events),
	} {
		if err := cache.HSET(key, field, value, conn); err != nil {
			return err
		}
	}
	return cache.SADD(playersKey(roomId), userId, conn)
}

func (s *RedisPlayerStore) LastGrantDate(roomId, userId string) (string, error) {
	conn := s.pool.Get()
	defer conn.Close()

	date, err := cache.Get(markerKey(roomId, userId), conn)
	if err == redis.ErrNil {
		return "", nil
	}
	return date, err
}

func (s *RedisPlayerStore) SetGrantDate(roomId, userId, date string) error {
	conn := s.pool.Get()
	defer conn.Close()
	return cache.Set(markerKey(roomId, userId), date, conn)
}

// DeleteRoomStates sweeps every member's state, props and marker keys for a
// torn-down room.
func (s *RedisPlayerStore) DeleteRoomStates(roomId string) error {
	conn := s.pool.Get()
	defer conn.Close()

	users, err := cache.SMEMBERS(playersKey(roomId), conn)
	if err != nil {
		return err
	}
	keys := []string{playersKey(roomId)}
	for _, userId := range users {
		keys = append(keys, stateKey(roomId, userId), markerKey(roomId, userId))
	}
	return cache.Del(keys, conn)
}
