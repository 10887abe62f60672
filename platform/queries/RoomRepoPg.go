package queries

import (
	"context"

	"github.com/go-pg/pg/v10"

	"github.com/waterwise-app/play-backend/app/models"
)

// PgRoomRepo implements RoomRepo on postgres. Each method wraps its reads and
// writes in a single RunInTransaction block; the coordinator composes these
// without any wider transaction.
type PgRoomRepo struct {
	db *pg.DB
}

func NewPgRoomRepo(db *pg.DB) *PgRoomRepo {
	return &PgRoomRepo{db: db}
}

func (r *PgRoomRepo) GetRoom(roomId string) (models.Room, error) {
	room := models.Room{Id: roomId}
	err := r.db.Model(&room).WherePK().Select()
	if err == pg.ErrNoRows {
		return models.Room{}, ErrRoomNotFound
	}
	return room, err
}

func (r *PgRoomRepo) CurrentRoomId(userId string) (string, error) {
	user := models.User{Id: userId}
	err := r.db.Model(&user).WherePK().Select()
	if err == pg.ErrNoRows {
		return "", ErrUserNotFound
	}
	if err != nil {
		return "", err
	}
	return user.ActiveRoomId, nil
}

func (r *PgRoomRepo) MemberCount(roomId string) (int, error) {
	return r.db.Model((*models.Member)(nil)).Where("room_id = ?", roomId).Count()
}

func (r *PgRoomRepo) ListMembers(roomId string) ([]models.Member, error) {
	var members []models.Member
	err := r.db.Model(&members).Where("room_id = ?", roomId).Order("joined_at ASC").Select()
	return members, err
}

func (r *PgRoomRepo) CreateRoom(room models.Room, hostId string, nowMs int64) error {
	return r.db.RunInTransaction(context.Background(), func(tx *pg.Tx) error {
		existing := models.Room{Id: room.Id}
		err := tx.Model(&existing).WherePK().Select()
		if err == nil {
			return ErrRoomExists
		}
		if err != pg.ErrNoRows {
			return err
		}
		if _, err := tx.Model(&room).Insert(); err != nil {
			return err
		}
		member := models.Member{Room_id: room.Id, User_id: hostId, JoinedAt: nowMs}
		if _, err := tx.Model(&member).Insert(); err != nil {
			return err
		}
		return setPointer(tx, hostId, room.Id)
	})
}

func (r *PgRoomRepo) JoinRoom(roomId, userId, password string, nowMs int64) error {
	return r.db.RunInTransaction(context.Background(), func(tx *pg.Tx) error {
		room := models.Room{Id: roomId}
		err := tx.Model(&room).WherePK().Select()
		if err == pg.ErrNoRows {
			return ErrRoomNotFound
		}
		if err != nil {
			return err
		}
		if room.Password != password {
			return ErrWrongPassword
		}

		n, err := tx.Model((*models.Member)(nil)).
			Where("room_id = ? AND user_id = ?", roomId, userId).Count()
		if err != nil {
			return err
		}
		if n == 0 {
			member := models.Member{Room_id: roomId, User_id: userId, JoinedAt: nowMs}
			if _, err := tx.Model(&member).Insert(); err != nil {
				return err
			}
			_, err = tx.Model((*models.Room)(nil)).
				Where("id = ?", roomId).
				Set("member_count = member_count + 1").
				Update()
			if err != nil {
				return err
			}
		}
		return setPointer(tx, userId, roomId)
	})
}

func (r *PgRoomRepo) TouchPointer(userId, roomId string) error {
	return r.db.RunInTransaction(context.Background(), func(tx *pg.Tx) error {
		return setPointer(tx, userId, roomId)
	})
}

func (r *PgRoomRepo) LeaveRoom(roomId, userId string) error {
	return r.db.RunInTransaction(context.Background(), func(tx *pg.Tx) error {
		room := models.Room{Id: roomId}
		err := tx.Model(&room).WherePK().Select()
		if err == pg.ErrNoRows {
			// Room already gone, repair the stale pointer only.
			return clearPointer(tx, userId, roomId)
		}
		if err != nil {
			return err
		}

		res, err := tx.Model((*models.Member)(nil)).
			Where("room_id = ? AND user_id = ?", roomId, userId).Delete()
		if err != nil {
			return err
		}
		if res.RowsAffected() > 0 {
			_, err = tx.Model((*models.Room)(nil)).
				Where("id = ?", roomId).
				Set("member_count = greatest(member_count - 1, 0)").
				Update()
			if err != nil {
				return err
			}
		}
		return clearPointer(tx, userId, roomId)
	})
}

func (r *PgRoomRepo) StartGame(roomId string, nowMs int64) error {
	return r.db.RunInTransaction(context.Background(), func(tx *pg.Tx) error {
		room := models.Room{Id: roomId}
		err := tx.Model(&room).WherePK().Select()
		if err == pg.ErrNoRows {
			return ErrRoomNotFound
		}
		if err != nil {
			return err
		}

		_, err = tx.Model((*models.Room)(nil)).
			Where("id = ?", roomId).
			Set("status = ?", models.RoomStatusPlaying).
			Update()
		if err != nil {
			return err
		}

		game := models.RoomGame{Room_id: roomId, StartedAt: nowMs, TurnIndex: 0}
		_, err = tx.Model(&game).
			OnConflict("(room_id) DO UPDATE").
			Set("started_at = EXCLUDED.started_at, turn_index = EXCLUDED.turn_index").
			Insert()
		if err != nil {
			return err
		}

		var members []models.Member
		if err := tx.Model(&members).Where("room_id = ?", roomId).Select(); err != nil {
			return err
		}
		for _, m := range members {
			if err := setPointer(tx, m.User_id, roomId); err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *PgRoomRepo) DeleteRoomCascade(roomId string) error {
	return r.db.RunInTransaction(context.Background(), func(tx *pg.Tx) error {
		if _, err := tx.Model((*models.Member)(nil)).Where("room_id = ?", roomId).Delete(); err != nil {
			return err
		}
		if _, err := tx.Model((*models.RoomGame)(nil)).Where("room_id = ?", roomId).Delete(); err != nil {
			return err
		}
		_, err := tx.Model((*models.Room)(nil)).Where("id = ?", roomId).Delete()
		return err
	})
}

// Both pointer columns are written together; the app historically read either.
func setPointer(tx *pg.Tx, userId, roomId string) error {
	_, err := tx.Model((*models.User)(nil)).
		Where("id = ?", userId).
		Set("active_room_id = ?, room_id = ?", roomId, roomId).
		Update()
	return err
}

func clearPointer(tx *pg.Tx, userId, roomId string) error {
	_, err := tx.Model((*models.User)(nil)).
		Where("id = ? AND (active_room_id = ? OR room_id = ?)", userId, roomId, roomId).
		Set("active_room_id = ?, room_id = ?", "", "").
		Update()
	return err
}
