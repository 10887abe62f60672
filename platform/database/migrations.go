package database

import (
	"github.com/go-pg/pg/v10"
	"github.com/go-pg/pg/v10/orm"

	"github.com/waterwise-app/play-backend/app/models"
)

// CreateSchema creates the tables this service owns if they do not exist yet.
func CreateSchema(db *pg.DB) error {
	tables := []interface{}{
		(*models.User)(nil),
		(*models.Room)(nil),
		(*models.Member)(nil),
		(*models.RoomGame)(nil),
		(*models.DrinkEntry)(nil),
	}
	for _, table := range tables {
		err := db.Model(table).CreateTable(&orm.CreateTableOptions{IfNotExists: true})
		if err != nil {
			return err
		}
	}
	return nil
}
