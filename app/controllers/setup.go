package controllers

import (
	"os"

	jwt "github.com/form3tech-oss/jwt-go"
	"github.com/go-pg/pg/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/waterwise-app/play-backend/platform/engine"
	"github.com/waterwise-app/play-backend/platform/queries"
)

var (
	db     *pg.DB
	rooms  *queries.RoomService
	eng    *engine.Engine
	drinks *queries.PgDrinkLog
)

func Setup(database *pg.DB, roomService *queries.RoomService, gameEngine *engine.Engine, drinkLog *queries.PgDrinkLog) {
	db = database
	rooms = roomService
	eng = gameEngine
	drinks = drinkLog
}

func JwtSecret() []byte {
	if s := os.Getenv("JWT_SECRET"); s != "" {
		return []byte(s)
	}
	return []byte("secret")
}

func userId(c *fiber.Ctx) string {
	token, ok := c.Locals("user").(*jwt.Token)
	if !ok {
		return ""
	}
	claims := token.Claims.(jwt.MapClaims)
	id, _ := claims["user_id"].(string)
	return id
}
