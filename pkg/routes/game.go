package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/waterwise-app/play-backend/app/controllers"
)

// GameRoutes are registered after the jwt middleware; every handler can rely
// on an authenticated user id in the token claims.
func GameRoutes(a *fiber.App) {
	room := a.Group("/room")
	room.Post("/create", controllers.CreateRoom)
	room.Post("/join", controllers.JoinRoom)
	room.Post("/leave", controllers.LeaveRoom)
	room.Post("/start", controllers.StartGame)
	room.Get("/current", controllers.CurrentRoom)
	room.Get("/info", controllers.RoomInfo)

	game := a.Group("/game")
	game.Get("/state", controllers.GameState)
	game.Post("/new", controllers.NewGame)
	game.Post("/roll", controllers.RollDice)
	game.Post("/daily-dice", controllers.DailyDice)

	drink := a.Group("/drink")
	drink.Post("/log", controllers.LogDrink)
}
