package main

import (
	"math/rand"
	"os"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	jwtware "github.com/gofiber/jwt/v2"

	"github.com/waterwise-app/play-backend/app/controllers"
	"github.com/waterwise-app/play-backend/pkg/routes"
	"github.com/waterwise-app/play-backend/platform/board"
	"github.com/waterwise-app/play-backend/platform/cache"
	"github.com/waterwise-app/play-backend/platform/database"
	"github.com/waterwise-app/play-backend/platform/engine"
	"github.com/waterwise-app/play-backend/platform/logging"
	"github.com/waterwise-app/play-backend/platform/queries"
	socket "github.com/waterwise-app/play-backend/platform/sockets"
)

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func main() {
	logging.Init()

	db := database.PostgreSQLConnection()
	defer db.Close()
	if err := database.CreateSchema(db); err != nil {
		logging.Log.WithError(err).Fatal("failed creating schema")
	}

	pool := cache.CreateRedisPool()
	defer pool.Close()

	catalogs, err := board.LoadCatalogs(
		getenv("PROPERTIES_PATH", "platform/board/properties.json"),
		getenv("EVENTS_PATH", "platform/board/events.json"),
	)
	if err != nil {
		logging.Log.WithError(err).Fatal("failed loading board catalogs")
	}

	players := queries.NewRedisPlayerStore(pool)
	drinkLog := queries.NewPgDrinkLog(db)
	eng := engine.NewEngine(catalogs, players, drinkLog, players,
		rand.New(rand.NewSource(time.Now().UnixNano())))
	roomService := queries.NewRoomService(queries.NewPgRoomRepo(db), players)

	controllers.Setup(db, roomService, eng, drinkLog)

	app := fiber.New()
	app.Use(cors.New())
	routes.AuthRoutes(app)

	app.Use(jwtware.New(jwtware.Config{
		SigningKey: controllers.JwtSecret(),
	}))

	app.Get("/user/cur", controllers.Cur)
	routes.GameRoutes(app)

	go socket.CreateSocketIOServer(roomService, eng)

	addr := getenv("HTTP_ADDR", ":4101")
	logging.Log.WithField("addr", addr).Info("http server listening")
	if err := app.Listen(addr); err != nil {
		logging.Log.WithError(err).Fatal("server stopped")
	}
}
