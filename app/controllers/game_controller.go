package controllers

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/waterwise-app/play-backend/app/models"
	"github.com/waterwise-app/play-backend/platform/engine"
	"github.com/waterwise-app/play-backend/platform/logging"
)

type rollDto struct {
	RoomId      string `json:"room_id"`
	Decision    string `json:"decision"`     // buy | skip | cancel
	EventChoice int    `json:"event_choice"` // 1 or 2, defaults to 2
}

func parseDecision(s string) engine.PurchaseDecision {
	switch s {
	case "buy":
		return engine.Buy
	case "cancel":
		return engine.Cancel
	default:
		return engine.Skip
	}
}

func GameState(c *fiber.Ctx) error {
	roomId := c.Query("room_id")
	if roomId == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "room_id is required"})
	}
	state, err := eng.LoadOrInit(roomId, userId(c))
	if err != nil {
		logging.Log.WithError(err).Error("failed loading game state")
		return c.SendStatus(fiber.StatusInternalServerError)
	}
	return c.JSON(state)
}

// NewGame resets the player's epoch: fresh board, starting coins and dice.
// Also the required follow-up after a game-over result.
func NewGame(c *fiber.Ctx) error {
	roomId := c.Query("room_id")
	if roomId == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "room_id is required"})
	}
	state, err := eng.InitializeEpoch(roomId, userId(c))
	if err != nil {
		logging.Log.WithError(err).Error("failed resetting game")
		return c.SendStatus(fiber.StatusInternalServerError)
	}
	return c.JSON(state)
}

func RollDice(c *fiber.Ctx) error {
	dto := new(rollDto)
	if err := c.BodyParser(dto); err != nil {
		return c.SendStatus(fiber.StatusBadRequest)
	}
	if dto.RoomId == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "room_id is required"})
	}

	dice := eng.RollDie()
	result, err := eng.ResolveTurn(dto.RoomId, userId(c), dice, parseDecision(dto.Decision), dto.EventChoice)
	if err == engine.ErrNoDiceLeft {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "no dice left, log some water first"})
	}
	if err != nil {
		logging.Log.WithError(err).Error("failed resolving turn")
		return c.SendStatus(fiber.StatusInternalServerError)
	}
	return c.JSON(result)
}

// DailyDice runs the once-per-day grant and applies it to the player's pool.
func DailyDice(c *fiber.Ctx) error {
	roomId := c.Query("room_id")
	if roomId == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "room_id is required"})
	}
	uid := userId(c)

	result, err := eng.ComputeDailyDice(roomId, uid, time.Now())
	if err != nil {
		logging.Log.WithError(err).Error("failed computing daily dice")
		return c.SendStatus(fiber.StatusInternalServerError)
	}
	if result.IsFirstTimeToday && result.DiceToAdd > 0 {
		if _, err := eng.GrantDice(roomId, uid, result.DiceToAdd); err != nil {
			logging.Log.WithError(err).Error("failed granting daily dice")
			return c.SendStatus(fiber.StatusInternalServerError)
		}
	}
	return c.JSON(result)
}

func LogDrink(c *fiber.Ctx) error {
	dto := new(models.DrinkLogDto)
	if err := c.BodyParser(dto); err != nil {
		return c.SendStatus(fiber.StatusBadRequest)
	}
	if dto.VolumeMl <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "volume_ml must be positive"})
	}
	if dto.TimeMs == 0 {
		dto.TimeMs = time.Now().UnixMilli()
	}

	entry, err := drinks.AddEntry(userId(c), dto.VolumeMl, dto.TimeMs)
	if err != nil {
		logging.Log.WithError(err).Error("failed logging drink")
		return c.SendStatus(fiber.StatusInternalServerError)
	}
	return c.Status(fiber.StatusCreated).JSON(entry)
}
