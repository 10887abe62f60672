package controllers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/waterwise-app/play-backend/app/models"
	"github.com/waterwise-app/play-backend/platform/logging"
	"github.com/waterwise-app/play-backend/platform/queries"
)

// roomError maps coordinator failures to short user-facing messages while
// keeping the internal error kinds distinct.
func roomError(c *fiber.Ctx, err error) error {
	switch err {
	case queries.ErrAlreadyInRoom, queries.ErrInvalidRoomId, queries.ErrWrongPassword, queries.ErrRoomFull:
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	case queries.ErrRoomNotFound, queries.ErrUserNotFound:
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": err.Error()})
	default:
		logging.Log.WithError(err).Error("room operation failed")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "something went wrong"})
	}
}

func CreateRoom(c *fiber.Ctx) error {
	dto := new(models.RoomCreateDto)
	if err := c.BodyParser(dto); err != nil {
		return c.SendStatus(fiber.StatusBadRequest)
	}

	code, err := rooms.CreateRoom(userId(c), dto.Password)
	if err != nil {
		return roomError(c, err)
	}
	return c.JSON(fiber.Map{"room_id": code})
}

func JoinRoom(c *fiber.Ctx) error {
	dto := new(models.RoomJoinDto)
	if err := c.BodyParser(dto); err != nil {
		return c.SendStatus(fiber.StatusBadRequest)
	}

	if err := rooms.JoinRoom(userId(c), dto.RoomId, dto.Password); err != nil {
		return roomError(c, err)
	}
	return c.JSON(fiber.Map{"room_id": dto.RoomId})
}

func LeaveRoom(c *fiber.Ctx) error {
	uid := userId(c)
	roomId := c.Query("room_id")
	if roomId == "" {
		// No explicit room: leave whatever the pointer says.
		if err := rooms.LeaveActiveRoomIfAny(uid); err != nil {
			return roomError(c, err)
		}
		return c.SendStatus(fiber.StatusOK)
	}
	if err := rooms.LeaveRoom(uid, roomId); err != nil {
		return roomError(c, err)
	}
	return c.SendStatus(fiber.StatusOK)
}

func StartGame(c *fiber.Ctx) error {
	roomId := c.Query("room_id")
	if err := rooms.StartGame(roomId); err != nil {
		return roomError(c, err)
	}
	return c.SendStatus(fiber.StatusOK)
}

func CurrentRoom(c *fiber.Ctx) error {
	roomId, err := rooms.FetchCurrentRoomId(userId(c))
	if err != nil {
		return roomError(c, err)
	}
	if roomId == "" {
		return c.JSON(fiber.Map{"room_id": nil})
	}
	return c.JSON(fiber.Map{"room_id": roomId})
}

func RoomInfo(c *fiber.Ctx) error {
	roomId := c.Query("room_id")
	room, err := rooms.Room(roomId)
	if err != nil {
		return roomError(c, err)
	}
	members, err := rooms.Members(roomId)
	if err != nil {
		return roomError(c, err)
	}
	return c.JSON(fiber.Map{
		"room_id":      room.Id,
		"status":       room.Status,
		"member_count": room.MemberCount,
		"created_at":   room.CreatedAt,
		"members":      members,
	})
}
