package socket

import (
	"encoding/json"
	"net/http"
	"os"

	socketio "github.com/googollee/go-socket.io"
	"github.com/rs/cors"

	"github.com/waterwise-app/play-backend/platform/engine"
	"github.com/waterwise-app/play-backend/platform/logging"
	"github.com/waterwise-app/play-backend/platform/queries"
)

// CreateSocketIOServer runs the realtime side of rooms: membership
// notifications, game start and turn-result broadcasts. All mutations go
// through the same coordinator and engine as the HTTP API.
func CreateSocketIOServer(rooms *queries.RoomService, eng *engine.Engine) {
	server, err := socketio.NewServer(nil)
	if err != nil {
		panic(err)
	}

	server.OnConnect("/", func(s socketio.Conn) error {
		s.SetContext("")
		return nil
	})

	server.OnEvent("/", "join-room", func(s socketio.Conn, jsonStr string) {
		var msg map[string]string
		json.Unmarshal([]byte(jsonStr), &msg)

		roomId, userId := msg["room_id"], msg["user_id"]
		if err := rooms.JoinRoom(userId, roomId, msg["password"]); err != nil {
			s.Emit("error-message", err.Error())
			return
		}
		s.Join(roomId)
		server.BroadcastToRoom("/", roomId, "member-joined", userId)
	})

	server.OnEvent("/", "leave-room", func(s socketio.Conn, jsonStr string) {
		var msg map[string]string
		json.Unmarshal([]byte(jsonStr), &msg)

		roomId, userId := msg["room_id"], msg["user_id"]
		s.Leave(roomId)
		if err := rooms.LeaveRoom(userId, roomId); err != nil {
			s.Emit("error-message", err.Error())
			return
		}
		server.BroadcastToRoom("/", roomId, "member-left", userId)
	})

	server.OnEvent("/", "start-game", func(s socketio.Conn, jsonStr string) {
		var msg map[string]string
		json.Unmarshal([]byte(jsonStr), &msg)

		roomId := msg["room_id"]
		if err := rooms.StartGame(roomId); err != nil {
			s.Emit("error-message", err.Error())
			return
		}
		server.BroadcastToRoom("/", roomId, "game-start")
	})

	server.OnEvent("/", "roll-dice", func(s socketio.Conn, jsonStr string) {
		var msg map[string]string
		json.Unmarshal([]byte(jsonStr), &msg)

		roomId, userId := msg["room_id"], msg["user_id"]
		choice := 2
		if msg["event_choice"] == "1" {
			choice = 1
		}
		decision := engine.Skip
		switch msg["decision"] {
		case "buy":
			decision = engine.Buy
		case "cancel":
			decision = engine.Cancel
		}

		dice := eng.RollDie()
		result, err := eng.ResolveTurn(roomId, userId, dice, decision, choice)
		if err == engine.ErrNoDiceLeft {
			s.Emit("error-message", "No dice left, log some water first")
			return
		}
		if err != nil {
			logging.Log.WithError(err).Error("socket turn failed")
			s.Emit("error-message", "Something went wrong")
			return
		}
		payload, _ := json.Marshal(result)
		server.BroadcastToRoom("/", roomId, "turn-result", string(payload))
	})

	server.OnError("/", func(s socketio.Conn, e error) {
		logging.Log.WithError(e).Warn("socket error")
	})

	server.OnDisconnect("/", func(s socketio.Conn, reason string) {
		for _, room := range s.Rooms() {
			server.BroadcastToRoom("/", room, "member-left")
		}
		s.LeaveAll()
	})

	go server.Serve()
	defer server.Close()

	c := cors.New(cors.Options{
		AllowedOrigins:   []string{os.Getenv("SOCKET_ORIGIN")},
		AllowCredentials: true,
	})

	mux := http.NewServeMux()
	mux.Handle("/socket.io/", server)

	addr := os.Getenv("SOCKET_ADDR")
	if addr == "" {
		addr = ":8000"
	}
	logging.Log.WithField("addr", addr).Info("socket server listening")
	http.ListenAndServe(addr, c.Handler(mux))
}
