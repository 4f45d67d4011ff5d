package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"github.com/gnome-horoscope/match-server/internal/game"
	ws "github.com/gnome-horoscope/match-server/internal/websocket"
)

// WebSocketHandler управляет push-каналами комнат
type WebSocketHandler struct {
	hub      *ws.Hub
	engine   *game.Engine
	upgrader websocket.Upgrader
}

// NewWebSocketHandler создает новый WebSocket handler
func NewWebSocketHandler(hub *ws.Hub, engine *game.Engine) *WebSocketHandler {
	return &WebSocketHandler{
		hub:    hub,
		engine: engine,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				// Mini App открывается из Telegram, origin не предсказуем
				return true
			},
		},
	}
}

// HandleWebSocket подключает игрока к каналу уведомлений его комнаты.
// Канал поднимается только для существующей комнаты и состоящего
// в ней игрока; сам по себе он ничего в игре не меняет.
func (h *WebSocketHandler) HandleWebSocket(c *gin.Context) {
	code := c.Param("code")
	player := c.Query("player")

	view, err := h.engine.Status(code)
	if err != nil {
		respondGameError(c, err)
		return
	}
	known := false
	for _, p := range view.Players {
		if p == player {
			known = true
			break
		}
	}
	if !known {
		respondGameError(c, game.ErrUnknownPlayer)
		return
	}

	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		return
	}

	client := ws.NewClient(h.hub, conn, code, player)

	h.hub.Register(client)

	go client.WritePump()
	go client.ReadPump()

	// свежеподключенному сразу отдаем снимок комнаты, чтобы клиент
	// не ждал следующего события для синхронизации
	_ = client.SendMessage(ws.TypeRoomState, map[string]any{
		"room_code":   view.Code,
		"players":     view.Players,
		"status":      string(view.Status),
		"round_index": view.RoundIndex,
	})
}
