package websocket

import (
	"encoding/json"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

const (
	// Время ожидания записи
	writeWait = 10 * time.Second

	// Время ожидания pong от клиента
	pongWait = 60 * time.Second

	// Интервал отправки ping
	pingPeriod = (pongWait * 9) / 10

	// Максимальный размер входящего сообщения: канал уведомлений
	// односторонний, клиенту нечего присылать крупнее pong'а
	maxMessageSize = 1024
)

// Client одно логическое push-соединение игрока с комнатой
type Client struct {
	ID         uuid.UUID
	RoomCode   string
	PlayerName string
	Conn       *websocket.Conn
	Send       chan []byte
	Hub        *Hub
}

func NewClient(hub *Hub, conn *websocket.Conn, roomCode, playerName string) *Client {
	return &Client{
		ID:         uuid.New(),
		RoomCode:   roomCode,
		PlayerName: playerName,
		Conn:       conn,
		Send:       make(chan []byte, 256),
		Hub:        hub,
	}
}

// ReadPump читает входящий поток только ради pong'ов и обнаружения
// разрыва: состояние игры меняется исключительно через HTTP-ручки,
// входящие команды по каналу уведомлений игнорируются.
func (c *Client) ReadPump() {
	defer func() {
		c.Hub.Unregister(c)
		c.Conn.Close()
	}()

	c.Conn.SetReadLimit(maxMessageSize)
	c.Conn.SetReadDeadline(time.Now().Add(pongWait))
	c.Conn.SetPongHandler(func(string) error {
		c.Conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		var msg Message
		err := c.Conn.ReadJSON(&msg)
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Printf("WebSocket error: %v", err)
			}
			break
		}

		switch msg.Type {
		case TypePong:
			continue
		default:
			// канал только для уведомлений
		}
	}
}

// WritePump отправляет сообщения клиенту
func (c *Client) WritePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.Conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.Send:
			c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				// Hub закрыл канал
				c.Conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			c.Conn.WriteMessage(websocket.TextMessage, message)

		case <-ticker.C:
			c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.Conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// SendMessage кладет событие в буфер клиента, не блокируясь
func (c *Client) SendMessage(msgType MessageType, data any) error {
	msg := Message{
		Type:      msgType,
		RoomCode:  c.RoomCode,
		Timestamp: time.Now(),
	}

	if data != nil {
		jsonData, err := json.Marshal(data)
		if err != nil {
			return err
		}
		msg.Data = jsonData
	}

	msgData, err := json.Marshal(msg)
	if err != nil {
		return err
	}

	select {
	case c.Send <- msgData:
		return nil
	default:
		return ErrClientQueueFull
	}
}
