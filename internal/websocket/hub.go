package websocket

import (
	"context"
	"encoding/json"
	"log"
	"sync"
	"time"

	"github.com/gnome-horoscope/match-server/internal/game"
)

// MessageType определяет типы событий, уходящих клиентам
type MessageType string

const (
	// Системные типы
	TypePing MessageType = "ping"
	TypePong MessageType = "pong"

	// События комнаты
	TypeRoomState          MessageType = "room_state"
	TypePlayerCountChanged MessageType = "player_count_changed"
	TypePlayerJoined       MessageType = "player_joined"
	TypeGameStarted        MessageType = "game_started"
	TypeAnswerReceived     MessageType = "answer_received"
	TypePhaseChanged       MessageType = "phase_changed"
	TypeRoundResults       MessageType = "round_results"
	TypeNextQuestion       MessageType = "next_question"
	TypeGameFinished       MessageType = "game_finished"
)

// Message конверт события для клиента
type Message struct {
	Type      MessageType     `json:"type"`
	RoomCode  string          `json:"room_code,omitempty"`
	Data      json.RawMessage `json:"data,omitempty"`
	Timestamp time.Time       `json:"timestamp"`
}

// Hub раздает события движка подключенным клиентам комнат.
// Это зеркало состояния, а не источник истины: клиент без открытого
// канала узнает о переходах только опросом HTTP-ручек.
type Hub struct {
	// клиенты по коду комнаты
	rooms map[string]map[*Client]bool

	register   chan *Client
	unregister chan *Client

	mu sync.RWMutex

	// Контекст для graceful shutdown
	ctx    context.Context
	cancel context.CancelFunc
}

// NewHub создает новый Hub
func NewHub() *Hub {
	ctx, cancel := context.WithCancel(context.Background())
	return &Hub{
		rooms:      make(map[string]map[*Client]bool),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		ctx:        ctx,
		cancel:     cancel,
	}
}

// Run запускает hub
func (h *Hub) Run() {
	ticker := time.NewTicker(30 * time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-h.ctx.Done():
			return

		case client := <-h.register:
			h.registerClient(client)

		case client := <-h.unregister:
			h.unregisterClient(client)

		case <-ticker.C:
			h.ping()
		}
	}
}

// Stop останавливает hub и закрывает все соединения
func (h *Hub) Stop() {
	h.cancel()

	h.mu.Lock()
	defer h.mu.Unlock()

	for _, room := range h.rooms {
		for client := range room {
			close(client.Send)
			client.Conn.Close()
		}
	}
	h.rooms = make(map[string]map[*Client]bool)
}

// Register регистрирует нового клиента
func (h *Hub) Register(client *Client) {
	h.register <- client
}

// Unregister отменяет регистрацию клиента
func (h *Hub) Unregister(client *Client) {
	h.unregister <- client
}

// Notify реализует game.Notifier: событие движка сериализуется и
// уходит всем каналам комнаты. Вызывающего не блокирует.
func (h *Hub) Notify(roomCode string, ev game.Event) {
	data, err := json.Marshal(ev.Payload)
	if err != nil {
		log.Printf("Failed to marshal %s event for room %s: %v", ev.Type, roomCode, err)
		return
	}
	h.sendToRoom(roomCode, Message{
		Type:      MessageType(ev.Type),
		RoomCode:  roomCode,
		Data:      data,
		Timestamp: time.Now(),
	})
}

// ConnectedCount число открытых каналов комнаты
func (h *Hub) ConnectedCount(roomCode string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.rooms[roomCode])
}

func (h *Hub) registerClient(client *Client) {
	h.mu.Lock()
	if _, ok := h.rooms[client.RoomCode]; !ok {
		h.rooms[client.RoomCode] = make(map[*Client]bool)
	}
	h.rooms[client.RoomCode][client] = true
	count := len(h.rooms[client.RoomCode])
	h.mu.Unlock()

	log.Printf("Client %s connected to room %s (%q)", client.ID, client.RoomCode, client.PlayerName)
	h.broadcastCount(client.RoomCode, count)
}

func (h *Hub) unregisterClient(client *Client) {
	h.mu.Lock()
	room, ok := h.rooms[client.RoomCode]
	if !ok {
		h.mu.Unlock()
		return
	}
	if _, ok := room[client]; !ok {
		h.mu.Unlock()
		return
	}
	delete(room, client)
	close(client.Send)
	count := len(room)
	// пустую запись в hub'е не держим; сама комната живет в Store
	if count == 0 {
		delete(h.rooms, client.RoomCode)
	}
	h.mu.Unlock()

	log.Printf("Client %s disconnected from room %s", client.ID, client.RoomCode)
	if count > 0 {
		h.broadcastCount(client.RoomCode, count)
	}
}

func (h *Hub) broadcastCount(roomCode string, count int) {
	data, _ := json.Marshal(map[string]int{"players_count": count})
	h.sendToRoom(roomCode, Message{
		Type:      TypePlayerCountChanged,
		RoomCode:  roomCode,
		Data:      data,
		Timestamp: time.Now(),
	})
}

// sendToRoom рассылает сообщение всем каналам комнаты; канал, не
// принявший сообщение, считается мертвым и выбрасывается, не мешая
// доставке остальным.
func (h *Hub) sendToRoom(roomCode string, msg Message) {
	data, err := json.Marshal(msg)
	if err != nil {
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	room, ok := h.rooms[roomCode]
	if !ok {
		return
	}
	for client := range room {
		select {
		case client.Send <- data:
		default:
			log.Printf("Client %s send buffer full, dropping connection", client.ID)
			delete(room, client)
			close(client.Send)
		}
	}
	if len(room) == 0 {
		delete(h.rooms, roomCode)
	}
}

func (h *Hub) ping() {
	h.mu.RLock()
	defer h.mu.RUnlock()

	msg := Message{Type: TypePing, Timestamp: time.Now()}
	data, err := json.Marshal(msg)
	if err != nil {
		return
	}
	for _, room := range h.rooms {
		for client := range room {
			select {
			case client.Send <- data:
			default:
			}
		}
	}
}
