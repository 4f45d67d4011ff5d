package models

import (
	"sync"
	"time"
)

// RoomStatus статус жизненного цикла комнаты
type RoomStatus string

const (
	StatusWaiting   RoomStatus = "waiting"
	StatusPlaying   RoomStatus = "playing"
	StatusCompleted RoomStatus = "completed"
)

// MaxPlayers игра всегда для пары
const MaxPlayers = 2

// AnswerKey идентифицирует ответ игрока про самого себя
type AnswerKey struct {
	Question int
	Player   string
}

// GuessKey идентифицирует догадку игрока про партнера
type GuessKey struct {
	Question int
	Guesser  string
	Target   string
}

// Room представляет одну игровую сессию на двоих.
// Все изменяемые поля защищены mu; любая последовательность
// чтение-изменение должна выполняться под блокировкой (см. internal/game).
type Room struct {
	Code      string
	GameType  string
	CreatedAt time.Time

	Players          []string // первым идет создатель комнаты
	Status           RoomStatus
	RoundIndex       int
	Phase            int    // 1 или 2
	CurrentResponder string // кто сейчас отвечает за себя

	SelfAnswers    map[AnswerKey]string
	PartnerGuesses map[GuessKey]string

	mu sync.Mutex
}

func NewRoom(code, gameType, creator string, createdAt time.Time) *Room {
	return &Room{
		Code:           code,
		GameType:       gameType,
		CreatedAt:      createdAt,
		Players:        []string{creator},
		Status:         StatusWaiting,
		Phase:          1,
		SelfAnswers:    make(map[AnswerKey]string),
		PartnerGuesses: make(map[GuessKey]string),
	}
}

// Lock захватывает блокировку комнаты
func (r *Room) Lock() {
	r.mu.Lock()
}

// Unlock освобождает блокировку комнаты
func (r *Room) Unlock() {
	r.mu.Unlock()
}

// HasPlayer проверяет, состоит ли игрок в комнате (вызывать под блокировкой)
func (r *Room) HasPlayer(name string) bool {
	for _, p := range r.Players {
		if p == name {
			return true
		}
	}
	return false
}

// Partner возвращает второго игрока комнаты (вызывать под блокировкой)
func (r *Room) Partner(name string) string {
	for _, p := range r.Players {
		if p != name {
			return p
		}
	}
	return ""
}

// IsFull достигнут ли лимит участников
func (r *Room) IsFull() bool {
	return len(r.Players) >= MaxPlayers
}
