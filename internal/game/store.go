package game

import (
	"context"
	"fmt"
	"log"
	"math/rand"
	"sync"
	"time"

	"github.com/gnome-horoscope/match-server/internal/models"
)

// DefaultRoomTTL комната живет два часа, дальше ее выметает sweeper
const DefaultRoomTTL = 2 * time.Hour

const maxCodeAttempts = 50

// Store владеет множеством живых комнат. Создается один раз при старте
// процесса и передается движку явно, без глобального состояния.
type Store struct {
	mu    sync.RWMutex
	rooms map[string]*models.Room

	// подменяется в тестах
	now func() time.Time
}

func NewStore() *Store {
	return &Store{
		rooms: make(map[string]*models.Room),
		now:   time.Now,
	}
}

// WithClock подменяет источник времени (для тестов sweeper'а)
func (s *Store) WithClock(now func() time.Time) *Store {
	s.now = now
	return s
}

// Create генерирует уникальный среди живых комнат код и регистрирует
// новую комнату в статусе waiting. Коды четырехзначные, при коллизии
// делается ограниченное число повторных попыток.
func (s *Store) Create(creator, gameType string) (*models.Room, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for attempt := 0; attempt < maxCodeAttempts; attempt++ {
		code := fmt.Sprintf("%04d", 1000+rand.Intn(9000))
		if _, exists := s.rooms[code]; exists {
			continue
		}
		room := models.NewRoom(code, gameType, creator, s.now())
		s.rooms[code] = room
		return room, nil
	}
	return nil, ErrNoFreeCodes
}

// Get возвращает комнату по коду
func (s *Store) Get(code string) (*models.Room, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	room, ok := s.rooms[code]
	return room, ok
}

// Delete удаляет комнату
func (s *Store) Delete(code string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.rooms, code)
}

// Len число живых комнат
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.rooms)
}

// SweepExpired удаляет все комнаты старше maxAge и возвращает их число.
// Комната с незавершенной игрой просто перестает находиться по коду,
// уведомления подключенным клиентам не отправляются.
func (s *Store) SweepExpired(maxAge time.Duration) int {
	cutoff := s.now().Add(-maxAge)

	s.mu.Lock()
	defer s.mu.Unlock()

	removed := 0
	for code, room := range s.rooms {
		if room.CreatedAt.Before(cutoff) {
			delete(s.rooms, code)
			removed++
		}
	}
	return removed
}

// StartSweeper запускает периодическую очистку до отмены контекста
func (s *Store) StartSweeper(ctx context.Context, interval, maxAge time.Duration) {
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				if n := s.SweepExpired(maxAge); n > 0 {
					log.Printf("Swept %d expired room(s), %d alive", n, s.Len())
				}
			}
		}
	}()
}
