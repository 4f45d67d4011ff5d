package database

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/gnome-horoscope/match-server/internal/models"
)

// MemoryFavorites запасная реализация без postgres: избранное живет
// до рестарта процесса. Достаточно для локальной разработки и тестов.
type MemoryFavorites struct {
	mu        sync.RWMutex
	favorites map[string][]models.Favorite // userID -> записи
}

func NewMemoryFavorites() *MemoryFavorites {
	return &MemoryFavorites{favorites: make(map[string][]models.Favorite)}
}

func (m *MemoryFavorites) SaveFavorite(fav *models.Favorite) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if fav.ID == uuid.Nil {
		fav.ID = uuid.New()
	}
	if fav.CreatedAt.IsZero() {
		fav.CreatedAt = time.Now()
	}
	m.favorites[fav.UserID] = append(m.favorites[fav.UserID], *fav)
	return nil
}

func (m *MemoryFavorites) ListFavorites(userID string) ([]models.Favorite, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	favs := m.favorites[userID]
	out := make([]models.Favorite, len(favs))
	// свежие записи первыми, как в postgres-реализации
	for i, fav := range favs {
		out[len(favs)-1-i] = fav
	}
	return out, nil
}

func (m *MemoryFavorites) DeleteFavorite(userID, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	favs := m.favorites[userID]
	dst := favs[:0]
	for _, fav := range favs {
		if fav.ID.String() == id {
			continue
		}
		dst = append(dst, fav)
	}
	m.favorites[userID] = dst
	return nil
}
