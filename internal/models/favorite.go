package models

import (
	"time"

	"github.com/google/uuid"
)

// Favorite сохраненная пользователем запись (гороскоп, карта дня, результат игры).
// Единственная сущность, которая переживает рестарт процесса.
type Favorite struct {
	ID        uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	UserID    string    `gorm:"index;not null" json:"-"`
	Type      string    `gorm:"not null" json:"type"` // horoscope, day_card, match_result
	Content   string    `gorm:"type:jsonb;not null" json:"content"`
	CreatedAt time.Time `json:"created_at"`
}
