package database

import (
	"errors"

	"github.com/gnome-horoscope/match-server/internal/models"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// FavoriteStore хранилище избранного. Постоянное (postgres) или
// эфемерное (memory), выбирается при старте по наличию DATABASE_URL.
type FavoriteStore interface {
	SaveFavorite(fav *models.Favorite) error
	ListFavorites(userID string) ([]models.Favorite, error)
	DeleteFavorite(userID, id string) error
}

type Database struct {
	db *gorm.DB
}

// Connect открывает подключение к postgres и прогоняет миграции
func Connect(dsn string) (*Database, error) {
	if dsn == "" {
		return nil, errors.New("DATABASE_URL is not set")
	}

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, err
	}

	if err := db.AutoMigrate(&models.Favorite{}); err != nil {
		return nil, err
	}

	return &Database{db: db}, nil
}

func (d *Database) SaveFavorite(fav *models.Favorite) error {
	return d.db.Create(fav).Error
}

func (d *Database) ListFavorites(userID string) ([]models.Favorite, error) {
	var favs []models.Favorite
	err := d.db.Where("user_id = ?", userID).Order("created_at DESC").Find(&favs).Error
	return favs, err
}

func (d *Database) DeleteFavorite(userID, id string) error {
	return d.db.Where("user_id = ? AND id = ?", userID, id).Delete(&models.Favorite{}).Error
}
