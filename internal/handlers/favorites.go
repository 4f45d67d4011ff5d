package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/gnome-horoscope/match-server/internal/database"
	"github.com/gnome-horoscope/match-server/internal/handlers/dto"
	"github.com/gnome-horoscope/match-server/internal/models"
	"github.com/gnome-horoscope/match-server/pkg/telegram"
)

// FavoritesHandler избранное пользователя Telegram
type FavoritesHandler struct {
	store     database.FavoriteStore
	validator *telegram.Validator
}

func NewFavoritesHandler(store database.FavoriteStore, validator *telegram.Validator) *FavoritesHandler {
	return &FavoritesHandler{store: store, validator: validator}
}

// AddFavorite сохраняет запись в избранное
func (h *FavoritesHandler) AddFavorite(c *gin.Context) {
	var req dto.FavoriteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "bad_request", "message": err.Error()})
		return
	}

	user, err := h.validator.Parse(req.InitData)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid_init_data"})
		return
	}

	raw, err := json.Marshal(req.Content)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "bad_request", "message": "content is not serializable"})
		return
	}

	fav := &models.Favorite{
		UserID:    user.Key(),
		Type:      req.Type,
		Content:   string(raw),
		CreatedAt: time.Now(),
	}
	if err := h.store.SaveFavorite(fav); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal_error"})
		return
	}

	c.JSON(http.StatusCreated, dto.StatusResponse{Status: "ok", Message: "Добавлено в избранное"})
}

// ListFavorites возвращает избранное пользователя, свежее первым
func (h *FavoritesHandler) ListFavorites(c *gin.Context) {
	user, err := h.validator.Parse(c.Query("initData"))
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid_init_data"})
		return
	}

	favs, err := h.store.ListFavorites(user.Key())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal_error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"favorites": favs})
}

// DeleteFavorite удаляет запись из избранного
func (h *FavoritesHandler) DeleteFavorite(c *gin.Context) {
	user, err := h.validator.Parse(c.Query("initData"))
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid_init_data"})
		return
	}

	if err := h.store.DeleteFavorite(user.Key(), c.Param("id")); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal_error"})
		return
	}

	c.JSON(http.StatusOK, dto.StatusResponse{Status: "ok"})
}
