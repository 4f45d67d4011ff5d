package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/gnome-horoscope/match-server/internal/content"
	"github.com/gnome-horoscope/match-server/internal/handlers/dto"
	"github.com/gnome-horoscope/match-server/pkg/telegram"
)

// ContentHandler ручки гномьего контента: гороскопы, карты дня,
// статус Меркурия
type ContentHandler struct {
	provider  *content.Provider
	validator *telegram.Validator
}

func NewContentHandler(provider *content.Provider, validator *telegram.Validator) *ContentHandler {
	return &ContentHandler{provider: provider, validator: validator}
}

// Root корневой роут с перечнем доступных ручек
func (h *ContentHandler) Root(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"message": "🧙‍♂️ Gnome Match API is running!",
		"status":  "ok",
		"endpoints": []string{
			"GET /health - проверка работоспособности",
			"GET /api/horoscope?sign=ЗНАК - получить гороскоп",
			"POST /api/day-card - получить карту дня",
			"GET /api/mercury - статус Меркурия",
			"POST /api/game/rooms - создать игровую комнату",
		},
	})
}

// Health проверка работоспособности
func (h *ContentHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "ok",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"service":   "Gnome Match API",
	})
}

// Horoscope возвращает стабильный гороскоп для знака и даты
func (h *ContentHandler) Horoscope(c *gin.Context) {
	sign := c.Query("sign")
	if sign == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "bad_request", "message": "sign query parameter is required"})
		return
	}

	c.JSON(http.StatusOK, h.provider.HoroscopeFor(c.Request.Context(), sign, c.Query("date")))
}

// DayCard выдает карту дня: одну на пользователя в сутки
func (h *ContentHandler) DayCard(c *gin.Context) {
	var req dto.DayCardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "bad_request", "message": err.Error()})
		return
	}

	user, err := h.validator.Parse(req.InitData)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid_init_data"})
		return
	}

	c.JSON(http.StatusOK, h.provider.DayCardFor(c.Request.Context(), user.Key()))
}

// Mercury сообщает, ретрограден ли Меркурий
func (h *ContentHandler) Mercury(c *gin.Context) {
	c.JSON(http.StatusOK, h.provider.Mercury())
}
