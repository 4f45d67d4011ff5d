package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/gnome-horoscope/match-server/internal/game"
)

// respondGameError переводит ошибку движка в HTTP-статус и машинную
// причину, различимую на клиенте (не общий "error").
func respondGameError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	reason := "internal_error"

	switch {
	case errors.Is(err, game.ErrRoomNotFound):
		status, reason = http.StatusNotFound, "room_not_found"
	case errors.Is(err, game.ErrRoomFull):
		status, reason = http.StatusConflict, "room_full"
	case errors.Is(err, game.ErrUnknownPlayer):
		status, reason = http.StatusForbidden, "unknown_player"
	case errors.Is(err, game.ErrInvalidState):
		status, reason = http.StatusConflict, "invalid_state"
	case errors.Is(err, game.ErrNoQuestions):
		status, reason = http.StatusBadRequest, "no_questions"
	case errors.Is(err, game.ErrNoFreeCodes):
		status, reason = http.StatusServiceUnavailable, "no_free_codes"
	}

	c.JSON(status, gin.H{"error": reason, "message": err.Error()})
}
