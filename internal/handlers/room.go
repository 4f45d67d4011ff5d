package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/gnome-horoscope/match-server/internal/game"
	"github.com/gnome-horoscope/match-server/internal/handlers/dto"
)

// RoomHandler HTTP-ручки игровых комнат поверх движка
type RoomHandler struct {
	engine *game.Engine
}

func NewRoomHandler(engine *game.Engine) *RoomHandler {
	return &RoomHandler{engine: engine}
}

// CreateRoom создает новую комнату
func (h *RoomHandler) CreateRoom(c *gin.Context) {
	var req dto.CreateRoomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "bad_request", "message": err.Error()})
		return
	}

	room, err := h.engine.CreateRoom(req.PlayerName, req.GameType)
	if err != nil {
		respondGameError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.CreateRoomResponse{
		RoomCode: room.Code,
		GameType: room.GameType,
	})
}

// JoinRoom присоединяет второго игрока к комнате
func (h *RoomHandler) JoinRoom(c *gin.Context) {
	var req dto.JoinRoomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "bad_request", "message": err.Error()})
		return
	}

	view, err := h.engine.Join(c.Param("code"), req.PlayerName)
	if err != nil {
		respondGameError(c, err)
		return
	}

	c.JSON(http.StatusOK, statusResponse(view))
}

// RoomStatus отдает состояние комнаты для опроса клиентом
func (h *RoomHandler) RoomStatus(c *gin.Context) {
	view, err := h.engine.Status(c.Param("code"))
	if err != nil {
		respondGameError(c, err)
		return
	}

	c.JSON(http.StatusOK, statusResponse(view))
}

// CurrentQuestion возвращает текущий вопрос и роль вызывающего игрока
func (h *RoomHandler) CurrentQuestion(c *gin.Context) {
	player := c.Query("player")
	if player == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "bad_request", "message": "player query parameter is required"})
		return
	}

	view, err := h.engine.CurrentQuestion(c.Param("code"), player)
	if err != nil {
		respondGameError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.QuestionResponse{
		Completed:     view.Completed,
		QuestionIndex: view.QuestionIndex,
		Question:      view.Prompt,
		Options:       view.Options,
		Role:          string(view.Role),
		Instruction:   view.Instruction,
		Partner:       view.Partner,
	})
}

// SubmitAnswer принимает ответ или догадку игрока
func (h *RoomHandler) SubmitAnswer(c *gin.Context) {
	var req dto.SubmitAnswerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "bad_request", "message": err.Error()})
		return
	}

	result, err := h.engine.SubmitAnswer(c.Param("code"), req.PlayerName, *req.QuestionIndex, req.Option)
	if err != nil {
		respondGameError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.SubmitAnswerResponse{
		WaitingForPartner: result.WaitingForPartner,
		RoundIndex:        result.RoundIndex,
		Phase:             result.Phase,
	})
}

// GameResults отдает отчет о совместимости пары
func (h *RoomHandler) GameResults(c *gin.Context) {
	report, err := h.engine.Results(c.Param("code"))
	if err != nil {
		respondGameError(c, err)
		return
	}

	c.JSON(http.StatusOK, report)
}

func statusResponse(view game.StatusView) dto.RoomStatusResponse {
	return dto.RoomStatusResponse{
		RoomCode:   view.Code,
		Players:    view.Players,
		Status:     string(view.Status),
		RoundIndex: view.RoundIndex,
	}
}
