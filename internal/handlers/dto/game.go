package dto

import "github.com/gnome-horoscope/match-server/internal/models"

type CreateRoomRequest struct {
	PlayerName string `json:"player_name" binding:"required,min=1,max=50"`
	GameType   string `json:"game_type" binding:"required"`
}

type CreateRoomResponse struct {
	RoomCode string `json:"room_code"`
	GameType string `json:"game_type"`
}

type JoinRoomRequest struct {
	PlayerName string `json:"player_name" binding:"required,min=1,max=50"`
}

type RoomStatusResponse struct {
	RoomCode   string   `json:"room_code"`
	Players    []string `json:"players"`
	Status     string   `json:"status"`
	RoundIndex int      `json:"round_index"`
}

type QuestionResponse struct {
	Completed     bool             `json:"completed"`
	QuestionIndex int              `json:"question_index,omitempty"`
	Question      string           `json:"question,omitempty"`
	Options       []models.Option  `json:"options,omitempty"`
	Role          string           `json:"role,omitempty"`
	Instruction   string           `json:"instruction,omitempty"`
	Partner       string           `json:"partner,omitempty"`
}

type SubmitAnswerRequest struct {
	PlayerName    string `json:"player_name" binding:"required"`
	QuestionIndex *int   `json:"question_index" binding:"required"`
	Option        string `json:"option" binding:"required"`
}

type SubmitAnswerResponse struct {
	WaitingForPartner bool `json:"waiting_for_partner"`
	RoundIndex        int  `json:"round_index"`
	Phase             int  `json:"phase"`
}
