package dto

type DayCardRequest struct {
	InitData string `json:"initData" binding:"required"`
}

type FavoriteRequest struct {
	InitData string         `json:"initData" binding:"required"`
	Type     string         `json:"type" binding:"required,oneof=horoscope day_card match_result"`
	Content  map[string]any `json:"content" binding:"required"`
}

type StatusResponse struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
}
