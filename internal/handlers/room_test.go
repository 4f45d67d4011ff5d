package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/gnome-horoscope/match-server/internal/game"
	"github.com/gnome-horoscope/match-server/internal/models"
)

type stubQuestions struct {
	questions []models.Question
}

func (s stubQuestions) QuestionsFor(gameType string) []models.Question {
	if gameType != "fruit_game" {
		return nil
	}
	return s.questions
}

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	questions := stubQuestions{questions: []models.Question{{
		ID:     1,
		Prompt: "Какой фрукт выберет твой партнер?",
		Options: []models.Option{
			{ID: "apple", Name: "Яблоко", Emoji: "🍎"},
			{ID: "pear", Name: "Груша", Emoji: "🍐"},
		},
	}}}
	engine := game.NewEngine(game.NewStore(), questions, nil, time.Millisecond)
	handler := NewRoomHandler(engine)

	router := gin.New()
	rooms := router.Group("/api/game/rooms")
	{
		rooms.POST("", handler.CreateRoom)
		rooms.POST("/:code/join", handler.JoinRoom)
		rooms.GET("/:code", handler.RoomStatus)
		rooms.GET("/:code/question", handler.CurrentQuestion)
		rooms.POST("/:code/answer", handler.SubmitAnswer)
		rooms.GET("/:code/results", handler.GameResults)
	}
	return router
}

func doJSON(t *testing.T, router *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func createRoom(t *testing.T, router *gin.Engine) string {
	t.Helper()
	rec := doJSON(t, router, http.MethodPost, "/api/game/rooms", `{"player_name":"Аня","game_type":"fruit_game"}`)
	require.Equal(t, http.StatusCreated, rec.Code)

	var resp map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp["room_code"], 4)
	require.Equal(t, "fruit_game", resp["game_type"])
	return resp["room_code"]
}

func TestCreateRoomValidation(t *testing.T) {
	router := newTestRouter(t)

	rec := doJSON(t, router, http.MethodPost, "/api/game/rooms", `{"game_type":"fruit_game"}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)

	rec = doJSON(t, router, http.MethodPost, "/api/game/rooms", `{"player_name":"Аня","game_type":"unknown"}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Contains(t, rec.Body.String(), "no_questions")
}

func TestJoinStartsGame(t *testing.T) {
	router := newTestRouter(t)
	code := createRoom(t, router)

	rec := doJSON(t, router, http.MethodPost, "/api/game/rooms/"+code+"/join", `{"player_name":"Боб"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var status map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &status))
	require.Equal(t, "playing", status["status"])
	require.Len(t, status["players"], 2)
}

func TestJoinUnknownRoomReturns404(t *testing.T) {
	router := newTestRouter(t)

	rec := doJSON(t, router, http.MethodPost, "/api/game/rooms/0000/join", `{"player_name":"Боб"}`)
	require.Equal(t, http.StatusNotFound, rec.Code)
	require.Contains(t, rec.Body.String(), "room_not_found")
}

func TestThirdPlayerIsRejectedWithConflict(t *testing.T) {
	router := newTestRouter(t)
	code := createRoom(t, router)

	doJSON(t, router, http.MethodPost, "/api/game/rooms/"+code+"/join", `{"player_name":"Боб"}`)
	rec := doJSON(t, router, http.MethodPost, "/api/game/rooms/"+code+"/join", `{"player_name":"Вера"}`)
	require.Equal(t, http.StatusConflict, rec.Code)
	require.Contains(t, rec.Body.String(), "room_full")
}

func TestCurrentQuestionRequiresPlayer(t *testing.T) {
	router := newTestRouter(t)
	code := createRoom(t, router)
	doJSON(t, router, http.MethodPost, "/api/game/rooms/"+code+"/join", `{"player_name":"Боб"}`)

	rec := doJSON(t, router, http.MethodGet, "/api/game/rooms/"+code+"/question", "")
	require.Equal(t, http.StatusBadRequest, rec.Code)

	rec = doJSON(t, router, http.MethodGet, "/api/game/rooms/"+code+"/question?player=Чужой", "")
	require.Equal(t, http.StatusForbidden, rec.Code)

	rec = doJSON(t, router, http.MethodGet, "/api/game/rooms/"+code+"/question?player=%D0%90%D0%BD%D1%8F", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var q map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &q))
	require.Equal(t, false, q["completed"])
	require.Equal(t, "answering", q["role"])
}

func TestSubmitAnswerAcceptsIndexZero(t *testing.T) {
	router := newTestRouter(t)
	code := createRoom(t, router)
	doJSON(t, router, http.MethodPost, "/api/game/rooms/"+code+"/join", `{"player_name":"Боб"}`)

	rec := doJSON(t, router, http.MethodPost, "/api/game/rooms/"+code+"/answer",
		`{"player_name":"Аня","question_index":0,"option":"apple"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Equal(t, true, resp["waiting_for_partner"])

	// без question_index запрос не проходит биндинг
	rec = doJSON(t, router, http.MethodPost, "/api/game/rooms/"+code+"/answer",
		`{"player_name":"Аня","option":"apple"}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestResultsOfFreshGameAreZero(t *testing.T) {
	router := newTestRouter(t)
	code := createRoom(t, router)
	doJSON(t, router, http.MethodPost, "/api/game/rooms/"+code+"/join", `{"player_name":"Боб"}`)

	rec := doJSON(t, router, http.MethodGet, "/api/game/rooms/"+code+"/results", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var report game.Report
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &report))
	require.Equal(t, 0, report.CompatibilityPercent)
	require.Zero(t, report.TotalGuesses)
}

func TestResultsOfUnknownRoomReturns404(t *testing.T) {
	router := newTestRouter(t)

	rec := doJSON(t, router, http.MethodGet, "/api/game/rooms/0000/results", "")
	require.Equal(t, http.StatusNotFound, rec.Code)
}
