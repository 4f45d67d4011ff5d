package game

import (
	"fmt"
	"log"
	"time"

	"github.com/gnome-horoscope/match-server/internal/models"
)

// QuestionSource поставляет вопросы для выбранного типа игры.
// Реализуется банком вопросов (internal/questions).
type QuestionSource interface {
	QuestionsFor(gameType string) []models.Question
}

// Event событие движка, зеркалируемое подключенным клиентам.
// Fan-out никогда не участвует в принятии решений о переходах.
type Event struct {
	Type    string
	Payload any
}

// Notifier получает события движка. Реализация обязана не блокировать
// вызывающего; ошибки доставки не поднимаются в движок.
type Notifier interface {
	Notify(roomCode string, event Event)
}

// Role эффективная роль игрока в текущей фазе
type Role string

const (
	RoleAnswering Role = "answering"
	RoleGuessing  Role = "guessing"
)

// DefaultResultsDelay сколько клиенты видят результаты раунда,
// прежде чем придет событие next_question
const DefaultResultsDelay = 3 * time.Second

// Engine реализует машину состояний комнаты:
// waiting → playing → playing... → completed.
// Каждая операция выполняет свою последовательность чтение-изменение
// целиком под блокировкой комнаты.
type Engine struct {
	store        *Store
	questions    QuestionSource
	notifier     Notifier
	resultsDelay time.Duration
}

func NewEngine(store *Store, questions QuestionSource, notifier Notifier, resultsDelay time.Duration) *Engine {
	if resultsDelay <= 0 {
		resultsDelay = DefaultResultsDelay
	}
	return &Engine{
		store:        store,
		questions:    questions,
		notifier:     notifier,
		resultsDelay: resultsDelay,
	}
}

// Store возвращает хранилище комнат движка
func (e *Engine) Store() *Store {
	return e.store
}

// StatusView снимок состояния комнаты для опроса клиентом
type StatusView struct {
	Code       string
	Players    []string
	Status     models.RoomStatus
	RoundIndex int
}

// QuestionView производное представление текущего вопроса для игрока
type QuestionView struct {
	Completed     bool
	QuestionIndex int
	Prompt        string
	Options       []models.Option
	Role          Role
	Instruction   string
	Partner       string
}

// SubmitResult итог приема одного ответа
type SubmitResult struct {
	WaitingForPartner bool
	RoundIndex        int
	Phase             int
}

// CreateRoom создает комнату за creator. Тип игры, не дающий ни одного
// вопроса, отклоняется сразу, а не при первом ходе.
func (e *Engine) CreateRoom(creator, gameType string) (*models.Room, error) {
	if len(e.questions.QuestionsFor(gameType)) == 0 {
		return nil, ErrNoQuestions
	}

	room, err := e.store.Create(creator, gameType)
	if err != nil {
		return nil, err
	}
	log.Printf("Room %s created by %q (game type %q)", room.Code, creator, gameType)
	return room, nil
}

// Join добавляет второго игрока и переводит комнату в playing.
// Повторный вход уже состоящего игрока идемпотентен.
func (e *Engine) Join(code, player string) (StatusView, error) {
	room, ok := e.store.Get(code)
	if !ok {
		return StatusView{}, ErrRoomNotFound
	}

	room.Lock()
	defer room.Unlock()

	if room.HasPlayer(player) {
		return statusLocked(room), nil
	}
	if room.IsFull() {
		return StatusView{}, ErrRoomFull
	}

	room.Players = append(room.Players, player)
	if room.IsFull() {
		room.Status = models.StatusPlaying
		room.RoundIndex = 0
		room.Phase = 1
		room.CurrentResponder = room.Players[0]
	}
	log.Printf("Player %q joined room %s (%d/%d)", player, room.Code, len(room.Players), models.MaxPlayers)

	e.notify(room.Code, Event{Type: "player_joined", Payload: map[string]any{
		"player_name":   player,
		"players_count": len(room.Players),
	}})
	if room.Status == models.StatusPlaying {
		e.notify(room.Code, Event{Type: "game_started", Payload: map[string]any{
			"players":           room.Players,
			"current_responder": room.CurrentResponder,
		}})
	}

	return statusLocked(room), nil
}

// Status идемпотентное чтение состояния комнаты
func (e *Engine) Status(code string) (StatusView, error) {
	room, ok := e.store.Get(code)
	if !ok {
		return StatusView{}, ErrRoomNotFound
	}

	room.Lock()
	defer room.Unlock()
	return statusLocked(room), nil
}

// CurrentQuestion вычисляет текущий вопрос и роль игрока из состояния
// комнаты. Здесь же срабатывает переход playing → completed, когда
// раунды исчерпаны.
func (e *Engine) CurrentQuestion(code, caller string) (QuestionView, error) {
	room, ok := e.store.Get(code)
	if !ok {
		return QuestionView{}, ErrRoomNotFound
	}

	room.Lock()
	defer room.Unlock()

	if !room.HasPlayer(caller) {
		return QuestionView{}, ErrUnknownPlayer
	}
	if room.Status == models.StatusWaiting {
		return QuestionView{}, ErrInvalidState
	}

	qs := e.questions.QuestionsFor(room.GameType)
	if len(qs) == 0 {
		return QuestionView{}, ErrNoQuestions
	}

	if e.maybeCompleteLocked(room, len(qs)) || room.Status == models.StatusCompleted {
		return QuestionView{Completed: true}, nil
	}

	qi := room.RoundIndex % len(qs)
	q := qs[qi]

	view := QuestionView{
		QuestionIndex: qi,
		Options:       q.Options,
		Partner:       room.Partner(caller),
	}
	if caller == room.CurrentResponder {
		view.Role = RoleAnswering
		view.Prompt = q.SelfPrompt()
		view.Instruction = "Ответьте за себя — партнёр попробует угадать ваш выбор"
	} else {
		view.Role = RoleGuessing
		view.Prompt = q.Prompt
		view.Instruction = fmt.Sprintf("Угадайте, что выберет %s", room.CurrentResponder)
	}
	return view, nil
}

// SubmitAnswer записывает один ответ (за себя или догадку о партнере)
// и, если фаза собрана с обеих сторон, продвигает машину состояний.
// Повторный ответ по тому же ключу молча перезаписывает предыдущий.
func (e *Engine) SubmitAnswer(code, player string, questionIndex int, option string) (SubmitResult, error) {
	room, ok := e.store.Get(code)
	if !ok {
		return SubmitResult{}, ErrRoomNotFound
	}

	room.Lock()
	defer room.Unlock()

	if !room.HasPlayer(player) {
		return SubmitResult{}, ErrUnknownPlayer
	}
	if room.Status != models.StatusPlaying {
		return SubmitResult{}, ErrInvalidState
	}

	qs := e.questions.QuestionsFor(room.GameType)
	if questionIndex < 0 || questionIndex >= len(qs) {
		return SubmitResult{}, ErrInvalidState
	}

	if player == room.CurrentResponder {
		room.SelfAnswers[models.AnswerKey{Question: questionIndex, Player: player}] = option
	} else {
		room.PartnerGuesses[models.GuessKey{
			Question: questionIndex,
			Guesser:  player,
			Target:   room.CurrentResponder,
		}] = option
	}

	// Проверка завершенности фазы не зависит от порядка прихода
	// ответов: смотрим только на наличие обоих данных.
	curQ := room.RoundIndex % len(qs)
	responder := room.CurrentResponder
	guesser := room.Partner(responder)
	_, hasAnswer := room.SelfAnswers[models.AnswerKey{Question: curQ, Player: responder}]
	_, hasGuess := room.PartnerGuesses[models.GuessKey{Question: curQ, Guesser: guesser, Target: responder}]

	phaseDone := hasAnswer && hasGuess

	e.notify(room.Code, Event{Type: "answer_received", Payload: map[string]any{
		"player_name":    player,
		"question_index": questionIndex,
		"phase_complete": phaseDone,
	}})

	if phaseDone {
		e.advanceLocked(room, qs, curQ)
	}

	return SubmitResult{
		WaitingForPartner: !phaseDone,
		RoundIndex:        room.RoundIndex,
		Phase:             room.Phase,
	}, nil
}

// Results считает отчет о совместимости по записанным данным
func (e *Engine) Results(code string) (Report, error) {
	room, ok := e.store.Get(code)
	if !ok {
		return Report{}, ErrRoomNotFound
	}

	room.Lock()
	defer room.Unlock()

	qs := e.questions.QuestionsFor(room.GameType)
	if len(qs) > 0 {
		e.maybeCompleteLocked(room, len(qs))
	}
	return Score(room, qs), nil
}

// advanceLocked выполняется под блокировкой комнаты: фаза 1 → фаза 2
// с обменом ролей, фаза 2 → следующий раунд с возвратом ролей.
func (e *Engine) advanceLocked(room *models.Room, qs []models.Question, curQ int) {
	if room.Phase == 1 {
		room.Phase = 2
		room.CurrentResponder = room.Partner(room.CurrentResponder)
		e.notify(room.Code, Event{Type: "phase_changed", Payload: map[string]any{
			"round_index":       room.RoundIndex,
			"phase":             room.Phase,
			"current_responder": room.CurrentResponder,
		}})
		return
	}

	room.RoundIndex++
	room.Phase = 1
	room.CurrentResponder = room.Players[0]

	e.notify(room.Code, Event{Type: "round_results", Payload: roundResultsLocked(room, qs, curQ)})

	// Клиенты видят результаты раунда resultsDelay, затем им приходит
	// следующий вопрос или финал. Переход отложен таймером, в пути
	// обработки запроса нет sleep.
	code := room.Code
	time.AfterFunc(e.resultsDelay, func() { e.announceRound(code) })
}

// announceRound отложенная задача после показа результатов раунда
func (e *Engine) announceRound(code string) {
	room, ok := e.store.Get(code)
	if !ok {
		return
	}

	room.Lock()
	defer room.Unlock()

	qs := e.questions.QuestionsFor(room.GameType)
	if len(qs) == 0 {
		return
	}

	if e.maybeCompleteLocked(room, len(qs)) || room.Status == models.StatusCompleted {
		return
	}

	qi := room.RoundIndex % len(qs)
	e.notify(room.Code, Event{Type: "next_question", Payload: map[string]any{
		"question_index":    qi,
		"question":          qs[qi].Prompt,
		"options":           qs[qi].Options,
		"current_responder": room.CurrentResponder,
	}})
}

// maybeCompleteLocked делает переход playing → completed, когда
// roundIndex*2 >= totalRounds (каждый вопрос дает два раунда-фазы).
// Возвращает true, если переход произошел именно сейчас.
func (e *Engine) maybeCompleteLocked(room *models.Room, questionCount int) bool {
	if room.Status != models.StatusPlaying {
		return false
	}
	totalRounds := questionCount * 2
	if room.RoundIndex*2 < totalRounds {
		return false
	}

	room.Status = models.StatusCompleted
	log.Printf("Room %s completed after %d round(s)", room.Code, room.RoundIndex)

	report := Score(room, e.questions.QuestionsFor(room.GameType))
	e.notify(room.Code, Event{Type: "game_finished", Payload: map[string]any{
		"compatibility": report.CompatibilityPercent,
		"matches":       report.CorrectGuesses,
		"total":         report.TotalGuesses,
		"gnome_advice":  report.Tier.Advice,
		"tier":          report.Tier,
	}})
	return true
}

func (e *Engine) notify(code string, ev Event) {
	if e.notifier == nil {
		return
	}
	e.notifier.Notify(code, ev)
}

func statusLocked(room *models.Room) StatusView {
	players := make([]string, len(room.Players))
	copy(players, room.Players)
	return StatusView{
		Code:       room.Code,
		Players:    players,
		Status:     room.Status,
		RoundIndex: room.RoundIndex,
	}
}

// roundResultsLocked собирает полные данные законченного вопроса для
// зеркалирования клиентам
func roundResultsLocked(room *models.Room, qs []models.Question, questionIndex int) map[string]any {
	answers := make(map[string]any, len(room.Players))
	for _, p := range room.Players {
		partner := room.Partner(p)
		answers[p] = map[string]string{
			"answer": room.SelfAnswers[models.AnswerKey{Question: questionIndex, Player: p}],
			"guess":  room.PartnerGuesses[models.GuessKey{Question: questionIndex, Guesser: p, Target: partner}],
		}
	}
	prompt := ""
	if questionIndex < len(qs) {
		prompt = qs[questionIndex].Prompt
	}
	return map[string]any{
		"question_index": questionIndex,
		"question":       prompt,
		"answers":        answers,
	}
}
