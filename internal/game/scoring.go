package game

import (
	"math"

	"github.com/samber/lo"

	"github.com/gnome-horoscope/match-server/internal/models"
)

// GuessOutcome одна пара "ответ за себя / догадка партнера"
type GuessOutcome struct {
	Responder string `json:"responder"`
	Guesser   string `json:"guesser"`
	Answer    string `json:"answer"`
	Guess     string `json:"guess"`
	Correct   bool   `json:"correct"`
}

// QuestionBreakdown разбор одного вопроса по обеим фазам
type QuestionBreakdown struct {
	QuestionIndex int            `json:"question_index"`
	Prompt        string         `json:"question"`
	Outcomes      []GuessOutcome `json:"outcomes"`
}

// Tier качественная оценка совместимости от гномов
type Tier struct {
	Title   string `json:"title"`
	Message string `json:"message"`
	Advice  string `json:"advice"`
	Color   string `json:"color"`
}

// Report итоговый отчет о совместимости пары
type Report struct {
	Completed            bool                `json:"completed"`
	CorrectGuesses       int                 `json:"correct_guesses"`
	TotalGuesses         int                 `json:"total_guesses"`
	CompatibilityPercent int                 `json:"compatibility_percent"`
	Breakdown            []QuestionBreakdown `json:"breakdown"`
	Tier                 Tier                `json:"tier"`
}

var tiers = []struct {
	min  int
	tier Tier
}{
	{80, Tier{
		Title:   "Гном-Купидон в восторге!",
		Message: "Вы понимаете друг друга с полуслова!",
		Advice:  "Берегите эту связь — такое взаимопонимание встречается редко.",
		Color:   "#e91e63",
	}},
	{60, Tier{
		Title:   "Гном-Мудрец одобрительно кивает",
		Message: "Хорошее взаимопонимание, есть куда расти!",
		Advice:  "Чаще спрашивайте друг друга о мелочах — они и есть главное.",
		Color:   "#9c27b0",
	}},
	{40, Tier{
		Title:   "Гном-Исследователь заинтригован",
		Message: "Вы только начинаете узнавать друг друга.",
		Advice:  "Больше узнавайте друг о друге — впереди много открытий!",
		Color:   "#3f51b5",
	}},
	{0, Tier{
		Title:   "Гном-Авантюрист потирает руки",
		Message: "Противоположности притягиваются!",
		Advice:  "Не угадали — зато будет что обсудить за ужином.",
		Color:   "#607d8b",
	}},
}

// TierFor детерминированный выбор уровня по проценту совместимости
func TierFor(percent int) Tier {
	for _, t := range tiers {
		if percent >= t.min {
			return t.tier
		}
	}
	return tiers[len(tiers)-1].tier
}

// Score чистая функция от записанных ответов и догадок комнаты.
// Для каждого сыгранного вопроса сравниваются обе пары
// (ответ отвечающего, догадка партнера о нем); вызывать под
// блокировкой комнаты.
func Score(room *models.Room, qs []models.Question) Report {
	report := Report{
		Completed: room.Status == models.StatusCompleted,
		Breakdown: []QuestionBreakdown{},
	}
	if len(room.Players) < models.MaxPlayers || len(qs) == 0 {
		report.Tier = TierFor(0)
		return report
	}

	for qi := 0; qi < room.RoundIndex && qi < len(qs); qi++ {
		bd := QuestionBreakdown{
			QuestionIndex: qi,
			Prompt:        qs[qi].Prompt,
		}

		// в фазе 1 отвечает первый игрок, в фазе 2 второй
		for _, responder := range room.Players {
			guesser := room.Partner(responder)
			answer, hasAnswer := room.SelfAnswers[models.AnswerKey{Question: qi, Player: responder}]
			guess, hasGuess := room.PartnerGuesses[models.GuessKey{Question: qi, Guesser: guesser, Target: responder}]
			if !hasAnswer || !hasGuess {
				continue
			}
			bd.Outcomes = append(bd.Outcomes, GuessOutcome{
				Responder: responder,
				Guesser:   guesser,
				Answer:    answer,
				Guess:     guess,
				Correct:   guess == answer,
			})
		}

		report.Breakdown = append(report.Breakdown, bd)
	}

	outcomes := lo.FlatMap(report.Breakdown, func(bd QuestionBreakdown, _ int) []GuessOutcome {
		return bd.Outcomes
	})
	report.TotalGuesses = len(outcomes)
	report.CorrectGuesses = lo.CountBy(outcomes, func(o GuessOutcome) bool { return o.Correct })

	if report.TotalGuesses > 0 {
		report.CompatibilityPercent = int(math.Round(
			float64(report.CorrectGuesses) / float64(report.TotalGuesses) * 100,
		))
	}
	report.Tier = TierFor(report.CompatibilityPercent)
	return report
}
