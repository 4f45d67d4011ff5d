package content

import (
	"context"
	"encoding/json"
	"math/rand"
)

// Карты дня
var dayCards = []DayCard{
	{Title: "Гном-авантюрист", Text: "Сегодня время для смелых решений! Не бойся рискнуть - фортуна любит храбрых."},
	{Title: "Гном-повар", Text: "День для заботы о своем теле и душе. Приготовь что-то вкусное или побалуй себя."},
	{Title: "Гном-садовник", Text: "Время посадить семена будущих успехов. Небольшие действия сегодня принесут большие плоды."},
	{Title: "Гном-изобретатель", Text: "Креативность зашкаливает сегодня! Придумай что-то новое или реши задачу нестандартным способом."},
	{Title: "Гном-музыкант", Text: "Найди свой ритм дня. Включи любимую музыку и позволь мелодии вести тебя к успеху."},
	{Title: "Гном-философ", Text: "Размышления принесут ясность. Уделите время анализу своих целей и желаний."},
	{Title: "Гном-путешественник", Text: "Новые места и впечатления ждут! Даже короткая прогулка может стать приключением."},
	{Title: "Гном-мастер", Text: "Руки помнят мудрость. Займитесь любимым делом или освойте новый навык."},
}

// DayCard карта дня для пользователя
type DayCard struct {
	Title  string `json:"title"`
	Text   string `json:"text"`
	Date   string `json:"date,omitempty"`
	Reused bool   `json:"reused"`
}

// DayCardFor выдает пользователю одну карту в день: повторный запрос
// в тот же день возвращает сохраненную в кэше карту с reused=true.
// Без redis карта каждый раз новая.
func (p *Provider) DayCardFor(ctx context.Context, userID string) DayCard {
	date := p.now().UTC().Format("2006-01-02")
	key := "daycard:" + userID + ":" + date

	if p.rdb != nil && userID != "" {
		if raw, err := p.rdb.Get(ctx, key).Result(); err == nil {
			var card DayCard
			if json.Unmarshal([]byte(raw), &card) == nil {
				card.Reused = true
				card.Date = date
				return card
			}
		}
	}

	card := dayCards[rand.Intn(len(dayCards))]
	card.Date = date

	if p.rdb != nil && userID != "" {
		if raw, err := json.Marshal(card); err == nil {
			_ = p.rdb.Set(ctx, key, raw, cacheTTL).Err()
		}
	}
	return card
}
