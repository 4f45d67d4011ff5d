package models

// Option один вариант ответа на вопрос
type Option struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Emoji string `json:"emoji,omitempty"`
}

// Question неизменяемый вопрос из банка вопросов.
// Загружается один раз при старте и дальше не мутируется.
type Question struct {
	ID       int      `json:"id"`
	Prompt   string   `json:"question"`              // формулировка для угадывающего ("...выберет ваш партнёр?")
	SelfText string   `json:"question_self,omitempty"` // формулировка для отвечающего ("...выберете вы?")
	Options  []Option `json:"options"`
	Category string   `json:"-"`
}

// SelfPrompt формулировка вопроса для роли "отвечающий";
// при отсутствии отдельной формулировки используется общая.
func (q Question) SelfPrompt() string {
	if q.SelfText != "" {
		return q.SelfText
	}
	return q.Prompt
}

// HasOption проверяет, что выбранный вариант существует
func (q Question) HasOption(id string) bool {
	for _, o := range q.Options {
		if o.ID == id {
			return true
		}
	}
	return false
}
