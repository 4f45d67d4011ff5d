package questions

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"sort"

	"github.com/samber/lo"

	"github.com/gnome-horoscope/match-server/internal/models"
)

// GameTypeMixed конкатенация всех категорий в фиксированном порядке
const GameTypeMixed = "mixed"

//go:embed default_questions.json
var defaultQuestions []byte

// Bank загруженный один раз каталог категорий вопросов.
// После загрузки не мутируется, поэтому читается без блокировок.
type Bank struct {
	categories map[string][]models.Question
	order      []string // отсортированные имена категорий
}

// Load читает каталог вопросов из JSON-файла. Любая ошибка загрузки
// не валит старт: банк молча откатывается на встроенный набор,
// оставляя предупреждение в логе.
func Load(path string) *Bank {
	if path != "" {
		data, err := os.ReadFile(path)
		if err == nil {
			bank, perr := parse(data)
			if perr == nil {
				log.Printf("Question bank loaded from %s (%d categories)", path, len(bank.order))
				return bank
			}
			err = perr
		}
		log.Printf("WARN: cannot load question bank from %s: %v, falling back to built-in set", path, err)
	}

	bank, err := parse(defaultQuestions)
	if err != nil {
		// встроенный набор обязан парситься
		panic(fmt.Sprintf("built-in question bank is broken: %v", err))
	}
	return bank
}

func parse(data []byte) (*Bank, error) {
	var raw map[string][]models.Question
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, err
	}
	if len(raw) == 0 {
		return nil, fmt.Errorf("question bank is empty")
	}

	bank := &Bank{categories: make(map[string][]models.Question, len(raw))}
	for category, qs := range raw {
		for i := range qs {
			qs[i].Category = category
		}
		bank.categories[category] = qs
		bank.order = append(bank.order, category)
	}
	sort.Strings(bank.order)
	return bank, nil
}

// QuestionsFor возвращает упорядоченный список вопросов для типа игры.
// mixed дает все категории подряд в детерминированном порядке,
// неизвестная категория дает пустой список.
func (b *Bank) QuestionsFor(gameType string) []models.Question {
	if gameType == GameTypeMixed {
		return lo.FlatMap(b.order, func(category string, _ int) []models.Question {
			return b.categories[category]
		})
	}
	return b.categories[gameType]
}

// Categories отсортированные имена доступных категорий
func (b *Bank) Categories() []string {
	return b.order
}
