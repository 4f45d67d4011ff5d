package content

import (
	"context"
	"hash/fnv"
	"time"

	"github.com/go-redis/redis/v8"
)

// Гороскопы
var horoscopeTemplates = []string{
	"Звезды советуют вам проявить инициативу! Сегодня удачный день для новых начинаний.",
	"Прислушайтесь к своей интуиции - она не подведет в важных решениях.",
	"День благоприятен для общения и установления новых контактов.",
	"Сосредоточьтесь на семейных делах, близкие нуждаются в вашей поддержке.",
	"Время проявить творческие способности! Не бойтесь экспериментировать.",
	"Практичный подход к делам принесет отличные результаты.",
	"Ищите баланс во всем - работе, отдыхе и отношениях.",
	"Глубокий анализ ситуации поможет найти неожиданное решение.",
	"Расширьте горизонты! Новые знания откроют перспективы.",
	"Терпение и настойчивость - ключ к достижению цели.",
	"Время для смелых идей и нестандартных решений!",
	"Доверьтесь течению жизни, интуиция подскажет верный путь.",
}

const cacheTTL = 24 * time.Hour

// Provider отдает гномий контент: гороскопы, карты дня, статус
// Меркурия. При наличии redis кэширует выдачу, без него просто
// генерирует заново.
type Provider struct {
	rdb *redis.Client // nil значит кэш выключен
	now func() time.Time
}

func NewProvider(rdb *redis.Client) *Provider {
	return &Provider{rdb: rdb, now: time.Now}
}

// WithClock подменяет источник времени (для тестов)
func (p *Provider) WithClock(now func() time.Time) *Provider {
	p.now = now
	return p
}

// Horoscope ответ ручки гороскопа
type Horoscope struct {
	Sign   string `json:"sign"`
	Date   string `json:"date"`
	Text   string `json:"text"`
	Cached bool   `json:"cached"`
}

// HoroscopeFor возвращает стабильный гороскоп: текст детерминирован
// хэшем от знака и даты, поэтому повторный запрос в тот же день дает
// тот же результат даже без кэша.
func (p *Provider) HoroscopeFor(ctx context.Context, sign, date string) Horoscope {
	if date == "" {
		date = p.now().UTC().Format("2006-01-02")
	}

	key := "horoscope:" + sign + ":" + date
	if p.rdb != nil {
		if text, err := p.rdb.Get(ctx, key).Result(); err == nil {
			return Horoscope{Sign: sign, Date: date, Text: text, Cached: true}
		}
	}

	h := fnv.New32a()
	h.Write([]byte(sign + date))
	text := horoscopeTemplates[h.Sum32()%uint32(len(horoscopeTemplates))]

	if p.rdb != nil {
		// ошибка записи в кэш не мешает отдать гороскоп
		_ = p.rdb.Set(ctx, key, text, cacheTTL).Err()
	}
	return Horoscope{Sign: sign, Date: date, Text: text}
}
