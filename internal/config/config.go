package config

import (
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	Port int `envconfig:"PORT" default:"8080"`

	// Путь к внешнему банку вопросов; если пусто, берется встроенный набор
	QuestionsFile string `envconfig:"QUESTIONS_FILE"`

	// Необязательные внешние сервисы
	RedisURL    string `envconfig:"REDIS_URL"`
	DatabaseURL string `envconfig:"DATABASE_URL"`

	// Токен бота для проверки подписи initData; если пусто, подпись не проверяется
	TelegramBotToken string `envconfig:"TELEGRAM_BOT_TOKEN"`

	RoomTTL       time.Duration `envconfig:"ROOM_TTL" default:"2h"`
	SweepInterval time.Duration `envconfig:"SWEEP_INTERVAL" default:"10m"`
	ResultsDelay  time.Duration `envconfig:"RESULTS_DELAY" default:"3s"`
}

func Load() (Config, error) {
	var cfg Config
	err := envconfig.Process("", &cfg)
	return cfg, err
}
