package main

import (
	"context"
	"fmt"
	"log"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/joho/godotenv"

	"github.com/gnome-horoscope/match-server/internal/config"
	"github.com/gnome-horoscope/match-server/internal/content"
	"github.com/gnome-horoscope/match-server/internal/database"
	"github.com/gnome-horoscope/match-server/internal/game"
	"github.com/gnome-horoscope/match-server/internal/handlers"
	"github.com/gnome-horoscope/match-server/internal/questions"
	"github.com/gnome-horoscope/match-server/internal/websocket"
	"github.com/gnome-horoscope/match-server/pkg/telegram"
)

type Server struct {
	Router *gin.Engine
	Config config.Config
	Engine *game.Engine
	Hub    *websocket.Hub

	cancel context.CancelFunc
}

func NewServer() *Server {
	if err := godotenv.Load(".env.local"); err != nil {
		if err := godotenv.Load(); err != nil {
			log.Println(".env not found, using environment variables")
		}
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}

	// redis не обязателен: без него кэш контента просто выключен
	var rdb *redis.Client
	if cfg.RedisURL != "" {
		opts, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			log.Fatalf("invalid REDIS_URL: %v", err)
		}
		rdb = redis.NewClient(opts)
		if err := rdb.Ping(context.Background()).Err(); err != nil {
			log.Fatalf("Redis connect failed: %v", err)
		}
	} else {
		log.Println("REDIS_URL not set, content cache disabled")
	}

	// postgres не обязателен: без него избранное живет в памяти
	var favorites database.FavoriteStore
	if cfg.DatabaseURL != "" {
		db, err := database.Connect(cfg.DatabaseURL)
		if err != nil {
			log.Fatalf("Postgres connect failed: %v", err)
		}
		favorites = db
	} else {
		log.Println("DATABASE_URL not set, favorites are in-memory only")
		favorites = database.NewMemoryFavorites()
	}

	bank := questions.Load(cfg.QuestionsFile)

	hub := websocket.NewHub()
	go hub.Run()

	store := game.NewStore()
	engine := game.NewEngine(store, bank, hub, cfg.ResultsDelay)

	ctx, cancel := context.WithCancel(context.Background())
	store.StartSweeper(ctx, cfg.SweepInterval, cfg.RoomTTL)

	provider := content.NewProvider(rdb)
	validator := telegram.NewValidator(cfg.TelegramBotToken)

	roomH := handlers.NewRoomHandler(engine)
	wsH := handlers.NewWebSocketHandler(hub, engine)
	contentH := handlers.NewContentHandler(provider, validator)
	favH := handlers.NewFavoritesHandler(favorites, validator)

	router := gin.Default()
	APIEndpoints(router, roomH, wsH, contentH, favH)

	return &Server{
		Router: router,
		Config: cfg,
		Engine: engine,
		Hub:    hub,
		cancel: cancel,
	}
}

func (s *Server) Run() {
	addr := fmt.Sprintf(":%d", s.Config.Port)
	log.Printf("Server starting on %s", addr)
	if err := s.Router.Run(addr); err != nil {
		log.Fatalf("Server run error: %v", err)
	}
}

// Shutdown останавливает фоновые задачи и push-каналы
func (s *Server) Shutdown() {
	s.cancel()
	s.Hub.Stop()
}
