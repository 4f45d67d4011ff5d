package main

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/gnome-horoscope/match-server/internal/handlers"
)

func APIEndpoints(
	r *gin.Engine,
	roomH *handlers.RoomHandler,
	wsH *handlers.WebSocketHandler,
	contentH *handlers.ContentHandler,
	favH *handlers.FavoritesHandler,
) {
	// Mini App открывается с любого origin'а
	r.Use(cors.New(cors.Config{
		AllowAllOrigins:  true,
		AllowMethods:     []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type"},
		AllowCredentials: false,
	}))

	r.GET("/", contentH.Root)
	r.GET("/health", contentH.Health)

	api := r.Group("/api")
	{
		api.GET("/horoscope", contentH.Horoscope)
		api.POST("/day-card", contentH.DayCard)
		api.GET("/mercury", contentH.Mercury)

		api.POST("/favorites", favH.AddFavorite)
		api.GET("/favorites", favH.ListFavorites)
		api.DELETE("/favorites/:id", favH.DeleteFavorite)

		rooms := api.Group("/game/rooms")
		{
			rooms.POST("", roomH.CreateRoom)
			rooms.POST("/:code/join", roomH.JoinRoom)
			rooms.GET("/:code", roomH.RoomStatus)
			rooms.GET("/:code/question", roomH.CurrentQuestion)
			rooms.POST("/:code/answer", roomH.SubmitAnswer)
			rooms.GET("/:code/results", roomH.GameResults)
			rooms.GET("/:code/ws", wsH.HandleWebSocket)
		}
	}
}
