package router

import (
	"radlands/controller"
	"radlands/middleware"
	"radlands/ws"

	"github.com/gin-gonic/gin"
)

type Controllers struct {
	Games *controller.GameController
	Cards *controller.CardController
}

// InitRouter 读接口公开，写接口需要 API token（未配置时不校验）
func InitRouter(r *gin.Engine, ctrl Controllers, hub *ws.Hub, games ws.GameViewer, apiToken string) {
	api := r.Group("/api")
	{
		api.GET("/health", controller.Health)
		api.GET("/cards", ctrl.Cards.SearchCards)
		api.GET("/games", ctrl.Games.ListGames)
		api.GET("/games/:id", ctrl.Games.GetGame)
	}

	write := api.Group("/games", middleware.AuthMiddleware(apiToken))
	{
		write.POST("", ctrl.Games.CreateGame)
		write.DELETE("/:id", ctrl.Games.DeleteGame)
		write.POST("/:id/reset", ctrl.Games.ResetGame)
		write.POST("/:id/finish", ctrl.Games.FinishGame)
		write.POST("/:id/phase/:signal", ctrl.Games.Signal)
		write.POST("/:id/events", ctrl.Games.AddEvent)
		write.DELETE("/:id/events/:player/:eventID", ctrl.Games.RemoveEvent)
		write.POST("/:id/events/:player/reset", ctrl.Games.ResetQueue)
		write.POST("/:id/water/:player/:op", ctrl.Games.AdjustWater)
		write.POST("/:id/board/:player/:column/:slot/:op", ctrl.Games.ApplyBoard)
	}

	// WebSocket 路由
	r.GET("/ws", hub.Handler(games))
}
