package server

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/footyalerts/footy-alerts/internal/handlers"
	"github.com/footyalerts/footy-alerts/internal/middleware"
)

type RouterConfig struct {
	GameHandler         *handlers.GameHandler
	SubscriptionHandler *handlers.SubscriptionHandler
	NotificationHandler *handlers.NotificationHandler
	AllowedOrigins      []string
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.Default()
	router.Use(middleware.RequestID())

	origins := cfg.AllowedOrigins
	if len(origins) == 0 {
		origins = []string{
			"https://footyalerts.fyi",
			"http://localhost:5173",
			"http://127.0.0.1:5173",
		}
	}
	router.Use(cors.New(cors.Config{
		AllowOrigins: origins,
		AllowMethods: []string{"GET", "POST", "OPTIONS"},
		AllowHeaders: []string{"Content-Type"},
	}))

	router.GET("/health", handlers.HealthCheck)
	router.GET("/games", cfg.GameHandler.ListCurrentRound)
	router.GET("/subscription", cfg.SubscriptionHandler.Get)
	router.POST("/subscription", cfg.SubscriptionHandler.Create)
	router.POST("/test_notification", cfg.NotificationHandler.SendTest)

	return router
}
