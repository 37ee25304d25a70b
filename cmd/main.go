package main

import (
	"context"
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"github.com/footyalerts/footy-alerts/internal/clients/webpush"
	"github.com/footyalerts/footy-alerts/internal/db"
	"github.com/footyalerts/footy-alerts/internal/handlers"
	"github.com/footyalerts/footy-alerts/internal/pkg/logger"
	"github.com/footyalerts/footy-alerts/internal/repos"
	"github.com/footyalerts/footy-alerts/internal/server"
	"github.com/footyalerts/footy-alerts/internal/services"
	"github.com/footyalerts/footy-alerts/internal/squiggle"
	"github.com/footyalerts/footy-alerts/internal/utils"
)

func main() {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	logMode := os.Getenv("LOG_MODE")
	if logMode == "" {
		logMode = "development"
	}
	log, err := logger.New(logMode)
	if err != nil {
		fmt.Printf("Failed to init logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	// Squiggle asks API consumers to identify themselves.
	userAgent := utils.GetEnv("SQUIGGLE_USER_AGENT", "footyalerts.fyi", log)

	// Postgres
	postgresService, err := db.NewPostgresService(log)
	if err != nil {
		log.Fatal("Postgres init failed", "error", err)
	}
	if err := postgresService.AutoMigrateAll(); err != nil {
		log.Fatal("Postgres auto migration failed", "error", err)
	}
	thePG := postgresService.DB()

	// Repos
	gameRepo := repos.NewGameRepo(thePG, log)
	alertRepo := repos.NewAlertRepo(thePG, log)
	subscriptionRepo := repos.NewSubscriptionRepo(thePG, log)

	// Clients
	restClient := squiggle.NewRestClient(userAgent, log)
	streamClient := squiggle.NewStreamClient(userAgent, log)
	pushClient, err := webpush.NewClient(
		utils.GetEnv("NOTIFICATION_PUBLIC_KEY", "", log),
		utils.GetEnv("NOTIFICATION_PRIVATE_KEY", "", log),
		utils.GetEnv("NOTIFICATION_SUBJECT", "mailto:admin@footyalerts.fyi", log),
		log,
	)
	if err != nil {
		log.Fatal("Web push init failed", "error", err)
	}

	// Services
	notifierService := services.NewNotifierService(thePG, log, subscriptionRepo, pushClient)
	processorService := services.NewProcessorService(thePG, log, gameRepo, alertRepo, restClient, notifierService)
	gameService := services.NewGameService(thePG, log, gameRepo)
	subscriptionService := services.NewSubscriptionService(thePG, log, subscriptionRepo)

	// Event loop
	eventLoop := services.NewEventLoop(streamClient, processorService, log)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go eventLoop.Run(ctx)

	// Router
	router := server.NewRouter(server.RouterConfig{
		GameHandler:         handlers.NewGameHandler(gameService),
		SubscriptionHandler: handlers.NewSubscriptionHandler(subscriptionService),
		NotificationHandler: handlers.NewNotificationHandler(notifierService),
	})

	port := utils.GetEnv("PORT", "3000", log)
	log.Info("Server listening", "port", port)
	if err := router.Run(":" + port); err != nil {
		log.Fatal("Server failed", "error", err)
	}
}
