package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"go.uber.org/zap"

	"github.com/benbeisheim/draughts-backend/internal/config"
	"github.com/benbeisheim/draughts-backend/internal/controller"
	"github.com/benbeisheim/draughts-backend/internal/middleware"
	"github.com/benbeisheim/draughts-backend/internal/service"
)

func main() {
	cfgPath := flag.String("config", ".env", "path to the configuration file")
	flag.Parse()

	cfg, err := config.Load(*cfgPath)
	if err != nil {
		panic("failed to load configuration: " + err.Error())
	}
	logger := NewLogger(cfg.LogDevelopment)
	defer logger.Sync()

	rules, err := cfg.Rules()
	if err != nil {
		logger.Fatalw("invalid rules configuration", "error", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	gameManager := service.NewGameManager(rules, cfg.MatchmakingInterval, logger)
	gameService := service.NewGameService(gameManager)
	go gameManager.RunMatchmaking(ctx)

	app := fiber.New(fiber.Config{DisableStartupMessage: true})
	app.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.AllowOrigins,
		AllowHeaders:     "Origin, Content-Type, Accept, X-Player-ID",
		AllowMethods:     "GET, POST, OPTIONS",
		AllowCredentials: true,
	}))
	app.Use(middleware.RequestLogger(logger))

	controller.RegisterRoutes(
		app,
		controller.NewGameController(gameService, logger),
		controller.NewWebSocketController(gameService, logger),
		cfg.AllowOrigins,
	)

	go handleShutdown(cancel, app, logger)

	logger.Infow("server is running", "port", cfg.ServerPort, "rules", rules)
	if err := app.Listen(cfg.ServerPort); err != nil {
		logger.Fatalw("failed to start server", "error", err)
	}
}

func NewLogger(development bool) *zap.SugaredLogger {
	build := zap.NewProduction
	if development {
		build = zap.NewDevelopment
	}
	logger, err := build()
	if err != nil {
		panic("failed to initialize logger: " + err.Error())
	}
	return logger.Sugar()
}

func handleShutdown(cancelFunc context.CancelFunc, app *fiber.App, log *zap.SugaredLogger) {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	<-sigs
	log.Info("received shutdown signal")
	cancelFunc()
	if err := app.ShutdownWithTimeout(5 * time.Second); err != nil {
		log.Errorw("shutdown failed", "error", err)
	}
}
