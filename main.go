package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"popcorn-palace/cmd"
	"popcorn-palace/internal/event"
	"popcorn-palace/internal/wire"
	"popcorn-palace/pkg/cache"
	"popcorn-palace/pkg/utils"

	"go.uber.org/zap"
)

func main() {
	config, err := utils.LoadConfig(os.Args[1:])
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger, err := utils.InitLogger(config.App.LogPath, config.App.Name, config.App.Debug)
	if err != nil {
		log.Printf("Failed to init logger: %v. Using standard log.", err)
		logger, _ = zap.NewProduction()
	}
	defer logger.Sync()

	logger.Info("Starting application",
		zap.String("app", config.App.Name),
		zap.String("port", config.App.Port),
		zap.String("store", config.Store.Driver),
		zap.Bool("debug", config.App.Debug),
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	repo, closeStore, err := cmd.OpenStore(ctx, config, logger)
	if err != nil {
		logger.Fatal("Failed to open store", zap.Error(err))
	}
	defer closeStore()

	rdb := cache.NewRedisClient(ctx, config.Cache, logger)
	if rdb != nil {
		defer rdb.Close()
		logger.Info("Response cache enabled", zap.String("addr", config.Cache.Addr))
	}
	responseCache := cache.New(rdb, config.Cache.TTL, logger)

	var publisher event.Publisher = event.NopPublisher{}
	if config.Events.Enabled {
		amqpPublisher, err := event.NewAMQPPublisher(config.Events.URL, logger)
		if err != nil {
			logger.Warn("Event broker unavailable, events disabled", zap.Error(err))
		} else {
			publisher = amqpPublisher
			logger.Info("Event publishing enabled", zap.String("exchange", event.ExchangeName))
		}
	}
	defer publisher.Close()

	app := wire.Wiring(repo, publisher, responseCache, logger)

	if err := cmd.APIServer(ctx, app.Router, config.App.Port, config.App.ShutdownTimeout, logger); err != nil {
		logger.Error("Server stopped with error", zap.Error(err))
		return
	}
	logger.Info("Server stopped")
}
