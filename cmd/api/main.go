package main

import (
	"context"
	"errors"
	"log"

	"bilim-chat/config"
	"bilim-chat/internal/events"
	"bilim-chat/internal/redis"
	"bilim-chat/internal/server"
	"bilim-chat/internal/websocket"
	"bilim-chat/pkg/database"
	"bilim-chat/pkg/logger"

	"go.uber.org/zap"
)

func main() {
	cfg := config.LoadConfig()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	l := logger.New(cfg.AppMode)
	logger.SetGlobalLogger(l)
	defer l.Sync()

	if cfg.UsesDevSecret() {
		l.Warnf("JWT_SECRET is not set, using the development secret")
	}

	db, err := database.Connect(cfg)
	if err != nil {
		l.Logger.Fatal("database connection failed", zap.Error(err))
	}
	defer database.Close(db)

	if err := database.RunFullMigration(db, cfg.MigrationsDir); err != nil {
		l.Logger.Fatal("migration failed", zap.Error(err))
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	hub := websocket.NewHub()
	go hub.Run(ctx)

	var publisher events.Publisher = hub
	if cfg.RedisEnabled() {
		client, err := redis.Connect(ctx, redis.Config{
			Host:     cfg.RedisHost,
			Port:     cfg.RedisPort,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		if err != nil {
			l.Logger.Fatal("redis connection failed", zap.Error(err))
		}
		defer client.Close()

		publisher = redis.NewPublisher(client)
		bridge := websocket.NewRedisBridge(redis.NewSubscriber(client), hub)
		go func() {
			if err := bridge.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
				l.Logger.Error("redis bridge stopped", zap.Error(err))
			}
		}()
		l.Infof("Realtime events fan out through redis at %s:%s", cfg.RedisHost, cfg.RedisPort)
	}

	handlers, tokens := server.NewHandlers(cfg, l, server.Dependencies{
		DB:        db,
		Publisher: publisher,
		Hub:       hub,
	})

	srv := server.New(cfg, l)
	srv.SetupRoutes(handlers, tokens)
	if err := srv.Start(); err != nil {
		l.Errorf("Server exited: %s", err)
	}
}
