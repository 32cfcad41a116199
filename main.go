package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"

	"energy-calculator/cache"
	"energy-calculator/confs"
	"energy-calculator/db"
	"energy-calculator/logger"
	"energy-calculator/repositories"
	"energy-calculator/server"

	"go.uber.org/zap"
)

func main() {
	// load config
	cfg := confs.LoadConfig()

	zlog, err := logger.New(cfg.LogLevel)
	if err != nil {
		log.Fatalf("Error creating logger: %v", err)
	}
	defer zlog.Sync()

	var repo repositories.SessionRepository
	if cfg.SessionStore == confs.StoreMemory {
		zlog.Info("using in-memory session store")
		repo = repositories.NewSessionMemoryRepository(cache.NewSessionCache())
	} else {
		database, err := db.Connect(cfg)
		if err != nil {
			zlog.Fatal("failed to connect to session database", zap.Error(err))
		}
		defer database.Close()
		repo = repositories.NewSessionPgRepository(database)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// run server
	if err := server.NewServer(cfg, repo, zlog).Run(ctx); err != nil {
		zlog.Error("server stopped", zap.Error(err))
	}
}
