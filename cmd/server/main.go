// Package main is the entry point for the blog server. Its job is limited
// to the composition root: read configuration, build the logger, connect to
// the store, and start the server. All real logic lives in internal/.
package main

import (
	"context"
	"log/slog"
	"os"
	"time"

	"github.com/chhitz007/Blog-Posts/internal/config"
	"github.com/chhitz007/Blog-Posts/internal/repository/mongodb"
	"github.com/chhitz007/Blog-Posts/internal/server"
)

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	}))

	cfg := config.Load()
	if cfg.UsingDefaultSecret() {
		logger.Warn("SESSION_SECRET not set — using an insecure default, do not deploy like this")
	}

	// Fail fast on a bad store URI instead of on the first request.
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	store, err := mongodb.Connect(ctx, cfg.MongoURI, cfg.MongoDatabase)
	if err != nil {
		logger.Error("failed to connect to MongoDB",
			slog.String("uri", cfg.MongoURI),
			slog.String("error", err.Error()),
		)
		os.Exit(1)
	}

	srv, err := server.New(cfg, logger, store)
	if err != nil {
		logger.Error("failed to create server", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Start blocks until the server is shut down via SIGINT/SIGTERM.
	if err := srv.Start(); err != nil {
		logger.Error("server error", slog.String("error", err.Error()))
		os.Exit(1)
	}
}
