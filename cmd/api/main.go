package main

import (
	"context"
	"log"
	"log/slog"
	"os"

	"github.com/joho/godotenv"

	"aydamarket.com/api/internal/config"
	apphttp "aydamarket.com/api/internal/http"
	"aydamarket.com/api/internal/storage"
	"aydamarket.com/api/internal/store"
)

func main() {
	// Load .env file (ignore error if not found - prod uses real env vars)
	_ = godotenv.Load()

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))

	cfg, err := config.FromEnv()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	st, err := store.FromConfig(cfg)
	if err != nil {
		log.Fatalf("store: %v", err)
	}

	blobs, err := storage.FromConfig(context.Background(), cfg)
	if err != nil {
		log.Fatalf("storage: %v", err)
	}
	logger.Info("starting api",
		"addr", cfg.HTTPAddr,
		"store", st.Driver,
		"storage", blobs.Driver,
	)

	r := apphttp.NewRouter(logger, cfg, st, blobs.Storage)
	if err := r.Run(cfg.HTTPAddr); err != nil {
		log.Fatalf("server: %v", err)
	}
}
