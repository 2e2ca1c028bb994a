package main

import (
	"context"
	"log"
	"os"
	"time"

	"log/slog"

	"github.com/joho/godotenv"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"

	"vivumarket.vn/app/internal/cache"
	apphttp "vivumarket.vn/app/internal/http"
	"vivumarket.vn/app/internal/storage"
)

func main() {
	// .env is optional; prod uses real env vars
	_ = godotenv.Load()

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))

	dsn := os.Getenv("DB_DSN")
	if dsn == "" {
		log.Fatal("DB_DSN environment variable is required")
	}

	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}

	cacheKind, cacheStore := cache.FromEnv()
	logger.Info("cache_ready", "backend", cacheKind)

	files, err := storage.FromEnv(context.Background())
	if err != nil {
		log.Fatalf("failed to init storage: %v", err)
	}
	logger.Info("storage_ready", "driver", files.Driver)

	cfg := apphttp.Config{
		SessionCookieName: envOr("SESSION_COOKIE", "vivu_session"),
		SessionSecure:     os.Getenv("SESSION_SECURE") == "1",
		SessionTTL:        14 * 24 * time.Hour,
		CarrierBaseURL:    os.Getenv("CARRIER_BASE_URL"),
		WebhookToken:      os.Getenv("CARRIER_WEBHOOK_TOKEN"),
	}

	r := apphttp.NewRouter(logger, db, cacheStore, files.Storage, cfg)

	addr := envOr("LISTEN_ADDR", ":8080")
	logger.Info("server_start", "addr", addr)
	if err := r.Run(addr); err != nil {
		log.Fatalf("server stopped: %v", err)
	}
}

func envOr(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
