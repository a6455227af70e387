package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	deliverypostgres "github.com/civicGenAi/tanzania-fish-hub-sub001/internal/domains/deliveries/adapters/persistence/postgres"
	platformpostgres "github.com/civicGenAi/tanzania-fish-hub-sub001/internal/platform/postgres"
)

const defaultRetentionDays = 90

func main() {
	_ = godotenv.Load()
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	db, cleanup := platformpostgres.ConnectFromEnv(ctx, logger)
	defer cleanup()
	if db == nil {
		log.Fatal("POSTGRES_DSN not set or connection failed; cannot purge tracking points")
	}

	cutoff := time.Now().AddDate(0, 0, -retentionDaysFromEnv())
	repo := deliverypostgres.NewRepository(db)
	purged, err := repo.PurgeTrackingBefore(ctx, cutoff)
	if err != nil {
		log.Fatalf("failed to purge tracking points: %v", err)
	}
	log.Printf("tracking purge completed: %d points removed before %s", purged, cutoff.Format(time.RFC3339))
}

func retentionDaysFromEnv() int {
	raw := strings.TrimSpace(os.Getenv("TRACKING_RETENTION_DAYS"))
	if raw == "" {
		return defaultRetentionDays
	}
	days, err := strconv.Atoi(raw)
	if err != nil || days <= 0 {
		return defaultRetentionDays
	}
	return days
}
