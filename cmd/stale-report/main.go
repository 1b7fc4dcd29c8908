// Command stale-report prints the ids of in-review suggestions with no
// activity for at least the configured staleness threshold, one per line.
// Staleness is a pure read-side classification; nothing is mutated. It is
// intended to be invoked by an external cron job.
//
// Exit codes: 0 = success, 1 = error.
package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"os"
	"time"

	"github.com/heartmarshall/contribution-backend/internal/adapter/postgres"
	suggestionrepo "github.com/heartmarshall/contribution-backend/internal/adapter/postgres/suggestion"
	"github.com/heartmarshall/contribution-backend/internal/app"
	"github.com/heartmarshall/contribution-backend/internal/config"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	logger := app.NewLogger(cfg.Log)

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	pool, err := postgres.NewPool(ctx, cfg.Database)
	if err != nil {
		logger.Error("connect to database", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer pool.Close()

	repo := suggestionrepo.New(pool)

	before := time.Now().Add(-cfg.Suggestion.StaleThreshold)
	ids, err := repo.StaleIDs(ctx, before)
	if err != nil {
		logger.Error("query stale suggestions",
			slog.String("error", err.Error()),
			slog.Time("before", before),
		)
		os.Exit(1)
	}

	for _, id := range ids {
		fmt.Println(id)
	}

	logger.Info("stale suggestion report completed",
		slog.Int("count", len(ids)),
		slog.Time("before", before),
	)
}
