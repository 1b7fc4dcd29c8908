// Command auto-reject rejects every in-review question suggestion targeting
// a deleted skill, acting as the system reviewer. It is intended to be
// invoked by an external cron job after skill deletion; the enclosing
// application is responsible for posting the rejection messages to the
// discussion threads of the reported ids.
//
// Usage: auto-reject <skill-id>
//
// Exit codes: 0 = success, 1 = error, 2 = bad arguments.
package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"os"
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/contribution-backend/internal/adapter/postgres"
	suggestionrepo "github.com/heartmarshall/contribution-backend/internal/adapter/postgres/suggestion"
	"github.com/heartmarshall/contribution-backend/internal/app"
	"github.com/heartmarshall/contribution-backend/internal/config"
	"github.com/heartmarshall/contribution-backend/internal/domain"
	"github.com/heartmarshall/contribution-backend/internal/service/suggestion"
)

func main() {
	if len(os.Args) != 2 {
		fmt.Fprintln(os.Stderr, "usage: auto-reject <skill-id>")
		os.Exit(2)
	}
	skillID, err := uuid.Parse(os.Args[1])
	if err != nil {
		fmt.Fprintf(os.Stderr, "invalid skill id %q: %v\n", os.Args[1], err)
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	logger := app.NewLogger(cfg.Log)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	pool, err := postgres.NewPool(ctx, cfg.Database)
	if err != nil {
		logger.Error("connect to database", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer pool.Close()

	repo := suggestionrepo.New(pool)
	tx := postgres.NewTxManager(pool)

	t := domain.SuggestionTypeAddQuestion
	status := domain.SuggestionStatusInReview
	pending, err := repo.Query(ctx, domain.SuggestionFilter{
		Type:     &t,
		TargetID: &skillID,
		Status:   &status,
	}, cfg.Suggestion.QueryLimit)
	if err != nil {
		logger.Error("query question suggestions",
			slog.String("error", err.Error()),
			slog.String("skill_id", skillID.String()),
		)
		os.Exit(1)
	}

	if len(pending) == 0 {
		logger.Info("no question suggestions to reject", slog.String("skill_id", skillID.String()))
		return
	}

	for _, sg := range pending {
		if err := sg.MarkRejected(suggestion.SuggestionBotUserID); err != nil {
			logger.Error("mark suggestion rejected",
				slog.String("error", err.Error()),
				slog.String("suggestion_id", sg.ID.String()),
			)
			os.Exit(1)
		}
	}

	err = tx.RunInTx(ctx, func(ctx context.Context) error {
		// Background cleanup does not refresh last_updated.
		return repo.MarkHandledMulti(ctx, pending, false)
	})
	if err != nil {
		logger.Error("reject question suggestions",
			slog.String("error", err.Error()),
			slog.String("skill_id", skillID.String()),
		)
		os.Exit(1)
	}

	for _, sg := range pending {
		fmt.Println(sg.ID)
	}

	logger.Info("question suggestions rejected",
		slog.Int("count", len(pending)),
		slog.String("skill_id", skillID.String()),
		slog.String("reject_message", suggestion.DeletedSkillRejectMessage),
	)
}
