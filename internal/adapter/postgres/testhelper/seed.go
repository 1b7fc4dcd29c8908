package testhelper

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/heartmarshall/contribution-backend/internal/domain"
)

// SeedSuggestion creates an in-review edit-content suggestion with fresh ids.
// Returns the filled domain.Suggestion.
func SeedSuggestion(t *testing.T, pool *pgxpool.Pool) *domain.Suggestion {
	t.Helper()
	ctx := context.Background()

	now := time.Now().UTC().Truncate(time.Microsecond)
	s := &domain.Suggestion{
		ID:            uuid.New(),
		Type:          domain.SuggestionTypeEditContent,
		TargetType:    domain.TargetTypeExploration,
		TargetID:      uuid.New(),
		TargetVersion: 1,
		Status:        domain.SuggestionStatusInReview,
		AuthorID:      uuid.New(),
		Change: &domain.EditContentChange{
			StateName: "Intro",
			ContentID: "content",
			NewHTML:   "<p>seeded</p>",
		},
		ScoreCategory: "content.Algebra",
		CreatedAt:     now,
		LastUpdated:   now,
	}

	change, err := domain.MarshalChange(s.Change)
	if err != nil {
		t.Fatalf("testhelper: SeedSuggestion marshal change: %v", err)
	}

	_, err = pool.Exec(ctx,
		`INSERT INTO suggestions (id, suggestion_type, target_type, target_id, target_version,
		     status, author_id, final_reviewer_id, change, score_category, created_at, last_updated)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`,
		s.ID, s.Type, s.TargetType, s.TargetID, s.TargetVersion,
		s.Status, s.AuthorID, nil, change, s.ScoreCategory, s.CreatedAt, s.LastUpdated,
	)
	if err != nil {
		t.Fatalf("testhelper: SeedSuggestion insert: %v", err)
	}

	return s
}

// SeedScore creates a contribution score record.
func SeedScore(t *testing.T, pool *pgxpool.Pool, userID uuid.UUID, category string, scoreValue int, emailSent bool) *domain.ContributionScore {
	t.Helper()
	ctx := context.Background()

	c := &domain.ContributionScore{
		UserID:           userID,
		ScoreCategory:    category,
		Score:            scoreValue,
		OnboardEmailSent: emailSent,
	}

	_, err := pool.Exec(ctx,
		`INSERT INTO contribution_scores (user_id, score_category, score, onboard_email_sent)
		 VALUES ($1, $2, $3, $4)`,
		c.UserID, c.ScoreCategory, c.Score, c.OnboardEmailSent,
	)
	if err != nil {
		t.Fatalf("testhelper: SeedScore insert: %v", err)
	}

	return c
}
