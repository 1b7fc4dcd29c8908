// Package score implements the ContributionScore repository using PostgreSQL.
package score

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/heartmarshall/contribution-backend/internal/adapter/postgres"
	"github.com/heartmarshall/contribution-backend/internal/domain"
)

// Repo provides contribution score persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new contribution score repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

const getSQL = `
SELECT user_id, score_category, score, onboard_email_sent
FROM contribution_scores
WHERE user_id = $1 AND score_category = $2`

// upsertSQL keeps onboard_email_sent monotonic at the storage level: a
// concurrent writer can set it but nothing can clear it.
const upsertSQL = `
INSERT INTO contribution_scores (user_id, score_category, score, onboard_email_sent)
VALUES ($1, $2, $3, $4)
ON CONFLICT (user_id, score_category) DO UPDATE
SET score = EXCLUDED.score,
    onboard_email_sent = contribution_scores.onboard_email_sent OR EXCLUDED.onboard_email_sent,
    updated_at = now()`

const categoriesAboveSQL = `
SELECT score_category
FROM contribution_scores
WHERE user_id = $1 AND score >= $2
ORDER BY score_category`

const usersAboveSQL = `
SELECT user_id
FROM contribution_scores
WHERE score_category = $1 AND score >= $2`

const allForUserSQL = `
SELECT user_id, score_category, score, onboard_email_sent
FROM contribution_scores
WHERE user_id = $1
ORDER BY score_category`

// Get returns the score record for one (user, category) pair or
// domain.ErrNotFound.
func (r *Repo) Get(ctx context.Context, userID uuid.UUID, scoreCategory string) (*domain.ContributionScore, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	var c domain.ContributionScore
	err := querier.QueryRow(ctx, getSQL, userID, scoreCategory).
		Scan(&c.UserID, &c.ScoreCategory, &c.Score, &c.OnboardEmailSent)
	if err != nil {
		return nil, mapError(err, userID)
	}
	return &c, nil
}

// Upsert creates or replaces the score record. The onboarding flag can only
// grow; see upsertSQL.
func (r *Repo) Upsert(ctx context.Context, c *domain.ContributionScore) error {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	_, err := querier.Exec(ctx, upsertSQL, c.UserID, c.ScoreCategory, c.Score, c.OnboardEmailSent)
	if err != nil {
		return mapError(err, c.UserID)
	}
	return nil
}

// CategoriesAboveScore returns every category in which the user's score is
// at least minScore.
func (r *Repo) CategoriesAboveScore(ctx context.Context, userID uuid.UUID, minScore int) ([]string, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	rows, err := querier.Query(ctx, categoriesAboveSQL, userID, minScore)
	if err != nil {
		return nil, fmt.Errorf("categories above score: %w", err)
	}
	defer rows.Close()

	var categories []string
	for rows.Next() {
		var c string
		if err := rows.Scan(&c); err != nil {
			return nil, fmt.Errorf("scan score category: %w", err)
		}
		categories = append(categories, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate score categories: %w", err)
	}
	return categories, nil
}

// UsersWithScoreAtLeast returns every user whose score in the category is at
// least minScore.
func (r *Repo) UsersWithScoreAtLeast(ctx context.Context, scoreCategory string, minScore int) ([]uuid.UUID, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	rows, err := querier.Query(ctx, usersAboveSQL, scoreCategory, minScore)
	if err != nil {
		return nil, fmt.Errorf("users with score at least: %w", err)
	}
	defer rows.Close()

	var ids []uuid.UUID
	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan user id: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate user ids: %w", err)
	}
	return ids, nil
}

// AllForUser returns every score record of one user.
func (r *Repo) AllForUser(ctx context.Context, userID uuid.UUID) ([]domain.ContributionScore, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	rows, err := querier.Query(ctx, allForUserSQL, userID)
	if err != nil {
		return nil, fmt.Errorf("all scores for user: %w", err)
	}
	defer rows.Close()

	var scores []domain.ContributionScore
	for rows.Next() {
		var c domain.ContributionScore
		if err := rows.Scan(&c.UserID, &c.ScoreCategory, &c.Score, &c.OnboardEmailSent); err != nil {
			return nil, fmt.Errorf("scan contribution score: %w", err)
		}
		scores = append(scores, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate contribution scores: %w", err)
	}
	return scores, nil
}

// mapError converts pgx/pgconn errors into domain errors.
func mapError(err error, id uuid.UUID) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return fmt.Errorf("contribution score %s: %w", id, err)
	}

	if errors.Is(err, pgx.ErrNoRows) {
		return fmt.Errorf("contribution score %s: %w", id, domain.ErrNotFound)
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "23505": // unique_violation
			return fmt.Errorf("contribution score %s: %w", id, domain.ErrAlreadyExists)
		case "23514": // check_violation
			return fmt.Errorf("contribution score %s: %w", id, domain.ErrValidation)
		}
	}

	return fmt.Errorf("contribution score %s: %w", id, err)
}
