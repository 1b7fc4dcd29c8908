// Package scoring implements the reviewer eligibility engine: contribution
// score accumulation, the minimum-score gate on who may review a category,
// and the one-time onboarding notification for newly eligible reviewers.
package scoring

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/heartmarshall/contribution-backend/internal/config"
	"github.com/heartmarshall/contribution-backend/internal/domain"
)

// ---------------------------------------------------------------------------
// Consumer-defined interfaces (private)
// ---------------------------------------------------------------------------

type scoreRepo interface {
	Get(ctx context.Context, userID uuid.UUID, scoreCategory string) (*domain.ContributionScore, error)
	Upsert(ctx context.Context, c *domain.ContributionScore) error
	CategoriesAboveScore(ctx context.Context, userID uuid.UUID, minScore int) ([]string, error)
	UsersWithScoreAtLeast(ctx context.Context, scoreCategory string, minScore int) ([]uuid.UUID, error)
	AllForUser(ctx context.Context, userID uuid.UUID) ([]domain.ContributionScore, error)
}

type notifier interface {
	NotifyNewReviewerEligible(ctx context.Context, userID uuid.UUID, scoreCategory string) error
}

// ---------------------------------------------------------------------------
// Service
// ---------------------------------------------------------------------------

// Service implements the reviewer eligibility logic.
type Service struct {
	log      *slog.Logger
	scores   scoreRepo
	notifier notifier
	cfg      config.SuggestionConfig
}

// NewService creates a new Scoring service.
func NewService(
	logger *slog.Logger,
	scores scoreRepo,
	notifier notifier,
	cfg config.SuggestionConfig,
) *Service {
	return &Service{
		log:      logger.With("service", "scoring"),
		scores:   scores,
		notifier: notifier,
		cfg:      cfg,
	}
}

// GetOrDefault returns the score record for (user, category), or a
// zero-initialized unpersisted record if none exists. Never writes.
func (s *Service) GetOrDefault(ctx context.Context, userID uuid.UUID, scoreCategory string) (*domain.ContributionScore, error) {
	record, err := s.scores.Get(ctx, userID, scoreCategory)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.NewContributionScore(userID, scoreCategory), nil
		}
		return nil, fmt.Errorf("get contribution score: %w", err)
	}
	return record, nil
}

// RecordAcceptance awards the author score increment for one accepted
// suggestion. If the post-increment score newly crosses the review threshold
// and the onboarding notification has not yet been sent for this category,
// the notification is dispatched and the sent-flag set, all before the record
// is persisted.
func (s *Service) RecordAcceptance(ctx context.Context, userID uuid.UUID, scoreCategory string) error {
	record, err := s.GetOrDefault(ctx, userID, scoreCategory)
	if err != nil {
		return err
	}

	if err := record.Increment(s.cfg.AuthorScoreIncrement); err != nil {
		return err
	}

	if s.cfg.SendReviewerOnboardingEmails &&
		record.CanReview(s.cfg.MinScoreToReview) && !record.OnboardEmailSent {
		if err := s.notifier.NotifyNewReviewerEligible(ctx, userID, scoreCategory); err != nil {
			return fmt.Errorf("notify new reviewer: %w", err)
		}
		record.MarkOnboardEmailSent()

		s.log.InfoContext(ctx, "reviewer onboarding notification sent",
			slog.String("user_id", userID.String()),
			slog.String("score_category", scoreCategory),
		)
	}

	if err := s.scores.Upsert(ctx, record); err != nil {
		return fmt.Errorf("persist contribution score: %w", err)
	}

	s.log.DebugContext(ctx, "contribution score incremented",
		slog.String("user_id", userID.String()),
		slog.String("score_category", scoreCategory),
		slog.Int("score", record.Score),
	)

	return nil
}

// CanReview reports whether the user's score in the category meets the
// review threshold.
func (s *Service) CanReview(ctx context.Context, userID uuid.UUID, scoreCategory string) (bool, error) {
	record, err := s.GetOrDefault(ctx, userID, scoreCategory)
	if err != nil {
		return false, err
	}
	return record.CanReview(s.cfg.MinScoreToReview), nil
}

// EligibleReviewers returns every user allowed to review the category.
func (s *Service) EligibleReviewers(ctx context.Context, scoreCategory string) ([]uuid.UUID, error) {
	ids, err := s.scores.UsersWithScoreAtLeast(ctx, scoreCategory, s.cfg.MinScoreToReview)
	if err != nil {
		return nil, fmt.Errorf("eligible reviewers: %w", err)
	}
	return ids, nil
}

// CategoriesReviewableBy returns every category the user may review.
func (s *Service) CategoriesReviewableBy(ctx context.Context, userID uuid.UUID) ([]string, error) {
	categories, err := s.scores.CategoriesAboveScore(ctx, userID, s.cfg.MinScoreToReview)
	if err != nil {
		return nil, fmt.Errorf("categories reviewable by user: %w", err)
	}
	return categories, nil
}

// AllScoresOf returns a category → score map of all the user's scores.
func (s *Service) AllScoresOf(ctx context.Context, userID uuid.UUID) (map[string]int, error) {
	records, err := s.scores.AllForUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("all scores of user: %w", err)
	}

	scores := make(map[string]int, len(records))
	for _, r := range records {
		scores[r.ScoreCategory] = r.Score
	}
	return scores, nil
}
