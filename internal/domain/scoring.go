package domain

import (
	"github.com/google/uuid"
)

// ContributionScore is the accumulated review-eligibility score of one user
// in one score category. A record that has never been persisted has Score 0
// and OnboardEmailSent false.
type ContributionScore struct {
	UserID           uuid.UUID
	ScoreCategory    string
	Score            int
	OnboardEmailSent bool
}

// NewContributionScore returns the zero-valued score record for a user and
// category. It is not persisted until the first qualifying acceptance.
func NewContributionScore(userID uuid.UUID, scoreCategory string) *ContributionScore {
	return &ContributionScore{
		UserID:        userID,
		ScoreCategory: scoreCategory,
	}
}

// Increment adds amount to the score. Amount must be positive; scores only
// ever grow.
func (c *ContributionScore) Increment(amount int) error {
	if amount <= 0 {
		return NewValidationError("amount", "must be positive")
	}
	c.Score += amount
	return nil
}

// CanReview reports whether the score meets the minimum required to review
// suggestions in this category.
func (c *ContributionScore) CanReview(minScore int) bool {
	return c.Score >= minScore
}

// MarkOnboardEmailSent sets the one-time onboarding flag. The flag is
// monotonic: once set it never reverts.
func (c *ContributionScore) MarkOnboardEmailSent() {
	c.OnboardEmailSent = true
}
