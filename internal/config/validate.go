package config

import (
	"fmt"
)

// Validate performs business-rule validation on the loaded configuration.
// It must be called after loading; Load calls it automatically.
func (c *Config) Validate() error {
	if err := c.Suggestion.validate(); err != nil {
		return fmt.Errorf("suggestion: %w", err)
	}
	return nil
}

func (s *SuggestionConfig) validate() error {
	if s.AuthorScoreIncrement <= 0 {
		return fmt.Errorf("author_score_increment must be > 0 (got %d)", s.AuthorScoreIncrement)
	}
	if s.MinScoreToReview <= 0 {
		return fmt.Errorf("min_score_to_review must be > 0 (got %d)", s.MinScoreToReview)
	}
	if s.QueryLimit <= 0 {
		return fmt.Errorf("query_limit must be > 0 (got %d)", s.QueryLimit)
	}
	if s.StaleThreshold <= 0 {
		return fmt.Errorf("stale_threshold must be > 0 (got %v)", s.StaleThreshold)
	}
	return nil
}
