package suggestion

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/contribution-backend/internal/domain"
)

// GetByID returns one suggestion. Returns domain.ErrNotFound if absent.
func (s *Service) GetByID(ctx context.Context, id uuid.UUID) (*domain.Suggestion, error) {
	sg, err := s.suggestions.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get suggestion %s: %w", id, err)
	}
	return sg, nil
}

// GetMulti returns suggestions in the order of the requested ids. Absent
// entries are preserved positionally as nils.
func (s *Service) GetMulti(ctx context.Context, ids []uuid.UUID) ([]*domain.Suggestion, error) {
	suggestions, err := s.suggestions.GetMulti(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("get suggestions: %w", err)
	}
	return suggestions, nil
}

// Query returns suggestions matching every set predicate of the filter,
// capped by the configured query limit. Ordering is store-defined.
func (s *Service) Query(ctx context.Context, filter domain.SuggestionFilter) ([]*domain.Suggestion, error) {
	suggestions, err := s.suggestions.Query(ctx, filter, s.cfg.QueryLimit)
	if err != nil {
		return nil, fmt.Errorf("query suggestions: %w", err)
	}
	return suggestions, nil
}

// SubmittedByUser returns the suggestions of the given type authored by a
// user.
func (s *Service) SubmittedByUser(ctx context.Context, userID uuid.UUID, t domain.SuggestionType) ([]*domain.Suggestion, error) {
	if !t.IsValid() {
		return nil, domain.NewValidationError("type", "unknown suggestion type")
	}
	suggestions, err := s.suggestions.ByAuthorAndType(ctx, userID, t, s.cfg.QueryLimit)
	if err != nil {
		return nil, fmt.Errorf("query suggestions by author %s: %w", userID, err)
	}
	return suggestions, nil
}

// StaleIDs returns the ids of in-review suggestions with no activity for at
// least the configured threshold. Pure read, no classification state.
func (s *Service) StaleIDs(ctx context.Context) ([]uuid.UUID, error) {
	before := time.Now().Add(-s.cfg.StaleThreshold)
	ids, err := s.suggestions.StaleIDs(ctx, before)
	if err != nil {
		return nil, fmt.Errorf("query stale suggestions: %w", err)
	}
	return ids, nil
}
