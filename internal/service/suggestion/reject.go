package suggestion

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/heartmarshall/contribution-backend/internal/domain"
	"github.com/heartmarshall/contribution-backend/pkg/ctxutil"
)

// Reject rejects a single suggestion. It is a one-element RejectMany and
// shares its all-or-nothing contract.
func (s *Service) Reject(ctx context.Context, suggestionID uuid.UUID, reviewMessage string) error {
	return s.RejectMany(ctx, RejectInput{
		SuggestionIDs: []uuid.UUID{suggestionID},
		ReviewMessage: reviewMessage,
	})
}

// RejectMany rejects a batch of suggestions. The whole batch is validated
// against a consistent read inside one transaction before any write: one
// missing or already-handled id aborts the entire batch with no partial
// effect. The acting user from the context becomes the final reviewer.
func (s *Service) RejectMany(ctx context.Context, in RejectInput) error {
	reviewerID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return domain.ErrUnauthorized
	}
	return s.rejectMany(ctx, in, reviewerID)
}

func (s *Service) rejectMany(ctx context.Context, in RejectInput, reviewerID uuid.UUID) error {
	if err := in.Validate(); err != nil {
		return err
	}

	var rejected []*domain.Suggestion
	err := s.tx.RunInTx(ctx, func(ctx context.Context) error {
		suggestions, err := s.suggestions.GetMulti(ctx, in.SuggestionIDs)
		if err != nil {
			return fmt.Errorf("get suggestions: %w", err)
		}

		for i, sg := range suggestions {
			if sg == nil {
				return fmt.Errorf("suggestion %s: %w", in.SuggestionIDs[i], domain.ErrNotFound)
			}
			if sg.IsHandled() {
				return fmt.Errorf("suggestion %s: %w", sg.ID, domain.ErrAlreadyHandled)
			}
		}

		for _, sg := range suggestions {
			if err := sg.MarkRejected(reviewerID); err != nil {
				return err
			}
		}

		if err := s.suggestions.MarkHandledMulti(ctx, suggestions, true); err != nil {
			return fmt.Errorf("mark suggestions rejected: %w", err)
		}
		rejected = suggestions
		return nil
	})
	if err != nil {
		return err
	}

	threadIDs := make([]uuid.UUID, len(rejected))
	for i, sg := range rejected {
		threadIDs[i] = sg.ID
	}
	if err := s.threads.PostMessages(ctx, threadIDs, reviewerID, domain.ThreadStatusIgnored, in.ReviewMessage); err != nil {
		return fmt.Errorf("post rejection messages: %w", err)
	}

	s.log.Info("suggestions rejected", "count", len(rejected), "reviewer_id", reviewerID)
	return nil
}
