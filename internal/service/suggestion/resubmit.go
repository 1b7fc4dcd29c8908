package suggestion

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/heartmarshall/contribution-backend/internal/domain"
	"github.com/heartmarshall/contribution-backend/pkg/ctxutil"
)

// Resubmit puts a rejected suggestion back into review with a replacement
// change. Only the original author may resubmit. The reviewer recorded by
// the prior rejection is retained as a historical trace.
func (s *Service) Resubmit(ctx context.Context, in ResubmitInput) error {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return domain.ErrUnauthorized
	}

	if err := in.Validate(); err != nil {
		return err
	}

	sg, err := s.suggestions.GetByID(ctx, in.SuggestionID)
	if err != nil {
		return fmt.Errorf("get suggestion %s: %w", in.SuggestionID, err)
	}

	if sg.AuthorID != userID {
		return fmt.Errorf("user %s is not the author of suggestion %s: %w", userID, sg.ID, domain.ErrForbidden)
	}

	if err := sg.Resubmit(in.Change); err != nil {
		return err
	}

	if err := s.suggestions.MarkResubmitted(ctx, sg); err != nil {
		return fmt.Errorf("mark suggestion %s resubmitted: %w", sg.ID, err)
	}

	if err := s.threads.PostMessage(ctx, sg.ID, userID, domain.ThreadStatusOpen, in.Summary); err != nil {
		return fmt.Errorf("post resubmission message for suggestion %s: %w", sg.ID, err)
	}

	s.log.Info("suggestion resubmitted", "suggestion_id", sg.ID, "author_id", userID)
	return nil
}

// CanResubmit reports whether a user may resubmit a suggestion: the user is
// its author and the suggestion is currently rejected.
func (s *Service) CanResubmit(ctx context.Context, suggestionID, userID uuid.UUID) (bool, error) {
	sg, err := s.suggestions.GetByID(ctx, suggestionID)
	if err != nil {
		return false, fmt.Errorf("get suggestion %s: %w", suggestionID, err)
	}
	return sg.AuthorID == userID && sg.Status == domain.SuggestionStatusRejected, nil
}
