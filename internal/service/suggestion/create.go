package suggestion

import (
	"context"
	"fmt"
	"strings"

	"github.com/heartmarshall/contribution-backend/internal/domain"
	"github.com/heartmarshall/contribution-backend/pkg/ctxutil"
)

// Create submits a new suggestion. It validates the change against the
// current target content, opens a discussion thread whose id becomes the
// suggestion id, and persists the record with status IN_REVIEW. The acting
// user from the context becomes the author.
func (s *Service) Create(ctx context.Context, in CreateInput) (*domain.Suggestion, error) {
	authorID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	if err := in.Validate(); err != nil {
		return nil, err
	}

	content, err := s.content.Fetch(ctx, in.TargetID)
	if err != nil {
		return nil, fmt.Errorf("fetch target %s: %w", in.TargetID, err)
	}

	// Translations are authored against a snapshot of the source content.
	// If the live content has moved on, the translation is already stale
	// and must not enter review.
	if tc, ok := in.Change.(*domain.TranslationChange); ok {
		current, found := content.ContentHTML(tc.StateName, tc.ContentID)
		if !found {
			return nil, fmt.Errorf("content %s/%s not found in target %s: %w",
				tc.StateName, tc.ContentID, in.TargetID, domain.ErrNotFound)
		}
		if current != tc.ContentHTML {
			return nil, fmt.Errorf("content %s/%s changed since the translation was authored: %w",
				tc.StateName, tc.ContentID, domain.ErrContentMismatch)
		}
	}

	scoreCategory, err := domain.ScoreCategoryFor(in.Type, content.Category, in.TargetID)
	if err != nil {
		return nil, err
	}

	subject := strings.TrimSpace(in.Description)
	if subject == "" {
		subject = DefaultThreadSubject
	}
	threadID, err := s.threads.Open(ctx, in.TargetType, in.TargetID, authorID, subject, "", true)
	if err != nil {
		return nil, fmt.Errorf("open thread: %w", err)
	}

	sg := &domain.Suggestion{
		ID:            threadID,
		Type:          in.Type,
		TargetType:    in.TargetType,
		TargetID:      in.TargetID,
		TargetVersion: in.TargetVersion,
		Status:        domain.SuggestionStatusInReview,
		AuthorID:      authorID,
		Change:        in.Change,
		ScoreCategory: scoreCategory,
	}
	if err := sg.Validate(); err != nil {
		return nil, err
	}

	if err := s.suggestions.Create(ctx, sg); err != nil {
		return nil, fmt.Errorf("create suggestion %s: %w", sg.ID, err)
	}

	s.log.Info("suggestion created",
		"suggestion_id", sg.ID,
		"type", sg.Type,
		"target_id", sg.TargetID,
		"score_category", sg.ScoreCategory,
	)

	return sg, nil
}
