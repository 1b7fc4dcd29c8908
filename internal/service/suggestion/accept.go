package suggestion

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/heartmarshall/contribution-backend/internal/domain"
	"github.com/heartmarshall/contribution-backend/pkg/ctxutil"
)

// Accept applies a suggestion to its target content. The acting user from
// the context becomes the final reviewer. All validation runs before any
// state is mutated; the terminal-status write is conditional, so of two
// concurrent accepts exactly one wins and the other gets ErrAlreadyHandled.
func (s *Service) Accept(ctx context.Context, in AcceptInput) error {
	reviewerID, ok := ctxutil.UserIDFromCtx(ctx)
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

	if sg.IsHandled() {
		return fmt.Errorf("suggestion %s: %w", sg.ID, domain.ErrAlreadyHandled)
	}

	if err := s.preAcceptValidate(ctx, sg); err != nil {
		return err
	}

	for _, html := range sg.AllHTMLContent() {
		if violations := s.markup.FindUnsafeMathMarkup(html); len(violations) > 0 {
			return fmt.Errorf("suggestion %s contains unsafe markup (%s): %w",
				sg.ID, strings.Join(violations, "; "), domain.ErrContentPolicy)
		}
	}

	if err := sg.MarkAccepted(reviewerID); err != nil {
		return err
	}

	commitMessage, err := s.acceptedCommitMessage(ctx, sg.AuthorID, in.CommitMessage)
	if err != nil {
		return err
	}

	// The conditional terminal-status write is the serialization point:
	// everything after it runs only for the winning accept.
	if err := s.suggestions.MarkHandled(ctx, sg, true); err != nil {
		return fmt.Errorf("mark suggestion %s accepted: %w", sg.ID, err)
	}

	if err := s.content.ApplyChange(ctx, sg.TargetID, sg.Change, commitMessage); err != nil {
		return fmt.Errorf("apply suggestion %s to target %s: %w", sg.ID, sg.TargetID, err)
	}

	if err := s.threads.PostMessage(ctx, sg.ID, reviewerID, domain.ThreadStatusFixed, in.ReviewMessage); err != nil {
		return fmt.Errorf("post acceptance message for suggestion %s: %w", sg.ID, err)
	}

	s.log.Info("suggestion accepted",
		"suggestion_id", sg.ID,
		"reviewer_id", reviewerID,
		"score_category", sg.ScoreCategory,
	)

	if s.cfg.EnableScoreRecording {
		if err := s.scoring.RecordAcceptance(ctx, sg.AuthorID, sg.ScoreCategory); err != nil {
			// The suggestion is already accepted; the score delta can be
			// re-derived from accepted suggestions, so surface but do not
			// roll back.
			return fmt.Errorf("record acceptance for suggestion %s: %w", sg.ID, err)
		}
	}

	return nil
}

// preAcceptValidate runs the variant-specific sanity checks against the
// live target content.
func (s *Service) preAcceptValidate(ctx context.Context, sg *domain.Suggestion) error {
	switch c := sg.Change.(type) {
	case *domain.EditContentChange:
		content, err := s.content.Fetch(ctx, sg.TargetID)
		if err != nil {
			return fmt.Errorf("fetch target %s: %w", sg.TargetID, err)
		}
		if _, found := content.ContentHTML(c.StateName, c.ContentID); !found {
			return fmt.Errorf("content %s/%s no longer exists in target %s: %w",
				c.StateName, c.ContentID, sg.TargetID, domain.ErrNotFound)
		}
	case *domain.TranslationChange:
		content, err := s.content.Fetch(ctx, sg.TargetID)
		if err != nil {
			return fmt.Errorf("fetch target %s: %w", sg.TargetID, err)
		}
		if _, found := content.ContentHTML(c.StateName, c.ContentID); !found {
			return fmt.Errorf("content %s/%s no longer exists in target %s: %w",
				c.StateName, c.ContentID, sg.TargetID, domain.ErrNotFound)
		}
	case *domain.AddQuestionChange:
		// Question payloads are self-contained; structural validity was
		// checked at creation and resubmission.
	}
	return sg.Validate()
}

// acceptedCommitMessage rewrites a reviewer-supplied commit message into the
// form recorded in the target's commit log.
func (s *Service) acceptedCommitMessage(ctx context.Context, authorID uuid.UUID, msg string) (string, error) {
	name, err := s.identity.DisplayName(ctx, authorID)
	if err != nil {
		return "", fmt.Errorf("resolve display name for %s: %w", authorID, err)
	}
	return fmt.Sprintf("%s %s: %s", acceptedCommitPrefix, name, strings.TrimSpace(msg)), nil
}
