package suggestion

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/heartmarshall/contribution-backend/internal/domain"
)

// AutoRejectQuestionsForSkill rejects every in-review question suggestion
// targeting a deleted skill on behalf of the system reviewer. Returns the
// ids that were rejected.
func (s *Service) AutoRejectQuestionsForSkill(ctx context.Context, skillID uuid.UUID) ([]uuid.UUID, error) {
	t := domain.SuggestionTypeAddQuestion
	status := domain.SuggestionStatusInReview
	suggestions, err := s.suggestions.Query(ctx, domain.SuggestionFilter{
		Type:     &t,
		TargetID: &skillID,
		Status:   &status,
	}, s.cfg.QueryLimit)
	if err != nil {
		return nil, fmt.Errorf("query question suggestions for skill %s: %w", skillID, err)
	}

	ids := make([]uuid.UUID, len(suggestions))
	for i, sg := range suggestions {
		ids[i] = sg.ID
	}
	if err := s.autoReject(ctx, ids, DeletedSkillRejectMessage); err != nil {
		return nil, err
	}
	return ids, nil
}

// AutoRejectTranslationsForTargets rejects every in-review translation
// suggestion whose target content was removed. Returns the ids that were
// rejected.
func (s *Service) AutoRejectTranslationsForTargets(ctx context.Context, targetIDs []uuid.UUID) ([]uuid.UUID, error) {
	if len(targetIDs) == 0 {
		return nil, nil
	}
	ids, err := s.suggestions.TranslationIDsForTargets(ctx, targetIDs)
	if err != nil {
		return nil, fmt.Errorf("find translation suggestions: %w", err)
	}
	if err := s.autoReject(ctx, ids, InvalidTargetRejectMessage); err != nil {
		return nil, err
	}
	return ids, nil
}

// autoReject is the system-initiated variant of rejectMany: the reviewer is
// the bot identity and the bulk write does not refresh last_updated, so
// background cleanup does not mask true suggestion age.
func (s *Service) autoReject(ctx context.Context, ids []uuid.UUID, message string) error {
	if len(ids) == 0 {
		return nil
	}

	err := s.tx.RunInTx(ctx, func(ctx context.Context) error {
		suggestions, err := s.suggestions.GetMulti(ctx, ids)
		if err != nil {
			return fmt.Errorf("get suggestions: %w", err)
		}
		for i, sg := range suggestions {
			if sg == nil {
				return fmt.Errorf("suggestion %s: %w", ids[i], domain.ErrNotFound)
			}
			if err := sg.MarkRejected(SuggestionBotUserID); err != nil {
				return err
			}
		}
		if err := s.suggestions.MarkHandledMulti(ctx, suggestions, false); err != nil {
			return fmt.Errorf("mark suggestions rejected: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	if err := s.threads.PostMessages(ctx, ids, SuggestionBotUserID, domain.ThreadStatusIgnored, message); err != nil {
		return fmt.Errorf("post rejection messages: %w", err)
	}

	s.log.Info("suggestions auto-rejected", "count", len(ids))
	return nil
}
