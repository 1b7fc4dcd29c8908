package suggestion

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/heartmarshall/contribution-backend/internal/domain"
)

// ReviewableByUser returns in-review suggestions the user is eligible to
// review: those in the user's reviewable score categories, excluding the
// user's own submissions, with translation suggestions further narrowed to
// the languages the user holds translation rights for.
func (s *Service) ReviewableByUser(ctx context.Context, userID uuid.UUID) ([]*domain.Suggestion, error) {
	categories, err := s.scoring.CategoriesReviewableBy(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("resolve reviewable categories for %s: %w", userID, err)
	}
	if len(categories) == 0 {
		return nil, nil
	}

	suggestions, err := s.suggestions.InReviewByCategories(ctx, categories, userID, s.cfg.QueryLimit)
	if err != nil {
		return nil, fmt.Errorf("query reviewable suggestions for %s: %w", userID, err)
	}

	return s.filterTranslationsByRights(ctx, userID, suggestions)
}

// ReviewableOfType returns in-review suggestions of one type, excluding the
// user's own, applying the same translation-language narrowing.
func (s *Service) ReviewableOfType(ctx context.Context, userID uuid.UUID, t domain.SuggestionType) ([]*domain.Suggestion, error) {
	if !t.IsValid() {
		return nil, domain.NewValidationError("type", "unknown suggestion type")
	}

	suggestions, err := s.suggestions.InReviewByType(ctx, t, userID, s.cfg.QueryLimit)
	if err != nil {
		return nil, fmt.Errorf("query in-review %s suggestions: %w", t, err)
	}

	if t != domain.SuggestionTypeTranslate {
		return suggestions, nil
	}
	return s.filterTranslationsByRights(ctx, userID, suggestions)
}

func (s *Service) filterTranslationsByRights(ctx context.Context, userID uuid.UUID, suggestions []*domain.Suggestion) ([]*domain.Suggestion, error) {
	hasTranslations := false
	for _, sg := range suggestions {
		if sg.Type == domain.SuggestionTypeTranslate {
			hasTranslations = true
			break
		}
	}
	if !hasTranslations {
		return suggestions, nil
	}

	languages, err := s.rights.TranslationLanguagesFor(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("resolve translation rights for %s: %w", userID, err)
	}
	allowed := make(map[string]struct{}, len(languages))
	for _, lang := range languages {
		allowed[lang] = struct{}{}
	}

	filtered := suggestions[:0]
	for _, sg := range suggestions {
		if tc, ok := sg.Change.(*domain.TranslationChange); ok {
			if _, ok := allowed[tc.LanguageCode]; !ok {
				continue
			}
		}
		filtered = append(filtered, sg)
	}
	return filtered, nil
}
