// Package suggestion implements the suggestion lifecycle: creation against
// versioned target content, review transitions (accept, reject, resubmit),
// bounded queries, and the hand-off to reviewer scoring on acceptance.
package suggestion

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/contribution-backend/internal/config"
	"github.com/heartmarshall/contribution-backend/internal/domain"
)

const (
	// DefaultThreadSubject is used when a suggestion is created without a
	// description.
	DefaultThreadSubject = "Suggestion from a user"

	// acceptedCommitPrefix marks commit messages produced from accepted
	// suggestions in the target's commit log.
	acceptedCommitPrefix = "Accepted suggestion by"

	// DeletedSkillRejectMessage is posted when question suggestions are
	// auto-rejected because their target skill was deleted.
	DeletedSkillRejectMessage = "The associated skill no longer exists."

	// InvalidTargetRejectMessage is posted when translation suggestions are
	// auto-rejected because their target content was removed.
	InvalidTargetRejectMessage = "The target content for this translation no longer exists."
)

// SuggestionBotUserID is the fixed system reviewer identity used for
// auto-rejection.
var SuggestionBotUserID = uuid.MustParse("00000000-0000-0000-0000-00000000b07a")

// TargetContent is a versioned snapshot of a target entity as served by the
// target content collaborator. HTML is addressable by state name and content
// id; Category scopes score categories for edit and translation suggestions.
type TargetContent struct {
	ID       uuid.UUID
	Version  int
	Category string
	HTML     map[string]map[string]string
}

// ContentHTML returns the HTML at (stateName, contentID), or false if the
// location does not exist.
func (c *TargetContent) ContentHTML(stateName, contentID string) (string, bool) {
	state, ok := c.HTML[stateName]
	if !ok {
		return "", false
	}
	html, ok := state[contentID]
	return html, ok
}

// ---------------------------------------------------------------------------
// Consumer-defined interfaces (private)
// ---------------------------------------------------------------------------

type suggestionRepo interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Suggestion, error)
	GetMulti(ctx context.Context, ids []uuid.UUID) ([]*domain.Suggestion, error)
	Query(ctx context.Context, filter domain.SuggestionFilter, limit int) ([]*domain.Suggestion, error)
	Create(ctx context.Context, s *domain.Suggestion) error
	MarkHandled(ctx context.Context, s *domain.Suggestion, touchLastUpdated bool) error
	MarkHandledMulti(ctx context.Context, suggestions []*domain.Suggestion, touchLastUpdated bool) error
	MarkResubmitted(ctx context.Context, s *domain.Suggestion) error
	TranslationIDsForTargets(ctx context.Context, targetIDs []uuid.UUID) ([]uuid.UUID, error)
	StaleIDs(ctx context.Context, before time.Time) ([]uuid.UUID, error)
	InReviewByCategories(ctx context.Context, categories []string, excludeAuthor uuid.UUID, limit int) ([]*domain.Suggestion, error)
	InReviewByType(ctx context.Context, t domain.SuggestionType, excludeAuthor uuid.UUID, limit int) ([]*domain.Suggestion, error)
	ByAuthorAndType(ctx context.Context, authorID uuid.UUID, t domain.SuggestionType, limit int) ([]*domain.Suggestion, error)
}

type threadService interface {
	Open(ctx context.Context, targetType domain.TargetType, targetID, authorID uuid.UUID, subject, initialMessage string, flaggedAsSuggestion bool) (uuid.UUID, error)
	PostMessage(ctx context.Context, threadID, authorID uuid.UUID, resultingStatus domain.ThreadStatus, message string) error
	PostMessages(ctx context.Context, threadIDs []uuid.UUID, authorID uuid.UUID, resultingStatus domain.ThreadStatus, message string) error
}

type contentService interface {
	Fetch(ctx context.Context, targetID uuid.UUID) (*TargetContent, error)
	ApplyChange(ctx context.Context, targetID uuid.UUID, change domain.Change, commitMessage string) error
}

type markupValidator interface {
	FindUnsafeMathMarkup(html string) []string
}

type identityService interface {
	DisplayName(ctx context.Context, userID uuid.UUID) (string, error)
}

type scoringRecorder interface {
	RecordAcceptance(ctx context.Context, userID uuid.UUID, scoreCategory string) error
	CategoriesReviewableBy(ctx context.Context, userID uuid.UUID) ([]string, error)
}

// contributionRights exposes the externally managed per-language review
// rights used to filter reviewable translation suggestions.
type contributionRights interface {
	TranslationLanguagesFor(ctx context.Context, userID uuid.UUID) ([]string, error)
}

type txManager interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// ---------------------------------------------------------------------------
// Service
// ---------------------------------------------------------------------------

// Service implements the suggestion lifecycle business logic.
type Service struct {
	log         *slog.Logger
	cfg         config.SuggestionConfig
	suggestions suggestionRepo
	threads     threadService
	content     contentService
	markup      markupValidator
	identity    identityService
	scoring     scoringRecorder
	rights      contributionRights
	tx          txManager
}

// NewService creates a new Suggestion service.
func NewService(
	logger *slog.Logger,
	cfg config.SuggestionConfig,
	suggestions suggestionRepo,
	threads threadService,
	content contentService,
	markup markupValidator,
	identity identityService,
	scoring scoringRecorder,
	rights contributionRights,
	tx txManager,
) *Service {
	return &Service{
		log:         logger.With("service", "suggestion"),
		cfg:         cfg,
		suggestions: suggestions,
		threads:     threads,
		content:     content,
		markup:      markup,
		identity:    identity,
		scoring:     scoring,
		rights:      rights,
		tx:          tx,
	}
}
