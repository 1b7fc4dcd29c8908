package suggestion

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/contribution-backend/internal/domain"
)

type suggestionRepoMock struct {
	GetByIDFunc                  func(ctx context.Context, id uuid.UUID) (*domain.Suggestion, error)
	GetMultiFunc                 func(ctx context.Context, ids []uuid.UUID) ([]*domain.Suggestion, error)
	QueryFunc                    func(ctx context.Context, filter domain.SuggestionFilter, limit int) ([]*domain.Suggestion, error)
	CreateFunc                   func(ctx context.Context, s *domain.Suggestion) error
	MarkHandledFunc              func(ctx context.Context, s *domain.Suggestion, touchLastUpdated bool) error
	MarkHandledMultiFunc         func(ctx context.Context, suggestions []*domain.Suggestion, touchLastUpdated bool) error
	MarkResubmittedFunc          func(ctx context.Context, s *domain.Suggestion) error
	TranslationIDsForTargetsFunc func(ctx context.Context, targetIDs []uuid.UUID) ([]uuid.UUID, error)
	StaleIDsFunc                 func(ctx context.Context, before time.Time) ([]uuid.UUID, error)
	InReviewByCategoriesFunc     func(ctx context.Context, categories []string, excludeAuthor uuid.UUID, limit int) ([]*domain.Suggestion, error)
	InReviewByTypeFunc           func(ctx context.Context, t domain.SuggestionType, excludeAuthor uuid.UUID, limit int) ([]*domain.Suggestion, error)
	ByAuthorAndTypeFunc          func(ctx context.Context, authorID uuid.UUID, t domain.SuggestionType, limit int) ([]*domain.Suggestion, error)
}

func (m *suggestionRepoMock) GetByID(ctx context.Context, id uuid.UUID) (*domain.Suggestion, error) {
	return m.GetByIDFunc(ctx, id)
}

func (m *suggestionRepoMock) GetMulti(ctx context.Context, ids []uuid.UUID) ([]*domain.Suggestion, error) {
	return m.GetMultiFunc(ctx, ids)
}

func (m *suggestionRepoMock) Query(ctx context.Context, filter domain.SuggestionFilter, limit int) ([]*domain.Suggestion, error) {
	return m.QueryFunc(ctx, filter, limit)
}

func (m *suggestionRepoMock) Create(ctx context.Context, s *domain.Suggestion) error {
	return m.CreateFunc(ctx, s)
}

func (m *suggestionRepoMock) MarkHandled(ctx context.Context, s *domain.Suggestion, touchLastUpdated bool) error {
	return m.MarkHandledFunc(ctx, s, touchLastUpdated)
}

func (m *suggestionRepoMock) MarkHandledMulti(ctx context.Context, suggestions []*domain.Suggestion, touchLastUpdated bool) error {
	return m.MarkHandledMultiFunc(ctx, suggestions, touchLastUpdated)
}

func (m *suggestionRepoMock) MarkResubmitted(ctx context.Context, s *domain.Suggestion) error {
	return m.MarkResubmittedFunc(ctx, s)
}

func (m *suggestionRepoMock) TranslationIDsForTargets(ctx context.Context, targetIDs []uuid.UUID) ([]uuid.UUID, error) {
	return m.TranslationIDsForTargetsFunc(ctx, targetIDs)
}

func (m *suggestionRepoMock) StaleIDs(ctx context.Context, before time.Time) ([]uuid.UUID, error) {
	return m.StaleIDsFunc(ctx, before)
}

func (m *suggestionRepoMock) InReviewByCategories(ctx context.Context, categories []string, excludeAuthor uuid.UUID, limit int) ([]*domain.Suggestion, error) {
	return m.InReviewByCategoriesFunc(ctx, categories, excludeAuthor, limit)
}

func (m *suggestionRepoMock) InReviewByType(ctx context.Context, t domain.SuggestionType, excludeAuthor uuid.UUID, limit int) ([]*domain.Suggestion, error) {
	return m.InReviewByTypeFunc(ctx, t, excludeAuthor, limit)
}

func (m *suggestionRepoMock) ByAuthorAndType(ctx context.Context, authorID uuid.UUID, t domain.SuggestionType, limit int) ([]*domain.Suggestion, error) {
	return m.ByAuthorAndTypeFunc(ctx, authorID, t, limit)
}

type threadServiceMock struct {
	OpenFunc         func(ctx context.Context, targetType domain.TargetType, targetID, authorID uuid.UUID, subject, initialMessage string, flaggedAsSuggestion bool) (uuid.UUID, error)
	PostMessageFunc  func(ctx context.Context, threadID, authorID uuid.UUID, resultingStatus domain.ThreadStatus, message string) error
	PostMessagesFunc func(ctx context.Context, threadIDs []uuid.UUID, authorID uuid.UUID, resultingStatus domain.ThreadStatus, message string) error
}

func (m *threadServiceMock) Open(ctx context.Context, targetType domain.TargetType, targetID, authorID uuid.UUID, subject, initialMessage string, flaggedAsSuggestion bool) (uuid.UUID, error) {
	return m.OpenFunc(ctx, targetType, targetID, authorID, subject, initialMessage, flaggedAsSuggestion)
}

func (m *threadServiceMock) PostMessage(ctx context.Context, threadID, authorID uuid.UUID, resultingStatus domain.ThreadStatus, message string) error {
	return m.PostMessageFunc(ctx, threadID, authorID, resultingStatus, message)
}

func (m *threadServiceMock) PostMessages(ctx context.Context, threadIDs []uuid.UUID, authorID uuid.UUID, resultingStatus domain.ThreadStatus, message string) error {
	return m.PostMessagesFunc(ctx, threadIDs, authorID, resultingStatus, message)
}

type contentServiceMock struct {
	FetchFunc       func(ctx context.Context, targetID uuid.UUID) (*TargetContent, error)
	ApplyChangeFunc func(ctx context.Context, targetID uuid.UUID, change domain.Change, commitMessage string) error
}

func (m *contentServiceMock) Fetch(ctx context.Context, targetID uuid.UUID) (*TargetContent, error) {
	return m.FetchFunc(ctx, targetID)
}

func (m *contentServiceMock) ApplyChange(ctx context.Context, targetID uuid.UUID, change domain.Change, commitMessage string) error {
	return m.ApplyChangeFunc(ctx, targetID, change, commitMessage)
}

type markupValidatorMock struct {
	FindUnsafeMathMarkupFunc func(html string) []string
}

func (m *markupValidatorMock) FindUnsafeMathMarkup(html string) []string {
	return m.FindUnsafeMathMarkupFunc(html)
}

type identityServiceMock struct {
	DisplayNameFunc func(ctx context.Context, userID uuid.UUID) (string, error)
}

func (m *identityServiceMock) DisplayName(ctx context.Context, userID uuid.UUID) (string, error) {
	return m.DisplayNameFunc(ctx, userID)
}

type scoringRecorderMock struct {
	RecordAcceptanceFunc       func(ctx context.Context, userID uuid.UUID, scoreCategory string) error
	CategoriesReviewableByFunc func(ctx context.Context, userID uuid.UUID) ([]string, error)
}

func (m *scoringRecorderMock) RecordAcceptance(ctx context.Context, userID uuid.UUID, scoreCategory string) error {
	return m.RecordAcceptanceFunc(ctx, userID, scoreCategory)
}

func (m *scoringRecorderMock) CategoriesReviewableBy(ctx context.Context, userID uuid.UUID) ([]string, error) {
	return m.CategoriesReviewableByFunc(ctx, userID)
}

type contributionRightsMock struct {
	TranslationLanguagesForFunc func(ctx context.Context, userID uuid.UUID) ([]string, error)
}

func (m *contributionRightsMock) TranslationLanguagesFor(ctx context.Context, userID uuid.UUID) ([]string, error) {
	return m.TranslationLanguagesForFunc(ctx, userID)
}

// txManagerMock runs the function directly; transactional behavior is
// covered by the postgres integration tests.
type txManagerMock struct{}

func (m *txManagerMock) RunInTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}
