package suggestion

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/contribution-backend/internal/config"
	"github.com/heartmarshall/contribution-backend/internal/domain"
	"github.com/heartmarshall/contribution-backend/pkg/ctxutil"
)

type testDeps struct {
	suggestions *suggestionRepoMock
	threads     *threadServiceMock
	content     *contentServiceMock
	markup      *markupValidatorMock
	identity    *identityServiceMock
	scoring     *scoringRecorderMock
	rights      *contributionRightsMock
	cfg         config.SuggestionConfig
}

func defaultTestConfig() config.SuggestionConfig {
	return config.SuggestionConfig{
		EnableScoreRecording:         true,
		SendReviewerOnboardingEmails: true,
		AuthorScoreIncrement:         1,
		MinScoreToReview:             10,
		QueryLimit:                   1000,
		StaleThreshold:               168 * time.Hour,
	}
}

func newTestDeps() *testDeps {
	return &testDeps{
		suggestions: &suggestionRepoMock{},
		threads: &threadServiceMock{
			PostMessageFunc: func(context.Context, uuid.UUID, uuid.UUID, domain.ThreadStatus, string) error {
				return nil
			},
			PostMessagesFunc: func(context.Context, []uuid.UUID, uuid.UUID, domain.ThreadStatus, string) error {
				return nil
			},
		},
		content: &contentServiceMock{
			ApplyChangeFunc: func(context.Context, uuid.UUID, domain.Change, string) error {
				return nil
			},
		},
		markup: &markupValidatorMock{
			FindUnsafeMathMarkupFunc: func(string) []string { return nil },
		},
		identity: &identityServiceMock{
			DisplayNameFunc: func(context.Context, uuid.UUID) (string, error) {
				return "user", nil
			},
		},
		scoring: &scoringRecorderMock{
			RecordAcceptanceFunc: func(context.Context, uuid.UUID, string) error { return nil },
		},
		rights: &contributionRightsMock{
			TranslationLanguagesForFunc: func(context.Context, uuid.UUID) ([]string, error) {
				return nil, nil
			},
		},
		cfg: defaultTestConfig(),
	}
}

func newTestService(d *testDeps) *Service {
	return NewService(
		slog.New(slog.NewTextHandler(io.Discard, nil)),
		d.cfg,
		d.suggestions,
		d.threads,
		d.content,
		d.markup,
		d.identity,
		d.scoring,
		d.rights,
		&txManagerMock{},
	)
}

func actorCtx(userID uuid.UUID) context.Context {
	return ctxutil.WithUserID(context.Background(), userID)
}

func inReviewSuggestion(t domain.SuggestionType, change domain.Change) *domain.Suggestion {
	return &domain.Suggestion{
		ID:            uuid.New(),
		Type:          t,
		TargetType:    domain.TargetTypeExploration,
		TargetID:      uuid.New(),
		TargetVersion: 1,
		Status:        domain.SuggestionStatusInReview,
		AuthorID:      uuid.New(),
		Change:        change,
		ScoreCategory: "content.Algebra",
		CreatedAt:     time.Now(),
		LastUpdated:   time.Now(),
	}
}

func editChange() *domain.EditContentChange {
	return &domain.EditContentChange{
		StateName: "Intro",
		ContentID: "c1",
		NewHTML:   "<p>new</p>",
		OldHTML:   "<p>old</p>",
	}
}
