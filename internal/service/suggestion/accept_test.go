package suggestion

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/heartmarshall/contribution-backend/internal/domain"
)

func targetContentFor(sg *domain.Suggestion) *TargetContent {
	return &TargetContent{
		ID:       sg.TargetID,
		Version:  sg.TargetVersion,
		Category: "Algebra",
		HTML:     map[string]map[string]string{"Intro": {"c1": "<p>old</p>"}},
	}
}

func TestService_Accept(t *testing.T) {
	t.Parallel()

	d := newTestDeps()
	reviewerID := uuid.New()
	sg := inReviewSuggestion(domain.SuggestionTypeEditContent, editChange())

	d.suggestions.GetByIDFunc = func(_ context.Context, id uuid.UUID) (*domain.Suggestion, error) {
		require.Equal(t, sg.ID, id)
		return sg, nil
	}
	d.content.FetchFunc = func(context.Context, uuid.UUID) (*TargetContent, error) {
		return targetContentFor(sg), nil
	}
	d.identity.DisplayNameFunc = func(_ context.Context, id uuid.UUID) (string, error) {
		require.Equal(t, sg.AuthorID, id)
		return "alice", nil
	}

	var handled *domain.Suggestion
	var touched bool
	d.suggestions.MarkHandledFunc = func(_ context.Context, s *domain.Suggestion, touchLastUpdated bool) error {
		handled = s
		touched = touchLastUpdated
		return nil
	}
	var appliedCommit string
	d.content.ApplyChangeFunc = func(_ context.Context, _ uuid.UUID, _ domain.Change, commitMessage string) error {
		appliedCommit = commitMessage
		return nil
	}
	var postedStatus domain.ThreadStatus
	d.threads.PostMessageFunc = func(_ context.Context, threadID, authorID uuid.UUID, status domain.ThreadStatus, _ string) error {
		assert.Equal(t, sg.ID, threadID)
		assert.Equal(t, reviewerID, authorID)
		postedStatus = status
		return nil
	}
	var scoredUser uuid.UUID
	var scoredCategory string
	d.scoring.RecordAcceptanceFunc = func(_ context.Context, userID uuid.UUID, category string) error {
		scoredUser = userID
		scoredCategory = category
		return nil
	}

	svc := newTestService(d)
	err := svc.Accept(actorCtx(reviewerID), AcceptInput{
		SuggestionID:  sg.ID,
		CommitMessage: "Fix the intro",
		ReviewMessage: "Looks good",
	})
	require.NoError(t, err)

	require.NotNil(t, handled)
	assert.Equal(t, domain.SuggestionStatusAccepted, handled.Status)
	require.NotNil(t, handled.FinalReviewerID)
	assert.Equal(t, reviewerID, *handled.FinalReviewerID)
	assert.True(t, touched)
	assert.Equal(t, "Accepted suggestion by alice: Fix the intro", appliedCommit)
	assert.Equal(t, domain.ThreadStatusFixed, postedStatus)
	assert.Equal(t, sg.AuthorID, scoredUser)
	assert.Equal(t, sg.ScoreCategory, scoredCategory)
}

func TestService_Accept_BlankCommitMessageFailsBeforeAnyRead(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		commit string
	}{
		{name: "empty", commit: ""},
		{name: "whitespace only", commit: "  \t\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			d := newTestDeps()
			d.suggestions.GetByIDFunc = func(context.Context, uuid.UUID) (*domain.Suggestion, error) {
				t.Fatal("store must not be touched")
				return nil, nil
			}

			svc := newTestService(d)
			err := svc.Accept(actorCtx(uuid.New()), AcceptInput{
				SuggestionID:  uuid.New(),
				CommitMessage: tt.commit,
			})
			require.ErrorIs(t, err, domain.ErrValidation)
		})
	}
}

func TestService_Accept_AlreadyHandled(t *testing.T) {
	t.Parallel()

	d := newTestDeps()
	reviewer := uuid.New()
	sg := inReviewSuggestion(domain.SuggestionTypeEditContent, editChange())
	require.NoError(t, sg.MarkAccepted(reviewer))

	d.suggestions.GetByIDFunc = func(context.Context, uuid.UUID) (*domain.Suggestion, error) {
		return sg, nil
	}
	d.suggestions.MarkHandledFunc = func(context.Context, *domain.Suggestion, bool) error {
		t.Fatal("no write expected")
		return nil
	}

	svc := newTestService(d)
	err := svc.Accept(actorCtx(uuid.New()), AcceptInput{
		SuggestionID:  sg.ID,
		CommitMessage: "msg",
	})
	require.ErrorIs(t, err, domain.ErrAlreadyHandled)
}

func TestService_Accept_LostRace(t *testing.T) {
	t.Parallel()

	d := newTestDeps()
	sg := inReviewSuggestion(domain.SuggestionTypeEditContent, editChange())

	d.suggestions.GetByIDFunc = func(context.Context, uuid.UUID) (*domain.Suggestion, error) {
		return sg, nil
	}
	d.content.FetchFunc = func(context.Context, uuid.UUID) (*TargetContent, error) {
		return targetContentFor(sg), nil
	}
	// Another reviewer won the conditional update between the read and the
	// write.
	d.suggestions.MarkHandledFunc = func(context.Context, *domain.Suggestion, bool) error {
		return domain.ErrAlreadyHandled
	}
	d.content.ApplyChangeFunc = func(context.Context, uuid.UUID, domain.Change, string) error {
		t.Fatal("change must not be applied by the losing accept")
		return nil
	}

	svc := newTestService(d)
	err := svc.Accept(actorCtx(uuid.New()), AcceptInput{
		SuggestionID:  sg.ID,
		CommitMessage: "msg",
	})
	require.ErrorIs(t, err, domain.ErrAlreadyHandled)
}

func TestService_Accept_UnsafeMarkup(t *testing.T) {
	t.Parallel()

	d := newTestDeps()
	sg := inReviewSuggestion(domain.SuggestionTypeEditContent, editChange())

	d.suggestions.GetByIDFunc = func(context.Context, uuid.UUID) (*domain.Suggestion, error) {
		return sg, nil
	}
	d.content.FetchFunc = func(context.Context, uuid.UUID) (*TargetContent, error) {
		return targetContentFor(sg), nil
	}
	d.markup.FindUnsafeMathMarkupFunc = func(html string) []string {
		return []string{"raw_latex without svg filename"}
	}
	d.suggestions.MarkHandledFunc = func(context.Context, *domain.Suggestion, bool) error {
		t.Fatal("no write expected")
		return nil
	}

	svc := newTestService(d)
	err := svc.Accept(actorCtx(uuid.New()), AcceptInput{
		SuggestionID:  sg.ID,
		CommitMessage: "msg",
	})
	require.ErrorIs(t, err, domain.ErrContentPolicy)
	assert.Equal(t, domain.SuggestionStatusInReview, sg.Status, "suggestion left untouched")
	assert.Nil(t, sg.FinalReviewerID)
}

func TestService_Accept_ContentGone(t *testing.T) {
	t.Parallel()

	d := newTestDeps()
	sg := inReviewSuggestion(domain.SuggestionTypeEditContent, editChange())

	d.suggestions.GetByIDFunc = func(context.Context, uuid.UUID) (*domain.Suggestion, error) {
		return sg, nil
	}
	d.content.FetchFunc = func(context.Context, uuid.UUID) (*TargetContent, error) {
		return &TargetContent{ID: sg.TargetID, HTML: map[string]map[string]string{}}, nil
	}

	svc := newTestService(d)
	err := svc.Accept(actorCtx(uuid.New()), AcceptInput{
		SuggestionID:  sg.ID,
		CommitMessage: "msg",
	})
	require.ErrorIs(t, err, domain.ErrNotFound)
	assert.Equal(t, domain.SuggestionStatusInReview, sg.Status)
}

func TestService_Accept_ScoreRecordingDisabled(t *testing.T) {
	t.Parallel()

	d := newTestDeps()
	d.cfg.EnableScoreRecording = false
	sg := inReviewSuggestion(domain.SuggestionTypeEditContent, editChange())

	d.suggestions.GetByIDFunc = func(context.Context, uuid.UUID) (*domain.Suggestion, error) {
		return sg, nil
	}
	d.content.FetchFunc = func(context.Context, uuid.UUID) (*TargetContent, error) {
		return targetContentFor(sg), nil
	}
	d.suggestions.MarkHandledFunc = func(context.Context, *domain.Suggestion, bool) error { return nil }
	d.scoring.RecordAcceptanceFunc = func(context.Context, uuid.UUID, string) error {
		t.Fatal("scoring must not run when recording is disabled")
		return nil
	}

	svc := newTestService(d)
	err := svc.Accept(actorCtx(uuid.New()), AcceptInput{
		SuggestionID:  sg.ID,
		CommitMessage: "msg",
	})
	require.NoError(t, err)
}
