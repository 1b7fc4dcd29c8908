package domain

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Suggestion is a proposed change to target content awaiting review. Its ID
// equals the ID of the discussion thread opened for it at creation.
//
// Invariant: IsHandled ⇔ Status != IN_REVIEW. FinalReviewerID is set the
// moment the suggestion first leaves IN_REVIEW and is retained afterwards,
// including across resubmission, as a historical record.
type Suggestion struct {
	ID              uuid.UUID
	Type            SuggestionType
	TargetType      TargetType
	TargetID        uuid.UUID
	TargetVersion   int
	Status          SuggestionStatus
	AuthorID        uuid.UUID
	FinalReviewerID *uuid.UUID
	Change          Change
	ScoreCategory   string
	CreatedAt       time.Time
	LastUpdated     time.Time
}

// IsHandled reports whether the suggestion has left review.
func (s *Suggestion) IsHandled() bool {
	return s.Status != SuggestionStatusInReview
}

// MarkAccepted transitions IN_REVIEW → ACCEPTED and records the reviewer.
func (s *Suggestion) MarkAccepted(reviewerID uuid.UUID) error {
	if s.IsHandled() {
		return fmt.Errorf("suggestion %s: %w", s.ID, ErrAlreadyHandled)
	}
	s.Status = SuggestionStatusAccepted
	s.FinalReviewerID = &reviewerID
	return nil
}

// MarkRejected transitions IN_REVIEW → REJECTED and records the reviewer.
func (s *Suggestion) MarkRejected(reviewerID uuid.UUID) error {
	if s.IsHandled() {
		return fmt.Errorf("suggestion %s: %w", s.ID, ErrAlreadyHandled)
	}
	s.Status = SuggestionStatusRejected
	s.FinalReviewerID = &reviewerID
	return nil
}

// Resubmit transitions REJECTED → IN_REVIEW with a replacement change.
// FinalReviewerID is deliberately retained from the prior rejection.
// Accepted suggestions have no outgoing transition.
func (s *Suggestion) Resubmit(newChange Change) error {
	if !s.IsHandled() {
		return fmt.Errorf("suggestion %s: %w", s.ID, ErrNotHandled)
	}
	if s.Status == SuggestionStatusAccepted {
		return fmt.Errorf("suggestion %s was accepted, only rejected suggestions can be resubmitted: %w", s.ID, ErrConflict)
	}
	if err := s.PreUpdateValidate(newChange); err != nil {
		return err
	}
	s.Change = newChange
	s.Status = SuggestionStatusInReview
	return nil
}

// PreUpdateValidate checks that a replacement change is acceptable: same
// variant as the original and structurally valid.
func (s *Suggestion) PreUpdateValidate(newChange Change) error {
	if newChange == nil {
		return NewValidationError("change", "required")
	}
	if newChange.SuggestionType() != s.Type {
		return NewValidationError("change",
			fmt.Sprintf("type %s does not match suggestion type %s", newChange.SuggestionType(), s.Type))
	}
	return newChange.Validate()
}

// Validate checks internal consistency. It is called before every persist.
func (s *Suggestion) Validate() error {
	var errs []FieldError
	if !s.Type.IsValid() {
		errs = append(errs, FieldError{Field: "suggestion_type", Message: fmt.Sprintf("unknown type %q", s.Type)})
	}
	if !s.TargetType.IsValid() {
		errs = append(errs, FieldError{Field: "target_type", Message: fmt.Sprintf("unknown type %q", s.TargetType)})
	}
	if !s.Status.IsValid() {
		errs = append(errs, FieldError{Field: "status", Message: fmt.Sprintf("unknown status %q", s.Status)})
	}
	if s.TargetVersion <= 0 {
		errs = append(errs, FieldError{Field: "target_version", Message: "must be positive"})
	}
	if s.AuthorID == uuid.Nil {
		errs = append(errs, FieldError{Field: "author_id", Message: "required"})
	}
	if s.ScoreCategory == "" {
		errs = append(errs, FieldError{Field: "score_category", Message: "required"})
	}
	if s.IsHandled() && s.FinalReviewerID == nil {
		errs = append(errs, FieldError{Field: "final_reviewer_id", Message: "required for handled suggestions"})
	}
	if s.Change == nil {
		errs = append(errs, FieldError{Field: "change", Message: "required"})
	} else if s.Change.SuggestionType() != s.Type {
		errs = append(errs, FieldError{Field: "change", Message: "payload type does not match suggestion type"})
	}
	if len(errs) > 0 {
		return &ValidationError{Errors: errs}
	}
	if err := s.Change.Validate(); err != nil {
		return err
	}
	return nil
}

// AllHTMLContent returns every rich-text field of the suggestion's change.
func (s *Suggestion) AllHTMLContent() []string {
	if s.Change == nil {
		return nil
	}
	return s.Change.AllHTMLContent()
}

// ScoreCategoryFor derives the score category for a new suggestion.
// Edit and translation suggestions are scoped by the target content's
// category; question suggestions are scoped by the target skill itself.
func ScoreCategoryFor(t SuggestionType, targetCategory string, targetID uuid.UUID) (string, error) {
	switch t {
	case SuggestionTypeEditContent:
		return string(ScoreTypeContent) + ScoreCategoryDelimiter + targetCategory, nil
	case SuggestionTypeTranslate:
		return string(ScoreTypeTranslation) + ScoreCategoryDelimiter + targetCategory, nil
	case SuggestionTypeAddQuestion:
		return string(ScoreTypeQuestion) + ScoreCategoryDelimiter + targetID.String(), nil
	default:
		return "", fmt.Errorf("invalid suggestion type %q: %w", t, ErrValidation)
	}
}

// SuggestionFilter contains field-equality predicates for suggestion queries.
// Nil fields are not constrained.
type SuggestionFilter struct {
	Type            *SuggestionType
	TargetType      *TargetType
	TargetID        *uuid.UUID
	Status          *SuggestionStatus
	AuthorID        *uuid.UUID
	FinalReviewerID *uuid.UUID
	ScoreCategory   *string
}
