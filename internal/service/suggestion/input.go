package suggestion

import (
	"strings"

	"github.com/google/uuid"

	"github.com/heartmarshall/contribution-backend/internal/domain"
)

// CreateInput carries the parameters for submitting a new suggestion.
type CreateInput struct {
	Type          domain.SuggestionType
	TargetType    domain.TargetType
	TargetID      uuid.UUID
	TargetVersion int
	Change        domain.Change
	Description   string
}

// Validate checks the input and returns a domain.ValidationError listing
// every invalid field.
func (in *CreateInput) Validate() error {
	var fields []domain.FieldError

	if !in.Type.IsValid() {
		fields = append(fields, domain.FieldError{Field: "type", Message: "unknown suggestion type"})
	}
	if !in.TargetType.IsValid() {
		fields = append(fields, domain.FieldError{Field: "target_type", Message: "unknown target type"})
	}
	if in.TargetID == uuid.Nil {
		fields = append(fields, domain.FieldError{Field: "target_id", Message: "must not be empty"})
	}
	if in.TargetVersion <= 0 {
		fields = append(fields, domain.FieldError{Field: "target_version", Message: "must be positive"})
	}
	if in.Change == nil {
		fields = append(fields, domain.FieldError{Field: "change", Message: "must not be empty"})
	} else {
		if in.Change.SuggestionType() != in.Type {
			fields = append(fields, domain.FieldError{Field: "change", Message: "change type does not match suggestion type"})
		}
		if err := in.Change.Validate(); err != nil {
			fields = append(fields, domain.FieldError{Field: "change", Message: err.Error()})
		}
	}

	if len(fields) > 0 {
		return domain.NewValidationErrors(fields)
	}
	return nil
}

// AcceptInput carries the parameters for accepting a suggestion.
type AcceptInput struct {
	SuggestionID  uuid.UUID
	CommitMessage string
	ReviewMessage string
}

func (in *AcceptInput) Validate() error {
	var fields []domain.FieldError

	if in.SuggestionID == uuid.Nil {
		fields = append(fields, domain.FieldError{Field: "suggestion_id", Message: "must not be empty"})
	}
	if strings.TrimSpace(in.CommitMessage) == "" {
		fields = append(fields, domain.FieldError{Field: "commit_message", Message: "must not be empty"})
	}

	if len(fields) > 0 {
		return domain.NewValidationErrors(fields)
	}
	return nil
}

// RejectInput carries the parameters for rejecting one or more suggestions.
type RejectInput struct {
	SuggestionIDs []uuid.UUID
	ReviewMessage string
}

func (in *RejectInput) Validate() error {
	var fields []domain.FieldError

	if len(in.SuggestionIDs) == 0 {
		fields = append(fields, domain.FieldError{Field: "suggestion_ids", Message: "must not be empty"})
	}
	for _, id := range in.SuggestionIDs {
		if id == uuid.Nil {
			fields = append(fields, domain.FieldError{Field: "suggestion_ids", Message: "must not contain empty ids"})
			break
		}
	}
	if strings.TrimSpace(in.ReviewMessage) == "" {
		fields = append(fields, domain.FieldError{Field: "review_message", Message: "must not be empty"})
	}

	if len(fields) > 0 {
		return domain.NewValidationErrors(fields)
	}
	return nil
}

// ResubmitInput carries the parameters for resubmitting a rejected
// suggestion with an updated change.
type ResubmitInput struct {
	SuggestionID uuid.UUID
	Change       domain.Change
	Summary      string
}

func (in *ResubmitInput) Validate() error {
	var fields []domain.FieldError

	if in.SuggestionID == uuid.Nil {
		fields = append(fields, domain.FieldError{Field: "suggestion_id", Message: "must not be empty"})
	}
	if in.Change == nil {
		fields = append(fields, domain.FieldError{Field: "change", Message: "must not be empty"})
	} else if err := in.Change.Validate(); err != nil {
		fields = append(fields, domain.FieldError{Field: "change", Message: err.Error()})
	}
	if strings.TrimSpace(in.Summary) == "" {
		fields = append(fields, domain.FieldError{Field: "summary", Message: "must not be empty"})
	}

	if len(fields) > 0 {
		return domain.NewValidationErrors(fields)
	}
	return nil
}
