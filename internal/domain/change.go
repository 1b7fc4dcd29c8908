package domain

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Change is the variant-specific payload of a suggestion. The implementing
// set is closed: exactly one type per SuggestionType. New variants require a
// new type here plus codec and score-category cases — there is no runtime
// registration.
type Change interface {
	// SuggestionType reports which suggestion variant this payload belongs to.
	SuggestionType() SuggestionType
	// Validate checks the payload shape (required fields, well-formedness).
	Validate() error
	// AllHTMLContent returns every rich-text field of the payload, in a
	// stable order, for downstream markup validation.
	AllHTMLContent() []string

	isChange()
}

// EditContentChange proposes replacing the HTML of one content block of an
// exploration state.
type EditContentChange struct {
	StateName string `json:"state_name"`
	ContentID string `json:"content_id"`
	NewHTML   string `json:"new_html"`
	OldHTML   string `json:"old_html,omitempty"`
}

func (c *EditContentChange) SuggestionType() SuggestionType { return SuggestionTypeEditContent }

func (c *EditContentChange) Validate() error {
	var errs []FieldError
	if strings.TrimSpace(c.StateName) == "" {
		errs = append(errs, FieldError{Field: "state_name", Message: "required"})
	}
	if strings.TrimSpace(c.ContentID) == "" {
		errs = append(errs, FieldError{Field: "content_id", Message: "required"})
	}
	if c.NewHTML == "" {
		errs = append(errs, FieldError{Field: "new_html", Message: "required"})
	}
	if len(errs) > 0 {
		return &ValidationError{Errors: errs}
	}
	return nil
}

func (c *EditContentChange) AllHTMLContent() []string { return []string{c.NewHTML} }

func (c *EditContentChange) isChange() {}

// TranslationChange proposes a translation of one content block. ContentHTML
// is the source content exactly as the translator saw it; creation fails when
// it no longer matches the live content.
type TranslationChange struct {
	StateName       string `json:"state_name"`
	ContentID       string `json:"content_id"`
	LanguageCode    string `json:"language_code"`
	ContentHTML     string `json:"content_html"`
	TranslationHTML string `json:"translation_html"`
}

func (c *TranslationChange) SuggestionType() SuggestionType { return SuggestionTypeTranslate }

func (c *TranslationChange) Validate() error {
	var errs []FieldError
	if strings.TrimSpace(c.StateName) == "" {
		errs = append(errs, FieldError{Field: "state_name", Message: "required"})
	}
	if strings.TrimSpace(c.ContentID) == "" {
		errs = append(errs, FieldError{Field: "content_id", Message: "required"})
	}
	if strings.TrimSpace(c.LanguageCode) == "" {
		errs = append(errs, FieldError{Field: "language_code", Message: "required"})
	}
	if c.ContentHTML == "" {
		errs = append(errs, FieldError{Field: "content_html", Message: "required"})
	}
	if c.TranslationHTML == "" {
		errs = append(errs, FieldError{Field: "translation_html", Message: "required"})
	}
	if len(errs) > 0 {
		return &ValidationError{Errors: errs}
	}
	return nil
}

func (c *TranslationChange) AllHTMLContent() []string {
	return []string{c.ContentHTML, c.TranslationHTML}
}

func (c *TranslationChange) isChange() {}

// AddQuestionChange proposes a new practice question for a skill.
type AddQuestionChange struct {
	QuestionHTML    string  `json:"question_html"`
	LanguageCode    string  `json:"language_code"`
	SkillDifficulty float64 `json:"skill_difficulty"`
}

func (c *AddQuestionChange) SuggestionType() SuggestionType { return SuggestionTypeAddQuestion }

func (c *AddQuestionChange) Validate() error {
	var errs []FieldError
	if c.QuestionHTML == "" {
		errs = append(errs, FieldError{Field: "question_html", Message: "required"})
	}
	if strings.TrimSpace(c.LanguageCode) == "" {
		errs = append(errs, FieldError{Field: "language_code", Message: "required"})
	}
	if c.SkillDifficulty < 0 || c.SkillDifficulty > 1 {
		errs = append(errs, FieldError{Field: "skill_difficulty", Message: "must be in [0, 1]"})
	}
	if len(errs) > 0 {
		return &ValidationError{Errors: errs}
	}
	return nil
}

func (c *AddQuestionChange) AllHTMLContent() []string { return []string{c.QuestionHTML} }

func (c *AddQuestionChange) isChange() {}

// changeEnvelope is the persisted JSON shape of a Change.
type changeEnvelope struct {
	Type    SuggestionType  `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

// MarshalChange encodes a Change into its persisted JSON envelope.
func MarshalChange(c Change) ([]byte, error) {
	payload, err := json.Marshal(c)
	if err != nil {
		return nil, fmt.Errorf("marshal change payload: %w", err)
	}
	return json.Marshal(changeEnvelope{Type: c.SuggestionType(), Payload: payload})
}

// UnmarshalChange decodes a persisted JSON envelope back into a Change.
func UnmarshalChange(data []byte) (Change, error) {
	var env changeEnvelope
	if err := json.Unmarshal(data, &env); err != nil {
		return nil, fmt.Errorf("unmarshal change envelope: %w", err)
	}

	var c Change
	switch env.Type {
	case SuggestionTypeEditContent:
		c = &EditContentChange{}
	case SuggestionTypeTranslate:
		c = &TranslationChange{}
	case SuggestionTypeAddQuestion:
		c = &AddQuestionChange{}
	default:
		return nil, fmt.Errorf("unmarshal change: unknown suggestion type %q: %w", env.Type, ErrValidation)
	}

	if err := json.Unmarshal(env.Payload, c); err != nil {
		return nil, fmt.Errorf("unmarshal %s change payload: %w", env.Type, err)
	}
	return c, nil
}
