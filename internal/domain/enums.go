package domain

// SuggestionType identifies the variant of a suggestion. The set is closed:
// each type carries its own change payload shape and score category rule.
type SuggestionType string

const (
	SuggestionTypeEditContent SuggestionType = "EDIT_CONTENT"
	SuggestionTypeTranslate   SuggestionType = "TRANSLATE_CONTENT"
	SuggestionTypeAddQuestion SuggestionType = "ADD_QUESTION"
)

func (t SuggestionType) String() string { return string(t) }

func (t SuggestionType) IsValid() bool {
	switch t {
	case SuggestionTypeEditContent, SuggestionTypeTranslate, SuggestionTypeAddQuestion:
		return true
	}
	return false
}

// SuggestionStatus is the workflow state of a suggestion.
// IN_REVIEW is the initial state; ACCEPTED and REJECTED are terminal,
// except that a REJECTED suggestion may be resubmitted back to IN_REVIEW.
type SuggestionStatus string

const (
	SuggestionStatusInReview SuggestionStatus = "IN_REVIEW"
	SuggestionStatusAccepted SuggestionStatus = "ACCEPTED"
	SuggestionStatusRejected SuggestionStatus = "REJECTED"
)

func (s SuggestionStatus) String() string { return string(s) }

func (s SuggestionStatus) IsValid() bool {
	switch s {
	case SuggestionStatusInReview, SuggestionStatusAccepted, SuggestionStatusRejected:
		return true
	}
	return false
}

// TargetType identifies the kind of content entity a suggestion targets.
type TargetType string

const (
	TargetTypeExploration TargetType = "EXPLORATION"
	TargetTypeSkill       TargetType = "SKILL"
)

func (t TargetType) String() string { return string(t) }

func (t TargetType) IsValid() bool {
	switch t {
	case TargetTypeExploration, TargetTypeSkill:
		return true
	}
	return false
}

// ScoreType is the review-skill area half of a score category.
type ScoreType string

const (
	ScoreTypeContent     ScoreType = "content"
	ScoreTypeTranslation ScoreType = "translation"
	ScoreTypeQuestion    ScoreType = "question"
)

func (t ScoreType) String() string { return string(t) }

// ScoreCategoryDelimiter joins the score type with its context
// (target category, or target id for questions).
const ScoreCategoryDelimiter = "."

// ThreadStatus is the resulting status posted with a discussion-thread
// message when a suggestion transitions.
type ThreadStatus string

const (
	ThreadStatusOpen    ThreadStatus = "OPEN"
	ThreadStatusFixed   ThreadStatus = "FIXED"
	ThreadStatusIgnored ThreadStatus = "IGNORED"
)

func (s ThreadStatus) String() string { return string(s) }
