package config

import (
	"time"
)

// Config is the root application configuration.
type Config struct {
	Database   DatabaseConfig   `yaml:"database"`
	Log        LogConfig        `yaml:"log"`
	Suggestion SuggestionConfig `yaml:"suggestion"`
}

// DatabaseConfig holds PostgreSQL connection settings.
type DatabaseConfig struct {
	DSN             string        `yaml:"dsn"                env:"DATABASE_DSN"                env-required:"true"`
	MaxConns        int32         `yaml:"max_conns"          env:"DATABASE_MAX_CONNS"          env-default:"25"`
	MinConns        int32         `yaml:"min_conns"          env:"DATABASE_MIN_CONNS"          env-default:"5"`
	MaxConnLifetime time.Duration `yaml:"max_conn_lifetime"  env:"DATABASE_MAX_CONN_LIFETIME"  env-default:"1h"`
	MaxConnIdleTime time.Duration `yaml:"max_conn_idle_time" env:"DATABASE_MAX_CONN_IDLE_TIME" env-default:"30m"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `yaml:"level"  env:"LOG_LEVEL"  env-default:"info"`
	Format string `yaml:"format" env:"LOG_FORMAT" env-default:"json"`
}

// SuggestionConfig holds suggestion workflow settings.
type SuggestionConfig struct {
	// EnableScoreRecording controls whether accepted suggestions increment
	// the author's contribution score.
	EnableScoreRecording bool `yaml:"enable_score_recording" env:"SUGGESTION_ENABLE_SCORE_RECORDING" env-default:"true"`
	// SendReviewerOnboardingEmails controls the one-time notification sent
	// when a user first becomes eligible to review a category.
	SendReviewerOnboardingEmails bool `yaml:"send_reviewer_onboarding_emails" env:"SUGGESTION_SEND_ONBOARDING_EMAILS" env-default:"true"`
	// AuthorScoreIncrement is the award added to the author's score per
	// accepted suggestion.
	AuthorScoreIncrement int `yaml:"author_score_increment" env:"SUGGESTION_AUTHOR_SCORE_INCREMENT" env-default:"1"`
	// MinScoreToReview is the score a user needs in a category before they
	// may review suggestions in it.
	MinScoreToReview int `yaml:"min_score_to_review" env:"SUGGESTION_MIN_SCORE_TO_REVIEW" env-default:"10"`
	// QueryLimit bounds the result count of suggestion queries.
	QueryLimit int `yaml:"query_limit" env:"SUGGESTION_QUERY_LIMIT" env-default:"1000"`
	// StaleThreshold is the inactivity duration after which an in-review
	// suggestion is classified as stale.
	StaleThreshold time.Duration `yaml:"stale_threshold" env:"SUGGESTION_STALE_THRESHOLD" env-default:"168h"`
}
