// Package suggestion implements the Suggestion repository using PostgreSQL.
// Fixed-shape queries use raw SQL; the field-equality Query operation builds
// its WHERE clause dynamically with squirrel.
package suggestion

import (
	"context"
	"errors"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/heartmarshall/contribution-backend/internal/adapter/postgres"
	"github.com/heartmarshall/contribution-backend/internal/domain"
)

// Repo provides suggestion persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new suggestion repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

const selectColumns = `id, suggestion_type, target_type, target_id, target_version,
status, author_id, final_reviewer_id, change, score_category, created_at, last_updated`

// ---------------------------------------------------------------------------
// Raw SQL for fixed queries
// ---------------------------------------------------------------------------

const getByIDSQL = `
SELECT ` + selectColumns + `
FROM suggestions
WHERE id = $1`

const insertSQL = `
INSERT INTO suggestions (id, suggestion_type, target_type, target_id, target_version,
    status, author_id, final_reviewer_id, change, score_category, created_at, last_updated)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`

// markHandledSQL only ever moves a suggestion out of IN_REVIEW; the status
// guard is what serializes concurrent accept/reject attempts on one id.
const markHandledSQL = `
UPDATE suggestions
SET status = $2, final_reviewer_id = $3, change = $4,
    last_updated = CASE WHEN $5 THEN now() ELSE last_updated END
WHERE id = $1 AND status = 'IN_REVIEW'`

const markResubmittedSQL = `
UPDATE suggestions
SET status = 'IN_REVIEW', change = $2, last_updated = now()
WHERE id = $1 AND status = 'REJECTED'`

const translationIDsForTargetsSQL = `
SELECT id FROM suggestions
WHERE suggestion_type = 'TRANSLATE_CONTENT' AND target_id = ANY($1::uuid[])`

const staleIDsSQL = `
SELECT id FROM suggestions
WHERE status = 'IN_REVIEW' AND last_updated < $1
ORDER BY last_updated`

const inReviewByCategoriesSQL = `
SELECT ` + selectColumns + `
FROM suggestions
WHERE status = 'IN_REVIEW' AND score_category = ANY($1::text[]) AND author_id <> $2
ORDER BY last_updated
LIMIT $3`

const inReviewByTypeSQL = `
SELECT ` + selectColumns + `
FROM suggestions
WHERE status = 'IN_REVIEW' AND suggestion_type = $1 AND author_id <> $2
ORDER BY last_updated
LIMIT $3`

const byAuthorAndTypeSQL = `
SELECT ` + selectColumns + `
FROM suggestions
WHERE author_id = $1 AND suggestion_type = $2
ORDER BY last_updated DESC
LIMIT $3`

// ---------------------------------------------------------------------------
// Reads
// ---------------------------------------------------------------------------

// GetByID returns one suggestion or domain.ErrNotFound.
func (r *Repo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Suggestion, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	row := querier.QueryRow(ctx, getByIDSQL, id)
	s, err := scanSuggestion(row)
	if err != nil {
		return nil, mapError(err, id)
	}
	return s, nil
}

// GetMulti returns suggestions positionally matching ids; absent ids yield
// nil entries.
func (r *Repo) GetMulti(ctx context.Context, ids []uuid.UUID) ([]*domain.Suggestion, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	rows, err := querier.Query(ctx,
		`SELECT `+selectColumns+` FROM suggestions WHERE id = ANY($1::uuid[])`, ids)
	if err != nil {
		return nil, fmt.Errorf("get suggestions multi: %w", err)
	}
	defer rows.Close()

	byID := make(map[uuid.UUID]*domain.Suggestion, len(ids))
	for rows.Next() {
		s, err := scanSuggestion(rows)
		if err != nil {
			return nil, fmt.Errorf("scan suggestion: %w", err)
		}
		byID[s.ID] = s
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("get suggestions multi: %w", err)
	}

	result := make([]*domain.Suggestion, len(ids))
	for i, id := range ids {
		result[i] = byID[id]
	}
	return result, nil
}

// Query returns suggestions matching the filter's field-equality predicates,
// bounded by limit. Result ordering is not guaranteed stable across calls.
func (r *Repo) Query(ctx context.Context, filter domain.SuggestionFilter, limit int) ([]*domain.Suggestion, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	builder := psql.Select(selectColumns).From("suggestions").Limit(uint64(limit))
	if filter.Type != nil {
		builder = builder.Where(sq.Eq{"suggestion_type": *filter.Type})
	}
	if filter.TargetType != nil {
		builder = builder.Where(sq.Eq{"target_type": *filter.TargetType})
	}
	if filter.TargetID != nil {
		builder = builder.Where(sq.Eq{"target_id": *filter.TargetID})
	}
	if filter.Status != nil {
		builder = builder.Where(sq.Eq{"status": *filter.Status})
	}
	if filter.AuthorID != nil {
		builder = builder.Where(sq.Eq{"author_id": *filter.AuthorID})
	}
	if filter.FinalReviewerID != nil {
		builder = builder.Where(sq.Eq{"final_reviewer_id": *filter.FinalReviewerID})
	}
	if filter.ScoreCategory != nil {
		builder = builder.Where(sq.Eq{"score_category": *filter.ScoreCategory})
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build suggestion query: %w", err)
	}

	rows, err := querier.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query suggestions: %w", err)
	}
	defer rows.Close()

	return collectSuggestions(rows)
}

// TranslationIDsForTargets returns the ids of translation suggestions whose
// target id is in targetIDs, in no particular order.
func (r *Repo) TranslationIDsForTargets(ctx context.Context, targetIDs []uuid.UUID) ([]uuid.UUID, error) {
	if len(targetIDs) == 0 {
		return nil, nil
	}
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	rows, err := querier.Query(ctx, translationIDsForTargetsSQL, targetIDs)
	if err != nil {
		return nil, fmt.Errorf("translation ids for targets: %w", err)
	}
	defer rows.Close()

	return collectIDs(rows)
}

// StaleIDs returns the ids of in-review suggestions with no activity since
// before the given time.
func (r *Repo) StaleIDs(ctx context.Context, before time.Time) ([]uuid.UUID, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	rows, err := querier.Query(ctx, staleIDsSQL, before)
	if err != nil {
		return nil, fmt.Errorf("stale suggestion ids: %w", err)
	}
	defer rows.Close()

	return collectIDs(rows)
}

// InReviewByCategories returns in-review suggestions in any of the score
// categories, excluding those authored by excludeAuthor.
func (r *Repo) InReviewByCategories(ctx context.Context, categories []string, excludeAuthor uuid.UUID, limit int) ([]*domain.Suggestion, error) {
	if len(categories) == 0 {
		return nil, nil
	}
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	rows, err := querier.Query(ctx, inReviewByCategoriesSQL, categories, excludeAuthor, limit)
	if err != nil {
		return nil, fmt.Errorf("in-review suggestions by categories: %w", err)
	}
	defer rows.Close()

	return collectSuggestions(rows)
}

// InReviewByType returns in-review suggestions of one type, excluding those
// authored by excludeAuthor.
func (r *Repo) InReviewByType(ctx context.Context, t domain.SuggestionType, excludeAuthor uuid.UUID, limit int) ([]*domain.Suggestion, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	rows, err := querier.Query(ctx, inReviewByTypeSQL, t, excludeAuthor, limit)
	if err != nil {
		return nil, fmt.Errorf("in-review suggestions by type: %w", err)
	}
	defer rows.Close()

	return collectSuggestions(rows)
}

// ByAuthorAndType returns suggestions of one type submitted by the author,
// newest first.
func (r *Repo) ByAuthorAndType(ctx context.Context, authorID uuid.UUID, t domain.SuggestionType, limit int) ([]*domain.Suggestion, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	rows, err := querier.Query(ctx, byAuthorAndTypeSQL, authorID, t, limit)
	if err != nil {
		return nil, fmt.Errorf("suggestions by author and type: %w", err)
	}
	defer rows.Close()

	return collectSuggestions(rows)
}

// ---------------------------------------------------------------------------
// Writes
// ---------------------------------------------------------------------------

// Create persists a new suggestion.
func (r *Repo) Create(ctx context.Context, s *domain.Suggestion) error {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	change, err := domain.MarshalChange(s.Change)
	if err != nil {
		return err
	}

	_, err = querier.Exec(ctx, insertSQL,
		s.ID, s.Type, s.TargetType, s.TargetID, s.TargetVersion,
		s.Status, s.AuthorID, s.FinalReviewerID, change, s.ScoreCategory,
		s.CreatedAt, s.LastUpdated,
	)
	if err != nil {
		return mapError(err, s.ID)
	}
	return nil
}

// MarkHandled persists a terminal transition (accept or reject). The write
// is conditional on the row still being IN_REVIEW; a concurrent winner makes
// this return domain.ErrAlreadyHandled.
// touchLastUpdated is false for system-triggered bulk background updates.
func (r *Repo) MarkHandled(ctx context.Context, s *domain.Suggestion, touchLastUpdated bool) error {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	change, err := domain.MarshalChange(s.Change)
	if err != nil {
		return err
	}

	tag, err := querier.Exec(ctx, markHandledSQL,
		s.ID, s.Status, s.FinalReviewerID, change, touchLastUpdated)
	if err != nil {
		return mapError(err, s.ID)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("suggestion %s: %w", s.ID, domain.ErrAlreadyHandled)
	}
	return nil
}

// MarkHandledMulti persists terminal transitions for every suggestion in one
// batch. Run it inside a transaction: any row that is no longer IN_REVIEW
// fails the whole call so the caller can roll back.
func (r *Repo) MarkHandledMulti(ctx context.Context, suggestions []*domain.Suggestion, touchLastUpdated bool) error {
	if len(suggestions) == 0 {
		return nil
	}
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	batch := &pgx.Batch{}
	for _, s := range suggestions {
		change, err := domain.MarshalChange(s.Change)
		if err != nil {
			return err
		}
		batch.Queue(markHandledSQL, s.ID, s.Status, s.FinalReviewerID, change, touchLastUpdated)
	}

	results := querier.SendBatch(ctx, batch)
	defer results.Close()

	for _, s := range suggestions {
		tag, err := results.Exec()
		if err != nil {
			return mapError(err, s.ID)
		}
		if tag.RowsAffected() == 0 {
			return fmt.Errorf("suggestion %s: %w", s.ID, domain.ErrAlreadyHandled)
		}
	}
	return nil
}

// MarkResubmitted persists a REJECTED → IN_REVIEW transition with the
// replacement change. The status guard makes concurrent resubmissions of one
// suggestion resolve to a single winner.
func (r *Repo) MarkResubmitted(ctx context.Context, s *domain.Suggestion) error {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	change, err := domain.MarshalChange(s.Change)
	if err != nil {
		return err
	}

	tag, err := querier.Exec(ctx, markResubmittedSQL, s.ID, change)
	if err != nil {
		return mapError(err, s.ID)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("suggestion %s: %w", s.ID, domain.ErrConflict)
	}
	return nil
}

// ---------------------------------------------------------------------------
// Row mapping
// ---------------------------------------------------------------------------

func scanSuggestion(row pgx.Row) (*domain.Suggestion, error) {
	var (
		s          domain.Suggestion
		changeJSON []byte
	)
	err := row.Scan(
		&s.ID, &s.Type, &s.TargetType, &s.TargetID, &s.TargetVersion,
		&s.Status, &s.AuthorID, &s.FinalReviewerID, &changeJSON, &s.ScoreCategory,
		&s.CreatedAt, &s.LastUpdated,
	)
	if err != nil {
		return nil, err
	}

	change, err := domain.UnmarshalChange(changeJSON)
	if err != nil {
		return nil, err
	}
	s.Change = change
	return &s, nil
}

func collectSuggestions(rows pgx.Rows) ([]*domain.Suggestion, error) {
	var suggestions []*domain.Suggestion
	for rows.Next() {
		s, err := scanSuggestion(rows)
		if err != nil {
			return nil, fmt.Errorf("scan suggestion: %w", err)
		}
		suggestions = append(suggestions, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate suggestions: %w", err)
	}
	return suggestions, nil
}

func collectIDs(rows pgx.Rows) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan suggestion id: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate suggestion ids: %w", err)
	}
	return ids, nil
}

// ---------------------------------------------------------------------------
// Error mapping
// ---------------------------------------------------------------------------

// mapError converts pgx/pgconn errors into domain errors.
func mapError(err error, id uuid.UUID) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return fmt.Errorf("suggestion %s: %w", id, err)
	}

	if errors.Is(err, pgx.ErrNoRows) {
		return fmt.Errorf("suggestion %s: %w", id, domain.ErrNotFound)
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "23505": // unique_violation
			return fmt.Errorf("suggestion %s: %w", id, domain.ErrAlreadyExists)
		case "23514": // check_violation
			return fmt.Errorf("suggestion %s: %w", id, domain.ErrValidation)
		}
	}

	return fmt.Errorf("suggestion %s: %w", id, err)
}
