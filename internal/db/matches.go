package db

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/mutlukurt/hirelens/internal/store"
	"github.com/mutlukurt/hirelens/internal/types"
)

const matchColumns = `id, candidate_id, job_id, score, explanations, gaps, matched_skills,
	missing_must_have, created_at`

func scanMatch(row pgx.Row) (types.MatchResult, error) {
	var m types.MatchResult
	err := row.Scan(&m.ID, &m.CandidateID, &m.JobID, &m.Score, &m.Explanations, &m.Gaps,
		&m.MatchedSkills, &m.MissingMustHave, &m.CreatedAt)
	m.Explanations = nonNil(m.Explanations)
	m.Gaps = nonNil(m.Gaps)
	m.MatchedSkills = nonNil(m.MatchedSkills)
	m.MissingMustHave = nonNil(m.MissingMustHave)
	return m, err
}

func upsertMatch(ctx context.Context, q querier, m types.MatchResult) error {
	if m.ID == "" {
		return fmt.Errorf("failed to save match: id is required")
	}
	_, err := q.Exec(ctx,
		`INSERT INTO matches (`+matchColumns+`)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		 ON CONFLICT (id) DO UPDATE SET
		     candidate_id = $2,
		     job_id = $3,
		     score = $4,
		     explanations = $5,
		     gaps = $6,
		     matched_skills = $7,
		     missing_must_have = $8,
		     created_at = $9`,
		m.ID, m.CandidateID, m.JobID, m.Score, nonNil(m.Explanations), nonNil(m.Gaps),
		nonNil(m.MatchedSkills), nonNil(m.MissingMustHave), m.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to save match %s: %w", m.ID, err)
	}
	return nil
}

// PutMatch inserts or replaces a match
func (db *DB) PutMatch(ctx context.Context, m types.MatchResult) error {
	return upsertMatch(ctx, db.pool, m)
}

// GetMatch retrieves a match by ID
func (db *DB) GetMatch(ctx context.Context, id string) (types.MatchResult, error) {
	m, err := scanMatch(db.pool.QueryRow(ctx,
		`SELECT `+matchColumns+` FROM matches WHERE id = $1`, id))
	if err != nil {
		return types.MatchResult{}, notFound("match", id, err)
	}
	return m, nil
}

// ListMatches retrieves every match, oldest first
func (db *DB) ListMatches(ctx context.Context) ([]types.MatchResult, error) {
	return db.queryMatches(ctx, `SELECT `+matchColumns+` FROM matches ORDER BY created_at, id`)
}

// ListMatchesByCandidate retrieves the matches of one candidate, oldest first
func (db *DB) ListMatchesByCandidate(ctx context.Context, candidateID string) ([]types.MatchResult, error) {
	return db.queryMatches(ctx,
		`SELECT `+matchColumns+` FROM matches WHERE candidate_id = $1 ORDER BY created_at, id`,
		candidateID)
}

// ListMatchesByJob retrieves the matches of one job posting, oldest first
func (db *DB) ListMatchesByJob(ctx context.Context, jobID string) ([]types.MatchResult, error) {
	return db.queryMatches(ctx,
		`SELECT `+matchColumns+` FROM matches WHERE job_id = $1 ORDER BY created_at, id`,
		jobID)
}

func (db *DB) queryMatches(ctx context.Context, sql string, args ...any) ([]types.MatchResult, error) {
	rows, err := db.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list matches: %w", err)
	}
	matches, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (types.MatchResult, error) {
		return scanMatch(row)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan matches: %w", err)
	}
	return matches, nil
}

// DeleteMatch removes a match
func (db *DB) DeleteMatch(ctx context.Context, id string) error {
	tag, err := db.pool.Exec(ctx, `DELETE FROM matches WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete match: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("match %s: %w", id, store.ErrNotFound)
	}
	return nil
}
