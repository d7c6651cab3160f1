package db

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/mutlukurt/hirelens/internal/store"
	"github.com/mutlukurt/hirelens/internal/types"
)

const candidateColumns = `id, name, email, phone, skills, years_experience, location, raw_text,
	resume_url, stage, created_at, updated_at`

func scanCandidate(row pgx.Row) (types.Candidate, error) {
	var c types.Candidate
	var stage string
	err := row.Scan(&c.ID, &c.Name, &c.Email, &c.Phone, &c.Skills, &c.YearsExperience,
		&c.Location, &c.RawText, &c.ResumeURL, &stage, &c.CreatedAt, &c.UpdatedAt)
	c.Stage = types.Stage(stage)
	c.Skills = nonNil(c.Skills)
	return c, err
}

func upsertCandidate(ctx context.Context, q querier, c types.Candidate) error {
	if c.ID == "" {
		return fmt.Errorf("failed to save candidate: id is required")
	}
	_, err := q.Exec(ctx,
		`INSERT INTO candidates (`+candidateColumns+`)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		 ON CONFLICT (id) DO UPDATE SET
		     name = $2,
		     email = $3,
		     phone = $4,
		     skills = $5,
		     years_experience = $6,
		     location = $7,
		     raw_text = $8,
		     resume_url = $9,
		     stage = $10,
		     updated_at = $12`,
		c.ID, c.Name, c.Email, c.Phone, nonNil(c.Skills), c.YearsExperience,
		c.Location, c.RawText, c.ResumeURL, string(c.Stage), c.CreatedAt, c.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to save candidate %s: %w", c.ID, err)
	}
	return nil
}

// PutCandidate inserts or replaces a candidate
func (db *DB) PutCandidate(ctx context.Context, c types.Candidate) error {
	return upsertCandidate(ctx, db.pool, c)
}

// GetCandidate retrieves a candidate by ID
func (db *DB) GetCandidate(ctx context.Context, id string) (types.Candidate, error) {
	c, err := scanCandidate(db.pool.QueryRow(ctx,
		`SELECT `+candidateColumns+` FROM candidates WHERE id = $1`, id))
	if err != nil {
		return types.Candidate{}, notFound("candidate", id, err)
	}
	return c, nil
}

// ListCandidates retrieves every candidate, oldest first
func (db *DB) ListCandidates(ctx context.Context) ([]types.Candidate, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT `+candidateColumns+` FROM candidates ORDER BY created_at, id`)
	if err != nil {
		return nil, fmt.Errorf("failed to list candidates: %w", err)
	}
	candidates, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (types.Candidate, error) {
		return scanCandidate(row)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan candidates: %w", err)
	}
	return candidates, nil
}

// DeleteCandidate removes a candidate and its matches
func (db *DB) DeleteCandidate(ctx context.Context, id string) error {
	return db.inTx(ctx, func(tx pgx.Tx) error {
		tag, err := tx.Exec(ctx, `DELETE FROM candidates WHERE id = $1`, id)
		if err != nil {
			return fmt.Errorf("failed to delete candidate: %w", err)
		}
		if tag.RowsAffected() == 0 {
			return fmt.Errorf("candidate %s: %w", id, store.ErrNotFound)
		}
		if _, err := tx.Exec(ctx, `DELETE FROM matches WHERE candidate_id = $1`, id); err != nil {
			return fmt.Errorf("failed to delete candidate matches: %w", err)
		}
		return nil
	})
}
