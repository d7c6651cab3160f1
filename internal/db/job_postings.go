package db

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/mutlukurt/hirelens/internal/store"
	"github.com/mutlukurt/hirelens/internal/types"
)

const jobColumns = `id, title, description, must_have_skills, nice_to_have_skills, min_years,
	location, is_active, created_at, updated_at`

func scanJob(row pgx.Row) (types.JobPosting, error) {
	var j types.JobPosting
	err := row.Scan(&j.ID, &j.Title, &j.Description, &j.MustHaveSkills, &j.NiceToHaveSkills,
		&j.MinYears, &j.Location, &j.IsActive, &j.CreatedAt, &j.UpdatedAt)
	j.MustHaveSkills = nonNil(j.MustHaveSkills)
	j.NiceToHaveSkills = nonNil(j.NiceToHaveSkills)
	return j, err
}

func upsertJob(ctx context.Context, q querier, j types.JobPosting) error {
	if j.ID == "" {
		return fmt.Errorf("failed to save job posting: id is required")
	}
	_, err := q.Exec(ctx,
		`INSERT INTO job_postings (`+jobColumns+`)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		 ON CONFLICT (id) DO UPDATE SET
		     title = $2,
		     description = $3,
		     must_have_skills = $4,
		     nice_to_have_skills = $5,
		     min_years = $6,
		     location = $7,
		     is_active = $8,
		     updated_at = $10`,
		j.ID, j.Title, j.Description, nonNil(j.MustHaveSkills), nonNil(j.NiceToHaveSkills),
		j.MinYears, j.Location, j.IsActive, j.CreatedAt, j.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to save job posting %s: %w", j.ID, err)
	}
	return nil
}

// PutJob inserts or replaces a job posting
func (db *DB) PutJob(ctx context.Context, j types.JobPosting) error {
	return upsertJob(ctx, db.pool, j)
}

// GetJob retrieves a job posting by ID
func (db *DB) GetJob(ctx context.Context, id string) (types.JobPosting, error) {
	j, err := scanJob(db.pool.QueryRow(ctx,
		`SELECT `+jobColumns+` FROM job_postings WHERE id = $1`, id))
	if err != nil {
		return types.JobPosting{}, notFound("job", id, err)
	}
	return j, nil
}

// ListJobs retrieves every job posting, oldest first
func (db *DB) ListJobs(ctx context.Context) ([]types.JobPosting, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT `+jobColumns+` FROM job_postings ORDER BY created_at, id`)
	if err != nil {
		return nil, fmt.Errorf("failed to list job postings: %w", err)
	}
	jobs, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (types.JobPosting, error) {
		return scanJob(row)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan job postings: %w", err)
	}
	return jobs, nil
}

// DeleteJob removes a job posting and its matches
func (db *DB) DeleteJob(ctx context.Context, id string) error {
	return db.inTx(ctx, func(tx pgx.Tx) error {
		tag, err := tx.Exec(ctx, `DELETE FROM job_postings WHERE id = $1`, id)
		if err != nil {
			return fmt.Errorf("failed to delete job posting: %w", err)
		}
		if tag.RowsAffected() == 0 {
			return fmt.Errorf("job %s: %w", id, store.ErrNotFound)
		}
		if _, err := tx.Exec(ctx, `DELETE FROM matches WHERE job_id = $1`, id); err != nil {
			return fmt.Errorf("failed to delete job matches: %w", err)
		}
		return nil
	})
}
