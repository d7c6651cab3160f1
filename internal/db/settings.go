package db

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/mutlukurt/hirelens/internal/store"
	"github.com/mutlukurt/hirelens/internal/types"
)

// dictionaryKey is the settings row holding the skill dictionary
const dictionaryKey = "skill_dictionary"

// GetDictionary retrieves the saved skill dictionary entries
func (db *DB) GetDictionary(ctx context.Context) (map[string][]string, error) {
	var raw []byte
	err := db.pool.QueryRow(ctx, `SELECT value FROM settings WHERE key = $1`, dictionaryKey).Scan(&raw)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("dictionary: %w", store.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get dictionary: %w", err)
	}

	var entries map[string][]string
	if err := json.Unmarshal(raw, &entries); err != nil {
		return nil, fmt.Errorf("failed to decode dictionary: %w", err)
	}
	return entries, nil
}

// PutDictionary saves the skill dictionary entries
func (db *DB) PutDictionary(ctx context.Context, entries map[string][]string) error {
	raw, err := json.Marshal(entries)
	if err != nil {
		return fmt.Errorf("failed to marshal dictionary: %w", err)
	}
	_, err = db.pool.Exec(ctx,
		`INSERT INTO settings (key, value) VALUES ($1, $2)
		 ON CONFLICT (key) DO UPDATE SET value = $2, updated_at = NOW()`,
		dictionaryKey, raw,
	)
	if err != nil {
		return fmt.Errorf("failed to save dictionary: %w", err)
	}
	return nil
}

// ImportSnapshot upserts every record of the snapshot in one transaction
func (db *DB) ImportSnapshot(ctx context.Context, snap types.Snapshot) error {
	return db.inTx(ctx, func(tx pgx.Tx) error {
		for _, c := range snap.Candidates {
			if err := upsertCandidate(ctx, tx, c); err != nil {
				return err
			}
		}
		for _, j := range snap.Jobs {
			if err := upsertJob(ctx, tx, j); err != nil {
				return err
			}
		}
		for _, m := range snap.Matches {
			if err := upsertMatch(ctx, tx, m); err != nil {
				return err
			}
		}
		return nil
	})
}

// Clear removes every candidate, job posting and match. Settings are kept.
func (db *DB) Clear(ctx context.Context) error {
	if _, err := db.pool.Exec(ctx, `TRUNCATE matches, candidates, job_postings`); err != nil {
		return fmt.Errorf("failed to clear data: %w", err)
	}
	return nil
}
