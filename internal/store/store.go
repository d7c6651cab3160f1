// Package store defines the persistence contract for candidates, job postings, matches and
// the skill dictionary, with an in-process implementation.
package store

import (
	"context"
	"errors"

	"github.com/mutlukurt/hirelens/internal/types"
)

// ErrNotFound is returned when a record does not exist
var ErrNotFound = errors.New("not found")

// Store persists recruiting records. A put is visible to the next read.
// Deleting a candidate or a job also deletes the matches that reference it.
type Store interface {
	PutCandidate(ctx context.Context, c types.Candidate) error
	GetCandidate(ctx context.Context, id string) (types.Candidate, error)
	ListCandidates(ctx context.Context) ([]types.Candidate, error)
	DeleteCandidate(ctx context.Context, id string) error

	PutJob(ctx context.Context, j types.JobPosting) error
	GetJob(ctx context.Context, id string) (types.JobPosting, error)
	ListJobs(ctx context.Context) ([]types.JobPosting, error)
	DeleteJob(ctx context.Context, id string) error

	PutMatch(ctx context.Context, m types.MatchResult) error
	GetMatch(ctx context.Context, id string) (types.MatchResult, error)
	ListMatches(ctx context.Context) ([]types.MatchResult, error)
	ListMatchesByCandidate(ctx context.Context, candidateID string) ([]types.MatchResult, error)
	ListMatchesByJob(ctx context.Context, jobID string) ([]types.MatchResult, error)
	DeleteMatch(ctx context.Context, id string) error

	// GetDictionary returns ErrNotFound until a dictionary has been saved
	GetDictionary(ctx context.Context) (map[string][]string, error)
	PutDictionary(ctx context.Context, entries map[string][]string) error

	// ImportSnapshot upserts every record of the snapshot, all or nothing
	ImportSnapshot(ctx context.Context, snap types.Snapshot) error
	// Clear removes every candidate, job and match. The dictionary is kept.
	Clear(ctx context.Context) error
	Close() error
}

// Export collects every stored record into a snapshot
func Export(ctx context.Context, s Store) (types.Snapshot, error) {
	candidates, err := s.ListCandidates(ctx)
	if err != nil {
		return types.Snapshot{}, err
	}
	jobs, err := s.ListJobs(ctx)
	if err != nil {
		return types.Snapshot{}, err
	}
	matches, err := s.ListMatches(ctx)
	if err != nil {
		return types.Snapshot{}, err
	}
	return types.Snapshot{Candidates: candidates, Jobs: jobs, Matches: matches}, nil
}
