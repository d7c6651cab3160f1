package pipeline

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/mutlukurt/hirelens/internal/matching"
	"github.com/mutlukurt/hirelens/internal/metrics"
	"github.com/mutlukurt/hirelens/internal/store"
	"github.com/mutlukurt/hirelens/internal/types"
)

// RankedMatch pairs a candidate with the match recorded for it by RankJob
type RankedMatch struct {
	Candidate types.Candidate   `json:"candidate"`
	Match     types.MatchResult `json:"match"`
}

// CreateJob stores a new job posting built from req
func (s *Service) CreateJob(ctx context.Context, req *types.JobPostingRequest) (types.JobPosting, error) {
	now := s.Clock()
	job := req.ToJobPosting(types.JobPosting{
		ID:        types.NewID("job", now),
		CreatedAt: now,
	})
	job.UpdatedAt = now

	if err := s.Store.PutJob(ctx, job); err != nil {
		return types.JobPosting{}, fmt.Errorf("failed to save job posting: %w", err)
	}
	s.Logger.Info("job posting created", zap.String("job_id", job.ID), zap.String("title", job.Title))
	return job, nil
}

// UpdateJob replaces the editable fields of an existing job posting
func (s *Service) UpdateJob(ctx context.Context, id string, req *types.JobPostingRequest) (types.JobPosting, error) {
	existing, err := s.Store.GetJob(ctx, id)
	if err != nil {
		return types.JobPosting{}, err
	}
	job := req.ToJobPosting(existing)
	job.UpdatedAt = s.Clock()

	if err := s.Store.PutJob(ctx, job); err != nil {
		return types.JobPosting{}, fmt.Errorf("failed to update job posting: %w", err)
	}
	return job, nil
}

// ScoreCandidate scores one candidate against one job, using every stored candidate as
// the relevance corpus, and stores the new match
func (s *Service) ScoreCandidate(ctx context.Context, candidateID, jobID string) (types.MatchResult, error) {
	candidate, err := s.Store.GetCandidate(ctx, candidateID)
	if err != nil {
		return types.MatchResult{}, err
	}
	job, err := s.Store.GetJob(ctx, jobID)
	if err != nil {
		return types.MatchResult{}, err
	}
	pool, err := s.candidatePool(ctx, candidate)
	if err != nil {
		return types.MatchResult{}, err
	}

	m := s.Builder.CreateMatch(candidate, job, pool)
	if err := s.Store.PutMatch(ctx, m); err != nil {
		return types.MatchResult{}, fmt.Errorf("failed to save match: %w", err)
	}
	observeMatch(m)
	return m, nil
}

// RankJob rescores every stored candidate against a job, stores a new match for each,
// and returns them best first
func (s *Service) RankJob(ctx context.Context, jobID string) ([]RankedMatch, error) {
	job, err := s.Store.GetJob(ctx, jobID)
	if err != nil {
		return nil, err
	}
	pool, err := s.Store.ListCandidates(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list candidates: %w", err)
	}

	start := time.Now()
	ranked, err := s.Builder.Scorer.RankPool(ctx, job, pool)
	metrics.RankDuration.Observe(time.Since(start).Seconds())
	if err != nil {
		return nil, fmt.Errorf("failed to rank candidates: %w", err)
	}

	out := make([]RankedMatch, 0, len(ranked))
	for _, r := range ranked {
		m := s.Builder.Record(r.Candidate.ID, job.ID, r.Result)
		if err := s.Store.PutMatch(ctx, m); err != nil {
			return nil, fmt.Errorf("failed to save match: %w", err)
		}
		observeMatch(m)
		out = append(out, RankedMatch{Candidate: r.Candidate, Match: m})
	}

	s.Logger.Info("job ranked",
		zap.String("job_id", job.ID),
		zap.Int("candidates", len(out)),
		zap.Duration("elapsed", time.Since(start)))
	return out, nil
}

// MoveStage moves a candidate to another pipeline stage. Any transition is allowed.
func (s *Service) MoveStage(ctx context.Context, candidateID string, stage types.Stage) (types.Candidate, error) {
	if !stage.Valid() {
		return types.Candidate{}, &InvalidRequestError{
			Field:   "stage",
			Message: fmt.Sprintf("unknown stage %q", stage),
		}
	}
	candidate, err := s.Store.GetCandidate(ctx, candidateID)
	if err != nil {
		return types.Candidate{}, err
	}

	moved := candidate.WithStage(stage, s.Clock())
	if err := s.Store.PutCandidate(ctx, moved); err != nil {
		return types.Candidate{}, fmt.Errorf("failed to update candidate stage: %w", err)
	}
	s.Logger.Info("candidate stage changed",
		zap.String("candidate_id", candidateID),
		zap.String("from", string(candidate.Stage)),
		zap.String("to", string(stage)))
	return moved, nil
}

// BestMatch returns the highest scoring stored match of a candidate
func (s *Service) BestMatch(ctx context.Context, candidateID string) (types.MatchResult, error) {
	if _, err := s.Store.GetCandidate(ctx, candidateID); err != nil {
		return types.MatchResult{}, err
	}
	matches, err := s.Store.ListMatchesByCandidate(ctx, candidateID)
	if err != nil {
		return types.MatchResult{}, fmt.Errorf("failed to list matches: %w", err)
	}
	best, ok := matching.BestMatch(matches)
	if !ok {
		return types.MatchResult{}, fmt.Errorf("matches for candidate %s: %w", candidateID, store.ErrNotFound)
	}
	return best, nil
}
