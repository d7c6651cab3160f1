package pipeline

import (
	"context"
	"errors"
	"fmt"
	"runtime"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/mutlukurt/hirelens/internal/extraction"
	"github.com/mutlukurt/hirelens/internal/metrics"
	"github.com/mutlukurt/hirelens/internal/types"
)

// IngestResult is the outcome of adding one candidate
type IngestResult struct {
	Candidate    types.Candidate     `json:"candidate"`
	Matches      []types.MatchResult `json:"matches"`
	AverageScore int                 `json:"averageScore"`
}

// IngestResume parses a resume document into a new candidate, stores it, and matches it
// against every active job. A job whose match cannot be stored is logged and skipped.
func (s *Service) IngestResume(ctx context.Context, doc extraction.Document) (*IngestResult, error) {
	parsed, err := s.Parser.Parse(ctx, doc)
	if err != nil {
		metrics.ResumesIngestedTotal.WithLabelValues(ingestStatus(err)).Inc()
		s.Logger.Warn("resume rejected",
			zap.String("filename", doc.Filename),
			zap.Int("size", len(doc.Data)),
			zap.Error(err))
		return nil, err
	}
	s.emitProgress(StepExtract,
		fmt.Sprintf("Extracted %d skills from %s", len(parsed.Skills), doc.Filename), parsed)

	result, err := s.addCandidate(ctx, extraction.NewCandidate(parsed, s.Clock()))
	if err != nil {
		metrics.ResumesIngestedTotal.WithLabelValues("failed").Inc()
		return nil, err
	}
	metrics.ResumesIngestedTotal.WithLabelValues("success").Inc()
	return result, nil
}

// CreateCandidate stores a candidate given as structured fields and matches it against
// every active job
func (s *Service) CreateCandidate(ctx context.Context, candidate types.Candidate) (*IngestResult, error) {
	now := s.Clock()
	candidate.ID = types.NewID("candidate", now)
	candidate.Stage = types.StageNew
	candidate.CreatedAt = now
	candidate.UpdatedAt = now
	if candidate.Skills == nil {
		candidate.Skills = []string{}
	}
	return s.addCandidate(ctx, candidate)
}

// addCandidate stores candidate and matches it. When matching fails the candidate and any
// matches already stored for it are removed again, so a retry does not leave a duplicate.
func (s *Service) addCandidate(ctx context.Context, candidate types.Candidate) (*IngestResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := s.Store.PutCandidate(ctx, candidate); err != nil {
		return nil, fmt.Errorf("failed to save candidate: %w", err)
	}
	s.emitProgress(StepCandidate, fmt.Sprintf("Created candidate %s", candidate.Name), candidate)

	matches, err := s.matchActiveJobs(ctx, candidate)
	if err != nil {
		if delErr := s.Store.DeleteCandidate(context.WithoutCancel(ctx), candidate.ID); delErr != nil {
			s.Logger.Error("failed to remove unmatched candidate",
				zap.String("candidate_id", candidate.ID),
				zap.Error(delErr))
		}
		return nil, err
	}

	avg := AverageScore(matches)
	s.emitProgress(StepMatch,
		fmt.Sprintf("Matched %s with %d job(s), average score %d", candidate.Name, len(matches), avg), matches)
	s.Logger.Info("candidate added",
		zap.String("candidate_id", candidate.ID),
		zap.Int("skills", len(candidate.Skills)),
		zap.Int("matches", len(matches)),
		zap.Int("average_score", avg))

	return &IngestResult{Candidate: candidate, Matches: matches, AverageScore: avg}, nil
}

// matchActiveJobs scores candidate against every active job in parallel. Matches come
// back in job order.
func (s *Service) matchActiveJobs(ctx context.Context, candidate types.Candidate) ([]types.MatchResult, error) {
	jobs, err := s.Store.ListJobs(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list jobs: %w", err)
	}
	active := types.ActiveJobs(jobs)
	if len(active) == 0 {
		s.Logger.Info("no active jobs for matching", zap.String("candidate_id", candidate.ID))
		return []types.MatchResult{}, nil
	}

	pool, err := s.candidatePool(ctx, candidate)
	if err != nil {
		return nil, err
	}

	slots := make([]*types.MatchResult, len(active))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))

	for i, job := range active {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			m := s.Builder.CreateMatch(candidate, job, pool)
			if err := s.Store.PutMatch(gctx, m); err != nil {
				s.Logger.Warn("failed to store match, skipping job",
					zap.String("candidate_id", candidate.ID),
					zap.String("job_id", job.ID),
					zap.Error(err))
				return nil
			}
			observeMatch(m)
			slots[i] = &m
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	matches := make([]types.MatchResult, 0, len(active))
	for _, m := range slots {
		if m != nil {
			matches = append(matches, *m)
		}
	}
	return matches, nil
}

// candidatePool returns every stored candidate, making sure candidate itself is included
func (s *Service) candidatePool(ctx context.Context, candidate types.Candidate) ([]types.Candidate, error) {
	pool, err := s.Store.ListCandidates(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list candidates: %w", err)
	}
	for _, c := range pool {
		if c.ID == candidate.ID {
			return pool, nil
		}
	}
	return append(pool, candidate), nil
}

func ingestStatus(err error) string {
	var inputErr *extraction.InputValidationError
	if errors.As(err, &inputErr) {
		return "invalid"
	}
	return "failed"
}
