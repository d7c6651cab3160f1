// Package matching turns scorer output into match records.
package matching

import (
	"time"

	"github.com/mutlukurt/hirelens/internal/ranking"
	"github.com/mutlukurt/hirelens/internal/types"
)

// idPrefix prefixes every generated match identifier
const idPrefix = "match"

// Builder creates match records. It stores nothing itself.
type Builder struct {
	Scorer *ranking.Scorer
	Clock  func() time.Time
	NewID  func(now time.Time) string
}

// NewBuilder creates a builder using the wall clock and random match IDs
func NewBuilder(scorer *ranking.Scorer) *Builder {
	return &Builder{
		Scorer: scorer,
		Clock:  time.Now,
		NewID: func(now time.Time) string {
			return types.NewID(idPrefix, now)
		},
	}
}

// CreateMatch scores candidate against job within pool and wraps the result in a new match record
func (b *Builder) CreateMatch(candidate types.Candidate, job types.JobPosting, pool []types.Candidate) types.MatchResult {
	return b.Record(candidate.ID, job.ID, b.Scorer.ScoreCandidate(candidate, job, pool))
}

// Record wraps an existing score in a new match record with a fresh identity
func (b *Builder) Record(candidateID, jobID string, result ranking.Result) types.MatchResult {
	now := b.Clock()
	return types.MatchResult{
		ID:              b.NewID(now),
		CandidateID:     candidateID,
		JobID:           jobID,
		Score:           result.Score,
		Explanations:    result.Explanations,
		Gaps:            result.Gaps,
		MatchedSkills:   result.MatchedSkills,
		MissingMustHave: result.MissingMustHave,
		CreatedAt:       now,
	}
}

// BestMatch returns the highest scoring match. The earliest one in the slice wins a tie.
func BestMatch(matches []types.MatchResult) (types.MatchResult, bool) {
	if len(matches) == 0 {
		return types.MatchResult{}, false
	}
	best := matches[0]
	for _, m := range matches[1:] {
		if m.Score > best.Score {
			best = m
		}
	}
	return best, true
}
