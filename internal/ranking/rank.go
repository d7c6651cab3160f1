package ranking

import (
	"context"
	"runtime"
	"sort"

	"golang.org/x/sync/errgroup"

	"github.com/mutlukurt/hirelens/internal/types"
)

// Ranked pairs a pool member with its score against one job posting
type Ranked struct {
	Candidate types.Candidate
	Result    Result
}

// RankPool scores every candidate in pool against job and returns them sorted by score
// (descending), ties broken by candidate ID. Each candidate is scored independently
// against the same corpus, so running them in parallel does not change any score.
func (s *Scorer) RankPool(ctx context.Context, job types.JobPosting, pool []types.Candidate) ([]Ranked, error) {
	ranked := make([]Ranked, len(pool))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i := range pool {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			ranked[i] = Ranked{
				Candidate: pool[i],
				Result:    s.ScoreCandidate(pool[i], job, pool),
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		if ranked[i].Result.Score != ranked[j].Result.Score {
			return ranked[i].Result.Score > ranked[j].Result.Score
		}
		return ranked[i].Candidate.ID < ranked[j].Candidate.ID
	})
	return ranked, nil
}
