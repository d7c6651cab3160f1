package store

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mutlukurt/hirelens/internal/types"
)

var t0 = time.Date(2026, 1, 1, 9, 0, 0, 0, time.UTC)

func candidate(id string, offset time.Duration) types.Candidate {
	return types.Candidate{
		ID:        id,
		Name:      "Candidate " + id,
		Skills:    []string{"go"},
		Stage:     types.StageNew,
		CreatedAt: t0.Add(offset),
		UpdatedAt: t0.Add(offset),
	}
}

func match(id, candidateID, jobID string, offset time.Duration) types.MatchResult {
	return types.MatchResult{
		ID:           id,
		CandidateID:  candidateID,
		JobID:        jobID,
		Score:        50,
		Explanations: []string{"Location match: +0pts"},
		CreatedAt:    t0.Add(offset),
	}
}

func TestMemory_CandidateCRUD(t *testing.T) {
	ctx := context.Background()
	s := NewMemory()

	require.NoError(t, s.PutCandidate(ctx, candidate("c1", 0)))

	got, err := s.GetCandidate(ctx, "c1")
	require.NoError(t, err)
	assert.Equal(t, "Candidate c1", got.Name)

	moved := got.WithStage(types.StageInterview, t0.Add(time.Hour))
	require.NoError(t, s.PutCandidate(ctx, moved))
	got, err = s.GetCandidate(ctx, "c1")
	require.NoError(t, err)
	assert.Equal(t, types.StageInterview, got.Stage)

	require.NoError(t, s.DeleteCandidate(ctx, "c1"))
	_, err = s.GetCandidate(ctx, "c1")
	assert.ErrorIs(t, err, ErrNotFound)
	assert.ErrorIs(t, s.DeleteCandidate(ctx, "c1"), ErrNotFound)
}

func TestMemory_RequiresID(t *testing.T) {
	ctx := context.Background()
	s := NewMemory()

	assert.Error(t, s.PutCandidate(ctx, types.Candidate{}))
	assert.Error(t, s.PutJob(ctx, types.JobPosting{}))
	assert.Error(t, s.PutMatch(ctx, types.MatchResult{}))
}

func TestMemory_ReturnsCopies(t *testing.T) {
	ctx := context.Background()
	s := NewMemory()

	c := candidate("c1", 0)
	require.NoError(t, s.PutCandidate(ctx, c))
	c.Skills[0] = "mutated"

	got, err := s.GetCandidate(ctx, "c1")
	require.NoError(t, err)
	assert.Equal(t, []string{"go"}, got.Skills)

	got.Skills[0] = "mutated again"
	again, _ := s.GetCandidate(ctx, "c1")
	assert.Equal(t, []string{"go"}, again.Skills)
}

func TestMemory_ListOrder(t *testing.T) {
	ctx := context.Background()
	s := NewMemory()

	require.NoError(t, s.PutCandidate(ctx, candidate("late", 2*time.Hour)))
	require.NoError(t, s.PutCandidate(ctx, candidate("b", time.Hour)))
	require.NoError(t, s.PutCandidate(ctx, candidate("a", time.Hour)))
	require.NoError(t, s.PutCandidate(ctx, candidate("early", 0)))

	list, err := s.ListCandidates(ctx)
	require.NoError(t, err)

	ids := make([]string, len(list))
	for i, c := range list {
		ids[i] = c.ID
	}
	assert.Equal(t, []string{"early", "a", "b", "late"}, ids)
}

func TestMemory_MatchIndexes(t *testing.T) {
	ctx := context.Background()
	s := NewMemory()

	require.NoError(t, s.PutMatch(ctx, match("m1", "c1", "j1", 0)))
	require.NoError(t, s.PutMatch(ctx, match("m2", "c1", "j2", time.Minute)))
	require.NoError(t, s.PutMatch(ctx, match("m3", "c2", "j1", 2*time.Minute)))

	byCandidate, err := s.ListMatchesByCandidate(ctx, "c1")
	require.NoError(t, err)
	assert.Len(t, byCandidate, 2)
	assert.Equal(t, "m1", byCandidate[0].ID)
	assert.Equal(t, "m2", byCandidate[1].ID)

	byJob, err := s.ListMatchesByJob(ctx, "j1")
	require.NoError(t, err)
	assert.Len(t, byJob, 2)

	// re-pointing a match moves it between index buckets
	moved := match("m1", "c2", "j2", 0)
	require.NoError(t, s.PutMatch(ctx, moved))
	byCandidate, _ = s.ListMatchesByCandidate(ctx, "c1")
	assert.Len(t, byCandidate, 1)
	byJob, _ = s.ListMatchesByJob(ctx, "j2")
	assert.Len(t, byJob, 2)

	require.NoError(t, s.DeleteMatch(ctx, "m2"))
	byCandidate, _ = s.ListMatchesByCandidate(ctx, "c1")
	assert.Empty(t, byCandidate)
	assert.NotNil(t, byCandidate)

	none, err := s.ListMatchesByJob(ctx, "missing")
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestMemory_DeleteCascadesToMatches(t *testing.T) {
	ctx := context.Background()
	s := NewMemory()

	require.NoError(t, s.PutCandidate(ctx, candidate("c1", 0)))
	require.NoError(t, s.PutJob(ctx, types.JobPosting{ID: "j1", CreatedAt: t0}))
	require.NoError(t, s.PutMatch(ctx, match("m1", "c1", "j1", 0)))
	require.NoError(t, s.PutMatch(ctx, match("m2", "c2", "j1", 0)))
	require.NoError(t, s.PutMatch(ctx, match("m3", "c2", "j2", 0)))

	require.NoError(t, s.DeleteCandidate(ctx, "c1"))
	_, err := s.GetMatch(ctx, "m1")
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, s.DeleteJob(ctx, "j1"))
	_, err = s.GetMatch(ctx, "m2")
	assert.ErrorIs(t, err, ErrNotFound)

	all, err := s.ListMatches(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, "m3", all[0].ID)
}

func TestMemory_Dictionary(t *testing.T) {
	ctx := context.Background()
	s := NewMemory()

	_, err := s.GetDictionary(ctx)
	assert.True(t, errors.Is(err, ErrNotFound))

	entries := map[string][]string{"go": {"golang"}}
	require.NoError(t, s.PutDictionary(ctx, entries))
	entries["go"][0] = "mutated"

	got, err := s.GetDictionary(ctx)
	require.NoError(t, err)
	assert.Equal(t, map[string][]string{"go": {"golang"}}, got)

	require.NoError(t, s.Clear(ctx))
	got, err = s.GetDictionary(ctx)
	require.NoError(t, err, "clear keeps the dictionary")
	assert.Len(t, got, 1)
}

func TestMemory_ImportAndExport(t *testing.T) {
	ctx := context.Background()
	s := NewMemory()
	require.NoError(t, s.PutCandidate(ctx, candidate("existing", 0)))

	snap := types.Snapshot{
		Candidates: []types.Candidate{candidate("c1", time.Minute), candidate("existing", time.Hour)},
		Jobs:       []types.JobPosting{{ID: "j1", Title: "Go Engineer", CreatedAt: t0}},
		Matches:    []types.MatchResult{match("m1", "c1", "j1", 0)},
	}
	require.NoError(t, s.ImportSnapshot(ctx, snap))

	out, err := Export(ctx, s)
	require.NoError(t, err)
	assert.Len(t, out.Candidates, 2)
	assert.Len(t, out.Jobs, 1)
	assert.Len(t, out.Matches, 1)

	byJob, _ := s.ListMatchesByJob(ctx, "j1")
	assert.Len(t, byJob, 1)

	bad := types.Snapshot{
		Candidates: []types.Candidate{candidate("c9", 0)},
		Matches:    []types.MatchResult{{CandidateID: "c9"}},
	}
	assert.Error(t, s.ImportSnapshot(ctx, bad))
	_, err = s.GetCandidate(ctx, "c9")
	assert.ErrorIs(t, err, ErrNotFound, "a rejected import writes nothing")
}

func TestMemory_Clear(t *testing.T) {
	ctx := context.Background()
	s := NewMemory()
	require.NoError(t, s.PutCandidate(ctx, candidate("c1", 0)))
	require.NoError(t, s.PutMatch(ctx, match("m1", "c1", "j1", 0)))

	require.NoError(t, s.Clear(ctx))

	out, err := Export(ctx, s)
	require.NoError(t, err)
	assert.Empty(t, out.Candidates)
	assert.Empty(t, out.Matches)
	byCandidate, _ := s.ListMatchesByCandidate(ctx, "c1")
	assert.Empty(t, byCandidate)
}

func TestMemory_ConcurrentAccess(t *testing.T) {
	ctx := context.Background()
	s := NewMemory()

	var wg sync.WaitGroup
	for w := 0; w < 8; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			for i := 0; i < 50; i++ {
				id := fmt.Sprintf("m-%d-%d", w, i)
				assert.NoError(t, s.PutMatch(ctx, match(id, fmt.Sprintf("c%d", w), "j1", 0)))
				_, _ = s.ListMatchesByJob(ctx, "j1")
			}
		}(w)
	}
	wg.Wait()

	byJob, err := s.ListMatchesByJob(ctx, "j1")
	require.NoError(t, err)
	assert.Len(t, byJob, 8*50)
}
