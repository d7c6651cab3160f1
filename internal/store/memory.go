package store

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/mutlukurt/hirelens/internal/types"
)

// Memory is a Store backed by in-process maps. Matches are indexed by candidate and by job.
type Memory struct {
	mu          sync.RWMutex
	candidates  map[string]types.Candidate
	jobs        map[string]types.JobPosting
	matches     map[string]types.MatchResult
	byCandidate map[string]map[string]struct{}
	byJob       map[string]map[string]struct{}
	dictionary  map[string][]string
}

var _ Store = (*Memory)(nil)

// NewMemory creates an empty memory store
func NewMemory() *Memory {
	m := &Memory{}
	m.reset()
	return m
}

func (m *Memory) reset() {
	m.candidates = make(map[string]types.Candidate)
	m.jobs = make(map[string]types.JobPosting)
	m.matches = make(map[string]types.MatchResult)
	m.byCandidate = make(map[string]map[string]struct{})
	m.byJob = make(map[string]map[string]struct{})
}

// PutCandidate inserts or replaces a candidate
func (m *Memory) PutCandidate(_ context.Context, c types.Candidate) error {
	if c.ID == "" {
		return fmt.Errorf("failed to put candidate: id is required")
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.candidates[c.ID] = cloneCandidate(c)
	return nil
}

// GetCandidate returns the candidate with the given id
func (m *Memory) GetCandidate(_ context.Context, id string) (types.Candidate, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	c, ok := m.candidates[id]
	if !ok {
		return types.Candidate{}, fmt.Errorf("candidate %s: %w", id, ErrNotFound)
	}
	return cloneCandidate(c), nil
}

// ListCandidates returns every candidate, oldest first
func (m *Memory) ListCandidates(_ context.Context) ([]types.Candidate, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]types.Candidate, 0, len(m.candidates))
	for _, c := range m.candidates {
		out = append(out, cloneCandidate(c))
	}
	sortRecords(out, func(c types.Candidate) (time.Time, string) { return c.CreatedAt, c.ID })
	return out, nil
}

// DeleteCandidate removes a candidate and its matches
func (m *Memory) DeleteCandidate(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.candidates[id]; !ok {
		return fmt.Errorf("candidate %s: %w", id, ErrNotFound)
	}
	delete(m.candidates, id)
	for matchID := range m.byCandidate[id] {
		m.deleteMatchLocked(matchID)
	}
	return nil
}

// PutJob inserts or replaces a job posting
func (m *Memory) PutJob(_ context.Context, j types.JobPosting) error {
	if j.ID == "" {
		return fmt.Errorf("failed to put job: id is required")
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.jobs[j.ID] = cloneJob(j)
	return nil
}

// GetJob returns the job posting with the given id
func (m *Memory) GetJob(_ context.Context, id string) (types.JobPosting, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	j, ok := m.jobs[id]
	if !ok {
		return types.JobPosting{}, fmt.Errorf("job %s: %w", id, ErrNotFound)
	}
	return cloneJob(j), nil
}

// ListJobs returns every job posting, oldest first
func (m *Memory) ListJobs(_ context.Context) ([]types.JobPosting, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]types.JobPosting, 0, len(m.jobs))
	for _, j := range m.jobs {
		out = append(out, cloneJob(j))
	}
	sortRecords(out, func(j types.JobPosting) (time.Time, string) { return j.CreatedAt, j.ID })
	return out, nil
}

// DeleteJob removes a job posting and its matches
func (m *Memory) DeleteJob(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.jobs[id]; !ok {
		return fmt.Errorf("job %s: %w", id, ErrNotFound)
	}
	delete(m.jobs, id)
	for matchID := range m.byJob[id] {
		m.deleteMatchLocked(matchID)
	}
	return nil
}

// PutMatch inserts or replaces a match and updates both secondary indexes
func (m *Memory) PutMatch(_ context.Context, match types.MatchResult) error {
	if match.ID == "" {
		return fmt.Errorf("failed to put match: id is required")
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.putMatchLocked(match)
	return nil
}

func (m *Memory) putMatchLocked(match types.MatchResult) {
	if prev, ok := m.matches[match.ID]; ok {
		removeIndex(m.byCandidate, prev.CandidateID, prev.ID)
		removeIndex(m.byJob, prev.JobID, prev.ID)
	}
	m.matches[match.ID] = cloneMatch(match)
	addIndex(m.byCandidate, match.CandidateID, match.ID)
	addIndex(m.byJob, match.JobID, match.ID)
}

// GetMatch returns the match with the given id
func (m *Memory) GetMatch(_ context.Context, id string) (types.MatchResult, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	match, ok := m.matches[id]
	if !ok {
		return types.MatchResult{}, fmt.Errorf("match %s: %w", id, ErrNotFound)
	}
	return cloneMatch(match), nil
}

// ListMatches returns every match, oldest first
func (m *Memory) ListMatches(_ context.Context) ([]types.MatchResult, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	ids := make(map[string]struct{}, len(m.matches))
	for id := range m.matches {
		ids[id] = struct{}{}
	}
	return m.collectMatchesLocked(ids), nil
}

// ListMatchesByCandidate returns the matches of one candidate, oldest first
func (m *Memory) ListMatchesByCandidate(_ context.Context, candidateID string) ([]types.MatchResult, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.collectMatchesLocked(m.byCandidate[candidateID]), nil
}

// ListMatchesByJob returns the matches of one job posting, oldest first
func (m *Memory) ListMatchesByJob(_ context.Context, jobID string) ([]types.MatchResult, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.collectMatchesLocked(m.byJob[jobID]), nil
}

// DeleteMatch removes a match
func (m *Memory) DeleteMatch(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.matches[id]; !ok {
		return fmt.Errorf("match %s: %w", id, ErrNotFound)
	}
	m.deleteMatchLocked(id)
	return nil
}

func (m *Memory) deleteMatchLocked(id string) {
	match, ok := m.matches[id]
	if !ok {
		return
	}
	delete(m.matches, id)
	removeIndex(m.byCandidate, match.CandidateID, id)
	removeIndex(m.byJob, match.JobID, id)
}

func (m *Memory) collectMatchesLocked(ids map[string]struct{}) []types.MatchResult {
	out := make([]types.MatchResult, 0, len(ids))
	for id := range ids {
		out = append(out, cloneMatch(m.matches[id]))
	}
	sortRecords(out, func(r types.MatchResult) (time.Time, string) { return r.CreatedAt, r.ID })
	return out
}

// GetDictionary returns the saved skill dictionary entries
func (m *Memory) GetDictionary(_ context.Context) (map[string][]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.dictionary == nil {
		return nil, fmt.Errorf("dictionary: %w", ErrNotFound)
	}
	return cloneEntries(m.dictionary), nil
}

// PutDictionary saves the skill dictionary entries
func (m *Memory) PutDictionary(_ context.Context, entries map[string][]string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.dictionary = cloneEntries(entries)
	return nil
}

// ImportSnapshot upserts every record of the snapshot under one lock
func (m *Memory) ImportSnapshot(_ context.Context, snap types.Snapshot) error {
	for _, c := range snap.Candidates {
		if c.ID == "" {
			return fmt.Errorf("failed to import candidate: id is required")
		}
	}
	for _, j := range snap.Jobs {
		if j.ID == "" {
			return fmt.Errorf("failed to import job: id is required")
		}
	}
	for _, r := range snap.Matches {
		if r.ID == "" {
			return fmt.Errorf("failed to import match: id is required")
		}
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	for _, c := range snap.Candidates {
		m.candidates[c.ID] = cloneCandidate(c)
	}
	for _, j := range snap.Jobs {
		m.jobs[j.ID] = cloneJob(j)
	}
	for _, r := range snap.Matches {
		m.putMatchLocked(r)
	}
	return nil
}

// Clear removes every candidate, job and match
func (m *Memory) Clear(_ context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.reset()
	return nil
}

// Close is a no-op
func (m *Memory) Close() error {
	return nil
}

func addIndex(index map[string]map[string]struct{}, key, id string) {
	set, ok := index[key]
	if !ok {
		set = make(map[string]struct{})
		index[key] = set
	}
	set[id] = struct{}{}
}

func removeIndex(index map[string]map[string]struct{}, key, id string) {
	set, ok := index[key]
	if !ok {
		return
	}
	delete(set, id)
	if len(set) == 0 {
		delete(index, key)
	}
}

func sortRecords[T any](items []T, key func(T) (time.Time, string)) {
	sort.Slice(items, func(i, j int) bool {
		ti, idi := key(items[i])
		tj, idj := key(items[j])
		if !ti.Equal(tj) {
			return ti.Before(tj)
		}
		return idi < idj
	})
}

func cloneStrings(s []string) []string {
	if s == nil {
		return nil
	}
	return append([]string{}, s...)
}

func cloneCandidate(c types.Candidate) types.Candidate {
	c.Skills = cloneStrings(c.Skills)
	return c
}

func cloneJob(j types.JobPosting) types.JobPosting {
	j.MustHaveSkills = cloneStrings(j.MustHaveSkills)
	j.NiceToHaveSkills = cloneStrings(j.NiceToHaveSkills)
	return j
}

func cloneMatch(r types.MatchResult) types.MatchResult {
	r.Explanations = cloneStrings(r.Explanations)
	r.Gaps = cloneStrings(r.Gaps)
	r.MatchedSkills = cloneStrings(r.MatchedSkills)
	r.MissingMustHave = cloneStrings(r.MissingMustHave)
	return r
}

func cloneEntries(entries map[string][]string) map[string][]string {
	out := make(map[string][]string, len(entries))
	for k, v := range entries {
		out[k] = append([]string{}, v...)
	}
	return out
}
