package pipeline

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/mutlukurt/hirelens/internal/extraction"
	"github.com/mutlukurt/hirelens/internal/schemas"
	"github.com/mutlukurt/hirelens/internal/skills"
	"github.com/mutlukurt/hirelens/internal/store"
	"github.com/mutlukurt/hirelens/internal/types"
)

const janeResume = `Jane Doe
jane@example.com
Location: Berlin
Senior backend engineer with 6 years of experience in Go, Kubernetes and Docker.
Built services on AWS with Terraform.`

var fixedNow = time.Date(2024, 6, 1, 9, 0, 0, 0, time.UTC)

func newTestService(t *testing.T, st store.Store) *Service {
	t.Helper()
	if st == nil {
		st = store.NewMemory()
	}
	svc := NewService(st, skills.Default(), 0, zap.NewNop())
	svc.Clock = func() time.Time { return fixedNow }
	return svc
}

func putJob(t *testing.T, st store.Store, id string, active bool, offset time.Duration, must ...string) types.JobPosting {
	t.Helper()
	job := types.JobPosting{
		ID:               id,
		Title:            "Backend Engineer",
		Description:      "Build Go services on Kubernetes",
		MustHaveSkills:   must,
		NiceToHaveSkills: []string{"terraform"},
		MinYears:         3,
		IsActive:         active,
		CreatedAt:        fixedNow.Add(offset),
		UpdatedAt:        fixedNow.Add(offset),
	}
	require.NoError(t, st.PutJob(context.Background(), job))
	return job
}

func putCandidate(t *testing.T, st store.Store, id, rawText string, years int, skillList ...string) types.Candidate {
	t.Helper()
	c := types.Candidate{
		ID:              id,
		Name:            id,
		Skills:          skillList,
		YearsExperience: years,
		RawText:         rawText,
		Stage:           types.StageNew,
		CreatedAt:       fixedNow,
		UpdatedAt:       fixedNow,
	}
	require.NoError(t, st.PutCandidate(context.Background(), c))
	return c
}

func textDocument(text string) extraction.Document {
	return extraction.Document{Filename: "resume.txt", ContentType: "text/plain", Data: []byte(text)}
}

// failingMatchStore refuses to store matches for one job
type failingMatchStore struct {
	*store.Memory
	failJob string
}

func (f *failingMatchStore) PutMatch(ctx context.Context, m types.MatchResult) error {
	if m.JobID == f.failJob {
		return errors.New("disk full")
	}
	return f.Memory.PutMatch(ctx, m)
}

// failingDictionaryStore refuses to save the dictionary
type failingDictionaryStore struct {
	*store.Memory
}

func (f *failingDictionaryStore) PutDictionary(context.Context, map[string][]string) error {
	return errors.New("disk full")
}

// failingPoolStore cannot list candidates, so matching a new candidate fails
type failingPoolStore struct {
	*store.Memory
}

func (f *failingPoolStore) ListCandidates(context.Context) ([]types.Candidate, error) {
	return nil, errors.New("connection reset")
}

func TestIngestResume_MatchesActiveJobs(t *testing.T) {
	ctx := context.Background()
	st := store.NewMemory()
	putJob(t, st, "job-a", true, 0, "go", "kubernetes")
	putJob(t, st, "job-b", true, time.Minute, "java")
	putJob(t, st, "job-closed", false, 2*time.Minute, "go")

	svc := newTestService(t, st)
	var steps []string
	svc.OnProgress = func(e ProgressEvent) { steps = append(steps, e.Step) }

	result, err := svc.IngestResume(ctx, textDocument(janeResume))
	require.NoError(t, err)

	assert.Equal(t, "Jane Doe", result.Candidate.Name)
	assert.Equal(t, "jane@example.com", result.Candidate.Email)
	assert.Equal(t, "Berlin", result.Candidate.Location)
	assert.Equal(t, 6, result.Candidate.YearsExperience)
	assert.Equal(t, types.StageNew, result.Candidate.Stage)
	assert.Subset(t, result.Candidate.Skills, []string{"go", "kubernetes", "docker", "aws", "terraform"})

	require.Len(t, result.Matches, 2)
	assert.Equal(t, "job-a", result.Matches[0].JobID)
	assert.Equal(t, "job-b", result.Matches[1].JobID)
	assert.Greater(t, result.Matches[0].Score, result.Matches[1].Score)
	assert.Equal(t, AverageScore(result.Matches), result.AverageScore)
	assert.Equal(t, []string{StepExtract, StepCandidate, StepMatch}, steps)

	stored, err := st.GetCandidate(ctx, result.Candidate.ID)
	require.NoError(t, err)
	assert.Equal(t, result.Candidate.Skills, stored.Skills)

	matches, err := st.ListMatchesByCandidate(ctx, result.Candidate.ID)
	require.NoError(t, err)
	assert.Len(t, matches, 2)
}

func TestIngestResume_NoActiveJobs(t *testing.T) {
	st := store.NewMemory()
	putJob(t, st, "job-closed", false, 0, "go")
	svc := newTestService(t, st)

	result, err := svc.IngestResume(context.Background(), textDocument(janeResume))
	require.NoError(t, err)
	assert.NotNil(t, result.Matches)
	assert.Empty(t, result.Matches)
	assert.Equal(t, 0, result.AverageScore)
}

func TestIngestResume_Rejected(t *testing.T) {
	tests := []struct {
		name    string
		doc     extraction.Document
		wantErr any
	}{
		{
			name:    "empty file",
			doc:     textDocument(""),
			wantErr: &extraction.InputValidationError{},
		},
		{
			name:    "unsupported type",
			doc:     extraction.Document{Filename: "photo.png", ContentType: "image/png", Data: []byte{1, 2, 3}},
			wantErr: &extraction.InputValidationError{},
		},
		{
			name:    "no usable signal",
			doc:     textDocument("lorem ipsum dolor sit amet"),
			wantErr: &extraction.ExtractionError{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			st := store.NewMemory()
			svc := newTestService(t, st)

			_, err := svc.IngestResume(context.Background(), tt.doc)
			require.Error(t, err)
			assert.IsType(t, tt.wantErr, err)

			candidates, err := st.ListCandidates(context.Background())
			require.NoError(t, err)
			assert.Empty(t, candidates)
		})
	}
}

func TestIngestResume_SkipsJobWhenMatchCannotBeStored(t *testing.T) {
	st := &failingMatchStore{Memory: store.NewMemory(), failJob: "job-b"}
	putJob(t, st, "job-a", true, 0, "go")
	putJob(t, st, "job-b", true, time.Minute, "go")
	putJob(t, st, "job-c", true, 2*time.Minute, "go")
	svc := newTestService(t, st)

	result, err := svc.IngestResume(context.Background(), textDocument(janeResume))
	require.NoError(t, err)

	require.Len(t, result.Matches, 2)
	assert.Equal(t, "job-a", result.Matches[0].JobID)
	assert.Equal(t, "job-c", result.Matches[1].JobID)
}

func TestIngestResume_Cancelled(t *testing.T) {
	st := store.NewMemory()
	putJob(t, st, "job-a", true, 0, "go")
	svc := newTestService(t, st)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := svc.IngestResume(ctx, textDocument(janeResume))
	assert.ErrorIs(t, err, context.Canceled)

	stored, err := st.ListCandidates(context.Background())
	require.NoError(t, err)
	assert.Empty(t, stored)
}

func TestAddCandidate_RemovedWhenMatchingFails(t *testing.T) {
	mem := store.NewMemory()
	putJob(t, mem, "job-a", true, 0, "go")
	svc := newTestService(t, &failingPoolStore{Memory: mem})

	tests := []struct {
		name string
		add  func() error
	}{
		{"ingest", func() error {
			_, err := svc.IngestResume(context.Background(), textDocument(janeResume))
			return err
		}},
		{"create", func() error {
			_, err := svc.CreateCandidate(context.Background(), types.Candidate{Name: "Sam Lee", RawText: "Go developer"})
			return err
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.add()
			require.Error(t, err)
			assert.Contains(t, err.Error(), "failed to list candidates")

			stored, err := mem.ListCandidates(context.Background())
			require.NoError(t, err)
			assert.Empty(t, stored)
			matches, err := mem.ListMatches(context.Background())
			require.NoError(t, err)
			assert.Empty(t, matches)
		})
	}
}

func TestCreateCandidate(t *testing.T) {
	st := store.NewMemory()
	putJob(t, st, "job-a", true, 0, "go")
	svc := newTestService(t, st)

	req := &types.CreateCandidateRequest{
		Name:            "Sam Lee",
		Skills:          []string{"golang"},
		YearsExperience: 4,
		RawText:         "Go developer",
	}
	require.NoError(t, req.Validate())

	result, err := svc.CreateCandidate(context.Background(), req.ToCandidate())
	require.NoError(t, err)
	assert.NotEmpty(t, result.Candidate.ID)
	assert.Equal(t, fixedNow, result.Candidate.CreatedAt)
	require.Len(t, result.Matches, 1)
	assert.Equal(t, []string{"go"}, result.Matches[0].MatchedSkills)
}

func TestScoreCandidate(t *testing.T) {
	ctx := context.Background()
	st := store.NewMemory()
	putJob(t, st, "job-a", true, 0, "go")
	putCandidate(t, st, "cand-1", "Go and Kubernetes engineer", 5, "go", "kubernetes")
	svc := newTestService(t, st)

	m, err := svc.ScoreCandidate(ctx, "cand-1", "job-a")
	require.NoError(t, err)
	assert.Equal(t, "cand-1", m.CandidateID)
	assert.Equal(t, "job-a", m.JobID)
	assert.Equal(t, []string{"go"}, m.MatchedSkills)

	again, err := svc.ScoreCandidate(ctx, "cand-1", "job-a")
	require.NoError(t, err)
	assert.NotEqual(t, m.ID, again.ID)
	assert.Equal(t, m.Score, again.Score)

	_, err = svc.ScoreCandidate(ctx, "missing", "job-a")
	assert.ErrorIs(t, err, store.ErrNotFound)
	_, err = svc.ScoreCandidate(ctx, "cand-1", "missing")
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestRankJob(t *testing.T) {
	ctx := context.Background()
	st := store.NewMemory()
	putJob(t, st, "job-a", true, 0, "go", "kubernetes")
	putCandidate(t, st, "weak", "Java developer", 1, "java")
	putCandidate(t, st, "strong", "Go and Kubernetes engineer building Go services on Kubernetes", 8, "go", "kubernetes", "terraform")
	putCandidate(t, st, "middle", "Go developer", 4, "go")
	svc := newTestService(t, st)

	ranked, err := svc.RankJob(ctx, "job-a")
	require.NoError(t, err)
	require.Len(t, ranked, 3)

	ids := []string{ranked[0].Candidate.ID, ranked[1].Candidate.ID, ranked[2].Candidate.ID}
	assert.Equal(t, []string{"strong", "middle", "weak"}, ids)
	for i := 1; i < len(ranked); i++ {
		assert.GreaterOrEqual(t, ranked[i-1].Match.Score, ranked[i].Match.Score)
	}

	stored, err := st.ListMatchesByJob(ctx, "job-a")
	require.NoError(t, err)
	assert.Len(t, stored, 3)

	_, err = svc.RankJob(ctx, "missing")
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestMoveStage(t *testing.T) {
	ctx := context.Background()
	st := store.NewMemory()
	putCandidate(t, st, "cand-1", "Go developer", 4, "go")
	svc := newTestService(t, st)
	later := fixedNow.Add(time.Hour)
	svc.Clock = func() time.Time { return later }

	moved, err := svc.MoveStage(ctx, "cand-1", types.StageInterview)
	require.NoError(t, err)
	assert.Equal(t, types.StageInterview, moved.Stage)
	assert.Equal(t, later, moved.UpdatedAt)

	back, err := svc.MoveStage(ctx, "cand-1", types.StageNew)
	require.NoError(t, err)
	assert.Equal(t, types.StageNew, back.Stage)

	_, err = svc.MoveStage(ctx, "cand-1", types.Stage("hired"))
	var invalid *InvalidRequestError
	require.ErrorAs(t, err, &invalid)
	assert.Equal(t, "stage", invalid.Field)

	_, err = svc.MoveStage(ctx, "missing", types.StageShortlist)
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestBestMatch(t *testing.T) {
	ctx := context.Background()
	st := store.NewMemory()
	putCandidate(t, st, "cand-1", "Go developer", 4, "go")
	putCandidate(t, st, "cand-2", "Java developer", 4, "java")
	for i, score := range []int{40, 80, 80} {
		require.NoError(t, st.PutMatch(ctx, types.MatchResult{
			ID:          []string{"m-1", "m-2", "m-3"}[i],
			CandidateID: "cand-1",
			JobID:       "job-a",
			Score:       score,
			CreatedAt:   fixedNow.Add(time.Duration(i) * time.Minute),
		}))
	}
	svc := newTestService(t, st)

	best, err := svc.BestMatch(ctx, "cand-1")
	require.NoError(t, err)
	assert.Equal(t, "m-2", best.ID)

	_, err = svc.BestMatch(ctx, "cand-2")
	assert.ErrorIs(t, err, store.ErrNotFound)
	_, err = svc.BestMatch(ctx, "missing")
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestCreateAndUpdateJob(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t, nil)

	job, err := svc.CreateJob(ctx, &types.JobPostingRequest{
		Title:          "Platform Engineer",
		MustHaveSkills: []string{"k8s"},
	})
	require.NoError(t, err)
	assert.True(t, job.IsActive)
	assert.Equal(t, []string{}, job.NiceToHaveSkills)
	assert.Equal(t, fixedNow, job.CreatedAt)

	later := fixedNow.Add(time.Hour)
	svc.Clock = func() time.Time { return later }
	inactive := false
	updated, err := svc.UpdateJob(ctx, job.ID, &types.JobPostingRequest{
		Title:    "Staff Platform Engineer",
		IsActive: &inactive,
	})
	require.NoError(t, err)
	assert.Equal(t, job.ID, updated.ID)
	assert.Equal(t, fixedNow, updated.CreatedAt)
	assert.Equal(t, later, updated.UpdatedAt)
	assert.False(t, updated.IsActive)

	_, err = svc.UpdateJob(ctx, "missing", &types.JobPostingRequest{Title: "x"})
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestDictionaryEdits(t *testing.T) {
	ctx := context.Background()
	st := store.NewMemory()
	svc := newTestService(t, st)

	require.NoError(t, svc.AddSkill(ctx, "Elixir", []string{"ex"}))
	assert.Equal(t, "elixir", svc.Dictionary.NormalizeSkill("EX"))

	saved, err := st.GetDictionary(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"ex"}, saved["elixir"])

	assert.ErrorIs(t, svc.AddSkill(ctx, "elixir", nil), skills.ErrSkillExists)

	var validationErr *skills.ValidationError
	require.ErrorAs(t, svc.AddSkill(ctx, "gleam", []string{"  "}), &validationErr)
	assert.False(t, svc.Dictionary.Has("gleam"))

	require.NoError(t, svc.AddSynonym(ctx, "elixir", "phoenix"))
	assert.Equal(t, "elixir", svc.Dictionary.NormalizeSkill("phoenix"))

	require.NoError(t, svc.RemoveSynonym(ctx, "elixir", "phoenix"))
	assert.Equal(t, "phoenix", svc.Dictionary.NormalizeSkill("phoenix"))
	assert.ErrorIs(t, svc.RemoveSynonym(ctx, "elixir", "phoenix"), skills.ErrSynonymNotFound)

	require.NoError(t, svc.RemoveSkill(ctx, "elixir"))
	assert.False(t, svc.Dictionary.Has("ex"))
	assert.ErrorIs(t, svc.RemoveSkill(ctx, "elixir"), skills.ErrSkillNotFound)

	require.NoError(t, svc.RemoveSkill(ctx, "go"))
	require.NoError(t, svc.ResetDictionary(ctx))
	assert.Equal(t, "go", svc.Dictionary.NormalizeSkill("golang"))

	saved, err = st.GetDictionary(ctx)
	require.NoError(t, err)
	assert.Equal(t, skills.Default().Entries(), saved)
}

func TestDictionaryEdits_FailedSaveLeavesDictionaryUnchanged(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t, &failingDictionaryStore{Memory: store.NewMemory()})
	before := svc.Dictionary.Entries()

	tests := []struct {
		name string
		edit func() error
	}{
		{"add skill", func() error { return svc.AddSkill(ctx, "elixir", []string{"ex"}) }},
		{"add synonym", func() error { return svc.AddSynonym(ctx, "go", "gopher") }},
		{"remove skill", func() error { return svc.RemoveSkill(ctx, "go") }},
		{"remove synonym", func() error { return svc.RemoveSynonym(ctx, "go", "golang") }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.edit()
			require.Error(t, err)
			assert.Contains(t, err.Error(), "failed to save dictionary")
			assert.Equal(t, before, svc.Dictionary.Entries())
		})
	}

	assert.False(t, svc.Dictionary.Has("elixir"))
	assert.Equal(t, "ex", svc.Dictionary.NormalizeSkill("ex"))
}

func TestAddSkill_TakesOverSynonymAtomically(t *testing.T) {
	ctx := context.Background()
	st := store.NewMemory()
	svc := newTestService(t, st)

	require.NoError(t, svc.AddSkill(ctx, "golang", []string{"gopher"}))

	assert.Equal(t, "golang", svc.Dictionary.NormalizeSkill("golang"))
	assert.Equal(t, "golang", svc.Dictionary.NormalizeSkill("gopher"))
	goSynonyms, _ := svc.Dictionary.Synonyms("go")
	assert.NotContains(t, goSynonyms, "golang")

	saved, err := st.GetDictionary(ctx)
	require.NoError(t, err)
	assert.Equal(t, svc.Dictionary.Entries(), saved)
}

func TestLoadDictionary(t *testing.T) {
	ctx := context.Background()
	st := store.NewMemory()
	svc := newTestService(t, st)
	before := svc.Dictionary.Len()

	require.NoError(t, svc.LoadDictionary(ctx))
	assert.Equal(t, before, svc.Dictionary.Len())

	require.NoError(t, st.PutDictionary(ctx, map[string][]string{"cobol": {"cobol85"}}))
	require.NoError(t, svc.LoadDictionary(ctx))
	assert.Equal(t, 1, svc.Dictionary.Len())
	assert.Equal(t, "cobol", svc.Dictionary.NormalizeSkill("COBOL85"))
	assert.Equal(t, "golang", svc.Dictionary.NormalizeSkill("golang"))
}

func TestExportImport(t *testing.T) {
	ctx := context.Background()
	source := store.NewMemory()
	putJob(t, source, "job-a", true, 0, "go")
	svc := newTestService(t, source)
	_, err := svc.IngestResume(ctx, textDocument(janeResume))
	require.NoError(t, err)

	snap, err := svc.Export(ctx)
	require.NoError(t, err)
	assert.Len(t, snap.Candidates, 1)
	assert.Len(t, snap.Jobs, 1)
	assert.Len(t, snap.Matches, 1)

	data, err := json.Marshal(snap)
	require.NoError(t, err)

	target := store.NewMemory()
	summary, err := newTestService(t, target).Import(ctx, data)
	require.NoError(t, err)
	assert.Equal(t, ImportSummary{Candidates: 1, Jobs: 1, Matches: 1}, summary)

	imported, err := store.Export(ctx, target)
	require.NoError(t, err)
	assert.Equal(t, snap.Candidates[0].ID, imported.Candidates[0].ID)
	assert.Equal(t, snap.Matches[0].Score, imported.Matches[0].Score)
}

func TestImport_Invalid(t *testing.T) {
	ctx := context.Background()
	st := store.NewMemory()
	svc := newTestService(t, st)

	_, err := svc.Import(ctx, []byte(`{"jobs": [{"id": "j", "title": "", "mustHaveSkills": [], "niceToHaveSkills": []}]}`))
	var validationErr *schemas.ValidationError
	require.ErrorAs(t, err, &validationErr)

	jobs, err := st.ListJobs(ctx)
	require.NoError(t, err)
	assert.Empty(t, jobs)
}

func TestAverageScore(t *testing.T) {
	tests := []struct {
		name   string
		scores []int
		want   int
	}{
		{"none", nil, 0},
		{"single", []int{73}, 73},
		{"rounds half up", []int{50, 51}, 51},
		{"rounds down", []int{10, 10, 11}, 10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			matches := make([]types.MatchResult, len(tt.scores))
			for i, s := range tt.scores {
				matches[i].Score = s
			}
			assert.Equal(t, tt.want, AverageScore(matches))
		})
	}
}
