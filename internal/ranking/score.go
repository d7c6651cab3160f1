package ranking

import (
	"math"
	"strings"

	"github.com/mutlukurt/hirelens/internal/skills"
	"github.com/mutlukurt/hirelens/internal/types"
)

// Signal weights and caps for the composite score
const (
	baseScore            = 50.0
	textRelevanceWeight  = 0.3
	mustHavePenaltyEach  = 15
	mustHavePenaltyCap   = 50
	niceToHaveBonusEach  = 3
	niceToHaveBonusCap   = 15
	experiencePenalty    = 10
	locationPenalty      = 5
	keywordsPerBonusStep = 3
	keywordDensityCap    = 10
)

// Result is the outcome of scoring one candidate against one job posting
type Result struct {
	Score           int      `json:"score"`
	Explanations    []string `json:"explanations"`
	Gaps            []string `json:"gaps"`
	MatchedSkills   []string `json:"matchedSkills"`
	MissingMustHave []string `json:"missingMustHave"`
}

// Scorer combines BM25 relevance with rule-based skill, experience and location signals
type Scorer struct {
	Dictionary *skills.Dictionary
	BM25       BM25
}

// NewScorer creates a scorer over dict with the default BM25 parameters
func NewScorer(dict *skills.Dictionary) *Scorer {
	return &Scorer{Dictionary: dict, BM25: DefaultBM25}
}

// ScoreCandidate scores candidate against job. The pool is the BM25 corpus and should
// contain the candidate itself. Signals are applied in a fixed order and each one adds
// its explanation line, so identical inputs always produce identical output.
func (s *Scorer) ScoreCandidate(candidate types.Candidate, job types.JobPosting, pool []types.Candidate) Result {
	score := baseScore
	explanations := make([]string, 0, 6)
	gaps := make([]string, 0)

	// Text relevance
	query := job.Title + " " + job.Description + " " + strings.Join(job.MustHaveSkills, " ")
	relevance := s.BM25.NormalizedScore(query, candidate.RawText, types.RawTexts(pool))
	contribution := relevance * textRelevanceWeight
	score += contribution
	explanations = append(explanations, textRelevanceLine(relevance, contribution))

	// Must-have coverage
	mustHave := s.Dictionary.CompareSkills(candidate.Skills, job.MustHaveSkills)
	penalty := min(len(mustHave.Missing)*mustHavePenaltyEach, mustHavePenaltyCap)
	score -= float64(penalty)
	if len(mustHave.Missing) > 0 {
		explanations = append(explanations, missingMustHaveLine(len(mustHave.Missing), penalty))
		for _, skill := range mustHave.Missing {
			gaps = append(gaps, missingSkillGap(skill))
		}
	} else {
		explanations = append(explanations, allMustHaveLine(len(mustHave.Matched)))
	}

	// Nice-to-have
	niceToHave := s.Dictionary.CompareSkills(candidate.Skills, job.NiceToHaveSkills)
	bonus := min(len(niceToHave.Matched)*niceToHaveBonusEach, niceToHaveBonusCap)
	score += float64(bonus)
	if len(niceToHave.Matched) > 0 {
		explanations = append(explanations, niceToHaveLine(len(niceToHave.Matched), bonus))
	}

	// Experience
	if job.MinYears > 0 {
		if candidate.YearsExperience < job.MinYears {
			score -= experiencePenalty
			explanations = append(explanations, experienceBelowLine(candidate.YearsExperience, job.MinYears))
			gaps = append(gaps, experienceGap(job.MinYears-candidate.YearsExperience))
		} else {
			explanations = append(explanations, experienceMetLine(candidate.YearsExperience))
		}
	}

	// Location
	if job.Location != "" && candidate.Location != "" {
		match := locationsOverlap(job.Location, candidate.Location)
		if !match {
			score -= locationPenalty
			gaps = append(gaps, locationGap(job.Location))
		}
		explanations = append(explanations, locationLine(match))
	}

	// Keyword density
	density := s.keywordDensity(candidate.RawText, job)
	densityBonus := min(density/keywordsPerBonusStep, keywordDensityCap)
	score += float64(densityBonus)
	if densityBonus > 0 {
		explanations = append(explanations, keywordDensityLine(densityBonus))
	}

	matched := append(append([]string{}, mustHave.Matched...), niceToHave.Matched...)

	return Result{
		Score:           int(math.Round(clamp(score, 0, 100))),
		Explanations:    explanations,
		Gaps:            gaps,
		MatchedSkills:   s.Dictionary.NormalizeSkills(matched),
		MissingMustHave: mustHave.Missing,
	}
}

// keywordDensity sums skill mentions in text over the job's must-have and nice-to-have skills
func (s *Scorer) keywordDensity(text string, job types.JobPosting) int {
	required := make([]string, 0, len(job.MustHaveSkills)+len(job.NiceToHaveSkills))
	required = append(required, job.MustHaveSkills...)
	required = append(required, job.NiceToHaveSkills...)

	total := 0
	for _, skill := range s.Dictionary.NormalizeSkills(required) {
		total += s.Dictionary.SkillFrequency(text, skill)
	}
	return total
}

// locationsOverlap matches when either location contains the other, ignoring case
func locationsOverlap(jobLocation, candidateLocation string) bool {
	j := strings.ToLower(jobLocation)
	c := strings.ToLower(candidateLocation)
	return strings.Contains(c, j) || strings.Contains(j, c)
}
