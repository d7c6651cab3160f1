package types

import "time"

// MatchResult is a scored association between one candidate and one job posting.
// A match is never mutated; re-scoring produces a new record with a new ID.
type MatchResult struct {
	ID              string    `json:"id"`
	CandidateID     string    `json:"candidateId"`
	JobID           string    `json:"jobId"`
	Score           int       `json:"score"`
	Explanations    []string  `json:"explanations"`
	Gaps            []string  `json:"gaps"`
	MatchedSkills   []string  `json:"matchedSkills"`
	MissingMustHave []string  `json:"missingMustHave"`
	CreatedAt       time.Time `json:"createdAt"`
}

// Snapshot is the export/import envelope for all stored records
type Snapshot struct {
	Candidates []Candidate   `json:"candidates"`
	Jobs       []JobPosting  `json:"jobs"`
	Matches    []MatchResult `json:"matches"`
}
