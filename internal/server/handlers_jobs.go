package server

import (
	"net/http"
	"sort"
	"strconv"

	"github.com/mutlukurt/hirelens/internal/pipeline"
	"github.com/mutlukurt/hirelens/internal/types"
)

// ListJobsResponse represents the response for listing job postings
type ListJobsResponse struct {
	Jobs  []types.JobPosting `json:"jobs"`
	Count int                `json:"count"`
}

// ListMatchesResponse represents the response for listing matches
type ListMatchesResponse struct {
	Matches []types.MatchResult `json:"matches"`
	Count   int                 `json:"count"`
}

// RankJobResponse represents the result of rescoring every candidate for a job
type RankJobResponse struct {
	JobID   string                 `json:"jobId"`
	Ranking []pipeline.RankedMatch `json:"ranking"`
	Count   int                    `json:"count"`
}

// handleListJobs lists job postings, optionally only active ones with ?active=true
func (s *Server) handleListJobs(w http.ResponseWriter, r *http.Request) {
	jobs, err := s.service.Store.ListJobs(r.Context())
	if err != nil {
		s.failure(w, r, err)
		return
	}

	if raw := r.URL.Query().Get("active"); raw != "" {
		activeOnly, err := strconv.ParseBool(raw)
		if err != nil {
			s.failure(w, r, &ErrValidation{Field: "active", Message: "must be true or false"})
			return
		}
		if activeOnly {
			jobs = types.ActiveJobs(jobs)
		}
	}

	s.jsonResponse(w, http.StatusOK, ListJobsResponse{Jobs: jobs, Count: len(jobs)})
}

func (s *Server) handleCreateJob(w http.ResponseWriter, r *http.Request) {
	var req types.JobPostingRequest
	if err := decodeJSON(w, r, &req); err != nil {
		s.failure(w, r, err)
		return
	}
	if err := req.Validate(); err != nil {
		s.failure(w, r, err)
		return
	}

	job, err := s.service.CreateJob(r.Context(), &req)
	if err != nil {
		s.failure(w, r, err)
		return
	}
	s.jsonResponse(w, http.StatusCreated, job)
}

func (s *Server) handleGetJob(w http.ResponseWriter, r *http.Request) {
	job, err := s.service.Store.GetJob(r.Context(), r.PathValue("id"))
	if err != nil {
		s.failure(w, r, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, job)
}

func (s *Server) handleUpdateJob(w http.ResponseWriter, r *http.Request) {
	var req types.JobPostingRequest
	if err := decodeJSON(w, r, &req); err != nil {
		s.failure(w, r, err)
		return
	}
	if err := req.Validate(); err != nil {
		s.failure(w, r, err)
		return
	}

	job, err := s.service.UpdateJob(r.Context(), r.PathValue("id"), &req)
	if err != nil {
		s.failure(w, r, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, job)
}

func (s *Server) handleDeleteJob(w http.ResponseWriter, r *http.Request) {
	if err := s.service.Store.DeleteJob(r.Context(), r.PathValue("id")); err != nil {
		s.failure(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// handleListJobMatches lists stored matches for a job, best score first
func (s *Server) handleListJobMatches(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if _, err := s.service.Store.GetJob(r.Context(), id); err != nil {
		s.failure(w, r, err)
		return
	}
	matches, err := s.service.Store.ListMatchesByJob(r.Context(), id)
	if err != nil {
		s.failure(w, r, err)
		return
	}
	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].Score > matches[j].Score
	})
	s.jsonResponse(w, http.StatusOK, ListMatchesResponse{Matches: matches, Count: len(matches)})
}

// handleRankJob rescores every candidate for a job
func (s *Server) handleRankJob(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	ranking, err := s.service.RankJob(r.Context(), id)
	if err != nil {
		s.failure(w, r, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, RankJobResponse{JobID: id, Ranking: ranking, Count: len(ranking)})
}

// handleScoreCandidate scores one candidate against one job and stores the match
func (s *Server) handleScoreCandidate(w http.ResponseWriter, r *http.Request) {
	match, err := s.service.ScoreCandidate(r.Context(), r.PathValue("candidate_id"), r.PathValue("id"))
	if err != nil {
		s.failure(w, r, err)
		return
	}
	s.jsonResponse(w, http.StatusCreated, match)
}

func (s *Server) handleGetMatch(w http.ResponseWriter, r *http.Request) {
	match, err := s.service.Store.GetMatch(r.Context(), r.PathValue("id"))
	if err != nil {
		s.failure(w, r, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, match)
}
