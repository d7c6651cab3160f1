package server

import (
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/mutlukurt/hirelens/internal/extraction"
	"github.com/mutlukurt/hirelens/internal/types"
)

// multipartMemory is how much of an upload form is kept in memory before spilling to disk
const multipartMemory = 32 << 20

// ListCandidatesResponse represents the response for listing candidates
type ListCandidatesResponse struct {
	Candidates []types.Candidate `json:"candidates"`
	Count      int               `json:"count"`
}

// handleListCandidates lists candidates, optionally filtered by ?stage=
func (s *Server) handleListCandidates(w http.ResponseWriter, r *http.Request) {
	candidates, err := s.service.Store.ListCandidates(r.Context())
	if err != nil {
		s.failure(w, r, err)
		return
	}

	if raw := r.URL.Query().Get("stage"); raw != "" {
		stage, err := types.ParseStage(raw)
		if err != nil {
			s.failure(w, r, &ErrValidation{Field: "stage", Message: err.Error()})
			return
		}
		filtered := make([]types.Candidate, 0, len(candidates))
		for _, c := range candidates {
			if c.Stage == stage {
				filtered = append(filtered, c)
			}
		}
		candidates = filtered
	}

	s.jsonResponse(w, http.StatusOK, ListCandidatesResponse{Candidates: candidates, Count: len(candidates)})
}

// handleCreateCandidate adds a candidate from structured fields and matches it against active jobs
func (s *Server) handleCreateCandidate(w http.ResponseWriter, r *http.Request) {
	var req types.CreateCandidateRequest
	if err := decodeJSON(w, r, &req); err != nil {
		s.failure(w, r, err)
		return
	}
	if err := req.Validate(); err != nil {
		s.failure(w, r, err)
		return
	}

	result, err := s.service.CreateCandidate(r.Context(), req.ToCandidate())
	if err != nil {
		s.failure(w, r, err)
		return
	}
	s.jsonResponse(w, http.StatusCreated, result)
}

// handleUploadResume parses an uploaded resume ("file" form field) into a candidate
func (s *Server) handleUploadResume(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, s.maxUploadBytes+multipartMemory)
	if err := r.ParseMultipartForm(multipartMemory); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			s.failure(w, r, &extraction.InputValidationError{Field: "file", Message: "file is too large"})
			return
		}
		s.failure(w, r, &ErrValidation{Field: "file", Message: "expected a multipart form"})
		return
	}
	defer func() { _ = r.MultipartForm.RemoveAll() }()

	file, header, err := r.FormFile("file")
	if err != nil {
		s.failure(w, r, &ErrValidation{Field: "file", Message: "no file uploaded"})
		return
	}
	defer func() { _ = file.Close() }()

	contentType := header.Header.Get("Content-Type")
	if err := extraction.ValidateUpload(header.Filename, contentType, header.Size, s.maxUploadBytes); err != nil {
		s.failure(w, r, err)
		return
	}

	data, err := io.ReadAll(io.LimitReader(file, s.maxUploadBytes+1))
	if err != nil {
		s.failure(w, r, fmt.Errorf("failed to read upload: %w", err))
		return
	}

	result, err := s.service.IngestResume(r.Context(), extraction.Document{
		Filename:    header.Filename,
		ContentType: contentType,
		Data:        data,
	})
	if err != nil {
		s.failure(w, r, err)
		return
	}
	s.jsonResponse(w, http.StatusCreated, result)
}

func (s *Server) handleGetCandidate(w http.ResponseWriter, r *http.Request) {
	candidate, err := s.service.Store.GetCandidate(r.Context(), r.PathValue("id"))
	if err != nil {
		s.failure(w, r, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, candidate)
}

func (s *Server) handleDeleteCandidate(w http.ResponseWriter, r *http.Request) {
	if err := s.service.Store.DeleteCandidate(r.Context(), r.PathValue("id")); err != nil {
		s.failure(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// handleUpdateStage moves a candidate to another pipeline stage
func (s *Server) handleUpdateStage(w http.ResponseWriter, r *http.Request) {
	var req types.UpdateStageRequest
	if err := decodeJSON(w, r, &req); err != nil {
		s.failure(w, r, err)
		return
	}
	if err := req.Validate(); err != nil {
		s.failure(w, r, err)
		return
	}

	candidate, err := s.service.MoveStage(r.Context(), r.PathValue("id"), types.Stage(req.Stage))
	if err != nil {
		s.failure(w, r, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, candidate)
}

func (s *Server) handleListCandidateMatches(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if _, err := s.service.Store.GetCandidate(r.Context(), id); err != nil {
		s.failure(w, r, err)
		return
	}
	matches, err := s.service.Store.ListMatchesByCandidate(r.Context(), id)
	if err != nil {
		s.failure(w, r, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, ListMatchesResponse{Matches: matches, Count: len(matches)})
}

func (s *Server) handleBestMatch(w http.ResponseWriter, r *http.Request) {
	match, err := s.service.BestMatch(r.Context(), r.PathValue("id"))
	if err != nil {
		s.failure(w, r, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, match)
}
