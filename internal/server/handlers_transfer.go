package server

import (
	"errors"
	"fmt"
	"io"
	"net/http"
)

// handleExport downloads every stored record as one JSON document
func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	snap, err := s.service.Export(r.Context())
	if err != nil {
		s.failure(w, r, err)
		return
	}
	w.Header().Set("Content-Disposition", `attachment; filename="hirelens-export.json"`)
	s.jsonResponse(w, http.StatusOK, snap)
}

// handleImport upserts every record of an exported document
func (s *Server) handleImport(w http.ResponseWriter, r *http.Request) {
	data, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxImportBytes))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			s.failure(w, r, &ErrValidation{Field: "body", Message: fmt.Sprintf("import must be smaller than %d bytes", maxImportBytes)})
			return
		}
		s.failure(w, r, fmt.Errorf("failed to read import: %w", err))
		return
	}

	summary, err := s.service.Import(r.Context(), data)
	if err != nil {
		s.failure(w, r, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, summary)
}
