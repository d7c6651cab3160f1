package server

import (
	"net/http"

	"github.com/mutlukurt/hirelens/internal/types"
)

// DictionaryResponse represents the skill dictionary
type DictionaryResponse struct {
	Skills map[string][]string `json:"skills"`
	Count  int                 `json:"count"`
}

// SkillResponse represents one canonical skill with its synonyms
type SkillResponse struct {
	Skill    string   `json:"skill"`
	Synonyms []string `json:"synonyms"`
}

func (s *Server) dictionaryResponse() DictionaryResponse {
	entries := s.service.Dictionary.Entries()
	return DictionaryResponse{Skills: entries, Count: len(entries)}
}

func (s *Server) skillResponse(skill string) SkillResponse {
	canonical := s.service.Dictionary.NormalizeSkill(skill)
	synonyms, _ := s.service.Dictionary.Synonyms(canonical)
	if synonyms == nil {
		synonyms = []string{}
	}
	return SkillResponse{Skill: canonical, Synonyms: synonyms}
}

func (s *Server) handleGetDictionary(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, s.dictionaryResponse())
}

func (s *Server) handleAddSkill(w http.ResponseWriter, r *http.Request) {
	var req types.AddSkillRequest
	if err := decodeJSON(w, r, &req); err != nil {
		s.failure(w, r, err)
		return
	}
	if err := req.Validate(); err != nil {
		s.failure(w, r, err)
		return
	}

	if err := s.service.AddSkill(r.Context(), req.Skill, req.Synonyms); err != nil {
		s.failure(w, r, err)
		return
	}
	s.jsonResponse(w, http.StatusCreated, s.skillResponse(req.Skill))
}

func (s *Server) handleRemoveSkill(w http.ResponseWriter, r *http.Request) {
	if err := s.service.RemoveSkill(r.Context(), r.PathValue("skill")); err != nil {
		s.failure(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleAddSynonym(w http.ResponseWriter, r *http.Request) {
	var req types.AddSynonymRequest
	if err := decodeJSON(w, r, &req); err != nil {
		s.failure(w, r, err)
		return
	}
	if err := req.Validate(); err != nil {
		s.failure(w, r, err)
		return
	}

	skill := r.PathValue("skill")
	if err := s.service.AddSynonym(r.Context(), skill, req.Synonym); err != nil {
		s.failure(w, r, err)
		return
	}
	s.jsonResponse(w, http.StatusCreated, s.skillResponse(skill))
}

func (s *Server) handleRemoveSynonym(w http.ResponseWriter, r *http.Request) {
	if err := s.service.RemoveSynonym(r.Context(), r.PathValue("skill"), r.PathValue("synonym")); err != nil {
		s.failure(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleResetDictionary(w http.ResponseWriter, r *http.Request) {
	if err := s.service.ResetDictionary(r.Context()); err != nil {
		s.failure(w, r, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, s.dictionaryResponse())
}
