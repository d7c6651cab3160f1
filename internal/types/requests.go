package types

import (
	"github.com/go-playground/validator/v10"
)

// CreateCandidateRequest represents a candidate submitted as structured fields rather than a document
type CreateCandidateRequest struct {
	Name            string   `json:"name" validate:"required,min=1"`
	Email           string   `json:"email" validate:"omitempty,email"`
	Phone           string   `json:"phone,omitempty"`
	Skills          []string `json:"skills" validate:"dive,required"`
	YearsExperience int      `json:"yearsExperience" validate:"gte=0"`
	Location        string   `json:"location,omitempty"`
	RawText         string   `json:"rawText" validate:"required"`
	ResumeURL       string   `json:"resumeUrl,omitempty" validate:"omitempty,url"`
}

// JobPostingRequest represents the body for creating or replacing a job posting
type JobPostingRequest struct {
	Title            string   `json:"title" validate:"required,min=1"`
	Description      string   `json:"description"`
	MustHaveSkills   []string `json:"mustHaveSkills" validate:"dive,required"`
	NiceToHaveSkills []string `json:"niceToHaveSkills" validate:"dive,required"`
	MinYears         int      `json:"minYears" validate:"gte=0"`
	Location         string   `json:"location,omitempty"`
	IsActive         *bool    `json:"isActive,omitempty"`
}

// UpdateStageRequest moves a candidate between pipeline columns
type UpdateStageRequest struct {
	Stage string `json:"stage" validate:"required,oneof=new shortlist interview"`
}

// AddSkillRequest registers a new canonical skill
type AddSkillRequest struct {
	Skill    string   `json:"skill" validate:"required"`
	Synonyms []string `json:"synonyms,omitempty" validate:"dive,required"`
}

// AddSynonymRequest attaches a synonym to a canonical skill
type AddSynonymRequest struct {
	Synonym string `json:"synonym" validate:"required"`
}

// Validate validates the CreateCandidateRequest using the validator.
func (r *CreateCandidateRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}

// Validate validates the JobPostingRequest using the validator.
func (r *JobPostingRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}

// Validate validates the UpdateStageRequest using the validator.
func (r *UpdateStageRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}

// Validate validates the AddSkillRequest using the validator.
func (r *AddSkillRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}

// Validate validates the AddSynonymRequest using the validator.
func (r *AddSynonymRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}

// active defaults to true when the field is omitted
func (r *JobPostingRequest) active() bool {
	if r.IsActive == nil {
		return true
	}
	return *r.IsActive
}

// ToJobPosting builds a job posting from the request, keeping identity and creation time from existing
func (r *JobPostingRequest) ToJobPosting(existing JobPosting) JobPosting {
	existing.Title = r.Title
	existing.Description = r.Description
	existing.MustHaveSkills = nonNil(r.MustHaveSkills)
	existing.NiceToHaveSkills = nonNil(r.NiceToHaveSkills)
	existing.MinYears = r.MinYears
	existing.Location = r.Location
	existing.IsActive = r.active()
	return existing
}

// ToCandidate builds a new-stage candidate from the request
func (r *CreateCandidateRequest) ToCandidate() Candidate {
	return Candidate{
		Name:            r.Name,
		Email:           r.Email,
		Phone:           r.Phone,
		Skills:          nonNil(r.Skills),
		YearsExperience: r.YearsExperience,
		Location:        r.Location,
		RawText:         r.RawText,
		ResumeURL:       r.ResumeURL,
		Stage:           StageNew,
	}
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
