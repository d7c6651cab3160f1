// Package types provides type definitions for structured data used throughout the hirelens system.
//
//nolint:revive // types is a standard Go package name pattern
package types

import (
	"fmt"
	"strings"
	"time"
)

// Stage is a candidate's position in the hiring pipeline
type Stage string

// Pipeline stages. Transitions are unrestricted in either direction.
const (
	StageNew       Stage = "new"
	StageShortlist Stage = "shortlist"
	StageInterview Stage = "interview"
)

// Stages lists every pipeline stage in board order
var Stages = []Stage{StageNew, StageShortlist, StageInterview}

// Valid reports whether s is a known stage
func (s Stage) Valid() bool {
	switch s {
	case StageNew, StageShortlist, StageInterview:
		return true
	}
	return false
}

// ParseStage converts a user-supplied string to a Stage (case-insensitive)
func ParseStage(raw string) (Stage, error) {
	stage := Stage(strings.ToLower(strings.TrimSpace(raw)))
	if !stage.Valid() {
		return "", fmt.Errorf("unknown stage %q: must be one of new, shortlist, interview", raw)
	}
	return stage, nil
}

// Candidate represents a person whose resume has been extracted into structured fields.
// Everything except Stage (and UpdatedAt) is fixed at creation.
type Candidate struct {
	ID              string    `json:"id"`
	Name            string    `json:"name"`
	Email           string    `json:"email"`
	Phone           string    `json:"phone"`
	Skills          []string  `json:"skills"`
	YearsExperience int       `json:"yearsExperience"`
	Location        string    `json:"location,omitempty"`
	RawText         string    `json:"rawText"`
	ResumeURL       string    `json:"resumeUrl,omitempty"`
	Stage           Stage     `json:"stage"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
}

// WithStage returns a copy of the candidate moved to the given stage
func (c Candidate) WithStage(stage Stage, now time.Time) Candidate {
	c.Stage = stage
	c.UpdatedAt = now
	return c
}

// RawTexts returns the raw document text of every candidate, in pool order.
// This is the BM25 corpus for a scoring call.
func RawTexts(pool []Candidate) []string {
	texts := make([]string, len(pool))
	for i, c := range pool {
		texts[i] = c.RawText
	}
	return texts
}
