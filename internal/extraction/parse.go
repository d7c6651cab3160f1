package extraction

import (
	"context"
	"strings"
	"time"

	"github.com/mutlukurt/hirelens/internal/skills"
	"github.com/mutlukurt/hirelens/internal/types"
)

// Document is an uploaded resume
type Document struct {
	Filename    string
	ContentType string
	Data        []byte
}

// ParsedResume holds the fields recovered from a resume document
type ParsedResume struct {
	Name            string   `json:"name"`
	Email           string   `json:"email"`
	Phone           string   `json:"phone"`
	Skills          []string `json:"skills"`
	YearsExperience int      `json:"yearsExperience"`
	Location        string   `json:"location"`
	RawText         string   `json:"rawText"`
}

// Parser validates, extracts and parses resume documents
type Parser struct {
	Dictionary *skills.Dictionary
	MaxBytes   int64
	Now        func() time.Time
}

// NewParser creates a parser that finds skills with dict and accepts documents up to maxBytes
func NewParser(dict *skills.Dictionary, maxBytes int64) *Parser {
	return &Parser{Dictionary: dict, MaxBytes: maxBytes, Now: time.Now}
}

// Parse runs a document through validation, text extraction and field heuristics using
// the default upload limit.
func Parse(ctx context.Context, doc Document, dict *skills.Dictionary) (*ParsedResume, error) {
	return NewParser(dict, DefaultMaxUploadBytes).Parse(ctx, doc)
}

// Parse runs a document through validation, text extraction and field heuristics.
// It fails with *InputValidationError before reading the document and with *ExtractionError
// when the text is empty or yields no name, no email and no skills.
func (p *Parser) Parse(ctx context.Context, doc Document) (*ParsedResume, error) {
	if err := ValidateUpload(doc.Filename, doc.ContentType, int64(len(doc.Data)), p.MaxBytes); err != nil {
		return nil, err
	}

	text, err := ExtractText(ctx, doc.Filename, doc.ContentType, doc.Data)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(text) == "" {
		return nil, &ExtractionError{Message: "could not extract text, the file may be corrupted or image-based"}
	}

	return p.ParseText(text)
}

// ParseText applies the field heuristics to already extracted text
func (p *Parser) ParseText(text string) (*ParsedResume, error) {
	parsed := &ParsedResume{
		Name:            ExtractName(text),
		Email:           ExtractEmail(text),
		Phone:           ExtractPhone(text),
		Skills:          p.Dictionary.ExtractSkillsFromText(text),
		YearsExperience: ExtractYearsExperience(text, p.Now()),
		Location:        ExtractLocation(text),
		RawText:         text,
	}

	if parsed.Name == UnknownName && parsed.Email == "" && len(parsed.Skills) == 0 {
		return nil, &ExtractionError{Message: "could not extract meaningful data, make sure the resume contains readable text"}
	}
	return parsed, nil
}

// NewCandidate creates a candidate in the first pipeline stage from parsed resume fields
func NewCandidate(parsed *ParsedResume, now time.Time) types.Candidate {
	skillList := parsed.Skills
	if skillList == nil {
		skillList = []string{}
	}
	return types.Candidate{
		ID:              types.NewID("candidate", now),
		Name:            parsed.Name,
		Email:           parsed.Email,
		Phone:           parsed.Phone,
		Skills:          skillList,
		YearsExperience: parsed.YearsExperience,
		Location:        parsed.Location,
		RawText:         parsed.RawText,
		Stage:           types.StageNew,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
}
