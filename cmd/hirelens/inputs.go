package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime"
	"os"
	"path/filepath"
	"strings"

	"github.com/mutlukurt/hirelens/internal/extraction"
	"github.com/mutlukurt/hirelens/internal/types"
)

// Output formats
const (
	outputText = "text"
	outputJSON = "json"
)

func validateOutput(format string) error {
	if format != outputText && format != outputJSON {
		return fmt.Errorf("invalid --output %q: must be %q or %q", format, outputText, outputJSON)
	}
	return nil
}

// readJob loads a job posting request file and converts it to a posting
func readJob(path string) (types.JobPosting, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return types.JobPosting{}, fmt.Errorf("failed to read job file: %w", err)
	}
	var req types.JobPostingRequest
	if err := json.Unmarshal(data, &req); err != nil {
		return types.JobPosting{}, fmt.Errorf("failed to parse job file %s: %w", path, err)
	}
	if err := req.Validate(); err != nil {
		return types.JobPosting{}, fmt.Errorf("invalid job file %s: %w", path, err)
	}
	job := req.ToJobPosting(types.JobPosting{})
	job.ID = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	return job, nil
}

// readCandidate loads a candidate from a JSON candidate request or parses it from a
// resume document (PDF, HTML or text)
func readCandidate(ctx context.Context, parser *extraction.Parser, path string) (types.Candidate, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return types.Candidate{}, fmt.Errorf("failed to read candidate file: %w", err)
	}
	id := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))

	if strings.EqualFold(filepath.Ext(path), ".json") {
		var req types.CreateCandidateRequest
		if err := json.Unmarshal(data, &req); err != nil {
			return types.Candidate{}, fmt.Errorf("failed to parse candidate file %s: %w", path, err)
		}
		if err := req.Validate(); err != nil {
			return types.Candidate{}, fmt.Errorf("invalid candidate file %s: %w", path, err)
		}
		candidate := req.ToCandidate()
		candidate.ID = id
		return candidate, nil
	}

	parsed, err := parser.Parse(ctx, readDocument(path, data))
	if err != nil {
		return types.Candidate{}, fmt.Errorf("failed to parse resume %s: %w", path, err)
	}
	candidate := extraction.NewCandidate(parsed, parser.Now())
	candidate.ID = id
	return candidate, nil
}

func readDocument(path string, data []byte) extraction.Document {
	return extraction.Document{
		Filename:    filepath.Base(path),
		ContentType: mime.TypeByExtension(filepath.Ext(path)),
		Data:        data,
	}
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("failed to write JSON: %w", err)
	}
	return nil
}
