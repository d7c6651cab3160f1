package extraction

import (
	"fmt"
	"path/filepath"
	"strings"
)

// DefaultMaxUploadBytes is the largest document accepted when no limit is configured
const DefaultMaxUploadBytes = 10 << 20

// Kind is a supported document format
type Kind string

// Supported document formats
const (
	KindPDF  Kind = "pdf"
	KindHTML Kind = "html"
	KindText Kind = "text"
)

// DetectKind resolves the document format from its file extension, falling back to the content type
func DetectKind(filename, contentType string) (Kind, bool) {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".pdf":
		return KindPDF, true
	case ".html", ".htm":
		return KindHTML, true
	case ".txt", ".md", ".markdown":
		return KindText, true
	}

	ct := strings.ToLower(contentType)
	switch {
	case strings.Contains(ct, "pdf"):
		return KindPDF, true
	case strings.Contains(ct, "html"):
		return KindHTML, true
	case strings.HasPrefix(ct, "text/plain"), strings.Contains(ct, "markdown"):
		return KindText, true
	}
	return "", false
}

// ValidateUpload rejects documents of an unsupported type, empty documents and documents
// larger than maxBytes. A maxBytes of zero or less means DefaultMaxUploadBytes.
func ValidateUpload(filename, contentType string, size, maxBytes int64) error {
	if maxBytes <= 0 {
		maxBytes = DefaultMaxUploadBytes
	}
	if _, ok := DetectKind(filename, contentType); !ok {
		return &InputValidationError{
			Field:   "file",
			Message: fmt.Sprintf("unsupported file type %q: upload a PDF, HTML or plain text resume", filename),
		}
	}
	if size <= 0 {
		return &InputValidationError{Field: "file", Message: "the uploaded file is empty"}
	}
	if size > maxBytes {
		return &InputValidationError{
			Field:   "file",
			Message: fmt.Sprintf("file size must be less than %s", formatBytes(maxBytes)),
		}
	}
	return nil
}

func formatBytes(n int64) string {
	switch {
	case n >= 1<<20 && n%(1<<20) == 0:
		return fmt.Sprintf("%dMB", n>>20)
	case n >= 1<<10 && n%(1<<10) == 0:
		return fmt.Sprintf("%dKB", n>>10)
	default:
		return fmt.Sprintf("%d bytes", n)
	}
}
