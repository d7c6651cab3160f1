// Package extraction turns uploaded resume documents into text and best-effort candidate fields.
package extraction

import "fmt"

// InputValidationError is returned when an uploaded document is rejected before extraction
type InputValidationError struct {
	Field   string
	Message string
}

func (e *InputValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("invalid upload %s: %s", e.Field, e.Message)
	}
	return fmt.Sprintf("invalid upload: %s", e.Message)
}

// ExtractionError is returned when no usable text or signal could be recovered from a document
type ExtractionError struct {
	Message string
	Cause   error
}

func (e *ExtractionError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("extraction error: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("extraction error: %s", e.Message)
}

func (e *ExtractionError) Unwrap() error {
	return e.Cause
}
