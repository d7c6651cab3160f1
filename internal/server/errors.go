package server

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/mutlukurt/hirelens/internal/extraction"
	"github.com/mutlukurt/hirelens/internal/pipeline"
	"github.com/mutlukurt/hirelens/internal/schemas"
	"github.com/mutlukurt/hirelens/internal/skills"
	"github.com/mutlukurt/hirelens/internal/store"
)

// ErrValidation indicates request validation failure
type ErrValidation struct {
	Field   string
	Message string
}

func (e *ErrValidation) Error() string {
	return fmt.Sprintf("validation error: %s - %s", e.Field, e.Message)
}

// HTTPStatus returns the appropriate HTTP status code for an error
func HTTPStatus(err error) int {
	var (
		reqErr         *ErrValidation
		fieldErrs      validator.ValidationErrors
		inputErr       *extraction.InputValidationError
		extractErr     *extraction.ExtractionError
		dictErr        *skills.ValidationError
		schemaErr      *schemas.ValidationError
		schemaLoadErr  *schemas.SchemaLoadError
		invalidRequest *pipeline.InvalidRequestError
	)

	switch {
	case errors.As(err, &reqErr),
		errors.As(err, &fieldErrs),
		errors.As(err, &inputErr),
		errors.As(err, &dictErr),
		errors.As(err, &schemaErr),
		errors.As(err, &schemaLoadErr),
		errors.As(err, &invalidRequest):
		return http.StatusBadRequest
	case errors.As(err, &extractErr):
		return http.StatusUnprocessableEntity
	case errors.Is(err, store.ErrNotFound),
		errors.Is(err, skills.ErrSkillNotFound),
		errors.Is(err, skills.ErrSynonymNotFound):
		return http.StatusNotFound
	case errors.Is(err, skills.ErrSkillExists):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// errorMessage renders err for a response body. Request validation failures are
// flattened into one line per field.
func errorMessage(err error) string {
	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) {
		parts := make([]string, 0, len(fieldErrs))
		for _, fe := range fieldErrs {
			parts = append(parts, fmt.Sprintf("%s failed on '%s'", fe.Field(), fe.Tag()))
		}
		return "validation error: " + strings.Join(parts, "; ")
	}

	var schemaErr *schemas.ValidationError
	if errors.As(err, &schemaErr) {
		parts := make([]string, 0, len(schemaErr.Errors))
		for _, fe := range schemaErr.Errors {
			parts = append(parts, fe.Field+": "+fe.Message)
		}
		return "validation error: " + strings.Join(parts, "; ")
	}

	return err.Error()
}
