package skills

import (
	"errors"
	"fmt"
)

// Sentinel errors returned by dictionary mutations
var (
	ErrSkillExists     = errors.New("skill already exists")
	ErrSkillNotFound   = errors.New("skill not found")
	ErrSynonymNotFound = errors.New("synonym not found")
)

// ValidationError represents a rejected dictionary edit
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("validation error in %s: %s", e.Field, e.Message)
	}
	return fmt.Sprintf("validation error: %s", e.Message)
}

// SkillError ties a sentinel error to the skill it concerns
type SkillError struct {
	Skill string
	Err   error
}

func (e *SkillError) Error() string {
	return fmt.Sprintf("%v: %s", e.Err, e.Skill)
}

func (e *SkillError) Unwrap() error {
	return e.Err
}
