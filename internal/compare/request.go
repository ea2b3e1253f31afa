// Package compare orchestrates one comparison request: input validation,
// engine extraction, matching, scoring, and report assembly.
package compare

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// minJDLength is the minimum job-description length after whitespace
// normalization. Anything shorter is rejected before the engine is touched.
const minJDLength = 10

// Request is the inbound comparison request.
type Request struct {
	JobDescriptionText string   `json:"job_description_text" validate:"required"`
	UserSkills         []string `json:"user_skills" validate:"omitempty,dive,max=200"`
	// IncludeTrace attaches the diagnostic trace block to the report.
	IncludeTrace bool `json:"include_trace,omitempty"`
}

// InputError indicates a request rejected before any engine call.
type InputError struct {
	Field   string
	Message string
}

func (e *InputError) Error() string {
	return fmt.Sprintf("invalid input: %s - %s", e.Field, e.Message)
}

// Validate checks the request using the validator plus the normalized-length
// rule the struct tags cannot express.
func (r *Request) Validate() error {
	if err := validator.New().Struct(r); err != nil {
		return &InputError{Field: "request", Message: err.Error()}
	}
	if len(normalizeWhitespace(r.JobDescriptionText)) < minJDLength {
		return &InputError{
			Field:   "job_description_text",
			Message: fmt.Sprintf("must be at least %d characters after whitespace normalization", minJDLength),
		}
	}
	return nil
}

func normalizeWhitespace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
