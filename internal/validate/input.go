package validate

import (
	"fmt"
	"strings"

	"github.com/ppiankov/truthlens/internal/model"
)

// FieldError describes one failed constraint on a submission
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationErrors is returned when a submission is rejected
type ValidationErrors []FieldError

func (v ValidationErrors) Error() string {
	parts := make([]string, len(v))
	for i, e := range v {
		parts[i] = fmt.Sprintf("%s: %s", e.Field, e.Message)
	}
	return "invalid input: " + strings.Join(parts, "; ")
}

// Input checks a submission before it reaches the scorer.
// Whitespace-only content is accepted; only the empty string is rejected.
func Input(in model.AnalysisInput) error {
	var errs ValidationErrors

	if in.Content == "" {
		errs = append(errs, FieldError{Field: "content", Message: "Content is required"})
	}

	switch {
	case in.Type == "":
		errs = append(errs, FieldError{Field: "type", Message: "Required"})
	case !in.Type.Valid():
		errs = append(errs, FieldError{
			Field:   "type",
			Message: fmt.Sprintf("Invalid enum value. Expected 'url' | 'text', received '%s'", in.Type),
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}
