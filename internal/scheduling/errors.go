package scheduling

import (
	"errors"
	"strings"
)

var (
	ErrUnauthenticated = errors.New("authentication required")
	ErrForbidden       = errors.New("access denied")
	ErrNotFound        = errors.New("appointment not found")
	ErrConflict        = errors.New("time slot conflicts with an existing appointment")
	ErrNotAvailable    = errors.New("time slot is outside the professor's published availability")
	ErrPastAppointment = errors.New("cannot cancel past appointments")
)

// FieldError describes one invalid input field.
type FieldError struct {
	Path    []string `json:"path"`
	Message string   `json:"message"`
}

// ValidationError collects every malformed field of a request. It is returned
// before anything is written.
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	msgs := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		msgs = append(msgs, strings.Join(f.Path, ".")+": "+f.Message)
	}
	return "validation error: " + strings.Join(msgs, "; ")
}

// Add records a problem with field.
func (e *ValidationError) Add(field, message string) {
	e.Fields = append(e.Fields, FieldError{Path: []string{field}, Message: message})
}

// Err returns e when at least one field failed, otherwise nil.
func (e *ValidationError) Err() error {
	if len(e.Fields) == 0 {
		return nil
	}
	return e
}

// IsValidation reports whether err carries field-level validation details.
func IsValidation(err error) (*ValidationError, bool) {
	var ve *ValidationError
	ok := errors.As(err, &ve)
	return ve, ok
}
