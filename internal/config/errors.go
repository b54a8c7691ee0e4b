package config

import (
	"errors"
	"fmt"
	"strings"
)

// ErrValidationFailed indicates the configuration holds invalid values.
var ErrValidationFailed = errors.New("validation failed")

// ValidationError describes one invalid setting.
type ValidationError struct {
	// Path is the dotted setting path.
	Path string
	// Message describes the problem.
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Path, e.Message)
}

// ValidationErrors collects every invalid setting found by Validate.
type ValidationErrors struct {
	Errors []ValidationError
}

// Add records an invalid setting.
func (e *ValidationErrors) Add(path, message string) {
	e.Errors = append(e.Errors, ValidationError{Path: path, Message: message})
}

// AsError returns nil if nothing was recorded.
func (e *ValidationErrors) AsError() error {
	if len(e.Errors) == 0 {
		return nil
	}
	return e
}

func (e *ValidationErrors) Error() string {
	msgs := make([]string, len(e.Errors))
	for i, err := range e.Errors {
		msgs[i] = err.Error()
	}
	return "invalid config: " + strings.Join(msgs, "; ")
}

// Is reports whether target is ErrValidationFailed.
func (e *ValidationErrors) Is(target error) bool {
	return target == ErrValidationFailed
}
