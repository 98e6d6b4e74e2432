package errors

import (
	"fmt"
)

// ParseError represents a document or sample parsing failure with optional
// line metadata.
type ParseError struct {
	Path    string
	Line    int
	Message string
	Err     error
}

// NewParseError constructs a ParseError.
func NewParseError(path string, line int, err error) error {
	message := ""
	if err != nil {
		message = err.Error()
	}
	return &ParseError{Path: path, Line: line, Message: message, Err: err}
}

func (e *ParseError) Error() string {
	if e == nil {
		return ""
	}

	if e.Line > 0 {
		return fmt.Sprintf("parse error: %s:%d: %s", e.Path, e.Line, e.Message)
	}
	return fmt.Sprintf("parse error: %s: %s", e.Path, e.Message)
}

// Unwrap exposes the underlying error.
func (e *ParseError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// ValidationError captures configuration or token-document validation issues.
type ValidationError struct {
	Field   string
	Message string
	Err     error
}

// NewValidationError constructs a ValidationError.
func NewValidationError(field, message string, err error) error {
	return &ValidationError{Field: field, Message: message, Err: err}
}

func (e *ValidationError) Error() string {
	if e == nil {
		return ""
	}
	if e.Field != "" {
		return fmt.Sprintf("validation error: %s: %s", e.Field, e.Message)
	}
	return fmt.Sprintf("validation error: %s", e.Message)
}

// Unwrap exposes the underlying error.
func (e *ValidationError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// DerivationError represents a failure while deriving a token from observed
// samples, such as a dark-mode counterpart that could not reach the required
// contrast within its adjustment budget.
type DerivationError struct {
	TokenPath string
	Err       error
}

// NewDerivationError constructs a DerivationError for the given token path.
func NewDerivationError(tokenPath string, err error) error {
	return &DerivationError{TokenPath: tokenPath, Err: err}
}

func (e *DerivationError) Error() string {
	if e == nil {
		return ""
	}
	if e.TokenPath != "" {
		return fmt.Sprintf("derivation error on token %s: %v", e.TokenPath, e.Err)
	}
	return fmt.Sprintf("derivation error: %v", e.Err)
}

// Unwrap exposes the root error.
func (e *DerivationError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}
