// Package errors provides standardized error types and helpers for the CedarVerse codebase.
package errors

import (
	"errors"
	"fmt"
)

// Sentinel errors for common cases
var (
	// ErrNotFound indicates a text or passage was not found
	ErrNotFound = errors.New("not found")
	// ErrFetch indicates a network or HTTP failure while acquiring a text
	ErrFetch = errors.New("fetch failed")
	// ErrParse indicates fetched content could not be segmented into passages
	ErrParse = errors.New("parse failed")
	// ErrInvalidInput indicates invalid input or validation failure
	ErrInvalidInput = errors.New("invalid input")
)

// NotFoundError represents a missing text or passage with context
type NotFoundError struct {
	Resource string // Type of resource (e.g., "text", "passage")
	ID       string // Identifier of the resource
	Err      error  // Underlying error, if any
}

func (e *NotFoundError) Error() string {
	if e.ID != "" {
		return fmt.Sprintf("%s not found: %s", e.Resource, e.ID)
	}
	return fmt.Sprintf("%s not found", e.Resource)
}

func (e *NotFoundError) Unwrap() error {
	if e.Err != nil {
		return e.Err
	}
	return ErrNotFound
}

// FetchError represents a failed network acquisition of a text
type FetchError struct {
	Text   string // Text identifier being fetched
	URL    string // URL that failed
	Status int    // HTTP status code, if a response was received
	Err    error  // Underlying error, if any
}

func (e *FetchError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("failed to fetch %s from %s: HTTP %d", e.Text, e.URL, e.Status)
	}
	return fmt.Sprintf("failed to fetch %s from %s: %v", e.Text, e.URL, e.Err)
}

func (e *FetchError) Unwrap() error {
	if e.Err != nil {
		return e.Err
	}
	return ErrFetch
}

// ParseError represents content that could not be segmented into passages
type ParseError struct {
	Text    string // Text identifier being parsed
	Format  string // Source format (e.g., "plaintext", "zefania", "JSON")
	Message string // Error details
	Err     error  // Underlying error, if any
}

func (e *ParseError) Error() string {
	if e.Format != "" {
		return fmt.Sprintf("failed to parse %s as %s: %s", e.Text, e.Format, e.Message)
	}
	return fmt.Sprintf("failed to parse %s: %s", e.Text, e.Message)
}

func (e *ParseError) Unwrap() error {
	if e.Err != nil {
		return e.Err
	}
	return ErrParse
}

// ValidationError represents an input validation error with context
type ValidationError struct {
	Field   string // Field name that failed validation
	Message string // Human-readable error message
	Err     error  // Underlying error, if any
}

func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("validation failed for %s: %s", e.Field, e.Message)
	}
	return fmt.Sprintf("validation failed: %s", e.Message)
}

func (e *ValidationError) Unwrap() error {
	if e.Err != nil {
		return e.Err
	}
	return ErrInvalidInput
}

// Helper functions for creating common errors

// NewNotFound creates a NotFoundError
func NewNotFound(resource, id string) *NotFoundError {
	return &NotFoundError{
		Resource: resource,
		ID:       id,
	}
}

// NewFetch creates a FetchError
func NewFetch(text, url string, err error) *FetchError {
	return &FetchError{
		Text: text,
		URL:  url,
		Err:  err,
	}
}

// NewFetchStatus creates a FetchError for a non-success HTTP status
func NewFetchStatus(text, url string, status int) *FetchError {
	return &FetchError{
		Text:   text,
		URL:    url,
		Status: status,
	}
}

// NewParse creates a ParseError
func NewParse(text, format, message string) *ParseError {
	return &ParseError{
		Text:    text,
		Format:  format,
		Message: message,
	}
}

// NewValidation creates a ValidationError
func NewValidation(field, message string) *ValidationError {
	return &ValidationError{
		Field:   field,
		Message: message,
	}
}

// Wrap adds context to an error. If err is nil, returns nil.
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", message, err)
}

// Wrapf adds formatted context to an error. If err is nil, returns nil.
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	message := fmt.Sprintf(format, args...)
	return fmt.Errorf("%s: %w", message, err)
}

// Is wraps errors.Is for convenience
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As wraps errors.As for convenience
func As(err error, target interface{}) bool {
	return errors.As(err, target)
}
