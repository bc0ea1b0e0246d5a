package model

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound is returned for unknown locations, leads and unsaved settings.
	ErrNotFound = errors.New("not found")
	// ErrDegenerateResult matches every *DegenerateResultError.
	ErrDegenerateResult = errors.New("degenerate result")
	ErrUnauthorized     = errors.New("unauthorized")
)

// ValidationError reports a single invalid input field.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Message)
}

func NewValidationError(field, format string, args ...any) *ValidationError {
	return &ValidationError{Field: field, Message: fmt.Sprintf(format, args...)}
}

// DegenerateResultError means the inputs were individually valid but the
// system they describe cannot produce any savings (e.g. the roof cannot
// hold a single panel).
type DegenerateResultError struct {
	Reason string
}

func (e *DegenerateResultError) Error() string {
	return "roof too small to produce savings: " + e.Reason
}

func (e *DegenerateResultError) Is(target error) bool {
	return target == ErrDegenerateResult
}
