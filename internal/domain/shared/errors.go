package shared

import "time"

// DomainError represents a domain-level error
type DomainError struct {
	Code    string         `json:"code"`
	Message string         `json:"message"`
	Details map[string]any `json:"details,omitempty"`
}

// Error implements the error interface
func (e *DomainError) Error() string {
	return e.Message
}

// NewDomainError creates a new domain error
func NewDomainError(code, message string) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
	}
}

// WithDetail attaches a structured detail to the error and returns it
func (e *DomainError) WithDetail(key string, value any) *DomainError {
	if e.Details == nil {
		e.Details = make(map[string]any)
	}
	e.Details[key] = value
	return e
}

// Common domain errors
var (
	ErrNotFound            = NewDomainError("NOT_FOUND", "Resource not found")
	ErrAlreadyExists       = NewDomainError("ALREADY_EXISTS", "Resource already exists")
	ErrInvalidInput        = NewDomainError("INVALID_INPUT", "Invalid input provided")
	ErrConcurrencyConflict = NewDomainError("CONCURRENCY_CONFLICT", "Resource was modified by another process")
	ErrUnauthorized        = NewDomainError("UNAUTHORIZED", "Not authorized to perform this action")
	ErrInternal            = NewDomainError("INTERNAL_ERROR", "Internal error")
)

// NewConcurrencyError creates a concurrency conflict error carrying the
// record's current version token so the caller can refresh and retry.
func NewConcurrencyError(currentVersion time.Time) *DomainError {
	return NewDomainError("CONCURRENCY_CONFLICT", "Resource was modified by another process").
		WithDetail("currentUpdatedAt", currentVersion.UTC().Format(VersionTimeFormat))
}
