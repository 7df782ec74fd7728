package dto

import (
	"net/http"
	"strings"
)

// Error codes exposed on the wire. They match the domain error codes so a
// failure travels from the domain to the client without relabeling.
const (
	// CodeValidation covers request binding and domain validation failures
	CodeValidation = "VALIDATION_ERROR"
	// CodeBadRequest covers malformed requests (unparseable JSON, bad IDs)
	CodeBadRequest = "BAD_REQUEST"
	// CodeUnauthorized covers missing or bad credentials
	CodeUnauthorized = "UNAUTHORIZED"
	// CodeNotFound covers missing or soft-deleted resources
	CodeNotFound = "NOT_FOUND"
	// CodeAlreadyExists covers uniqueness conflicts
	CodeAlreadyExists = "ALREADY_EXISTS"
	// CodeConcurrencyConflict covers stale version tokens
	CodeConcurrencyConflict = "CONCURRENCY_CONFLICT"
	// CodeInternal covers everything unexpected
	CodeInternal = "INTERNAL_ERROR"
)

// errorCodeHTTPStatus maps error codes to HTTP status codes
var errorCodeHTTPStatus = map[string]int{
	CodeValidation:          http.StatusBadRequest,
	CodeBadRequest:          http.StatusBadRequest,
	CodeUnauthorized:        http.StatusUnauthorized,
	CodeNotFound:            http.StatusNotFound,
	CodeAlreadyExists:       http.StatusConflict,
	CodeConcurrencyConflict: http.StatusConflict,
	CodeInternal:            http.StatusInternalServerError,
}

// GetHTTPStatus returns the HTTP status code for an error code. Domain
// validation codes follow the INVALID_* naming convention and map to 400;
// anything unrecognized is treated as internal.
func GetHTTPStatus(code string) int {
	if status, ok := errorCodeHTTPStatus[code]; ok {
		return status
	}
	if strings.HasPrefix(code, "INVALID_") {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}
