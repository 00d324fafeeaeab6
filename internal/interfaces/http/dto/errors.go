package dto

import (
	"net/http"
	"strings"
)

// Common error codes surfaced by the API
const (
	ErrCodeBadRequest   = "BAD_REQUEST"
	ErrCodeUnauthorized = "UNAUTHORIZED"
	ErrCodeNotFound     = "NOT_FOUND"
	ErrCodeConflict     = "CONFLICT"
	ErrCodeInternal     = "INTERNAL_ERROR"
)

// GetHTTPStatus returns the HTTP status code for an error code
func GetHTTPStatus(code string) int {
	switch code {
	case ErrCodeNotFound:
		return http.StatusNotFound
	case ErrCodeUnauthorized, "INVALID_CREDENTIALS":
		return http.StatusUnauthorized
	case ErrCodeConflict, "EMAIL_TAKEN":
		return http.StatusConflict
	case "REPORT_IN_FLIGHT":
		return http.StatusTooManyRequests
	case "OFFLINE_NO_CACHE", "COLLECTION_UNLOADED":
		return http.StatusServiceUnavailable
	case "NO_OUTSTANDING":
		return http.StatusUnprocessableEntity
	case ErrCodeBadRequest:
		return http.StatusBadRequest
	}
	if strings.HasPrefix(code, "INVALID_") {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}
