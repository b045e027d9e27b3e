package inspire

import (
	"errors"
	"fmt"
)

// Common errors returned by the INSPIRE client.
var (
	// ErrNotFound indicates the record was not found.
	ErrNotFound = errors.New("not found on INSPIRE")

	// ErrRateLimited indicates the rate limit has been exceeded.
	ErrRateLimited = errors.New("INSPIRE rate limit exceeded")

	// ErrNetworkError indicates a network connectivity issue.
	ErrNetworkError = errors.New("network error communicating with INSPIRE")

	// ErrInvalidResponse indicates an unexpected API response.
	ErrInvalidResponse = errors.New("invalid response from INSPIRE")
)

// APIError represents an HTTP-level error from the INSPIRE API.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("INSPIRE API error (status %d): %s", e.StatusCode, e.Message)
}

// IsNotFound returns true if the error indicates a missing record.
func IsNotFound(err error) bool {
	if errors.Is(err, ErrNotFound) {
		return true
	}
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.StatusCode == 404
}
