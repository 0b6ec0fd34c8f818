package client

import (
	"fmt"

	"github.com/trekmate/trekmate-core/internal/types"
)

// APIError is a server-returned failure, classified by status. Transport
// failures (no response at all) are never wrapped in an APIError so callers
// can tell the two apart.
type APIError struct {
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("remote returned %d: %s", e.StatusCode, e.Body)
}

// Unwrap maps the status class onto the shared domain sentinels so callers
// can match with errors.Is without importing HTTP status codes.
func (e *APIError) Unwrap() error {
	switch {
	case e.StatusCode == 400:
		return types.ErrBadRequest
	case e.StatusCode == 401:
		return types.ErrUnauthenticated
	case e.StatusCode == 403:
		return types.ErrForbidden
	case e.StatusCode == 404:
		return types.ErrNotFound
	case e.StatusCode == 429:
		return types.ErrRateLimited
	case e.StatusCode >= 500:
		return types.ErrUnavailable
	default:
		return nil
	}
}
