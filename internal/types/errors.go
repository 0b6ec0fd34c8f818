package types

import "errors"

// Domain specific errors shared across services.
var (
	ErrNotFound        = errors.New("requested item not found")
	ErrUnauthenticated = errors.New("authentication required or invalid credentials")
	ErrForbidden       = errors.New("action forbidden")
	ErrRateLimited     = errors.New("rate limited by remote service")
	ErrBadRequest      = errors.New("bad request")
	ErrUnavailable     = errors.New("remote service unavailable")
)
