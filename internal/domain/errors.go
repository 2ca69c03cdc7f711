package domain

import "errors"

// ErrNotFound is returned by repo and service functions when the requested
// itinerary does not exist or is not visible to the caller.
// Handlers should map this to HTTP 404.
var ErrNotFound = errors.New("not found")

// ErrValidation is returned by service functions when input fails business
// rule validation (e.g. missing required field, unknown trip type).
// Handlers should map this to HTTP 422 Unprocessable Entity.
var ErrValidation = errors.New("validation error")

// ErrUnauthenticated is returned when a mutation or owner-scoped read is
// attempted with no active identity. Never retried automatically.
// Handlers should map this to HTTP 401.
var ErrUnauthenticated = errors.New("unauthenticated")
