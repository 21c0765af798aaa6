package tmdb

import (
	"errors"
	"fmt"
)

// Sentinel errors for TMDB API operations.
var (
	ErrNotFound         = errors.New("tmdb: not found")
	ErrRateLimited      = errors.New("tmdb: rate limited by server")
	ErrBadRequest       = errors.New("tmdb: bad request")
	ErrUnauthorized     = errors.New("tmdb: invalid api key")
	ErrServer           = errors.New("tmdb: server error")
	ErrMalformedPayload = errors.New("tmdb: malformed payload")
)

// Error wraps an underlying error with operation context.
type Error struct {
	Op      string // Operation: "discover", "trending", "search", "details", "credits", "providers"
	MovieID string // If applicable
	Err     error
}

func (e *Error) Error() string {
	if e.MovieID != "" {
		return fmt.Sprintf("tmdb %s [%s]: %v", e.Op, e.MovieID, e.Err)
	}
	return fmt.Sprintf("tmdb %s: %v", e.Op, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// wrapError creates an Error with context.
func wrapError(op, movieID string, err error) error {
	return &Error{
		Op:      op,
		MovieID: movieID,
		Err:     err,
	}
}
