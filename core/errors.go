package core

import "errors"

// ErrNotFound is a sentinel error for "not found" cases
var ErrNotFound = errors.New("not found")

// ErrUnauthorized is returned when a request signature does not match
var ErrUnauthorized = errors.New("unauthorized")

// ErrMalformedInput is returned when a request body cannot be turned into a command
var ErrMalformedInput = errors.New("malformed input")

// ErrUpstream is returned when the rates API cannot serve a request
var ErrUpstream = errors.New("upstream service error")

// IsNotFoundError checks if an error wraps ErrNotFound
func IsNotFoundError(err error) bool {
	return errors.Is(err, ErrNotFound)
}
