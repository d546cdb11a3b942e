package services

import "errors"

// Sentinel errors returned by the services; handlers map them to HTTP status codes.
// Entities that exist but belong to another user are reported as ErrNotFound.
var (
	ErrNotFound     = errors.New("not found")
	ErrConflict     = errors.New("conflict")
	ErrInvalidInput = errors.New("invalid input")
)

func isNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}
