package service

import (
	"errors"

	repository "github.com/teampulse/teampulse/internal/adapters/repository"
)

// Sentinel errors for validation failures at the service boundary.
var (
	ErrMissingField    = errors.New("missing required field")
	ErrInvalidReview   = errors.New("invalid review")
	ErrUnknownSkill    = errors.New("unknown skill")
	ErrUnknownLevel    = errors.New("unknown level")
	ErrGrowthAreaLimit = errors.New("active growth area limit reached")
)

// isNotFound reports whether err is the store's not-found sentinel.
func isNotFound(err error) bool {
	return errors.Is(err, repository.ErrNotFound)
}
