package domain

import "errors"

var (
	// ErrInvalidInput rejects malformed caller input (bad limit, bad filter)
	// before it reaches scoring.
	ErrInvalidInput = errors.New("invalid input")

	// ErrNotFound signals an unknown product/category/user id.
	ErrNotFound = errors.New("not found")

	// ErrSourceUnavailable signals an unreachable or empty catalog/behavior
	// source; callers degrade to the last good snapshot.
	ErrSourceUnavailable = errors.New("source unavailable")

	// ErrCollaboratorTimeout signals that an external text-completion call
	// did not answer in time; the assistant substitutes a canned phrase.
	ErrCollaboratorTimeout = errors.New("collaborator timeout")
)
