// Package common defines shared constants and sentinel errors used across
// the dealerdesk client layers. Callers should use errors.Is to match these
// values.
package common

import "errors"

var (
	// ErrNotFound is returned when a single-entity fetch matches nothing.
	ErrNotFound = errors.New("not found")

	// ErrUnauthorized is returned on a 401 response. Receiving it anywhere
	// means the stored credential has already been cleared.
	ErrUnauthorized = errors.New("unauthorized")

	// ErrTimeout is returned when an operation exceeded its time bound.
	ErrTimeout = errors.New("timed out")

	// ErrInternal covers unexpected server-side failures.
	ErrInternal = errors.New("internal error")
)
