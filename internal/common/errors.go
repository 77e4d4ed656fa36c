// Package common defines shared constants and sentinel errors used across
// the server and client layers of the signage system. Callers should use
// errors.Is to match these values.
package common

import "errors"

var (
	// ErrNotFound marks a valid empty state: no asset (or credential marker)
	// exists yet for the requested key. It is not a failure.
	ErrNotFound = errors.New("not found")

	// ErrStoreUnavailable marks a remote object store I/O failure. Interactive
	// callers surface it immediately; the display refresh loop retries it on
	// its next scheduled tick.
	ErrStoreUnavailable = errors.New("object store unavailable")

	// Validation errors. Resolved at the boundary, never retried and never
	// allowed to reach the store layer.
	ErrNoFile       = errors.New("no file provided")
	ErrNoScreenID   = errors.New("no screen id provided")
	ErrInvalidType  = errors.New("file must be an image")
	ErrTooLarge     = errors.New("file exceeds the size limit")
	ErrWeakPassword = errors.New("password is too short")

	// Auth errors.
	ErrUnauthorized = errors.New("unauthorized")
	ErrInvalidToken = errors.New("invalid token")
)

// IsValidation reports whether err belongs to the validation family of the
// error taxonomy.
func IsValidation(err error) bool {
	for _, v := range []error{ErrNoFile, ErrNoScreenID, ErrInvalidType, ErrTooLarge, ErrWeakPassword} {
		if errors.Is(err, v) {
			return true
		}
	}
	return false
}
