package store

import "errors"

var (
	// ErrProfileNotFound indicates the profile does not exist
	ErrProfileNotFound = errors.New("profile not found")

	// ErrSessionNotFound indicates the session does not exist or was destroyed
	ErrSessionNotFound = errors.New("session not found")

	// ErrApplicationNotFound indicates the application does not exist
	ErrApplicationNotFound = errors.New("application not found")
)
