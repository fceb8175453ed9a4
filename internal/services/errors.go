package services

import "errors"

var (
	// ErrDatastoreUnavailable wraps a failed collection fetch: fatal for the
	// whole pass, surfaced to the caller instead of retried.
	ErrDatastoreUnavailable = errors.New("datastore unavailable")

	ErrUserExists         = errors.New("account already registered")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrInvalidTaskType    = errors.New("invalid task type")
)
