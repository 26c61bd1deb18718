package domain

import "errors"

var (
	// ErrInvalidQuery is returned for empty or blank queries.
	ErrInvalidQuery = errors.New("query is required")
	// ErrMissingSession is returned when a follow-up carries no session id.
	ErrMissingSession = errors.New("session_id is required")
	// ErrSessionNotFound is returned for ids never issued by the store.
	ErrSessionNotFound = errors.New("invalid or expired chat session ID")
	// ErrProviderUnavailable marks transport or provider-side search failures.
	ErrProviderUnavailable = errors.New("search provider unavailable")
)
