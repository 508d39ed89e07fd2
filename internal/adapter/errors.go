package adapter

import "errors"

var (
	// ErrUnauthorized is returned for 401 responses; the session token is
	// missing, expired, or rejected.
	ErrUnauthorized = errors.New("client unauthorized")
	// ErrBadRequest is returned for 400 responses; the request payload was
	// malformed.
	ErrBadRequest = errors.New("bad request")
	// ErrServerUnavailable is returned for 5xx responses and transport-level
	// failures; the cycle should abort and be retried later.
	ErrServerUnavailable = errors.New("sync server unavailable")
	// ErrNoToken is returned by AccountID when no session token is stored.
	ErrNoToken = errors.New("no session token set")
)
