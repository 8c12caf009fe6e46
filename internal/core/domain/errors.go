package domain

import "errors"

// Authentication failures. Missing and invalid credentials are deliberately
// rendered identically to callers; the distinct sentinels exist for logging
// and tests only.
var (
	ErrMissingCredential = errors.New("missing credential")
	ErrInvalidCredential = errors.New("invalid credential")
)

var (
	ErrUserNotFound   = errors.New("user not found")
	ErrUserExists     = errors.New("user already exists")
	ErrTenantNotFound = errors.New("tenant not found")
	ErrShopNotFound   = errors.New("shop not found")
	ErrKeyNotFound    = errors.New("api key not found")

	// ErrTooManyAttempts is returned by the guard when the failed-auth
	// throttle trips for a client.
	ErrTooManyAttempts = errors.New("too many failed authentication attempts")
)

// ErrAccessDenied is the sentinel all authorization denials unwrap to.
var ErrAccessDenied = errors.New("access denied")

// AccessDeniedError is an authorization denial carrying a human-readable
// reason. It matches ErrAccessDenied under errors.Is.
type AccessDeniedError struct {
	Reason string
}

func (e *AccessDeniedError) Error() string { return e.Reason }

func (e *AccessDeniedError) Unwrap() error { return ErrAccessDenied }
