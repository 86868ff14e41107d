package storage

import (
	"errors"
	"strings"
)

var (
	// ErrNotInitialised means no user is loaded, or the durable current-user
	// marker is missing or names another user.
	ErrNotInitialised = errors.New("storage not initialised")
	// ErrAlreadyInitialized rejects initialising a user whose salt exists.
	ErrAlreadyInitialized = errors.New("storage already initialised for user")
	// ErrMissingSalt means the durable salt is absent or unreadable when it
	// must exist.
	ErrMissingSalt = errors.New("salt missing from secure store")
	// ErrNoAccessToken means no access token is cached.
	ErrNoAccessToken = errors.New("no access token set")
	// ErrDurableWriteFailed wraps a secure-store write failure.
	ErrDurableWriteFailed = errors.New("durable write failed")
	// ErrDurableReadFailed wraps a secure-store read failure.
	ErrDurableReadFailed = errors.New("durable read failed")
	// ErrMalformedToken means the cached token's claims cannot be read.
	ErrMalformedToken = errors.New("malformed access token")
	// ErrInvalidUsername rejects usernames that are empty after lowercasing.
	ErrInvalidUsername = errors.New("invalid username")
	// ErrInvalidPatch rejects an update document that is not valid JSON.
	ErrInvalidPatch = errors.New("invalid update patch")
	// ErrCrypto wraps salt generation and hashing failures.
	ErrCrypto = errors.New("crypto failure")
)

// Error reports which operation and field failed. It matches both its Kind
// and the underlying cause with errors.Is.
type Error struct {
	Op    string
	Field string
	Kind  error
	Err   error
}

func (e *Error) Error() string {
	var b strings.Builder
	b.WriteString(e.Op)
	if e.Field != "" {
		b.WriteString(" ")
		b.WriteString(e.Field)
	}
	b.WriteString(": ")
	b.WriteString(e.Kind.Error())
	if e.Err != nil {
		b.WriteString(": ")
		b.WriteString(e.Err.Error())
	}
	return b.String()
}

func (e *Error) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}
