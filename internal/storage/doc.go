// Package storage is the credential cache of the PIN authentication SDK.
//
// A Manager holds the record of the single active user in memory and mirrors
// its durable parts to a securestore.Store under keys built by package keys:
//
//	lastUser            normalized username of the current session
//	username:<user>     echo of the normalized username
//	salt:<user>         base64 random salt, written once
//	deviceUuid:<user>   device identifier, updatable
//	authKey:<user>      auth key, updatable
//
// The access token is cached only and never reaches the store.
//
// # Lifecycle
//
// A Manager starts uninitialised. Initialise creates a user's salt and loads
// the user; Resume loads the user named by the lastUser marker. Any read,
// update or hash before that fails with ErrNotInitialised. Initialising a
// second user replaces the cache wholesale; initialising a user whose salt
// already exists fails with ErrAlreadyInitialized.
//
// # Errors
//
// Failures are returned as *Error values that match one of the sentinel
// kinds (ErrNotInitialised, ErrDurableWriteFailed, ...) with errors.Is.
// Nothing is retried.
package storage
