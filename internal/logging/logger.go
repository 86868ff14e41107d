// Package logging is the structured logger handed to the credential cache.
// Lifecycle events (user initialised, resumed, forgotten, store opened) are
// logged with the username; credential material never is.
package logging

import "context"

// Logger is what the storage manager and the authenticator log through.
// Args are key/value pairs:
//
//	log.Warn(ctx, "user storage already initialised, keeping cache", "username", user)
//
// Salts, PINs, PIN hashes, auth keys and access tokens must not be passed as
// args.
type Logger interface {
	Debug(ctx context.Context, msg string, args ...any)
	Info(ctx context.Context, msg string, args ...any)
	Warn(ctx context.Context, msg string, args ...any)
	Error(ctx context.Context, msg string, args ...any)

	// With returns a logger that adds args to every record, e.g. the
	// component or operation name.
	With(args ...any) Logger
}
