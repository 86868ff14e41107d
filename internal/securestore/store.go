// Package securestore defines the durable key/value boundary used by the
// credential cache, and ships three backends:
//
//   - MemoryStore: process-local map, for tests and ephemeral sessions.
//   - SQLiteStore: values sealed with AES-GCM under a key derived from a
//     passphrase, persisted in an SQLite file migrated by goose.
//   - KeyringStore: the operating system keyring (Keychain, Secret Service,
//     Windows Credential Manager).
//
// All backends are safe for concurrent use.
package securestore

import (
	"context"
	"errors"
)

var ErrWrongPassphrase = errors.New("wrong store passphrase")

// Store is a durable string key/value store.
//
// Get returns ok=false with a nil error when the key does not exist; a non-nil
// error always means the backend failed.
type Store interface {
	Get(ctx context.Context, key string) (value string, ok bool, err error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
}

// BatchDeleter is implemented by stores that can remove several keys
// atomically.
type BatchDeleter interface {
	DeleteAll(ctx context.Context, keys []string) error
}
