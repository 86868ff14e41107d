// Package authenticate is the public surface of the PIN authentication SDK's
// client side: it initialises per-user storage, applies updates received
// from the server, exposes the cached credentials and hashes PINs with the
// user's salt.
//
// Typical use:
//
//	auth, err := authenticate.OpenWithArgs(ctx, os.Args[1:])
//	if err != nil { ... }
//	defer auth.Close()
//
//	if err := auth.InitialiseStorage(ctx, "alice@example.com"); err != nil { ... }
//	hash, err := auth.HashPin("1234")
//
// Open takes an explicit Config (see DefaultConfig) and Logger instead.
package authenticate

import (
	"context"
	"io"

	"github.com/dmitrijs2005/pinkeeper/internal/common"
	"github.com/dmitrijs2005/pinkeeper/internal/models"
	"github.com/dmitrijs2005/pinkeeper/internal/storage"
)

// PinHasher hashes a PIN with a salt. The result must be deterministic.
type PinHasher interface {
	HashPin(salt []byte, pin string) (string, error)
}

// Authenticator wraps a storage.Manager with PIN hashing.
type Authenticator struct {
	storage *storage.Manager
	hasher  PinHasher
	closer  io.Closer
}

// New returns an Authenticator over an existing manager. Close is a no-op
// for Authenticators built this way.
func New(m *storage.Manager, hasher PinHasher) *Authenticator {
	return &Authenticator{storage: m, hasher: hasher}
}

// HashPin returns the base64 hash of pin salted with the current user's salt.
// It fails with storage.ErrNotInitialised before InitialiseStorage or Resume.
func (a *Authenticator) HashPin(pin string) (string, error) {
	salt, err := a.storage.Salt()
	if err != nil {
		return "", err
	}
	defer common.WipeByteArray(salt)

	hash, err := a.hasher.HashPin(salt, pin)
	if err != nil {
		return "", &storage.Error{Op: "hashPin", Kind: storage.ErrCrypto, Err: err}
	}
	return hash, nil
}

func (a *Authenticator) InitialiseStorage(ctx context.Context, username string) error {
	return a.storage.Initialise(ctx, username)
}

// Resume reloads the user of the previous session from the secure store.
func (a *Authenticator) Resume(ctx context.Context) error {
	return a.storage.Resume(ctx)
}

func (a *Authenticator) UpdateStorage(ctx context.Context, patch models.Patch) error {
	return a.storage.Update(ctx, patch)
}

// UpdateStorageJSON applies an update document as returned by the server.
func (a *Authenticator) UpdateStorageJSON(ctx context.Context, data []byte) error {
	return a.storage.UpdateJSON(ctx, data)
}

func (a *Authenticator) Username() (string, bool, error) {
	return a.storage.Username()
}

func (a *Authenticator) DeviceUUID() (string, bool, error) {
	return a.storage.DeviceUUID()
}

func (a *Authenticator) AuthKey() (string, bool, error) {
	return a.storage.AuthKey()
}

func (a *Authenticator) AccessToken() (string, error) {
	return a.storage.AccessTokenValue()
}

func (a *Authenticator) CurrentUserID() (string, error) {
	return a.storage.CurrentUserID()
}

func (a *Authenticator) ClearAccessToken() error {
	return a.storage.ClearAccessToken()
}

// Forget removes every stored value of username.
func (a *Authenticator) Forget(ctx context.Context, username string) error {
	return a.storage.Forget(ctx, username)
}

// Close drops the cache and releases the secure store.
func (a *Authenticator) Close() error {
	a.storage.Reset()
	if a.closer != nil {
		return a.closer.Close()
	}
	return nil
}
