package storage

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"sync"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/dmitrijs2005/pinkeeper/internal/common"
	"github.com/dmitrijs2005/pinkeeper/internal/keys"
	"github.com/dmitrijs2005/pinkeeper/internal/logging"
	"github.com/dmitrijs2005/pinkeeper/internal/models"
	"github.com/dmitrijs2005/pinkeeper/internal/securestore"
)

// Crypto is what the manager needs from the crypto provider.
type Crypto interface {
	GenerateSalt() ([]byte, error)
	SubjectFromToken(token string) (string, error)
}

// Manager owns the current user's cache and keeps it consistent with the
// secure store. It is safe for concurrent use.
type Manager struct {
	mu      sync.RWMutex
	store   securestore.Store
	crypto  Crypto
	log     logging.Logger
	current *userCache
}

func NewManager(store securestore.Store, crypto Crypto, log logging.Logger) *Manager {
	return &Manager{
		store:  store,
		crypto: crypto,
		log:    log.With("component", "storage"),
	}
}

// NormalizeUsername lowercases a username with language-neutral Unicode
// rules. Unlike case folding it never changes the length of a name, so
// "Straße" stays "straße".
func NormalizeUsername(username string) string {
	return cases.Lower(language.Und).String(username)
}

// Initialise creates the durable state for username and loads it into the
// cache, replacing whatever was cached before.
//
// It fails with ErrAlreadyInitialized when the user already has a salt. In
// that case a cache already holding the same user is kept; every other
// failure leaves the manager uninitialised.
func (m *Manager) Initialise(ctx context.Context, username string) error {
	const op = "initialise"

	user := NormalizeUsername(username)
	if user == "" {
		return &Error{Op: op, Field: string(keys.Username), Kind: ErrInvalidUsername}
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	log := m.log.With("op", op, "username", user)

	if err := m.initialisePersisted(ctx, op, user); err != nil {
		if errors.Is(err, ErrAlreadyInitialized) && m.current != nil && m.current.record.Username == user {
			log.Warn(ctx, "user storage already initialised, keeping cache")
			return err
		}
		m.current = nil
		log.Error(ctx, "initialise failed", "error", err)
		return err
	}

	c, err := m.loadUser(ctx, op, user)
	if err != nil {
		m.current = nil
		log.Error(ctx, "loading user cache failed", "error", err)
		return err
	}
	m.current = c

	log.Info(ctx, "user storage initialised")
	return nil
}

func (m *Manager) initialisePersisted(ctx context.Context, op, user string) error {
	if err := m.write(ctx, op, keys.LastUser, user, user); err != nil {
		return err
	}
	if err := m.write(ctx, op, keys.Username, user, user); err != nil {
		return err
	}

	existing, ok, err := m.read(ctx, op, keys.Salt, user)
	if err != nil {
		return err
	}
	if ok && existing != "" {
		return &Error{Op: op, Field: string(keys.Salt), Kind: ErrAlreadyInitialized}
	}

	salt, err := m.crypto.GenerateSalt()
	if err != nil {
		return &Error{Op: op, Field: string(keys.Salt), Kind: ErrCrypto, Err: err}
	}
	encoded := base64.StdEncoding.EncodeToString(salt)
	common.WipeByteArray(salt)

	return m.write(ctx, op, keys.Salt, user, encoded)
}

// Resume loads the cache for the user named by the durable current-user
// marker, without creating anything. It is the restart path for a user
// initialised by an earlier process.
func (m *Manager) Resume(ctx context.Context) error {
	const op = "resume"

	m.mu.Lock()
	defer m.mu.Unlock()

	user, err := m.currentUserMarker(ctx, op)
	if err != nil {
		m.current = nil
		return err
	}

	c, err := m.loadUser(ctx, op, user)
	if err != nil {
		m.current = nil
		m.log.Error(ctx, "resume failed", "username", user, "error", err)
		return err
	}
	m.current = c

	m.log.Info(ctx, "user storage resumed", "username", user)
	return nil
}

// loadUser builds a fresh cache for user from the secure store.
func (m *Manager) loadUser(ctx context.Context, op, user string) (*userCache, error) {
	encoded, ok, err := m.read(ctx, op, keys.Salt, user)
	if err != nil {
		return nil, err
	}
	if !ok || encoded == "" {
		return nil, &Error{Op: op, Field: string(keys.Salt), Kind: ErrMissingSalt}
	}
	salt, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil || len(salt) == 0 {
		return nil, &Error{Op: op, Field: string(keys.Salt), Kind: ErrMissingSalt, Err: err}
	}

	record := models.UserRecord{Username: user}
	for _, f := range []struct {
		purpose keys.Purpose
		dst     *models.Optional[string]
	}{
		{keys.DeviceUUID, &record.DeviceUUID},
		{keys.AuthKey, &record.AuthKey},
	} {
		v, ok, err := m.read(ctx, op, f.purpose, user)
		if err != nil {
			common.WipeByteArray(salt)
			return nil, err
		}
		if ok && v != "" {
			*f.dst = models.Some(v)
		}
	}

	c, err := newUserCache(record, salt)
	if err != nil {
		return nil, &Error{Op: op, Field: string(keys.Salt), Kind: ErrMissingSalt, Err: err}
	}
	return c, nil
}

// Update applies a partial update to the current user. Non-empty deviceUuid
// and authKey values are persisted before the cache is touched; the access
// token is cached only.
//
// Update is not atomic across fields: on failure, fields processed earlier
// remain applied.
func (m *Manager) Update(ctx context.Context, patch models.Patch) error {
	const op = "update"

	m.mu.Lock()
	defer m.mu.Unlock()

	if m.current == nil {
		return &Error{Op: op, Kind: ErrNotInitialised}
	}

	if v, ok := patch.DeviceUUID.Get(); ok && v != "" {
		if err := m.persistForCurrent(ctx, op, keys.DeviceUUID, v); err != nil {
			return err
		}
		m.current.record.DeviceUUID = models.Some(v)
	}

	if v, ok := patch.AuthKey.Get(); ok && v != "" {
		if err := m.persistForCurrent(ctx, op, keys.AuthKey, v); err != nil {
			return err
		}
		m.current.record.AuthKey = models.Some(v)
	}

	if tok, ok := patch.AccessToken.Get(); ok {
		m.current.record.AccessToken = models.Some(tok)
	}

	m.log.Debug(ctx, "user storage updated", "username", m.current.record.Username)
	return nil
}

// UpdateJSON decodes an update document (see models.DecodePatch) and applies
// it with Update.
func (m *Manager) UpdateJSON(ctx context.Context, data []byte) error {
	patch, err := models.DecodePatch(data)
	if err != nil {
		return &Error{Op: "update", Kind: ErrInvalidPatch, Err: err}
	}
	return m.Update(ctx, patch)
}

// persistForCurrent writes a per-user field qualified by the durable
// current-user marker, which must agree with the cached user.
func (m *Manager) persistForCurrent(ctx context.Context, op string, p keys.Purpose, value string) error {
	user, err := m.currentUserMarker(ctx, op)
	if err != nil {
		return err
	}
	if user != m.current.record.Username {
		return &Error{
			Op:    op,
			Field: string(keys.LastUser),
			Kind:  ErrNotInitialised,
			Err:   fmt.Errorf("current user changed to %q outside this session", user),
		}
	}
	return m.write(ctx, op, p, user, value)
}

func (m *Manager) currentUserMarker(ctx context.Context, op string) (string, error) {
	user, ok, err := m.read(ctx, op, keys.LastUser, "")
	if err != nil {
		return "", err
	}
	if !ok || user == "" {
		return "", &Error{Op: op, Field: string(keys.LastUser), Kind: ErrNotInitialised}
	}
	return user, nil
}

// Forget deletes every durable value of username and drops the cache when it
// holds that user. The current-user marker is removed only if it points to
// username. Afterwards the user can be initialised again.
func (m *Manager) Forget(ctx context.Context, username string) error {
	const op = "forget"

	user := NormalizeUsername(username)
	if user == "" {
		return &Error{Op: op, Field: string(keys.Username), Kind: ErrInvalidUsername}
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	userKeys := keys.UserKeys(user)
	if bd, ok := m.store.(securestore.BatchDeleter); ok {
		if err := bd.DeleteAll(ctx, userKeys); err != nil {
			return &Error{Op: op, Kind: ErrDurableWriteFailed, Err: err}
		}
	} else {
		for i, k := range userKeys {
			if err := m.store.Delete(ctx, k); err != nil {
				return &Error{Op: op, Field: string(keys.UserPurposes[i]), Kind: ErrDurableWriteFailed, Err: err}
			}
		}
	}

	marker, ok, err := m.read(ctx, op, keys.LastUser, "")
	if err != nil {
		return err
	}
	if ok && marker == user {
		if err := m.store.Delete(ctx, keys.Key(keys.LastUser, "")); err != nil {
			return &Error{Op: op, Field: string(keys.LastUser), Kind: ErrDurableWriteFailed, Err: err}
		}
	}

	if m.current != nil && m.current.record.Username == user {
		m.current = nil
	}

	m.log.Info(ctx, "user storage forgotten", "username", user)
	return nil
}

// Reset drops the in-memory cache. Durable state is untouched.
func (m *Manager) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.current = nil
}

// Initialised reports whether a user is loaded.
func (m *Manager) Initialised() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.current != nil
}

// Username returns the cached, normalized username.
func (m *Manager) Username() (string, bool, error) {
	rec, err := m.Snapshot()
	if err != nil {
		return "", false, err
	}
	return rec.Username, rec.Username != "", nil
}

// DeviceUUID returns the cached device id, ok=false when never set.
func (m *Manager) DeviceUUID() (string, bool, error) {
	rec, err := m.Snapshot()
	if err != nil {
		return "", false, err
	}
	v, ok := rec.DeviceUUID.Get()
	return v, ok, nil
}

// AuthKey returns the cached auth key, ok=false when never set.
func (m *Manager) AuthKey() (string, bool, error) {
	rec, err := m.Snapshot()
	if err != nil {
		return "", false, err
	}
	v, ok := rec.AuthKey.Get()
	return v, ok, nil
}

// AccessTokenValue returns the cached token string.
func (m *Manager) AccessTokenValue() (string, error) {
	const op = "accessToken"

	rec, err := m.snapshot(op)
	if err != nil {
		return "", err
	}
	tok, ok := rec.AccessToken.Get()
	if !ok || tok.Token == "" {
		return "", &Error{Op: op, Kind: ErrNoAccessToken}
	}
	return tok.Token, nil
}

// CurrentUserID returns the user id carried by the cached access token.
func (m *Manager) CurrentUserID() (string, error) {
	const op = "currentUserId"

	rec, err := m.snapshot(op)
	if err != nil {
		return "", err
	}
	tok, ok := rec.AccessToken.Get()
	if !ok || tok.Token == "" {
		return "", &Error{Op: op, Kind: ErrNoAccessToken}
	}

	id, err := m.crypto.SubjectFromToken(tok.Token)
	if err != nil {
		return "", &Error{Op: op, Field: "accessToken", Kind: ErrMalformedToken, Err: err}
	}
	return id, nil
}

// ClearAccessToken drops the cached access token.
func (m *Manager) ClearAccessToken() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.current == nil {
		return &Error{Op: "clearAccessToken", Kind: ErrNotInitialised}
	}
	m.current.record.AccessToken = models.None[models.AccessToken]()
	return nil
}

// Salt returns a copy of the current user's salt. Callers should wipe it
// after use.
func (m *Manager) Salt() ([]byte, error) {
	const op = "salt"

	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.current == nil {
		return nil, &Error{Op: op, Kind: ErrNotInitialised}
	}
	salt, err := m.current.saltCopy()
	if err != nil {
		return nil, &Error{Op: op, Kind: ErrMissingSalt, Err: err}
	}
	return salt, nil
}

// Snapshot returns a copy of the cached record.
func (m *Manager) Snapshot() (models.UserRecord, error) {
	return m.snapshot("read")
}

func (m *Manager) snapshot(op string) (models.UserRecord, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.current == nil {
		return models.UserRecord{}, &Error{Op: op, Kind: ErrNotInitialised}
	}
	return m.current.record, nil
}

func (m *Manager) write(ctx context.Context, op string, p keys.Purpose, user, value string) error {
	if err := m.store.Set(ctx, keys.Key(p, user), value); err != nil {
		return &Error{Op: op, Field: string(p), Kind: ErrDurableWriteFailed, Err: err}
	}
	return nil
}

func (m *Manager) read(ctx context.Context, op string, p keys.Purpose, user string) (string, bool, error) {
	v, ok, err := m.store.Get(ctx, keys.Key(p, user))
	if err != nil {
		return "", false, &Error{Op: op, Field: string(p), Kind: ErrDurableReadFailed, Err: err}
	}
	return v, ok, nil
}
