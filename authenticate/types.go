package authenticate

import (
	"github.com/dmitrijs2005/pinkeeper/internal/config"
	"github.com/dmitrijs2005/pinkeeper/internal/logging"
	"github.com/dmitrijs2005/pinkeeper/internal/models"
	"github.com/dmitrijs2005/pinkeeper/internal/securestore"
	"github.com/dmitrijs2005/pinkeeper/internal/storage"
)

// Types used by the Authenticator's methods, exported so callers outside the
// module can name them.
type (
	Config      = config.Config
	Logger      = logging.Logger
	Patch       = models.Patch
	AccessToken = models.AccessToken
	UserRecord  = models.UserRecord
	Error       = storage.Error

	Optional[T any] = models.Optional[T]
)

const (
	BackendSQLite  = config.BackendSQLite
	BackendKeyring = config.BackendKeyring
	BackendMemory  = config.BackendMemory
)

var (
	ErrNotInitialised     = storage.ErrNotInitialised
	ErrAlreadyInitialized = storage.ErrAlreadyInitialized
	ErrMissingSalt        = storage.ErrMissingSalt
	ErrNoAccessToken      = storage.ErrNoAccessToken
	ErrDurableWriteFailed = storage.ErrDurableWriteFailed
	ErrDurableReadFailed  = storage.ErrDurableReadFailed
	ErrMalformedToken     = storage.ErrMalformedToken
	ErrInvalidUsername    = storage.ErrInvalidUsername
	ErrInvalidPatch       = storage.ErrInvalidPatch
	ErrCrypto             = storage.ErrCrypto
	ErrWrongPassphrase    = securestore.ErrWrongPassphrase
)

// Some returns a present patch field.
func Some[T any](v T) Optional[T] {
	return models.Some(v)
}

// DefaultConfig returns a Config holding the default settings.
func DefaultConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	return cfg
}
