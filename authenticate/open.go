package authenticate

import (
	"context"
	"fmt"
	"io"

	"github.com/dmitrijs2005/pinkeeper/internal/config"
	"github.com/dmitrijs2005/pinkeeper/internal/cryptox"
	"github.com/dmitrijs2005/pinkeeper/internal/logging"
	"github.com/dmitrijs2005/pinkeeper/internal/securestore"
	"github.com/dmitrijs2005/pinkeeper/internal/storage"
)

// Open builds an Authenticator from configuration: it opens the configured
// secure store and crypto provider and wires them into a storage.Manager.
// The returned Authenticator starts uninitialised.
func Open(ctx context.Context, cfg *config.Config, log logging.Logger) (*Authenticator, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	store, closer, err := openStore(ctx, cfg, log)
	if err != nil {
		return nil, err
	}

	provider := cryptox.NewProvider(
		cryptox.WithSaltSize(cfg.SaltSize),
		cryptox.WithHashAlgorithm(cryptox.HashAlgorithm(cfg.HashAlgorithm)),
	)

	a := New(storage.NewManager(store, provider, log), provider)
	a.closer = closer

	log.Info(ctx, "authenticator ready", "backend", cfg.StoreBackend, "hash_algorithm", cfg.HashAlgorithm)
	return a, nil
}

// OpenWithArgs loads configuration from args the way config.Load does
// (defaults, the JSON file given by -c, PINKEEPER_* variables, flags) and
// opens an Authenticator logging to stderr at the configured level.
func OpenWithArgs(ctx context.Context, args []string) (*Authenticator, error) {
	cfg, err := config.Load(args)
	if err != nil {
		return nil, err
	}
	return openWithDefaultLogger(ctx, cfg)
}

// OpenFromProcess is OpenWithArgs over the process arguments.
func OpenFromProcess(ctx context.Context) (*Authenticator, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, err
	}
	return openWithDefaultLogger(ctx, cfg)
}

func openWithDefaultLogger(ctx context.Context, cfg *config.Config) (*Authenticator, error) {
	level, err := cfg.Level()
	if err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return Open(ctx, cfg, logging.NewDefaultLogger(level))
}

func openStore(ctx context.Context, cfg *config.Config, log logging.Logger) (securestore.Store, io.Closer, error) {
	switch cfg.StoreBackend {
	case config.BackendSQLite:
		if cfg.StorePassphrase == "" {
			log.Warn(ctx, "sqlite store opened without a passphrase", "dsn", cfg.DSN)
		}
		s, err := securestore.OpenSQLite(ctx, cfg.DSN, []byte(cfg.StorePassphrase))
		if err != nil {
			return nil, nil, fmt.Errorf("open sqlite store: %w", err)
		}
		return s, s, nil
	case config.BackendKeyring:
		return securestore.NewKeyringStore(cfg.KeyringService), nil, nil
	case config.BackendMemory:
		return securestore.NewMemoryStore(), nil, nil
	default:
		return nil, nil, fmt.Errorf("unknown store backend %q", cfg.StoreBackend)
	}
}
