package config

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/dmitrijs2005/pinkeeper/internal/cryptox"
)

const (
	BackendSQLite  = "sqlite"
	BackendKeyring = "keyring"
	BackendMemory  = "memory"
)

// Config holds runtime settings of the credential cache.
type Config struct {
	StoreBackend    string `env:"PINKEEPER_STORE_BACKEND"`
	DSN             string `env:"PINKEEPER_DSN"`
	KeyringService  string `env:"PINKEEPER_KEYRING_SERVICE"`
	StorePassphrase string `env:"PINKEEPER_STORE_PASSPHRASE"`
	HashAlgorithm   string `env:"PINKEEPER_HASH_ALGORITHM"`
	SaltSize        int    `env:"PINKEEPER_SALT_SIZE"`
	LogLevel        string `env:"PINKEEPER_LOG_LEVEL"`
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.StoreBackend = BackendSQLite
	c.DSN = "pinkeeper.db"
	c.KeyringService = "pinkeeper"
	c.StorePassphrase = ""
	c.HashAlgorithm = string(cryptox.SHA512)
	c.SaltSize = cryptox.DefaultSaltSize
	c.LogLevel = "info"
}

// Level parses LogLevel (debug, info, warn, error).
func (c *Config) Level() (slog.Level, error) {
	var l slog.Level
	if err := l.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return 0, fmt.Errorf("invalid log level %q", c.LogLevel)
	}
	return l, nil
}

// Validate reports the first invalid setting.
func (c *Config) Validate() error {
	switch c.StoreBackend {
	case BackendSQLite:
		if c.DSN == "" {
			return fmt.Errorf("sqlite backend requires a dsn")
		}
	case BackendKeyring:
		if c.KeyringService == "" {
			return fmt.Errorf("keyring backend requires a service name")
		}
	case BackendMemory:
	default:
		return fmt.Errorf("unknown store backend %q", c.StoreBackend)
	}
	if !cryptox.HashAlgorithm(c.HashAlgorithm).Valid() {
		return fmt.Errorf("unknown hash algorithm %q", c.HashAlgorithm)
	}
	if c.SaltSize <= 0 {
		return fmt.Errorf("salt size must be positive, got %d", c.SaltSize)
	}
	if _, err := c.Level(); err != nil {
		return err
	}
	return nil
}

// Load builds a Config from defaults, the JSON file named in args, the
// environment and args itself, then validates it.
func Load(args []string) (*Config, error) {
	cfg := &Config{}
	cfg.LoadDefaults()

	if err := parseJson(cfg, args); err != nil {
		return nil, err
	}
	if err := parseEnv(cfg); err != nil {
		return nil, err
	}
	if err := parseFlags(cfg, args); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// LoadConfig is Load applied to the process arguments.
func LoadConfig() (*Config, error) {
	return Load(os.Args[1:])
}
