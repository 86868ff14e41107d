package config

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/dmitrijs2005/pinkeeper/internal/flagx"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling. Pointer
// fields tell "absent" apart from zero values.
type JsonConfig struct {
	StoreBackend    *string `json:"store_backend"`
	DSN             *string `json:"dsn"`
	KeyringService  *string `json:"keyring_service"`
	StorePassphrase *string `json:"store_passphrase"`
	HashAlgorithm   *string `json:"hash_algorithm"`
	SaltSize        *int    `json:"salt_size"`
	LogLevel        *string `json:"log_level"`
}

// parseJson overlays cfg with the keys present in the file given by -c or
// -config. Without either flag it does nothing.
func parseJson(cfg *Config, args []string) error {
	path := flagx.ConfigPath(args)
	if path == "" {
		return nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}

	var jc JsonConfig
	if err := json.Unmarshal(data, &jc); err != nil {
		return fmt.Errorf("parse config file %s: %w", path, err)
	}

	overlay(&cfg.StoreBackend, jc.StoreBackend)
	overlay(&cfg.DSN, jc.DSN)
	overlay(&cfg.KeyringService, jc.KeyringService)
	overlay(&cfg.StorePassphrase, jc.StorePassphrase)
	overlay(&cfg.HashAlgorithm, jc.HashAlgorithm)
	overlay(&cfg.SaltSize, jc.SaltSize)
	overlay(&cfg.LogLevel, jc.LogLevel)
	return nil
}

func overlay[T any](dst *T, src *T) {
	if src != nil {
		*dst = *src
	}
}
