package config

import (
	"flag"
	"fmt"
	"io"

	"github.com/dmitrijs2005/pinkeeper/internal/flagx"
)

// parseFlags populates Config fields from command-line flags. Only the flags
// listed here are looked at, so the host application's own flags are left
// alone.
func parseFlags(cfg *Config, args []string) error {
	filtered := flagx.FilterArgs(args, []string{"-b", "-d", "-s", "-a", "-n", "-l"})

	fs := flag.NewFlagSet("pinkeeper", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	fs.StringVar(&cfg.StoreBackend, "b", cfg.StoreBackend, "secure store backend (sqlite, keyring, memory)")
	fs.StringVar(&cfg.DSN, "d", cfg.DSN, "sqlite database path")
	fs.StringVar(&cfg.KeyringService, "s", cfg.KeyringService, "os keyring service name")
	fs.StringVar(&cfg.HashAlgorithm, "a", cfg.HashAlgorithm, "pin hash algorithm (sha512, argon2id)")
	fs.IntVar(&cfg.SaltSize, "n", cfg.SaltSize, "salt size in bytes")
	fs.StringVar(&cfg.LogLevel, "l", cfg.LogLevel, "log level (debug, info, warn, error)")

	if err := fs.Parse(filtered); err != nil {
		return fmt.Errorf("parse flags: %w", err)
	}
	return nil
}
