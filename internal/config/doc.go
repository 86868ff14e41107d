// Package config loads runtime configuration for the credential cache.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file selected with -c or -config.
//  3. Environment variables (PINKEEPER_*).
//  4. Command-line flags, which override everything else.
//
// Supported flags
//
//	-b string   secure store backend: sqlite, keyring or memory
//	-d string   SQLite database path
//	-s string   OS keyring service name
//	-a string   PIN hash algorithm: sha512 or argon2id
//	-n int      salt size in bytes
//
// # JSON schema
//
//	{
//	  "store_backend": "sqlite",
//	  "dsn": "pinkeeper.db",
//	  "keyring_service": "pinkeeper",
//	  "hash_algorithm": "sha512",
//	  "salt_size": 128
//	}
//
// The store passphrase is deliberately not accepted as a flag; set it in
// the JSON file or in PINKEEPER_STORE_PASSPHRASE.
package config
