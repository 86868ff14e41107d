package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTempJSON(t *testing.T, data map[string]any) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "cfg.json")
	b, err := json.Marshal(data)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, b, 0o600))
	return path
}

func Test_parseJson(t *testing.T) {
	t.Run("overlays present keys only", func(t *testing.T) {
		path := writeTempJSON(t, map[string]any{
			"dsn":              "/var/lib/pk.db",
			"store_passphrase": "s3cret",
			"hash_algorithm":   "argon2id",
		})

		cfg := &Config{}
		cfg.LoadDefaults()
		require.NoError(t, parseJson(cfg, []string{"-config", path}))

		assert.Equal(t, "/var/lib/pk.db", cfg.DSN)
		assert.Equal(t, "s3cret", cfg.StorePassphrase)
		assert.Equal(t, "argon2id", cfg.HashAlgorithm)
		assert.Equal(t, BackendSQLite, cfg.StoreBackend)
		assert.Equal(t, 128, cfg.SaltSize)
	})

	t.Run("no flag, no changes", func(t *testing.T) {
		cfg := &Config{DSN: "keep.db"}
		require.NoError(t, parseJson(cfg, []string{"-b", "memory"}))
		assert.Equal(t, "keep.db", cfg.DSN)
	})

	t.Run("missing file", func(t *testing.T) {
		cfg := &Config{}
		err := parseJson(cfg, []string{"-c", filepath.Join(t.TempDir(), "nope.json")})
		require.ErrorContains(t, err, "read config file")
	})

	t.Run("invalid json", func(t *testing.T) {
		bad := filepath.Join(t.TempDir(), "bad.json")
		require.NoError(t, os.WriteFile(bad, []byte(`{ this is not valid json`), 0o600))

		err := parseJson(&Config{}, []string{"-c", bad})
		require.ErrorContains(t, err, "parse config file")
	})
}
