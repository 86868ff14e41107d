package securestore

import (
	"context"
	"crypto/subtle"
	"database/sql"
	"fmt"

	"github.com/dmitrijs2005/pinkeeper/internal/common"
	"github.com/dmitrijs2005/pinkeeper/internal/cryptox"
	"github.com/dmitrijs2005/pinkeeper/internal/dbx"
	"github.com/dmitrijs2005/pinkeeper/internal/filex"
	"github.com/dmitrijs2005/pinkeeper/internal/migrations"
	"github.com/dmitrijs2005/pinkeeper/internal/models"
	"github.com/dmitrijs2005/pinkeeper/internal/repositories/secrets"

	_ "modernc.org/sqlite" // pure-Go SQLite driver
)

const kdfSaltSize = 16

// SQLiteStore keeps every value sealed with AES-GCM. The sealing key is
// derived from the passphrase given to OpenSQLite and verified against the
// key params stored on first open.
type SQLiteStore struct {
	db   *sql.DB
	repo secrets.Repository
	key  []byte
}

// OpenSQLite opens (creating if needed) the store at dsn, applies migrations
// and unlocks it with passphrase. A passphrase different from the one used
// when the store was created fails with ErrWrongPassphrase.
func OpenSQLite(ctx context.Context, dsn string, passphrase []byte) (*SQLiteStore, error) {
	if err := filex.EnsureParentDir(dsn); err != nil {
		return nil, err
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	// One connection: ":memory:" stays a single database and writers never
	// contend for the file lock.
	db.SetMaxOpenConns(1)

	s, err := newSQLiteStore(ctx, db, passphrase)
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	return s, nil
}

func newSQLiteStore(ctx context.Context, db *sql.DB, passphrase []byte) (*SQLiteStore, error) {
	if err := migrations.Up(ctx, db); err != nil {
		return nil, err
	}

	var key []byte
	err := dbx.WithTx(ctx, db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := secrets.NewSQLiteRepository(tx)

		params, err := repo.GetKeyParams(ctx)
		if err != nil {
			return err
		}

		if params == nil {
			salt, err := common.GenerateRandByteArray(kdfSaltSize)
			if err != nil {
				return err
			}
			key = cryptox.DeriveMasterKey(passphrase, salt)
			return repo.SaveKeyParams(ctx, models.KeyParams{Salt: salt, Verifier: cryptox.MakeVerifier(key)})
		}

		candidate := cryptox.DeriveMasterKey(passphrase, params.Salt)
		if subtle.ConstantTimeCompare(params.Verifier, cryptox.MakeVerifier(candidate)) == 0 {
			common.WipeByteArray(candidate)
			return ErrWrongPassphrase
		}
		key = candidate
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("unlock store: %w", err)
	}

	return &SQLiteStore{db: db, repo: secrets.NewSQLiteRepository(db), key: key}, nil
}

func (s *SQLiteStore) Get(ctx context.Context, key string) (string, bool, error) {
	sealed, err := s.repo.Get(ctx, key)
	if err != nil {
		return "", false, err
	}
	if sealed == nil {
		return "", false, nil
	}

	plaintext, err := cryptox.Open(sealed.Ciphertext, sealed.Nonce, s.key)
	if err != nil {
		return "", false, fmt.Errorf("unseal %s: %w", key, err)
	}
	defer common.WipeByteArray(plaintext)

	return string(plaintext), true, nil
}

func (s *SQLiteStore) Set(ctx context.Context, key, value string) error {
	ct, nonce, err := cryptox.Seal([]byte(value), s.key)
	if err != nil {
		return fmt.Errorf("seal %s: %w", key, err)
	}
	return s.repo.Set(ctx, key, models.SealedSecret{Ciphertext: ct, Nonce: nonce})
}

func (s *SQLiteStore) Delete(ctx context.Context, key string) error {
	return s.repo.Delete(ctx, key)
}

// DeleteAll removes keys in a single transaction.
func (s *SQLiteStore) DeleteAll(ctx context.Context, keys []string) error {
	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := secrets.NewSQLiteRepository(tx)
		for _, k := range keys {
			if err := repo.Delete(ctx, k); err != nil {
				return err
			}
		}
		return nil
	})
}

// Close wipes the sealing key and closes the database.
func (s *SQLiteStore) Close() error {
	common.WipeByteArray(s.key)
	return s.db.Close()
}
