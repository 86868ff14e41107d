package secrets

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/pinkeeper/internal/dbx"
	"github.com/dmitrijs2005/pinkeeper/internal/models"
)

type SQLiteRepository struct {
	db dbx.DBTX
}

func NewSQLiteRepository(db dbx.DBTX) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

func (r *SQLiteRepository) Get(ctx context.Context, key string) (*models.SealedSecret, error) {
	var s models.SealedSecret
	err := r.db.QueryRowContext(ctx, `SELECT ciphertext, nonce FROM secrets WHERE key = ?`, key).
		Scan(&s.Ciphertext, &s.Nonce)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get secret[%s]: %w", key, err)
	}
	return &s, nil
}

func (r *SQLiteRepository) Set(ctx context.Context, key string, secret models.SealedSecret) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO secrets (key, ciphertext, nonce) VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET
			ciphertext = excluded.ciphertext,
			nonce      = excluded.nonce,
			updated_at = CURRENT_TIMESTAMP
	`, key, secret.Ciphertext, secret.Nonce)
	if err != nil {
		return fmt.Errorf("failed to set secret[%s]: %w", key, err)
	}
	return nil
}

func (r *SQLiteRepository) Delete(ctx context.Context, key string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM secrets WHERE key = ?`, key)
	if err != nil {
		return fmt.Errorf("failed to delete secret[%s]: %w", key, err)
	}
	return nil
}

func (r *SQLiteRepository) GetKeyParams(ctx context.Context) (*models.KeyParams, error) {
	var p models.KeyParams
	err := r.db.QueryRowContext(ctx, `SELECT salt, verifier FROM key_params WHERE id = 1`).
		Scan(&p.Salt, &p.Verifier)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get key params: %w", err)
	}
	return &p, nil
}

// SaveKeyParams stores the params only if none exist yet.
func (r *SQLiteRepository) SaveKeyParams(ctx context.Context, params models.KeyParams) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO key_params (id, salt, verifier) VALUES (1, ?, ?)
		ON CONFLICT(id) DO NOTHING
	`, params.Salt, params.Verifier)
	if err != nil {
		return fmt.Errorf("failed to save key params: %w", err)
	}
	return nil
}
