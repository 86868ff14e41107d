// Package secrets persists sealed secure-store values in SQLite.
package secrets

import (
	"context"

	"github.com/dmitrijs2005/pinkeeper/internal/models"
)

// Repository stores sealed values by key. Get and GetKeyParams return
// (nil, nil) when nothing is stored.
type Repository interface {
	Get(ctx context.Context, key string) (*models.SealedSecret, error)
	Set(ctx context.Context, key string, secret models.SealedSecret) error
	Delete(ctx context.Context, key string) error
	GetKeyParams(ctx context.Context) (*models.KeyParams, error)
	SaveKeyParams(ctx context.Context, params models.KeyParams) error
}
