package catalog

import (
	"context"

	domcat "github.com/kailas-cloud/katalog/internal/domain/catalog"
)

// Repository defines the storage contract for catalog items.
type Repository interface {
	Save(ctx context.Context, item domcat.Item) error
	Get(ctx context.Context, kind domcat.Kind, id string) (domcat.Item, error)
	Delete(ctx context.Context, kind domcat.Kind, id string) error
	Latest(ctx context.Context, kind domcat.Kind, limit int) ([]domcat.Item, error)
	Count(ctx context.Context, kind domcat.Kind) (int64, error)
}
