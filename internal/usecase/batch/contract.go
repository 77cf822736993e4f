package batch

import (
	"context"

	domcat "github.com/kailas-cloud/katalog/internal/domain/catalog"
)

// ItemUpserter creates or updates a catalog item.
type ItemUpserter interface {
	Upsert(ctx context.Context, id string, kind domcat.Kind, p domcat.Params) (domcat.Item, bool, error)
}

// ItemDeleter deletes a catalog item.
type ItemDeleter interface {
	Delete(ctx context.Context, kind domcat.Kind, id string) error
}
