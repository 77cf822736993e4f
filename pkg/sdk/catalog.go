package katalog

import (
	"context"
	"fmt"
	"time"

	domcat "github.com/kailas-cloud/katalog/internal/domain/catalog"
	batchuc "github.com/kailas-cloud/katalog/internal/usecase/batch"
)

// CatalogService manages the items of one catalog kind.
type CatalogService struct {
	kind  domcat.Kind
	svc   catalogUseCase
	batch batchUseCase
	obs   *observer
}

// Create stores a new item under a generated id.
func (s *CatalogService) Create(ctx context.Context, in ItemInput) (_ Item, err error) {
	start := time.Now()
	defer func() { s.obs.observe("catalog.create", start, err) }()

	item, err := s.svc.Create(ctx, s.kind, in.toInternal())
	if err != nil {
		return Item{}, fmt.Errorf("create item: %w", err)
	}
	return fromInternalItem(&item), nil
}

// Upsert creates or replaces the item with the given id.
// created reports whether the item did not exist before.
func (s *CatalogService) Upsert(ctx context.Context, id string, in ItemInput) (_ Item, created bool, err error) {
	start := time.Now()
	defer func() { s.obs.observe("catalog.upsert", start, err) }()

	item, created, err := s.svc.Upsert(ctx, id, s.kind, in.toInternal())
	if err != nil {
		return Item{}, false, fmt.Errorf("upsert item %s: %w", id, err)
	}
	return fromInternalItem(&item), created, nil
}

// Get retrieves an item by id.
func (s *CatalogService) Get(ctx context.Context, id string) (_ Item, err error) {
	start := time.Now()
	defer func() { s.obs.observe("catalog.get", start, err) }()

	item, err := s.svc.Get(ctx, s.kind, id)
	if err != nil {
		return Item{}, fmt.Errorf("get item %s: %w", id, err)
	}
	return fromInternalItem(&item), nil
}

// Delete removes an item by id.
func (s *CatalogService) Delete(ctx context.Context, id string) (err error) {
	start := time.Now()
	defer func() { s.obs.observe("catalog.delete", start, err) }()

	if err = s.svc.Delete(ctx, s.kind, id); err != nil {
		return fmt.Errorf("delete item %s: %w", id, err)
	}
	return nil
}

// Latest returns up to limit items, newest first, and the total item count.
func (s *CatalogService) Latest(ctx context.Context, limit int) (_ []Item, total int64, err error) {
	start := time.Now()
	defer func() { s.obs.observe("catalog.latest", start, err) }()

	items, total, err := s.svc.Latest(ctx, s.kind, limit)
	if err != nil {
		return nil, 0, fmt.Errorf("latest items: %w", err)
	}
	out := make([]Item, len(items))
	for i := range items {
		out[i] = fromInternalItem(&items[i])
	}
	return out, total, nil
}

// BatchItem is one entry of a batch upsert.
type BatchItem struct {
	ID string
	ItemInput
}

// BatchResult is the outcome of one batch entry.
type BatchResult struct {
	ID     string
	Status string // "created", "updated", "deleted" or "error"
	Err    error
}

// BatchResponse holds per-entry outcomes in request order.
type BatchResponse struct {
	Items     []BatchResult
	Succeeded int
	Failed    int
}

// BatchUpsert creates or updates items. Entries fail independently.
func (s *CatalogService) BatchUpsert(ctx context.Context, items []BatchItem) (resp BatchResponse) {
	start := time.Now()
	defer func() { s.obs.observe("catalog.batch_upsert", start, batchErr(resp)) }()

	entries := make([]batchuc.Entry, len(items))
	for i, it := range items {
		entries[i] = batchuc.Entry{ID: it.ID, Params: it.toInternal()}
	}
	return fromInternalBatch(s.batch.Upsert(ctx, s.kind, entries))
}

// BatchDelete removes items by id. Entries fail independently.
func (s *CatalogService) BatchDelete(ctx context.Context, ids []string) (resp BatchResponse) {
	start := time.Now()
	defer func() { s.obs.observe("catalog.batch_delete", start, batchErr(resp)) }()

	return fromInternalBatch(s.batch.Delete(ctx, s.kind, ids))
}

func batchErr(resp BatchResponse) error {
	if resp.Failed == 0 {
		return nil
	}
	return fmt.Errorf("%d of %d batch entries failed", resp.Failed, len(resp.Items))
}
