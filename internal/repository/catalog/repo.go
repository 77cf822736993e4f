package catalog

import (
	"context"
	"errors"
	"fmt"

	"github.com/kailas-cloud/katalog/internal/domain"
	domcat "github.com/kailas-cloud/katalog/internal/domain/catalog"
)

// store is the consumer interface for catalog items (ISP).
type store interface {
	HSet(ctx context.Context, key string, fields map[string]string) error
	HGetAll(ctx context.Context, key string) (map[string]string, error)
	HGetAllMulti(ctx context.Context, keys []string) ([]map[string]string, error)
	Del(ctx context.Context, key string) error
	Exists(ctx context.Context, key string) (bool, error)
	ZAdd(ctx context.Context, key string, score float64, member string) error
	ZRevRange(ctx context.Context, key string, limit int) ([]string, error)
	ZRem(ctx context.Context, key string, members ...string) error
	ZCard(ctx context.Context, key string) (int64, error)
}

// Repo implements usecase/catalog.Repository and usecase/recommend.ItemSource.
type Repo struct {
	store  store
	prefix string
}

// New creates a catalog repository. An empty prefix falls back to domain.KeyPrefix.
func New(s store, prefix string) *Repo {
	if prefix == "" {
		prefix = domain.KeyPrefix
	}
	return &Repo{store: s, prefix: prefix}
}

// Save writes the item hash and indexes it by created_at.
// On index failure the hash write is rolled back only for new items.
func (r *Repo) Save(ctx context.Context, item domcat.Item) error {
	key := r.itemKey(item.Kind(), item.ID())

	existed, err := r.store.Exists(ctx, key)
	if err != nil {
		return fmt.Errorf("check exists %s: %w", key, err)
	}

	if err := r.store.HSet(ctx, key, itemToHash(&item)); err != nil {
		return fmt.Errorf("hset item %s: %w", key, err)
	}

	if err := r.store.ZAdd(ctx, r.indexKey(item.Kind()), float64(item.CreatedAt()), item.ID()); err != nil {
		if existed {
			return fmt.Errorf("zadd item %s: %w", item.ID(), err)
		}
		return errors.Join(fmt.Errorf("zadd item %s: %w", item.ID(), err), r.store.Del(ctx, key))
	}

	return nil
}

// Get returns an item by kind and ID.
func (r *Repo) Get(ctx context.Context, kind domcat.Kind, id string) (domcat.Item, error) {
	key := r.itemKey(kind, id)
	m, err := r.store.HGetAll(ctx, key)
	if err != nil {
		return domcat.Item{}, fmt.Errorf("hgetall item %s: %w", key, err)
	}
	if len(m) == 0 {
		return domcat.Item{}, domain.ErrItemNotFound
	}
	return itemFromHash(kind, id, m)
}

// Delete removes the item hash and its index entry.
func (r *Repo) Delete(ctx context.Context, kind domcat.Kind, id string) error {
	key := r.itemKey(kind, id)

	exists, err := r.store.Exists(ctx, key)
	if err != nil {
		return fmt.Errorf("check exists %s: %w", key, err)
	}
	if !exists {
		return domain.ErrItemNotFound
	}

	if err := r.store.Del(ctx, key); err != nil {
		return fmt.Errorf("del item %s: %w", key, err)
	}
	if err := r.store.ZRem(ctx, r.indexKey(kind), id); err != nil {
		return fmt.Errorf("zrem item %s: %w", id, err)
	}
	return nil
}

// Latest returns up to limit items of the kind, newest first.
// Index entries whose hash has disappeared are skipped.
func (r *Repo) Latest(ctx context.Context, kind domcat.Kind, limit int) ([]domcat.Item, error) {
	ids, err := r.store.ZRevRange(ctx, r.indexKey(kind), limit)
	if err != nil {
		return nil, fmt.Errorf("zrange %s: %w", kind, err)
	}
	if len(ids) == 0 {
		return []domcat.Item{}, nil
	}

	keys := make([]string, len(ids))
	for i, id := range ids {
		keys[i] = r.itemKey(kind, id)
	}

	results, err := r.store.HGetAllMulti(ctx, keys)
	if err != nil {
		return nil, fmt.Errorf("hgetall multi %s: %w", kind, err)
	}

	items := make([]domcat.Item, 0, len(results))
	for i, m := range results {
		if len(m) == 0 {
			continue
		}
		item, err := itemFromHash(kind, ids[i], m)
		if err != nil {
			return nil, fmt.Errorf("parse item %s: %w", keys[i], err)
		}
		items = append(items, item)
	}
	return items, nil
}

// Count returns the number of indexed items of the kind.
func (r *Repo) Count(ctx context.Context, kind domcat.Kind) (int64, error) {
	n, err := r.store.ZCard(ctx, r.indexKey(kind))
	if err != nil {
		return 0, fmt.Errorf("zcard %s: %w", kind, err)
	}
	return n, nil
}

// Key patterns: {prefix}item:{kind}:{id}, {prefix}items:{kind}

func (r *Repo) itemKey(kind domcat.Kind, id string) string {
	return fmt.Sprintf("%sitem:%s:%s", r.prefix, kind, id)
}

func (r *Repo) indexKey(kind domcat.Kind) string {
	return fmt.Sprintf("%sitems:%s", r.prefix, kind)
}
