package catalog

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/kailas-cloud/katalog/internal/domain"
	domcat "github.com/kailas-cloud/katalog/internal/domain/catalog"
)

// Service handles catalog item CRUD and newest-first listings.
type Service struct {
	repo     Repository
	maxLimit int
	now      func() time.Time
	newID    func() string
}

// New creates a catalog service. maxLimit caps Latest and is its default.
func New(repo Repository, maxLimit int) *Service {
	return &Service{repo: repo, maxLimit: maxLimit, now: time.Now, newID: uuid.NewString}
}

// Create stores a new item under a generated ID.
func (s *Service) Create(ctx context.Context, kind domcat.Kind, p domcat.Params) (domcat.Item, error) {
	item, _, err := s.Upsert(ctx, s.newID(), kind, p)
	return item, err
}

// Upsert validates and stores an item. created_at survives updates.
// Returns true if the item was created.
func (s *Service) Upsert(ctx context.Context, id string, kind domcat.Kind, p domcat.Params) (domcat.Item, bool, error) {
	if !kind.IsValid() {
		return domcat.Item{}, false, fmt.Errorf("%w: %q", domain.ErrInvalidKind, kind)
	}

	item, err := domcat.New(id, kind, p)
	if err != nil {
		return domcat.Item{}, false, fmt.Errorf("validate item: %w: %w", domain.ErrInvalidItem, err)
	}

	now := s.now().UnixMilli()
	createdAt := now
	created := true

	existing, err := s.repo.Get(ctx, kind, id)
	switch {
	case err == nil:
		createdAt = existing.CreatedAt()
		created = false
	case errors.Is(err, domain.ErrItemNotFound):
	default:
		return domcat.Item{}, false, fmt.Errorf("load item: %w", err)
	}

	item = item.WithTimestamps(createdAt, now)
	if err := s.repo.Save(ctx, item); err != nil {
		return domcat.Item{}, false, fmt.Errorf("save item: %w", err)
	}
	return item, created, nil
}

// Get returns an item by kind and ID.
func (s *Service) Get(ctx context.Context, kind domcat.Kind, id string) (domcat.Item, error) {
	if !kind.IsValid() {
		return domcat.Item{}, fmt.Errorf("%w: %q", domain.ErrInvalidKind, kind)
	}
	item, err := s.repo.Get(ctx, kind, id)
	if err != nil {
		return domcat.Item{}, fmt.Errorf("get item: %w", err)
	}
	return item, nil
}

// Delete removes an item.
func (s *Service) Delete(ctx context.Context, kind domcat.Kind, id string) error {
	if !kind.IsValid() {
		return fmt.Errorf("%w: %q", domain.ErrInvalidKind, kind)
	}
	if err := s.repo.Delete(ctx, kind, id); err != nil {
		return fmt.Errorf("delete item: %w", err)
	}
	return nil
}

// Latest returns items of a kind newest first, with the total number indexed.
// A non-positive or oversized limit is replaced by the configured maximum.
func (s *Service) Latest(ctx context.Context, kind domcat.Kind, limit int) ([]domcat.Item, int64, error) {
	if !kind.IsValid() {
		return nil, 0, fmt.Errorf("%w: %q", domain.ErrInvalidKind, kind)
	}
	if limit <= 0 || limit > s.maxLimit {
		limit = s.maxLimit
	}

	items, err := s.repo.Latest(ctx, kind, limit)
	if err != nil {
		return nil, 0, fmt.Errorf("latest items: %w", err)
	}
	total, err := s.repo.Count(ctx, kind)
	if err != nil {
		return nil, 0, fmt.Errorf("count items: %w", err)
	}
	return items, total, nil
}

// HealthCheck verifies that the catalog index is readable.
func (s *Service) HealthCheck(ctx context.Context) error {
	if _, err := s.repo.Count(ctx, domcat.Product); err != nil {
		return fmt.Errorf("catalog index: %w", err)
	}
	return nil
}
