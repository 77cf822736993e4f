package batch

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/kailas-cloud/katalog/internal/domain"
	dombatch "github.com/kailas-cloud/katalog/internal/domain/batch"
	domcat "github.com/kailas-cloud/katalog/internal/domain/catalog"
	"github.com/kailas-cloud/katalog/internal/logger"
)

// MaxBatchSize is the default maximum number of entries per batch request.
const MaxBatchSize = 100

// Entry is one item in a batch upsert.
type Entry struct {
	ID     string
	Params domcat.Params
}

// Service handles bulk catalog operations with per-entry error reporting.
type Service struct {
	items        ItemUpserter
	del          ItemDeleter
	maxBatchSize int
}

// New creates a batch service.
func New(items ItemUpserter, del ItemDeleter) *Service {
	return &Service{items: items, del: del, maxBatchSize: MaxBatchSize}
}

// WithMaxBatchSize configures the maximum batch size.
func (s *Service) WithMaxBatchSize(size int) *Service {
	if size > 0 {
		s.maxBatchSize = size
	}
	return s
}

// MaxBatchSize returns the configured limit.
func (s *Service) MaxBatchSize() int { return s.maxBatchSize }

// Upsert creates or updates items one by one. A failing entry does not stop
// the rest; a cancelled context fails every entry not yet processed.
func (s *Service) Upsert(ctx context.Context, kind domcat.Kind, entries []Entry) []dombatch.Result {
	results := make([]dombatch.Result, len(entries))

	if err := s.precheck(kind, len(entries)); err != nil {
		for i, e := range entries {
			results[i] = dombatch.NewError(e.ID, err)
		}
		return results
	}

	for i, e := range entries {
		if err := ctx.Err(); err != nil {
			failRest(results[i:], entries[i:], err)
			break
		}
		_, created, err := s.items.Upsert(ctx, e.ID, kind, e.Params)
		if err != nil {
			results[i] = dombatch.NewError(e.ID, fmt.Errorf("upsert: %w", err))
			continue
		}
		results[i] = dombatch.NewUpserted(e.ID, created)
	}

	s.log(ctx, "upsert", kind, results)
	return results
}

// Delete removes items by id in batch.
func (s *Service) Delete(ctx context.Context, kind domcat.Kind, ids []string) []dombatch.Result {
	results := make([]dombatch.Result, len(ids))

	if err := s.precheck(kind, len(ids)); err != nil {
		for i, id := range ids {
			results[i] = dombatch.NewError(id, err)
		}
		return results
	}

	for i, id := range ids {
		if err := ctx.Err(); err != nil {
			for j := i; j < len(ids); j++ {
				results[j] = dombatch.NewError(ids[j], err)
			}
			break
		}
		if err := s.del.Delete(ctx, kind, id); err != nil {
			results[i] = dombatch.NewError(id, fmt.Errorf("delete: %w", err))
			continue
		}
		results[i] = dombatch.NewDeleted(id)
	}

	s.log(ctx, "delete", kind, results)
	return results
}

func (s *Service) precheck(kind domcat.Kind, n int) error {
	if !kind.IsValid() {
		return fmt.Errorf("%w: %q", domain.ErrInvalidKind, kind)
	}
	if n > s.maxBatchSize {
		return fmt.Errorf("batch size %d exceeds %d: %w", n, s.maxBatchSize, domain.ErrInvalidItem)
	}
	return nil
}

func failRest(results []dombatch.Result, entries []Entry, err error) {
	for i, e := range entries {
		results[i] = dombatch.NewError(e.ID, err)
	}
}

func (s *Service) log(ctx context.Context, op string, kind domcat.Kind, results []dombatch.Result) {
	ok, failed := dombatch.Count(results)
	logger.FromContext(ctx).Debug("batch processed",
		zap.String("op", op),
		zap.String("kind", string(kind)),
		zap.Int("succeeded", ok),
		zap.Int("failed", failed),
	)
}
