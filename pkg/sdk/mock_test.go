package katalog

import (
	"context"

	dombatch "github.com/kailas-cloud/katalog/internal/domain/batch"
	domcat "github.com/kailas-cloud/katalog/internal/domain/catalog"
	dompref "github.com/kailas-cloud/katalog/internal/domain/preference"
	batchuc "github.com/kailas-cloud/katalog/internal/usecase/batch"
	healthuc "github.com/kailas-cloud/katalog/internal/usecase/health"
	recommenduc "github.com/kailas-cloud/katalog/internal/usecase/recommend"
)

// --- catalogUseCase mock ---

type mockCatalogUC struct {
	createFn func(ctx context.Context, kind domcat.Kind, p domcat.Params) (domcat.Item, error)
	upsertFn func(ctx context.Context, id string, kind domcat.Kind, p domcat.Params) (domcat.Item, bool, error)
	getFn    func(ctx context.Context, kind domcat.Kind, id string) (domcat.Item, error)
	deleteFn func(ctx context.Context, kind domcat.Kind, id string) error
	latestFn func(ctx context.Context, kind domcat.Kind, limit int) ([]domcat.Item, int64, error)
}

func (m *mockCatalogUC) Create(ctx context.Context, kind domcat.Kind, p domcat.Params) (domcat.Item, error) {
	return m.createFn(ctx, kind, p)
}

func (m *mockCatalogUC) Upsert(
	ctx context.Context, id string, kind domcat.Kind, p domcat.Params,
) (domcat.Item, bool, error) {
	return m.upsertFn(ctx, id, kind, p)
}

func (m *mockCatalogUC) Get(ctx context.Context, kind domcat.Kind, id string) (domcat.Item, error) {
	return m.getFn(ctx, kind, id)
}

func (m *mockCatalogUC) Delete(ctx context.Context, kind domcat.Kind, id string) error {
	return m.deleteFn(ctx, kind, id)
}

func (m *mockCatalogUC) Latest(ctx context.Context, kind domcat.Kind, limit int) ([]domcat.Item, int64, error) {
	return m.latestFn(ctx, kind, limit)
}

// --- batchUseCase mock ---

type mockBatchUC struct {
	upsertFn func(ctx context.Context, kind domcat.Kind, entries []batchuc.Entry) []dombatch.Result
	deleteFn func(ctx context.Context, kind domcat.Kind, ids []string) []dombatch.Result
}

func (m *mockBatchUC) Upsert(ctx context.Context, kind domcat.Kind, entries []batchuc.Entry) []dombatch.Result {
	return m.upsertFn(ctx, kind, entries)
}

func (m *mockBatchUC) Delete(ctx context.Context, kind domcat.Kind, ids []string) []dombatch.Result {
	return m.deleteFn(ctx, kind, ids)
}

// --- preferenceUseCase mock ---

type mockPreferenceUC struct {
	saveFn  func(ctx context.Context, userID string, in dompref.Preferences, sessionID string) (dompref.Preferences, error)
	getFn   func(ctx context.Context, userID string) (dompref.Preferences, error)
	cacheFn func(ctx context.Context, sessionID string, tokens []string) ([]string, error)
}

func (m *mockPreferenceUC) Save(
	ctx context.Context, userID string, in dompref.Preferences, sessionID string,
) (dompref.Preferences, error) {
	return m.saveFn(ctx, userID, in, sessionID)
}

func (m *mockPreferenceUC) Get(ctx context.Context, userID string) (dompref.Preferences, error) {
	return m.getFn(ctx, userID)
}

func (m *mockPreferenceUC) CacheSessionTokens(ctx context.Context, sessionID string, tokens []string) ([]string, error) {
	return m.cacheFn(ctx, sessionID, tokens)
}

// --- recommendUseCase mock ---

type mockRecommendUC struct {
	recommendFn func(ctx context.Context, req recommenduc.Request) (recommenduc.Response, error)
}

func (m *mockRecommendUC) Recommend(ctx context.Context, req recommenduc.Request) (recommenduc.Response, error) {
	return m.recommendFn(ctx, req)
}

// --- healthUseCase mock ---

type mockHealthUC struct {
	report healthuc.Report
}

func (m *mockHealthUC) Check(_ context.Context) healthuc.Report { return m.report }

// --- helpers ---

func testItem(kind domcat.Kind, id, name string) domcat.Item {
	return domcat.Reconstruct(id, kind, domcat.Params{Name: name, Category: "lainnya", Price: 10000}, 1000, 2000)
}
