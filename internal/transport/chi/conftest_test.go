package chi

import (
	"context"
	"net/http"
	"sort"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/kailas-cloud/katalog/internal/domain"
	domcat "github.com/kailas-cloud/katalog/internal/domain/catalog"
	dompref "github.com/kailas-cloud/katalog/internal/domain/preference"
	batchuc "github.com/kailas-cloud/katalog/internal/usecase/batch"
	cataloguc "github.com/kailas-cloud/katalog/internal/usecase/catalog"
	healthuc "github.com/kailas-cloud/katalog/internal/usecase/health"
	preferenceuc "github.com/kailas-cloud/katalog/internal/usecase/preference"
	recommenduc "github.com/kailas-cloud/katalog/internal/usecase/recommend"
)

// memCatalog is an in-memory catalog repository.
type memCatalog struct {
	items map[string]domcat.Item
	err   error
}

func (m *memCatalog) key(kind domcat.Kind, id string) string { return string(kind) + "/" + id }

func (m *memCatalog) Save(_ context.Context, item domcat.Item) error {
	if m.err != nil {
		return m.err
	}
	m.items[m.key(item.Kind(), item.ID())] = item
	return nil
}

func (m *memCatalog) Get(_ context.Context, kind domcat.Kind, id string) (domcat.Item, error) {
	if m.err != nil {
		return domcat.Item{}, m.err
	}
	item, ok := m.items[m.key(kind, id)]
	if !ok {
		return domcat.Item{}, domain.ErrItemNotFound
	}
	return item, nil
}

func (m *memCatalog) Delete(_ context.Context, kind domcat.Kind, id string) error {
	if _, ok := m.items[m.key(kind, id)]; !ok {
		return domain.ErrItemNotFound
	}
	delete(m.items, m.key(kind, id))
	return nil
}

func (m *memCatalog) Latest(_ context.Context, kind domcat.Kind, limit int) ([]domcat.Item, error) {
	if m.err != nil {
		return nil, m.err
	}
	out := []domcat.Item{}
	for _, it := range m.items {
		if it.Kind() == kind {
			out = append(out, it)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].CreatedAt() != out[j].CreatedAt() {
			return out[i].CreatedAt() > out[j].CreatedAt()
		}
		return out[i].ID() < out[j].ID()
	})
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (m *memCatalog) Count(_ context.Context, kind domcat.Kind) (int64, error) {
	var n int64
	for _, it := range m.items {
		if it.Kind() == kind {
			n++
		}
	}
	return n, nil
}

// memPrefs is an in-memory preference repository.
type memPrefs struct {
	prefs    map[string]dompref.Preferences
	sessions map[string][]string
}

func (m *memPrefs) Save(_ context.Context, userID string, prefs dompref.Preferences) error {
	m.prefs[userID] = prefs
	return nil
}

func (m *memPrefs) Get(_ context.Context, userID string) (dompref.Preferences, error) {
	p, ok := m.prefs[userID]
	if !ok {
		return dompref.Preferences{}, domain.ErrPreferencesNotFound
	}
	return p, nil
}

func (m *memPrefs) SaveSessionTokens(_ context.Context, sessionID string, tokens []string, _ time.Duration) error {
	m.sessions[sessionID] = tokens
	return nil
}

func (m *memPrefs) SessionTokens(_ context.Context, sessionID string) ([]string, error) {
	return m.sessions[sessionID], nil
}

func (m *memPrefs) ClearSessionTokens(_ context.Context, sessionID string) error {
	delete(m.sessions, sessionID)
	return nil
}

type stubPinger struct{ err error }

func (p *stubPinger) Ping(_ context.Context) error { return p.err }

type testEnv struct {
	router  http.Handler
	catalog *memCatalog
	prefs   *memPrefs
	pinger  *stubPinger
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	catRepo := &memCatalog{items: map[string]domcat.Item{}}
	prefRepo := &memPrefs{prefs: map[string]dompref.Preferences{}, sessions: map[string][]string{}}
	pinger := &stubPinger{}

	catalogSvc := cataloguc.New(catRepo, 50)
	prefSvc := preferenceuc.New(prefRepo, time.Hour)
	recSvc := recommenduc.New(catRepo, prefSvc, recommenduc.Config{WindowSize: 50, DefaultLimit: 8, MaxLimit: 50})
	healthSvc := healthuc.New(pinger, map[string]healthuc.Checker{"catalog": catalogSvc})

	batchSvc := batchuc.New(catalogSvc, catalogSvc).WithMaxBatchSize(3)

	srv := NewServer(catalogSvc, batchSvc, prefSvc, recSvc, healthSvc, zap.NewNop())
	r := chi.NewRouter()
	srv.Register(r)

	return &testEnv{router: r, catalog: catRepo, prefs: prefRepo, pinger: pinger}
}

func (e *testEnv) seed(t *testing.T, kind domcat.Kind, id, name, desc, category string, createdAt int64) {
	t.Helper()
	item := domcat.Reconstruct(id, kind, domcat.Params{Name: name, Description: desc, Category: category}, createdAt, createdAt)
	e.catalog.items[e.catalog.key(kind, id)] = item
}
