package katalog

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/kailas-cloud/katalog/internal/db"
	dbRedis "github.com/kailas-cloud/katalog/internal/db/redis"
	dombatch "github.com/kailas-cloud/katalog/internal/domain/batch"
	domcat "github.com/kailas-cloud/katalog/internal/domain/catalog"
	dompref "github.com/kailas-cloud/katalog/internal/domain/preference"
	catalogrepo "github.com/kailas-cloud/katalog/internal/repository/catalog"
	preferencerepo "github.com/kailas-cloud/katalog/internal/repository/preference"
	batchuc "github.com/kailas-cloud/katalog/internal/usecase/batch"
	cataloguc "github.com/kailas-cloud/katalog/internal/usecase/catalog"
	healthuc "github.com/kailas-cloud/katalog/internal/usecase/health"
	preferenceuc "github.com/kailas-cloud/katalog/internal/usecase/preference"
	recommenduc "github.com/kailas-cloud/katalog/internal/usecase/recommend"
)

const defaultReadinessTimeout = 10 * time.Second

// Internal interfaces, swapped for mocks in tests.
type catalogUseCase interface {
	Create(ctx context.Context, kind domcat.Kind, p domcat.Params) (domcat.Item, error)
	Upsert(ctx context.Context, id string, kind domcat.Kind, p domcat.Params) (domcat.Item, bool, error)
	Get(ctx context.Context, kind domcat.Kind, id string) (domcat.Item, error)
	Delete(ctx context.Context, kind domcat.Kind, id string) error
	Latest(ctx context.Context, kind domcat.Kind, limit int) ([]domcat.Item, int64, error)
}

type batchUseCase interface {
	Upsert(ctx context.Context, kind domcat.Kind, entries []batchuc.Entry) []dombatch.Result
	Delete(ctx context.Context, kind domcat.Kind, ids []string) []dombatch.Result
}

type preferenceUseCase interface {
	Save(ctx context.Context, userID string, in dompref.Preferences, sessionID string) (dompref.Preferences, error)
	Get(ctx context.Context, userID string) (dompref.Preferences, error)
	CacheSessionTokens(ctx context.Context, sessionID string, tokens []string) ([]string, error)
}

type recommendUseCase interface {
	Recommend(ctx context.Context, req recommenduc.Request) (recommenduc.Response, error)
}

// Client is the katalog SDK entry point.
type Client struct {
	store      db.Store
	catalogSvc catalogUseCase
	batchSvc   batchUseCase
	prefSvc    preferenceUseCase
	recSvc     recommendUseCase
	healthSvc  healthUseCase
	obs        *observer
}

// New creates a katalog Client and connects to the database.
// The provided context is used for the initial readiness check.
func New(ctx context.Context, opts ...Option) (*Client, error) {
	cfg := defaultClientConfig()
	for _, o := range opts {
		o.apply(cfg)
	}

	if len(cfg.addrs) == 0 {
		return nil, errors.New("katalog: database address required (use WithRedis or WithValkey)")
	}

	obs, err := newObserver(cfg.logger, cfg.metricsReg)
	if err != nil {
		return nil, err
	}

	store, err := createStore(cfg)
	if err != nil {
		return nil, err
	}

	if err := store.WaitForReady(ctx, defaultReadinessTimeout); err != nil {
		store.Close()
		return nil, fmt.Errorf("katalog: database not ready: %w", err)
	}

	return wireClient(store, cfg, obs), nil
}

func createStore(cfg *clientConfig) (db.Store, error) {
	switch cfg.driver {
	case "redis", "valkey":
		s, err := dbRedis.NewStore(dbRedis.Config{
			Addrs:    cfg.addrs,
			Username: cfg.username,
			Password: cfg.password,
			DB:       cfg.db,
		})
		if err != nil {
			return nil, fmt.Errorf("katalog: create %s store: %w", cfg.driver, err)
		}
		return s, nil
	default:
		return nil, fmt.Errorf("katalog: unknown driver %q", cfg.driver)
	}
}

func wireClient(store db.Store, cfg *clientConfig, obs *observer) *Client {
	catalogRepo := catalogrepo.New(store, cfg.keyPrefix)
	prefRepo := preferencerepo.New(store, cfg.keyPrefix)

	catalogSvc := cataloguc.New(catalogRepo, cfg.maxLimit)
	batchSvc := batchuc.New(catalogSvc, catalogSvc)
	if cfg.maxBatchSize > 0 {
		batchSvc = batchSvc.WithMaxBatchSize(cfg.maxBatchSize)
	}
	prefSvc := preferenceuc.New(prefRepo, cfg.sessionTTL)
	recSvc := recommenduc.New(catalogRepo, prefSvc, recommenduc.Config{
		WindowSize:   cfg.windowSize,
		DefaultLimit: cfg.defaultLimit,
		MaxLimit:     cfg.maxLimit,
	})
	healthSvc := healthuc.New(store, map[string]healthuc.Checker{"catalog": catalogSvc})

	return &Client{
		store:      store,
		catalogSvc: catalogSvc,
		batchSvc:   batchSvc,
		prefSvc:    prefSvc,
		recSvc:     recSvc,
		healthSvc:  healthSvc,
		obs:        obs,
	}
}

// Close releases all resources.
func (c *Client) Close() {
	if c.store != nil {
		c.store.Close()
	}
}

// Ping checks database connectivity.
func (c *Client) Ping(ctx context.Context) (err error) {
	start := time.Now()
	defer func() { c.obs.observe("ping", start, err) }()

	if err = c.store.Ping(ctx); err != nil {
		return fmt.Errorf("ping: %w", err)
	}
	return nil
}

// Catalog returns the item service for one catalog kind.
func (c *Client) Catalog(kind Kind) *CatalogService {
	return &CatalogService{kind: domcat.Kind(kind), svc: c.catalogSvc, batch: c.batchSvc, obs: c.obs}
}

// Preferences returns the user preference service.
func (c *Client) Preferences() *PreferenceService {
	return &PreferenceService{svc: c.prefSvc, obs: c.obs}
}

// Sessions returns the session token service.
func (c *Client) Sessions() *SessionService {
	return &SessionService{svc: c.prefSvc, obs: c.obs}
}

// Recommendations returns the recommendation service.
func (c *Client) Recommendations() *RecommendService {
	return &RecommendService{svc: c.recSvc, obs: c.obs}
}
