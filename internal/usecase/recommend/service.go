package recommend

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/kailas-cloud/katalog/internal/domain"
	domcat "github.com/kailas-cloud/katalog/internal/domain/catalog"
	"github.com/kailas-cloud/katalog/internal/logger"
	"github.com/kailas-cloud/katalog/internal/metrics"
	"github.com/kailas-cloud/katalog/pkg/tfidf"
)

// Metric sources.
const (
	sourceRecommend = "recommend"
	sourceAPI       = "api"
)

// Config bounds the candidate window and result sizes.
type Config struct {
	WindowSize   int
	DefaultLimit int
	MaxLimit     int
}

// Request describes one recommendation query. An empty Kind means every kind.
type Request struct {
	UserID    string
	SessionID string
	Kind      domcat.Kind
	Limit     int
}

// Recommendation is a ranked catalog item.
type Recommendation struct {
	Item  domcat.Item
	Score float64
}

// Section holds the ranked items of one kind.
type Section struct {
	Kind  domcat.Kind
	Items []Recommendation
}

// Response carries the query tokens used and one section per kind that had candidates.
type Response struct {
	Tokens   []string
	Sections []Section
}

// Service ranks recent catalog items against a user's interest tokens.
type Service struct {
	items  ItemSource
	tokens TokenSource
	cfg    Config
}

// New creates a recommendation service.
func New(items ItemSource, tokens TokenSource, cfg Config) *Service {
	return &Service{items: items, tokens: tokens, cfg: cfg}
}

// Recommend ranks the newest WindowSize items of each requested kind and
// returns the best Limit per kind. No query tokens means no recommendations.
func (s *Service) Recommend(ctx context.Context, req Request) (Response, error) {
	kinds, err := s.kinds(req.Kind)
	if err != nil {
		return Response{}, err
	}
	limit := s.limit(req.Limit)

	tokens, err := s.tokens.QueryTokens(ctx, req.UserID, req.SessionID)
	if err != nil {
		return Response{}, fmt.Errorf("query tokens: %w", err)
	}

	resp := Response{Tokens: tokens, Sections: []Section{}}
	if len(tokens) == 0 {
		for _, k := range kinds {
			metrics.RecommendationsTotal.WithLabelValues(string(k), "no_tokens").Inc()
		}
		return resp, nil
	}

	for _, kind := range kinds {
		section, ok, err := s.rankKind(ctx, kind, tokens, limit)
		if err != nil {
			metrics.RecommendationsTotal.WithLabelValues(string(kind), "error").Inc()
			return Response{}, err
		}
		if !ok {
			metrics.RecommendationsTotal.WithLabelValues(string(kind), "empty_catalog").Inc()
			continue
		}
		metrics.RecommendationsTotal.WithLabelValues(string(kind), "served").Inc()
		resp.Sections = append(resp.Sections, section)
	}

	return resp, nil
}

func (s *Service) rankKind(
	ctx context.Context, kind domcat.Kind, tokens []string, limit int,
) (Section, bool, error) {
	items, err := s.items.Latest(ctx, kind, s.cfg.WindowSize)
	if err != nil {
		return Section{}, false, fmt.Errorf("latest %s items: %w", kind, err)
	}
	if len(items) == 0 {
		return Section{}, false, nil
	}

	docs := make([]tfidf.Document, len(items))
	byID := make(map[string]domcat.Item, len(items))
	for i := range items {
		docs[i] = tfidf.Document{ID: items[i].ID(), Text: items[i].SearchText()}
		byID[items[i].ID()] = items[i]
	}

	start := time.Now()
	scored := tfidf.RankScored(docs, tokens, limit)
	elapsed := time.Since(start)
	metrics.ObserveRank(sourceRecommend, len(docs), len(scored), elapsed)

	recs := make([]Recommendation, 0, len(scored))
	for _, sc := range scored {
		item, ok := byID[sc.ID]
		if !ok {
			continue
		}
		recs = append(recs, Recommendation{Item: item, Score: sc.Score})
	}

	logger.FromContext(ctx).Debug("Ranked catalog window",
		zap.String("kind", string(kind)),
		zap.Int("candidates", len(docs)),
		zap.Int("tokens", len(tokens)),
		zap.Int("returned", len(recs)),
		zap.Duration("duration", elapsed),
	)

	return Section{Kind: kind, Items: recs}, true, nil
}

// Rank ranks caller-supplied documents. Nothing is loaded or stored.
func (s *Service) Rank(ctx context.Context, docs []tfidf.Document, tokens []string, topN int) []tfidf.Scored {
	start := time.Now()
	scored := tfidf.RankScored(docs, tokens, topN)
	elapsed := time.Since(start)
	metrics.ObserveRank(sourceAPI, len(docs), len(scored), elapsed)

	logger.FromContext(ctx).Debug("Ranked documents",
		zap.Int("candidates", len(docs)),
		zap.Int("tokens", len(tokens)),
		zap.Int("returned", len(scored)),
		zap.Duration("duration", elapsed),
	)
	return scored
}

func (s *Service) kinds(k domcat.Kind) ([]domcat.Kind, error) {
	if k == "" {
		return domcat.Kinds(), nil
	}
	if !k.IsValid() {
		return nil, fmt.Errorf("%w: %q", domain.ErrInvalidKind, k)
	}
	return []domcat.Kind{k}, nil
}

func (s *Service) limit(n int) int {
	if n <= 0 {
		return s.cfg.DefaultLimit
	}
	if n > s.cfg.MaxLimit {
		return s.cfg.MaxLimit
	}
	return n
}
