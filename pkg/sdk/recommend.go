package katalog

import (
	"context"
	"fmt"
	"time"

	domcat "github.com/kailas-cloud/katalog/internal/domain/catalog"
	recommenduc "github.com/kailas-cloud/katalog/internal/usecase/recommend"
)

// RecommendService ranks recent catalog items against a user's interests.
type RecommendService struct {
	svc recommendUseCase
	obs *observer
}

// For returns recommendations built from the user's saved preferences and the
// session's cached tokens. With no tokens at all, the result has no sections.
func (s *RecommendService) For(ctx context.Context, req RecommendRequest) (_ Recommendations, err error) {
	start := time.Now()
	defer func() { s.obs.observe("recommend", start, err) }()

	resp, err := s.svc.Recommend(ctx, recommenduc.Request{
		UserID:    req.UserID,
		SessionID: req.SessionID,
		Kind:      domcat.Kind(req.Kind),
		Limit:     req.Limit,
	})
	if err != nil {
		return Recommendations{}, fmt.Errorf("recommend: %w", err)
	}
	return fromInternalResponse(resp), nil
}
