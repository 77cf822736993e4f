package katalog

import (
	"context"
	"fmt"
	"time"

	dompref "github.com/kailas-cloud/katalog/internal/domain/preference"
)

// PreferenceService manages survey answers.
type PreferenceService struct {
	svc preferenceUseCase
	obs *observer
}

// Save stores a user's survey answers. When the survey is completed and
// sessionID is non-empty, that session's cached tokens are dropped.
func (s *PreferenceService) Save(
	ctx context.Context, userID string, p Preferences, sessionID string,
) (_ Preferences, err error) {
	start := time.Now()
	defer func() { s.obs.observe("preferences.save", start, err) }()

	in := dompref.Reconstruct(p.ProductCategories, p.FoodCategories, p.LikedKeywords, p.SurveyCompleted, 0)
	saved, err := s.svc.Save(ctx, userID, in, sessionID)
	if err != nil {
		return Preferences{}, fmt.Errorf("save preferences: %w", err)
	}
	return fromInternalPreferences(&saved), nil
}

// Get returns a user's survey answers.
func (s *PreferenceService) Get(ctx context.Context, userID string) (_ Preferences, err error) {
	start := time.Now()
	defer func() { s.obs.observe("preferences.get", start, err) }()

	p, err := s.svc.Get(ctx, userID)
	if err != nil {
		return Preferences{}, fmt.Errorf("get preferences: %w", err)
	}
	return fromInternalPreferences(&p), nil
}

// SessionService caches interest tokens for anonymous browser sessions.
type SessionService struct {
	svc preferenceUseCase
	obs *observer
}

// Cache replaces the session's tokens and returns the cleaned list.
func (s *SessionService) Cache(ctx context.Context, sessionID string, tokens []string) (_ []string, err error) {
	start := time.Now()
	defer func() { s.obs.observe("session.cache", start, err) }()

	out, err := s.svc.CacheSessionTokens(ctx, sessionID, tokens)
	if err != nil {
		return nil, fmt.Errorf("cache session tokens: %w", err)
	}
	return out, nil
}
