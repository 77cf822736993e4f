package preference

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/kailas-cloud/katalog/internal/domain"
	dompref "github.com/kailas-cloud/katalog/internal/domain/preference"
	"github.com/kailas-cloud/katalog/internal/logger"
)

// Service manages survey answers and per-session interest tokens.
type Service struct {
	repo     Repository
	tokenTTL time.Duration
	now      func() time.Time
}

// New creates a preference service. tokenTTL bounds how long session tokens live.
func New(repo Repository, tokenTTL time.Duration) *Service {
	return &Service{repo: repo, tokenTTL: tokenTTL, now: time.Now}
}

// Save validates and stores a user's preferences. When the survey is
// completed and sessionID is set, that session's cached tokens are cleared.
func (s *Service) Save(
	ctx context.Context, userID string, in dompref.Preferences, sessionID string,
) (dompref.Preferences, error) {
	if userID == "" {
		return dompref.Preferences{}, fmt.Errorf("%w: user id is required", domain.ErrInvalidPreferences)
	}

	prefs, err := dompref.New(in.ProductCategories(), in.FoodCategories(), in.LikedKeywords(), in.SurveyCompleted())
	if err != nil {
		return dompref.Preferences{}, fmt.Errorf("validate preferences: %w: %w", domain.ErrInvalidPreferences, err)
	}
	prefs = prefs.WithUpdatedAt(s.now().UnixMilli())

	if err := s.repo.Save(ctx, userID, prefs); err != nil {
		return dompref.Preferences{}, fmt.Errorf("save preferences: %w", err)
	}

	if prefs.SurveyCompleted() && sessionID != "" {
		if err := s.repo.ClearSessionTokens(ctx, sessionID); err != nil {
			logger.FromContext(ctx).Warn("Failed to clear session tokens",
				zap.String("session_id", sessionID),
				zap.Error(err),
			)
		}
	}

	return prefs, nil
}

// Get returns a user's preferences.
func (s *Service) Get(ctx context.Context, userID string) (dompref.Preferences, error) {
	prefs, err := s.repo.Get(ctx, userID)
	if err != nil {
		return dompref.Preferences{}, fmt.Errorf("get preferences: %w", err)
	}
	return prefs, nil
}

// CacheSessionTokens stores interest tokens for a session with the configured TTL.
func (s *Service) CacheSessionTokens(ctx context.Context, sessionID string, tokens []string) ([]string, error) {
	if sessionID == "" {
		return nil, fmt.Errorf("%w: session id is required", domain.ErrInvalidPreferences)
	}
	clean, err := dompref.CleanSessionTokens(tokens)
	if err != nil {
		return nil, fmt.Errorf("validate session tokens: %w: %w", domain.ErrInvalidPreferences, err)
	}
	if err := s.repo.SaveSessionTokens(ctx, sessionID, clean, s.tokenTTL); err != nil {
		return nil, fmt.Errorf("cache session tokens: %w", err)
	}
	return clean, nil
}

// QueryTokens merges the user's profile and session tokens into ranker query
// tokens. Missing preferences or sessions contribute nothing.
func (s *Service) QueryTokens(ctx context.Context, userID, sessionID string) ([]string, error) {
	var prefs *dompref.Preferences
	if userID != "" {
		p, err := s.repo.Get(ctx, userID)
		switch {
		case err == nil:
			prefs = &p
		case errors.Is(err, domain.ErrPreferencesNotFound):
		default:
			return nil, fmt.Errorf("get preferences: %w", err)
		}
	}

	var session []string
	if sessionID != "" {
		tokens, err := s.repo.SessionTokens(ctx, sessionID)
		if err != nil {
			return nil, fmt.Errorf("session tokens: %w", err)
		}
		session = tokens
	}

	return dompref.Tokens(prefs, session), nil
}
