package preference

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/kailas-cloud/katalog/internal/db"
	"github.com/kailas-cloud/katalog/internal/domain"
	dompref "github.com/kailas-cloud/katalog/internal/domain/preference"
)

// store is the consumer interface for preferences and session tokens (ISP).
type store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	SetWithTTL(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Del(ctx context.Context, key string) error
}

// Repo implements usecase/preference.Repository.
type Repo struct {
	store  store
	prefix string
}

// New creates a preference repository. An empty prefix falls back to domain.KeyPrefix.
func New(s store, prefix string) *Repo {
	if prefix == "" {
		prefix = domain.KeyPrefix
	}
	return &Repo{store: s, prefix: prefix}
}

type prefsRow struct {
	ProductCategories []string `json:"product_categories"`
	FoodCategories    []string `json:"food_categories"`
	LikedKeywords     []string `json:"liked_keywords"`
	SurveyCompleted   bool     `json:"survey_completed"`
	UpdatedAt         int64    `json:"updated_at"`
}

// Save stores the user's preferences as a JSON string.
func (r *Repo) Save(ctx context.Context, userID string, prefs dompref.Preferences) error {
	data, err := json.Marshal(prefsRow{
		ProductCategories: prefs.ProductCategories(),
		FoodCategories:    prefs.FoodCategories(),
		LikedKeywords:     prefs.LikedKeywords(),
		SurveyCompleted:   prefs.SurveyCompleted(),
		UpdatedAt:         prefs.UpdatedAt(),
	})
	if err != nil {
		return fmt.Errorf("marshal preferences: %w", err)
	}

	key := r.prefsKey(userID)
	if err := r.store.Set(ctx, key, data); err != nil {
		return fmt.Errorf("set %s: %w", key, err)
	}
	return nil
}

// Get loads the user's preferences.
func (r *Repo) Get(ctx context.Context, userID string) (dompref.Preferences, error) {
	key := r.prefsKey(userID)
	data, err := r.store.Get(ctx, key)
	if err != nil {
		if errors.Is(err, db.ErrKeyNotFound) {
			return dompref.Preferences{}, domain.ErrPreferencesNotFound
		}
		return dompref.Preferences{}, fmt.Errorf("get %s: %w", key, err)
	}

	var row prefsRow
	if err := json.Unmarshal(data, &row); err != nil {
		return dompref.Preferences{}, fmt.Errorf("unmarshal preferences %s: %w", key, err)
	}
	return dompref.Reconstruct(
		row.ProductCategories, row.FoodCategories, row.LikedKeywords, row.SurveyCompleted, row.UpdatedAt,
	), nil
}

// SaveSessionTokens caches tokens for a session, expiring after ttl.
func (r *Repo) SaveSessionTokens(ctx context.Context, sessionID string, tokens []string, ttl time.Duration) error {
	if tokens == nil {
		tokens = []string{}
	}
	data, err := json.Marshal(tokens)
	if err != nil {
		return fmt.Errorf("marshal session tokens: %w", err)
	}

	key := r.sessionKey(sessionID)
	if err := r.store.SetWithTTL(ctx, key, data, ttl); err != nil {
		return fmt.Errorf("set %s: %w", key, err)
	}
	return nil
}

// SessionTokens returns the cached tokens of a session; an unknown or expired session has none.
func (r *Repo) SessionTokens(ctx context.Context, sessionID string) ([]string, error) {
	key := r.sessionKey(sessionID)
	data, err := r.store.Get(ctx, key)
	if err != nil {
		if errors.Is(err, db.ErrKeyNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("get %s: %w", key, err)
	}

	var tokens []string
	if err := json.Unmarshal(data, &tokens); err != nil {
		return nil, fmt.Errorf("unmarshal session tokens %s: %w", key, err)
	}
	return tokens, nil
}

// ClearSessionTokens drops the session's cached tokens.
func (r *Repo) ClearSessionTokens(ctx context.Context, sessionID string) error {
	key := r.sessionKey(sessionID)
	if err := r.store.Del(ctx, key); err != nil {
		return fmt.Errorf("del %s: %w", key, err)
	}
	return nil
}

// Key patterns: {prefix}prefs:{uid}, {prefix}session:{sid}:tokens

func (r *Repo) prefsKey(userID string) string {
	return fmt.Sprintf("%sprefs:%s", r.prefix, userID)
}

func (r *Repo) sessionKey(sessionID string) string {
	return fmt.Sprintf("%ssession:%s:tokens", r.prefix, sessionID)
}
