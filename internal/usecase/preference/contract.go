package preference

import (
	"context"
	"time"

	dompref "github.com/kailas-cloud/katalog/internal/domain/preference"
)

// Repository defines the storage contract for preferences and session tokens.
type Repository interface {
	Save(ctx context.Context, userID string, prefs dompref.Preferences) error
	Get(ctx context.Context, userID string) (dompref.Preferences, error)
	SaveSessionTokens(ctx context.Context, sessionID string, tokens []string, ttl time.Duration) error
	SessionTokens(ctx context.Context, sessionID string) ([]string, error)
	ClearSessionTokens(ctx context.Context, sessionID string) error
}
