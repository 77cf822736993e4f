package recommend

import (
	"context"

	domcat "github.com/kailas-cloud/katalog/internal/domain/catalog"
)

// ItemSource provides the newest items of a kind.
type ItemSource interface {
	Latest(ctx context.Context, kind domcat.Kind, limit int) ([]domcat.Item, error)
}

// TokenSource builds the ranker query for a user and session.
type TokenSource interface {
	QueryTokens(ctx context.Context, userID, sessionID string) ([]string, error)
}
