package katalog

import "github.com/kailas-cloud/katalog/internal/domain"

// Sentinel errors re-exported from the domain layer.
// Use errors.Is() to check.
var (
	ErrItemNotFound        = domain.ErrItemNotFound
	ErrPreferencesNotFound = domain.ErrPreferencesNotFound
	ErrInvalidItem         = domain.ErrInvalidItem
	ErrInvalidPreferences  = domain.ErrInvalidPreferences
	ErrInvalidKind         = domain.ErrInvalidKind
)
