package domain

import "errors"

var (
	// ErrItemNotFound signals a missing catalog item.
	ErrItemNotFound = errors.New("item not found")
	// ErrPreferencesNotFound signals that a user has no stored preferences.
	ErrPreferencesNotFound = errors.New("preferences not found")
	// ErrInvalidItem signals a catalog item that fails validation.
	ErrInvalidItem = errors.New("invalid item")
	// ErrInvalidPreferences signals preferences that fail validation.
	ErrInvalidPreferences = errors.New("invalid preferences")
	// ErrInvalidKind signals an unknown catalog kind.
	ErrInvalidKind = errors.New("invalid catalog kind")
	// ErrRateLimited signals a rate limit hit.
	ErrRateLimited = errors.New("rate limited")
)
