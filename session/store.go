package session

import (
	"context"
	"time"
)

// Store is a key-value store with per-entry time-to-live. It backs two
// independent uses distinguished only by key convention: the live
// refresh token for a member (keyed by email) and blacklisted access
// tokens (keyed by the raw token string). Entries expire autonomously;
// no explicit sweep is required of callers.
type Store interface {
	// Set upserts a value, overwriting any existing entry and resetting
	// its expiry.
	Set(ctx context.Context, key, value string, ttl time.Duration) error

	// Get returns the value for key, or "" if the key is absent or
	// expired. Absence is not an error.
	Get(ctx context.Context, key string) (string, error)

	// Delete removes a key. Deleting an absent key is not an error.
	Delete(ctx context.Context, key string) error
}
