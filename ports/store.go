package ports

import (
	"context"
	"time"
)

// Store keeps the deny-list of signed-out token lineages. Entries expire
// together with the token they revoke.
type Store interface {
	InvalidateToken(ctx context.Context, tokenID string, expiry time.Duration) error
	IsTokenInvalidated(ctx context.Context, tokenID string) (bool, error)
}
