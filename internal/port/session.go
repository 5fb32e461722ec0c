package port

import (
	"context"
	"time"
)

// SessionRevocationStore tracks session tokens that were revoked before
// they expired.
type SessionRevocationStore interface {
	IsRevoked(ctx context.Context, tokenID string) (bool, error)
	Revoke(ctx context.Context, tokenID string, expiresAt time.Time) error
}
