package repository

import (
	"context"
	"time"
)

// SessionRepository lista de tokens revocados por logout (por jti).
type SessionRepository interface {
	Revoke(ctx context.Context, jti string, employeeID int64, expiresAt time.Time) error
	IsRevoked(ctx context.Context, jti string) (bool, error)
	// PurgeExpired borra revocaciones cuyo token ya expiró.
	PurgeExpired(ctx context.Context, now time.Time) (int64, error)
}
