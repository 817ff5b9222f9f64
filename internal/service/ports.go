package service

import (
	"context"
	"time"

	"github.com/google/uuid"
)

type PasswordHasher interface {
	Hash(password string) (string, error)
	Compare(hash, password string) bool
}

type Claims struct {
	UserID uuid.UUID
	Role   string
	Exp    time.Time
}

type TokenProvider interface {
	SignAccess(ctx context.Context, sub uuid.UUID, role string, ttl time.Duration) (string, time.Time, error)
	ParseAndValidateAccess(ctx context.Context, token string) (*Claims, error)
}

// TrackingCache stores redacted public tracking projections. Best effort:
// callers ignore cache errors.
type TrackingCache interface {
	GetTracking(ctx context.Context, orderID uuid.UUID) ([]byte, error)
	SetTracking(ctx context.Context, orderID uuid.UUID, payload []byte) error
	InvalidateTracking(ctx context.Context, orderID uuid.UUID) error
}
