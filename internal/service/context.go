package service

import (
	"context"

	"luma-service/internal/models"

	"github.com/google/uuid"
)

type ctxKey string

const (
	ctxUserIDKey ctxKey = "userID"
	ctxRoleKey   ctxKey = "role"
)

func WithUserID(ctx context.Context, id uuid.UUID) context.Context {
	return context.WithValue(ctx, ctxUserIDKey, id)
}

func UserIDFromContext(ctx context.Context) (uuid.UUID, bool) {
	v, ok := ctx.Value(ctxUserIDKey).(uuid.UUID)
	return v, ok
}

func WithRole(ctx context.Context, r models.Role) context.Context {
	return context.WithValue(ctx, ctxRoleKey, r)
}

func RoleFromContext(ctx context.Context) (models.Role, bool) {
	v, ok := ctx.Value(ctxRoleKey).(models.Role)
	return v, ok
}

// requireAuth rejects anonymous callers. Missing role falls back to client,
// the least privileged one.
func requireAuth(ctx context.Context) (uuid.UUID, models.Role, error) {
	uid, ok := UserIDFromContext(ctx)
	if !ok {
		return uuid.Nil, "", ErrUnauthorized
	}
	role, ok := RoleFromContext(ctx)
	if !ok {
		role = models.RoleClient
	}
	return uid, role, nil
}

// requireStaff gates mutating order operations: only admins and employees
// may advance, edit or delete orders.
func requireStaff(ctx context.Context) (uuid.UUID, models.Role, error) {
	uid, role, err := requireAuth(ctx)
	if err != nil {
		return uuid.Nil, "", err
	}
	if role != models.RoleAdmin && role != models.RoleEmployee {
		return uuid.Nil, "", ErrForbidden
	}
	return uid, role, nil
}

func isStaff(role models.Role) bool {
	return role == models.RoleAdmin || role == models.RoleEmployee
}
