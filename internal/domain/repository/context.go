package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

// ErrDuplicate is returned when a write breaks a uniqueness rule,
// such as a second open caixa for the same operator.
var ErrDuplicate = errors.New("repository: duplicate record")

type ctxKey string

const (
	ownerIDKey        ctxKey = "owner_id"
	skipOwnerScopeKey ctxKey = "skip_owner_scope"
)

// WithOwner adds the owning operator ID to context. Caixas, lancamentos
// and sangrias are only visible to that operator.
func WithOwner(ctx context.Context, ownerID uuid.UUID) context.Context {
	return context.WithValue(ctx, ownerIDKey, ownerID)
}

// GetOwnerID extracts the owner ID from context
func GetOwnerID(ctx context.Context) (uuid.UUID, bool) {
	ownerID, ok := ctx.Value(ownerIDKey).(uuid.UUID)
	return ownerID, ok && ownerID != uuid.Nil
}

// WithSkipOwnerScope marks the context as seeing every operator's records (admins)
func WithSkipOwnerScope(ctx context.Context, skip bool) context.Context {
	return context.WithValue(ctx, skipOwnerScopeKey, skip)
}

// SkipsOwnerScope reports whether WithSkipOwnerScope(ctx, true) was applied
func SkipsOwnerScope(ctx context.Context) bool {
	skip, _ := ctx.Value(skipOwnerScopeKey).(bool)
	return skip
}
