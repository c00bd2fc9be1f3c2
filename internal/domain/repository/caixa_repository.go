package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/caixa-api/internal/domain/entity"
	"github.com/sangkips/caixa-api/pkg/pagination"
)

// CaixaRepository reads and writes register sessions (users/{uid}/caixas/{caixaId}).
// Lookups are scoped to the owner carried in ctx.
type CaixaRepository interface {
	// Create returns ErrDuplicate when the operator already has an open caixa
	Create(ctx context.Context, caixa *entity.Caixa) error
	// GetByID returns nil, nil when the caixa does not exist for the owner
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Caixa, error)
	// GetOpen returns the owner's open caixa, or nil, nil if there is none
	GetOpen(ctx context.Context, userID uuid.UUID) (*entity.Caixa, error)
	List(ctx context.Context, userID uuid.UUID, params *pagination.PaginationParams) ([]entity.Caixa, int64, error)
	// Close marks the caixa closed at closedAt; it reports false if it was already closed
	Close(ctx context.Context, id uuid.UUID, closedAt time.Time) (bool, error)
}
