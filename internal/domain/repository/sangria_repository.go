package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/sangkips/caixa-api/internal/domain/entity"
)

// SangriaRepository reads and writes cash withdrawals of a caixa
type SangriaRepository interface {
	Create(ctx context.Context, s *entity.Sangria) error
	// ListByCaixa returns all sangrias ordered by creation time, oldest first
	ListByCaixa(ctx context.Context, caixaID uuid.UUID) ([]entity.Sangria, error)
}
