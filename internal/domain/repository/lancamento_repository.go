package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/sangkips/caixa-api/internal/domain/entity"
)

// LancamentoRepository reads and writes fare transactions of a caixa
type LancamentoRepository interface {
	Create(ctx context.Context, l *entity.Lancamento) error
	// GetByID returns nil, nil when the lancamento is not part of the caixa
	GetByID(ctx context.Context, caixaID, id uuid.UUID) (*entity.Lancamento, error)
	// ListByCaixa returns all lancamentos ordered by creation time, oldest first
	ListByCaixa(ctx context.Context, caixaID uuid.UUID) ([]entity.Lancamento, error)
}
