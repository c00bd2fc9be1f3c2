package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/sangkips/caixa-api/internal/domain/entity"
	domainRepo "github.com/sangkips/caixa-api/internal/domain/repository"
	"gorm.io/gorm"
)

type lancamentoRepository struct {
	db *gorm.DB
}

// NewLancamentoRepository creates a new lancamento repository
func NewLancamentoRepository(db *gorm.DB) domainRepo.LancamentoRepository {
	return &lancamentoRepository{db: db}
}

func (r *lancamentoRepository) Create(ctx context.Context, l *entity.Lancamento) error {
	return r.db.WithContext(ctx).Create(l).Error
}

func (r *lancamentoRepository) GetByID(ctx context.Context, caixaID, id uuid.UUID) (*entity.Lancamento, error) {
	var l entity.Lancamento
	err := r.db.WithContext(ctx).
		Scopes(OwnerScope(ctx)).
		Where("caixa_id = ?", caixaID).
		First(&l, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &l, nil
}

func (r *lancamentoRepository) ListByCaixa(ctx context.Context, caixaID uuid.UUID) ([]entity.Lancamento, error) {
	var items []entity.Lancamento
	err := r.db.WithContext(ctx).
		Scopes(OwnerScope(ctx)).
		Where("caixa_id = ?", caixaID).
		Order("created_at ASC").
		Find(&items).Error
	return items, err
}
