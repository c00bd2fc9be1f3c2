package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/caixa-api/internal/domain/entity"
	"github.com/sangkips/caixa-api/internal/domain/enum"
	domainRepo "github.com/sangkips/caixa-api/internal/domain/repository"
	"github.com/sangkips/caixa-api/pkg/pagination"
	"gorm.io/gorm"
)

type caixaRepository struct {
	db *gorm.DB
}

// NewCaixaRepository creates a new caixa repository
func NewCaixaRepository(db *gorm.DB) domainRepo.CaixaRepository {
	return &caixaRepository{db: db}
}

func (r *caixaRepository) Create(ctx context.Context, caixa *entity.Caixa) error {
	err := r.db.WithContext(ctx).Create(caixa).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return domainRepo.ErrDuplicate
	}
	return err
}

func (r *caixaRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Caixa, error) {
	var caixa entity.Caixa
	err := r.db.WithContext(ctx).
		Scopes(OwnerScope(ctx)).
		First(&caixa, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &caixa, nil
}

func (r *caixaRepository) GetOpen(ctx context.Context, userID uuid.UUID) (*entity.Caixa, error) {
	var caixa entity.Caixa
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND status = ?", userID, enum.CaixaStatusAberto).
		Order("created_at DESC").
		First(&caixa).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &caixa, nil
}

func (r *caixaRepository) List(ctx context.Context, userID uuid.UUID, params *pagination.PaginationParams) ([]entity.Caixa, int64, error) {
	var caixas []entity.Caixa
	var total int64

	query := r.db.WithContext(ctx).Model(&entity.Caixa{}).Where("user_id = ?", userID)

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.
		Order("created_at DESC").
		Offset(params.Offset()).
		Limit(params.PerPage).
		Find(&caixas).Error

	return caixas, total, err
}

func (r *caixaRepository) Close(ctx context.Context, id uuid.UUID, closedAt time.Time) (bool, error) {
	res := r.db.WithContext(ctx).
		Model(&entity.Caixa{}).
		Scopes(OwnerScope(ctx)).
		Where("id = ? AND status = ?", id, enum.CaixaStatusAberto).
		Updates(map[string]interface{}{
			"status":    enum.CaixaStatusFechado,
			"closed_at": closedAt,
		})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}
