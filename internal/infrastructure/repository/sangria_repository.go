package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/sangkips/caixa-api/internal/domain/entity"
	domainRepo "github.com/sangkips/caixa-api/internal/domain/repository"
	"gorm.io/gorm"
)

type sangriaRepository struct {
	db *gorm.DB
}

// NewSangriaRepository creates a new sangria repository
func NewSangriaRepository(db *gorm.DB) domainRepo.SangriaRepository {
	return &sangriaRepository{db: db}
}

func (r *sangriaRepository) Create(ctx context.Context, s *entity.Sangria) error {
	return r.db.WithContext(ctx).Create(s).Error
}

func (r *sangriaRepository) ListByCaixa(ctx context.Context, caixaID uuid.UUID) ([]entity.Sangria, error) {
	var items []entity.Sangria
	err := r.db.WithContext(ctx).
		Scopes(OwnerScope(ctx)).
		Where("caixa_id = ?", caixaID).
		Order("created_at ASC").
		Find(&items).Error
	return items, err
}
