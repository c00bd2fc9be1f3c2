package repository

import (
	"context"

	domainRepo "github.com/sangkips/caixa-api/internal/domain/repository"
	"gorm.io/gorm"
)

// OwnerScope returns a GORM scope that filters by the owning operator.
// It is applied to caixas, lancamentos and sangrias, mirroring the
// users/{uid}/caixas/... document hierarchy.
// Admins (domainRepo.WithSkipOwnerScope) see every operator's records.
func OwnerScope(ctx context.Context) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if domainRepo.SkipsOwnerScope(ctx) {
			return db
		}

		ownerID, ok := domainRepo.GetOwnerID(ctx)
		if !ok {
			// no owner in context: match nothing
			return db.Where("1 = 0")
		}
		return db.Where("user_id = ?", ownerID)
	}
}
