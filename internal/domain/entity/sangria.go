package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Sangria is a manual cash withdrawal recorded against a caixa
type Sangria struct {
	ID        uuid.UUID       `gorm:"type:uuid;primary_key" json:"id"`
	CaixaID   uuid.UUID       `gorm:"type:uuid;not null;index" json:"caixa_id"`
	UserID    uuid.UUID       `gorm:"type:uuid;not null;index" json:"user_id"`
	Valor     decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"valor"`
	Motivo    string          `gorm:"type:text" json:"motivo"`
	CreatedAt time.Time       `gorm:"index" json:"created_at"`
}

// BeforeCreate generates a UUID before creating a new sangria
func (s *Sangria) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Sangria model
func (Sangria) TableName() string {
	return "sangrias"
}
