package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/caixa-api/internal/domain/enum"
	"gorm.io/gorm"
)

// Caixa is a cash-register session owned by one operator.
// CreatedAt is the opening time; ClosedAt stays nil while the session is open.
// A partial unique index allows one open caixa per operator.
type Caixa struct {
	ID        uuid.UUID        `gorm:"type:uuid;primary_key" json:"id"`
	UserID    uuid.UUID        `gorm:"type:uuid;not null;index;uniqueIndex:idx_caixas_one_open,where:status = 0" json:"user_id"`
	Status    enum.CaixaStatus `gorm:"default:0;index" json:"status"`
	CreatedAt time.Time        `json:"created_at"`
	ClosedAt  *time.Time       `json:"closed_at,omitempty"`
	UpdatedAt time.Time        `json:"updated_at"`

	User        User         `gorm:"foreignKey:UserID" json:"-"`
	Lancamentos []Lancamento `gorm:"foreignKey:CaixaID" json:"lancamentos,omitempty"`
	Sangrias    []Sangria    `gorm:"foreignKey:CaixaID" json:"sangrias,omitempty"`
}

// BeforeCreate generates a UUID before creating a new caixa
func (c *Caixa) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Caixa model
func (Caixa) TableName() string {
	return "caixas"
}

// IsOpen reports whether lancamentos and sangrias may still be recorded
func (c *Caixa) IsOpen() bool {
	return c.Status == enum.CaixaStatusAberto && c.ClosedAt == nil
}
