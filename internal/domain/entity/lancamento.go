package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Lancamento is a fare transaction recorded within a caixa.
// DataCaixa is the calendar date the fares belong to, as YYYY-MM-DD.
type Lancamento struct {
	ID                 uuid.UUID       `gorm:"type:uuid;primary_key" json:"id"`
	CaixaID            uuid.UUID       `gorm:"type:uuid;not null;index" json:"caixa_id"`
	UserID             uuid.UUID       `gorm:"type:uuid;not null;index" json:"user_id"`
	DataCaixa          string          `gorm:"size:10;not null" json:"data_caixa"`
	Prefixo            string          `gorm:"size:50" json:"prefixo"`
	TipoValidador      string          `gorm:"size:50" json:"tipo_validador"`
	QtdBordos          int             `gorm:"default:0" json:"qtd_bordos"`
	Valor              decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"valor"`
	MatriculaMotorista string          `gorm:"size:50" json:"matricula_motorista"`
	MatriculaRecebedor string          `gorm:"size:50" json:"matricula_recebedor"`
	CreatedAt          time.Time       `gorm:"index" json:"created_at"`
}

// BeforeCreate generates a UUID before creating a new lancamento
func (l *Lancamento) BeforeCreate(tx *gorm.DB) error {
	if l.ID == uuid.Nil {
		l.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Lancamento model
func (Lancamento) TableName() string {
	return "lancamentos"
}
