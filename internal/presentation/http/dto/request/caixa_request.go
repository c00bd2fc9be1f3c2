package request

import "github.com/shopspring/decimal"

// CreateLancamentoRequest records a fare transaction. Valor accepts a JSON
// number or a numeric string.
type CreateLancamentoRequest struct {
	DataCaixa          string          `json:"data_caixa" binding:"omitempty,datetime=2006-01-02"`
	Prefixo            string          `json:"prefixo" binding:"max=50"`
	TipoValidador      string          `json:"tipo_validador" binding:"max=50"`
	QtdBordos          int             `json:"qtd_bordos" binding:"min=0"`
	Valor              decimal.Decimal `json:"valor"`
	MatriculaMotorista string          `json:"matricula_motorista" binding:"max=50"`
	MatriculaRecebedor string          `json:"matricula_recebedor" binding:"max=50"`
}

// CreateSangriaRequest records a cash withdrawal
type CreateSangriaRequest struct {
	Valor  decimal.Decimal `json:"valor"`
	Motivo string          `json:"motivo" binding:"max=500"`
}
