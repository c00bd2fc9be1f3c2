package entity

import "github.com/shopspring/decimal"

// NenhumaSangria is the placeholder row text used when a caixa has no withdrawals
const NenhumaSangria = "— Nenhuma"

// LancamentoRow is one line of the closing report transactions table
type LancamentoRow struct {
	DataCaixa          string `json:"data_caixa"`
	Prefixo            string `json:"prefixo"`
	TipoValidador      string `json:"tipo_validador"`
	QtdBordos          string `json:"qtd_bordos"`
	Valor              string `json:"valor"`
	MatriculaMotorista string `json:"matricula_motorista"`

	Amount decimal.Decimal `json:"-"`
}

// SangriaRow is one line of the closing report withdrawals table
type SangriaRow struct {
	Valor  string `json:"valor"`
	Motivo string `json:"motivo"`

	Amount decimal.Decimal `json:"-"`
}

// ClosingReport is the assembled content of a caixa closing report,
// independent of the output format.
type ClosingReport struct {
	CaixaID          string          `json:"caixa_id"`
	OperadorNome     string          `json:"operador_nome"`
	Matricula        string          `json:"matricula"`
	Abertura         string          `json:"abertura,omitempty"`
	Fechamento       string          `json:"fechamento"`
	GeradoEm         string          `json:"gerado_em"`
	Lancamentos      []LancamentoRow `json:"lancamentos"`
	Sangrias         []SangriaRow    `json:"sangrias"`
	TotalLancamentos decimal.Decimal `json:"total_lancamentos"`
	TotalSangrias    decimal.Decimal `json:"total_sangrias"`
	TotalCorrigido   decimal.Decimal `json:"total_corrigido"`
	FileBase         string          `json:"file_base"`
}

// FileName returns the download name for the given extension, e.g. "123-05-03-2024.pdf"
func (r *ClosingReport) FileName(ext string) string {
	return r.FileBase + "." + ext
}
