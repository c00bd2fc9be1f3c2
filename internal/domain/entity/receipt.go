package entity

// Receipt is a value object for the manual payment receipt.
// It is NOT a database entity: it is composed from a lancamento at print time,
// with every field already formatted for display.
type Receipt struct {
	LancamentoID       string `json:"lancamento_id"`
	MatriculaMotorista string `json:"matricula_motorista"`
	TipoValidador      string `json:"tipo_validador"`
	Prefixo            string `json:"prefixo"`
	DataCaixa          string `json:"data_caixa"`
	QtdBordos          int    `json:"qtd_bordos"`
	Valor              string `json:"valor"`
	MatriculaRecebedor string `json:"matricula_recebedor"`
	DataRecebimento    string `json:"data_recebimento"`
}
