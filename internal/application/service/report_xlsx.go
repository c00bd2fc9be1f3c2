package service

import (
	"github.com/sangkips/caixa-api/internal/domain/entity"
	"github.com/xuri/excelize/v2"
)

const reportSheet = "Fechamento"

var brlNumFmt = `"R$" #,##0.00`

// RenderXLSX exports the closing report as a single-sheet workbook.
// Valor cells hold numbers so the sheet can be summed and filtered.
func RenderXLSX(r *entity.ClosingReport) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", reportSheet); err != nil {
		return nil, err
	}

	boldStyle, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return nil, err
	}
	titleStyle, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true, Size: 14}})
	if err != nil {
		return nil, err
	}
	headerStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Color: "141414"},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"C8C8C8"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center"},
		Border:    gridBorder(),
	})
	if err != nil {
		return nil, err
	}
	moneyStyle, err := f.NewStyle(&excelize.Style{CustomNumFmt: &brlNumFmt, Border: gridBorder()})
	if err != nil {
		return nil, err
	}
	totalStyle, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}, CustomNumFmt: &brlNumFmt})
	if err != nil {
		return nil, err
	}

	w := &sheetWriter{f: f}

	w.set(1, w.next(), reportTitle)
	w.style(1, w.row, titleStyle)
	w.set(1, w.next(), "Operador: "+r.OperadorNome+"  • Matrícula: "+r.Matricula)
	if r.Abertura != "" {
		w.set(1, w.next(), "Abertura do caixa: "+r.Abertura)
	}
	w.set(1, w.next(), "Data do fechamento: "+r.Fechamento)
	w.next()

	w.header(lancamentoHeaders, headerStyle)
	for _, l := range r.Lancamentos {
		w.set(1, w.next(), l.DataCaixa)
		w.set(2, w.row, l.Prefixo)
		w.set(3, w.row, l.TipoValidador)
		w.set(4, w.row, l.QtdBordos)
		w.set(5, w.row, l.Amount.InexactFloat64())
		w.style(5, w.row, moneyStyle)
		w.set(6, w.row, l.MatriculaMotorista)
	}
	w.next()

	w.header(sangriaHeaders, headerStyle)
	for _, sg := range r.Sangrias {
		w.next()
		if sg.Valor == entity.NenhumaSangria {
			w.set(1, w.row, sg.Valor)
		} else {
			w.set(1, w.row, sg.Amount.InexactFloat64())
			w.style(1, w.row, moneyStyle)
		}
		w.set(2, w.row, sg.Motivo)
	}
	w.next()

	totals := []struct {
		label string
		value float64
	}{
		{"TOTAL LANÇAMENTOS:", r.TotalLancamentos.InexactFloat64()},
		{"TOTAL SANGRIAS:", r.TotalSangrias.InexactFloat64()},
		{"TOTAL CORRIGIDO:", r.TotalCorrigido.InexactFloat64()},
	}
	for _, t := range totals {
		w.set(1, w.next(), t.label)
		w.style(1, w.row, boldStyle)
		w.set(2, w.row, t.value)
		w.style(2, w.row, totalStyle)
	}
	w.next()
	w.set(1, w.next(), reportFooter)

	if w.err != nil {
		return nil, w.err
	}
	if err := f.SetColWidth(reportSheet, "A", "F", 18); err != nil {
		return nil, err
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func gridBorder() []excelize.Border {
	return []excelize.Border{
		{Type: "left", Color: "000000", Style: 1},
		{Type: "top", Color: "000000", Style: 1},
		{Type: "right", Color: "000000", Style: 1},
		{Type: "bottom", Color: "000000", Style: 1},
	}
}

// sheetWriter keeps the current row and the first error so the layout code
// stays linear.
type sheetWriter struct {
	f   *excelize.File
	row int
	err error
}

// next advances to the following row and returns it
func (w *sheetWriter) next() int {
	w.row++
	return w.row
}

func (w *sheetWriter) set(col, row int, value interface{}) {
	if w.err != nil {
		return
	}
	cell, err := excelize.CoordinatesToCellName(col, row)
	if err != nil {
		w.err = err
		return
	}
	w.err = w.f.SetCellValue(reportSheet, cell, value)
}

func (w *sheetWriter) style(col, row, styleID int) {
	if w.err != nil {
		return
	}
	cell, err := excelize.CoordinatesToCellName(col, row)
	if err != nil {
		w.err = err
		return
	}
	w.err = w.f.SetCellStyle(reportSheet, cell, cell, styleID)
}

func (w *sheetWriter) header(headers []string, styleID int) {
	w.next()
	for i, h := range headers {
		w.set(i+1, w.row, h)
		w.style(i+1, w.row, styleID)
	}
}
