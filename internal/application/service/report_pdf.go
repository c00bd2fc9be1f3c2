package service

import (
	"github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/image"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/border"
	"github.com/johnfercher/maroto/v2/pkg/consts/extension"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/orientation"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
	"github.com/sangkips/caixa-api/internal/domain/entity"
	"github.com/sangkips/caixa-api/pkg/format"
)

const (
	reportTitle  = "Relatório de Fechamento de Caixa"
	reportFooter = "Fechamento resumido. Documento gerado automaticamente."
)

var (
	separatorGreen = &props.Color{Red: 0, Green: 128, Blue: 0}
	headerGrey     = &props.Color{Red: 200, Green: 200, Blue: 200}
	headerText     = &props.Color{Red: 20, Green: 20, Blue: 20}

	headerCell = &props.Cell{BackgroundColor: headerGrey, BorderType: border.Full, BorderThickness: 0.2}
	bodyCell   = &props.Cell{BorderType: border.Full, BorderThickness: 0.2}
)

var (
	lancamentoHeaders = []string{"Data Caixa", "Prefixo", "Validador", "Qtd Bordos", "Valor", "Motorista"}
	lancamentoAligns  = []align.Type{align.Center, align.Center, align.Center, align.Center, align.Right, align.Center}
	lancamentoWidths  = []int{2, 2, 2, 2, 2, 2}

	sangriaHeaders = []string{"Valor", "Motivo"}
	sangriaAligns  = []align.Type{align.Right, align.Left}
	sangriaWidths  = []int{4, 8}
)

// RenderPDF lays out the closing report on an A4 page. logo may be nil.
func RenderPDF(r *entity.ClosingReport, logo []byte) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithOrientation(orientation.Vertical).
		WithLeftMargin(14).
		WithTopMargin(10).
		WithRightMargin(14).
		WithBottomMargin(10).
		Build()

	m := maroto.New(cfg)

	if len(logo) > 0 {
		m.AddRow(22,
			col.New(12).Add(
				image.NewFromBytes(logo, extension.Png, props.Rect{
					Center:  true,
					Percent: 100,
				}),
			),
		)
	}

	m.AddRow(4, line.NewCol(12, props.Line{Color: separatorGreen, Thickness: 0.4}))

	m.AddRow(10,
		text.NewCol(12, reportTitle, props.Text{
			Size:  16,
			Style: fontstyle.Bold,
			Align: align.Center,
		}),
	)
	m.AddRow(3)

	info := props.Text{Size: 11}
	m.AddRow(6, text.NewCol(12, "Operador: "+r.OperadorNome+"  • Matrícula: "+r.Matricula, info))
	if r.Abertura != "" {
		m.AddRow(6, text.NewCol(12, "Abertura do caixa: "+r.Abertura, info))
	}
	m.AddRow(6, text.NewCol(12, "Data do fechamento: "+r.Fechamento, info))
	m.AddRow(4)

	lancamentos := make([][]string, 0, len(r.Lancamentos))
	for _, l := range r.Lancamentos {
		lancamentos = append(lancamentos, []string{
			l.DataCaixa, l.Prefixo, l.TipoValidador, l.QtdBordos, l.Valor, l.MatriculaMotorista,
		})
	}
	m.AddRows(gridRows(lancamentoHeaders, lancamentoWidths, lancamentoAligns, lancamentos)...)
	m.AddRow(6)

	sangrias := make([][]string, 0, len(r.Sangrias))
	for _, sg := range r.Sangrias {
		sangrias = append(sangrias, []string{sg.Valor, sg.Motivo})
	}
	m.AddRows(gridRows(sangriaHeaders, sangriaWidths, sangriaAligns, sangrias)...)
	m.AddRow(6)

	total := props.Text{Size: 11, Style: fontstyle.Bold}
	m.AddRow(6, text.NewCol(12, "TOTAL LANÇAMENTOS: "+format.Money(r.TotalLancamentos), total))
	m.AddRow(6, text.NewCol(12, "TOTAL SANGRIAS: "+format.Money(r.TotalSangrias), total))
	m.AddRow(6, text.NewCol(12, "TOTAL CORRIGIDO: "+format.Money(r.TotalCorrigido), total))
	m.AddRow(6)

	m.AddRow(6, text.NewCol(12, reportFooter, info))

	doc, err := m.Generate()
	if err != nil {
		return nil, err
	}
	return doc.GetBytes(), nil
}

// gridRows builds a bordered table with a grey bold header row
func gridRows(headers []string, widths []int, aligns []align.Type, body [][]string) []core.Row {
	rows := make([]core.Row, 0, len(body)+1)

	head := make([]core.Col, len(headers))
	for i, h := range headers {
		head[i] = col.New(widths[i]).Add(
			text.New(h, props.Text{
				Size:  10,
				Style: fontstyle.Bold,
				Align: align.Center,
				Color: headerText,
				Top:   1.5,
			}),
		).WithStyle(headerCell)
	}
	rows = append(rows, row.New(7).Add(head...))

	for _, values := range body {
		cols := make([]core.Col, len(values))
		for i, v := range values {
			cols[i] = col.New(widths[i]).Add(
				text.New(v, props.Text{
					Size:  10,
					Align: aligns[i],
					Top:   1.5,
					Left:  1,
					Right: 1,
				}),
			).WithStyle(bodyCell)
		}
		rows = append(rows, row.New(7).Add(cols...))
	}
	return rows
}
