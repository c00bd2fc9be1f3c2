package service

import (
	"context"
	"embed"
	"fmt"
	"html/template"
	"io"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/sangkips/caixa-api/internal/domain/entity"
	"github.com/sangkips/caixa-api/internal/domain/repository"
	"github.com/sangkips/caixa-api/pkg/apperror"
	"github.com/sangkips/caixa-api/pkg/format"
	"github.com/sangkips/caixa-api/pkg/printer"
	"github.com/sangkips/caixa-api/pkg/utils"
)

//go:embed assets/receipt.html
var receiptFS embed.FS

var receiptTemplate = template.Must(template.ParseFS(receiptFS, "assets/receipt.html"))

const receiptSeparator = "--------------------------------"

// ReceiptService builds manual payment receipts and sends them to the
// thermal printer.
type ReceiptService struct {
	printer        printer.Printer
	lancamentoRepo repository.LancamentoRepository
	width          int
	now            func() time.Time
}

// NewReceiptService creates a new receipt service. width is the printer
// line width in characters.
func NewReceiptService(p printer.Printer, lancamentoRepo repository.LancamentoRepository, width int) *ReceiptService {
	if width <= 0 {
		width = printer.Width80mm
	}
	return &ReceiptService{
		printer:        p,
		lancamentoRepo: lancamentoRepo,
		width:          width,
		now:            time.Now,
	}
}

// PrinterStatus returns the current printer status information.
type PrinterStatus struct {
	Configured bool   `json:"configured"`
	Connected  bool   `json:"connected"`
	Type       string `json:"type"`
	Width      int    `json:"width"`
}

// GetStatus returns printer connection status.
func (s *ReceiptService) GetStatus() *PrinterStatus {
	return &PrinterStatus{
		Configured: s.printer.Type() != "none",
		Connected:  s.printer.IsConnected(),
		Type:       s.printer.Type(),
		Width:      s.width,
	}
}

// BuildReceipt composes the receipt of a lancamento received at receivedAt.
// operatorMatricula is printed as the receiver when the lancamento has none.
func BuildReceipt(l *entity.Lancamento, operatorMatricula string, receivedAt time.Time) *entity.Receipt {
	recebedor := l.MatriculaRecebedor
	if recebedor == "" {
		recebedor = operatorMatricula
	}
	return &entity.Receipt{
		LancamentoID:       utils.ShortID(l.ID),
		MatriculaMotorista: l.MatriculaMotorista,
		TipoValidador:      l.TipoValidador,
		Prefixo:            l.Prefixo,
		DataCaixa:          format.BRDate(l.DataCaixa),
		QtdBordos:          l.QtdBordos,
		Valor:              "R$ " + format.Fixed(l.Valor),
		MatriculaRecebedor: recebedor,
		DataRecebimento:    format.BRDateTime(receivedAt),
	}
}

// RenderReceiptHTML writes the printable 80mm receipt page. The page opens
// the browser print dialog on load and closes itself afterwards.
func RenderReceiptHTML(w io.Writer, r *entity.Receipt) error {
	return receiptTemplate.Execute(w, struct {
		R         *entity.Receipt
		Separator string
	}{R: r, Separator: receiptSeparator})
}

// FormatReceipt converts a Receipt into ESC/POS bytes.
func FormatReceipt(r *entity.Receipt, width int) []byte {
	doc := printer.NewDocument(width)

	doc.SetAlign(printer.AlignCenter).
		SetBold(true).
		SetFontSize(printer.FontTall).
		Text("RECIBO DE PAGAMENTO MANUAL").
		SetFontSize(printer.FontNormal).
		SetBold(false).
		SetAlign(printer.AlignLeft).
		Separator('-')

	doc.KeyValue("Matricula Motorista:", r.MatriculaMotorista).
		KeyValue("Tipo de Validador:", r.TipoValidador).
		KeyValue("Prefixo:", r.Prefixo).
		Separator('-')

	doc.KeyValue("Data do Caixa:", r.DataCaixa).
		KeyValue("Quantidade bordos:", fmt.Sprintf("%d", r.QtdBordos)).
		SetBold(true).
		KeyValue("Valor:", r.Valor).
		SetBold(false).
		Separator('-')

	doc.KeyValue("Matricula Recebedor:", r.MatriculaRecebedor).
		KeyValue("Data Recebimento:", r.DataRecebimento).
		LineFeed().
		Text("Assinatura Recebedor:").
		FeedLines(3).
		SetAlign(printer.AlignCenter).
		SignatureLine().
		SetAlign(printer.AlignLeft)

	doc.FeedLines(3).
		PartialCut()

	return doc.Bytes()
}

// Receipt loads a lancamento and composes its receipt, stamped with the
// current time as the receiving time.
func (s *ReceiptService) Receipt(ctx context.Context, caixaID, lancamentoID uuid.UUID, operatorMatricula string) (*entity.Receipt, error) {
	l, err := s.lancamentoRepo.GetByID(ctx, caixaID, lancamentoID)
	if err != nil {
		return nil, fmt.Errorf("find lancamento: %w", err)
	}
	if l == nil {
		return nil, apperror.NewNotFoundError("Lancamento")
	}
	return BuildReceipt(l, operatorMatricula, s.now()), nil
}

// PrintReceipt prints the receipt of a lancamento on the thermal printer.
// When printing fails the receipt is still returned along with the error so
// the caller can fall back to the HTML page.
func (s *ReceiptService) PrintReceipt(ctx context.Context, caixaID, lancamentoID uuid.UUID, operatorMatricula string) (*entity.Receipt, error) {
	receipt, err := s.Receipt(ctx, caixaID, lancamentoID, operatorMatricula)
	if err != nil {
		return nil, err
	}

	if err := s.printer.Print(FormatReceipt(receipt, s.width)); err != nil {
		log.Warn().Err(err).Str("lancamento_id", lancamentoID.String()).Msg("receipt printing failed")
		return receipt, fmt.Errorf("failed to print receipt: %w", err)
	}

	log.Info().Str("lancamento_id", lancamentoID.String()).Str("printer", s.printer.Type()).Msg("receipt printed")
	return receipt, nil
}

// ReceiptHTML renders the printable receipt page of a lancamento into a string.
func (s *ReceiptService) ReceiptHTML(ctx context.Context, caixaID, lancamentoID uuid.UUID, operatorMatricula string) (string, error) {
	receipt, err := s.Receipt(ctx, caixaID, lancamentoID, operatorMatricula)
	if err != nil {
		return "", err
	}
	var b strings.Builder
	if err := RenderReceiptHTML(&b, receipt); err != nil {
		return "", apperror.NewInternalError("Failed to render receipt", err)
	}
	return b.String(), nil
}
