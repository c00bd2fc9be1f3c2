package service

import (
	"context"
	_ "embed"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"
	"github.com/rs/zerolog/log"
	"github.com/sangkips/caixa-api/internal/domain/entity"
	"github.com/sangkips/caixa-api/internal/domain/repository"
	"github.com/sangkips/caixa-api/pkg/apperror"
	"github.com/sangkips/caixa-api/pkg/format"
	"github.com/shopspring/decimal"
)

//go:embed assets/logo.png
var defaultLogo []byte

// ReportContext identifies whose closing report is generated. It is passed
// explicitly on every call; the service keeps no session state.
type ReportContext struct {
	UserID   uuid.UUID
	CaixaID  uuid.UUID
	Operator *entity.User
}

// ReportOptions configures the report generator
type ReportOptions struct {
	LogoPath string        // PNG printed at the top of the PDF; the bundled logo when empty
	CacheTTL time.Duration // how long reports of closed caixas are reused, 0 disables
}

// ReportService assembles caixa closing reports and renders them as PDF or XLSX
type ReportService struct {
	caixaRepo      repository.CaixaRepository
	lancamentoRepo repository.LancamentoRepository
	sangriaRepo    repository.SangriaRepository
	userRepo       repository.UserRepository
	logo           []byte
	cache          *cache.Cache
	now            func() time.Time
}

// NewReportService creates a new report service
func NewReportService(
	caixaRepo repository.CaixaRepository,
	lancamentoRepo repository.LancamentoRepository,
	sangriaRepo repository.SangriaRepository,
	userRepo repository.UserRepository,
	opts ReportOptions,
) *ReportService {
	s := &ReportService{
		caixaRepo:      caixaRepo,
		lancamentoRepo: lancamentoRepo,
		sangriaRepo:    sangriaRepo,
		userRepo:       userRepo,
		logo:           loadLogo(opts.LogoPath),
		now:            time.Now,
	}
	if opts.CacheTTL > 0 {
		s.cache = cache.New(opts.CacheTTL, 2*opts.CacheTTL)
	}
	return s
}

func loadLogo(path string) []byte {
	if path == "" {
		return defaultLogo
	}
	b, err := os.ReadFile(path)
	if err != nil {
		log.Warn().Err(err).Str("path", path).Msg("report logo not readable, using bundled logo")
		return defaultLogo
	}
	return b
}

// BuildClosingReport gathers the caixa, its lancamentos and its sangrias,
// in that order, and computes the totals. Any query failure aborts the report.
func (s *ReportService) BuildClosingReport(ctx context.Context, rc ReportContext) (*entity.ClosingReport, error) {
	if _, ok := repository.GetOwnerID(ctx); !ok {
		ctx = repository.WithOwner(ctx, rc.UserID)
	}

	caixa, err := s.caixaRepo.GetByID(ctx, rc.CaixaID)
	if err != nil {
		return nil, apperror.NewInternalError("Failed to load caixa", err)
	}
	if caixa == nil {
		return nil, apperror.ErrCaixaNotFound
	}

	now := s.now()
	cacheable := s.cache != nil && !caixa.IsOpen()
	if cacheable {
		if v, ok := s.cache.Get(caixa.ID.String()); ok {
			cached := *(v.(*entity.ClosingReport))
			cached.GeradoEm = format.BRDateTime(now)
			cached.FileBase = fileBase(cached.Matricula, now)
			log.Debug().Str("caixa_id", caixa.ID.String()).Msg("closing report served from cache")
			return &cached, nil
		}
	}

	operator, err := s.reportOperator(ctx, rc, caixa)
	if err != nil {
		return nil, err
	}

	report := &entity.ClosingReport{
		CaixaID:      caixa.ID.String(),
		OperadorNome: operator.Nome,
		Matricula:    operator.Matricula,
		Fechamento:   format.BRDateTime(now),
		GeradoEm:     format.BRDateTime(now),
		FileBase:     fileBase(operator.Matricula, now),
	}
	if !caixa.CreatedAt.IsZero() {
		report.Abertura = format.BRDateTime(caixa.CreatedAt)
	}
	if caixa.ClosedAt != nil {
		report.Fechamento = format.BRDateTime(*caixa.ClosedAt)
	}

	lancamentos, err := s.lancamentoRepo.ListByCaixa(ctx, caixa.ID)
	if err != nil {
		return nil, apperror.NewInternalError("Failed to load lancamentos", err)
	}
	report.Lancamentos = make([]entity.LancamentoRow, 0, len(lancamentos))
	for _, l := range lancamentos {
		amount := format.Amount(l.Valor)
		report.TotalLancamentos = report.TotalLancamentos.Add(amount)
		report.Lancamentos = append(report.Lancamentos, entity.LancamentoRow{
			DataCaixa:          format.BRDate(l.DataCaixa),
			Prefixo:            l.Prefixo,
			TipoValidador:      l.TipoValidador,
			QtdBordos:          qtdBordos(l.QtdBordos),
			Valor:              format.Money(amount),
			MatriculaMotorista: l.MatriculaMotorista,
			Amount:             amount,
		})
	}

	sangrias, err := s.sangriaRepo.ListByCaixa(ctx, caixa.ID)
	if err != nil {
		return nil, apperror.NewInternalError("Failed to load sangrias", err)
	}
	report.Sangrias, report.TotalSangrias = sangriaRows(sangrias)
	report.TotalCorrigido = report.TotalLancamentos.Sub(report.TotalSangrias)

	if cacheable {
		s.cache.Set(caixa.ID.String(), report, cache.DefaultExpiration)
	}

	log.Info().
		Str("caixa_id", report.CaixaID).
		Int("lancamentos", len(lancamentos)).
		Int("sangrias", len(sangrias)).
		Str("total_corrigido", report.TotalCorrigido.StringFixed(2)).
		Msg("closing report assembled")

	return report, nil
}

// GeneratePDF assembles the closing report and renders it as PDF
func (s *ReportService) GeneratePDF(ctx context.Context, rc ReportContext) (*entity.ClosingReport, []byte, error) {
	report, err := s.BuildClosingReport(ctx, rc)
	if err != nil {
		return nil, nil, err
	}
	data, err := RenderPDF(report, s.logo)
	if err != nil {
		return nil, nil, apperror.NewInternalError("Failed to generate PDF report", err)
	}
	return report, data, nil
}

// GenerateXLSX assembles the closing report and renders it as a spreadsheet
func (s *ReportService) GenerateXLSX(ctx context.Context, rc ReportContext) (*entity.ClosingReport, []byte, error) {
	report, err := s.BuildClosingReport(ctx, rc)
	if err != nil {
		return nil, nil, err
	}
	data, err := RenderXLSX(report)
	if err != nil {
		return nil, nil, apperror.NewInternalError("Failed to generate XLSX report", err)
	}
	return report, data, nil
}

// reportOperator returns the owner of the caixa. The operator from rc is used
// when it is the owner; otherwise (an admin reading someone else's caixa) the
// owner is loaded.
func (s *ReportService) reportOperator(ctx context.Context, rc ReportContext, caixa *entity.Caixa) (*entity.User, error) {
	if rc.Operator != nil && rc.Operator.ID == caixa.UserID {
		return rc.Operator, nil
	}
	owner, err := s.userRepo.GetByID(ctx, caixa.UserID)
	if err != nil {
		return nil, apperror.NewInternalError("Failed to load operator", err)
	}
	if owner == nil {
		return nil, apperror.NewNotFoundError("Operator")
	}
	return owner, nil
}

func sangriaRows(sangrias []entity.Sangria) ([]entity.SangriaRow, decimal.Decimal) {
	total := decimal.Zero
	if len(sangrias) == 0 {
		return []entity.SangriaRow{{Valor: entity.NenhumaSangria, Motivo: ""}}, total
	}
	rows := make([]entity.SangriaRow, 0, len(sangrias))
	for _, sg := range sangrias {
		amount := format.Amount(sg.Valor)
		total = total.Add(amount)
		rows = append(rows, entity.SangriaRow{
			Valor:  format.Money(amount),
			Motivo: sg.Motivo,
			Amount: amount,
		})
	}
	return rows, total
}

// zero bordos print as a blank cell
func qtdBordos(n int) string {
	if n == 0 {
		return ""
	}
	return strconv.Itoa(n)
}

func fileBase(matricula string, t time.Time) string {
	return fmt.Sprintf("%s-%s", matricula, format.FileDate(t))
}
