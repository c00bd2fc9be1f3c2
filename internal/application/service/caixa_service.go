package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/sangkips/caixa-api/internal/domain/entity"
	"github.com/sangkips/caixa-api/internal/domain/enum"
	"github.com/sangkips/caixa-api/internal/domain/repository"
	"github.com/sangkips/caixa-api/pkg/apperror"
	"github.com/sangkips/caixa-api/pkg/format"
	"github.com/sangkips/caixa-api/pkg/pagination"
	"github.com/shopspring/decimal"
)

// CaixaService drives the register session workflow: opening and closing a
// caixa and recording lancamentos and sangrias while it is open.
type CaixaService struct {
	caixaRepo      repository.CaixaRepository
	lancamentoRepo repository.LancamentoRepository
	sangriaRepo    repository.SangriaRepository
	now            func() time.Time
}

// NewCaixaService creates a new caixa service
func NewCaixaService(
	caixaRepo repository.CaixaRepository,
	lancamentoRepo repository.LancamentoRepository,
	sangriaRepo repository.SangriaRepository,
) *CaixaService {
	return &CaixaService{
		caixaRepo:      caixaRepo,
		lancamentoRepo: lancamentoRepo,
		sangriaRepo:    sangriaRepo,
		now:            time.Now,
	}
}

// Open starts a new caixa for the operator. An operator holds at most one
// open caixa at a time.
func (s *CaixaService) Open(ctx context.Context, userID uuid.UUID) (*entity.Caixa, error) {
	current, err := s.caixaRepo.GetOpen(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("find open caixa: %w", err)
	}
	if current != nil {
		return nil, apperror.ErrCaixaAlreadyOpen
	}

	caixa := &entity.Caixa{
		UserID:    userID,
		Status:    enum.CaixaStatusAberto,
		CreatedAt: s.now(),
	}
	if err := s.caixaRepo.Create(ctx, caixa); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, apperror.ErrCaixaAlreadyOpen
		}
		// a concurrent Open may have won the race on a driver that
		// does not translate constraint errors
		if open, lookupErr := s.caixaRepo.GetOpen(ctx, userID); lookupErr == nil && open != nil {
			return nil, apperror.ErrCaixaAlreadyOpen
		}
		return nil, fmt.Errorf("create caixa: %w", err)
	}

	log.Info().Str("caixa_id", caixa.ID.String()).Str("user_id", userID.String()).Msg("caixa opened")
	return caixa, nil
}

// Current returns the operator's open caixa
func (s *CaixaService) Current(ctx context.Context, userID uuid.UUID) (*entity.Caixa, error) {
	caixa, err := s.caixaRepo.GetOpen(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("find open caixa: %w", err)
	}
	if caixa == nil {
		return nil, apperror.ErrNoOpenCaixa
	}
	return caixa, nil
}

// Get returns a caixa visible to the operator in ctx
func (s *CaixaService) Get(ctx context.Context, caixaID uuid.UUID) (*entity.Caixa, error) {
	caixa, err := s.caixaRepo.GetByID(ctx, caixaID)
	if err != nil {
		return nil, fmt.Errorf("find caixa: %w", err)
	}
	if caixa == nil {
		return nil, apperror.ErrCaixaNotFound
	}
	return caixa, nil
}

// List returns the operator's caixas, newest first
func (s *CaixaService) List(ctx context.Context, userID uuid.UUID, params *pagination.PaginationParams) (*pagination.PaginatedResult[entity.Caixa], error) {
	params.Validate()

	caixas, total, err := s.caixaRepo.List(ctx, userID, params)
	if err != nil {
		return nil, fmt.Errorf("list caixas: %w", err)
	}

	return pagination.NewPaginatedResult(caixas, pagination.NewPagination(params.Page, params.PerPage, total)), nil
}

// Close stamps closed_at and marks the caixa fechado. Closing twice is a conflict.
func (s *CaixaService) Close(ctx context.Context, caixaID uuid.UUID) (*entity.Caixa, error) {
	caixa, err := s.Get(ctx, caixaID)
	if err != nil {
		return nil, err
	}
	if !caixa.IsOpen() {
		return nil, apperror.ErrCaixaClosed
	}

	closedAt := s.now()
	ok, err := s.caixaRepo.Close(ctx, caixaID, closedAt)
	if err != nil {
		return nil, fmt.Errorf("close caixa: %w", err)
	}
	if !ok {
		return nil, apperror.ErrCaixaClosed
	}

	caixa.Status = enum.CaixaStatusFechado
	caixa.ClosedAt = &closedAt

	log.Info().Str("caixa_id", caixaID.String()).Msg("caixa closed")
	return caixa, nil
}

// LancamentoInput carries a fare transaction to record
type LancamentoInput struct {
	DataCaixa          string // YYYY-MM-DD, today when empty
	Prefixo            string
	TipoValidador      string
	QtdBordos          int
	Valor              decimal.Decimal
	MatriculaMotorista string
	MatriculaRecebedor string // defaults to the signed-in operator
}

// AddLancamento records a fare transaction on an open caixa.
// operatorMatricula fills MatriculaRecebedor when the input leaves it blank.
func (s *CaixaService) AddLancamento(ctx context.Context, caixaID uuid.UUID, operatorMatricula string, input *LancamentoInput) (*entity.Lancamento, error) {
	var fieldErrors []apperror.FieldError

	dataCaixa := strings.TrimSpace(input.DataCaixa)
	if dataCaixa == "" {
		dataCaixa = format.ISODate(s.now())
	} else if !format.IsISODate(dataCaixa) {
		fieldErrors = append(fieldErrors, apperror.FieldError{Field: "data_caixa", Message: "must be a date in YYYY-MM-DD format"})
	}
	if !input.Valor.IsPositive() {
		fieldErrors = append(fieldErrors, apperror.FieldError{Field: "valor", Message: "must be greater than zero"})
	}
	if input.QtdBordos < 0 {
		fieldErrors = append(fieldErrors, apperror.FieldError{Field: "qtd_bordos", Message: "must not be negative"})
	}
	if len(fieldErrors) > 0 {
		return nil, apperror.NewValidationError(fieldErrors)
	}

	caixa, err := s.openCaixa(ctx, caixaID)
	if err != nil {
		return nil, err
	}

	recebedor := strings.TrimSpace(input.MatriculaRecebedor)
	if recebedor == "" {
		recebedor = operatorMatricula
	}

	l := &entity.Lancamento{
		CaixaID:            caixa.ID,
		UserID:             caixa.UserID,
		DataCaixa:          dataCaixa,
		Prefixo:            strings.TrimSpace(input.Prefixo),
		TipoValidador:      strings.TrimSpace(input.TipoValidador),
		QtdBordos:          input.QtdBordos,
		Valor:              input.Valor.Round(2),
		MatriculaMotorista: strings.TrimSpace(input.MatriculaMotorista),
		MatriculaRecebedor: recebedor,
		CreatedAt:          s.now(),
	}
	if err := s.lancamentoRepo.Create(ctx, l); err != nil {
		return nil, fmt.Errorf("create lancamento: %w", err)
	}

	log.Debug().Str("caixa_id", caixaID.String()).Str("lancamento_id", l.ID.String()).Str("valor", l.Valor.StringFixed(2)).Msg("lancamento recorded")
	return l, nil
}

// SangriaInput carries a cash withdrawal to record
type SangriaInput struct {
	Valor  decimal.Decimal
	Motivo string
}

// AddSangria records a cash withdrawal on an open caixa
func (s *CaixaService) AddSangria(ctx context.Context, caixaID uuid.UUID, input *SangriaInput) (*entity.Sangria, error) {
	if !input.Valor.IsPositive() {
		return nil, apperror.NewValidationError([]apperror.FieldError{
			{Field: "valor", Message: "must be greater than zero"},
		})
	}

	caixa, err := s.openCaixa(ctx, caixaID)
	if err != nil {
		return nil, err
	}

	sangria := &entity.Sangria{
		CaixaID:   caixa.ID,
		UserID:    caixa.UserID,
		Valor:     input.Valor.Round(2),
		Motivo:    strings.TrimSpace(input.Motivo),
		CreatedAt: s.now(),
	}
	if err := s.sangriaRepo.Create(ctx, sangria); err != nil {
		return nil, fmt.Errorf("create sangria: %w", err)
	}

	log.Debug().Str("caixa_id", caixaID.String()).Str("sangria_id", sangria.ID.String()).Str("valor", sangria.Valor.StringFixed(2)).Msg("sangria recorded")
	return sangria, nil
}

// GetLancamento returns one lancamento of a caixa
func (s *CaixaService) GetLancamento(ctx context.Context, caixaID, lancamentoID uuid.UUID) (*entity.Lancamento, error) {
	l, err := s.lancamentoRepo.GetByID(ctx, caixaID, lancamentoID)
	if err != nil {
		return nil, fmt.Errorf("find lancamento: %w", err)
	}
	if l == nil {
		return nil, apperror.NewNotFoundError("Lancamento")
	}
	return l, nil
}

// ListLancamentos returns the lancamentos of a caixa, oldest first
func (s *CaixaService) ListLancamentos(ctx context.Context, caixaID uuid.UUID) ([]entity.Lancamento, error) {
	if _, err := s.Get(ctx, caixaID); err != nil {
		return nil, err
	}
	items, err := s.lancamentoRepo.ListByCaixa(ctx, caixaID)
	if err != nil {
		return nil, fmt.Errorf("list lancamentos: %w", err)
	}
	return items, nil
}

// ListSangrias returns the sangrias of a caixa, oldest first
func (s *CaixaService) ListSangrias(ctx context.Context, caixaID uuid.UUID) ([]entity.Sangria, error) {
	if _, err := s.Get(ctx, caixaID); err != nil {
		return nil, err
	}
	items, err := s.sangriaRepo.ListByCaixa(ctx, caixaID)
	if err != nil {
		return nil, fmt.Errorf("list sangrias: %w", err)
	}
	return items, nil
}

func (s *CaixaService) openCaixa(ctx context.Context, caixaID uuid.UUID) (*entity.Caixa, error) {
	caixa, err := s.Get(ctx, caixaID)
	if err != nil {
		return nil, err
	}
	if !caixa.IsOpen() {
		return nil, apperror.ErrCaixaClosed
	}
	return caixa, nil
}
