package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sangkips/caixa-api/internal/application/service"
	"github.com/sangkips/caixa-api/internal/presentation/http/dto/request"
	"github.com/sangkips/caixa-api/internal/presentation/http/dto/response"
	"github.com/sangkips/caixa-api/pkg/pagination"
)

// CaixaHandler handles register session HTTP requests
type CaixaHandler struct {
	caixaService *service.CaixaService
}

// NewCaixaHandler creates a new caixa handler
func NewCaixaHandler(caixaService *service.CaixaService) *CaixaHandler {
	return &CaixaHandler{caixaService: caixaService}
}

// Open starts a caixa for the signed-in operator
func (h *CaixaHandler) Open(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	caixa, err := h.caixaService.Open(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Caixa opened", caixa)
}

// List returns the operator's caixas, newest first. Admins may pass
// ?user_id= to list another operator's caixas.
func (h *CaixaHandler) List(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	if q := c.Query("user_id"); q != "" && IsAdmin(c) {
		id, err := uuid.Parse(q)
		if err != nil {
			response.BadRequest(c, "Invalid user_id format")
			return
		}
		userID = id
	}

	params := pagination.DefaultPagination()
	if err := c.ShouldBindQuery(params); err != nil {
		response.BadRequest(c, "Invalid pagination parameters")
		return
	}

	result, err := h.caixaService.List(c.Request.Context(), userID, params)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, 200, "Caixas retrieved", result)
}

// Current returns the operator's open caixa
func (h *CaixaHandler) Current(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	caixa, err := h.caixaService.Current(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Caixa retrieved", caixa)
}

// Get returns a caixa by ID
func (h *CaixaHandler) Get(c *gin.Context) {
	caixaID, ok := uuidParam(c, "id")
	if !ok {
		return
	}

	caixa, err := h.caixaService.Get(c.Request.Context(), caixaID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Caixa retrieved", caixa)
}

// Close closes a caixa
func (h *CaixaHandler) Close(c *gin.Context) {
	caixaID, ok := uuidParam(c, "id")
	if !ok {
		return
	}

	caixa, err := h.caixaService.Close(c.Request.Context(), caixaID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Caixa closed", caixa)
}

// CreateLancamento records a fare transaction
func (h *CaixaHandler) CreateLancamento(c *gin.Context) {
	caixaID, ok := uuidParam(c, "id")
	if !ok {
		return
	}

	var req request.CreateLancamentoRequest
	if !bindJSON(c, &req) {
		return
	}

	l, err := h.caixaService.AddLancamento(c.Request.Context(), caixaID, GetMatricula(c), &service.LancamentoInput{
		DataCaixa:          req.DataCaixa,
		Prefixo:            req.Prefixo,
		TipoValidador:      req.TipoValidador,
		QtdBordos:          req.QtdBordos,
		Valor:              req.Valor,
		MatriculaMotorista: req.MatriculaMotorista,
		MatriculaRecebedor: req.MatriculaRecebedor,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Lancamento recorded", l)
}

// ListLancamentos returns the lancamentos of a caixa
func (h *CaixaHandler) ListLancamentos(c *gin.Context) {
	caixaID, ok := uuidParam(c, "id")
	if !ok {
		return
	}

	items, err := h.caixaService.ListLancamentos(c.Request.Context(), caixaID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Lancamentos retrieved", items)
}

// CreateSangria records a cash withdrawal
func (h *CaixaHandler) CreateSangria(c *gin.Context) {
	caixaID, ok := uuidParam(c, "id")
	if !ok {
		return
	}

	var req request.CreateSangriaRequest
	if !bindJSON(c, &req) {
		return
	}

	s, err := h.caixaService.AddSangria(c.Request.Context(), caixaID, &service.SangriaInput{
		Valor:  req.Valor,
		Motivo: req.Motivo,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Sangria recorded", s)
}

// ListSangrias returns the sangrias of a caixa
func (h *CaixaHandler) ListSangrias(c *gin.Context) {
	caixaID, ok := uuidParam(c, "id")
	if !ok {
		return
	}

	items, err := h.caixaService.ListSangrias(c.Request.Context(), caixaID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Sangrias retrieved", items)
}
