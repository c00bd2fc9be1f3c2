package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/sangkips/caixa-api/internal/application/service"
	"github.com/sangkips/caixa-api/internal/presentation/http/dto/response"
)

// ReceiptHandler serves manual payment receipts and printer status.
type ReceiptHandler struct {
	receiptService *service.ReceiptService
}

// NewReceiptHandler creates a new receipt handler.
func NewReceiptHandler(receiptService *service.ReceiptService) *ReceiptHandler {
	return &ReceiptHandler{receiptService: receiptService}
}

// GetStatus returns the current printer connection status.
func (h *ReceiptHandler) GetStatus(c *gin.Context) {
	response.OK(c, "Printer status retrieved", h.receiptService.GetStatus())
}

// ReceiptPage serves the printable receipt of a lancamento as HTML. The
// page prints itself when opened in a browser window.
func (h *ReceiptHandler) ReceiptPage(c *gin.Context) {
	caixaID, ok := uuidParam(c, "id")
	if !ok {
		return
	}
	lancamentoID, ok := uuidParam(c, "lid")
	if !ok {
		return
	}

	page, err := h.receiptService.ReceiptHTML(c.Request.Context(), caixaID, lancamentoID, GetMatricula(c))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.HTML(c, page)
}

// PrintReceipt sends the receipt of a lancamento to the thermal printer.
// A printing failure still returns the receipt, with a warning.
func (h *ReceiptHandler) PrintReceipt(c *gin.Context) {
	caixaID, ok := uuidParam(c, "id")
	if !ok {
		return
	}
	lancamentoID, ok := uuidParam(c, "lid")
	if !ok {
		return
	}

	receipt, err := h.receiptService.PrintReceipt(c.Request.Context(), caixaID, lancamentoID, GetMatricula(c))
	if err != nil {
		if receipt != nil {
			response.OK(c, "Receipt generated but printing failed", gin.H{
				"receipt": receipt,
				"warning": err.Error(),
			})
			return
		}
		response.Error(c, err)
		return
	}

	response.OK(c, "Receipt printed successfully", gin.H{"receipt": receipt})
}
