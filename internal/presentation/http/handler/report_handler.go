package handler

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/sangkips/caixa-api/internal/application/service"
	"github.com/sangkips/caixa-api/internal/domain/entity"
	"github.com/sangkips/caixa-api/internal/presentation/http/dto/response"
)

const (
	contentTypePDF  = "application/pdf"
	contentTypeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

// ReportHandler serves caixa closing reports as file downloads
type ReportHandler struct {
	reportService *service.ReportService
	authService   *service.AuthService
}

// NewReportHandler creates a new report handler
func NewReportHandler(reportService *service.ReportService, authService *service.AuthService) *ReportHandler {
	return &ReportHandler{reportService: reportService, authService: authService}
}

type reportGenerator func(ctx context.Context, rc service.ReportContext) (*entity.ClosingReport, []byte, error)

// PDF downloads the closing report as {matricula}-{DD-MM-YYYY}.pdf
func (h *ReportHandler) PDF(c *gin.Context) {
	h.serve(c, h.reportService.GeneratePDF, "pdf", contentTypePDF)
}

// XLSX downloads the closing report as {matricula}-{DD-MM-YYYY}.xlsx
func (h *ReportHandler) XLSX(c *gin.Context) {
	h.serve(c, h.reportService.GenerateXLSX, "xlsx", contentTypeXLSX)
}

// serve generates the report and sends it as a download. Failures keep the
// JSON envelope; 5xx causes are logged by response.Error.
func (h *ReportHandler) serve(c *gin.Context, generate reportGenerator, ext, contentType string) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	caixaID, ok := uuidParam(c, "id")
	if !ok {
		return
	}

	ctx := c.Request.Context()
	operator, err := h.authService.GetCurrentUser(ctx, userID)
	if err != nil {
		response.Error(c, err)
		return
	}

	report, data, err := generate(ctx, service.ReportContext{
		UserID:   userID,
		CaixaID:  caixaID,
		Operator: operator,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.File(c, report.FileName(ext), contentType, data)
}
