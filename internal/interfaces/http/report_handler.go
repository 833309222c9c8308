package http

import (
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/retail-analytics/internal/application/analytics"
)

// ReportHandler exporta el dashboard en PDF.
type ReportHandler struct {
	uc *analytics.ReportUseCase
}

// NewReportHandler construye el handler.
func NewReportHandler(uc *analytics.ReportUseCase) *ReportHandler {
	return &ReportHandler{uc: uc}
}

// ExportPDF godoc
// @Summary      Dashboard en PDF
// @Tags         dashboard
// @Produce      application/pdf
// @Param        country     query  string  false  "País exacto o 'All'."
// @Param        start_date  query  string  false  "Inicio (YYYY-MM-DD)."
// @Param        end_date    query  string  false  "Fin inclusive (YYYY-MM-DD)."
// @Success      200  {file}    binary
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      503  {object}  dto.ErrorResponse
// @Router       /api/dashboard/report.pdf [get]
func (h *ReportHandler) ExportPDF(c *fiber.Ctx) error {
	req, err := parseRequest(c)
	if err != nil {
		return respondError(c, err)
	}
	pdfBytes, filename, err := h.uc.ExportPDF(c.Context(), req)
	if err != nil {
		return respondError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", filename))
	return c.Send(pdfBytes)
}
