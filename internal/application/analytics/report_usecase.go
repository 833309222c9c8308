package analytics

import (
	"context"
	"fmt"
	"strings"

	"github.com/jhoicas/retail-analytics/internal/application/dto"
	"github.com/jhoicas/retail-analytics/internal/application/ports"
)

// ReportUseCase exporta el dashboard filtrado a PDF.
type ReportUseCase struct {
	dashboard *DashboardUseCase
	generator ports.DashboardPDFGenerator
}

// NewReportUseCase construye el caso de uso inyectando el generador de PDF.
func NewReportUseCase(dashboard *DashboardUseCase, generator ports.DashboardPDFGenerator) *ReportUseCase {
	return &ReportUseCase{dashboard: dashboard, generator: generator}
}

// ExportPDF calcula el dashboard para req y lo renderiza.
// Devuelve los bytes y un nombre de archivo sugerido, ej: "retail-dashboard_All_2010-12-01_2011-12-09.pdf".
func (uc *ReportUseCase) ExportPDF(ctx context.Context, req dto.DashboardRequest) (pdfBytes []byte, filename string, err error) {
	d, err := uc.dashboard.GetDashboard(ctx, req)
	if err != nil {
		return nil, "", err
	}
	pdfBytes, err = uc.generator.GenerateDashboardPDF(ctx, d)
	if err != nil {
		return nil, "", fmt.Errorf("reporte: generar PDF: %w", err)
	}
	return pdfBytes, reportFilename(d.Filter), nil
}

func reportFilename(f dto.AppliedFilterDTO) string {
	country := strings.Map(func(r rune) rune {
		if r == ' ' || r == '/' || r == '\\' {
			return '-'
		}
		return r
	}, f.Country)
	return fmt.Sprintf("retail-dashboard_%s_%s_%s.pdf", country, f.StartDate, f.EndDate)
}
