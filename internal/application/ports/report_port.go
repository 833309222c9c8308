package ports

import (
	"context"

	"github.com/jhoicas/retail-analytics/internal/application/dto"
)

// DashboardPDFGenerator define el puerto de salida para exportar el dashboard a PDF.
// La aplicación solo conoce este contrato; el adaptador concreto vive en infrastructure/pdf.
type DashboardPDFGenerator interface {
	// GenerateDashboardPDF renderiza las tablas del dashboard ya calculadas y devuelve los bytes del PDF.
	GenerateDashboardPDF(ctx context.Context, dashboard *dto.DashboardDTO) ([]byte, error)
}
