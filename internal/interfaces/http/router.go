package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/retail-analytics/internal/application/analytics"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	DashboardUC *analytics.DashboardUseCase
	ReportUC    *analytics.ReportUseCase
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	app.Get("/health", NewHealthHandler(deps.DashboardUC).Check)

	api := app.Group("/api")

	// Dashboard (lectura sobre el snapshot en memoria)
	dashboard := api.Group("/dashboard")
	dashboardHandler := NewDashboardHandler(deps.DashboardUC)
	dashboard.Get("/", dashboardHandler.GetDashboard)
	dashboard.Get("/kpis", dashboardHandler.GetKPIs)
	dashboard.Get("/monthly-revenue", dashboardHandler.GetMonthlyRevenue)
	dashboard.Get("/top-products", dashboardHandler.GetTopProducts)
	dashboard.Get("/top-countries", dashboardHandler.GetTopCountries)
	dashboard.Get("/revenue-by-country", dashboardHandler.GetRevenueByCountry)
	dashboard.Get("/recent-orders", dashboardHandler.GetRecentOrders)
	dashboard.Get("/filters", dashboardHandler.GetFilters)
	dashboard.Post("/reload", dashboardHandler.Reload)

	// Exportación
	reportHandler := NewReportHandler(deps.ReportUC)
	dashboard.Get("/report.pdf", reportHandler.ExportPDF)
}
