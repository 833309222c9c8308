package dto

import "github.com/shopspring/decimal"

// ── Query parameters ──────────────────────────────────────────────────────────

// DashboardRequest parámetros comunes de GET /api/dashboard/*.
type DashboardRequest struct {
	Country   string `query:"country"`    // "All" o etiqueta exacta del país; default "All"
	StartDate string `query:"start_date"` // YYYY-MM-DD; por defecto la fecha mínima del dataset
	EndDate   string `query:"end_date"`   // YYYY-MM-DD inclusive; por defecto la fecha máxima
	TopN      int    `query:"top_n"`      // tamaño de rankings (default 10, max 100)
	Limit     int    `query:"limit"`      // filas de pedidos recientes (default 300, max 1000)
}

// ── Tablas del reporte ────────────────────────────────────────────────────────

// KPIsDTO tarjetas de indicadores del dashboard.
type KPIsDTO struct {
	TotalRevenue   decimal.Decimal `json:"total_revenue"`
	TotalOrders    int             `json:"total_orders"`
	TotalCustomers int             `json:"total_customers"`
	AvgOrderValue  decimal.Decimal `json:"avg_order_value"` // 0 si no hay pedidos

	// Etiquetas listas para mostrar, ej: "£26", "£8.67"
	RevenueLabel       string `json:"revenue_label"`
	AvgOrderValueLabel string `json:"avg_order_value_label"`
}

// MonthlyRevenueDTO punto de la serie de ventas mensual.
type MonthlyRevenueDTO struct {
	Month   string          `json:"month"` // YYYY-MM
	Revenue decimal.Decimal `json:"revenue"`
}

// TopProductDTO fila del ranking de productos por unidades.
type TopProductDTO struct {
	Rank        int    `json:"rank"`
	Description string `json:"description"`
	Quantity    int64  `json:"quantity"`
}

// CountryRevenueDTO ingreso por país (ranking o mapa coroplético).
type CountryRevenueDTO struct {
	Country string          `json:"country"`
	Revenue decimal.Decimal `json:"revenue"`
}

// RecentOrderDTO fila de la tabla de pedidos recientes.
type RecentOrderDTO struct {
	InvoiceDate string          `json:"invoice_date"` // RFC3339
	InvoiceID   string          `json:"invoice_id"`
	CustomerID  int64           `json:"customer_id"`
	Country     string          `json:"country"`
	Description string          `json:"description"`
	Quantity    int64           `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	LineTotal   decimal.Decimal `json:"line_total"`
}

// ── Respuestas compuestas ─────────────────────────────────────────────────────

// AppliedFilterDTO filtro efectivo tras aplicar valores por defecto.
type AppliedFilterDTO struct {
	Country   string `json:"country"`
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
}

// DashboardDTO respuesta de GET /api/dashboard: las seis tablas del reporte.
type DashboardDTO struct {
	Filter           AppliedFilterDTO    `json:"filter"`
	RecordCount      int                 `json:"record_count"` // filas del subconjunto filtrado
	KPIs             KPIsDTO             `json:"kpis"`
	MonthlyRevenue   []MonthlyRevenueDTO `json:"monthly_revenue"`
	TopProducts      []TopProductDTO     `json:"top_products"`
	TopCountries     []CountryRevenueDTO `json:"top_countries"`
	RevenueByCountry []CountryRevenueDTO `json:"revenue_by_country"`
	RecentOrders     []RecentOrderDTO    `json:"recent_orders"`
}

// FilterOptionsDTO opciones del panel de filtros: países y límites de fecha.
type FilterOptionsDTO struct {
	Countries []string `json:"countries"` // "All" + países ordenados
	MinDate   string   `json:"min_date"`  // YYYY-MM-DD
	MaxDate   string   `json:"max_date"`
}

// DatasetInfoDTO estado del conjunto base cargado.
type DatasetInfoDTO struct {
	SnapshotID  string `json:"snapshot_id"`
	Source      string `json:"source"`
	RowsRead    int    `json:"rows_read"`
	RecordCount int    `json:"record_count"`
	LoadedAt    string `json:"loaded_at"`
}
