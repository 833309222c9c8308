package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/retail-analytics/internal/application/analytics"
)

// DashboardHandler maneja los endpoints del dashboard de ventas.
type DashboardHandler struct {
	uc *analytics.DashboardUseCase
}

// NewDashboardHandler construye el handler.
func NewDashboardHandler(uc *analytics.DashboardUseCase) *DashboardHandler {
	return &DashboardHandler{uc: uc}
}

// GetDashboard godoc
// @Summary      Dashboard completo
// @Description  KPIs, ventas mensuales, top productos, top países, ingreso por país y
//               pedidos recientes del subconjunto filtrado.
// @Tags         dashboard
// @Produce      json
// @Param        country     query  string  false  "País exacto o 'All' (default)."
// @Param        start_date  query  string  false  "Inicio (YYYY-MM-DD). Default: fecha mínima del dataset."
// @Param        end_date    query  string  false  "Fin inclusive (YYYY-MM-DD). Default: fecha máxima."
// @Param        top_n       query  int     false  "Tamaño de rankings (default 10, max 100)."
// @Param        limit       query  int     false  "Pedidos recientes (default 300, max 1000)."
// @Success      200  {object}  dto.DashboardDTO
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      503  {object}  dto.ErrorResponse
// @Router       /api/dashboard [get]
func (h *DashboardHandler) GetDashboard(c *fiber.Ctx) error {
	req, err := parseRequest(c)
	if err != nil {
		return respondError(c, err)
	}
	out, err := h.uc.GetDashboard(c.Context(), req)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// GetKPIs ingresos, pedidos, clientes y ticket promedio.
// GET /api/dashboard/kpis
func (h *DashboardHandler) GetKPIs(c *fiber.Ctx) error {
	req, err := parseRequest(c)
	if err != nil {
		return respondError(c, err)
	}
	out, err := h.uc.GetKPIs(c.Context(), req)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// GetMonthlyRevenue serie de ingresos por mes calendario.
// GET /api/dashboard/monthly-revenue
func (h *DashboardHandler) GetMonthlyRevenue(c *fiber.Ctx) error {
	req, err := parseRequest(c)
	if err != nil {
		return respondError(c, err)
	}
	out, err := h.uc.GetMonthlyRevenue(c.Context(), req)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// GetTopProducts ranking de productos por unidades vendidas.
// GET /api/dashboard/top-products?top_n=10
func (h *DashboardHandler) GetTopProducts(c *fiber.Ctx) error {
	req, err := parseRequest(c)
	if err != nil {
		return respondError(c, err)
	}
	out, err := h.uc.GetTopProducts(c.Context(), req)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// GetTopCountries ranking de países por ingreso.
// GET /api/dashboard/top-countries?top_n=10
func (h *DashboardHandler) GetTopCountries(c *fiber.Ctx) error {
	req, err := parseRequest(c)
	if err != nil {
		return respondError(c, err)
	}
	out, err := h.uc.GetTopCountries(c.Context(), req)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// GetRevenueByCountry ingreso de todos los países (datos del mapa).
// GET /api/dashboard/revenue-by-country
func (h *DashboardHandler) GetRevenueByCountry(c *fiber.Ctx) error {
	req, err := parseRequest(c)
	if err != nil {
		return respondError(c, err)
	}
	out, err := h.uc.GetRevenueByCountry(c.Context(), req)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// GetRecentOrders pedidos más recientes primero.
// GET /api/dashboard/recent-orders?limit=300
func (h *DashboardHandler) GetRecentOrders(c *fiber.Ctx) error {
	req, err := parseRequest(c)
	if err != nil {
		return respondError(c, err)
	}
	out, err := h.uc.GetRecentOrders(c.Context(), req)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// GetFilters países disponibles y límites de fecha para el panel de filtros.
// GET /api/dashboard/filters
func (h *DashboardHandler) GetFilters(c *fiber.Ctx) error {
	out, err := h.uc.GetFilterOptions()
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Reload godoc
// @Summary      Recarga el dataset desde la fuente configurada
// @Description  Si la carga falla se conserva el snapshot anterior.
// @Tags         dashboard
// @Produce      json
// @Success      200  {object}  dto.DatasetInfoDTO
// @Failure      422  {object}  dto.ErrorResponse
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/dashboard/reload [post]
func (h *DashboardHandler) Reload(c *fiber.Ctx) error {
	info, err := h.uc.Load(c.Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(info)
}
