package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/retail-analytics/internal/application/analytics"
)

// HealthHandler expone el estado del servicio y del dataset cargado.
type HealthHandler struct {
	uc *analytics.DashboardUseCase
}

// NewHealthHandler construye el handler.
func NewHealthHandler(uc *analytics.DashboardUseCase) *HealthHandler {
	return &HealthHandler{uc: uc}
}

// Check GET /health. Responde 200 aun sin datos; "loaded" indica si hay snapshot.
func (h *HealthHandler) Check(c *fiber.Ctx) error {
	info, err := h.uc.Info()
	if err != nil {
		return c.JSON(fiber.Map{"status": "ok", "loaded": false})
	}
	return c.JSON(fiber.Map{
		"status":       "ok",
		"loaded":       true,
		"snapshot_id":  info.SnapshotID,
		"record_count": info.RecordCount,
		"loaded_at":    info.LoadedAt,
	})
}
