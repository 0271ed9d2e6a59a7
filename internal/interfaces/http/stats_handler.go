package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/tienda-movil-api/internal/application/dto"
	"github.com/jhoicas/tienda-movil-api/internal/application/stats"
)

// StatsHandler maneja los contadores del panel de administración.
type StatsHandler struct {
	uc *stats.StatsUseCase
}

// NewStatsHandler construye el handler.
func NewStatsHandler(uc *stats.StatsUseCase) *StatsHandler {
	return &StatsHandler{uc: uc}
}

// Dashboard devuelve los contadores del panel.
// GET /api/admin/stats
func (h *StatsHandler) Dashboard(c *fiber.Ctx) error {
	resp, err := h.uc.Dashboard()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(resp)
}
