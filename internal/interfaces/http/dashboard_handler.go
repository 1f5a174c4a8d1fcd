package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	appanalytics "github.com/jhoicas/stockpro/internal/application/analytics"
	"github.com/jhoicas/stockpro/internal/application/dto"
)

// DashboardHandler indicadores del tablero principal.
type DashboardHandler struct {
	uc  *appanalytics.DashboardUseCase
	log zerolog.Logger
}

// NewDashboardHandler construye el handler.
func NewDashboardHandler(uc *appanalytics.DashboardUseCase, log zerolog.Logger) *DashboardHandler {
	return &DashboardHandler{uc: uc, log: log}
}

// GetStats devuelve valor del stock, ingresos, beneficio, conteos, últimas ventas y top de productos.
// GET /api/dashboard/stats
//
// Las cuatro consultas se lanzan en paralelo; si una falla se responde el error genérico.
func (h *DashboardHandler) GetStats(c *fiber.Ctx) error {
	out, err := h.uc.GetStats(c.UserContext())
	if err != nil {
		return fail(c, h.log, err, nil)
	}
	return c.JSON(dto.OK(out))
}
