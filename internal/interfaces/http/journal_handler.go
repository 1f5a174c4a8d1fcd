package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/jhoicas/stockpro/internal/application/dto"
	"github.com/jhoicas/stockpro/internal/application/usecase"
)

// JournalHandler diario de actividad.
type JournalHandler struct {
	uc  *usecase.JournalUseCase
	log zerolog.Logger
}

// NewJournalHandler construye el handler.
func NewJournalHandler(uc *usecase.JournalUseCase, log zerolog.Logger) *JournalHandler {
	return &JournalHandler{uc: uc, log: log}
}

// List godoc
// @Summary      Diario de actividad
// @Tags         journal
// @Security     Bearer
// @Produce      json
// @Param        type      query  string  false  "product | stock | sale | user"
// @Param        page      query  int     false  "Página"           default(1)
// @Param        per_page  query  int     false  "Tamaño de página" default(10)
// @Success      200  {object}  dto.ActionResult{data=dto.JournalListResponse}
// @Router       /api/journal [get]
func (h *JournalHandler) List(c *fiber.Ctx) error {
	out := h.uc.List(c.UserContext(), dto.JournalFilter{
		Type:        c.Query("type"),
		PageRequest: pageRequest(c),
	})
	return c.JSON(dto.OK(out))
}

// Stats godoc
// @Summary      Conteos del diario
// @Tags         journal
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.ActionResult{data=dto.JournalStatsResponse}
// @Router       /api/journal/stats [get]
func (h *JournalHandler) Stats(c *fiber.Ctx) error {
	out, err := h.uc.Stats(c.UserContext())
	if err != nil {
		return fail(c, h.log, err, nil)
	}
	return c.JSON(dto.OK(out))
}
