package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/jhoicas/stockpro/internal/application/dto"
	"github.com/jhoicas/stockpro/internal/application/usecase"
)

// ProfileHandler perfil del usuario de la sesión.
type ProfileHandler struct {
	uc  *usecase.ProfileUseCase
	log zerolog.Logger
}

func NewProfileHandler(uc *usecase.ProfileUseCase, log zerolog.Logger) *ProfileHandler {
	return &ProfileHandler{uc: uc, log: log}
}

// Get GET /api/profile
func (h *ProfileHandler) Get(c *fiber.Ctx) error {
	out, err := h.uc.Get(c.UserContext(), GetActor(c))
	if err != nil {
		return fail(c, h.log, err, nil)
	}
	return c.JSON(dto.OK(out))
}

// Stats GET /api/profile/stats: ventas, ingresos, productos creados y último inicio de sesión.
func (h *ProfileHandler) Stats(c *fiber.Ctx) error {
	out, err := h.uc.Stats(c.UserContext(), GetActor(c))
	if err != nil {
		return fail(c, h.log, err, nil)
	}
	return c.JSON(dto.OK(out))
}
