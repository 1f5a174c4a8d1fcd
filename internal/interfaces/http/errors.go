package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/jhoicas/stockpro/internal/application/dto"
	"github.com/jhoicas/stockpro/internal/domain"
)

// msgValidation mensaje general cuando hay errores por campo.
const msgValidation = "revise los campos marcados"

// toResult traduce un error de la capa de aplicación a status HTTP + ActionResult.
func toResult(err error) (int, dto.ActionResult) {
	var verr *domain.ValidationError
	switch {
	case errors.As(err, &verr):
		r := dto.Fail(dto.KindValidation, msgValidation)
		r.Error.Fields = verr.Fields
		return fiber.StatusBadRequest, r
	case errors.Is(err, domain.ErrInvalidInput):
		return fiber.StatusBadRequest, dto.Fail(dto.KindValidation, err.Error())
	case errors.Is(err, domain.ErrInvalidCredentials):
		return fiber.StatusUnauthorized, dto.Fail(dto.KindInvalidCredentials, domain.ErrInvalidCredentials.Error())
	case errors.Is(err, domain.ErrUnauthenticated):
		return fiber.StatusUnauthorized, dto.Fail(dto.KindUnauthenticated, domain.ErrUnauthenticated.Error())
	case errors.Is(err, domain.ErrNotFound):
		return fiber.StatusNotFound, dto.Fail(dto.KindNotFound, domain.ErrNotFound.Error())
	case errors.Is(err, domain.ErrEmailAlreadyExists), errors.Is(err, domain.ErrConflict):
		return fiber.StatusConflict, dto.Fail(dto.KindConflict, err.Error())
	default:
		return fiber.StatusInternalServerError, dto.Fail(dto.KindInternal, dto.MsgGeneric)
	}
}

// fail responde el error como ActionResult. Los errores internos se registran; el cliente
// solo recibe el mensaje genérico. values repuebla el formulario (puede ser nil).
func fail(c *fiber.Ctx, log zerolog.Logger, err error, values map[string]string) error {
	status, res := toResult(err)
	if status == fiber.StatusInternalServerError {
		log.Error().Err(err).
			Str("method", c.Method()).
			Str("path", c.Path()).
			Msg("error interno")
	}
	return c.Status(status).JSON(res.WithValues(values))
}

// badBody cuerpo ilegible (JSON mal formado, content-type no soportado).
func badBody(c *fiber.Ctx) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.Fail(dto.KindValidation, "cuerpo de la petición inválido"))
}

// ErrorHandler manejador de errores de fiber: 404 de rutas y errores no controlados.
func ErrorHandler(log zerolog.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		var fe *fiber.Error
		if errors.As(err, &fe) {
			kind := dto.KindInternal
			switch fe.Code {
			case fiber.StatusNotFound:
				kind = dto.KindNotFound
			case fiber.StatusBadRequest, fiber.StatusUnprocessableEntity, fiber.StatusRequestEntityTooLarge:
				kind = dto.KindValidation
			case fiber.StatusUnauthorized:
				kind = dto.KindUnauthenticated
			}
			msg := fe.Message
			if fe.Code >= fiber.StatusInternalServerError {
				msg = dto.MsgGeneric
			}
			return c.Status(fe.Code).JSON(dto.Fail(kind, msg))
		}
		return fail(c, log, err, nil)
	}
}
