package http

import (
	"net/url"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/jhoicas/stockpro/internal/application/auth"
	"github.com/jhoicas/stockpro/internal/application/dto"
)

// msgAccountCreated aviso mostrado en la página de inicio de sesión tras el registro.
const msgAccountCreated = "Cuenta creada con éxito"

// AuthHandler registro, inicio y cierre de sesión.
type AuthHandler struct {
	uc      *auth.AuthUseCase
	session SessionConfig
	log     zerolog.Logger
}

// NewAuthHandler construye el handler de auth.
func NewAuthHandler(uc *auth.AuthUseCase, session SessionConfig, log zerolog.Logger) *AuthHandler {
	return &AuthHandler{uc: uc, session: session, log: log}
}

// SignUp godoc
// @Summary      Crear cuenta
// @Tags         auth
// @Accept       json,x-www-form-urlencoded
// @Produce      json
// @Param        body  body  dto.SignUpRequest  true  "name, email, password, confirmPassword"
// @Success      201   {object}  dto.ActionResult
// @Failure      400   {object}  dto.ActionResult
// @Router       /api/auth/sign-up [post]
func (h *AuthHandler) SignUp(c *fiber.Ctx) error {
	var in dto.SignUpRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	if _, err := h.uc.SignUp(c.UserContext(), in); err != nil {
		return fail(c, h.log, err, in.Values())
	}
	return c.Status(fiber.StatusCreated).JSON(dto.RedirectTo(h.session.SignInPath + "?message=" + url.QueryEscape(msgAccountCreated)))
}

// SignIn godoc
// @Summary      Iniciar sesión
// @Description  Emite el token de sesión y lo deja en la cookie de sesión (HttpOnly).
// @Tags         auth
// @Accept       json,x-www-form-urlencoded
// @Produce      json
// @Param        body  body  dto.SignInRequest  true  "email, password"
// @Success      200   {object}  dto.ActionResult
// @Failure      401   {object}  dto.ActionResult
// @Router       /api/auth/sign-in [post]
func (h *AuthHandler) SignIn(c *fiber.Ctx) error {
	var in dto.SignInRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	session, err := h.uc.SignIn(c.UserContext(), in)
	if err != nil {
		return fail(c, h.log, err, in.Values())
	}
	c.Cookie(&fiber.Cookie{
		Name:     h.session.CookieName,
		Value:    session.Token,
		Path:     "/",
		Expires:  session.ExpiresAt,
		HTTPOnly: true,
		Secure:   h.session.Secure,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
	res := dto.OK(session)
	res.Redirect = "/"
	return c.JSON(res)
}

// SignOut godoc
// @Summary      Cerrar sesión
// @Tags         auth
// @Produce      json
// @Success      200  {object}  dto.ActionResult
// @Router       /api/auth/sign-out [post]
func (h *AuthHandler) SignOut(c *fiber.Ctx) error {
	c.Cookie(&fiber.Cookie{
		Name:     h.session.CookieName,
		Value:    "",
		Path:     "/",
		Expires:  time.Unix(0, 0),
		MaxAge:   -1,
		HTTPOnly: true,
		Secure:   h.session.Secure,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
	return c.JSON(dto.RedirectTo(h.session.SignInPath))
}

// Me godoc
// @Summary      Usuario de la sesión
// @Tags         auth
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.ActionResult
// @Failure      401  {object}  dto.ActionResult
// @Router       /api/auth/me [get]
func (h *AuthHandler) Me(c *fiber.Ctx) error {
	user, err := h.uc.Me(c.UserContext(), GetActor(c))
	if err != nil {
		return fail(c, h.log, err, nil)
	}
	return c.JSON(dto.OK(user))
}
