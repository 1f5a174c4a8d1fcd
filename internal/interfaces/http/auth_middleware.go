package http

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/stockpro/internal/application/dto"
)

// LocalActor clave de c.Locals con la identidad de la sesión (*dto.Actor).
const LocalActor = "actor"

// SessionValidator valida un token de sesión. Lo implementa *auth.AuthUseCase.
type SessionValidator interface {
	ValidateSession(token string) (*dto.Actor, error)
}

// SessionConfig cookie de sesión y ruta de inicio de sesión.
type SessionConfig struct {
	CookieName string
	SignInPath string
	Secure     bool
}

// AuthMiddleware exige una sesión válida: cookie de sesión o header "Authorization: Bearer <token>".
// Sin sesión, un navegador (Accept text/html) se redirige a SignInPath con 303; el resto recibe
// 401 con un ActionResult que lleva la misma redirección.
func AuthMiddleware(sessions SessionValidator, cfg SessionConfig) fiber.Handler {
	return func(c *fiber.Ctx) error {
		actor, err := sessions.ValidateSession(sessionToken(c, cfg.CookieName))
		if err != nil || actor == nil {
			if c.Accepts(fiber.MIMEApplicationJSON, fiber.MIMETextHTML) == fiber.MIMETextHTML {
				return c.Redirect(cfg.SignInPath, fiber.StatusSeeOther)
			}
			res := dto.Fail(dto.KindUnauthenticated, "inicie sesión para continuar")
			res.Redirect = cfg.SignInPath
			return c.Status(fiber.StatusUnauthorized).JSON(res)
		}
		c.Locals(LocalActor, actor)
		return c.Next()
	}
}

// sessionToken la cookie tiene prioridad sobre el header Authorization.
func sessionToken(c *fiber.Ctx, cookieName string) string {
	if tok := strings.TrimSpace(c.Cookies(cookieName)); tok != "" {
		return tok
	}
	parts := strings.SplitN(c.Get(fiber.HeaderAuthorization), " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}

// GetActor devuelve la identidad cargada por AuthMiddleware, o nil.
func GetActor(c *fiber.Ctx) *dto.Actor {
	a, _ := c.Locals(LocalActor).(*dto.Actor)
	return a
}
