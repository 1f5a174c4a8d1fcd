package http_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/stockpro/internal/application/dto"
	apphttp "github.com/jhoicas/stockpro/internal/interfaces/http"
	pkgjwt "github.com/jhoicas/stockpro/pkg/jwt"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

// jwtSessions valida tokens con la misma clave que los tests.
type jwtSessions struct{}

func (jwtSessions) ValidateSession(token string) (*dto.Actor, error) {
	id, err := pkgjwt.Parse(testJWTSecret, token)
	if err != nil {
		return nil, err
	}
	return &dto.Actor{UserID: id.UserID, Name: id.Name, Email: id.Email}, nil
}

// buildMiddlewareApp aplicación mínima con AuthMiddleware y un handler que devuelve el actor.
func buildMiddlewareApp() *fiber.App {
	app := fiber.New()
	app.Get("/protected", apphttp.AuthMiddleware(jwtSessions{}, testSession), func(c *fiber.Ctx) error {
		a := apphttp.GetActor(c)
		return c.JSON(fiber.Map{"user_id": a.UserID, "email": a.Email})
	})
	return app
}

func validToken(t *testing.T) string {
	t.Helper()
	tok, err := pkgjwt.Generate(testJWTSecret, testUserID, "Ana", "ana@example.com", testIssuer, 60)
	require.NoError(t, err, "debe generarse un token JWT válido")
	return tok
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests AuthMiddleware
// ──────────────────────────────────────────────────────────────────────────────

func TestAuthMiddleware_SinSesion_API_Retorna401ConRedireccion(t *testing.T) {
	app := buildMiddlewareApp()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set(fiber.HeaderAccept, fiber.MIMEApplicationJSON)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	var body dto.ActionResult
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.False(t, body.Success)
	assert.Equal(t, "/connexion", body.Redirect)
	require.NotNil(t, body.Error)
	assert.Equal(t, dto.KindUnauthenticated, body.Error.Kind)
}

func TestAuthMiddleware_SinSesion_Navegador_Redirige303(t *testing.T) {
	app := buildMiddlewareApp()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set(fiber.HeaderAccept, "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusSeeOther, resp.StatusCode)
	assert.Equal(t, "/connexion", resp.Header.Get(fiber.HeaderLocation))
}

func TestAuthMiddleware_BearerValido(t *testing.T) {
	app := buildMiddlewareApp()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set(fiber.HeaderAuthorization, "Bearer "+validToken(t))
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	var body map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, testUserID, body["user_id"])
	assert.Equal(t, "ana@example.com", body["email"])
}

func TestAuthMiddleware_CookieValida(t *testing.T) {
	app := buildMiddlewareApp()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.AddCookie(&http.Cookie{Name: testSession.CookieName, Value: validToken(t)})
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestAuthMiddleware_TokenInvalido_Retorna401(t *testing.T) {
	app := buildMiddlewareApp()
	for _, header := range []string{"Bearer token.invalido.aqui", "Basic abc", "Bearer "} {
		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		req.Header.Set(fiber.HeaderAuthorization, header)
		resp, err := app.Test(req, -1)
		require.NoError(t, err)
		resp.Body.Close()
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode, header)
	}
}

func TestAuthMiddleware_TokenExpirado_Retorna401(t *testing.T) {
	tok, err := pkgjwt.Generate(testJWTSecret, testUserID, "Ana", "ana@example.com", testIssuer, -1)
	require.NoError(t, err)

	app := buildMiddlewareApp()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set(fiber.HeaderAuthorization, "Bearer "+tok)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}
