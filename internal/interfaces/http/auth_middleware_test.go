package http_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/imprentacamiri/imprenta-api/internal/domain/entity"
	"github.com/imprentacamiri/imprenta-api/internal/infrastructure/memory"
	apphttp "github.com/imprentacamiri/imprenta-api/internal/interfaces/http"
	pkgjwt "github.com/imprentacamiri/imprenta-api/pkg/jwt"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

const (
	testJWTSecret = "test-secret-key-for-unit-tests"
	testIssuer    = "imprenta-api-test"
	testExpMin    = 60
)

// seedUser guarda un usuario con el rol indicado en el repositorio en memoria.
func seedUser(t *testing.T, repo *memory.UserRepository, id, email, role string) *entity.User {
	t.Helper()
	now := time.Now()
	u := &entity.User{
		ID: id, Name: "Usuario " + id, Email: email, PasswordHash: "x", Role: role,
		CreatedAt: now, UpdatedAt: now,
	}
	require.NoError(t, repo.Create(context.Background(), u))
	return u
}

// buildTestApp construye una aplicación Fiber mínima con:
//   - AuthMiddleware para verificar el JWT y recargar el usuario
//   - RequireRole para autorizar el acceso
//   - Un handler dummy que devuelve 200 si pasa los middlewares
func buildTestApp(users *memory.UserRepository, allowedRoles ...string) *fiber.App {
	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
		},
	})
	app.Get("/protected",
		apphttp.AuthMiddleware(testJWTSecret, users),
		apphttp.RequireRole(allowedRoles...),
		func(c *fiber.Ctx) error {
			return c.Status(fiber.StatusOK).JSON(fiber.Map{
				"ok":   true,
				"role": apphttp.GetRole(c),
			})
		},
	)
	return app
}

// tokenFor genera un JWT para el usuario con el rol indicado en el claim.
func tokenFor(t *testing.T, userID, role string) string {
	t.Helper()
	tok, err := pkgjwt.Generate(testJWTSecret, userID, userID+"@gmail.com", role, testIssuer, testExpMin)
	require.NoError(t, err, "debe generarse un token JWT válido")
	return "Bearer " + tok
}

// doRequest lanza una petición GET /protected y devuelve la respuesta.
func doRequest(t *testing.T, app *fiber.App, authHeader string) *http.Response {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests RequireRole
// ──────────────────────────────────────────────────────────────────────────────

func TestRequireRole_AdminAccedeRutaAdmin(t *testing.T) {
	users := memory.NewUserRepository(memory.NewStore())
	seedUser(t, users, "u-admin", "admin@gmail.com", entity.RoleAdmin)
	app := buildTestApp(users, entity.RoleAdmin)

	resp := doRequest(t, app, tokenFor(t, "u-admin", entity.RoleAdmin))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode,
		"admin debe poder acceder a ruta restringida a admin")

	var body map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, true, body["ok"])
	assert.Equal(t, "admin", body["role"])
}

func TestRequireRole_UsuarioAccedeRutaMultiRol(t *testing.T) {
	users := memory.NewUserRepository(memory.NewStore())
	seedUser(t, users, "u-1", "u1@gmail.com", entity.RoleUsuario)
	app := buildTestApp(users, entity.RoleAdmin, entity.RoleUsuario)

	resp := doRequest(t, app, tokenFor(t, "u-1", entity.RoleUsuario))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestRequireRole_UsuarioBloqueadoEnRutaAdmin(t *testing.T) {
	users := memory.NewUserRepository(memory.NewStore())
	seedUser(t, users, "u-1", "u1@gmail.com", entity.RoleUsuario)
	app := buildTestApp(users, entity.RoleAdmin)

	resp := doRequest(t, app, tokenFor(t, "u-1", entity.RoleUsuario))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), "FORBIDDEN")
}

// El rol del token no cuenta: manda el almacenado.
func TestRequireRole_RolDelTokenNoEscalaPrivilegios(t *testing.T) {
	users := memory.NewUserRepository(memory.NewStore())
	seedUser(t, users, "u-1", "u1@gmail.com", entity.RoleUsuario)
	app := buildTestApp(users, entity.RoleAdmin)

	resp := doRequest(t, app, tokenFor(t, "u-1", entity.RoleAdmin))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusForbidden, resp.StatusCode,
		"un token que dice admin no debe valer si el usuario almacenado es usuario")
}

func TestRequireRole_UsuarioSinRol_Retorna401(t *testing.T) {
	users := memory.NewUserRepository(memory.NewStore())
	seedUser(t, users, "u-legacy", "legacy@gmail.com", "")
	app := buildTestApp(users, entity.RoleAdmin)

	resp := doRequest(t, app, tokenFor(t, "u-legacy", ""))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), "MISSING_ROLE")
}

func TestRequireRole_SinAuthHeader_Retorna401(t *testing.T) {
	app := buildTestApp(memory.NewUserRepository(memory.NewStore()), entity.RoleAdmin)
	resp := doRequest(t, app, "")
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), "MISSING_TOKEN")
}

func TestRequireRole_TokenInvalido_Retorna401(t *testing.T) {
	app := buildTestApp(memory.NewUserRepository(memory.NewStore()), entity.RoleAdmin)
	resp := doRequest(t, app, "Bearer token.invalido.aqui")
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), "INVALID_TOKEN")
}

func TestAuthMiddleware_FormatoSinBearer_Retorna401(t *testing.T) {
	app := buildTestApp(memory.NewUserRepository(memory.NewStore()), entity.RoleAdmin)
	resp := doRequest(t, app, "Token abc")
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestAuthMiddleware_UsuarioBorrado_Retorna401(t *testing.T) {
	users := memory.NewUserRepository(memory.NewStore())
	seedUser(t, users, "u-1", "u1@gmail.com", entity.RoleAdmin)
	app := buildTestApp(users, entity.RoleAdmin)
	header := tokenFor(t, "u-1", entity.RoleAdmin)

	require.NoError(t, users.Delete(context.Background(), "u-1"))

	resp := doRequest(t, app, header)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), "INVALID_SESSION")
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests AuthMiddleware / OptionalAuth, sesión en locals
// ──────────────────────────────────────────────────────────────────────────────

func TestAuthMiddleware_CargaSesionDelAlmacen(t *testing.T) {
	users := memory.NewUserRepository(memory.NewStore())
	seedUser(t, users, "u-1", "ana@gmail.com", entity.RoleUsuario)

	app := fiber.New()
	app.Get("/me", apphttp.AuthMiddleware(testJWTSecret, users), func(c *fiber.Ctx) error {
		s := apphttp.GetSession(c)
		return c.JSON(fiber.Map{
			"user_id": apphttp.GetUserID(c),
			"email":   s.Email,
			"role":    apphttp.GetRole(c),
		})
	})

	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Authorization", tokenFor(t, "u-1", entity.RoleAdmin))
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	var body map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "u-1", body["user_id"])
	assert.Equal(t, "ana@gmail.com", body["email"])
	assert.Equal(t, entity.RoleUsuario, body["role"])
}

func TestOptionalAuth_SinTokenPasaAnonimo(t *testing.T) {
	users := memory.NewUserRepository(memory.NewStore())
	app := fiber.New()
	app.Get("/opt", apphttp.OptionalAuth(testJWTSecret, users), func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"anonimo": apphttp.GetSession(c) == nil})
	})

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/opt", nil), -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	var body map[string]bool
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.True(t, body["anonimo"])

	req := httptest.NewRequest(http.MethodGet, "/opt", nil)
	req.Header.Set("Authorization", "Bearer basura")
	resp2, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp2.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp2.StatusCode, "un token inválido no se ignora")
}
