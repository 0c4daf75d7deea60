package http_test

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dparedes/sial-api/internal/domain/entity"
	apphttp "github.com/dparedes/sial-api/internal/interfaces/http"
	pkgjwt "github.com/dparedes/sial-api/pkg/jwt"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

const (
	testJWTSecret = "test-secret-key-for-unit-tests"
	testCedula    = "12345678"
	testRol       = "Administrador"
	testIssuer    = "sial-api-test"
	testExpMin    = 60
)

// fakeSesiones implementa SesionProvider sobre un mapa en memoria.
type fakeSesiones struct {
	sesiones map[string]*entity.Sesion
}

func (f *fakeSesiones) Sesion(cedula string) (*entity.Sesion, error) {
	return f.sesiones[cedula], nil
}

// buildTestApp construye una aplicación Fiber mínima con:
//   - AuthMiddleware para parsear el JWT y cargar cédula y rol
//   - SesionMiddleware para resolver la sesión con permisos
//   - Un handler dummy que devuelve 200 si pasa los middlewares
func buildTestApp(provider apphttp.SesionProvider) *fiber.App {
	app := fiber.New(fiber.Config{
		// Silenciar errores internos en los tests
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
		},
	})
	app.Get("/protected",
		apphttp.AuthMiddleware(testJWTSecret),
		apphttp.SesionMiddleware(provider),
		func(c *fiber.Ctx) error {
			sesion := apphttp.GetSesion(c)
			return c.Status(fiber.StatusOK).JSON(fiber.Map{
				"ok":       true,
				"cedula":   sesion.Cedula,
				"rol":      sesion.Rol,
				"permisos": sesion.Permisos,
			})
		},
	)
	return app
}

// sesionesDe registra una sesión de prueba para testCedula.
func sesionesDe(permisos ...string) *fakeSesiones {
	return &fakeSesiones{sesiones: map[string]*entity.Sesion{
		testCedula: {Cedula: testCedula, Nombre: "Pedro Pérez", Rol: testRol, Permisos: permisos},
	}}
}

// tokenPara genera un JWT para la cédula indicada.
func tokenPara(t *testing.T, cedula string) string {
	t.Helper()
	tok, err := pkgjwt.Generate(testJWTSecret, cedula, testRol, testIssuer, testExpMin)
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
// Tests AuthMiddleware + SesionMiddleware
// ──────────────────────────────────────────────────────────────────────────────

// Caso 1: Token válido y usuario existente → debe pasar (HTTP 200) con la
// sesión resuelta en el contexto.
func TestSesionMiddleware_UsuarioValidoAccede(t *testing.T) {
	app := buildTestApp(sesionesDe("TODAS"))
	resp := doRequest(t, app, tokenPara(t, testCedula))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode,
		"un usuario registrado con token válido debe acceder")

	var body map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, true, body["ok"])
	assert.Equal(t, testCedula, body["cedula"])
	assert.Equal(t, testRol, body["rol"])
}

// Caso 2: Token válido pero la cédula ya no existe en la base → HTTP 401.
func TestSesionMiddleware_UsuarioBorrado_Retorna401(t *testing.T) {
	app := buildTestApp(&fakeSesiones{sesiones: map[string]*entity.Sesion{}})
	resp := doRequest(t, app, tokenPara(t, testCedula))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode,
		"un token de un usuario borrado no debe dar acceso")

	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), "UNAUTHORIZED")
}

// Caso 3: Sin header Authorization → HTTP 401 MISSING_TOKEN.
func TestAuthMiddleware_SinAuthHeader_Retorna401(t *testing.T) {
	app := buildTestApp(sesionesDe("TODAS"))
	resp := doRequest(t, app, "") // sin header
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), "MISSING_TOKEN")
}

// Caso 4: Header sin esquema Bearer → HTTP 401 INVALID_TOKEN.
func TestAuthMiddleware_EsquemaIncorrecto_Retorna401(t *testing.T) {
	app := buildTestApp(sesionesDe("TODAS"))
	resp := doRequest(t, app, "Basic dXN1YXJpbzpjbGF2ZQ==")
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

// Caso 5: Token inválido / malformado → HTTP 401 INVALID_TOKEN.
func TestAuthMiddleware_TokenInvalido_Retorna401(t *testing.T) {
	app := buildTestApp(sesionesDe("TODAS"))
	resp := doRequest(t, app, "Bearer token.invalido.aqui")
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), "INVALID_TOKEN")
}

// Caso 6: Los permisos de la sesión llegan al handler tal como los devuelve
// el provider.
func TestSesionMiddleware_PermisosLleganAlHandler(t *testing.T) {
	app := buildTestApp(sesionesDe("DESPACHOS_ABASTECIMIENTO:CREAR", "INVENTARIO_ARMAMENTO:ACTUALIZAR"))
	resp := doRequest(t, app, tokenPara(t, testCedula))
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body struct {
		Permisos []string `json:"permisos"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, []string{"DESPACHOS_ABASTECIMIENTO:CREAR", "INVENTARIO_ARMAMENTO:ACTUALIZAR"}, body.Permisos)
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests JWT pkg — integridad del generate/parse
// ──────────────────────────────────────────────────────────────────────────────

func TestJWT_GenerateAndParse(t *testing.T) {
	tok, err := pkgjwt.Generate(testJWTSecret, testCedula, testRol, testIssuer, testExpMin)
	require.NoError(t, err)
	require.NotEmpty(t, tok)

	cedula, rol, err := pkgjwt.Parse(testJWTSecret, tok)
	require.NoError(t, err)

	assert.Equal(t, testCedula, cedula)
	assert.Equal(t, testRol, rol)
}

func TestJWT_TokenExpirado_RetornaError(t *testing.T) {
	// Token con expiración -1 minuto (ya expirado)
	tok, err := pkgjwt.Generate(testJWTSecret, testCedula, testRol, testIssuer, -1)
	require.NoError(t, err)

	_, _, err = pkgjwt.Parse(testJWTSecret, tok)
	assert.Error(t, err, "token expirado debe retornar error")
}

func TestJWT_SecretIncorrecto_RetornaError(t *testing.T) {
	tok, err := pkgjwt.Generate(testJWTSecret, testCedula, testRol, testIssuer, testExpMin)
	require.NoError(t, err)

	_, _, err = pkgjwt.Parse("otro-secret-completamente-distinto", tok)
	assert.Error(t, err, "secret incorrecto debe invalidar el token")
}
