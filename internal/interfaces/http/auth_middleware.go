package http

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/dparedes/sial-api/internal/application/dto"
	"github.com/dparedes/sial-api/internal/domain/entity"
	"github.com/dparedes/sial-api/pkg/jwt"
)

// Locals keys para la identidad del request en Fiber.
const (
	LocalCedula = "cedula"
	LocalRol    = "rol"
	LocalSesion = "sesion"
)

// SesionProvider resuelve la sesión completa (usuario + permisos) de una cédula.
// Lo satisface auth.UseCase.
type SesionProvider interface {
	Sesion(cedula string) (*entity.Sesion, error)
}

// AuthMiddleware valida el Bearer Token JWT y extrae cédula y rol a c.Locals.
func AuthMiddleware(jwtSecret string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "MISSING_TOKEN", Message: "Authorization header requerido"})
		}
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "INVALID_TOKEN", Message: "formato: Bearer <token>"})
		}
		tokenString := strings.TrimSpace(parts[1])
		if tokenString == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "MISSING_TOKEN", Message: "token vacío"})
		}
		cedula, rol, err := jwt.Parse(jwtSecret, tokenString)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "INVALID_TOKEN", Message: "token inválido o expirado"})
		}
		c.Locals(LocalCedula, cedula)
		c.Locals(LocalRol, rol)
		return c.Next()
	}
}

// SesionMiddleware resuelve la sesión (permisos incluidos) de la cédula ya
// autenticada y la deja en c.Locals. Corre después de AuthMiddleware.
func SesionMiddleware(provider SesionProvider) fiber.Handler {
	return func(c *fiber.Ctx) error {
		cedula := GetCedula(c)
		if cedula == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "cédula requerida"})
		}
		sesion, err := provider.Sesion(cedula)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
		}
		if sesion == nil {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "usuario no existe"})
		}
		c.Locals(LocalSesion, sesion)
		return c.Next()
	}
}

// GetCedula devuelve la cédula del contexto (después del middleware de auth).
func GetCedula(c *fiber.Ctx) string {
	v := c.Locals(LocalCedula)
	if v == nil {
		return ""
	}
	s, _ := v.(string)
	return s
}

// GetRol devuelve el rol del contexto (después del middleware de auth).
func GetRol(c *fiber.Ctx) string {
	v := c.Locals(LocalRol)
	if v == nil {
		return ""
	}
	s, _ := v.(string)
	return s
}

// GetSesion devuelve la sesión del contexto (después del middleware de sesión).
func GetSesion(c *fiber.Ctx) *entity.Sesion {
	v := c.Locals(LocalSesion)
	if v == nil {
		return nil
	}
	s, _ := v.(*entity.Sesion)
	return s
}
