package http

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/dparedes/sial-api/internal/application/auditoria"
	"github.com/dparedes/sial-api/internal/application/dto"
	"github.com/dparedes/sial-api/internal/domain"
)

// AuditoriaHandler expone el historial de auditoría (protegido, solo lectura).
type AuditoriaHandler struct {
	uc *auditoria.UseCase
}

// NewAuditoriaHandler construye el handler.
func NewAuditoriaHandler(uc *auditoria.UseCase) *AuditoriaHandler {
	return &AuditoriaHandler{uc: uc}
}

// Listar godoc
// @Summary      Listar entradas del historial de auditoría
// @Tags         auditoria
// @Security     Bearer
// @Produce      json
// @Param        desde   query  string  false  "Fecha inicial (RFC 3339)"
// @Param        hasta   query  string  false  "Fecha final (RFC 3339)"
// @Param        limit   query  int     false  "Límite"  default(50)
// @Param        offset  query  int     false  "Offset"  default(0)
// @Success      200  {array}  entity.Auditoria
// @Router       /api/auditoria [get]
func (h *AuditoriaHandler) Listar(c *fiber.Ctx) error {
	desde, err := fechaQuery(c, "desde")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "desde debe ser RFC 3339", Field: "desde"})
	}
	hasta, err := fechaQuery(c, "hasta")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "hasta debe ser RFC 3339", Field: "hasta"})
	}
	limit := c.QueryInt("limit", 50)
	offset := c.QueryInt("offset", 0)

	out, err := h.uc.ListarPorRango(GetSesion(c), desde, hasta, limit, offset)
	if err != nil {
		if errors.Is(err, domain.ErrUnauthorized) {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "sesión requerida"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}

// fechaQuery parsea un query param RFC 3339 opcional; nil si está ausente.
func fechaQuery(c *fiber.Ctx, clave string) (*time.Time, error) {
	raw := c.Query(clave)
	if raw == "" {
		return nil, nil
	}
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
