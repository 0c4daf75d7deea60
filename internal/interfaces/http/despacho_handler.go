package http

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/dparedes/sial-api/internal/application/despacho"
	"github.com/dparedes/sial-api/internal/application/dto"
	"github.com/dparedes/sial-api/internal/domain"
	"github.com/dparedes/sial-api/internal/domain/entity"
)

// DespachoHandler maneja las peticiones HTTP del flujo de despachos (protegido).
type DespachoHandler struct {
	uc *despacho.UseCase
}

// NewDespachoHandler construye el handler.
func NewDespachoHandler(uc *despacho.UseCase) *DespachoHandler {
	return &DespachoHandler{uc: uc}
}

// servicioDesde mapea el path param al nombre canónico del servicio.
// Devuelve "" si el segmento no corresponde a ningún servicio.
func servicioDesde(c *fiber.Ctx) string {
	switch strings.ToLower(c.Params("servicio")) {
	case "abastecimiento":
		return entity.ServicioAbastecimiento
	case "armamento":
		return entity.ServicioArmamento
	}
	return ""
}

// statusDe traduce el código del resultado al status HTTP.
func statusDe(code string) int {
	switch code {
	case dto.CodeOK:
		return fiber.StatusOK
	case dto.CodeUnauthenticated:
		return fiber.StatusUnauthorized
	case dto.CodeForbidden:
		return fiber.StatusForbidden
	case dto.CodeNotFound:
		return fiber.StatusNotFound
	case dto.CodeValidation, dto.CodeSerialesInsuficientes:
		return fiber.StatusBadRequest
	}
	return fiber.StatusInternalServerError
}

// responder serializa un DespachoResult con su status.
func responder(c *fiber.Ctx, res *dto.DespachoResult) error {
	return c.Status(statusDe(res.Code)).JSON(res)
}

// Listar godoc
// @Summary      Listar despachos de un servicio
// @Tags         despachos
// @Security     Bearer
// @Produce      json
// @Param        servicio  path  string  true  "abastecimiento | armamento"
// @Success      200  {array}  dto.DespachoDetalleResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/despachos/{servicio} [get]
func (h *DespachoHandler) Listar(c *fiber.Ctx) error {
	servicio := servicioDesde(c)
	if servicio == "" {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "UNKNOWN_SERVICE", Message: "servicio desconocido"})
	}
	out, err := h.uc.ListarPorServicio(c.UserContext(), GetSesion(c), servicio)
	if err != nil {
		if errors.Is(err, domain.ErrUnauthorized) {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "sesión requerida"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}

// Crear godoc
// @Summary      Crear despacho
// @Tags         despachos
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        servicio  path  string  true  "abastecimiento | armamento"
// @Param        body  body  dto.DespachoRequest  true  "Formulario del despacho"
// @Success      201   {object}  dto.DespachoResult
// @Failure      400   {object}  dto.DespachoResult
// @Router       /api/despachos/{servicio} [post]
func (h *DespachoHandler) Crear(c *fiber.Ctx) error {
	servicio := servicioDesde(c)
	if servicio == "" {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "UNKNOWN_SERVICE", Message: "servicio desconocido"})
	}
	var in dto.DespachoRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	res, err := h.uc.Crear(c.UserContext(), GetSesion(c), servicio, &in)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	if res.Success {
		return c.Status(fiber.StatusCreated).JSON(res)
	}
	return responder(c, res)
}

// Actualizar godoc
// @Summary      Actualizar cabecera de un despacho
// @Tags         despachos
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        servicio  path  string  true  "abastecimiento | armamento"
// @Param        id    path  int  true  "ID del despacho"
// @Param        body  body  dto.DespachoRequest  true  "Formulario del despacho"
// @Success      200   {object}  dto.DespachoResult
// @Failure      404   {object}  dto.DespachoResult
// @Router       /api/despachos/{servicio}/{id} [put]
func (h *DespachoHandler) Actualizar(c *fiber.Ctx) error {
	servicio := servicioDesde(c)
	if servicio == "" {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "UNKNOWN_SERVICE", Message: "servicio desconocido"})
	}
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "id inválido"})
	}
	var in dto.DespachoRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	res, err := h.uc.Actualizar(c.UserContext(), GetSesion(c), servicio, id, &in)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return responder(c, res)
}

// Eliminar godoc
// @Summary      Eliminar (suave) un despacho
// @Tags         despachos
// @Security     Bearer
// @Produce      json
// @Param        servicio  path  string  true  "abastecimiento | armamento"
// @Param        id  path  int  true  "ID del despacho"
// @Success      200  {object}  dto.DespachoResult
// @Failure      404  {object}  dto.DespachoResult
// @Router       /api/despachos/{servicio}/{id} [delete]
func (h *DespachoHandler) Eliminar(c *fiber.Ctx) error {
	servicio := servicioDesde(c)
	if servicio == "" {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "UNKNOWN_SERVICE", Message: "servicio desconocido"})
	}
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "id inválido"})
	}
	res, err := h.uc.Eliminar(c.UserContext(), GetSesion(c), servicio, id)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return responder(c, res)
}

// Recuperar godoc
// @Summary      Recuperar un despacho eliminado
// @Tags         despachos
// @Security     Bearer
// @Produce      json
// @Param        servicio  path  string  true  "abastecimiento | armamento"
// @Param        id  path  int  true  "ID del despacho"
// @Success      200  {object}  dto.DespachoResult
// @Failure      404  {object}  dto.DespachoResult
// @Router       /api/despachos/{servicio}/{id}/recuperar [patch]
func (h *DespachoHandler) Recuperar(c *fiber.Ctx) error {
	servicio := servicioDesde(c)
	if servicio == "" {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "UNKNOWN_SERVICE", Message: "servicio desconocido"})
	}
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "id inválido"})
	}
	res, err := h.uc.Recuperar(c.UserContext(), GetSesion(c), servicio, id)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return responder(c, res)
}

// EliminarVarios godoc
// @Summary      Eliminar despachos de abastecimiento en bloque
// @Tags         despachos
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  object{ids=[]int}  true  "IDs a eliminar"
// @Success      200   {object}  dto.DespachoResult
// @Failure      400   {object}  dto.DespachoResult
// @Router       /api/despachos/eliminar-varios [post]
func (h *DespachoHandler) EliminarVarios(c *fiber.Ctx) error {
	var in struct {
		IDs []int `json:"ids"`
	}
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	res, err := h.uc.EliminarVarios(c.UserContext(), GetSesion(c), in.IDs)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return responder(c, res)
}

// Detalle godoc
// @Summary      Detalle de un despacho
// @Tags         despachos
// @Security     Bearer
// @Produce      json
// @Param        id  path  int  true  "ID del despacho"
// @Success      200  {object}  dto.DespachoDetalleResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/despachos/detalle/{id} [get]
func (h *DespachoHandler) Detalle(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "id inválido"})
	}
	out, err := h.uc.ObtenerPorID(c.UserContext(), GetSesion(c), id)
	if err != nil {
		return h.errorLectura(c, err)
	}
	return c.JSON(out)
}

// Guia godoc
// @Summary      Guía de despacho (datos)
// @Tags         despachos
// @Security     Bearer
// @Produce      json
// @Param        id  path  int  true  "ID del despacho"
// @Success      200  {object}  dto.GuiaDespacho
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/despachos/detalle/{id}/guia [get]
func (h *DespachoHandler) Guia(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "id inválido"})
	}
	out, err := h.uc.ObtenerGuia(c.UserContext(), GetSesion(c), id)
	if err != nil {
		return h.errorLectura(c, err)
	}
	return c.JSON(out)
}

// GuiaPDF godoc
// @Summary      Guía de despacho (PDF)
// @Tags         despachos
// @Security     Bearer
// @Produce      application/pdf
// @Param        id  path  int  true  "ID del despacho"
// @Success      200  {file}  binary
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/despachos/detalle/{id}/guia/pdf [get]
func (h *DespachoHandler) GuiaPDF(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "id inválido"})
	}
	pdf, err := h.uc.GuiaPDF(c.UserContext(), GetSesion(c), id)
	if err != nil {
		return h.errorLectura(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+despacho.CodigoGuia(id)+`.pdf"`)
	return c.Send(pdf)
}

func (h *DespachoHandler) errorLectura(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, domain.ErrUnauthorized):
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "sesión requerida"})
	case errors.Is(err, domain.ErrDespachoNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "despacho no existe"})
	}
	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
}
