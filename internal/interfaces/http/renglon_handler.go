package http

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/dparedes/sial-api/internal/application/dto"
	"github.com/dparedes/sial-api/internal/application/renglon"
	"github.com/dparedes/sial-api/internal/domain"
)

// RenglonHandler maneja el catálogo de renglones de inventario (protegido).
type RenglonHandler struct {
	uc *renglon.UseCase
}

// NewRenglonHandler construye el handler.
func NewRenglonHandler(uc *renglon.UseCase) *RenglonHandler {
	return &RenglonHandler{uc: uc}
}

// errorRenglon mapea los errores de dominio del catálogo al status HTTP.
func errorRenglon(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, domain.ErrUnauthorized):
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "sesión requerida"})
	case errors.Is(err, domain.ErrForbidden):
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: "no tienes permisos para esta acción"})
	case errors.Is(err, domain.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "renglón no encontrado"})
	case errors.Is(err, domain.ErrInvalidInput):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "nombre es requerido"})
	case errors.Is(err, domain.ErrDuplicate):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "DUPLICATE", Message: "el nombre ya existe"})
	}
	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
}

// Listar godoc
// @Summary      Listar renglones
// @Tags         renglones
// @Security     Bearer
// @Produce      json
// @Param        filtro  query  string  false  "Búsqueda por nombre o descripción (ignora acentos)"
// @Success      200  {array}  entity.Renglon
// @Router       /api/renglones [get]
func (h *RenglonHandler) Listar(c *fiber.Ctx) error {
	out, err := h.uc.Listar(GetSesion(c), c.Query("filtro"))
	if err != nil {
		return errorRenglon(c, err)
	}
	return c.JSON(out)
}

// Obtener godoc
// @Summary      Obtener renglón por ID
// @Tags         renglones
// @Security     Bearer
// @Produce      json
// @Param        id  path  int  true  "ID del renglón"
// @Success      200  {object}  entity.Renglon
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/renglones/detalle/{id} [get]
func (h *RenglonHandler) Obtener(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "id inválido"})
	}
	out, err := h.uc.ObtenerPorID(GetSesion(c), id)
	if err != nil {
		return errorRenglon(c, err)
	}
	return c.JSON(out)
}

// Seriales godoc
// @Summary      Listar seriales de un renglón
// @Tags         renglones
// @Security     Bearer
// @Produce      json
// @Param        id       path   int     true   "ID del renglón"
// @Param        estados  query  string  false  "Estados separados por coma (Disponible,Despachado,Devuelto)"
// @Success      200  {array}  entity.Serial
// @Router       /api/renglones/detalle/{id}/seriales [get]
func (h *RenglonHandler) Seriales(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "id inválido"})
	}
	var estados []string
	if q := c.Query("estados"); q != "" {
		estados = strings.Split(q, ",")
	}
	out, err := h.uc.ListarSeriales(GetSesion(c), id, estados)
	if err != nil {
		return errorRenglon(c, err)
	}
	return c.JSON(out)
}

// Crear godoc
// @Summary      Crear renglón
// @Tags         renglones
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        servicio  path  string  true  "abastecimiento | armamento"
// @Param        body  body  dto.RenglonRequest  true  "Datos del renglón"
// @Success      201   {object}  entity.Renglon
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/renglones/{servicio} [post]
func (h *RenglonHandler) Crear(c *fiber.Ctx) error {
	servicio := servicioDesde(c)
	if servicio == "" {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "UNKNOWN_SERVICE", Message: "servicio desconocido"})
	}
	var in dto.RenglonRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.Crear(GetSesion(c), servicio, &in)
	if err != nil {
		return errorRenglon(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Actualizar godoc
// @Summary      Actualizar renglón
// @Tags         renglones
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        servicio  path  string  true  "abastecimiento | armamento"
// @Param        id    path  int  true  "ID del renglón"
// @Param        body  body  dto.RenglonRequest  true  "Datos a actualizar"
// @Success      200   {object}  entity.Renglon
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/renglones/{servicio}/{id} [put]
func (h *RenglonHandler) Actualizar(c *fiber.Ctx) error {
	servicio := servicioDesde(c)
	if servicio == "" {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "UNKNOWN_SERVICE", Message: "servicio desconocido"})
	}
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "id inválido"})
	}
	var in dto.RenglonRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.Actualizar(GetSesion(c), servicio, id, &in)
	if err != nil {
		return errorRenglon(c, err)
	}
	return c.JSON(out)
}

// Eliminar godoc
// @Summary      Eliminar renglón
// @Tags         renglones
// @Security     Bearer
// @Produce      json
// @Param        servicio  path  string  true  "abastecimiento | armamento"
// @Param        id  path  int  true  "ID del renglón"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/renglones/{servicio}/{id} [delete]
func (h *RenglonHandler) Eliminar(c *fiber.Ctx) error {
	servicio := servicioDesde(c)
	if servicio == "" {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "UNKNOWN_SERVICE", Message: "servicio desconocido"})
	}
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "id inválido"})
	}
	if err := h.uc.Eliminar(GetSesion(c), servicio, id); err != nil {
		return errorRenglon(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Clasificaciones godoc
// @Summary      Listar clasificaciones
// @Tags         catalogos
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  entity.Clasificacion
// @Router       /api/clasificaciones [get]
func (h *RenglonHandler) Clasificaciones(c *fiber.Ctx) error {
	out, err := h.uc.ListarClasificaciones(GetSesion(c))
	if err != nil {
		return errorRenglon(c, err)
	}
	return c.JSON(out)
}

// CrearClasificacion godoc
// @Summary      Crear clasificación
// @Tags         catalogos
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        servicio  path  string  true  "abastecimiento | armamento"
// @Param        body  body  dto.ClasificacionRequest  true  "Datos"
// @Success      201   {object}  entity.Clasificacion
// @Router       /api/clasificaciones/{servicio} [post]
func (h *RenglonHandler) CrearClasificacion(c *fiber.Ctx) error {
	servicio := servicioDesde(c)
	if servicio == "" {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "UNKNOWN_SERVICE", Message: "servicio desconocido"})
	}
	var in dto.ClasificacionRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.CrearClasificacion(GetSesion(c), servicio, &in)
	if err != nil {
		return errorRenglon(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Subsistemas godoc
// @Summary      Listar subsistemas
// @Tags         catalogos
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  entity.Subsistema
// @Router       /api/subsistemas [get]
func (h *RenglonHandler) Subsistemas(c *fiber.Ctx) error {
	out, err := h.uc.ListarSubsistemas(GetSesion(c))
	if err != nil {
		return errorRenglon(c, err)
	}
	return c.JSON(out)
}

// CrearSubsistema godoc
// @Summary      Crear subsistema
// @Tags         catalogos
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        servicio  path  string  true  "abastecimiento | armamento"
// @Param        body  body  dto.SubsistemaRequest  true  "Datos"
// @Success      201   {object}  entity.Subsistema
// @Router       /api/subsistemas/{servicio} [post]
func (h *RenglonHandler) CrearSubsistema(c *fiber.Ctx) error {
	servicio := servicioDesde(c)
	if servicio == "" {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "UNKNOWN_SERVICE", Message: "servicio desconocido"})
	}
	var in dto.SubsistemaRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.CrearSubsistema(GetSesion(c), servicio, &in)
	if err != nil {
		return errorRenglon(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}
