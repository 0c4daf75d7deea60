package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/dparedes/sial-api/internal/application/auditoria"
	"github.com/dparedes/sial-api/internal/application/auth"
	"github.com/dparedes/sial-api/internal/application/despacho"
	"github.com/dparedes/sial-api/internal/application/renglon"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC      *auth.UseCase
	DespachoUC  *despacho.UseCase
	RenglonUC   *renglon.UseCase
	AuditoriaUC *auditoria.UseCase
	JWTSecret   string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/registro", authHandler.Registro)
	authGroup.Post("/login", authHandler.Login)

	// Rutas protegidas (Bearer Token + sesión con permisos resuelta)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret), SesionMiddleware(deps.AuthUC))

	// Despachos. Las rutas fijas van antes de /:servicio para que Fiber no
	// las capture como nombre de servicio.
	despachos := protected.Group("/despachos")
	despachoHandler := NewDespachoHandler(deps.DespachoUC)
	despachos.Post("/eliminar-varios", despachoHandler.EliminarVarios)
	despachos.Get("/detalle/:id", despachoHandler.Detalle)
	despachos.Get("/detalle/:id/guia", despachoHandler.Guia)
	despachos.Get("/detalle/:id/guia/pdf", despachoHandler.GuiaPDF)
	despachos.Get("/:servicio", despachoHandler.Listar)
	despachos.Post("/:servicio", despachoHandler.Crear)
	despachos.Put("/:servicio/:id", despachoHandler.Actualizar)
	despachos.Delete("/:servicio/:id", despachoHandler.Eliminar)
	despachos.Patch("/:servicio/:id/recuperar", despachoHandler.Recuperar)

	// Renglones de inventario
	renglones := protected.Group("/renglones")
	renglonHandler := NewRenglonHandler(deps.RenglonUC)
	renglones.Get("/", renglonHandler.Listar)
	renglones.Get("/detalle/:id", renglonHandler.Obtener)
	renglones.Get("/detalle/:id/seriales", renglonHandler.Seriales)
	renglones.Post("/:servicio", renglonHandler.Crear)
	renglones.Put("/:servicio/:id", renglonHandler.Actualizar)
	renglones.Delete("/:servicio/:id", renglonHandler.Eliminar)

	// Catálogos
	clasificaciones := protected.Group("/clasificaciones")
	clasificaciones.Get("/", renglonHandler.Clasificaciones)
	clasificaciones.Post("/:servicio", renglonHandler.CrearClasificacion)

	subsistemas := protected.Group("/subsistemas")
	subsistemas.Get("/", renglonHandler.Subsistemas)
	subsistemas.Post("/:servicio", renglonHandler.CrearSubsistema)

	// Auditoría
	auditoriaHandler := NewAuditoriaHandler(deps.AuditoriaUC)
	protected.Get("/auditoria", auditoriaHandler.Listar)

	// Usuarios
	protected.Get("/usuarios", authHandler.Usuarios)
}
