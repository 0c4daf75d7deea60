package despacho

import (
	"context"

	"github.com/dparedes/sial-api/internal/application/dto"
	"github.com/dparedes/sial-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando
// repositorios atados a esa tx. Garantiza el todo-o-nada del flujo de despachos.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		despachoRepo repository.DespachoRepository,
		serialRepo repository.SerialRepository,
		renglonRepo repository.RenglonRepository,
	) error) error
}

// Auditor registra acciones en el historial de auditoría. Se invoca después
// del commit; su fallo nunca revierte ni reporta como fallida la operación.
type Auditor interface {
	Registrar(cedulaUsuario, accion, descripcion string) error
}

// ListadoCache guarda el listado proyectado de despachos por servicio.
// Toda mutación del flujo invalida la entrada del servicio afectado.
type ListadoCache interface {
	Obtener(servicio string) ([]dto.DespachoDetalleResponse, bool)
	Guardar(servicio string, despachos []dto.DespachoDetalleResponse)
	Invalidar(servicio string)
}

// GuiaPDFGenerator genera el documento imprimible de la guía de despacho.
type GuiaPDFGenerator interface {
	GenerarGuiaPDF(ctx context.Context, guia *dto.GuiaDespacho) ([]byte, error)
}
