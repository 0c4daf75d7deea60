package repository

import "github.com/dparedes/sial-api/internal/domain/entity"

// DespachoRepository define el puerto de persistencia de despachos.
// Los métodos de escritura se usan dentro de transacciones (TxRunner) para
// garantizar el todo-o-nada del flujo.
type DespachoRepository interface {
	// Crear inserta la cabecera y devuelve el id asignado.
	Crear(d *entity.Despacho) (int, error)
	// CrearRenglon inserta una línea del despacho y devuelve su id.
	CrearRenglon(r *entity.DespachoRenglon) (int, error)
	// CrearDespachoSerial inserta una fila de peso para despachos líquidos.
	CrearDespachoSerial(ds *entity.DespachoSerial) error
	// ActualizarCabecera persiste solo los campos de cabecera (los renglones no se reescriben).
	ActualizarCabecera(d *entity.Despacho) error
	Eliminar(id int) error
	EliminarVarios(ids []int) error
	// LimpiarFechaEliminacion revierte la eliminación suave de la cabecera.
	LimpiarFechaEliminacion(id int) error
	// ObtenerPorID devuelve la cabecera, o nil si no existe.
	ObtenerPorID(id int) (*entity.Despacho, error)
	// ObtenerDetalle devuelve el despacho con destinatario, personal y
	// renglones (seriales incluidos), o nil si no existe.
	ObtenerDetalle(id int) (*entity.DespachoDetalle, error)
	// ListarPorServicio devuelve los despachos del servicio con sus relaciones,
	// ordenados por última actualización descendente.
	ListarPorServicio(servicio string) ([]entity.DespachoDetalle, error)
}
