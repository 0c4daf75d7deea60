package repository

import "github.com/dparedes/sial-api/internal/domain/entity"

// RenglonRepository define el puerto para la ficha maestra de inventario
// y sus catálogos (unidades de empaque, clasificaciones, subsistemas).
type RenglonRepository interface {
	Crear(r *entity.Renglon) (int, error)
	Actualizar(r *entity.Renglon) error
	Eliminar(id int) error
	// ObtenerPorID devuelve el renglón, o nil si no existe.
	ObtenerPorID(id int) (*entity.Renglon, error)
	Listar() ([]entity.Renglon, error)
	// DescontarStock / IncrementarStock mantienen el contador derivado
	// stock_actual en sincronía con los despachos.
	DescontarStock(id, cantidad int) error
	IncrementarStock(id, cantidad int) error

	ObtenerUnidadEmpaque(id int) (*entity.UnidadEmpaque, error)
	ListarClasificaciones() ([]entity.Clasificacion, error)
	CrearClasificacion(c *entity.Clasificacion) (int, error)
	ListarSubsistemas() ([]entity.Subsistema, error)
	CrearSubsistema(s *entity.Subsistema) (int, error)
}
