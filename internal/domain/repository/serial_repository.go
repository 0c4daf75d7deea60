package repository

import (
	"github.com/shopspring/decimal"

	"github.com/dparedes/sial-api/internal/domain/entity"
)

// SerialRepository define el puerto para consultar y mutar seriales.
type SerialRepository interface {
	// ListarPorRenglonYEstados devuelve hasta limite seriales del renglón en
	// alguno de los estados dados (limite <= 0 lista todos). Lectura sin bloqueo.
	ListarPorRenglonYEstados(idRenglon int, estados []string, limite int) ([]entity.Serial, error)
	// SeleccionarParaDespacho es la variante con SELECT FOR UPDATE: bloquea las
	// filas elegidas para que dos despachos concurrentes no reclamen el mismo
	// serial. Solo tiene sentido dentro de una transacción.
	SeleccionarParaDespacho(idRenglon int, estados []string, limite int) ([]entity.Serial, error)
	// BuscarPorSeriales resuelve seriales por su cadena identificadora dentro de un renglón.
	BuscarPorSeriales(idRenglon int, seriales []string) ([]entity.Serial, error)
	ActualizarEstado(ids []int, estado string) error
	// AtarADespachoRenglon fija el FK de retención para despachos discretos.
	// El FK se conserva mientras exista la cabecera: la eliminación suave solo
	// cambia el estado del serial, para que la recuperación encuentre las
	// mismas unidades.
	AtarADespachoRenglon(ids []int, idDespachoRenglon int) error
	// DescontarPeso resta peso despachado del peso actual de un serial líquido.
	DescontarPeso(id int, peso decimal.Decimal) error
}
