package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Servicios que particionan permisos y etiquetas de auditoría.
const (
	ServicioAbastecimiento = "Abastecimiento"
	ServicioArmamento      = "Armamento"
)

// Despacho es la cabecera de una transferencia de inventario a un destinatario.
type Despacho struct {
	ID                  int
	Servicio            string
	CedulaDestinatario  string
	CedulaAbastecedor   string
	CedulaSupervisor    *string
	CedulaAutorizador   *string
	Motivo              string
	MotivoFecha         *string // justificación cuando la fecha de despacho difiere de la de creación
	FechaDespacho       time.Time
	FechaCreacion       time.Time
	UltimaActualizacion time.Time
	FechaEliminacion    *time.Time
}

// DespachoRenglon es una línea del despacho: un renglón de inventario con su cantidad.
// Los renglones de un despacho se crean junto con la cabecera y no se reescriben al actualizar.
type DespachoRenglon struct {
	ID                 int
	IDDespacho         int
	IDRenglon          int
	Cantidad           int
	ManualSelection    bool // el operador eligió seriales exactos en lugar de asignación automática
	EsDespachoLiquidos bool // se consume peso por serial en vez de retener unidades
	Observacion        *string
}

// DespachoSerial es la fila de la tabla intermedia para despachos líquidos:
// registra cuánto peso se retiró de cada serial.
type DespachoSerial struct {
	IDDespachoRenglon int
	IDSerial          int
	PesoDespachado    decimal.Decimal
}

// DespachoSerialDetalle es DespachoSerial con los datos del serial resueltos.
type DespachoSerialDetalle struct {
	IDSerial       int
	Serial         string
	PesoDespachado decimal.Decimal
	PesoActual     decimal.Decimal
}

// SerialPeso es la vista uniforme "serial con peso" que producen las lecturas,
// independiente del modo de seguimiento (líquido o discreto).
type SerialPeso struct {
	ID             int             `json:"id"`
	Serial         string          `json:"serial"`
	IDRenglon      int             `json:"id_renglon"`
	PesoDespachado decimal.Decimal `json:"peso_despachado"`
	PesoActual     decimal.Decimal `json:"peso_actual"`
}

// RenglonDespachado es una línea de despacho con sus relaciones cargadas.
type RenglonDespachado struct {
	DespachoRenglon
	Renglon          *Renglon
	UnidadEmpaque    *UnidadEmpaque
	Seriales         []Serial                // unidades discretas atadas a la línea
	SerialesLiquidos []DespachoSerialDetalle // filas de peso para despachos líquidos
}

// DespachoDetalle es un despacho con destinatario, personal y renglones cargados
// mediante consultas explícitas compuestas en el repositorio.
type DespachoDetalle struct {
	Despacho
	Destinatario *Destinatario
	Abastecedor  *Profesional
	Supervisor   *Profesional
	Autorizador  *Profesional
	Renglones    []RenglonDespachado
}
