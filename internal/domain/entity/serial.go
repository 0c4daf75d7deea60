package entity

import "github.com/shopspring/decimal"

// Estados de un serial (unidad física rastreable).
const (
	SerialDisponible = "Disponible" // listo para despacho
	SerialDespachado = "Despachado" // asignado a un despacho vigente
	SerialDevuelto   = "Devuelto"   // regresó por recepción de retorno
)

// Serial representa una unidad física de inventario con serial individual.
// Para renglones líquidos el estado vuelve a Disponible tras cada despacho
// y lo que se consume es PesoActual.
type Serial struct {
	ID                int
	Serial            string
	IDRenglon         int
	Estado            string
	PesoActual        decimal.Decimal
	Condicion         string
	IDDespachoRenglon *int // FK al renglón de despacho que lo retiene (solo despacho discreto)
}
