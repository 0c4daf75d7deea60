package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/dparedes/sial-api/internal/domain/entity"
)

// SerialDespachoRequest un serial elegido para una línea del despacho.
// ID puede venir en cero: se resuelve por la cadena Serial dentro del renglón.
type SerialDespachoRequest struct {
	ID             int             `json:"id"`
	Serial         string          `json:"serial"`
	PesoDespachado decimal.Decimal `json:"peso_despachado"`
}

// RenglonDespachoRequest una línea del despacho tal como la envía el formulario.
type RenglonDespachoRequest struct {
	IDRenglon          int                     `json:"id_renglon"`
	Cantidad           int                     `json:"cantidad"`
	ManualSelection    bool                    `json:"manualSelection"`
	EsDespachoLiquidos bool                    `json:"es_despacho_liquidos"`
	Observacion        string                  `json:"observacion"`
	Seriales           []SerialDespachoRequest `json:"seriales"`
}

// DespachoRequest cuerpo de creación/actualización de un despacho.
type DespachoRequest struct {
	Motivo             string                   `json:"motivo"`
	FechaDespacho      time.Time                `json:"fecha_despacho"`
	MotivoFecha        string                   `json:"motivo_fecha"`
	CedulaDestinatario string                   `json:"cedula_destinatario"`
	CedulaAbastecedor  string                   `json:"cedula_abastecedor"`
	CedulaSupervisor   string                   `json:"cedula_supervisor"`
	CedulaAutorizador  string                   `json:"cedula_autorizador"`
	Renglones          []RenglonDespachoRequest `json:"renglones"`
}

// Códigos de resultado del flujo de despachos, para que el handler elija el
// status HTTP sin inspeccionar mensajes.
const (
	CodeOK                    = "OK"
	CodeUnauthenticated       = "UNAUTHENTICATED"
	CodeForbidden             = "FORBIDDEN"
	CodeValidation            = "VALIDATION"
	CodeSerialesInsuficientes = "SERIALES_INSUFICIENTES"
	CodeNotFound              = "NOT_FOUND"
)

// DespachoResult es el resultado estructurado de toda operación del flujo de
// despachos: nunca se lanza más allá del límite del caso de uso.
// Fields enumera los id_renglon ofensores para resaltar el formulario.
type DespachoResult struct {
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
	Mensaje string `json:"mensaje,omitempty"`
	Fields  []int  `json:"fields,omitempty"`
	Code    string `json:"-"`
}

// ResultadoError construye un resultado fallido.
func ResultadoError(code, mensaje string, fields ...int) *DespachoResult {
	return &DespachoResult{Success: false, Error: mensaje, Fields: fields, Code: code}
}

// ResultadoOK construye un resultado exitoso con mensaje opcional.
func ResultadoOK(mensaje string) *DespachoResult {
	return &DespachoResult{Success: true, Mensaje: mensaje, Code: CodeOK}
}

// DespachoDetalleResponse es el detalle de un despacho con la vista uniforme
// de seriales por renglón.
type DespachoDetalleResponse struct {
	entity.Despacho
	Destinatario *entity.Destinatario     `json:"destinatario"`
	Abastecedor  *entity.Profesional      `json:"abastecedor"`
	Supervisor   *entity.Profesional      `json:"supervisor"`
	Autorizador  *entity.Profesional      `json:"autorizador"`
	Renglones    []RenglonDetalleResponse `json:"renglones"`
}

// RenglonDetalleResponse una línea del despacho con sus seriales proyectados.
type RenglonDetalleResponse struct {
	entity.DespachoRenglon
	Renglon       *entity.Renglon       `json:"renglon"`
	UnidadEmpaque *entity.UnidadEmpaque `json:"unidad_empaque"`
	Seriales      []entity.SerialPeso   `json:"seriales"`
}

// GuiaRenglon una línea de la guía de despacho, lista para imprimir.
type GuiaRenglon struct {
	Nombre        string   `json:"nombre"`
	UnidadEmpaque string   `json:"unidad_empaque"`
	Cantidad      int      `json:"cantidad"`
	Seriales      []string `json:"seriales"`
	Observacion   string   `json:"observacion,omitempty"`
}

// GuiaDespacho estructura plana y presentacional para generar el documento
// de la guía (nombres resueltos, abreviaturas formateadas, un string por serial).
type GuiaDespacho struct {
	Codigo                string              `json:"codigo"`
	Motivo                string              `json:"motivo"`
	FechaDespacho         time.Time           `json:"fecha_despacho"`
	DestinatarioCedula    string              `json:"destinatario_cedula"`
	DestinatarioNombres   string              `json:"destinatario_nombres"`
	DestinatarioApellidos string              `json:"destinatario_apellidos"`
	DestinatarioGrado     string              `json:"destinatario_grado"`
	DestinatarioCargo     string              `json:"destinatario_cargo"`
	DestinatarioTelefono  string              `json:"destinatario_telefono"`
	Unidad                string              `json:"unidad"`
	Renglones             []GuiaRenglon       `json:"renglones"`
	Abastecedor           *entity.Profesional `json:"abastecedor"`
	Supervisor            *entity.Profesional `json:"supervisor"`
	Autorizador           *entity.Profesional `json:"autorizador"`
}
