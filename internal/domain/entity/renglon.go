package entity

import "time"

// Renglon es la ficha maestra de un artículo de inventario. StockActual es un
// contador derivado que el flujo de despachos mantiene sincronizado con
// incrementos/decrementos explícitos; no se calcula en lectura.
type Renglon struct {
	ID                  int
	Nombre              string
	Descripcion         string
	StockActual         int
	StockMinimo         int
	TipoMedidaUnidad    string // LITROS, KILOGRAMOS, UNIDADES, ...
	IDUnidadEmpaque     *int
	IDClasificacion     *int
	IDSubsistema        *int
	FechaCreacion       time.Time
	UltimaActualizacion time.Time
}

// UnidadEmpaque describe cómo se empaca/mide un renglón.
type UnidadEmpaque struct {
	ID          int
	Nombre      string
	Abreviacion string
	TipoMedida  string
}

// Clasificacion agrupa renglones por categoría logística.
type Clasificacion struct {
	ID          int
	Nombre      string
	Descripcion string
}

// Subsistema agrupa renglones de armamento por subsistema.
type Subsistema struct {
	ID          int
	Nombre      string
	Descripcion string
}
