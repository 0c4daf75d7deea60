package dto

// RenglonRequest cuerpo de creación/actualización de un renglón de inventario.
type RenglonRequest struct {
	Nombre           string `json:"nombre"`
	Descripcion      string `json:"descripcion"`
	StockMinimo      int    `json:"stock_minimo"`
	TipoMedidaUnidad string `json:"tipo_medida_unidad"`
	IDUnidadEmpaque  *int   `json:"id_unidad_empaque"`
	IDClasificacion  *int   `json:"id_clasificacion"`
	IDSubsistema     *int   `json:"id_subsistema"`
}

// ClasificacionRequest cuerpo de creación de una clasificación.
type ClasificacionRequest struct {
	Nombre      string `json:"nombre"`
	Descripcion string `json:"descripcion"`
}

// SubsistemaRequest cuerpo de creación de un subsistema.
type SubsistemaRequest struct {
	Nombre      string `json:"nombre"`
	Descripcion string `json:"descripcion"`
}
