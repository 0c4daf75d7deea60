package entity

// Destinatario es quien recibe el despacho. Grado, Categoria, Componente y
// Unidad llegan resueltos por nombre desde los catálogos (join explícito).
type Destinatario struct {
	Cedula           string
	TipoCedula       string
	Nombres          string
	Apellidos        string
	CargoProfesional *string
	Telefono         string
	Grado            *string
	Categoria        *string
	Componente       *string
	Unidad           *string
}

// Profesional es el personal de abastecimiento que interviene en un despacho
// (abastecedor, supervisor o autorizador).
type Profesional struct {
	Cedula     string
	TipoCedula string
	Nombres    string
	Apellidos  string
	Grado      *string
	Categoria  *string
	Componente *string
	Unidad     *string
}
