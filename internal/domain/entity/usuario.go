package entity

import "time"

// Usuario de la aplicación, identificado por cédula.
type Usuario struct {
	Cedula        string
	TipoCedula    string // V, E, J, P
	Nombre        string
	Email         string
	Contrasena    string // hash bcrypt
	IDRol         int
	Rol           string
	Estado        string // Activo, Bloqueado
	FechaCreacion time.Time
}

// Rol agrupa permisos; los usuarios tienen exactamente un rol.
type Rol struct {
	ID          int
	Rol         string
	Descripcion string
}

// Sesion es el usuario autenticado con su set de permisos resuelto,
// tal como lo consumen los flujos de negocio.
type Sesion struct {
	Cedula   string
	Nombre   string
	Email    string
	Rol      string
	Permisos []string // claves "SECCION:ACCION" (o la comodín TODAS)
}
