package dto

import "time"

// RegistroRequest cuerpo del registro de usuario. AdminPassword es la
// contraseña de administrador vigente que habilita crear cuentas.
type RegistroRequest struct {
	Cedula        string `json:"cedula"`
	TipoCedula    string `json:"tipo_cedula"`
	Nombre        string `json:"nombre"`
	Email         string `json:"email"`
	Password      string `json:"password"`
	AdminPassword string `json:"adminPassword"`
}

// LoginRequest credenciales de inicio de sesión.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// UsuarioResponse usuario sin campos sensibles.
type UsuarioResponse struct {
	Cedula        string    `json:"cedula"`
	TipoCedula    string    `json:"tipo_cedula"`
	Nombre        string    `json:"nombre"`
	Email         string    `json:"email"`
	Rol           string    `json:"rol"`
	Estado        string    `json:"estado"`
	FechaCreacion time.Time `json:"fecha_creacion"`
}

// LoginResponse token + usuario autenticado.
type LoginResponse struct {
	Token   string          `json:"token"`
	Usuario UsuarioResponse `json:"usuario"`
}
