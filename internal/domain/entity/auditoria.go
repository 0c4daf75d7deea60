package entity

import "time"

// Auditoria es un registro append-only de una acción de usuario.
type Auditoria struct {
	ID            string // UUID
	CedulaUsuario string
	Accion        string // CREAR, ACTUALIZAR, ELIMINAR, RECUPERAR
	Descripcion   string
	Fecha         time.Time
}
