package repository

import "github.com/dparedes/sial-api/internal/domain/entity"

// UsuarioRepository define el puerto de usuarios, roles y la contraseña de
// administrador que habilita el registro.
type UsuarioRepository interface {
	Crear(u *entity.Usuario) error
	// BuscarPorEmail devuelve el usuario, o nil si no existe.
	BuscarPorEmail(email string) (*entity.Usuario, error)
	ObtenerPorCedula(cedula string) (*entity.Usuario, error)
	// ObtenerSesion resuelve usuario + rol + set de permisos en una sola vista.
	ObtenerSesion(cedula string) (*entity.Sesion, error)
	Listar() ([]entity.Usuario, error)
	ObtenerRolPorNombre(rol string) (*entity.Rol, error)
	CrearRol(r *entity.Rol) (int, error)
	// PasswordAdminActiva devuelve la contraseña de administrador vigente,
	// o cadena vacía si no hay ninguna activa.
	PasswordAdminActiva() (string, error)
}
